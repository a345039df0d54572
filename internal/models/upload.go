package models

import "time"

// UploadRecord is a completed upload of a subtitled video into the design
type UploadRecord struct {
	ID          string
	AssetRef    string
	ParentRef   string
	URL         string
	Preset      string
	Width       int
	Height      int
	CompletedAt time.Time
}

// Asset is a video asset known to the local design document
type Asset struct {
	Ref          string
	URL          string
	ThumbnailURL string
	MimeType     string
	ParentRef    string
	Width        int
	Height       int
	CreatedAt    time.Time
}
