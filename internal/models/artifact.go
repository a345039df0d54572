package models

import "github.com/julianstephens/hermione/internal/constants"

// VideoArtifact is a video resource produced by the captioning backend
type VideoArtifact struct {
	URL               string             `json:"url"`
	ThumbnailURL      string             `json:"thumbnailUrl"`
	MimeType          constants.MimeType `json:"mimeType"`
	OriginalVideoPath string             `json:"original_video_path,omitempty"`
}

// SubbedVideoArtifact is a fully rendered subtitled video, ready to be
// added to the design
type SubbedVideoArtifact struct {
	VideoArtifact
	Height int `json:"height"`
	Width  int `json:"width"`
}

// Preview is the payload of a preview-subtitles response
type Preview struct {
	Text string `json:"text"`
	VideoArtifact
}

// Artifact strips the transcript text from a preview
func (p Preview) Artifact() VideoArtifact {
	return p.VideoArtifact
}
