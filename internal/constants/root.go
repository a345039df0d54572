package constants

import "time"

// Screen represents the active editor screen. Screens are ordered; the
// ordinal doubles as the navigation index.
type Screen int

// AuthState represents the authentication lifecycle of the session
type AuthState string

// AuthStep represents the sub-step of the email/OTP challenge
type AuthStep string

// AuthOutcome is the result of the authentication-completion exchange
type AuthOutcome string

// MimeType is one of the video MIME types accepted by the host document
type MimeType string

// AssetType is the kind of asset handed to the host document
type AssetType string

const (
	AppName               = "hermione"
	DisplayName           = "Hermione"
	Version               = "v0.3.0"
	DefaultKeyringUser    = "user-token"
	DefaultKeyringEmail   = "user-email"
	DefaultConfigPath     = "~/.config/hermione/config.toml"
	DefaultDataDir        = "~/.local/share/hermione"
	DefaultDBFileName     = "hermione.db"
	LockFileName          = "hermione.lock"
	Attribution           = "Powered by: BojaleLabs & Seidea"
	PlaceholderThumbnail  = "https://upload.wikimedia.org/wikipedia/commons/6/68/Solid_black.png"
	NetworkSampleInterval = 1500 * time.Millisecond
	StrongConnectionMbps  = 1.0
)

// Screens, in navigation order
const (
	ScreenInitial Screen = iota
	ScreenUpload
	ScreenTranscription
	ScreenUploadConfirmation
)

const (
	// Auth states
	AuthChecking         AuthState = "checking"
	AuthAuthenticated    AuthState = "authenticated"
	AuthNotAuthenticated AuthState = "not_authenticated"
	AuthError            AuthState = "error"

	// Auth sub-steps
	StepNone  AuthStep = ""
	StepEmail AuthStep = "email"
	StepOTP   AuthStep = "otp"

	// Authentication-completion outcomes
	OutcomeCompleted AuthOutcome = "COMPLETED"
	OutcomeAborted   AuthOutcome = "ABORTED"
	OutcomeDenied    AuthOutcome = "DENIED"

	// Asset types
	AssetVideo AssetType = "VIDEO"

	// Video MIME types
	MimeMP4       MimeType = "video/mp4"
	MimeAVI       MimeType = "video/avi"
	MimeM4V       MimeType = "video/x-m4v"
	MimeMatroska  MimeType = "video/x-matroska"
	MimeQuickTime MimeType = "video/quicktime"
	MimeMPEG      MimeType = "video/mpeg"
	MimeWebM      MimeType = "video/webm"

	// Backend models
	PreviewModel    = "transcript__sample_text_model"
	TranscribeModel = "incredibly-fast-whisper"
)

// Screens lists every screen in navigation order
var Screens = [...]Screen{
	ScreenInitial,
	ScreenUpload,
	ScreenTranscription,
	ScreenUploadConfirmation,
}

var screenNames = [...]string{"initial", "upload", "transcription", "uploadconfirmation"}

func (s Screen) String() string {
	if s < 0 || int(s) >= len(screenNames) {
		return "unknown"
	}
	return screenNames[s]
}

// Index returns the ordinal of the screen in the navigation order
func (s Screen) Index() int {
	return int(s)
}

// ParseScreen resolves a screen by its name
func ParseScreen(name string) (Screen, bool) {
	for i, n := range screenNames {
		if n == name {
			return Screen(i), true
		}
	}
	return ScreenInitial, false
}

// MimeTypes lists the accepted video MIME types
var MimeTypes = []MimeType{MimeMP4, MimeAVI, MimeM4V, MimeMatroska, MimeQuickTime, MimeMPEG, MimeWebM}

// Valid reports whether the MIME type is one of the accepted video types
func (m MimeType) Valid() bool {
	for _, t := range MimeTypes {
		if t == m {
			return true
		}
	}
	return false
}
