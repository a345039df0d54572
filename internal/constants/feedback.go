package constants

// User-facing messages surfaced by the editor
const (
	MsgRequestInProgress   = "Request already in progress. Please wait."
	MsgNoVideoSelected     = "No video selected"
	MsgNoContentSelected   = "No content selected"
	MsgSingleVideo         = "Select a single video"
	MsgNoDimensions        = "The current design does not have dimensions"
	MsgFailedTranscription = "Failed to get transcription"
	MsgFailedSubtitles     = "Failed to get subtitles"
	MsgFailedGenerate      = "Failed to generate subtitles"
	MsgMissingVideo        = "Missing video, please start again."
	MsgGenericRetry        = "An error occurred, please try again"
	MsgUploadStarted       = "We are uploading your video to the design 🎉"
	MsgUploadFailed        = "Failed to add the video to the design, please try again"
	MsgAssetAdded          = "Video uploaded, select it from the `Uploads` section"
	MsgUnexpected          = "An unexpected error occurred"

	MsgOTPRequestFailed = "An error occurred while requesting OTP"
	MsgInvalidOTP       = "Invalid OTP"
	MsgAuthFailed       = "An error occurred during authentication"

	MsgOffline        = "It looks like you're offline"
	MsgWeakConnection = "Your internet connection is too weak"
)
