package models

import "github.com/julianstephens/hermione/internal/constants"

// AuthSession is a snapshot of the authentication state machine
type AuthSession struct {
	State constants.AuthState
	Step  constants.AuthStep
	Email string
	OTP   string
	Error string // last challenge error, empty when none
}

// RequestState holds the transient UI feedback flags of the editor
type RequestState struct {
	IsLoading         bool
	IsPreviewLoading  bool
	Error             string
	Message           string
	HasUnsavedChanges bool
	SuccessfulUpload  bool
}
