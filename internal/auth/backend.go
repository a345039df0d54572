package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/julianstephens/hermione/internal/backend"
	"github.com/julianstephens/hermione/internal/constants"
	"github.com/julianstephens/hermione/internal/keyring"
)

const (
	statusPath       = "/api/canva/authentication/status"
	otpSendPath      = "/api/otps/email/send"
	otpValidatePath  = "/api/otps/validate"
	authenticatePath = "/api/otps/authenticate"
	authService      = "CANVA_APP"
)

// Reply is the outcome of an OTP call. Message carries the server's
// explanation when OK is false.
type Reply struct {
	OK      bool
	Message string
}

// Backend is the authentication service
type Backend interface {
	Status(ctx context.Context, email string) (bool, error)
	RequestOTP(ctx context.Context, email string) (Reply, error)
	ValidateOTP(ctx context.Context, email, otp string) (Reply, error)
	RequestAuthentication(ctx context.Context, email, otp string) (constants.AuthOutcome, error)
}

// TokenSource provides the bearer token identifying this device
type TokenSource interface {
	UserToken() (string, error)
}

// KeyringTokens reads the user token from the OS keyring
type KeyringTokens struct{}

func (KeyringTokens) UserToken() (string, error) {
	return keyring.GetUserToken()
}

// KeyringEmails remembers the last signed-in email in the OS keyring
type KeyringEmails struct{}

func (KeyringEmails) GetEmail() (string, error) {
	return keyring.GetEmail()
}

func (KeyringEmails) SetEmail(email string) error {
	return keyring.SetEmail(email)
}

// HTTPBackend talks to the authentication endpoints of the backend host
type HTTPBackend struct {
	api    *backend.Client
	tokens TokenSource
}

func NewHTTPBackend(api *backend.Client, tokens TokenSource) *HTTPBackend {
	return &HTTPBackend{api: api, tokens: tokens}
}

func (b *HTTPBackend) Status(ctx context.Context, email string) (bool, error) {
	token, err := b.tokens.UserToken()
	if err != nil {
		return false, fmt.Errorf("user token: %w", err)
	}

	q := url.Values{}
	q.Set("platform", "canva")
	q.Set("email", email)
	resp, err := b.api.Do(ctx, backend.Request{
		Method:  http.MethodPost,
		Path:    statusPath + "?" + q.Encode(),
		Headers: map[string]string{"Authorization": "Bearer " + token},
	})
	if err != nil {
		return false, err
	}

	var body struct {
		IsAuthenticated bool `json:"isAuthenticated"`
	}
	if err := resp.Decode(&body); err != nil {
		return false, err
	}
	return body.IsAuthenticated, nil
}

type messageBody struct {
	Message string `json:"message"`
}

func reply(resp *backend.Response) Reply {
	if resp.OK() {
		return Reply{OK: true}
	}
	var body messageBody
	_ = resp.Decode(&body)
	return Reply{Message: body.Message}
}

func (b *HTTPBackend) RequestOTP(ctx context.Context, email string) (Reply, error) {
	resp, err := b.api.Do(ctx, backend.Request{
		Method:  http.MethodPost,
		Path:    otpSendPath,
		Headers: map[string]string{"deduplication_key": uuid.NewString()},
		Body:    map[string]string{"email": email},
	})
	if err != nil {
		return Reply{}, err
	}
	return reply(resp), nil
}

func (b *HTTPBackend) ValidateOTP(ctx context.Context, email, otp string) (Reply, error) {
	resp, err := b.api.Do(ctx, backend.Request{
		Method: http.MethodPost,
		Path:   otpValidatePath,
		Body:   map[string]string{"email": email, "otp": otp},
	})
	if err != nil {
		return Reply{}, err
	}
	return reply(resp), nil
}

// RequestAuthentication binds the validated OTP to this device. A rejected
// exchange is DENIED and a cancelled one is ABORTED. Only an explicit
// COMPLETED status completes; an unreadable or unknown reply is an error.
func (b *HTTPBackend) RequestAuthentication(ctx context.Context, email, otp string) (constants.AuthOutcome, error) {
	token, err := b.tokens.UserToken()
	if err != nil {
		return "", fmt.Errorf("user token: %w", err)
	}

	req := backend.Request{
		Method:  http.MethodPost,
		Path:    authenticatePath,
		Headers: map[string]string{"Authorization": "Bearer " + token},
		Body:    map[string]string{"email": email, "otp": otp, "service": authService},
	}
	resp, err := b.api.Do(ctx, req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return constants.OutcomeAborted, nil
		}
		return "", err
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return constants.OutcomeDenied, nil
	case !resp.OK():
		return "", resp.Err(req)
	}

	var body struct {
		Status constants.AuthOutcome `json:"status"`
	}
	if err := resp.Decode(&body); err != nil {
		return "", fmt.Errorf("authentication reply: %w", err)
	}
	switch body.Status {
	case constants.OutcomeCompleted, constants.OutcomeAborted, constants.OutcomeDenied:
		return body.Status, nil
	default:
		return "", fmt.Errorf("authentication reply: unknown status %q", body.Status)
	}
}
