// Package auth drives the email and one-time-password sign-in flow.
//
// Machine owns the session state. Every transition is published to a single
// listener, which the app controller uses to redirect screens.
package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/julianstephens/hermione/internal/constants"
	"github.com/julianstephens/hermione/internal/logger"
	"github.com/julianstephens/hermione/internal/models"
)

// EmailStore remembers the email of the last successful sign-in
type EmailStore interface {
	GetEmail() (string, error)
	SetEmail(email string) error
}

// Machine is the authentication session state machine
type Machine struct {
	mu       sync.Mutex
	backend  Backend
	emails   EmailStore
	session  models.AuthSession
	listener func(models.AuthSession)
}

// NewMachine starts in not_authenticated with no challenge step. emails
// may be nil.
func NewMachine(backend Backend, emails EmailStore) *Machine {
	m := &Machine{
		backend: backend,
		emails:  emails,
		session: models.AuthSession{State: constants.AuthNotAuthenticated},
	}
	if emails != nil {
		if email, err := emails.GetEmail(); err == nil {
			m.session.Email = email
		}
	}
	return m
}

// OnTransition registers the transition listener, replacing any previous one
func (m *Machine) OnTransition(fn func(models.AuthSession)) {
	m.mu.Lock()
	m.listener = fn
	m.mu.Unlock()
}

// Session returns a snapshot of the session
func (m *Machine) Session() models.AuthSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// update applies fn under the lock and notifies the listener outside it
func (m *Machine) update(fn func(s *models.AuthSession)) models.AuthSession {
	m.mu.Lock()
	fn(&m.session)
	snap := m.session
	listener := m.listener
	m.mu.Unlock()

	if listener != nil {
		listener(snap)
	}
	return snap
}

// Check queries the authentication status: true is authenticated, false is
// not_authenticated and a failed query is error.
func (m *Machine) Check(ctx context.Context) constants.AuthState {
	email := m.update(func(s *models.AuthSession) {
		s.State = constants.AuthChecking
	}).Email

	ok, err := m.backend.Status(ctx, email)
	state := constants.AuthNotAuthenticated
	switch {
	case err != nil:
		logger.Warn("authentication status check failed", "error", err)
		state = constants.AuthError
	case ok:
		state = constants.AuthAuthenticated
	}

	m.update(func(s *models.AuthSession) {
		s.State = state
		if state == constants.AuthAuthenticated {
			s.Step = constants.StepNone
			s.OTP = ""
			s.Error = ""
		}
	})
	return state
}

// StartChallenge begins the email step. It is a no-op unless the session is
// signed out or errored.
func (m *Machine) StartChallenge() {
	m.update(func(s *models.AuthSession) {
		if s.State != constants.AuthNotAuthenticated && s.State != constants.AuthError {
			return
		}
		if s.State == constants.AuthError {
			s.State = constants.AuthNotAuthenticated
		}
		s.Step = constants.StepEmail
		s.Error = ""
	})
}

func (m *Machine) SetEmail(email string) {
	m.mu.Lock()
	m.session.Email = strings.TrimSpace(email)
	m.mu.Unlock()
}

func (m *Machine) SetOTP(otp string) {
	m.mu.Lock()
	m.session.OTP = strings.TrimSpace(otp)
	m.mu.Unlock()
}

// SubmitEmail requests an OTP for the session email. On success the step
// advances to otp; otherwise it stays on email with the error set.
func (m *Machine) SubmitEmail(ctx context.Context) models.AuthSession {
	snap := m.update(func(s *models.AuthSession) { s.Error = "" })
	if snap.Step != constants.StepEmail {
		return snap
	}

	reply, err := m.backend.RequestOTP(ctx, snap.Email)
	return m.update(func(s *models.AuthSession) {
		switch {
		case err != nil:
			logger.Warn("OTP request failed", "error", err)
			s.Error = constants.MsgOTPRequestFailed
		case !reply.OK:
			s.Error = reply.Message
			if s.Error == "" {
				s.Error = constants.MsgOTPRequestFailed
			}
		default:
			s.Step = constants.StepOTP
		}
	})
}

// SubmitOTP validates the code and, when valid, completes authentication.
func (m *Machine) SubmitOTP(ctx context.Context) models.AuthSession {
	snap := m.update(func(s *models.AuthSession) { s.Error = "" })
	if snap.Step != constants.StepOTP {
		return snap
	}

	reply, err := m.backend.ValidateOTP(ctx, snap.Email, snap.OTP)
	if err != nil || !reply.OK {
		return m.update(func(s *models.AuthSession) {
			if err != nil {
				logger.Warn("OTP validation failed", "error", err)
				s.Error = constants.MsgAuthFailed
				return
			}
			s.Error = constants.MsgInvalidOTP
		})
	}

	outcome, err := m.backend.RequestAuthentication(ctx, snap.Email, snap.OTP)
	if err != nil {
		logger.Error("authentication exchange failed", "error", err)
		return m.update(func(s *models.AuthSession) {
			s.State = constants.AuthError
		})
	}

	switch outcome {
	case constants.OutcomeCompleted:
		// refresh the status; the exchange result stands either way
		if _, err := m.backend.Status(ctx, snap.Email); err != nil {
			logger.Warn("status refresh after authentication failed", "error", err)
		}
		if m.emails != nil && snap.Email != "" {
			if err := m.emails.SetEmail(snap.Email); err != nil {
				logger.Warn("failed to remember email", "error", err)
			}
		}
		return m.update(func(s *models.AuthSession) {
			s.State = constants.AuthAuthenticated
			s.Step = constants.StepNone
			s.OTP = ""
		})
	default:
		logger.Warn("authentication not completed", "outcome", outcome)
		return m.update(func(s *models.AuthSession) {
			s.State = constants.AuthNotAuthenticated
			s.Step = constants.StepNone
			s.OTP = ""
		})
	}
}

// Back returns from the otp step to the email step, clearing the code.
func (m *Machine) Back() {
	m.update(func(s *models.AuthSession) {
		if s.Step != constants.StepOTP {
			return
		}
		s.Step = constants.StepEmail
		s.State = constants.AuthChecking
		s.OTP = ""
		s.Error = ""
	})
}

// SignOut forgets the session locally
func (m *Machine) SignOut() {
	m.update(func(s *models.AuthSession) {
		*s = models.AuthSession{State: constants.AuthNotAuthenticated, Email: s.Email}
	})
}
