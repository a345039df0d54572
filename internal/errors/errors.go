package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/hermione/internal/logger"
)

// Kind classifies an operation failure. Kinds are sentinel errors, so
// errors.Is(err, errors.Busy) works on any wrapped OpError.
type Kind string

func (k Kind) Error() string { return string(k) }

const (
	// Precondition failures are reported before the operation is attempted
	Precondition Kind = "precondition"
	// Transport covers fetch failures, non-OK statuses and missing payloads
	Transport Kind = "transport"
	// Busy is a rejected concurrent submission, not a fault
	Busy Kind = "busy"
	// Cancelled marks a response that arrived after the user cancelled
	Cancelled Kind = "cancelled"
	// Auth covers failures of the authentication exchange
	Auth Kind = "auth"
)

// OpError is the typed outcome of a failed editor operation. Message is
// what the user sees; Err is the underlying cause, if any.
type OpError struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *OpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *OpError) Unwrap() error { return e.Err }

// Is matches the error's kind
func (e *OpError) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// New builds an OpError
func New(kind Kind, op, message string, cause error) *OpError {
	return &OpError{Kind: kind, Op: op, Message: message, Err: cause}
}

// UserMessage extracts the user-facing message of err. Errors that are not
// OpErrors yield fallback.
func UserMessage(err error, fallback string) string {
	var opErr *OpError
	if stderrors.As(err, &opErr) && opErr.Message != "" {
		return opErr.Message
	}
	return fallback
}

// KindOf returns the kind of err, or "" when err is not an OpError
func KindOf(err error) Kind {
	var opErr *OpError
	if stderrors.As(err, &opErr) {
		return opErr.Kind
	}
	return ""
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
