// Package orchestrator runs the editor's remote operations behind a single
// in-flight slot and tracks the loading and feedback flags around them.
package orchestrator

import (
	"context"
	"sync"

	"github.com/julianstephens/hermione/internal/captions"
	"github.com/julianstephens/hermione/internal/constants"
	apperr "github.com/julianstephens/hermione/internal/errors"
	"github.com/julianstephens/hermione/internal/host"
	"github.com/julianstephens/hermione/internal/logger"
	"github.com/julianstephens/hermione/internal/models"
)

// task is the token of the in-flight operation. Cancel drops it, so a
// response that finds a different token in the slot is discarded.
type task struct {
	id     uint64
	op     string
	cancel context.CancelFunc
	// committing is set once the result is being applied; Cancel no longer
	// applies from then on
	committing bool
}

// Orchestrator owns the in-flight slot and the request feedback state
type Orchestrator struct {
	mu       sync.Mutex
	doc      host.Document
	captions captions.Service
	state    models.RequestState
	current  *task
	nextID   uint64
}

func New(doc host.Document, svc captions.Service) *Orchestrator {
	return &Orchestrator{doc: doc, captions: svc}
}

// State returns a snapshot of the request flags
func (o *Orchestrator) State() models.RequestState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Busy reports whether an operation holds the slot
func (o *Orchestrator) Busy() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current != nil
}

// begin claims the slot. A busy slot yields a Busy error and the
// in-progress message; the running operation is left alone.
func (o *Orchestrator) begin(ctx context.Context, op string, preview bool) (context.Context, *task, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.current != nil {
		o.state.Message = constants.MsgRequestInProgress
		return nil, nil, apperr.New(apperr.Busy, op, constants.MsgRequestInProgress, nil)
	}

	o.nextID++
	ctx, cancel := context.WithCancel(ctx)
	t := &task{id: o.nextID, op: op, cancel: cancel}
	o.current = t

	o.state.IsLoading = true
	o.state.IsPreviewLoading = preview
	o.state.Error = ""
	o.state.Message = ""
	return ctx, t, nil
}

// commit claims t's result for its continuation. It fails when t was
// cancelled; after it succeeds Cancel leaves t alone.
func (o *Orchestrator) commit(t *task) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.current != t {
		return false
	}
	t.committing = true
	return true
}

// finish releases the slot held by t and applies fn to the state. When t
// was cancelled nothing is applied and a Cancelled error is returned.
func (o *Orchestrator) finish(t *task, fn func(s *models.RequestState)) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	t.cancel()
	if o.current != t {
		logger.Debug("dropping response of cancelled operation", "op", t.op, "task", t.id)
		return apperr.New(apperr.Cancelled, t.op, "", nil)
	}
	o.current = nil
	o.state.IsLoading = false
	o.state.IsPreviewLoading = false
	if fn != nil {
		fn(&o.state)
	}
	return nil
}

// fail releases the slot with err's message as the user-facing error
func (o *Orchestrator) fail(t *task, err *apperr.OpError) error {
	if cerr := o.finish(t, func(s *models.RequestState) { s.Error = err.Message }); cerr != nil {
		return cerr
	}
	logger.Warn("operation failed", "op", err.Op, "kind", err.Kind, "error", err.Err)
	return err
}

// precondition reports a failure that happened before the slot was claimed
func (o *Orchestrator) precondition(op, message string) error {
	o.mu.Lock()
	o.state.Error = message
	o.mu.Unlock()
	return apperr.New(apperr.Precondition, op, message, nil)
}

// Cancel drops the in-flight operation and clears the loading and error
// flags. Its late response, if any, is discarded. Cancel reports false and
// changes nothing when the operation is already applying its result.
func (o *Orchestrator) Cancel() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.current != nil {
		if o.current.committing {
			logger.Debug("cancel arrived after the result was committed", "op", o.current.op, "task", o.current.id)
			return false
		}
		logger.Info("operation cancelled", "op", o.current.op, "task", o.current.id)
		o.current.cancel()
		o.current = nil
	}
	o.state.IsLoading = false
	o.state.IsPreviewLoading = false
	o.state.Error = ""
	return true
}

// ClearFeedback clears the error and message, as on navigation
func (o *Orchestrator) ClearFeedback() {
	o.mu.Lock()
	o.state.Error = ""
	o.state.Message = ""
	o.mu.Unlock()
}

// Dismiss clears the error alert and the loading flag
func (o *Orchestrator) Dismiss() {
	o.mu.Lock()
	o.state.Error = ""
	if o.current == nil {
		o.state.IsLoading = false
	}
	o.mu.Unlock()
}

// SetMessage surfaces an informational message
func (o *Orchestrator) SetMessage(msg string) {
	o.mu.Lock()
	o.state.Message = msg
	o.mu.Unlock()
}

// ResetUpload clears the one-shot upload flag and its message
func (o *Orchestrator) ResetUpload() {
	o.mu.Lock()
	o.state.SuccessfulUpload = false
	o.state.Message = ""
	o.mu.Unlock()
}
