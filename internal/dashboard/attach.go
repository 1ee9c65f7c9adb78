package dashboard

import (
	"context"
	"errors"
	"sync"

	"github.com/shaharia-lab/nexusctl/internal/nexus"
)

// AttachState is the submission state of the attach dialog.
type AttachState int

const (
	// StateIdle accepts a new submission.
	StateIdle AttachState = iota
	// StateSubmitting rejects new submissions until the current one settles.
	StateSubmitting
)

func (s AttachState) String() string {
	if s == StateSubmitting {
		return "submitting"
	}
	return "idle"
}

// AttachFlow drives the add-card dialog: tokenize the card, attach the token
// to the customer, then close the dialog and reload the list.
type AttachFlow struct {
	handlers  *Handlers
	dialog    AttachDialog
	tokenizer Tokenizer

	mu    sync.Mutex
	state AttachState
}

// NewAttachFlow returns a flow in StateIdle.
func NewAttachFlow(h *Handlers, dialog AttachDialog, tokenizer Tokenizer) *AttachFlow {
	return &AttachFlow{
		handlers:  h,
		dialog:    dialog,
		tokenizer: tokenizer,
	}
}

// State returns the current submission state.
func (f *AttachFlow) State() AttachState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Submit runs one attach attempt. The submit control is disabled before
// Submit does any work and re-enabled on every return path. On failure the
// dialog stays open and the user is notified with the widget's message or
// MsgAttachFailed.
func (f *AttachFlow) Submit(ctx context.Context, setupSecret string, card CardDetails) error {
	if !f.begin() {
		return ErrSubmitInProgress
	}
	defer f.end()

	h := f.handlers

	token, err := f.tokenizer.ConfirmCardSetup(ctx, setupSecret, card)
	if err == nil && token == "" {
		err = &nexus.TokenizationError{Message: MsgTokenizationFallback}
	}
	if err != nil {
		tokErr := asTokenizationError(err)
		h.logFailure("tokenize card", err)
		h.notifier.Failure(tokErr.Message)
		return &ReportedError{Action: "tokenize card", Err: tokErr}
	}

	if err := h.attachPaymentMethod(ctx, token); err != nil {
		h.logFailure("attach payment method", err)
		h.notifier.Failure(MsgAttachFailed)
		return &ReportedError{Action: "attach payment method", Err: err}
	}

	f.dialog.Close()
	h.notifier.Success(MsgPaymentMethodAdded)
	return h.LoadPaymentMethods(ctx)
}

func (f *AttachFlow) begin() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateSubmitting {
		return false
	}
	f.state = StateSubmitting
	f.dialog.SetSubmitEnabled(false)
	return true
}

func (f *AttachFlow) end() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateIdle
	f.dialog.SetSubmitEnabled(true)
}

// asTokenizationError keeps widget errors as they are and wraps anything else.
func asTokenizationError(err error) *nexus.TokenizationError {
	var tokErr *nexus.TokenizationError
	if errors.As(err, &tokErr) {
		return tokErr
	}
	msg := err.Error()
	if msg == "" {
		msg = MsgTokenizationFallback
	}
	return &nexus.TokenizationError{Message: msg}
}

// StaticTokenizer returns a token obtained out of band, for example from the
// hosted card form. It ignores the card details.
type StaticTokenizer struct {
	Token string
}

// ConfirmCardSetup returns t.Token, or a TokenizationError when it is empty.
func (t StaticTokenizer) ConfirmCardSetup(ctx context.Context, setupSecret string, card CardDetails) (string, error) {
	if t.Token == "" {
		return "", &nexus.TokenizationError{Message: "no payment method token was provided"}
	}
	return t.Token, nil
}
