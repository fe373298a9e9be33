// Package contact implements the contact form lifecycle: validation, a relay
// send raced against a timeout, and the auto-reset after success.
//
// Flow state is owned by one goroutine (the UI loop). Deliver and AwaitReset
// block and are meant to run inside commands; they never touch flow state,
// the owner applies their results with Complete and Reset.
package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DefaultTimeout    = 10 * time.Second
	DefaultResetDelay = 3 * time.Second
)

// Phase is the form lifecycle phase.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSubmitted
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSubmitted:
		return "submitted"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Field names one of the three form inputs.
type Field int

const (
	FieldName Field = iota
	FieldEmail
	FieldMessage
)

// Fields lists the inputs in form order.
var Fields = []Field{FieldName, FieldEmail, FieldMessage}

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldEmail:
		return "email"
	case FieldMessage:
		return "message"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Message is the payload delivered to the relay.
type Message struct {
	Name  string
	Email string
	Body  string
}

// Relay delivers a message to the mail service.
type Relay interface {
	Send(ctx context.Context, msg Message) error
}

// configurable is implemented by relays that can tell they lack credentials.
type configurable interface {
	Configured() bool
}

// State is a snapshot of the form.
type State struct {
	Name    string
	Email   string
	Message string
	Phase   Phase
	Err     error
}

// ErrorText is the inline error, empty when there is none.
func (s State) ErrorText() string {
	return UserMessage(s.Err)
}

// Value returns the current value of a field.
func (s State) Value(f Field) string {
	switch f {
	case FieldName:
		return s.Name
	case FieldEmail:
		return s.Email
	case FieldMessage:
		return s.Message
	default:
		return ""
	}
}

// Attempt is one accepted submission.
type Attempt struct {
	ID      uint64
	Message Message
}

// Result is the settled outcome of an attempt.
type Result struct {
	ID  uint64
	Err error
}

// Options tunes flow timings. Zero values use the defaults.
type Options struct {
	Timeout    time.Duration
	ResetDelay time.Duration
}

type timerFunc func(d time.Duration) (<-chan time.Time, func() bool)

func realTimer(d time.Duration) (<-chan time.Time, func() bool) {
	t := time.NewTimer(d)
	return t.C, t.Stop
}

// Flow is the contact form state machine.
type Flow struct {
	relay      Relay
	timeout    time.Duration
	resetDelay time.Duration
	newTimer   timerFunc

	ctx    context.Context
	cancel context.CancelFunc

	state   State
	attempt uint64
}

// NewFlow returns an idle flow delivering through relay.
func NewFlow(relay Relay, opts Options) *Flow {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.ResetDelay <= 0 {
		opts.ResetDelay = DefaultResetDelay
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Flow{
		relay:      relay,
		timeout:    opts.Timeout,
		resetDelay: opts.ResetDelay,
		newTimer:   realTimer,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// State returns a snapshot of the form.
func (f *Flow) State() State {
	return f.state
}

// SetField updates a field. Any displayed error is stale once the user
// edits, so it is cleared and a failed form returns to idle.
func (f *Flow) SetField(field Field, value string) {
	switch field {
	case FieldName:
		f.state.Name = value
	case FieldEmail:
		f.state.Email = value
	case FieldMessage:
		f.state.Message = value
	default:
		return
	}
	f.DismissError()
}

// DismissError clears the inline error.
func (f *Flow) DismissError() {
	f.state.Err = nil
	if f.state.Phase == PhaseFailed {
		f.state.Phase = PhaseIdle
	}
}

// Submit validates the form and starts an attempt. It returns false when the
// submission is ignored (one already in flight or just succeeded) or
// rejected before reaching the relay; rejections leave the form idle with
// an error.
func (f *Flow) Submit() (Attempt, bool) {
	if f.state.Phase == PhaseSubmitting || f.state.Phase == PhaseSubmitted {
		return Attempt{}, false
	}
	f.state.Err = nil
	f.state.Phase = PhaseIdle

	if missing := f.missingFields(); len(missing) > 0 {
		f.state.Err = validationError(missing)
		return Attempt{}, false
	}
	if f.relay == nil {
		f.state.Err = &Error{Kind: KindRelay, Message: msgNotConfigured}
		return Attempt{}, false
	}
	if c, ok := f.relay.(configurable); ok && !c.Configured() {
		f.state.Err = &Error{Kind: KindRelay, Message: msgNotConfigured}
		return Attempt{}, false
	}

	f.attempt++
	f.state.Phase = PhaseSubmitting
	return Attempt{
		ID: f.attempt,
		Message: Message{
			Name:  f.state.Name,
			Email: f.state.Email,
			Body:  f.state.Message,
		},
	}, true
}

func (f *Flow) missingFields() []Field {
	var missing []Field
	for _, field := range Fields {
		if strings.TrimSpace(f.state.Value(field)) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// Deliver sends the attempt and races it against the timeout. The first to
// settle wins and the loser is cancelled; cancelling a dispatched relay call
// is best effort. Every relay failure, including a panic, comes back as a
// *Error in the result.
func (f *Flow) Deliver(a Attempt) Result {
	ctx, cancel := context.WithCancel(f.ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("relay panicked: %v", r)
			}
		}()
		done <- f.relay.Send(ctx, a.Message)
	}()

	expired, stop := f.newTimer(f.timeout)
	defer stop()

	select {
	case err := <-done:
		if err != nil {
			return Result{ID: a.ID, Err: relayError(err)}
		}
		return Result{ID: a.ID}
	case <-expired:
		return Result{ID: a.ID, Err: timeoutError()}
	case <-f.ctx.Done():
		return Result{ID: a.ID, Err: &Error{Kind: KindRelay, Message: msgCancelled, Err: f.ctx.Err()}}
	}
}

// Complete applies a settled result. Results of stale attempts, or arriving
// after Close, are ignored and false is returned.
func (f *Flow) Complete(res Result) bool {
	if f.closed() || res.ID != f.attempt || f.state.Phase != PhaseSubmitting {
		return false
	}
	if res.Err != nil {
		f.state.Phase = PhaseFailed
		f.state.Err = res.Err
		return true
	}
	f.state.Phase = PhaseSubmitted
	f.state.Err = nil
	f.state.Name = ""
	f.state.Email = ""
	f.state.Message = ""
	return true
}

// AwaitReset blocks for the reset delay. It returns false when the flow is
// closed first. The timer is released on every path.
func (f *Flow) AwaitReset() bool {
	expired, stop := f.newTimer(f.resetDelay)
	defer stop()
	select {
	case <-expired:
		return true
	case <-f.ctx.Done():
		return false
	}
}

// Reset returns a submitted form to idle if id is still the latest attempt.
func (f *Flow) Reset(id uint64) bool {
	if f.closed() || id != f.attempt || f.state.Phase != PhaseSubmitted {
		return false
	}
	f.state.Phase = PhaseIdle
	return true
}

// Close tears the flow down: blocked Deliver and AwaitReset calls return and
// later results are ignored.
func (f *Flow) Close() {
	f.cancel()
}

// Context is cancelled by Close.
func (f *Flow) Context() context.Context {
	return f.ctx
}

func (f *Flow) closed() bool {
	return errors.Is(f.ctx.Err(), context.Canceled)
}
