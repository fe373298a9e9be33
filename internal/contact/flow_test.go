package contact

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type relayFunc func(ctx context.Context, msg Message) error

func (f relayFunc) Send(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}

type unconfiguredRelay struct{}

func (unconfiguredRelay) Send(context.Context, Message) error { return nil }
func (unconfiguredRelay) Configured() bool                   { return false }

type fakeTimer struct {
	d  time.Duration
	ch chan time.Time

	mu      sync.Mutex
	stopped bool
}

func (t *fakeTimer) fire() {
	t.ch <- time.Now()
}

func (t *fakeTimer) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// fakeClock hands out manually fired timers.
type fakeClock struct {
	created chan *fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{created: make(chan *fakeTimer, 8)}
}

func (c *fakeClock) newTimer(d time.Duration) (<-chan time.Time, func() bool) {
	t := &fakeTimer{d: d, ch: make(chan time.Time, 1)}
	c.created <- t
	return t.ch, func() bool {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.stopped = true
		return true
	}
}

func (c *fakeClock) next(t *testing.T) *fakeTimer {
	t.Helper()
	select {
	case ft := <-c.created:
		return ft
	case <-time.After(2 * time.Second):
		t.Fatalf("timer was never started")
		return nil
	}
}

func newTestFlow(relay Relay) (*Flow, *fakeClock) {
	f := NewFlow(relay, Options{})
	clock := newFakeClock()
	f.newTimer = clock.newTimer
	return f, clock
}

func fill(f *Flow) {
	f.SetField(FieldName, "Ada")
	f.SetField(FieldEmail, "ada@example.com")
	f.SetField(FieldMessage, "Hello there")
}

func TestNewFlowDefaults(t *testing.T) {
	f := NewFlow(nil, Options{})
	defer f.Close()
	assert.Equal(t, DefaultTimeout, f.timeout)
	assert.Equal(t, DefaultResetDelay, f.resetDelay)
	assert.Equal(t, PhaseIdle, f.State().Phase)
}

func TestSubmitRejectsMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		value string
	}{
		{name: "empty name", field: FieldName, value: ""},
		{name: "blank email", field: FieldEmail, value: "   "},
		{name: "blank message", field: FieldMessage, value: "\n\t"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			f, _ := newTestFlow(relayFunc(func(context.Context, Message) error {
				called = true
				return nil
			}))
			defer f.Close()
			fill(f)
			f.SetField(tt.field, tt.value)

			_, ok := f.Submit()
			require.False(t, ok)
			st := f.State()
			assert.Equal(t, PhaseIdle, st.Phase)
			assert.True(t, IsKind(st.Err, KindValidation))
			assert.Contains(t, st.ErrorText(), tt.field.String())
			assert.False(t, called)
		})
	}
}

func TestSubmitUnconfiguredRelay(t *testing.T) {
	f, _ := newTestFlow(unconfiguredRelay{})
	defer f.Close()
	fill(f)
	_, ok := f.Submit()
	require.False(t, ok)
	assert.Equal(t, PhaseIdle, f.State().Phase)
	assert.True(t, IsKind(f.State().Err, KindRelay))
	assert.Equal(t, msgNotConfigured, f.State().ErrorText())
}

func TestSuccessfulSendClearsAndResets(t *testing.T) {
	defer goleak.VerifyNone(t)

	var got Message
	f, clock := newTestFlow(relayFunc(func(_ context.Context, msg Message) error {
		got = msg
		return nil
	}))
	defer f.Close()
	fill(f)

	a, ok := f.Submit()
	require.True(t, ok)
	assert.Equal(t, PhaseSubmitting, f.State().Phase)

	res := f.Deliver(a)
	require.NoError(t, res.Err)
	assert.Equal(t, Message{Name: "Ada", Email: "ada@example.com", Body: "Hello there"}, got)
	assert.True(t, clock.next(t).isStopped(), "timeout timer must be released")

	require.True(t, f.Complete(res))
	st := f.State()
	assert.Equal(t, PhaseSubmitted, st.Phase)
	assert.Empty(t, st.Name)
	assert.Empty(t, st.Email)
	assert.Empty(t, st.Message)
	assert.NoError(t, st.Err)

	_, ok = f.Submit()
	assert.False(t, ok, "submit while showing success must be ignored")

	done := make(chan bool, 1)
	go func() { done <- f.AwaitReset() }()
	timer := clock.next(t)
	assert.Equal(t, DefaultResetDelay, timer.d)
	timer.fire()
	require.True(t, <-done)
	assert.True(t, timer.isStopped())

	require.True(t, f.Reset(a.ID))
	assert.Equal(t, PhaseIdle, f.State().Phase)
}

func TestSubmitIgnoredWhileSubmitting(t *testing.T) {
	defer goleak.VerifyNone(t)

	var mu sync.Mutex
	calls := 0
	f, _ := newTestFlow(relayFunc(func(context.Context, Message) error {
		mu.Lock()
		calls++
		mu.Unlock()
		return nil
	}))
	defer f.Close()
	fill(f)

	first, ok := f.Submit()
	require.True(t, ok)

	second, ok := f.Submit()
	assert.False(t, ok, "a second submit while sending must be ignored")
	assert.Zero(t, second.ID)
	assert.Equal(t, PhaseSubmitting, f.State().Phase)

	res := f.Deliver(first)
	require.NoError(t, res.Err)
	assert.Equal(t, first.ID, res.ID)
	require.True(t, f.Complete(res))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestTimeoutWinsOverSlowRelay(t *testing.T) {
	defer goleak.VerifyNone(t)

	relayCancelled := make(chan struct{})
	f, clock := newTestFlow(relayFunc(func(ctx context.Context, _ Message) error {
		<-ctx.Done()
		close(relayCancelled)
		return ctx.Err()
	}))
	defer f.Close()
	fill(f)

	a, ok := f.Submit()
	require.True(t, ok)

	results := make(chan Result, 1)
	go func() { results <- f.Deliver(a) }()
	timer := clock.next(t)
	assert.Equal(t, DefaultTimeout, timer.d)

	select {
	case <-results:
		t.Fatalf("no result expected before the timeout elapses")
	case <-time.After(20 * time.Millisecond):
	}
	assert.Equal(t, PhaseSubmitting, f.State().Phase)

	timer.fire()
	res := <-results
	assert.True(t, IsKind(res.Err, KindTimeout))
	<-relayCancelled

	require.True(t, f.Complete(res))
	st := f.State()
	assert.Equal(t, PhaseFailed, st.Phase)
	assert.Equal(t, msgTimeout, st.ErrorText())
	assert.Equal(t, "Ada", st.Name, "failed submissions keep the input")
}

func TestRelayErrorIsWrapped(t *testing.T) {
	errDown := errors.New("service down")
	f, _ := newTestFlow(relayFunc(func(context.Context, Message) error { return errDown }))
	defer f.Close()
	fill(f)

	a, _ := f.Submit()
	res := f.Deliver(a)
	assert.True(t, IsKind(res.Err, KindRelay))
	assert.ErrorIs(t, res.Err, errDown)
	assert.Equal(t, msgRelayFailed, UserMessage(res.Err))
}

func TestRelayPanicBecomesError(t *testing.T) {
	defer goleak.VerifyNone(t)

	f, _ := newTestFlow(relayFunc(func(context.Context, Message) error { panic("boom") }))
	defer f.Close()
	fill(f)

	a, _ := f.Submit()
	res := f.Deliver(a)
	require.Error(t, res.Err)
	assert.True(t, IsKind(res.Err, KindRelay))
	assert.Contains(t, res.Err.Error(), "boom")
}

func TestEditingClearsError(t *testing.T) {
	f, _ := newTestFlow(relayFunc(func(context.Context, Message) error { return errors.New("nope") }))
	defer f.Close()
	fill(f)

	a, _ := f.Submit()
	require.True(t, f.Complete(f.Deliver(a)))
	require.Equal(t, PhaseFailed, f.State().Phase)

	f.SetField(FieldMessage, "Hello again")
	assert.Equal(t, PhaseIdle, f.State().Phase)
	assert.NoError(t, f.State().Err)

	f.SetField(FieldName, "")
	f.Submit()
	require.Error(t, f.State().Err)
	f.DismissError()
	assert.NoError(t, f.State().Err)
}

func TestCompleteIgnoresStaleAttempts(t *testing.T) {
	f, _ := newTestFlow(relayFunc(func(context.Context, Message) error { return nil }))
	defer f.Close()
	fill(f)

	a, _ := f.Submit()
	assert.False(t, f.Complete(Result{ID: a.ID + 1}))
	assert.Equal(t, PhaseSubmitting, f.State().Phase)
	assert.False(t, f.Reset(a.ID), "reset only applies to a submitted form")
}

func TestCloseCancelsPendingWork(t *testing.T) {
	defer goleak.VerifyNone(t)

	f, clock := newTestFlow(relayFunc(func(ctx context.Context, _ Message) error {
		<-ctx.Done()
		return ctx.Err()
	}))
	fill(f)
	a, _ := f.Submit()

	results := make(chan Result, 1)
	go func() { results <- f.Deliver(a) }()
	clock.next(t)

	resets := make(chan bool, 1)
	go func() { resets <- f.AwaitReset() }()
	clock.next(t)

	f.Close()
	assert.False(t, <-resets)
	res := <-results
	assert.True(t, IsKind(res.Err, KindRelay))
	assert.False(t, f.Complete(res), "results after close must be ignored")
	assert.Equal(t, PhaseSubmitting, f.State().Phase)
}

func TestPhaseAndFieldStrings(t *testing.T) {
	assert.Equal(t, "submitting", PhaseSubmitting.String())
	assert.Equal(t, "Phase(9)", Phase(9).String())
	assert.Equal(t, "email", FieldEmail.String())
}
