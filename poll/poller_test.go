package poll

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediaforge/mediaforge"
)

// fakeStatus records the times at which status requests were issued and plays
// back a scripted sequence of responses.
type fakeStatus struct {
	mu       sync.Mutex
	calls    []time.Time
	sequence []func() (string, bool, error)
}

func (f *fakeStatus) check(ctx context.Context) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, time.Now())
	i := len(f.calls) - 1
	if i >= len(f.sequence) {
		i = len(f.sequence) - 1
	}
	return f.sequence[i]()
}

func (f *fakeStatus) callTimes() []time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Time(nil), f.calls...)
}

func notDone() (string, bool, error)       { return "", false, nil }
func doneWith(v string) func() (string, bool, error) {
	return func() (string, bool, error) { return v, true, nil }
}

func TestWaitCompletesOnThirdTick(t *testing.T) {
	interval := 20 * time.Millisecond
	fake := &fakeStatus{sequence: []func() (string, bool, error){
		notDone,
		notDone,
		doneWith("files/video-123"),
	}}

	start := time.Now()
	result, err := Wait(context.Background(), Config{Interval: interval, Timeout: time.Second}, fake.check)
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, "files/video-123", result)
	assert.Len(t, fake.callTimes(), 3)

	// Two full interval sleeps between the three ticks, with scheduling slack.
	assert.GreaterOrEqual(t, elapsed, 2*interval)
	assert.Less(t, elapsed, 6*interval)
}

func TestWaitTimesOut(t *testing.T) {
	cfg := Config{Interval: 10 * time.Millisecond, Timeout: 35 * time.Millisecond}
	fake := &fakeStatus{sequence: []func() (string, bool, error){notDone}}

	deadline := time.Now().Add(cfg.Timeout)
	_, err := Wait(context.Background(), cfg, fake.check)

	require.Error(t, err)
	assert.ErrorIs(t, err, mediaforge.ErrTimedOut)

	// No status request may be issued after the deadline.
	for _, at := range fake.callTimes() {
		assert.False(t, at.After(deadline), "request issued at %v, after deadline %v", at, deadline)
	}
}

func TestWaitSwallowsTransportErrors(t *testing.T) {
	transportErr := errors.New("dial tcp: connection refused")
	fake := &fakeStatus{sequence: []func() (string, bool, error){
		func() (string, bool, error) { return "", false, transportErr },
		func() (string, bool, error) { return "", false, transportErr },
		doneWith("files/video-9"),
	}}

	result, err := Wait(context.Background(), Config{Interval: time.Millisecond, Timeout: time.Second}, fake.check)

	require.NoError(t, err)
	assert.Equal(t, "files/video-9", result)
	assert.Len(t, fake.callTimes(), 3)
}

func TestWaitSustainedTransportFailureBecomesTimeout(t *testing.T) {
	transportErr := errors.New("lookup provider.example: no such host")
	fake := &fakeStatus{sequence: []func() (string, bool, error){
		func() (string, bool, error) { return "", false, transportErr },
	}}

	_, err := Wait(context.Background(), Config{Interval: 5 * time.Millisecond, Timeout: 25 * time.Millisecond}, fake.check)

	assert.ErrorIs(t, err, mediaforge.ErrTimedOut)
}

func TestWaitReturnsProviderFailure(t *testing.T) {
	opErr := &mediaforge.OperationError{Name: "operations/abc", Reason: "quota exceeded"}
	fake := &fakeStatus{sequence: []func() (string, bool, error){
		notDone,
		func() (string, bool, error) { return "", true, opErr },
	}}

	_, err := Wait(context.Background(), Config{Interval: time.Millisecond, Timeout: time.Second}, fake.check)

	var got *mediaforge.OperationError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, "quota exceeded", got.Reason)
	assert.Len(t, fake.callTimes(), 2)
}

func TestWaitRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fake := &fakeStatus{sequence: []func() (string, bool, error){notDone}}

	go func() {
		time.Sleep(15 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := Wait(ctx, Config{Interval: 10 * time.Second, Timeout: time.Minute}, fake.check)

	assert.ErrorIs(t, err, context.Canceled)
	// Cancellation must interrupt the sleep, not wait out the interval.
	assert.Less(t, time.Since(start), time.Second)
}

func TestWaitZeroConfigUsesDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	assert.Equal(t, DefaultInterval, cfg.Interval)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}

func TestWaitImmediateCompletionSkipsSleep(t *testing.T) {
	fake := &fakeStatus{sequence: []func() (string, bool, error){doneWith("done")}}

	start := time.Now()
	result, err := Wait(context.Background(), Config{Interval: 10 * time.Second, Timeout: time.Minute}, fake.check)

	require.NoError(t, err)
	assert.Equal(t, "done", result)
	assert.Less(t, time.Since(start), time.Second)
}
