package sale

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSubmitter struct {
	mu       sync.Mutex
	calls    int32
	payloads []SubmissionPayload
	err      error
	block    chan struct{} // when set, CreateSale waits until it is closed
}

func (f *fakeSubmitter) CreateSale(_ context.Context, _ string, payload SubmissionPayload) error {
	atomic.AddInt32(&f.calls, 1)
	f.mu.Lock()
	f.payloads = append(f.payloads, payload)
	f.mu.Unlock()
	if f.block != nil {
		<-f.block
	}
	return f.err
}

func validDraft(m *Manager, sessionID string) {
	m.Open(sessionID)
	m.UpdateCustomer(sessionID, "Jane Doe", "jane@x.com", "", "10")
	m.UpdateItem(sessionID, 0, FieldProductID, "p1")
	m.UpdateItem(sessionID, 0, FieldQuantity, "2")
	m.UpdateItem(sessionID, 0, FieldUnitPrice, "5")
}

func TestSubmitSuccessResetsDraft(t *testing.T) {
	submitter := &fakeSubmitter{}
	m := NewManager(submitter, time.Hour, zap.NewNop())
	validDraft(m, "s1")

	outcome, err := m.Submit(context.Background(), "s1", "tok")
	require.NoError(t, err)
	assert.True(t, outcome.Submitted)
	assert.Nil(t, outcome.Validation)
	assert.NoError(t, outcome.Failure)

	draft, state, err := m.Current("s1")
	require.NoError(t, err)
	assert.Equal(t, StateEditing, state)
	assert.Equal(t, NewDraft(), draft, "draft resets to empty defaults after success")
}

func TestSubmitBlockedByValidation(t *testing.T) {
	submitter := &fakeSubmitter{}
	m := NewManager(submitter, time.Hour, zap.NewNop())
	m.Open("s1")
	m.UpdateCustomer("s1", "Jane", "not-an-email", "", "0")

	outcome, err := m.Submit(context.Background(), "s1", "tok")
	require.NoError(t, err)
	assert.False(t, outcome.Submitted)
	require.NotNil(t, outcome.Validation)
	assert.NotEmpty(t, outcome.Validation.CustomerEmail)
	require.Len(t, outcome.Validation.ItemErrors, 1)
	assert.Equal(t, "Select a product", outcome.Validation.ItemErrors[0].ProductID)

	assert.Zero(t, atomic.LoadInt32(&submitter.calls), "no network call on invalid draft")
}

func TestSubmitFailurePreservesDraft(t *testing.T) {
	submitter := &fakeSubmitter{err: errors.New("insufficient stock for product p1")}
	m := NewManager(submitter, time.Hour, zap.NewNop())
	validDraft(m, "s1")
	before, _, _ := m.Current("s1")

	outcome, err := m.Submit(context.Background(), "s1", "tok")
	require.NoError(t, err)
	assert.False(t, outcome.Submitted)
	assert.EqualError(t, outcome.Failure, "insufficient stock for product p1")

	after, state, err := m.Current("s1")
	require.NoError(t, err)
	assert.Equal(t, StateEditing, state, "draft returns to editing after failure")
	assert.Equal(t, before, after, "draft is preserved for correction and retry")
}

func TestSubmitGuardAllowsExactlyOneInFlight(t *testing.T) {
	submitter := &fakeSubmitter{block: make(chan struct{})}
	m := NewManager(submitter, time.Hour, zap.NewNop())
	validDraft(m, "s1")

	done := make(chan SubmitOutcome, 1)
	go func() {
		outcome, _ := m.Submit(context.Background(), "s1", "tok")
		done <- outcome
	}()

	// Wait for the first submission to reach the submitter.
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&submitter.calls) == 1
	}, time.Second, time.Millisecond)

	_, err := m.Submit(context.Background(), "s1", "tok")
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(submitter.block)
	outcome := <-done
	assert.True(t, outcome.Submitted)
	assert.EqualValues(t, 1, atomic.LoadInt32(&submitter.calls), "exactly one outbound request")
}

func TestEditsDuringFlightDoNotAffectCapturedPayload(t *testing.T) {
	submitter := &fakeSubmitter{block: make(chan struct{})}
	m := NewManager(submitter, time.Hour, zap.NewNop())
	validDraft(m, "s1")

	done := make(chan struct{})
	go func() {
		m.Submit(context.Background(), "s1", "tok")
		close(done)
	}()
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&submitter.calls) == 1
	}, time.Second, time.Millisecond)

	// Fields stay editable while the request is pending.
	_, err := m.UpdateItem("s1", 0, FieldQuantity, "99")
	require.NoError(t, err)

	close(submitter.block)
	<-done

	submitter.mu.Lock()
	defer submitter.mu.Unlock()
	require.Len(t, submitter.payloads, 1)
	assert.Equal(t, 2.0, submitter.payloads[0].Items[0].Quantity,
		"payload was captured when submit began")
}

func TestLateResponseAfterCloseIsDropped(t *testing.T) {
	submitter := &fakeSubmitter{block: make(chan struct{})}
	m := NewManager(submitter, time.Hour, zap.NewNop())
	validDraft(m, "s1")

	done := make(chan error, 1)
	go func() {
		_, err := m.Submit(context.Background(), "s1", "tok")
		done <- err
	}()
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&submitter.calls) == 1
	}, time.Second, time.Millisecond)

	m.Close("s1")
	close(submitter.block)

	assert.ErrorIs(t, <-done, ErrNoDraft, "late response is ignored, not applied")
	_, _, err := m.Current("s1")
	assert.ErrorIs(t, err, ErrNoDraft)
}

func TestSubmitWithoutDraft(t *testing.T) {
	m := NewManager(&fakeSubmitter{}, time.Hour, zap.NewNop())
	_, err := m.Submit(context.Background(), "nope", "tok")
	assert.ErrorIs(t, err, ErrNoDraft)
}

func TestSweepEvictsIdleDrafts(t *testing.T) {
	m := NewManager(&fakeSubmitter{}, time.Hour, zap.NewNop())
	clock := time.Now()
	m.now = func() time.Time { return clock }

	for i := 0; i < 100; i++ {
		m.Open("sess-" + strconv.Itoa(i))
	}
	m.Open("lapsed")
	m.Open("active")

	// Sessions end by store TTL far more often than by logout; the sweep is
	// the only thing that reclaims their drafts.
	clock = clock.Add(2 * time.Hour)
	_, _, err := m.Current("active")
	require.NoError(t, err)
	m.sweep()

	_, _, err = m.Current("lapsed")
	assert.ErrorIs(t, err, ErrNoDraft, "idle draft evicted after the idle TTL")
	_, _, err = m.Current("active")
	assert.NoError(t, err, "recently touched draft survives the sweep")

	m.mu.Lock()
	remaining := len(m.sessions)
	m.mu.Unlock()
	assert.Equal(t, 1, remaining, "lapsed sessions must not pin their drafts")
}

func TestSweepSparesInFlightSubmission(t *testing.T) {
	submitter := &fakeSubmitter{block: make(chan struct{})}
	m := NewManager(submitter, time.Hour, zap.NewNop())
	clock := time.Now()
	m.now = func() time.Time { return clock }
	validDraft(m, "s1")

	done := make(chan SubmitOutcome, 1)
	go func() {
		outcome, _ := m.Submit(context.Background(), "s1", "tok")
		done <- outcome
	}()
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&submitter.calls) == 1
	}, time.Second, time.Millisecond)

	clock = clock.Add(2 * time.Hour)
	m.sweep()

	close(submitter.block)
	outcome := <-done
	assert.True(t, outcome.Submitted, "pending submission completes despite the sweep")
}

func TestOpenReplacesPreviousDraft(t *testing.T) {
	m := NewManager(&fakeSubmitter{}, time.Hour, zap.NewNop())
	m.Open("s1")
	m.UpdateCustomer("s1", "Jane", "jane@x.com", "", "5")

	fresh := m.Open("s1")
	assert.Equal(t, NewDraft(), fresh)
}
