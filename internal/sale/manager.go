package sale

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// State is the lifecycle state of a draft. A draft is Editing except for the
// window between a validated submit attempt and the backend's response.
type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
)

var (
	// ErrNoDraft is returned when a session has no active draft.
	ErrNoDraft = errors.New("no active sale draft for session")
	// ErrSubmitInFlight is returned when a submission is already pending
	// for the draft; re-submission is blocked until it completes.
	ErrSubmitInFlight = errors.New("a submission is already in flight")
)

// Submitter dispatches a validated submission payload to the core sales API,
// authenticated with the session's upstream token.
type Submitter interface {
	CreateSale(ctx context.Context, token string, payload SubmissionPayload) error
}

// SubmitOutcome describes how a submit attempt ended. Exactly one of the
// three cases applies: the draft failed local validation (Validation set, no
// network call made), the backend call failed (Failure set, draft preserved),
// or the sale was accepted (Submitted true, draft reset).
type SubmitOutcome struct {
	Submitted  bool
	Validation *ValidationResult
	Failure    error
}

type draftSession struct {
	draft   *Draft
	state   State
	touched time.Time
}

// sweepInterval is how often idle drafts are checked for eviction.
const sweepInterval = 5 * time.Minute

// Manager owns the sale drafts of active dashboard sessions. Each draft
// belongs to exactly one session; drafts live in memory only and disappear
// with the session. All access is serialized through the manager's mutex,
// except the upstream call itself, which runs outside the lock so a slow
// backend never blocks edits to other drafts.
//
// Logout is not the only way a session ends: most lapse by store TTL, with
// no call into the manager. A background sweep evicts drafts untouched for
// longer than idleTTL so lapsed sessions do not pin their drafts forever.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*draftSession
	sales    Submitter
	idleTTL  time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewManager creates a draft manager backed by the given sales submitter.
// idleTTL bounds how long an untouched draft may outlive its last access;
// wiring it to the session TTL keeps draft lifetime aligned with session
// lifetime. A non-positive idleTTL disables the sweep.
func NewManager(sales Submitter, idleTTL time.Duration, logger *zap.Logger) *Manager {
	m := &Manager{
		sessions: make(map[string]*draftSession),
		sales:    sales,
		idleTTL:  idleTTL,
		logger:   logger,
		now:      time.Now,
	}
	if idleTTL > 0 {
		go m.sweepLoop()
	}
	return m
}

// sweepLoop periodically evicts drafts whose sessions have gone quiet.
func (m *Manager) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for range ticker.C {
		m.sweep()
	}
}

// sweep removes drafts untouched for longer than idleTTL. Drafts with a
// submission in flight are kept; the submit completion touches them, so they
// become sweepable again afterwards.
func (m *Manager) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.idleTTL)
	evicted := 0
	for sessionID, sess := range m.sessions {
		if sess.state == StateSubmitting {
			continue
		}
		if sess.touched.Before(cutoff) {
			delete(m.sessions, sessionID)
			evicted++
		}
	}
	if evicted > 0 {
		m.logger.Debug("evicted idle sale drafts", zap.Int("count", evicted))
	}
}

// Open starts a fresh draft for the session, replacing any previous one.
// Mirrors entering the sale form: the draft is always created from empty
// defaults.
func (m *Manager) Open(sessionID string) *Draft {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess := &draftSession{draft: NewDraft(), state: StateEditing, touched: m.now()}
	m.sessions[sessionID] = sess
	return sess.draft.Clone()
}

// Current returns a snapshot of the session's draft and its state.
func (m *Manager) Current(sessionID string) (*Draft, State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil, "", ErrNoDraft
	}
	sess.touched = m.now()
	return sess.draft.Clone(), sess.state, nil
}

// Close discards the session's draft, if any. A submission already in flight
// for the draft completes harmlessly: its result is dropped.
func (m *Manager) Close(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// AddItem appends a default line item and returns the updated draft.
func (m *Manager) AddItem(sessionID string) (*Draft, error) {
	return m.edit(sessionID, func(d *Draft) {
		d.AddLineItem()
	})
}

// RemoveItem removes the line item at index. Removing the last remaining row
// is a no-op per the draft invariant.
func (m *Manager) RemoveItem(sessionID string, index int) (*Draft, error) {
	return m.edit(sessionID, func(d *Draft) {
		d.RemoveLineItem(index)
	})
}

// UpdateItem replaces one field of the line item at index.
func (m *Manager) UpdateItem(sessionID string, index int, field, value string) (*Draft, error) {
	var applied bool
	draft, err := m.edit(sessionID, func(d *Draft) {
		applied = d.UpdateLineItem(index, field, value)
	})
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, errors.New("unknown line item field or index")
	}
	return draft, nil
}

// UpdateCustomer overwrites the draft's customer and tax fields with the
// given form values.
func (m *Manager) UpdateCustomer(sessionID, name, email, phone, taxPercentage string) (*Draft, error) {
	return m.edit(sessionID, func(d *Draft) {
		d.CustomerName = name
		d.CustomerEmail = email
		d.CustomerPhone = phone
		d.TaxPercentage = taxPercentage
	})
}

// Totals returns the preview totals for the session's current draft.
func (m *Manager) Totals(sessionID string) (Totals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[sessionID]
	if !ok {
		return Totals{}, ErrNoDraft
	}
	sess.touched = m.now()
	return ComputeTotals(sess.draft), nil
}

// Submit validates the session's draft and, when it passes, posts it to the
// sales backend. The payload is captured before the call starts, so edits
// made while the request is pending do not leak into it. While a submission
// is pending the draft is in StateSubmitting and further submits return
// ErrSubmitInFlight; on completion the draft returns to StateEditing whether
// the call succeeded or not. A successful submission resets the draft;
// a failed one preserves it so the user can correct and retry.
func (m *Manager) Submit(ctx context.Context, sessionID, token string) (SubmitOutcome, error) {
	m.mu.Lock()
	sess, ok := m.sessions[sessionID]
	if !ok {
		m.mu.Unlock()
		return SubmitOutcome{}, ErrNoDraft
	}
	if sess.state == StateSubmitting {
		m.mu.Unlock()
		return SubmitOutcome{}, ErrSubmitInFlight
	}

	if result, valid := Validate(sess.draft); !valid {
		m.mu.Unlock()
		return SubmitOutcome{Validation: &result}, nil
	}

	payload := BuildSubmissionPayload(sess.draft)
	sess.state = StateSubmitting
	sess.touched = m.now()
	m.mu.Unlock()

	err := m.sales.CreateSale(ctx, token, payload)

	m.mu.Lock()
	defer m.mu.Unlock()

	// The session may have been torn down while the request was pending;
	// the late response is dropped without touching anything.
	sess, ok = m.sessions[sessionID]
	if !ok {
		m.logger.Debug("dropping sale submission result for closed session",
			zap.String("session_id", sessionID))
		return SubmitOutcome{}, ErrNoDraft
	}
	sess.state = StateEditing
	sess.touched = m.now()

	if err != nil {
		m.logger.Warn("sale submission failed",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return SubmitOutcome{Failure: err}, nil
	}

	sess.draft.Reset()
	return SubmitOutcome{Submitted: true}, nil
}

// edit applies fn to the session's draft under the lock and returns a
// snapshot of the result. Edits are allowed while a submission is pending;
// they affect the draft but not the already-captured payload.
func (m *Manager) edit(sessionID string, fn func(*Draft)) (*Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrNoDraft
	}
	sess.touched = m.now()
	fn(sess.draft)
	return sess.draft.Clone(), nil
}
