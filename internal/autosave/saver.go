package autosave

import (
	"context"
	"sync"
	"time"

	"craft-cli/internal/api"
)

type State int

const (
	// StateIdle: no edits since load; loading a document is not a save event.
	StateIdle State = iota
	// StatePending: edits observed, the debounce timer is armed.
	StatePending
	// StateSaving: an update is in flight.
	StateSaving
	// StateSaved: the last push succeeded; LastSavedAt is user-visible.
	StateSaved
	// StateFailed: the last push was rejected. Local state is kept as-is and
	// no retry is scheduled; the next edit re-arms the debounce.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateSaving:
		return "saving"
	case StateSaved:
		return "saved"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

type SaveFunc func(ctx context.Context, form api.FormUpdate) error

type Status struct {
	State       State
	LastSavedAt time.Time
	Err         error
}

// Saver debounces document edits and pushes snapshots to the remote store.
// Each Notify re-arms the timer with the newest snapshot, so the save that
// eventually fires always carries the state as of the last edit. At most one
// save is in flight at a time; a timer firing mid-save re-schedules itself
// and picks up the pending snapshot once the in-flight call resolves.
type Saver struct {
	debounce time.Duration
	save     SaveFunc

	mu          sync.Mutex
	timer       *time.Timer
	pending     bool
	running     bool
	closed      bool
	latest      api.FormUpdate
	state       State
	lastSavedAt time.Time
	lastErr     error
}

type Options struct {
	// Debounce is the quiet period after the last edit; defaults to 2s.
	Debounce time.Duration
	Save     SaveFunc
}

func New(opts Options) *Saver {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	return &Saver{
		debounce: debounce,
		save:     opts.Save,
		state:    StateIdle,
	}
}

// Notify records the snapshot of the document after an edit and re-arms the
// debounce timer, cancelling any previously pending fire.
func (s *Saver) Notify(snapshot api.FormUpdate) {
	if s == nil {
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.latest = snapshot
	s.pending = true
	s.state = StatePending
	if s.timer == nil {
		s.timer = time.AfterFunc(s.debounce, s.onTimer)
		s.mu.Unlock()
		return
	}
	s.timer.Reset(s.debounce)
	s.mu.Unlock()
}

func (s *Saver) onTimer() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.running {
		// A save is in flight; fire again to pick up the pending snapshot
		// after it resolves.
		if s.timer != nil {
			s.timer.Reset(s.debounce)
		}
		s.mu.Unlock()
		return
	}
	if !s.pending {
		s.mu.Unlock()
		return
	}
	s.pending = false
	s.running = true
	s.state = StateSaving
	snapshot := s.latest
	s.mu.Unlock()

	err := s.save(context.Background(), snapshot)

	s.mu.Lock()
	s.running = false
	if s.closed {
		// The document context changed while saving; discard the result.
		s.mu.Unlock()
		return
	}
	if err != nil {
		s.state = StateFailed
		s.lastErr = err
	} else {
		s.state = StateSaved
		s.lastSavedAt = time.Now()
		s.lastErr = nil
	}
	// Edits arrived while saving: schedule another run.
	if s.pending {
		s.state = StatePending
		if s.timer != nil {
			s.timer.Reset(s.debounce)
		}
	}
	s.mu.Unlock()
}

func (s *Saver) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{State: s.state, LastSavedAt: s.lastSavedAt, Err: s.lastErr}
}

// Close cancels any pending fire and discards the result of an in-flight
// save. Called when the builder leaves a document (quit, or switching to a
// different form id) so a stray save cannot land against a stale context.
func (s *Saver) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.closed = true
	s.pending = false
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()
}
