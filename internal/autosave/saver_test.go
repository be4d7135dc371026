package autosave

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"craft-cli/internal/api"
)

type saveRecorder struct {
	mu    sync.Mutex
	calls []api.FormUpdate
	err   error

	// concurrency tracking
	inFlight    int
	maxInFlight int

	// optional gate: when set, saves block until released.
	gate chan struct{}
}

func (r *saveRecorder) save(ctx context.Context, form api.FormUpdate) error {
	r.mu.Lock()
	r.inFlight++
	if r.inFlight > r.maxInFlight {
		r.maxInFlight = r.inFlight
	}
	gate := r.gate
	r.mu.Unlock()

	if gate != nil {
		<-gate
	}

	r.mu.Lock()
	r.inFlight--
	r.calls = append(r.calls, form)
	err := r.err
	r.mu.Unlock()
	return err
}

func (r *saveRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func (r *saveRecorder) last() api.FormUpdate {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[len(r.calls)-1]
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestSaver_DebounceCoalescesEdits(t *testing.T) {
	rec := &saveRecorder{}
	s := New(Options{Debounce: 80 * time.Millisecond, Save: rec.save})
	defer s.Close()

	if got := s.Status().State; got != StateIdle {
		t.Fatalf("expected idle before first edit; got %v", got)
	}

	// Three edits inside one debounce window: exactly one save, carrying the
	// last edit's snapshot.
	s.Notify(api.FormUpdate{Title: "edit 1"})
	time.Sleep(20 * time.Millisecond)
	s.Notify(api.FormUpdate{Title: "edit 2"})
	time.Sleep(20 * time.Millisecond)
	s.Notify(api.FormUpdate{Title: "edit 3"})

	if got := s.Status().State; got != StatePending {
		t.Fatalf("expected pending while timer armed; got %v", got)
	}

	waitFor(t, "save to fire", func() bool { return rec.count() == 1 })
	if got := rec.last().Title; got != "edit 3" {
		t.Fatalf("save carried stale snapshot: %q", got)
	}

	waitFor(t, "saved state", func() bool { return s.Status().State == StateSaved })
	if s.Status().LastSavedAt.IsZero() {
		t.Fatalf("expected LastSavedAt to be recorded")
	}

	// No further saves without further edits.
	time.Sleep(200 * time.Millisecond)
	if rec.count() != 1 {
		t.Fatalf("expected exactly one save; got %d", rec.count())
	}
}

func TestSaver_FailureKeepsStateAndWaitsForNextEdit(t *testing.T) {
	rec := &saveRecorder{err: errors.New("boom")}
	s := New(Options{Debounce: 30 * time.Millisecond, Save: rec.save})
	defer s.Close()

	s.Notify(api.FormUpdate{Title: "v1"})
	waitFor(t, "failed state", func() bool { return s.Status().State == StateFailed })
	if s.Status().Err == nil {
		t.Fatalf("expected error retained in status")
	}

	// No automatic retry.
	time.Sleep(150 * time.Millisecond)
	if rec.count() != 1 {
		t.Fatalf("expected no automatic retry; got %d saves", rec.count())
	}

	// The next edit re-arms the cycle.
	rec.mu.Lock()
	rec.err = nil
	rec.mu.Unlock()
	s.Notify(api.FormUpdate{Title: "v2"})
	waitFor(t, "retry after edit", func() bool { return rec.count() == 2 })
	waitFor(t, "saved state", func() bool { return s.Status().State == StateSaved })
}

func TestSaver_SingleFlightSerializesSaves(t *testing.T) {
	gate := make(chan struct{})
	rec := &saveRecorder{gate: gate}
	s := New(Options{Debounce: 20 * time.Millisecond, Save: rec.save})
	defer s.Close()

	s.Notify(api.FormUpdate{Title: "v1"})
	waitFor(t, "first save in flight", func() bool { return s.Status().State == StateSaving })

	// Edits during an in-flight save must not start a second one.
	s.Notify(api.FormUpdate{Title: "v2"})
	time.Sleep(60 * time.Millisecond)
	if rec.count() != 0 {
		t.Fatalf("first save should still be blocked")
	}

	gate <- struct{}{} // release first save
	gate <- struct{}{} // release the follow-up

	waitFor(t, "both saves done", func() bool { return rec.count() == 2 })

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.maxInFlight != 1 {
		t.Fatalf("saves overlapped: max in flight %d", rec.maxInFlight)
	}
	if rec.calls[1].Title != "v2" {
		t.Fatalf("follow-up save carried stale snapshot: %q", rec.calls[1].Title)
	}
}

func TestSaver_CloseCancelsPendingSave(t *testing.T) {
	rec := &saveRecorder{}
	s := New(Options{Debounce: 60 * time.Millisecond, Save: rec.save})

	s.Notify(api.FormUpdate{Title: "doomed"})
	s.Close()

	time.Sleep(200 * time.Millisecond)
	if rec.count() != 0 {
		t.Fatalf("pending save fired after Close")
	}

	// Notify after Close is ignored.
	s.Notify(api.FormUpdate{Title: "late"})
	time.Sleep(150 * time.Millisecond)
	if rec.count() != 0 {
		t.Fatalf("save fired after Close")
	}
}

func TestSaver_CloseDiscardsInFlightResult(t *testing.T) {
	gate := make(chan struct{})
	rec := &saveRecorder{gate: gate}
	s := New(Options{Debounce: 20 * time.Millisecond, Save: rec.save})

	s.Notify(api.FormUpdate{Title: "v1"})
	waitFor(t, "save in flight", func() bool { return s.Status().State == StateSaving })

	s.Close()
	gate <- struct{}{} // let the in-flight save finish

	waitFor(t, "save completion", func() bool { return rec.count() == 1 })
	// The result is discarded: status stays as it was at Close time.
	if got := s.Status().State; got == StateSaved {
		t.Fatalf("in-flight result applied after Close")
	}
}
