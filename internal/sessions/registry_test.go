package sessions

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"vox/internal/dialogue"
	"vox/internal/domain"
)

func newTestEngine(id string) *dialogue.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return dialogue.New(dialogue.Config{SessionID: id}, nil, nil, nil, nil, nil, nil, logger)
}

func TestGetReturnsStoredEngine(t *testing.T) {
	r := NewRegistry(time.Minute)
	r.Put(newTestEngine("s1"))

	e, err := r.Get("s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.SessionID() != "s1" {
		t.Fatalf("expected s1, got %s", e.SessionID())
	}
}

func TestGetUnknownSession(t *testing.T) {
	r := NewRegistry(time.Minute)
	if _, err := r.Get("missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestRemoveClosesEngine(t *testing.T) {
	r := NewRegistry(time.Minute)
	e := newTestEngine("s1")
	r.Put(e)
	r.Remove("s1")

	if !e.Closed() {
		t.Fatalf("remove should close the engine")
	}
	if _, err := r.Get("s1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("removed session should be gone, got %v", err)
	}
}

func TestClosedEngineEvictedOnGet(t *testing.T) {
	r := NewRegistry(time.Minute)
	e := newTestEngine("s1")
	r.Put(e)
	e.Close()

	if _, err := r.Get("s1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("closed session should be evicted, got %v", err)
	}
	if r.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", r.Len())
	}
}

func TestIdleExpiry(t *testing.T) {
	r := NewRegistry(20 * time.Millisecond)
	r.Put(newTestEngine("s1"))

	time.Sleep(40 * time.Millisecond)
	if _, err := r.Get("s1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("idle session should expire, got %v", err)
	}
}

func TestSweepEvictsExpired(t *testing.T) {
	r := NewRegistry(20 * time.Millisecond)
	r.Put(newTestEngine("s1"))
	r.Put(newTestEngine("s2"))

	time.Sleep(40 * time.Millisecond)
	if removed := r.Sweep(); removed != 2 {
		t.Fatalf("expected 2 swept, got %d", removed)
	}
	if r.Len() != 0 {
		t.Fatalf("expected empty registry after sweep, got %d", r.Len())
	}
}
