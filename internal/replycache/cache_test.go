package replycache

import (
	"testing"
	"time"

	"vox/internal/domain"
)

func TestGetMissesAfterTTL(t *testing.T) {
	now := time.Now()
	c := New(15 * time.Minute)
	c.clock = func() time.Time { return now }

	entry := Entry{
		Directive: domain.Directive{Kind: domain.DirectiveNavigate, Path: "/pricing"},
		Reply:     domain.SpokenReply{Text: "Taking you to the pricing page.", Locale: domain.LocaleEnglish},
	}
	c.Set("take me to pricing", "/", entry)

	got, ok := c.Get("take me to pricing", "/")
	if !ok || got.Directive.Path != "/pricing" {
		t.Fatalf("expected fresh hit, got ok=%v entry=%+v", ok, got)
	}

	now = now.Add(16 * time.Minute)
	if _, ok := c.Get("take me to pricing", "/"); ok {
		t.Fatalf("expired entry must not be served")
	}
}

func TestKeyIncludesCurrentPath(t *testing.T) {
	c := New(time.Minute)
	c.Set("explain this", "/pricing", Entry{Reply: domain.SpokenReply{Text: "pricing"}})

	if _, ok := c.Get("explain this", "/products"); ok {
		t.Fatalf("entry cached on one page must not serve another")
	}
	if _, ok := c.Get("explain this", "/pricing"); !ok {
		t.Fatalf("expected hit on the original page")
	}
}

func TestSweepRemovesOnlyExpired(t *testing.T) {
	now := time.Now()
	c := New(10 * time.Minute)
	c.clock = func() time.Time { return now }

	c.Set("old", "/", Entry{})
	now = now.Add(8 * time.Minute)
	c.Set("fresh", "/", Entry{})
	now = now.Add(3 * time.Minute)

	if removed := c.Sweep(); removed != 1 {
		t.Fatalf("expected 1 entry swept, got %d", removed)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 entry left, got %d", c.Len())
	}
	if _, ok := c.Get("fresh", "/"); !ok {
		t.Fatalf("fresh entry should survive the sweep")
	}
}

func TestZeroTTLDefaults(t *testing.T) {
	c := New(0)
	if c.ttl != 15*time.Minute {
		t.Fatalf("expected 15 minute default TTL, got %v", c.ttl)
	}
}
