package dialogue

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"

	"vox/internal/classifier"
	"vox/internal/domain"
	"vox/internal/replies"
	"vox/internal/replycache"
)

type fakeCompleter struct {
	envs []domain.DirectiveEnvelope
	err  error
}

func (f *fakeCompleter) Complete(_ context.Context, env domain.DirectiveEnvelope) error {
	f.envs = append(f.envs, env)
	return f.err
}

type fakeSubmitter struct {
	failures  int
	submitted []*domain.LeadRecord
}

func (f *fakeSubmitter) Submit(_ context.Context, rec *domain.LeadRecord) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("lead endpoint unavailable")
	}
	f.submitted = append(f.submitted, rec)
	return nil
}

type fakeStore struct {
	leads      []*domain.LeadRecord
	utterances []string
}

func (f *fakeStore) SaveLead(_ context.Context, rec *domain.LeadRecord) error {
	f.leads = append(f.leads, rec)
	return nil
}

func (f *fakeStore) LogUtterance(_ context.Context, _, text, _ string) error {
	f.utterances = append(f.utterances, text)
	return nil
}

func newTestEngine(completer DirectiveCompleter, submitter LeadSubmitter, store RecordStore) *Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(Config{SessionID: "test-session", HostID: "host-1"},
		classifier.Default(), replies.NewCatalog(), completer, submitter, store,
		replycache.New(time.Minute), logger)
}

// say handles one utterance and reports playback completion so the speech
// gate does not suppress the next one.
func say(e *Engine, text string) domain.UtteranceResponse {
	resp := e.Handle(context.Background(), text)
	e.PlaybackDone()
	return resp
}

func TestNavigateOneShot(t *testing.T) {
	e := newTestEngine(nil, &fakeSubmitter{}, &fakeStore{})

	resp := say(e, "take me to pricing")
	if resp.Directive.Kind != domain.DirectiveNavigate || resp.Directive.Path != "/pricing" {
		t.Fatalf("expected navigate /pricing, got kind=%s path=%s", resp.Directive.Kind, resp.Directive.Path)
	}
	if resp.Mode != string(ModeIdle) {
		t.Fatalf("one-shot must stay idle, got %s", resp.Mode)
	}
	if resp.Reply.Text == "" {
		t.Fatalf("expected a spoken reply")
	}
}

func TestNoiseLeavesSessionStateUntouched(t *testing.T) {
	e := newTestEngine(nil, &fakeSubmitter{}, &fakeStore{})

	say(e, "connect me with sales")
	if e.Mode() != ModeCollecting {
		t.Fatalf("expected collecting mode, got %s", e.Mode())
	}
	index := e.session.Index()

	resp := say(e, "(background noise)")
	if !resp.Ignored {
		t.Fatalf("noise must be ignored")
	}
	if e.Mode() != ModeCollecting || e.session.Index() != index {
		t.Fatalf("noise must not advance the session, mode=%s index=%d", e.Mode(), e.session.Index())
	}
}

func TestCollectionAnswersAreNeverReclassified(t *testing.T) {
	e := newTestEngine(nil, &fakeSubmitter{}, &fakeStore{})
	say(e, "connect me with sales")

	// "pricing" would navigate from idle; mid-collection it is the name answer.
	resp := say(e, "pricing")
	if resp.Directive.Kind != domain.DirectiveNone {
		t.Fatalf("slot answer must not produce a directive, got %s", resp.Directive.Kind)
	}
	if e.Mode() != ModeCollecting {
		t.Fatalf("expected collecting mode, got %s", e.Mode())
	}
	if got := e.session.Values()["name"]; got != "pricing" {
		t.Fatalf("expected the answer stored as name, got %q", got)
	}
}

func TestSubmissionFailureRetainsDataForRetry(t *testing.T) {
	submitter := &fakeSubmitter{failures: 1}
	store := &fakeStore{}
	e := newTestEngine(nil, submitter, store)

	say(e, "connect me with sales")
	say(e, "John Doe")
	say(e, "john@acme.com")
	say(e, "9876543210")
	say(e, "Acme Corp")
	say(e, "analytics for my team")
	if e.Mode() != ModeConfirming {
		t.Fatalf("expected confirming mode, got %s", e.Mode())
	}

	// First yes hits the failing endpoint; the session returns to
	// confirmation with everything retained.
	say(e, "yes")
	if e.Mode() != ModeConfirming {
		t.Fatalf("expected confirming mode after failure, got %s", e.Mode())
	}
	if len(store.leads) != 0 {
		t.Fatalf("failed submission must not be persisted")
	}

	say(e, "yes")
	if e.Mode() != ModeIdle {
		t.Fatalf("expected idle after successful retry, got %s", e.Mode())
	}
	if len(submitter.submitted) != 1 {
		t.Fatalf("expected exactly one successful submission, got %d", len(submitter.submitted))
	}
	if len(store.leads) != 1 {
		t.Fatalf("expected persisted lead, got %d", len(store.leads))
	}
	rec := submitter.submitted[0]
	if rec.SessionID != "test-session" {
		t.Fatalf("expected session id on record, got %q", rec.SessionID)
	}
	if len(rec.Values) != 5 {
		t.Fatalf("expected all collected values retained, got %d", len(rec.Values))
	}
}

func TestCloseMidCollectionDiscardsSession(t *testing.T) {
	e := newTestEngine(nil, &fakeSubmitter{}, &fakeStore{})
	say(e, "connect me with sales")
	say(e, "John Doe")

	resp := say(e, "bye")
	if resp.Directive.Kind != domain.DirectiveClose {
		t.Fatalf("expected close directive, got %s", resp.Directive.Kind)
	}
	if !e.Closed() {
		t.Fatalf("engine should be closed")
	}
	if e.session != nil {
		t.Fatalf("partial collection must be discarded on close")
	}
}

func TestStackExecutesInOrderWithNarration(t *testing.T) {
	completer := &fakeCompleter{}
	e := newTestEngine(completer, &fakeSubmitter{}, &fakeStore{})

	resp := say(e, "take me to pricing and then take me to contact")
	if len(completer.envs) != 2 {
		t.Fatalf("expected 2 directives delivered, got %d", len(completer.envs))
	}
	if completer.envs[0].Directive.Path != "/pricing" || completer.envs[1].Directive.Path != "/contact" {
		t.Fatalf("unexpected task order: %s, %s", completer.envs[0].Directive.Path, completer.envs[1].Directive.Path)
	}
	if completer.envs[0].Narration != "Task 1 of 2." || completer.envs[1].Narration != "Task 2 of 2." {
		t.Fatalf("unexpected narrations: %q, %q", completer.envs[0].Narration, completer.envs[1].Narration)
	}
	if completer.envs[0].HostID != "host-1" {
		t.Fatalf("expected host id on envelope, got %q", completer.envs[0].HostID)
	}
	if e.Mode() != ModeIdle {
		t.Fatalf("expected idle after stack, got %s", e.Mode())
	}
	if resp.Mode != string(ModeIdle) {
		t.Fatalf("expected idle response mode, got %s", resp.Mode)
	}
}

func TestStackFailedTaskIsSkipped(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("host gone")}
	e := newTestEngine(completer, &fakeSubmitter{}, &fakeStore{})

	say(e, "take me to pricing and then take me to contact")
	if len(completer.envs) != 2 {
		t.Fatalf("a failed task must not abort the remainder, delivered %d", len(completer.envs))
	}
	if e.Mode() != ModeIdle {
		t.Fatalf("expected idle after stack, got %s", e.Mode())
	}
}

func TestStackHandsOffToCollection(t *testing.T) {
	completer := &fakeCompleter{}
	e := newTestEngine(completer, &fakeSubmitter{}, &fakeStore{})

	resp := say(e, "take me to pricing and then connect me with sales")
	if len(completer.envs) != 1 {
		t.Fatalf("expected one navigation before the handoff, got %d", len(completer.envs))
	}
	if e.Mode() != ModeCollecting {
		t.Fatalf("expected collecting mode after handoff, got %s", e.Mode())
	}
	if !strings.HasPrefix(resp.Reply.Text, "Task 2 of 2.") {
		t.Fatalf("expected narration before the first prompt, got %q", resp.Reply.Text)
	}
}

func TestSpeechGateSuppressesEcho(t *testing.T) {
	e := newTestEngine(nil, &fakeSubmitter{}, &fakeStore{})

	first := e.Handle(context.Background(), "take me to pricing")
	if first.Ignored {
		t.Fatalf("first utterance should be processed")
	}

	// No playback completion yet: the next utterance is the engine hearing
	// its own reply.
	echo := e.Handle(context.Background(), "taking you to the pricing page")
	if !echo.Ignored {
		t.Fatalf("utterance during playback must be suppressed")
	}

	e.PlaybackDone()
	resp := say(e, "take me to contact")
	if resp.Ignored {
		t.Fatalf("capture should resume after playback completion")
	}
}

func TestRepeatedOneShotIsCached(t *testing.T) {
	e := newTestEngine(nil, &fakeSubmitter{}, &fakeStore{})

	first := say(e, "explain pricing")
	if e.cache.Len() != 1 {
		t.Fatalf("expected one cached entry, got %d", e.cache.Len())
	}
	second := say(e, "explain pricing")
	if !reflect.DeepEqual(second.Directive, first.Directive) || second.Reply != first.Reply {
		t.Fatalf("cached repeat should be identical: %+v vs %+v", first, second)
	}
	if e.cache.Len() != 1 {
		t.Fatalf("repeat must not add entries, got %d", e.cache.Len())
	}
}

func TestUtterancesAreLogged(t *testing.T) {
	store := &fakeStore{}
	e := newTestEngine(nil, &fakeSubmitter{}, store)

	say(e, "take me to pricing")
	say(e, "thanks")
	if len(store.utterances) != 2 {
		t.Fatalf("expected 2 logged utterances, got %d", len(store.utterances))
	}
}
