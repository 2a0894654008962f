// Package dialogue implements the conversation state machine that turns
// utterances into directives and spoken replies.
package dialogue

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"vox/internal/classifier"
	"vox/internal/domain"
	"vox/internal/replies"
	"vox/internal/replycache"
	"vox/internal/slots"
	"vox/internal/speech"
	"vox/internal/stack"
)

type Mode string

const (
	ModeIdle           Mode = "idle"
	ModeCollecting     Mode = "collecting"
	ModeConfirming     Mode = "confirming"
	ModeExecutingStack Mode = "executing-stack"
)

const highlightDurationMs = 2500

// DirectiveCompleter delivers one directive to the page host and returns
// once its side effect has settled (navigation finished, scroll done). The
// MQTT host bridge is the production implementation; NopCompleter settles
// synchronously for tests and transport-less deployments.
type DirectiveCompleter interface {
	Complete(ctx context.Context, env domain.DirectiveEnvelope) error
}

type NopCompleter struct{}

func (NopCompleter) Complete(context.Context, domain.DirectiveEnvelope) error { return nil }

// LeadSubmitter posts a completed collection to the external lead endpoint.
type LeadSubmitter interface {
	Submit(ctx context.Context, rec *domain.LeadRecord) error
}

// RecordStore persists conversation outcomes. Dialogue state itself is never
// persisted; a restarted server starts every session idle.
type RecordStore interface {
	SaveLead(ctx context.Context, rec *domain.LeadRecord) error
	LogUtterance(ctx context.Context, sessionID, text, mode string) error
}

type Config struct {
	SessionID string
	HostID    string
}

// Engine owns one conversation. All state lives behind mu and one utterance
// is fully processed before the next is accepted; there is no other locking
// anywhere in the dialogue path.
type Engine struct {
	sessionID string
	hostID    string

	cls       *classifier.Classifier
	catalog   *replies.Catalog
	completer DirectiveCompleter
	submitter LeadSubmitter
	store     RecordStore
	cache     *replycache.Cache
	gate      *speech.Gate
	logger    *slog.Logger

	mu          sync.Mutex
	mode        Mode
	session     *slots.Session
	currentPath string
	closed      bool
}

func New(cfg Config, cls *classifier.Classifier, catalog *replies.Catalog, completer DirectiveCompleter, submitter LeadSubmitter, store RecordStore, cache *replycache.Cache, logger *slog.Logger) *Engine {
	if completer == nil {
		completer = NopCompleter{}
	}
	return &Engine{
		sessionID:   cfg.SessionID,
		hostID:      cfg.HostID,
		cls:         cls,
		catalog:     catalog,
		completer:   completer,
		submitter:   submitter,
		store:       store,
		cache:       cache,
		gate:        speech.NewGate(),
		logger:      logger,
		mode:        ModeIdle,
		currentPath: "/",
	}
}

func (e *Engine) SessionID() string { return e.sessionID }

func (e *Engine) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

func (e *Engine) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// PlaybackDone is the host's signal that the last reply finished vocalizing;
// it resumes utterance capture.
func (e *Engine) PlaybackDone() {
	e.gate.DoneSpeaking()
}

// Close discards any in-progress collection or stack without persisting
// partial state. There is no resumption across sessions.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.discardSubState()
	e.closed = true
}

// Handle is the sole entry point: one utterance in, one directive and one
// spoken reply out.
func (e *Engine) Handle(ctx context.Context, raw string) domain.UtteranceResponse {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()

	if !e.gate.CaptureAllowed() {
		e.logger.Debug("utterance suppressed during playback", "session_id", e.sessionID)
		return e.ignored()
	}

	u := classifier.NewUtterance(raw)
	if classifier.IsNoise(u.Normalized) {
		return e.ignored()
	}

	var resp domain.UtteranceResponse
	switch {
	case e.cls.IsClose(u):
		resp = e.handleClose(u)
	case e.mode == ModeCollecting || e.mode == ModeConfirming:
		resp = e.handleSessionAnswer(ctx, u)
	default:
		resp = e.handleIdle(ctx, u)
	}

	if e.store != nil {
		if err := e.store.LogUtterance(ctx, e.sessionID, u.Raw, string(e.mode)); err != nil {
			e.logger.Warn("log utterance failed", "session_id", e.sessionID, "error", err)
		}
	}

	if resp.Reply.Text != "" {
		e.gate.BeginSpeaking(resp.Reply.Text)
	}

	e.logger.Info("utterance handled",
		"session_id", e.sessionID,
		"locale", u.Locale,
		"mode", e.mode,
		"directive", resp.Directive.Kind,
		"total_ms", time.Since(start).Milliseconds(),
	)
	return resp
}

func (e *Engine) ignored() domain.UtteranceResponse {
	return domain.UtteranceResponse{
		SessionID: e.sessionID,
		Directive: domain.Directive{Kind: domain.DirectiveNone},
		Mode:      string(e.mode),
		Ignored:   true,
	}
}

func (e *Engine) handleClose(u domain.Utterance) domain.UtteranceResponse {
	e.discardSubState()
	e.closed = true
	return domain.UtteranceResponse{
		SessionID: e.sessionID,
		Directive: domain.Directive{Kind: domain.DirectiveClose},
		Reply:     e.catalog.Reply(domain.IntentClose, "", u.Locale),
		Mode:      string(e.mode),
	}
}

func (e *Engine) discardSubState() {
	if e.session != nil {
		e.session.Abandon()
		e.session = nil
	}
	e.mode = ModeIdle
}

func (e *Engine) handleIdle(ctx context.Context, u domain.Utterance) domain.UtteranceResponse {
	if e.cache != nil {
		if entry, ok := e.cache.Get(u.Normalized, e.currentPath); ok {
			e.noteNavigation(entry.Directive)
			return domain.UtteranceResponse{
				SessionID: e.sessionID,
				Directive: entry.Directive,
				Reply:     entry.Reply,
				Mode:      string(ModeIdle),
			}
		}
	}

	intent := e.cls.Classify(u)
	switch intent.Kind {
	case domain.IntentIgnore:
		return e.ignored()
	case domain.IntentClose:
		return e.handleClose(u)
	case domain.IntentCollectData:
		return e.startCollection(intent.SchemaName, u.Locale, "")
	case domain.IntentTaskStack:
		return e.executeStack(ctx, intent.SubIntents, u.Locale)
	default:
		return e.oneShot(u, intent)
	}
}

// oneShot resolves navigate/explain/support/demo/inform intents without any
// mode change, and memoizes the result for repeated phrasing.
func (e *Engine) oneShot(u domain.Utterance, intent domain.Intent) domain.UtteranceResponse {
	directive := e.resolveDirective(intent)
	reply := e.replyFor(intent, u.Locale)

	if e.cache != nil {
		e.cache.Set(u.Normalized, e.currentPath, replycache.Entry{Directive: directive, Reply: reply})
	}
	e.noteNavigation(directive)

	return domain.UtteranceResponse{
		SessionID: e.sessionID,
		Directive: directive,
		Reply:     reply,
		Mode:      string(ModeIdle),
	}
}

func (e *Engine) replyFor(intent domain.Intent, locale domain.Locale) domain.SpokenReply {
	switch intent.Kind {
	case domain.IntentNavigate:
		return e.catalog.Reply(intent.Kind, "", locale, pageLabel(intent.Path, locale))
	case domain.IntentCustomerSupport:
		return e.catalog.Reply(intent.Kind, "", locale, intent.Category)
	case domain.IntentExplain, domain.IntentInform:
		return e.catalog.Reply(intent.Kind, intent.Topic, locale)
	default:
		return e.catalog.Reply(intent.Kind, "", locale)
	}
}

func (e *Engine) resolveDirective(intent domain.Intent) domain.Directive {
	switch intent.Kind {
	case domain.IntentNavigate:
		return domain.Directive{
			Kind:           domain.DirectiveNavigate,
			Path:           intent.Path,
			ScrollSelector: intent.ScrollTarget,
		}
	case domain.IntentExplain:
		if intent.ScrollTarget == "" {
			return domain.Directive{Kind: domain.DirectiveNone}
		}
		return domain.Directive{
			Kind:              domain.DirectiveHighlight,
			ScrollSelector:    intent.ScrollTarget,
			HighlightSelector: intent.ScrollTarget,
			HighlightMs:       highlightDurationMs,
		}
	case domain.IntentCustomerSupport:
		return domain.Directive{
			Kind:           domain.DirectiveNavigate,
			Path:           intent.Path,
			ScrollSelector: "#" + intent.Category,
		}
	case domain.IntentDemoBooking:
		return domain.Directive{
			Kind:     domain.DirectiveAutofill,
			Path:     intent.Path,
			Autofill: intent.Autofill,
		}
	default:
		return domain.Directive{Kind: domain.DirectiveNone}
	}
}

func (e *Engine) noteNavigation(d domain.Directive) {
	if d.Kind == domain.DirectiveNavigate && d.Path != "" {
		e.currentPath = d.Path
	}
}

func (e *Engine) startCollection(schemaName string, locale domain.Locale, narration string) domain.UtteranceResponse {
	schema, err := slots.Lookup(schemaName)
	if err != nil {
		e.logger.Warn("collection start failed", "session_id", e.sessionID, "error", err)
		return domain.UtteranceResponse{
			SessionID: e.sessionID,
			Directive: domain.Directive{Kind: domain.DirectiveNone},
			Reply:     e.catalog.Reply(domain.IntentInform, "capabilities", locale),
			Mode:      string(ModeIdle),
		}
	}

	e.session = slots.NewSession(schema, locale)
	e.mode = ModeCollecting

	text := e.session.FirstPrompt()
	if narration != "" {
		text = narration + " " + text
	}
	return domain.UtteranceResponse{
		SessionID: e.sessionID,
		Directive: domain.Directive{Kind: domain.DirectiveNone},
		Reply:     domain.SpokenReply{Text: text, Locale: locale},
		Mode:      string(ModeCollecting),
	}
}

// handleSessionAnswer routes an utterance to the active slot-filling session.
// It is deliberately never re-classified: "sales" as a company name must not
// start a new sales intent mid-collection.
func (e *Engine) handleSessionAnswer(ctx context.Context, u domain.Utterance) domain.UtteranceResponse {
	res := e.session.Submit(u.Raw)

	switch res.Kind {
	case slots.ResultCompleted:
		return e.submitLead(ctx, res.Record, u.Locale)
	case slots.ResultConfirm:
		e.mode = ModeConfirming
	default:
		e.mode = ModeCollecting
	}

	return domain.UtteranceResponse{
		SessionID: e.sessionID,
		Directive: domain.Directive{Kind: domain.DirectiveNone},
		Reply:     domain.SpokenReply{Text: res.Prompt, Locale: u.Locale},
		Mode:      string(e.mode),
	}
}

// submitLead dispatches the completed record. On failure the session returns
// to confirmation with everything retained, and an affirmative answer
// retries.
func (e *Engine) submitLead(ctx context.Context, rec *domain.LeadRecord, locale domain.Locale) domain.UtteranceResponse {
	rec.SessionID = e.sessionID

	if err := e.submitter.Submit(ctx, rec); err != nil {
		e.logger.Warn("lead submission failed", "session_id", e.sessionID, "schema", rec.SchemaName, "error", err)
		e.session.ReopenConfirmation()
		e.mode = ModeConfirming
		return domain.UtteranceResponse{
			SessionID: e.sessionID,
			Directive: domain.Directive{Kind: domain.DirectiveNone},
			Reply:     e.catalog.Reply(domain.IntentCollectData, "retry", locale),
			Mode:      string(ModeConfirming),
		}
	}

	if e.store != nil {
		if err := e.store.SaveLead(ctx, rec); err != nil {
			e.logger.Warn("persist lead failed", "session_id", e.sessionID, "error", err)
		}
	}

	e.session = nil
	e.mode = ModeIdle
	return domain.UtteranceResponse{
		SessionID: e.sessionID,
		Directive: domain.Directive{Kind: domain.DirectiveNone},
		Reply:     e.catalog.Reply(domain.IntentCollectData, "submitted", locale),
		Mode:      string(ModeIdle),
	}
}

// executeStack runs the sub-intents one at a time. Each one-shot task is
// delivered to the host and allowed to settle before the cursor advances; a
// task that fails to resolve is logged and skipped rather than aborting the
// remainder. A collect-data task hands the conversation to slot filling and
// discards any tasks after it, keeping a single non-idle substructure.
func (e *Engine) executeStack(ctx context.Context, tasks []domain.Intent, locale domain.Locale) domain.UtteranceResponse {
	st := stack.New(tasks)
	e.mode = ModeExecutingStack

	for {
		task, ok := st.Active()
		if !ok {
			break
		}

		narration := ""
		if st.Len() > 1 {
			narration = e.catalog.TaskNarration(st.Cursor()+1, st.Len(), locale)
		}

		if task.Kind == domain.IntentCollectData {
			if remaining := st.Len() - st.Cursor() - 1; remaining > 0 {
				e.logger.Warn("discarding tasks after collect-data", "session_id", e.sessionID, "discarded", remaining)
			}
			return e.startCollection(task.SchemaName, locale, narration)
		}

		directive := e.resolveDirective(task)
		env := domain.DirectiveEnvelope{
			SessionID: e.sessionID,
			HostID:    e.hostID,
			Directive: directive,
			Narration: narration,
		}
		if err := e.completer.Complete(ctx, env); err != nil {
			e.logger.Warn("task execution failed, skipping",
				"session_id", e.sessionID, "task", st.Cursor()+1, "kind", task.Kind, "error", err)
		} else {
			e.noteNavigation(directive)
		}
		st.Advance()
	}

	e.mode = ModeIdle
	return domain.UtteranceResponse{
		SessionID: e.sessionID,
		Directive: domain.Directive{Kind: domain.DirectiveNone},
		Reply:     e.catalog.Reply(domain.IntentInform, "stack-done", locale),
		Mode:      string(ModeIdle),
	}
}

func pageLabel(path string, locale domain.Locale) string {
	labels := map[string][2]string{
		"/":             {"the home page", "होम पेज"},
		"/pricing":      {"the pricing page", "प्राइसिंग पेज"},
		"/products":     {"the products page", "प्रोडक्ट पेज"},
		"/contact":      {"the contact page", "संपर्क पेज"},
		"/dashboard":    {"your dashboard", "आपका डैशबोर्ड"},
		"/team":         {"the team page", "टीम पेज"},
		"/testimonials": {"the testimonials page", "समीक्षा पेज"},
	}
	if l, ok := labels[path]; ok {
		if locale == domain.LocaleHindi {
			return l[1]
		}
		return l[0]
	}
	return path
}
