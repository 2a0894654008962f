package slots

import (
	"fmt"
	"strings"
	"time"

	"vox/internal/domain"
)

type Status string

const (
	StatusCollecting  Status = "collecting"
	StatusConfirming  Status = "awaiting-confirmation"
	StatusAmendChoice Status = "awaiting-amend-field"
	StatusCompleted   Status = "completed"
	StatusAbandoned   Status = "abandoned"
)

type ResultKind string

const (
	// ResultPrompt asks for the field named in Field.
	ResultPrompt ResultKind = "prompt"
	// ResultRejected re-prompts the same field; nothing was stored.
	ResultRejected ResultKind = "rejected"
	// ResultConfirm echoes all values and asks yes / no / start over.
	ResultConfirm ResultKind = "confirm"
	// ResultAmendChoice asks which field to change.
	ResultAmendChoice ResultKind = "amend-choice"
	// ResultCompleted carries the finished record.
	ResultCompleted ResultKind = "completed"
)

type Result struct {
	Kind   ResultKind
	Field  string
	Prompt string
	Record *domain.LeadRecord
}

// Session is the mutable state of one in-progress collection. It is owned by
// a single dialogue engine and never accessed concurrently.
type Session struct {
	schema Schema
	locale domain.Locale
	values map[string]string
	index  int
	status Status
}

func NewSession(schema Schema, locale domain.Locale) *Session {
	return &Session{
		schema: schema,
		locale: locale,
		values: make(map[string]string),
		status: StatusCollecting,
	}
}

func (s *Session) SchemaName() string { return s.schema.Name }
func (s *Session) Status() Status     { return s.status }
func (s *Session) Index() int         { return s.index }

func (s *Session) Values() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// FirstPrompt is the opening question for the schema's first field.
func (s *Session) FirstPrompt() string {
	return s.schema.Fields[0].Prompts[s.locale]
}

// Abandon discards the collection. Stored values are dropped; nothing was
// submitted.
func (s *Session) Abandon() {
	s.status = StatusAbandoned
}

// ReopenConfirmation returns a completed-but-unsubmitted session to the
// confirmation step. Used after a lead submission failure so collected data
// is retained for retry.
func (s *Session) ReopenConfirmation() {
	s.status = StatusConfirming
}

// Submit feeds one utterance into the session and returns what to ask next.
// The field index only advances after the current field's validator accepts
// the input; rejected answers leave index and values untouched.
func (s *Session) Submit(answer string) Result {
	answer = strings.TrimSpace(answer)

	switch s.status {
	case StatusCollecting:
		return s.submitFieldAnswer(answer)
	case StatusConfirming:
		return s.submitConfirmation(answer)
	case StatusAmendChoice:
		return s.submitAmendChoice(answer)
	default:
		return Result{Kind: ResultCompleted, Record: s.record()}
	}
}

func (s *Session) submitFieldAnswer(answer string) Result {
	if s.index == 0 || !s.schema.MultiExtractFirstFieldOnly {
		if n := s.multiExtract(answer); n >= 2 {
			return s.advanceToMissing()
		}
	}

	field := s.schema.Fields[s.index]
	validate := field.Validate
	if validate == nil {
		validate = validateNonEmpty(field.Name)
	}
	if err := validate(answer); err != nil {
		return Result{Kind: ResultRejected, Field: field.Name, Prompt: field.Rejects[s.locale]}
	}

	s.values[field.Name] = answer
	return s.advanceToMissing()
}

// multiExtract runs every absent field's extractor over the answer and
// batch-writes all hits. Returns the number of fields written; fewer than two
// hits means the strict single-field path should handle the answer instead.
func (s *Session) multiExtract(answer string) int {
	extracted := make(map[string]string)
	for _, f := range s.schema.Fields {
		if f.Extract == nil {
			continue
		}
		if _, have := s.values[f.Name]; have {
			continue
		}
		if v, ok := f.Extract(answer); ok {
			extracted[f.Name] = v
		}
	}
	if len(extracted) < 2 {
		return 0
	}
	for k, v := range extracted {
		s.values[k] = v
	}
	return len(extracted)
}

// advanceToMissing moves the index to the first field without a value, or to
// confirmation when every field is filled.
func (s *Session) advanceToMissing() Result {
	for i, f := range s.schema.Fields {
		if _, ok := s.values[f.Name]; !ok {
			s.index = i
			return Result{Kind: ResultPrompt, Field: f.Name, Prompt: f.Prompts[s.locale]}
		}
	}
	s.index = len(s.schema.Fields)
	s.status = StatusConfirming
	return Result{Kind: ResultConfirm, Prompt: s.confirmationPrompt()}
}

var affirmWords = []string{
	"yes", "yeah", "yep", "sure", "confirm", "correct", "right",
	"haan", "han", "ji", "sahi", "हाँ", "जी", "सही",
}

var startOverWords = []string{
	"start over", "start again", "restart", "begin again", "reset",
	"phir se", "dobara", "फिर से", "दोबारा",
}

var negativeWords = []string{
	"no", "nope", "wrong", "incorrect", "change",
	"nahi", "nahin", "galat", "नहीं", "गलत",
}

func (s *Session) submitConfirmation(answer string) Result {
	lower := strings.ToLower(answer)

	// Start-over is checked before plain negatives so "no, start over"
	// resets instead of entering the amend flow.
	if matchAny(lower, startOverWords) {
		s.values = make(map[string]string)
		s.index = 0
		s.status = StatusCollecting
		first := s.schema.Fields[0]
		return Result{Kind: ResultPrompt, Field: first.Name, Prompt: first.Prompts[s.locale]}
	}
	if matchAny(lower, affirmWords) {
		s.status = StatusCompleted
		return Result{Kind: ResultCompleted, Record: s.record()}
	}
	if matchAny(lower, negativeWords) {
		s.status = StatusAmendChoice
		return Result{Kind: ResultAmendChoice, Prompt: s.amendPrompt()}
	}
	return Result{Kind: ResultConfirm, Prompt: s.confirmationPrompt()}
}

// submitAmendChoice jumps back to the named field. Later fields keep their
// values so unrelated answers are not re-asked; advanceToMissing skips them.
func (s *Session) submitAmendChoice(answer string) Result {
	lower := strings.ToLower(answer)
	for _, f := range s.schema.Fields {
		if !matchAny(lower, f.Aliases) {
			continue
		}
		delete(s.values, f.Name)
		s.index = s.schema.fieldIndex(f.Name)
		s.status = StatusCollecting
		return Result{Kind: ResultPrompt, Field: f.Name, Prompt: f.Prompts[s.locale]}
	}
	return Result{Kind: ResultAmendChoice, Prompt: s.amendPrompt()}
}

func (s *Session) record() *domain.LeadRecord {
	return &domain.LeadRecord{
		SchemaName: s.schema.Name,
		Values:     s.Values(),
		Locale:     s.locale,
		CreatedAt:  time.Now().UTC(),
	}
}

func (s *Session) confirmationPrompt() string {
	parts := make([]string, 0, len(s.schema.Fields))
	for _, f := range s.schema.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Name, s.values[f.Name]))
	}
	summary := strings.Join(parts, ", ")
	if s.locale == domain.LocaleHindi {
		return fmt.Sprintf("मेरे पास यह जानकारी है — %s। क्या मैं इसे सबमिट कर दूँ? हाँ, नहीं या फिर से कहें।", summary)
	}
	return fmt.Sprintf("Here is what I have — %s. Shall I submit it? Say yes, no, or start over.", summary)
}

func (s *Session) amendPrompt() string {
	if s.locale == domain.LocaleHindi {
		return "कौन सी जानकारी बदलनी है?"
	}
	return "Which detail should I change?"
}

// matchAny matches multiword phrases as substrings and single words as whole
// tokens, so "no" never fires inside "know".
func matchAny(text string, words []string) bool {
	var tokens []string
	for _, w := range words {
		if strings.Contains(w, " ") {
			if strings.Contains(text, w) {
				return true
			}
			continue
		}
		if tokens == nil {
			tokens = strings.FieldsFunc(text, func(r rune) bool {
				return r == ' ' || r == ',' || r == '.' || r == '!' || r == '?' || r == '।'
			})
		}
		for _, tok := range tokens {
			if tok == w {
				return true
			}
		}
	}
	return false
}
