package domain

import "time"

type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleHindi   Locale = "hi"
)

// Utterance is one unit of transcribed speech input. Normalized and Locale are
// derived once at ingestion and never recomputed.
type Utterance struct {
	Raw        string
	Normalized string
	Locale     Locale
}

type IntentKind string

const (
	IntentIgnore          IntentKind = "ignore"
	IntentInform          IntentKind = "inform"
	IntentClose           IntentKind = "close"
	IntentNavigate        IntentKind = "navigate"
	IntentExplain         IntentKind = "explain"
	IntentCollectData     IntentKind = "collect_data"
	IntentCustomerSupport IntentKind = "customer_support"
	IntentDemoBooking     IntentKind = "demo_booking"
	IntentTaskStack       IntentKind = "task_stack"
)

// Intent is the classified meaning of a single utterance. It is transient:
// one per classify call, no lifecycle of its own. Only the fields relevant to
// Kind are populated.
type Intent struct {
	Kind         IntentKind
	Path         string
	ScrollTarget string
	Topic        string
	SchemaName   string
	Category     string
	Autofill     map[string]string
	SubIntents   []Intent
}

type DirectiveKind string

const (
	DirectiveNone      DirectiveKind = "none"
	DirectiveNavigate  DirectiveKind = "navigate"
	DirectiveScroll    DirectiveKind = "scroll"
	DirectiveHighlight DirectiveKind = "highlight"
	DirectiveAutofill  DirectiveKind = "autofill"
	DirectiveClose     DirectiveKind = "close"
)

// Directive is the fully resolved instruction handed to the page host.
// A navigate directive may carry a scroll selector for the landing position;
// highlight and autofill directives imply the host is already on the page.
type Directive struct {
	Kind              DirectiveKind     `json:"kind"`
	Path              string            `json:"path,omitempty"`
	ScrollSelector    string            `json:"scroll_selector,omitempty"`
	HighlightSelector string            `json:"highlight_selector,omitempty"`
	HighlightMs       int               `json:"highlight_ms,omitempty"`
	Autofill          map[string]string `json:"autofill,omitempty"`
}

type SpokenReply struct {
	Text   string `json:"text"`
	Locale Locale `json:"locale"`
}

// LeadRecord is a completed slot-filling collection, ready for submission to
// the external lead endpoint.
type LeadRecord struct {
	SessionID  string            `json:"session_id"`
	SchemaName string            `json:"schema"`
	Values     map[string]string `json:"values"`
	Locale     Locale            `json:"locale"`
	CreatedAt  time.Time         `json:"created_at"`
}

// MQTT payloads for the host bridge.

type DirectiveEnvelope struct {
	RequestID string    `json:"request_id"`
	SessionID string    `json:"session_id"`
	HostID    string    `json:"host_id,omitempty"`
	Directive Directive `json:"directive"`
	Narration string    `json:"narration,omitempty"`
}

type DirectiveAck struct {
	RequestID string `json:"request_id"`
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
}

// HTTP API payloads.

type UtteranceRequest struct {
	Text string `json:"text"`
}

type UtteranceResponse struct {
	SessionID string      `json:"session_id"`
	Directive Directive   `json:"directive"`
	Reply     SpokenReply `json:"reply"`
	Mode      string      `json:"mode"`
	Ignored   bool        `json:"ignored,omitempty"`
}

type CreateSessionRequest struct {
	HostID string `json:"host_id,omitempty"`
	Locale Locale `json:"locale,omitempty"`
}

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}
