package classifier

import (
	"testing"

	"vox/internal/domain"
)

func classify(t *testing.T, text string) domain.Intent {
	t.Helper()
	return Default().Classify(NewUtterance(text))
}

func TestExactPhraseBeatsKeywordRules(t *testing.T) {
	intent := classify(t, "hi")
	if intent.Kind != domain.IntentInform || intent.Topic != "greeting" {
		t.Fatalf("expected greeting inform, got kind=%s topic=%s", intent.Kind, intent.Topic)
	}

	// The greeting token inside a longer command must not short-circuit.
	intent = classify(t, "hi can you take me to pricing")
	if intent.Kind != domain.IntentNavigate || intent.Path != "/pricing" {
		t.Fatalf("expected navigate /pricing, got kind=%s path=%s", intent.Kind, intent.Path)
	}
}

func TestMeetingOutranksSales(t *testing.T) {
	intent := classify(t, "i want to schedule a sales meeting")
	if intent.Kind != domain.IntentCollectData {
		t.Fatalf("expected collect_data, got %s", intent.Kind)
	}
	if intent.SchemaName != "meeting" {
		t.Fatalf("expected meeting schema, got %s", intent.SchemaName)
	}
}

func TestDemoFormOutranksSalesDemoKeyword(t *testing.T) {
	intent := classify(t, "can you fill out the demo form for me")
	if intent.Kind != domain.IntentDemoBooking {
		t.Fatalf("expected demo_booking, got %s", intent.Kind)
	}
	if len(intent.Autofill) == 0 {
		t.Fatalf("expected autofill values on demo booking")
	}

	intent = classify(t, "i want a demo")
	if intent.Kind != domain.IntentCollectData || intent.SchemaName != "sales" {
		t.Fatalf("bare demo should collect the sales schema, got kind=%s schema=%s", intent.Kind, intent.SchemaName)
	}
}

func TestExplainVerbWinsOverBarePageName(t *testing.T) {
	intent := classify(t, "explain pricing")
	if intent.Kind != domain.IntentExplain || intent.Topic != "pricing" {
		t.Fatalf("expected explain pricing, got kind=%s topic=%s", intent.Kind, intent.Topic)
	}
	if intent.ScrollTarget != "#pricing-table" {
		t.Fatalf("expected scroll target #pricing-table, got %s", intent.ScrollTarget)
	}

	intent = classify(t, "pricing")
	if intent.Kind != domain.IntentNavigate || intent.Path != "/pricing" {
		t.Fatalf("bare page name should navigate, got kind=%s path=%s", intent.Kind, intent.Path)
	}
}

func TestSupportCategories(t *testing.T) {
	cases := []struct {
		text     string
		category string
	}{
		{"i need a refund for my order", "refund"},
		{"there is a payment issue on my invoice", "billing"},
		{"the dashboard is not working", "technical"},
		{"i forgot my password", "account"},
	}
	for _, tc := range cases {
		intent := classify(t, tc.text)
		if intent.Kind != domain.IntentCustomerSupport {
			t.Fatalf("%q: expected customer_support, got %s", tc.text, intent.Kind)
		}
		if intent.Category != tc.category {
			t.Fatalf("%q: expected category %s, got %s", tc.text, tc.category, intent.Category)
		}
		if intent.Path != "/support" {
			t.Fatalf("%q: expected /support path, got %s", tc.text, intent.Path)
		}
	}
}

func TestConjunctionBuildsTaskStack(t *testing.T) {
	intent := classify(t, "take me to pricing and then connect me with sales")
	if intent.Kind != domain.IntentTaskStack {
		t.Fatalf("expected task_stack, got %s", intent.Kind)
	}
	if len(intent.SubIntents) != 2 {
		t.Fatalf("expected 2 sub-intents, got %d", len(intent.SubIntents))
	}
	if intent.SubIntents[0].Kind != domain.IntentNavigate || intent.SubIntents[0].Path != "/pricing" {
		t.Fatalf("first task should navigate /pricing, got kind=%s path=%s", intent.SubIntents[0].Kind, intent.SubIntents[0].Path)
	}
	if intent.SubIntents[1].Kind != domain.IntentCollectData || intent.SubIntents[1].SchemaName != "sales" {
		t.Fatalf("second task should collect sales, got kind=%s schema=%s", intent.SubIntents[1].Kind, intent.SubIntents[1].SchemaName)
	}
}

func TestConjunctionWithOneResolvableFragmentFallsThrough(t *testing.T) {
	// "and" alone must not force a stack when only one fragment means anything.
	intent := classify(t, "go to pricing and something something")
	if intent.Kind != domain.IntentNavigate || intent.Path != "/pricing" {
		t.Fatalf("expected plain navigate, got kind=%s path=%s", intent.Kind, intent.Path)
	}
}

func TestUnknownUtteranceFallsBackToCapabilities(t *testing.T) {
	intent := classify(t, "the weather is nice today")
	if intent.Kind != domain.IntentInform || intent.Topic != "capabilities" {
		t.Fatalf("expected capabilities fallback, got kind=%s topic=%s", intent.Kind, intent.Topic)
	}
}

func TestIsCloseExactOnly(t *testing.T) {
	c := Default()
	if !c.IsClose(NewUtterance("bye")) {
		t.Fatalf("bye should be a close phrase")
	}
	if !c.IsClose(NewUtterance("बंद करो")) {
		t.Fatalf("Hindi close phrase should be recognized")
	}
	if c.IsClose(NewUtterance("bye the way, what about pricing")) {
		t.Fatalf("close token inside a longer utterance must not close")
	}
}

func TestNoiseFilter(t *testing.T) {
	for _, text := range []string{"", "   ", "(background noise)", "[inaudible]", "...", "?!"} {
		if !IsNoise(NewUtterance(text).Normalized) {
			t.Fatalf("%q should be noise", text)
		}
	}
	if IsNoise(NewUtterance("take me home").Normalized) {
		t.Fatalf("a real utterance must not be noise")
	}
}

func TestDetectLocale(t *testing.T) {
	cases := []struct {
		text   string
		locale domain.Locale
	}{
		{"take me to pricing", domain.LocaleEnglish},
		{"मुझे कीमत बताओ", domain.LocaleHindi},
		{"mujhe pricing dikhao", domain.LocaleHindi},
		{"price kya hai", domain.LocaleHindi},
		{"hello there", domain.LocaleEnglish},
	}
	for _, tc := range cases {
		if got := DetectLocale(tc.text); got != tc.locale {
			t.Fatalf("%q: expected locale %s, got %s", tc.text, tc.locale, got)
		}
	}
}

func TestLocaleNeverChangesMatching(t *testing.T) {
	en := classify(t, "take me to pricing")
	hi := classify(t, "pricing pe le chalo")
	if en.Kind != domain.IntentNavigate || hi.Kind != domain.IntentNavigate {
		t.Fatalf("both locales should navigate, got en=%s hi=%s", en.Kind, hi.Kind)
	}
	if en.Path != hi.Path {
		t.Fatalf("paths should match across locales, got %s vs %s", en.Path, hi.Path)
	}
}
