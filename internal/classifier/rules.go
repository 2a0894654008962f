package classifier

import "vox/internal/domain"

// Rule is one entry in the declarative intent table. A rule matches when any
// keyword appears as a substring of the normalized utterance and, if Verbs is
// non-empty, any verb appears as well. Lower Priority wins; ties resolve by
// table order. Keyword lists mix English and Hindi equivalents because locale
// selects reply templates, never matching logic.
type Rule struct {
	Kind     domain.IntentKind
	Priority int
	Keywords []string
	Verbs    []string

	SchemaName   string
	Path         string
	ScrollTarget string
	Topic        string
	Category     string
	Autofill     map[string]string
}

// Priority bands. Meeting outranks sales because "schedule a sales meeting"
// must collect the meeting schema, and demo-form phrases outrank the bare
// "demo" sales keyword.
const (
	prioMeeting  = 10
	prioDemoForm = 15
	prioSales    = 20
	prioSupport  = 30
	prioNavigate = 40
	prioExplain  = 50
	prioPageName = 60
)

var explainVerbs = []string{
	"explain", "show me", "describe", "what is", "what are", "tell me about",
	"samjhao", "batao", "समझाओ", "बताओ", "क्या है",
}

var navigateVerbs = []string{
	"go to", "take me", "open", "navigate", "visit", "bring up",
	"le chalo", "kholo", "खोलो", "ले चलो",
}

// Conjunction markers that split one utterance into multiple requests.
var conjunctionMarkers = []string{
	" and then ", " and also ", " after that ", " and ", " then ", " also ",
	" aur ", " phir ", " और ", " फिर ",
}

// Short utterances answered without consulting any keyword rule. Exact match
// on the normalized text only, so a greeting token inside a longer command
// never short-circuits classification.
var exactPhrases = map[string]domain.Intent{
	"hi":             {Kind: domain.IntentInform, Topic: "greeting"},
	"hello":          {Kind: domain.IntentInform, Topic: "greeting"},
	"hey":            {Kind: domain.IntentInform, Topic: "greeting"},
	"good morning":   {Kind: domain.IntentInform, Topic: "greeting"},
	"good afternoon": {Kind: domain.IntentInform, Topic: "greeting"},
	"good evening":   {Kind: domain.IntentInform, Topic: "greeting"},
	"namaste":        {Kind: domain.IntentInform, Topic: "greeting"},
	"नमस्ते":         {Kind: domain.IntentInform, Topic: "greeting"},

	"thanks":    {Kind: domain.IntentInform, Topic: "thanks"},
	"thank you": {Kind: domain.IntentInform, Topic: "thanks"},
	"ok":        {Kind: domain.IntentInform, Topic: "thanks"},
	"okay":      {Kind: domain.IntentInform, Topic: "thanks"},
	"great":     {Kind: domain.IntentInform, Topic: "thanks"},
	"shukriya":  {Kind: domain.IntentInform, Topic: "thanks"},
	"धन्यवाद":   {Kind: domain.IntentInform, Topic: "thanks"},

	"bye":       {Kind: domain.IntentClose},
	"bye bye":   {Kind: domain.IntentClose},
	"goodbye":   {Kind: domain.IntentClose},
	"see you":   {Kind: domain.IntentClose},
	"stop":      {Kind: domain.IntentClose},
	"close":     {Kind: domain.IntentClose},
	"exit":      {Kind: domain.IntentClose},
	"quit":      {Kind: domain.IntentClose},
	"alvida":    {Kind: domain.IntentClose},
	"band karo": {Kind: domain.IntentClose},
	"अलविदा":    {Kind: domain.IntentClose},
	"बंद करो":   {Kind: domain.IntentClose},
}

// DefaultRules is the production intent table. Overlapping keywords resolve
// through the priority bands, so the winner is always explicit and testable.
func DefaultRules() []Rule {
	return []Rule{
		{
			Kind:       domain.IntentCollectData,
			Priority:   prioMeeting,
			SchemaName: "meeting",
			Keywords: []string{
				"meeting", "schedule", "appointment", "book a call",
				"मीटिंग", "बैठक", "अपॉइंटमेंट", "शेड्यूल",
			},
		},
		{
			Kind:     domain.IntentDemoBooking,
			Priority: prioDemoForm,
			Path:     "/demo",
			Keywords: []string{
				"book a demo", "demo form", "fill the demo", "fill out the demo",
				"डेमो फॉर्म", "डेमो बुक",
			},
			Autofill: map[string]string{
				"#demo-form [name=interest]": "Product demo",
				"#demo-form [name=source]":   "voice-assistant",
			},
		},
		{
			Kind:       domain.IntentCollectData,
			Priority:   prioSales,
			SchemaName: "sales",
			Keywords: []string{
				"sales", "demo", "quote", "buy", "purchase",
				"बिक्री", "खरीद", "डेमो", "कोटेशन",
			},
		},
		{
			Kind:     domain.IntentCustomerSupport,
			Priority: prioSupport,
			Category: "refund",
			Path:     "/support",
			Keywords: []string{"refund", "money back", "cancel my order", "रिफंड", "पैसे वापस"},
		},
		{
			Kind:     domain.IntentCustomerSupport,
			Priority: prioSupport,
			Category: "billing",
			Path:     "/support",
			Keywords: []string{"billing", "invoice", "payment issue", "charged", "बिलिंग", "इनवॉइस"},
		},
		{
			Kind:     domain.IntentCustomerSupport,
			Priority: prioSupport,
			Category: "technical",
			Path:     "/support",
			Keywords: []string{"not working", "broken", "bug", "error", "technical issue", "काम नहीं कर", "खराब"},
		},
		{
			Kind:     domain.IntentCustomerSupport,
			Priority: prioSupport,
			Category: "account",
			Path:     "/support",
			Keywords: []string{"password", "login", "log in", "my account", "locked out", "पासवर्ड", "लॉगिन"},
		},
		{
			Kind:     domain.IntentCustomerSupport,
			Priority: prioSupport,
			Category: "general",
			Path:     "/support",
			Keywords: []string{"support", "help me with", "customer care", "सपोर्ट", "सहायता"},
		},

		{
			Kind:     domain.IntentNavigate,
			Priority: prioNavigate,
			Path:     "/pricing",
			Verbs:    navigateVerbs,
			Keywords: []string{"pricing", "price", "plans", "कीमत", "प्राइसिंग", "प्लान"},
		},
		{
			Kind:     domain.IntentNavigate,
			Priority: prioNavigate,
			Path:     "/products",
			Verbs:    navigateVerbs,
			Keywords: []string{"product", "features", "उत्पाद", "प्रोडक्ट", "फीचर"},
		},
		{
			Kind:     domain.IntentNavigate,
			Priority: prioNavigate,
			Path:     "/contact",
			Verbs:    navigateVerbs,
			Keywords: []string{"contact", "संपर्क", "कॉन्टैक्ट"},
		},
		{
			Kind:     domain.IntentNavigate,
			Priority: prioNavigate,
			Path:     "/dashboard",
			Verbs:    navigateVerbs,
			Keywords: []string{"dashboard", "डैशबोर्ड"},
		},
		{
			Kind:     domain.IntentNavigate,
			Priority: prioNavigate,
			Path:     "/team",
			Verbs:    navigateVerbs,
			Keywords: []string{"team", "members", "टीम"},
		},
		{
			Kind:     domain.IntentNavigate,
			Priority: prioNavigate,
			Path:     "/",
			Verbs:    navigateVerbs,
			Keywords: []string{"home", "homepage", "main page", "होम"},
		},

		{
			Kind:         domain.IntentExplain,
			Priority:     prioExplain,
			Topic:        "pricing",
			ScrollTarget: "#pricing-table",
			Verbs:        explainVerbs,
			Keywords:     []string{"pricing", "price", "plans", "cost", "कीमत", "प्लान"},
		},
		{
			Kind:         domain.IntentExplain,
			Priority:     prioExplain,
			Topic:        "features",
			ScrollTarget: "#features",
			Verbs:        explainVerbs,
			Keywords:     []string{"features", "capabilities", "फीचर"},
		},
		{
			Kind:         domain.IntentExplain,
			Priority:     prioExplain,
			Topic:        "products",
			ScrollTarget: "#products",
			Verbs:        explainVerbs,
			Keywords:     []string{"product", "उत्पाद", "प्रोडक्ट"},
		},
		{
			Kind:         domain.IntentExplain,
			Priority:     prioExplain,
			Topic:        "contact",
			ScrollTarget: "#contact-form",
			Verbs:        explainVerbs,
			Keywords:     []string{"contact", "reach you", "संपर्क"},
		},
		{
			Kind:         domain.IntentExplain,
			Priority:     prioExplain,
			Topic:        "testimonials",
			ScrollTarget: "#testimonials",
			Verbs:        explainVerbs,
			Keywords:     []string{"testimonials", "reviews", "customers say", "समीक्षा"},
		},
		// Explain with no recognized topic.
		{
			Kind:     domain.IntentExplain,
			Priority: prioExplain + 1,
			Keywords: explainVerbs,
		},

		// Bare page names without a navigation verb still navigate, at the
		// lowest priority so explain verbs win when both are present.
		{
			Kind:     domain.IntentNavigate,
			Priority: prioPageName,
			Path:     "/pricing",
			Keywords: []string{"pricing", "कीमत", "प्राइसिंग"},
		},
		{
			Kind:     domain.IntentNavigate,
			Priority: prioPageName,
			Path:     "/products",
			Keywords: []string{"products", "प्रोडक्ट"},
		},
		{
			Kind:     domain.IntentNavigate,
			Priority: prioPageName,
			Path:     "/contact",
			Keywords: []string{"contact", "संपर्क"},
		},
		{
			Kind:     domain.IntentNavigate,
			Priority: prioPageName,
			Path:     "/testimonials",
			Keywords: []string{"testimonials", "समीक्षा"},
		},
	}
}
