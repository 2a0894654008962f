// Package slots implements multi-turn data collection: ordered required
// fields, per-field validation, confirmation, and out-of-order amendment.
package slots

import (
	"fmt"
	"regexp"
	"strings"

	"vox/internal/domain"
)

// Field is one required slot. Prompts and rejection messages carry both
// locales; Validate nil means any non-empty answer is accepted. Extract, when
// set, pulls this field's value out of a free-form sentence for the smart
// multi-field path.
type Field struct {
	Name     string
	Prompts  map[domain.Locale]string
	Rejects  map[domain.Locale]string
	Aliases  []string
	Validate func(string) error
	Extract  func(string) (string, bool)
}

// Schema is static configuration, not session state.
//
// MultiExtractFirstFieldOnly restricts multi-field extraction to the opening
// answer, where callers tend to volunteer everything at once. Later answers
// go through the strict per-field validators.
type Schema struct {
	Name                       string
	Fields                     []Field
	MultiExtractFirstFieldOnly bool
}

func (s Schema) fieldIndex(name string) int {
	for i, f := range s.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validateEmail(v string) error {
	if !emailRe.MatchString(strings.TrimSpace(v)) {
		return &domain.ValidationError{Field: "email", Reason: "not a valid email address"}
	}
	return nil
}

var nonDigitRe = regexp.MustCompile(`\D`)

func validatePhone(v string) error {
	digits := nonDigitRe.ReplaceAllString(v, "")
	if len(digits) < 10 {
		return &domain.ValidationError{Field: "phone", Reason: "needs at least 10 digits"}
	}
	return nil
}

func validateNonEmpty(name string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return &domain.ValidationError{Field: name, Reason: "cannot be empty"}
		}
		return nil
	}
}

func prompts(en, hi string) map[domain.Locale]string {
	return map[domain.Locale]string{domain.LocaleEnglish: en, domain.LocaleHindi: hi}
}

func nameField() Field {
	return Field{
		Name:     "name",
		Prompts:  prompts("May I have your full name?", "कृपया अपना पूरा नाम बताएं।"),
		Rejects:  prompts("I didn't catch a name, please say it again.", "नाम समझ नहीं आया, कृपया दोबारा बताएं।"),
		Aliases:  []string{"name", "naam", "नाम"},
		Validate: validateNonEmpty("name"),
		Extract:  extractName,
	}
}

func emailField() Field {
	return Field{
		Name:     "email",
		Prompts:  prompts("What is your email address?", "आपका ईमेल पता क्या है?"),
		Rejects:  prompts("Please provide a valid email address.", "कृपया एक मान्य ईमेल पता बताएं।"),
		Aliases:  []string{"email", "mail", "ईमेल"},
		Validate: validateEmail,
		Extract:  extractEmail,
	}
}

func phoneField() Field {
	return Field{
		Name:     "phone",
		Prompts:  prompts("What is your phone number?", "आपका फोन नंबर क्या है?"),
		Rejects:  prompts("Please provide a phone number with at least 10 digits.", "कृपया कम से कम 10 अंकों का फोन नंबर बताएं।"),
		Aliases:  []string{"phone", "number", "फोन", "नंबर"},
		Validate: validatePhone,
		Extract:  extractPhone,
	}
}

func companyField() Field {
	return Field{
		Name:     "company",
		Prompts:  prompts("Which company are you with?", "आप किस कंपनी से हैं?"),
		Rejects:  prompts("I didn't catch the company name, please repeat it.", "कंपनी का नाम समझ नहीं आया, कृपया दोबारा बताएं।"),
		Aliases:  []string{"company", "organisation", "organization", "कंपनी"},
		Validate: validateNonEmpty("company"),
		Extract:  extractCompany,
	}
}

// SalesSchema collects a sales lead.
func SalesSchema() Schema {
	return Schema{
		Name:                       "sales",
		MultiExtractFirstFieldOnly: true,
		Fields: []Field{
			nameField(),
			emailField(),
			phoneField(),
			companyField(),
			{
				Name:     "requirements",
				Prompts:  prompts("What are you looking for? Briefly describe your requirements.", "आपको क्या चाहिए? कृपया अपनी आवश्यकताएं बताएं।"),
				Rejects:  prompts("Please describe your requirements.", "कृपया अपनी आवश्यकताएं बताएं।"),
				Aliases:  []string{"requirements", "requirement", "need", "आवश्यकता"},
				Validate: validateNonEmpty("requirements"),
			},
		},
	}
}

// MeetingSchema collects a meeting booking. It is a superset of the sales
// flow, which is why meeting keywords outrank sales keywords upstream.
func MeetingSchema() Schema {
	return Schema{
		Name:                       "meeting",
		MultiExtractFirstFieldOnly: true,
		Fields: []Field{
			nameField(),
			emailField(),
			phoneField(),
			companyField(),
			{
				Name:     "date",
				Prompts:  prompts("What date works for the meeting?", "मीटिंग के लिए कौन सी तारीख ठीक रहेगी?"),
				Rejects:  prompts("Please give a date for the meeting.", "कृपया मीटिंग की तारीख बताएं।"),
				Aliases:  []string{"date", "day", "तारीख", "दिन"},
				Validate: validateNonEmpty("date"),
				Extract:  extractDate,
			},
			{
				Name:     "time",
				Prompts:  prompts("What time should we meet?", "मीटिंग किस समय रखें?"),
				Rejects:  prompts("Please give a time for the meeting.", "कृपया मीटिंग का समय बताएं।"),
				Aliases:  []string{"time", "समय"},
				Validate: validateNonEmpty("time"),
				Extract:  extractTime,
			},
			{
				Name:     "type",
				Prompts:  prompts("Should this be an online or in-person meeting?", "मीटिंग ऑनलाइन होगी या आमने-सामने?"),
				Rejects:  prompts("Please say online or in-person.", "कृपया ऑनलाइन या आमने-सामने बताएं।"),
				Aliases:  []string{"type", "mode", "प्रकार"},
				Validate: validateNonEmpty("type"),
			},
			{
				Name:     "agenda",
				Prompts:  prompts("What would you like to discuss?", "आप किस विषय पर चर्चा करना चाहेंगे?"),
				Rejects:  prompts("Please describe the agenda.", "कृपया एजेंडा बताएं।"),
				Aliases:  []string{"agenda", "topic", "एजेंडा"},
				Validate: validateNonEmpty("agenda"),
			},
		},
	}
}

// Lookup resolves a schema by the name the classifier produced.
func Lookup(name string) (Schema, error) {
	switch name {
	case "sales":
		return SalesSchema(), nil
	case "meeting":
		return MeetingSchema(), nil
	default:
		return Schema{}, fmt.Errorf("unknown slot schema: %s", name)
	}
}
