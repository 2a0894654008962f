package slots

import (
	"regexp"
	"strings"
)

// Per-field extractors for the smart multi-field path. Each recognizes its
// field's shape inside a free-form sentence; a miss returns ok=false and the
// strict single-field sequencing takes over.

var embeddedEmailRe = regexp.MustCompile(`[^\s@,;]+@[^\s@,;]+\.[^\s@,;]+`)

func extractEmail(text string) (string, bool) {
	m := embeddedEmailRe.FindString(text)
	return m, m != ""
}

var phoneRunRe = regexp.MustCompile(`\+?\d[\d\s\-().]{8,}\d`)

func extractPhone(text string) (string, bool) {
	for _, m := range phoneRunRe.FindAllString(text, -1) {
		digits := nonDigitRe.ReplaceAllString(m, "")
		if len(digits) >= 10 {
			return digits, true
		}
	}
	return "", false
}

var namePhraseRe = regexp.MustCompile(`(?i)(?:my name is|i am|this is|naam\s+hai?)\s+([a-z]+(?:\s+[a-z]+){0,2})`)

func extractName(text string) (string, bool) {
	m := namePhraseRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

var (
	companyPhraseRe = regexp.MustCompile(`(?i)(?:company is|work(?:ing)? at|i'm from|i am from|from)\s+([a-z0-9&][a-z0-9&.\- ]{1,40})`)
	companySuffixRe = regexp.MustCompile(`(?i)\b([a-z0-9&][a-z0-9&.\- ]{0,40}\s(?:inc|ltd|llc|pvt|corp|technologies|solutions|labs))\b`)
)

func extractCompany(text string) (string, bool) {
	if m := companySuffixRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	if m := companyPhraseRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(m[1]), ".")), true
	}
	return "", false
}

var (
	numericDateRe  = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?\b`)
	wordDateRe     = regexp.MustCompile(`(?i)\b(?:today|tomorrow|monday|tuesday|wednesday|thursday|friday|saturday|sunday|(?:\d{1,2}(?:st|nd|rd|th)?\s+)?(?:january|february|march|april|may|june|july|august|september|october|november|december)(?:\s+\d{1,2}(?:st|nd|rd|th)?)?)\b`)
	clockTimeRe    = regexp.MustCompile(`(?i)\b\d{1,2}(?::\d{2})?\s?(?:am|pm)\b`)
	twentyFourHrRe = regexp.MustCompile(`\b\d{1,2}:\d{2}\b`)
)

func extractDate(text string) (string, bool) {
	if m := numericDateRe.FindString(text); m != "" {
		return m, true
	}
	if m := wordDateRe.FindString(text); m != "" {
		return m, true
	}
	return "", false
}

func extractTime(text string) (string, bool) {
	if m := clockTimeRe.FindString(text); m != "" {
		return m, true
	}
	if m := twentyFourHrRe.FindString(text); m != "" {
		return m, true
	}
	return "", false
}
