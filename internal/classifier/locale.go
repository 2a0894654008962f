package classifier

import (
	"strings"
	"unicode"

	"vox/internal/domain"
)

// Hindi function words that show up in romanized transcripts. Presence of any
// of these tags the utterance Hindi even without Devanagari script.
var hindiFunctionWords = []string{
	"hai", "hain", "nahi", "nahin", "kya", "kaise", "karo", "karna",
	"chahiye", "mujhe", "mera", "meri", "aap", "dikhao", "batao", "kripya",
}

func DetectLocale(text string) domain.Locale {
	for _, r := range text {
		if unicode.Is(unicode.Devanagari, r) {
			return domain.LocaleHindi
		}
	}
	for _, w := range strings.Fields(strings.ToLower(text)) {
		for _, fn := range hindiFunctionWords {
			if w == fn {
				return domain.LocaleHindi
			}
		}
	}
	return domain.LocaleEnglish
}

// NewUtterance derives the normalized form and locale tag once per input event.
func NewUtterance(raw string) domain.Utterance {
	return domain.Utterance{
		Raw:        raw,
		Normalized: strings.ToLower(strings.TrimSpace(raw)),
		Locale:     DetectLocale(raw),
	}
}
