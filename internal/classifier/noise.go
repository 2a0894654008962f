package classifier

import "strings"

// Transcription artifacts the upstream speech capture emits as if they were
// speech: parenthetical noise annotations, bracketed tags, bare punctuation.
// These must never advance any session state.

func IsNoise(normalized string) bool {
	if normalized == "" {
		return true
	}
	if isWrapped(normalized, "(", ")") || isWrapped(normalized, "[", "]") {
		return true
	}
	if strings.IndexFunc(normalized, func(r rune) bool {
		return !strings.ContainsRune(".,!?;:-_…'\" ", r)
	}) == -1 {
		return true
	}
	return false
}

func isWrapped(s, open, close string) bool {
	return strings.HasPrefix(s, open) && strings.HasSuffix(s, close)
}
