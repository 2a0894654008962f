// Package speech enforces the capture/playback exclusion contract: while a
// reply is being vocalized, utterance capture is suspended so the engine
// never hears its own voice. This is an explicit state transition, not a
// timing heuristic.
package speech

import (
	"sync"
	"time"
	"unicode/utf8"
)

// Rough speech rate used for the watchdog deadline. If the host never
// reports playback completion, capture resumes on its own instead of
// deadlocking the session.
const (
	runesPerSecond  = 15
	minSpeakWindow  = 2 * time.Second
	maxSpeakWindow  = 45 * time.Second
	speakWindowSlop = 2 * time.Second
)

type Gate struct {
	mu            sync.Mutex
	speakingUntil time.Time
	clock         func() time.Time
}

func NewGate() *Gate {
	return &Gate{clock: time.Now}
}

// BeginSpeaking suspends capture until DoneSpeaking or the watchdog deadline
// estimated from the reply length, whichever comes first.
func (g *Gate) BeginSpeaking(text string) {
	window := time.Duration(utf8.RuneCountInString(text)/runesPerSecond)*time.Second + speakWindowSlop
	if window < minSpeakWindow {
		window = minSpeakWindow
	}
	if window > maxSpeakWindow {
		window = maxSpeakWindow
	}
	g.mu.Lock()
	g.speakingUntil = g.clock().Add(window)
	g.mu.Unlock()
}

// DoneSpeaking resumes capture; called when the host reports playback
// completion.
func (g *Gate) DoneSpeaking() {
	g.mu.Lock()
	g.speakingUntil = time.Time{}
	g.mu.Unlock()
}

// CaptureAllowed reports whether an incoming utterance should be processed.
// Utterances arriving while speaking are suppressed echo.
func (g *Gate) CaptureAllowed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.speakingUntil.IsZero() || g.clock().After(g.speakingUntil)
}
