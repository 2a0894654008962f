// Package classifier maps transcribed utterances to intents using a
// priority-ordered keyword table. First match wins; there is no scoring.
package classifier

import (
	"sort"
	"strings"

	"vox/internal/domain"
)

type Classifier struct {
	rules []Rule
	exact map[string]domain.Intent
}

// New builds a classifier over the given rule table. Rules are stably sorted
// by priority so ties keep their table order.
func New(rules []Rule) *Classifier {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})
	return &Classifier{rules: sorted, exact: exactPhrases}
}

func Default() *Classifier {
	return New(DefaultRules())
}

// Classify resolves one utterance to an intent.
//
// Order: noise filter, exact-phrase lookup, conjunction split, keyword scan,
// inform fallback. The exact-phrase lookup runs before every keyword rule so
// a bare "hi" or "bye" can never trigger a longer rule.
func (c *Classifier) Classify(u domain.Utterance) domain.Intent {
	if IsNoise(u.Normalized) {
		return domain.Intent{Kind: domain.IntentIgnore}
	}

	if intent, ok := c.exact[u.Normalized]; ok {
		return intent
	}

	if fragments := splitConjunctions(u.Normalized); len(fragments) >= 2 {
		if stack, ok := c.classifyFragments(fragments); ok {
			return stack
		}
	}

	if intent, ok := c.scan(u.Normalized); ok {
		return intent
	}

	return domain.Intent{Kind: domain.IntentInform, Topic: "capabilities"}
}

// IsClose reports whether the utterance is an exact farewell phrase. Used by
// the dialogue engine to honor close requests while a sub-machine owns the
// conversation, without re-classifying slot answers.
func (c *Classifier) IsClose(u domain.Utterance) bool {
	intent, ok := c.exact[u.Normalized]
	return ok && intent.Kind == domain.IntentClose
}

// scan walks the sorted rule table and returns the first match.
func (c *Classifier) scan(text string) (domain.Intent, bool) {
	for _, r := range c.rules {
		if !containsAny(text, r.Keywords) {
			continue
		}
		if len(r.Verbs) > 0 && !containsAny(text, r.Verbs) {
			continue
		}
		return domain.Intent{
			Kind:         r.Kind,
			Path:         r.Path,
			ScrollTarget: r.ScrollTarget,
			Topic:        r.Topic,
			SchemaName:   r.SchemaName,
			Category:     r.Category,
			Autofill:     r.Autofill,
		}, true
	}
	return domain.Intent{}, false
}

// classifyFragments classifies each conjunction fragment independently and
// returns a task stack when at least two fragments resolve to a concrete
// intent. Fragment order follows keyword order in the original utterance.
func (c *Classifier) classifyFragments(fragments []string) (domain.Intent, bool) {
	sub := make([]domain.Intent, 0, len(fragments))
	for _, f := range fragments {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if intent, ok := c.scan(f); ok {
			sub = append(sub, intent)
		}
	}
	if len(sub) < 2 {
		return domain.Intent{}, false
	}
	return domain.Intent{Kind: domain.IntentTaskStack, SubIntents: sub}, true
}

// splitConjunctions cuts the utterance at every conjunction marker. Longer
// markers are tried first so " and then " does not split twice.
func splitConjunctions(text string) []string {
	fragments := []string{text}
	for _, marker := range conjunctionMarkers {
		var next []string
		for _, f := range fragments {
			next = append(next, strings.Split(f, marker)...)
		}
		fragments = next
	}
	if len(fragments) == 1 {
		return nil
	}
	return fragments
}

func containsAny(text string, hints []string) bool {
	for _, h := range hints {
		if strings.Contains(text, strings.ToLower(h)) {
			return true
		}
	}
	return false
}
