// Package stack holds the ordered queue of sub-intents derived from one
// multi-part utterance.
package stack

import "vox/internal/domain"

// Stack executes at most one task at a time: Active exposes the current task
// and Advance moves the cursor by exactly one once the task's directive has
// settled. There is no concurrent dispatch.
type Stack struct {
	tasks  []domain.Intent
	cursor int
}

func New(tasks []domain.Intent) *Stack {
	owned := make([]domain.Intent, len(tasks))
	copy(owned, tasks)
	return &Stack{tasks: owned}
}

func (s *Stack) Len() int    { return len(s.tasks) }
func (s *Stack) Cursor() int { return s.cursor }

func (s *Stack) Done() bool {
	return s.cursor >= len(s.tasks)
}

func (s *Stack) Active() (domain.Intent, bool) {
	if s.Done() {
		return domain.Intent{}, false
	}
	return s.tasks[s.cursor], true
}

func (s *Stack) Advance() {
	if !s.Done() {
		s.cursor++
	}
}
