package stack

import (
	"testing"

	"vox/internal/domain"
)

func TestAdvanceOneAtATime(t *testing.T) {
	tasks := []domain.Intent{
		{Kind: domain.IntentNavigate, Path: "/pricing"},
		{Kind: domain.IntentNavigate, Path: "/products"},
		{Kind: domain.IntentNavigate, Path: "/contact"},
	}
	st := New(tasks)

	if st.Len() != 3 || st.Cursor() != 0 {
		t.Fatalf("expected len=3 cursor=0, got len=%d cursor=%d", st.Len(), st.Cursor())
	}

	var seen []string
	for {
		task, ok := st.Active()
		if !ok {
			break
		}
		seen = append(seen, task.Path)
		st.Advance()
	}

	if len(seen) != 3 {
		t.Fatalf("expected 3 tasks executed, got %d", len(seen))
	}
	for i, path := range []string{"/pricing", "/products", "/contact"} {
		if seen[i] != path {
			t.Fatalf("task %d: expected %s, got %s", i, path, seen[i])
		}
	}
	if !st.Done() {
		t.Fatalf("stack should be done after last advance")
	}
}

func TestAdvancePastEndIsNoop(t *testing.T) {
	st := New([]domain.Intent{{Kind: domain.IntentNavigate, Path: "/"}})
	st.Advance()
	st.Advance()
	if st.Cursor() != 1 {
		t.Fatalf("cursor should stop at len, got %d", st.Cursor())
	}
	if _, ok := st.Active(); ok {
		t.Fatalf("done stack must not expose an active task")
	}
}

func TestNewCopiesTasks(t *testing.T) {
	tasks := []domain.Intent{{Kind: domain.IntentNavigate, Path: "/pricing"}}
	st := New(tasks)
	tasks[0].Path = "/mutated"

	task, _ := st.Active()
	if task.Path != "/pricing" {
		t.Fatalf("stack must own its task slice, got %s", task.Path)
	}
}
