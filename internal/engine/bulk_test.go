package engine

import (
	"testing"

	"github.com/nhle/tasktrack/internal/model"
)

func TestCompleteMany(t *testing.T) {
	l := New()
	a := l.Add("a")
	b := l.Add("b")

	n, missing := l.CompleteMany([]int{a.ID, 99, b.ID})
	if n != 2 {
		t.Errorf("succeeded = %d, want 2", n)
	}
	if len(missing) != 1 || missing[0] != 99 {
		t.Errorf("missing = %v, want [99]", missing)
	}
	for _, id := range []int{a.ID, b.ID} {
		got, _ := l.Get(id)
		if !got.Completed {
			t.Errorf("task %d not completed", id)
		}
	}
}

func TestSetPriorityMany(t *testing.T) {
	l := New()
	a := l.Add("a")
	b := l.Add("b")

	n, missing := l.SetPriorityMany([]int{a.ID, b.ID, 7}, model.PriorityHigh)
	if n != 2 || len(missing) != 1 {
		t.Errorf("n=%d missing=%v", n, missing)
	}
	got, _ := l.Get(a.ID)
	if got.Priority != model.PriorityHigh {
		t.Errorf("priority = %v", got.Priority)
	}
}

func TestToggleAndUncompleteMany(t *testing.T) {
	l := New()
	a := l.Add("a")
	b := l.Add("b")
	l.Complete(a.ID)

	n, _ := l.ToggleMany([]int{a.ID, b.ID})
	if n != 2 {
		t.Fatalf("toggle succeeded = %d", n)
	}
	ta, _ := l.Get(a.ID)
	tb, _ := l.Get(b.ID)
	if ta.Completed || !tb.Completed {
		t.Errorf("toggle results: a=%v b=%v", ta.Completed, tb.Completed)
	}

	n, _ = l.UncompleteMany([]int{a.ID, b.ID})
	if n != 2 {
		t.Fatalf("uncomplete succeeded = %d", n)
	}
	tb, _ = l.Get(b.ID)
	if tb.Completed {
		t.Error("b still completed")
	}
}

// A parent and its subtask in the same removal set must both count as
// removed: descending order visits the subtask before the cascade can
// take it away.
func TestRemoveManyWithCascadeOverlap(t *testing.T) {
	l := New()
	parent := l.Add("parent")
	sub, _ := l.AddSubtask(parent.ID, "sub")
	other := l.Add("other")

	n, missing := l.RemoveMany([]int{parent.ID, sub.ID, 42})
	if n != 2 {
		t.Errorf("succeeded = %d, want 2", n)
	}
	if len(missing) != 1 || missing[0] != 42 {
		t.Errorf("missing = %v, want [42]", missing)
	}
	if l.Len() != 1 {
		t.Errorf("len = %d, want 1", l.Len())
	}
	if _, err := l.Get(other.ID); err != nil {
		t.Errorf("unrelated task removed: %v", err)
	}
}
