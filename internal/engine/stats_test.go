package engine

import (
	"testing"

	"github.com/nhle/tasktrack/internal/model"
)

func TestStatsEmptyList(t *testing.T) {
	s := New().Stats()
	if s.Total != 0 || s.CompletionPercentage != 0.0 {
		t.Errorf("empty list stats = %+v, want zeroes", s)
	}
}

func TestStats(t *testing.T) {
	l := New()
	a := l.Add("a")
	l.SetPriority(a.ID, model.PriorityHigh)
	b := l.Add("b")
	l.Add("c")
	d := l.Add("d")
	l.SetPriority(d.ID, model.PriorityLow)
	l.Complete(a.ID)
	l.Complete(b.ID)

	s := l.Stats()
	if s.Total != 4 || s.Completed != 2 || s.Pending != 2 {
		t.Errorf("counts = %+v", s)
	}
	if s.CompletionPercentage != 50.0 {
		t.Errorf("completion = %v, want 50.0", s.CompletionPercentage)
	}
	if s.HighPriority != 1 || s.MediumPriority != 2 || s.LowPriority != 1 {
		t.Errorf("priority counts = %+v", s)
	}
}
