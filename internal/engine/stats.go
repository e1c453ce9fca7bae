package engine

import "github.com/nhle/tasktrack/internal/model"

// Stats is a snapshot of counts over the full, unfiltered task set.
type Stats struct {
	Total                int     `json:"total"`
	Completed            int     `json:"completed"`
	Pending              int     `json:"pending"`
	CompletionPercentage float64 `json:"completion_percentage"`
	HighPriority         int     `json:"high_priority_count"`
	MediumPriority       int     `json:"medium_priority_count"`
	LowPriority          int     `json:"low_priority_count"`
}

// Stats computes counts and the completion percentage for the list.
// An empty list reports 0.0 percent.
func (l *List) Stats() Stats {
	s := Stats{Total: len(l.tasks)}
	for _, t := range l.tasks {
		if t.Completed {
			s.Completed++
		}
		switch t.Priority {
		case model.PriorityHigh:
			s.HighPriority++
		case model.PriorityLow:
			s.LowPriority++
		default:
			s.MediumPriority++
		}
	}
	s.Pending = s.Total - s.Completed
	if s.Total > 0 {
		s.CompletionPercentage = 100 * float64(s.Completed) / float64(s.Total)
	}
	return s
}
