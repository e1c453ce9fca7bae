package engine

import (
	"testing"
	"time"

	"github.com/nhle/tasktrack/internal/model"
)

func TestNextDueDate(t *testing.T) {
	tests := []struct {
		name string
		due  time.Time
		rec  model.Recurrence
		want time.Time
	}{
		{
			name: "daily adds one day",
			due:  date(2026, time.June, 15),
			rec:  model.RecurrenceDaily,
			want: date(2026, time.June, 16),
		},
		{
			name: "daily across month end",
			due:  date(2026, time.June, 30),
			rec:  model.RecurrenceDaily,
			want: date(2026, time.July, 1),
		},
		{
			name: "weekly adds seven days",
			due:  date(2026, time.June, 15),
			rec:  model.RecurrenceWeekly,
			want: date(2026, time.June, 22),
		},
		{
			name: "weekly across year end",
			due:  date(2026, time.December, 29),
			rec:  model.RecurrenceWeekly,
			want: date(2027, time.January, 5),
		},
		{
			name: "monthly plain",
			due:  date(2026, time.April, 10),
			rec:  model.RecurrenceMonthly,
			want: date(2026, time.May, 10),
		},
		{
			name: "monthly clamps jan 31 to feb 28",
			due:  date(2026, time.January, 31),
			rec:  model.RecurrenceMonthly,
			want: date(2026, time.February, 28),
		},
		{
			name: "monthly clamps to feb 29 in leap years",
			due:  date(2028, time.January, 31),
			rec:  model.RecurrenceMonthly,
			want: date(2028, time.February, 29),
		},
		{
			name: "monthly clamps mar 31 to apr 30",
			due:  date(2026, time.March, 31),
			rec:  model.RecurrenceMonthly,
			want: date(2026, time.April, 30),
		},
		{
			name: "monthly december wraps the year",
			due:  date(2026, time.December, 15),
			rec:  model.RecurrenceMonthly,
			want: date(2027, time.January, 15),
		},
		{
			name: "century non-leap year clamps to feb 28",
			due:  date(2100, time.January, 31),
			rec:  model.RecurrenceMonthly,
			want: date(2100, time.February, 28),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			due := tt.due
			got := NextDueDate(&due, tt.rec)
			if got == nil {
				t.Fatal("got nil")
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextDueDateAbsentInputs(t *testing.T) {
	if got := NextDueDate(nil, model.RecurrenceDaily); got != nil {
		t.Errorf("nil due date: got %v", got)
	}
	due := date(2026, time.June, 1)
	if got := NextDueDate(&due, model.RecurrenceNone); got != nil {
		t.Errorf("no recurrence: got %v", got)
	}
}
