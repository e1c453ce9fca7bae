package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nhle/tasktrack/internal/model"
)

// SortKey selects the field a task list is ordered by.
type SortKey int

const (
	SortByID SortKey = iota
	SortByPriority
	SortByDueDate
	SortByCategory
	SortByStatus
)

// String returns the lowercase name of the sort key.
func (k SortKey) String() string {
	switch k {
	case SortByPriority:
		return "priority"
	case SortByDueDate:
		return "due"
	case SortByCategory:
		return "category"
	case SortByStatus:
		return "status"
	default:
		return "id"
	}
}

// ParseSortKey converts a user-supplied key name to a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "id":
		return SortByID, nil
	case "priority", "pri":
		return SortByPriority, nil
	case "due", "due_date", "date":
		return SortByDueDate, nil
	case "category", "cat":
		return SortByCategory, nil
	case "status":
		return SortByStatus, nil
	}
	return 0, fmt.Errorf("unknown sort key %q (want id, priority, due, category, or status)", s)
}

// Sort orders tasks in place by one key. The sort is stable: ties keep
// their original relative order, which is why descending uses its own
// comparator rather than reversing the ascending result.
//
// Direction rules are deliberate product behavior, not naive enum
// ordering:
//   - Priority ascending puts high before medium before low.
//   - DueDate ascending puts dated tasks chronologically then undated
//     tasks last; descending puts undated tasks first then dated tasks
//     latest-first.
//   - Category mirrors DueDate's placement of the empty value.
//   - Status ascending puts pending before completed.
func Sort(tasks []model.Task, key SortKey, desc bool) {
	less := lessFunc(key, desc)
	sort.SliceStable(tasks, func(i, j int) bool {
		return less(tasks[i], tasks[j])
	})
}

func lessFunc(key SortKey, desc bool) func(a, b model.Task) bool {
	switch key {
	case SortByPriority:
		if desc {
			return func(a, b model.Task) bool { return a.Priority < b.Priority }
		}
		return func(a, b model.Task) bool { return a.Priority > b.Priority }

	case SortByDueDate:
		if desc {
			return func(a, b model.Task) bool {
				switch {
				case a.DueDate == nil && b.DueDate == nil:
					return false
				case a.DueDate == nil:
					return true
				case b.DueDate == nil:
					return false
				default:
					return a.DueDate.After(*b.DueDate)
				}
			}
		}
		return func(a, b model.Task) bool {
			switch {
			case a.DueDate == nil && b.DueDate == nil:
				return false
			case a.DueDate == nil:
				return false
			case b.DueDate == nil:
				return true
			default:
				return a.DueDate.Before(*b.DueDate)
			}
		}

	case SortByCategory:
		if desc {
			return func(a, b model.Task) bool {
				switch {
				case a.Category == "" && b.Category == "":
					return false
				case a.Category == "":
					return true
				case b.Category == "":
					return false
				default:
					return a.Category > b.Category
				}
			}
		}
		return func(a, b model.Task) bool {
			switch {
			case a.Category == "" && b.Category == "":
				return false
			case a.Category == "":
				return false
			case b.Category == "":
				return true
			default:
				return a.Category < b.Category
			}
		}

	case SortByStatus:
		if desc {
			return func(a, b model.Task) bool { return a.Completed && !b.Completed }
		}
		return func(a, b model.Task) bool { return !a.Completed && b.Completed }

	default: // SortByID
		if desc {
			return func(a, b model.Task) bool { return a.ID > b.ID }
		}
		return func(a, b model.Task) bool { return a.ID < b.ID }
	}
}
