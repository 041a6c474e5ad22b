package task

import (
	"math"
	"sort"
)

// SortKey selects the field tasks are ordered by.
type SortKey string

const (
	SortCreated  SortKey = "created"
	SortUpdated  SortKey = "updated"
	SortPriority SortKey = "priority"
	SortDueDate  SortKey = "dueDate"
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

var priorityRank = map[string]int{
	PriorityUrgent: 4,
	PriorityHigh:   3,
	PriorityMedium: 2,
	PriorityLow:    1,
}

// Sort returns a stably sorted copy of the task list; ties keep their
// input order. The default order is descending.
//
// Tasks without a due date sort as if due infinitely far in the future,
// so a descending due-date sort puts them first.
func Sort(tasks []Task, key SortKey, order SortOrder) []Task {
	sorted := make([]Task, len(tasks))
	copy(sorted, tasks)

	cmp := func(a, b Task) int {
		switch key {
		case SortUpdated:
			return compareInt64(a.UpdatedAt.UnixMilli(), b.UpdatedAt.UnixMilli())
		case SortPriority:
			return priorityRank[a.Priority] - priorityRank[b.Priority]
		case SortDueDate:
			return compareFloat(dueMillis(a), dueMillis(b))
		default: // SortCreated
			return compareInt64(a.CreatedAt.UnixMilli(), b.CreatedAt.UnixMilli())
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		c := cmp(sorted[i], sorted[j])
		if order == OrderAsc {
			return c < 0
		}
		return c > 0
	})

	return sorted
}

func dueMillis(t Task) float64 {
	if t.DueDate == nil {
		return math.Inf(1)
	}
	return float64(t.DueDate.UnixMilli())
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
