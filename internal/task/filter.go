package task

import (
	"strings"
	"time"
)

// Apply runs every enabled filter dimension over the task list with AND
// semantics. Dimensions are independent, so their order only affects how
// early the set shrinks, not the result.
func Apply(tasks []Task, f Filter) []Task {
	filtered := make([]Task, len(tasks))
	copy(filtered, tasks)

	if f.Quick == QuickFilterToday {
		filtered = keep(filtered, func(t Task) bool {
			return isToday(t.CreatedAt) || (t.DueDate != nil && isToday(*t.DueDate))
		})
	}

	if f.Notebooks != nil && f.Notebooks.Enabled && len(f.Notebooks.NotebookIDs) > 0 {
		include := f.Notebooks.Mode == NotebookInclude
		ids := make(map[string]bool, len(f.Notebooks.NotebookIDs))
		for _, id := range f.Notebooks.NotebookIDs {
			ids[id] = true
		}
		filtered = keep(filtered, func(t Task) bool {
			return ids[t.NotebookID] == include
		})
	}

	if len(f.Statuses) > 0 {
		filtered = keep(filtered, func(t Task) bool {
			return containsString(f.Statuses, t.Status)
		})
	}

	if len(f.Priorities) > 0 {
		filtered = keep(filtered, func(t Task) bool {
			return t.Priority != "" && containsString(f.Priorities, t.Priority)
		})
	}

	if f.Created != nil && f.Created.Enabled {
		filtered = keep(filtered, func(t Task) bool {
			return inRange(t.CreatedAt, f.Created)
		})
	}

	if f.Due != nil && f.Due.Enabled {
		// Tasks without a due date are excluded outright.
		filtered = keep(filtered, func(t Task) bool {
			return t.DueDate != nil && inRange(*t.DueDate, f.Due)
		})
	}

	if f.Completed != nil && f.Completed.Enabled {
		filtered = keep(filtered, func(t Task) bool {
			return t.CompletedAt != nil && inRange(*t.CompletedAt, f.Completed)
		})
	}

	if f.Keyword != "" {
		kw := strings.ToLower(f.Keyword)
		filtered = keep(filtered, func(t Task) bool {
			if strings.Contains(strings.ToLower(t.Content), kw) ||
				strings.Contains(strings.ToLower(t.DocName), kw) {
				return true
			}
			for _, tag := range t.Tags {
				if strings.Contains(strings.ToLower(tag), kw) {
					return true
				}
			}
			return false
		})
	}

	if len(f.Tags) > 0 {
		filtered = keep(filtered, func(t Task) bool {
			for _, tag := range t.Tags {
				if containsString(f.Tags, tag) {
					return true
				}
			}
			return false
		})
	}

	if f.ShowCompleted != nil && !*f.ShowCompleted {
		filtered = keep(filtered, func(t Task) bool {
			return !t.Completed
		})
	}

	return filtered
}

func keep(tasks []Task, pred func(Task) bool) []Task {
	out := tasks[:0:0]
	for _, t := range tasks {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}

// isToday compares calendar year/month/day against the wall clock, not a
// 24-hour window.
func isToday(t time.Time) bool {
	now := time.Now()
	return t.Year() == now.Year() && t.Month() == now.Month() && t.Day() == now.Day()
}

// inRange checks Start ≤ t ≤ end-of-day(End) for the enabled bounds.
func inRange(t time.Time, r *DateRange) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(endOfDay(*r.End)) {
		return false
	}
	return true
}

// endOfDay normalizes a date to 23:59:59.999 so the end bound covers the
// whole calendar day.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, t.Location())
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
