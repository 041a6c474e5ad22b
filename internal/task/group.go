package task

import (
	"math"
	"time"
)

// PriorityNone is the grouping key for tasks without a priority.
const PriorityNone = "none"

// Group is one partition of a task list. Groups appear in order of first
// occurrence and tasks keep their input order within a group.
type Group struct {
	Key   string
	Tasks []Task
}

// GroupByStatus partitions tasks by status.
func GroupByStatus(tasks []Task) []Group {
	return groupBy(tasks, func(t Task) string { return t.Status })
}

// GroupByNotebook partitions tasks by notebook id.
func GroupByNotebook(tasks []Task) []Group {
	return groupBy(tasks, func(t Task) string { return t.NotebookID })
}

// GroupByPriority partitions tasks by priority, with PriorityNone for
// tasks lacking one.
func GroupByPriority(tasks []Task) []Group {
	return groupBy(tasks, func(t Task) string {
		if t.Priority == "" {
			return PriorityNone
		}
		return t.Priority
	})
}

func groupBy(tasks []Task, keyOf func(Task) string) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, t := range tasks {
		key := keyOf(t)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Tasks = append(groups[i].Tasks, t)
	}
	return groups
}

// CalculateStats computes aggregate counts for a task list. An empty list
// yields all zeros, including the completion rate.
func CalculateStats(tasks []Task) Stats {
	now := time.Now()
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
		if t.Status == StatusInProgress {
			s.InProgress++
		}
		if t.DueDate != nil && !t.Completed && t.DueDate.Before(now) {
			s.Overdue++
		}
	}
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}
