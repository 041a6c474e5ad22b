package task

import (
	"testing"
	"time"
)

func mkTask(id, notebook, status, priority string, created time.Time) Task {
	return Task{
		ID:         id,
		Content:    "task " + id,
		Status:     status,
		Completed:  status == StatusDone || status == StatusArchived,
		Priority:   priority,
		CreatedAt:  created,
		UpdatedAt:  created,
		NotebookID: notebook,
		DocName:    "doc-" + id,
		Tags:       []string{},
	}
}

func taskIDs(tasks []Task) []string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApply_EmptyFilterKeepsEverything(t *testing.T) {
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.Local)
	tasks := []Task{
		mkTask("a", "nb1", StatusTodo, "", base),
		mkTask("b", "nb2", StatusDone, PriorityHigh, base),
	}
	got := Apply(tasks, Filter{})
	if !sameIDs(taskIDs(got), []string{"a", "b"}) {
		t.Errorf("got %v, want all tasks", taskIDs(got))
	}
}

func TestApply_NotebookIncludeExclude(t *testing.T) {
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.Local)
	tasks := []Task{
		mkTask("a", "nb1", StatusTodo, "", base),
		mkTask("b", "nb2", StatusTodo, "", base),
		mkTask("c", "nb1", StatusTodo, "", base),
	}

	include := Apply(tasks, Filter{Notebooks: &NotebookFilter{
		Enabled: true, Mode: NotebookInclude, NotebookIDs: []string{"nb1"},
	}})
	if !sameIDs(taskIDs(include), []string{"a", "c"}) {
		t.Errorf("include: got %v, want [a c]", taskIDs(include))
	}

	exclude := Apply(tasks, Filter{Notebooks: &NotebookFilter{
		Enabled: true, Mode: NotebookExclude, NotebookIDs: []string{"nb1"},
	}})
	if !sameIDs(taskIDs(exclude), []string{"b"}) {
		t.Errorf("exclude: got %v, want [b]", taskIDs(exclude))
	}
}

func TestApply_StatusAndPriority(t *testing.T) {
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.Local)
	tasks := []Task{
		mkTask("a", "nb1", StatusTodo, PriorityLow, base),
		mkTask("b", "nb1", StatusInProgress, "", base),
		mkTask("c", "nb1", StatusDone, PriorityHigh, base),
	}

	byStatus := Apply(tasks, Filter{Statuses: []string{StatusTodo, StatusDone}})
	if !sameIDs(taskIDs(byStatus), []string{"a", "c"}) {
		t.Errorf("status: got %v, want [a c]", taskIDs(byStatus))
	}

	// Tasks without a priority never match a priority filter.
	byPriority := Apply(tasks, Filter{Priorities: []string{PriorityLow, PriorityHigh}})
	if !sameIDs(taskIDs(byPriority), []string{"a", "c"}) {
		t.Errorf("priority: got %v, want [a c]", taskIDs(byPriority))
	}
}

func TestApply_DimensionOrderIndependence(t *testing.T) {
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.Local)
	tasks := []Task{
		mkTask("a", "nb1", StatusTodo, "", base),
		mkTask("b", "nb2", StatusTodo, "", base),
		mkTask("c", "nb1", StatusDone, "", base),
		mkTask("d", "nb2", StatusDone, "", base),
	}
	notebook := &NotebookFilter{Enabled: true, Mode: NotebookInclude, NotebookIDs: []string{"nb1"}}

	combined := Apply(tasks, Filter{Notebooks: notebook, Statuses: []string{StatusTodo}})
	notebookFirst := Apply(Apply(tasks, Filter{Notebooks: notebook}), Filter{Statuses: []string{StatusTodo}})
	statusFirst := Apply(Apply(tasks, Filter{Statuses: []string{StatusTodo}}), Filter{Notebooks: notebook})

	if !sameIDs(taskIDs(combined), taskIDs(notebookFirst)) || !sameIDs(taskIDs(combined), taskIDs(statusFirst)) {
		t.Errorf("filter application is order-dependent: combined=%v notebookFirst=%v statusFirst=%v",
			taskIDs(combined), taskIDs(notebookFirst), taskIDs(statusFirst))
	}
}

func TestApply_CreatedRangeEndOfDayInclusive(t *testing.T) {
	start := time.Date(2025, 1, 10, 0, 0, 0, 0, time.Local)
	end := time.Date(2025, 1, 20, 0, 0, 0, 0, time.Local)
	tasks := []Task{
		mkTask("early", "nb1", StatusTodo, "", time.Date(2025, 1, 9, 23, 59, 0, 0, time.Local)),
		mkTask("in", "nb1", StatusTodo, "", time.Date(2025, 1, 15, 12, 0, 0, 0, time.Local)),
		mkTask("lastday", "nb1", StatusTodo, "", time.Date(2025, 1, 20, 22, 0, 0, 0, time.Local)),
		mkTask("late", "nb1", StatusTodo, "", time.Date(2025, 1, 21, 0, 0, 1, 0, time.Local)),
	}

	got := Apply(tasks, Filter{Created: &DateRange{Enabled: true, Start: &start, End: &end}})
	if !sameIDs(taskIDs(got), []string{"in", "lastday"}) {
		t.Errorf("got %v, want [in lastday]", taskIDs(got))
	}
}

func TestApply_DueRangeExcludesTasksWithoutDueDate(t *testing.T) {
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.Local)
	due := time.Date(2025, 1, 15, 0, 0, 0, 0, time.Local)

	withDue := mkTask("due", "nb1", StatusTodo, "", base)
	withDue.DueDate = &due
	without := mkTask("nodue", "nb1", StatusTodo, "", base)

	got := Apply([]Task{withDue, without}, Filter{Due: &DateRange{Enabled: true}})
	if !sameIDs(taskIDs(got), []string{"due"}) {
		t.Errorf("got %v, want [due]", taskIDs(got))
	}
}

func TestApply_CompletedRangeExcludesTasksWithoutCompletedAt(t *testing.T) {
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.Local)
	done := time.Date(2025, 1, 5, 9, 0, 0, 0, time.Local)

	completed := mkTask("done", "nb1", StatusDone, "", base)
	completed.CompletedAt = &done
	open := mkTask("open", "nb1", StatusTodo, "", base)

	got := Apply([]Task{completed, open}, Filter{Completed: &DateRange{Enabled: true}})
	if !sameIDs(taskIDs(got), []string{"done"}) {
		t.Errorf("got %v, want [done]", taskIDs(got))
	}
}

func TestApply_KeywordMatchesContentDocNameAndTags(t *testing.T) {
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.Local)

	byContent := mkTask("a", "nb1", StatusTodo, "", base)
	byContent.Content = "Review the RELEASE notes"
	byDoc := mkTask("b", "nb1", StatusTodo, "", base)
	byDoc.DocName = "Release planning"
	byTag := mkTask("c", "nb1", StatusTodo, "", base)
	byTag.Tags = []string{"release"}
	miss := mkTask("d", "nb1", StatusTodo, "", base)

	got := Apply([]Task{byContent, byDoc, byTag, miss}, Filter{Keyword: "release"})
	if !sameIDs(taskIDs(got), []string{"a", "b", "c"}) {
		t.Errorf("got %v, want [a b c]", taskIDs(got))
	}
}

func TestApply_TagFilter(t *testing.T) {
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.Local)
	tagged := mkTask("a", "nb1", StatusTodo, "", base)
	tagged.Tags = []string{"home", "urgent"}
	untagged := mkTask("b", "nb1", StatusTodo, "", base)

	got := Apply([]Task{tagged, untagged}, Filter{Tags: []string{"urgent"}})
	if !sameIDs(taskIDs(got), []string{"a"}) {
		t.Errorf("got %v, want [a]", taskIDs(got))
	}
}

func TestApply_ShowCompleted(t *testing.T) {
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.Local)
	tasks := []Task{
		mkTask("open", "nb1", StatusTodo, "", base),
		mkTask("done", "nb1", StatusDone, "", base),
	}

	hide := false
	got := Apply(tasks, Filter{ShowCompleted: &hide})
	if !sameIDs(taskIDs(got), []string{"open"}) {
		t.Errorf("explicit false: got %v, want [open]", taskIDs(got))
	}

	// Unset means no constraint.
	got = Apply(tasks, Filter{})
	if !sameIDs(taskIDs(got), []string{"open", "done"}) {
		t.Errorf("unset: got %v, want both", taskIDs(got))
	}
}

func TestApply_QuickFilterToday(t *testing.T) {
	createdToday := mkTask("today", "nb1", StatusTodo, "", time.Now())
	old := mkTask("old", "nb1", StatusTodo, "", time.Date(2020, 1, 1, 9, 0, 0, 0, time.Local))
	dueToday := mkTask("due", "nb1", StatusTodo, "", time.Date(2020, 1, 1, 9, 0, 0, 0, time.Local))
	now := time.Now()
	dueToday.DueDate = &now

	got := Apply([]Task{createdToday, old, dueToday}, Filter{Quick: QuickFilterToday})
	if !sameIDs(taskIDs(got), []string{"today", "due"}) {
		t.Errorf("got %v, want [today due]", taskIDs(got))
	}
}
