package task

import (
	"testing"
	"time"
)

func TestParseTimestamp_RoundTrip(t *testing.T) {
	cases := []struct {
		ts                                     string
		year, month, day, hour, minute, second int
	}{
		{"20250101090000", 2025, 1, 1, 9, 0, 0},
		{"20241231235959", 2024, 12, 31, 23, 59, 59},
		{"20250630120530", 2025, 6, 30, 12, 5, 30},
	}
	for _, c := range cases {
		got := ParseTimestamp(c.ts)
		if got.Year() != c.year || int(got.Month()) != c.month || got.Day() != c.day ||
			got.Hour() != c.hour || got.Minute() != c.minute || got.Second() != c.second {
			t.Errorf("ParseTimestamp(%q) = %v, want %04d-%02d-%02d %02d:%02d:%02d",
				c.ts, got, c.year, c.month, c.day, c.hour, c.minute, c.second)
		}
	}
}

func TestParseTimestamp_WrongLengthFallsBackToNow(t *testing.T) {
	for _, ts := range []string{"", "2025", "202501010900001", "not-a-timestamp"} {
		got := ParseTimestamp(ts)
		if d := time.Since(got); d < 0 || d > time.Minute {
			t.Errorf("ParseTimestamp(%q) = %v, expected a value close to now", ts, got)
		}
	}
}

func TestParseMarker(t *testing.T) {
	cases := []struct {
		markdown  string
		completed bool
		status    string
	}{
		{"- [ ] open task", false, StatusTodo},
		{"* [ ] open task", false, StatusTodo},
		{"- [x] closed task", true, StatusDone},
		{"- [X] closed task", true, StatusDone},
		{"* [x] closed task", true, StatusDone},
		{"* [X] closed task", true, StatusDone},
		{"plain paragraph", false, StatusTodo},
	}
	for _, c := range cases {
		completed, status := ParseMarker(c.markdown)
		if completed != c.completed || status != c.status {
			t.Errorf("ParseMarker(%q) = (%v, %q), want (%v, %q)",
				c.markdown, completed, status, c.completed, c.status)
		}
	}
}

func TestExtractStatus_ValidCustomStatus(t *testing.T) {
	for _, c := range []struct {
		status    string
		completed bool
	}{
		{StatusTodo, false},
		{StatusInProgress, false},
		{StatusReview, false},
		{StatusDone, true},
		{StatusArchived, true},
	} {
		attrs := map[string]string{AttrStatus: c.status}
		completed, status := ExtractStatus(attrs, "- [ ] task", nil)
		if status != c.status || completed != c.completed {
			t.Errorf("status %q: got (%v, %q), want (%v, %q)",
				c.status, completed, status, c.completed, c.status)
		}
	}
}

func TestExtractStatus_UnknownStatusFallsBackToCheckbox(t *testing.T) {
	attrs := map[string]string{AttrStatus: "someday"}

	completed, status := ExtractStatus(attrs, "- [ ] not done", nil)
	if status != StatusOther || completed {
		t.Errorf("got (%v, %q), want (false, %q)", completed, status, StatusOther)
	}

	completed, status = ExtractStatus(attrs, "- [x] done anyway", nil)
	if status != StatusOther || !completed {
		t.Errorf("got (%v, %q), want (true, %q)", completed, status, StatusOther)
	}
}

func TestExtractStatus_CustomValidSet(t *testing.T) {
	attrs := map[string]string{AttrStatus: "someday"}
	valid := []string{"todo", "someday", "done"}

	completed, status := ExtractStatus(attrs, "- [ ] task", valid)
	if status != "someday" || completed {
		t.Errorf("got (%v, %q), want (false, someday)", completed, status)
	}
}

func TestTransform_Scenario(t *testing.T) {
	block := TaskBlock{
		ID:       "20250101090000-buymilk",
		RootID:   "doc1",
		Box:      "nb1",
		HPath:    "/Groceries/Weekly",
		Markdown: "- [x] Buy milk",
		Type:     "i",
		SubType:  "t",
		Created:  "20250101090000",
		Updated:  "20250101100000",
	}

	task := Transform(block)

	if task.Content != "Buy milk" {
		t.Errorf("content = %q, want %q", task.Content, "Buy milk")
	}
	if task.Status != StatusDone {
		t.Errorf("status = %q, want %q", task.Status, StatusDone)
	}
	if !task.Completed {
		t.Error("expected completed task")
	}
	want := time.Date(2025, 1, 1, 9, 0, 0, 0, time.Local)
	if !task.CreatedAt.Equal(want) {
		t.Errorf("createdAt = %v, want %v", task.CreatedAt, want)
	}
	if task.DocName != "Weekly" {
		t.Errorf("docName = %q, want %q", task.DocName, "Weekly")
	}
	if task.NotebookName != "nb1" {
		t.Errorf("notebookName = %q, want notebook id fallback %q", task.NotebookName, "nb1")
	}
}

func TestTransform_FirstLineOnly(t *testing.T) {
	block := TaskBlock{
		ID:       "b1",
		Markdown: "- [ ] Parent task\n  - [ ] Child task",
		Created:  "20250101090000",
		Updated:  "20250101090000",
	}
	task := Transform(block)
	if task.Content != "Parent task" {
		t.Errorf("content = %q, want %q", task.Content, "Parent task")
	}
}

func TestTransform_EmptyHPath(t *testing.T) {
	block := TaskBlock{ID: "b1", Markdown: "- [ ] t", Created: "20250101090000", Updated: "20250101090000"}
	if got := Transform(block).DocName; got != "Untitled" {
		t.Errorf("docName = %q, want %q", got, "Untitled")
	}
}

func TestTransform_AttributeExtraction(t *testing.T) {
	block := TaskBlock{
		ID:      "b1",
		Markdown: "- [ ] Ship release",
		IAL: `{: custom-task-status="in-progress" custom-task-priority="urgent" ` +
			`custom-task-duedate="2025-02-01" custom-tag="release"}`,
		Created: "20250110080000",
		Updated: "20250111090000",
	}

	task := Transform(block)

	if task.Status != StatusInProgress || task.Completed {
		t.Errorf("status = (%q, %v), want (in-progress, false)", task.Status, task.Completed)
	}
	if task.Priority != PriorityUrgent {
		t.Errorf("priority = %q, want %q", task.Priority, PriorityUrgent)
	}
	if task.DueDate == nil {
		t.Fatal("expected a due date")
	}
	if y, m, d := task.DueDate.Date(); y != 2025 || m != time.February || d != 1 {
		t.Errorf("dueDate = %v, want 2025-02-01", task.DueDate)
	}
	if task.CustomAttrs["custom-tag"] != "release" {
		t.Errorf("customAttrs missing pass-through attribute: %v", task.CustomAttrs)
	}
}

func TestTransform_InvalidPriorityIgnored(t *testing.T) {
	block := TaskBlock{
		ID: "b1", Markdown: "- [ ] t",
		IAL:     `{: custom-task-priority="critical"}`,
		Created: "20250101090000", Updated: "20250101090000",
	}
	if got := Transform(block).Priority; got != "" {
		t.Errorf("priority = %q, want empty", got)
	}
}

func TestTransform_InvalidDueDateIgnored(t *testing.T) {
	block := TaskBlock{
		ID: "b1", Markdown: "- [ ] t",
		IAL:     `{: custom-task-duedate="sometime soon"}`,
		Created: "20250101090000", Updated: "20250101090000",
	}
	if got := Transform(block).DueDate; got != nil {
		t.Errorf("dueDate = %v, want nil", got)
	}
}

func TestTransform_CompletedAtFallsBackToUpdated(t *testing.T) {
	block := TaskBlock{
		ID: "b1", Markdown: "- [x] t",
		Created: "20250101090000", Updated: "20250102100000",
	}
	task := Transform(block)
	if task.CompletedAt == nil {
		t.Fatal("expected completedAt fallback")
	}
	want := time.Date(2025, 1, 2, 10, 0, 0, 0, time.Local)
	if !task.CompletedAt.Equal(want) {
		t.Errorf("completedAt = %v, want %v", task.CompletedAt, want)
	}
}

func TestTransform_ArchivedHasNoCompletedAtFallback(t *testing.T) {
	block := TaskBlock{
		ID: "b1", Markdown: "- [x] t",
		IAL:     `{: custom-task-status="archived"}`,
		Created: "20250101090000", Updated: "20250102100000",
	}
	task := Transform(block)
	if task.CompletedAt != nil {
		t.Errorf("completedAt = %v, want nil for archived tasks", task.CompletedAt)
	}
	if task.ArchivedAt != nil {
		t.Errorf("archivedAt = %v, want nil without explicit attribute", task.ArchivedAt)
	}
}

func TestTransform_ExplicitCompletedTime(t *testing.T) {
	block := TaskBlock{
		ID: "b1", Markdown: "- [x] t",
		IAL:     `{: custom-task-completed-time="2025-01-05 14:30:00"}`,
		Created: "20250101090000", Updated: "20250106100000",
	}
	task := Transform(block)
	if task.CompletedAt == nil {
		t.Fatal("expected explicit completedAt")
	}
	want := time.Date(2025, 1, 5, 14, 30, 0, 0, time.Local)
	if !task.CompletedAt.Equal(want) {
		t.Errorf("completedAt = %v, want %v", task.CompletedAt, want)
	}
}

func TestTransformAll_PreservesOrder(t *testing.T) {
	blocks := []TaskBlock{
		{ID: "b1", Markdown: "- [ ] first", Created: "20250101090000", Updated: "20250101090000"},
		{ID: "b2", Markdown: "- [ ] second", Created: "20250101090100", Updated: "20250101090100"},
	}
	tasks := TransformAll(blocks)
	if len(tasks) != 2 || tasks[0].ID != "b1" || tasks[1].ID != "b2" {
		t.Errorf("unexpected order: %+v", tasks)
	}
}
