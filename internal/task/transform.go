package task

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// markerRe strips a leading list-and-checkbox marker like "- [ ] " or
// "* [x] " from the first line of a task's markdown.
var markerRe = regexp.MustCompile(`^[*-]\s*\[[^\]]*\]\s*`)

// attrDateLayouts are tried in order when parsing date-valued attributes.
var attrDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp converts a host timestamp (14-digit yyyyMMddHHmmss string)
// to a local time. Anything that is not exactly 14 characters degrades to
// the current time rather than failing.
func ParseTimestamp(ts string) time.Time {
	if len(ts) != 14 {
		return time.Now()
	}
	year, err := strconv.Atoi(ts[0:4])
	if err != nil {
		return time.Now()
	}
	month, _ := strconv.Atoi(ts[4:6])
	day, _ := strconv.Atoi(ts[6:8])
	hour, _ := strconv.Atoi(ts[8:10])
	minute, _ := strconv.Atoi(ts[10:12])
	second, _ := strconv.Atoi(ts[12:14])
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local)
}

// ParseMarker derives completion and status from a standard markdown task
// marker. Unmarked lines default to an open todo.
func ParseMarker(markdown string) (completed bool, status string) {
	if strings.HasPrefix(markdown, "- [ ] ") || strings.HasPrefix(markdown, "* [ ] ") {
		return false, StatusTodo
	}
	for _, p := range []string{"- [x] ", "- [X] ", "* [x] ", "* [X] "} {
		if strings.HasPrefix(markdown, p) {
			return true, StatusDone
		}
	}
	return false, StatusTodo
}

// ExtractStatus resolves a task's status and completion flag.
//
// A custom status attribute wins when present and valid; unrecognized
// values are classified as StatusOther with completion taken from the
// checkbox marker, which absorbs status ids removed from the active
// configuration or written by external edits. Without the attribute the
// markdown marker decides.
func ExtractStatus(attrs map[string]string, markdown string, validStatuses []string) (completed bool, status string) {
	custom := attrs[AttrStatus]
	if custom == "" {
		return ParseMarker(markdown)
	}

	valid := validStatuses
	if valid == nil {
		valid = []string{StatusTodo, StatusInProgress, StatusReview, StatusDone, StatusArchived}
	}
	for _, v := range valid {
		if custom == v {
			done := custom == StatusDone || custom == StatusArchived
			return done, custom
		}
	}

	checked := strings.Contains(markdown, "[x]") || strings.Contains(markdown, "[X]")
	return checked, StatusOther
}

// Transform converts a raw block row into a normalized Task.
func Transform(block TaskBlock) Task {
	attrs := ParseIAL(block.IAL)
	completed, status := ExtractStatus(attrs, block.Markdown, nil)

	// First line only: child blocks are nested under the list item and
	// must not leak into the display content.
	firstLine, _, _ := strings.Cut(block.Markdown, "\n")
	content := strings.TrimSpace(markerRe.ReplaceAllString(firstLine, ""))

	docName := "Untitled"
	if block.HPath != "" {
		segs := strings.Split(block.HPath, "/")
		if last := segs[len(segs)-1]; last != "" {
			docName = last
		}
	}

	notebookName := block.BoxName
	if notebookName == "" {
		notebookName = block.Box
	}

	updatedAt := ParseTimestamp(block.Updated)

	completedAt := attrDate(attrs, AttrCompletedTime)
	if completedAt == nil && completed && status != StatusArchived {
		// No explicit completed-time attribute: the update timestamp is
		// the best available approximation for non-archived tasks.
		t := updatedAt
		completedAt = &t
	}

	return Task{
		ID:       block.ID,
		Content:  content,
		Markdown: block.Markdown,

		Status:    status,
		Completed: completed,
		Priority:  extractPriority(attrs),

		CreatedAt:   ParseTimestamp(block.Created),
		UpdatedAt:   updatedAt,
		DueDate:     attrDate(attrs, AttrDueDate),
		CompletedAt: completedAt,
		ArchivedAt:  attrDate(attrs, AttrArchivedTime),

		NotebookID:   block.Box,
		NotebookName: notebookName,
		DocID:        block.RootID,
		DocName:      docName,
		DocPath:      block.HPath,

		Tags: []string{},

		CustomAttrs: attrs,
		Raw:         &block,
	}
}

// TransformAll converts every block independently, preserving order.
func TransformAll(blocks []TaskBlock) []Task {
	tasks := make([]Task, len(blocks))
	for i, b := range blocks {
		tasks[i] = Transform(b)
	}
	return tasks
}

// extractPriority returns the priority attribute if it is one of the
// known values, empty otherwise.
func extractPriority(attrs map[string]string) string {
	switch p := attrs[AttrPriority]; p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return p
	default:
		return ""
	}
}

// attrDate parses a date-valued attribute. Unparseable values yield nil,
// never an error.
func attrDate(attrs map[string]string, name string) *time.Time {
	raw := attrs[name]
	if raw == "" {
		return nil
	}
	for _, layout := range attrDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return &t
		}
	}
	return nil
}
