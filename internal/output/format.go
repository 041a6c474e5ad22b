// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"sytask/internal/quicknote"
	"sytask/internal/service"
	"sytask/internal/task"
)

const (
	// GroupSeparator is the separator line for group sections.
	GroupSeparator = "------------"
)

// FormatTask formats a task line.
// Format: "{N:>4}  [{x| }] {CONTENT}\n" with optional priority and due
// date annotations.
func FormatTask(w io.Writer, num int, t task.Task) {
	box := " "
	if t.Completed {
		box = "x"
	}

	line := fmt.Sprintf("%4d  [%s] %s", num, box, normalizeContent(t.Content))
	if t.Priority != "" {
		line += "  !" + t.Priority
	}
	if t.DueDate != nil {
		line += "  due " + t.DueDate.Format("2006-01-02")
	}
	fmt.Fprintln(w, line)
}

// FormatTaskIndented formats a task line inside a group section.
func FormatTaskIndented(w io.Writer, num int, t task.Task) {
	fmt.Fprint(w, "    ")
	FormatTask(w, num, t)
}

// FormatGroupHeader formats a group section header.
func FormatGroupHeader(w io.Writer, label string, count int) {
	fmt.Fprintln(w, GroupSeparator)
	fmt.Fprintf(w, "%s (%d)\n", normalizeLabel(label), count)
	fmt.Fprintln(w, GroupSeparator)
}

// FormatStats formats a task summary, one line per figure.
func FormatStats(w io.Writer, s task.Stats) {
	fmt.Fprintf(w, "total:       %d\n", s.Total)
	fmt.Fprintf(w, "completed:   %d\n", s.Completed)
	fmt.Fprintf(w, "in progress: %d\n", s.InProgress)
	fmt.Fprintf(w, "overdue:     %d\n", s.Overdue)
	fmt.Fprintf(w, "completion:  %d%%\n", s.CompletionRate)
}

// FormatFileCard formats one entry of the quick-note target list.
func FormatFileCard(w io.Writer, card quicknote.FileCard) {
	name := normalizeLabel(card.Name)
	var marks []string
	if card.IsDaily {
		marks = append(marks, "daily")
	}
	if card.Pinned && !card.IsDaily {
		marks = append(marks, "pinned")
	}

	line := fmt.Sprintf("%-12s  %s", card.ID, name)
	if len(marks) > 0 {
		line += "  [" + strings.Join(marks, ",") + "]"
	}
	if card.Path != "" {
		line += "  " + card.Path
	}
	fmt.Fprintln(w, line)
}

// FormatNotebook formats a notebook line for the notebooks command.
func FormatNotebook(w io.Writer, nb service.Notebook) {
	name := normalizeLabel(nb.Name)
	if nb.Closed {
		name += " [closed]"
	}
	fmt.Fprintf(w, "%-24s  %s\n", nb.ID, name)
}

// FormatStatusDefinition formats a status line for the statuses command.
func FormatStatusDefinition(w io.Writer, def task.StatusDefinition, isDefault bool) {
	label := normalizeLabel(def.Label)
	if def.IsCompleted {
		label += " [completed]"
	}
	if isDefault {
		label += " [default]"
	}
	fmt.Fprintf(w, "%-12s  %s\n", def.ID, label)
}

// normalizeContent normalizes task content for display.
// Newlines collapse to spaces; empty content becomes "(untitled)".
func normalizeContent(content string) string {
	content = strings.ReplaceAll(content, "\r", " ")
	content = strings.ReplaceAll(content, "\n", " ")
	if strings.TrimSpace(content) == "" {
		return "(untitled)"
	}
	return content
}

// normalizeLabel normalizes a name for display.
func normalizeLabel(label string) string {
	if strings.TrimSpace(label) == "" {
		return "(untitled)"
	}
	return label
}
