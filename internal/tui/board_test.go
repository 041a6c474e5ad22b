package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"sytask/internal/task"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func testBoard(submit SubmitFunc) Board {
	tasks := []task.Task{
		{ID: "t1", Content: "write report", Status: task.StatusTodo},
		{ID: "t2", Content: "review patch", Status: task.StatusTodo},
		{ID: "t3", Content: "deploy", Status: task.StatusInProgress},
	}
	return NewBoard(tasks, nil, submit)
}

func TestNewBoard_ColumnsFollowVisibleStatuses(t *testing.T) {
	b := testBoard(nil)

	cols := b.Columns()
	if len(cols) != 4 {
		t.Fatalf("column count = %d, want 4", len(cols))
	}
	if cols[0].Status.ID != task.StatusTodo || len(cols[0].Tasks) != 2 {
		t.Errorf("first column = %s with %d tasks", cols[0].Status.ID, len(cols[0].Tasks))
	}
	if cols[1].Status.ID != task.StatusInProgress || len(cols[1].Tasks) != 1 {
		t.Errorf("second column = %s with %d tasks", cols[1].Status.ID, len(cols[1].Tasks))
	}
}

func TestBoard_Navigation(t *testing.T) {
	var m tea.Model = testBoard(nil)

	m, _ = m.Update(key("j"))
	if _, row := m.(Board).Cursor(); row != 1 {
		t.Errorf("row after j = %d, want 1", row)
	}

	// Moving to a shorter column clamps the row.
	m, _ = m.Update(key("l"))
	col, row := m.(Board).Cursor()
	if col != 1 || row != 0 {
		t.Errorf("cursor after l = (%d,%d), want (1,0)", col, row)
	}

	// Left edge stays put.
	m, _ = m.Update(key("h"))
	m, _ = m.Update(key("h"))
	if col, _ := m.(Board).Cursor(); col != 0 {
		t.Errorf("col after double h = %d, want 0", col)
	}

	// Up at the top stays put.
	m, _ = m.Update(key("k"))
	if _, row := m.(Board).Cursor(); row != 0 {
		t.Errorf("row after k at top = %d, want 0", row)
	}
}

func TestBoard_ComposeSubmits(t *testing.T) {
	var sent string
	var m tea.Model = testBoard(func(content string) error {
		sent = content
		return nil
	})

	m, _ = m.Update(key("n"))
	if !m.(Board).Composing() {
		t.Fatal("expected compose mode after n")
	}

	for _, r := range "call bob" {
		m, _ = m.Update(key(string(r)))
	}
	m, cmd := m.Update(key("enter"))

	if m.(Board).Composing() {
		t.Error("compose mode should close on enter")
	}
	if cmd == nil {
		t.Fatal("expected a submit command")
	}
	if msg := cmd(); msg != (noteSentMsg{}) {
		t.Errorf("submit message = %#v, want noteSentMsg", msg)
	}
	if sent != "call bob" {
		t.Errorf("submitted content = %q, want %q", sent, "call bob")
	}
}

func TestBoard_ComposeCancel(t *testing.T) {
	called := false
	var m tea.Model = testBoard(func(string) error {
		called = true
		return nil
	})

	m, _ = m.Update(key("n"))
	m, _ = m.Update(key("x"))
	m, cmd := m.Update(key("esc"))

	if m.(Board).Composing() {
		t.Error("compose mode should close on esc")
	}
	if cmd != nil {
		t.Error("esc should not produce a command")
	}
	if called {
		t.Error("cancelled note must not be submitted")
	}
}

func TestBoard_ComposeEmptyNotSubmitted(t *testing.T) {
	called := false
	var m tea.Model = testBoard(func(string) error {
		called = true
		return nil
	})

	m, _ = m.Update(key("n"))
	if _, cmd := m.Update(key("enter")); cmd != nil {
		t.Error("empty note should not produce a command")
	}
	if called {
		t.Error("empty note must not be submitted")
	}
}

func TestBoard_SubmitErrorShownInNotice(t *testing.T) {
	var m tea.Model = testBoard(func(string) error {
		return errors.New("boom")
	})

	m, _ = m.Update(key("n"))
	m, _ = m.Update(key("x"))
	m, cmd := m.Update(key("enter"))
	m, _ = m.Update(cmd())

	if view := m.View(); !strings.Contains(view, "error: boom") {
		t.Errorf("view missing error notice:\n%s", view)
	}
}

func TestBoard_QuitKeys(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		var m tea.Model = testBoard(nil)
		_, cmd := m.Update(key(k))
		if cmd == nil {
			t.Fatalf("%s should quit", k)
		}
		if msg := cmd(); msg != (tea.QuitMsg{}) {
			t.Errorf("%s produced %#v, want tea.QuitMsg", k, msg)
		}
	}
}

func TestBoard_ViewShowsCountsAndCursor(t *testing.T) {
	b := testBoard(nil)
	view := b.View()

	for _, want := range []string{"To Do (2)", "In Progress (1)", "> write report"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
