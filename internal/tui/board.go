// Package tui implements the interactive task board.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sytask/internal/task"
)

// SubmitFunc sends a composed quick note to the host.
type SubmitFunc func(content string) error

// Column is one status lane of the board.
type Column struct {
	Status task.StatusDefinition
	Tasks  []task.Task
}

var (
	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(28)

	activeColumnStyle = columnStyle.
				BorderForeground(lipgloss.Color("62"))

	titleStyle = lipgloss.NewStyle().Bold(true)

	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type noteSentMsg struct{}

type noteErrMsg struct{ err error }

// Board is the bubbletea model for the task board.
type Board struct {
	columns []Column
	col     int
	row     int

	composing bool
	input     textinput.Model
	submit    SubmitFunc

	notice string
	width  int
}

// NewBoard builds the board from an already filtered task list. Columns
// follow the visible statuses of the active configuration.
func NewBoard(tasks []task.Task, cfg *task.StatusConfig, submit SubmitFunc) Board {
	byStatus := make(map[string][]task.Task)
	for _, g := range task.GroupByStatus(tasks) {
		byStatus[g.Key] = g.Tasks
	}

	var columns []Column
	for _, def := range task.VisibleStatuses(cfg) {
		columns = append(columns, Column{Status: def, Tasks: byStatus[def.ID]})
	}

	input := textinput.New()
	input.Placeholder = "quick note"
	input.CharLimit = 512

	return Board{
		columns: columns,
		input:   input,
		submit:  submit,
	}
}

// Columns returns the board's columns (for testing).
func (b Board) Columns() []Column { return b.columns }

// Cursor returns the selected column and row (for testing).
func (b Board) Cursor() (col, row int) { return b.col, b.row }

// Composing reports whether the compose prompt is open (for testing).
func (b Board) Composing() bool { return b.composing }

func (b Board) Init() tea.Cmd { return nil }

func (b Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		return b, nil

	case noteSentMsg:
		b.notice = "note sent"
		return b, nil

	case noteErrMsg:
		b.notice = "error: " + msg.err.Error()
		return b, nil

	case tea.KeyMsg:
		if b.composing {
			return b.updateCompose(msg)
		}
		return b.updateBoard(msg)
	}
	return b, nil
}

func (b Board) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return b, tea.Quit

	case "h", "left":
		if b.col > 0 {
			b.col--
			b.clampRow()
		}
	case "l", "right":
		if b.col < len(b.columns)-1 {
			b.col++
			b.clampRow()
		}
	case "j", "down":
		if b.row < len(b.current())-1 {
			b.row++
		}
	case "k", "up":
		if b.row > 0 {
			b.row--
		}

	case "n":
		b.composing = true
		b.notice = ""
		b.input.SetValue("")
		return b, b.input.Focus()
	}
	return b, nil
}

func (b Board) updateCompose(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		b.composing = false
		b.input.Blur()
		return b, nil

	case "enter":
		content := strings.TrimSpace(b.input.Value())
		b.composing = false
		b.input.Blur()
		if content == "" || b.submit == nil {
			return b, nil
		}
		submit := b.submit
		return b, func() tea.Msg {
			if err := submit(content); err != nil {
				return noteErrMsg{err: err}
			}
			return noteSentMsg{}
		}
	}

	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	return b, cmd
}

func (b *Board) clampRow() {
	if n := len(b.current()); b.row >= n {
		b.row = n - 1
	}
	if b.row < 0 {
		b.row = 0
	}
}

func (b Board) current() []task.Task {
	if b.col >= len(b.columns) {
		return nil
	}
	return b.columns[b.col].Tasks
}

func (b Board) View() string {
	if len(b.columns) == 0 {
		return "no visible status columns\n"
	}

	rendered := make([]string, len(b.columns))
	for i, col := range b.columns {
		rendered[i] = b.renderColumn(i, col)
	}
	view := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	if b.composing {
		view += "\n  note: " + b.input.View()
	} else {
		view += "\n" + dimStyle.Render("  n: new note  h/l: column  j/k: task  q: quit")
	}
	if b.notice != "" {
		view += "\n  " + b.notice
	}
	return view + "\n"
}

func (b Board) renderColumn(idx int, col Column) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d)", col.Status.Label, len(col.Tasks))))
	sb.WriteString("\n")

	for i, t := range col.Tasks {
		line := truncate(t.Content, 24)
		if idx == b.col && i == b.row {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	if len(col.Tasks) == 0 {
		sb.WriteString(dimStyle.Render("  (empty)"))
		sb.WriteString("\n")
	}

	style := columnStyle
	if idx == b.col {
		style = activeColumnStyle
	}
	return style.Render(sb.String())
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
