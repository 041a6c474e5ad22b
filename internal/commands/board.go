package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"sytask/internal/config"
	"sytask/internal/exitcode"
	"sytask/internal/quicknote"
	"sytask/internal/service"
	"sytask/internal/task"
	"sytask/internal/tui"
)

func init() {
	Register(&BoardCmd{})
}

// BoardCmd implements the board command: an interactive status-column
// view with quick-note capture.
type BoardCmd struct {
	notebooks     string
	hideCompleted bool

	// runProgram overrides program execution (for testing).
	runProgram func(model tea.Model) error
}

// SetRunProgram overrides program execution (for testing).
func (c *BoardCmd) SetRunProgram(fn func(model tea.Model) error) {
	c.runProgram = fn
}

func (c *BoardCmd) Name() string      { return "board" }
func (c *BoardCmd) Aliases() []string { return nil }
func (c *BoardCmd) Synopsis() string  { return "Interactive task board" }
func (c *BoardCmd) Usage() string     { return "sytask board [--notebook <ids>] [--hide-completed]" }
func (c *BoardCmd) NeedsAuth() bool   { return true }

func (c *BoardCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.notebooks, "notebook", "", "")
	fs.BoolVar(&c.hideCompleted, "hide-completed", false, "")
}

func (c *BoardCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	settings, err := cfg.LoadSettings()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	var filter task.Filter
	if ids := splitList(c.notebooks); len(ids) > 0 {
		filter.Notebooks = &task.NotebookFilter{Enabled: true, Mode: task.NotebookInclude, NotebookIDs: ids}
	}
	if c.hideCompleted {
		show := false
		filter.ShowCompleted = &show
	}

	tasks, err := fetchTasks(ctx, svc, filter)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	qn := &quicknote.Service{Host: svc}
	submit := func(content string) error {
		fileID := settings.QuickNote.SelectedFileID
		if fileID == "" {
			fileID = quicknote.DailyFileID
		}
		_, err := qn.AddToFile(ctx, fileID, content, settings.QuickNote)
		return err
	}

	board := tui.NewBoard(tasks, settings.Statuses, submit)

	run := c.runProgram
	if run == nil {
		run = func(model tea.Model) error {
			_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		}
	}
	if err := run(board); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
