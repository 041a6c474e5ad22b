package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"sytask/internal/config"
	"sytask/internal/exitcode"
	"sytask/internal/output"
	"sytask/internal/service"
	"sytask/internal/task"
)

func init() {
	Register(&StatsCmd{})
}

// StatsCmd implements the stats command.
type StatsCmd struct {
	notebooks string
	today     bool
}

func (c *StatsCmd) Name() string      { return "stats" }
func (c *StatsCmd) Aliases() []string { return nil }
func (c *StatsCmd) Synopsis() string  { return "Summarize tasks" }
func (c *StatsCmd) Usage() string     { return "sytask stats [--notebook <ids>] [--today]" }
func (c *StatsCmd) NeedsAuth() bool   { return true }

func (c *StatsCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.notebooks, "notebook", "", "")
	fs.BoolVar(&c.today, "today", false, "")
}

func (c *StatsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	var filter task.Filter
	if c.today {
		filter.Quick = task.QuickFilterToday
	}
	if ids := splitList(c.notebooks); len(ids) > 0 {
		filter.Notebooks = &task.NotebookFilter{Enabled: true, Mode: task.NotebookInclude, NotebookIDs: ids}
	}

	tasks, err := fetchTasks(ctx, svc, filter)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	output.FormatStats(out, task.CalculateStats(tasks))
	return exitcode.Success
}
