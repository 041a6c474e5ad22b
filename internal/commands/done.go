package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"

	"sytask/internal/config"
	"sytask/internal/exitcode"
	"sytask/internal/service"
	"sytask/internal/task"
)

// completedTimeLayout is the format written to the completed-time
// attribute when a task is marked done.
const completedTimeLayout = "2006-01-02 15:04:05"

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command: mark a task completed by its
// 1-based number in the default (created-descending) listing.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Mark a task completed" }
func (c *DoneCmd) Usage() string     { return "sytask done <number>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: task number required")
		return exitcode.UserError
	}
	num, err := strconv.Atoi(args[0])
	if err != nil || num < 1 {
		fmt.Fprintf(errOut, "error: invalid task number: %s\n", args[0])
		return exitcode.UserError
	}

	settings, err := cfg.LoadSettings()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	// Numbers refer to the same order `sytask list` prints by default.
	tasks, err := fetchTasks(ctx, svc, task.Filter{})
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
	tasks = task.Sort(tasks, task.SortCreated, task.OrderDesc)

	if num > len(tasks) {
		fmt.Fprintf(errOut, "error: task number out of range: %d\n", num)
		return exitcode.UserError
	}
	target := tasks[num-1]

	attrs := map[string]string{
		task.AttrStatus:        task.CompletedStatusID(settings.Statuses),
		task.AttrCompletedTime: time.Now().Format(completedTimeLayout),
	}
	if err := svc.SetBlockAttrs(ctx, target.ID, attrs); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
