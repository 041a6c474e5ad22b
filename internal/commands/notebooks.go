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
)

func init() {
	Register(&NotebooksCmd{})
}

// NotebooksCmd implements the notebooks command.
type NotebooksCmd struct{}

func (c *NotebooksCmd) Name() string      { return "notebooks" }
func (c *NotebooksCmd) Aliases() []string { return nil }
func (c *NotebooksCmd) Synopsis() string  { return "List notebooks" }
func (c *NotebooksCmd) Usage() string     { return "sytask notebooks" }
func (c *NotebooksCmd) NeedsAuth() bool   { return true }

func (c *NotebooksCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *NotebooksCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	notebooks, err := svc.ListNotebooks(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if len(notebooks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no notebooks found")
		}
		return exitcode.Success
	}

	for _, nb := range notebooks {
		output.FormatNotebook(out, nb)
	}
	return exitcode.Success
}
