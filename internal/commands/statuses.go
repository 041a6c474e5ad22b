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
	Register(&StatusesCmd{})
}

// StatusesCmd implements the statuses command.
type StatusesCmd struct {
	validate bool
}

func (c *StatusesCmd) Name() string      { return "statuses" }
func (c *StatusesCmd) Aliases() []string { return nil }
func (c *StatusesCmd) Synopsis() string  { return "Show the status configuration" }
func (c *StatusesCmd) Usage() string     { return "sytask statuses [--validate]" }
func (c *StatusesCmd) NeedsAuth() bool   { return false }

func (c *StatusesCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.validate, "validate", false, "")
}

func (c *StatusesCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	settings, err := cfg.LoadSettings()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	active := task.GetStatusConfig(settings.Statuses)

	if c.validate {
		result := task.ValidateStatusConfig(active)
		if result.Valid {
			if !cfg.Quiet {
				fmt.Fprintln(out, "ok")
			}
			return exitcode.Success
		}
		for _, msg := range result.Errors {
			fmt.Fprintf(errOut, "error: %s\n", msg)
		}
		return exitcode.UserError
	}

	for _, def := range active.Statuses {
		output.FormatStatusDefinition(out, def, def.ID == active.DefaultStatus)
	}
	return exitcode.Success
}
