package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"sytask/internal/config"
	"sytask/internal/exitcode"
	"sytask/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "sytask help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  sytask                                             List tasks (newest first)
  sytask list [common flags] [filters...]            List tasks with filtering,
                                                     sorting and grouping
  sytask stats [common flags] [--notebook <ids>] [--today]
  sytask note [common flags] [--file <id>] <text...> Capture a quick note
  sytask jot [common flags] [--file <id>] <text...>  Alias for note
  sytask files [common flags]                        List quick-note target files
  sytask done [common flags] <number>                Mark a task completed
  sytask statuses [common flags] [--validate]        Show the status configuration
  sytask notebooks [common flags]                    List notebooks
  sytask board [common flags]                        Interactive task board
  sytask login [common flags] --token <token> [--server <url>]
  sytask logout [common flags]
  sytask help
  sytask version

List filters:
  --status <ids>            Comma-separated status ids
  --priority <levels>       Comma-separated priorities (low,medium,high,urgent)
  --notebook <ids>          Only these notebooks
  --exclude-notebooks <ids> All but these notebooks
  --today                   Only tasks created today
  --keyword <text>          Match content, document name or tags
  --tag <tags>              Comma-separated tags
  --hide-completed          Drop completed tasks
  --due-after/--due-before <YYYY-MM-DD>
  --created-after/--created-before <YYYY-MM-DD>
  --sort <key>              created, updated, priority or dueDate
  --order <dir>             asc or desc
  --group <key>             status, notebook or priority

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
