package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"sytask/internal/config"
	"sytask/internal/exitcode"
	"sytask/internal/output"
	"sytask/internal/quicknote"
	"sytask/internal/service"
)

func init() {
	Register(&FilesCmd{})
}

// FilesCmd implements the files command: the quick-note target picker.
type FilesCmd struct{}

func (c *FilesCmd) Name() string      { return "files" }
func (c *FilesCmd) Aliases() []string { return nil }
func (c *FilesCmd) Synopsis() string  { return "List quick-note target files" }
func (c *FilesCmd) Usage() string     { return "sytask files" }
func (c *FilesCmd) NeedsAuth() bool   { return true }

func (c *FilesCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *FilesCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	settings, err := cfg.LoadSettings()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	qn := &quicknote.Service{Host: svc, Logf: debugLogf(cfg, errOut)}
	for _, card := range qn.BuildFileCards(ctx, settings.QuickNote) {
		output.FormatFileCard(out, card)
	}
	return exitcode.Success
}

// debugLogf returns a diagnostics sink that writes to errOut only when
// debug logging is on.
func debugLogf(cfg *config.Config, errOut io.Writer) func(string, ...any) {
	if !cfg.Debug {
		return nil
	}
	return func(format string, args ...any) {
		fmt.Fprintf(errOut, "debug: "+format+"\n", args...)
	}
}
