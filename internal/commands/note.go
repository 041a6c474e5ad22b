package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"sytask/internal/config"
	"sytask/internal/exitcode"
	"sytask/internal/quicknote"
	"sytask/internal/service"
)

func init() {
	Register(&NoteCmd{})
}

// NoteCmd implements the note command: append a quick note under the
// marker heading of a target document.
type NoteCmd struct {
	fileID string
}

func (c *NoteCmd) Name() string      { return "note" }
func (c *NoteCmd) Aliases() []string { return []string{"jot"} }
func (c *NoteCmd) Synopsis() string  { return "Capture a quick note" }
func (c *NoteCmd) Usage() string     { return "sytask note [--file <id>] <text...>" }
func (c *NoteCmd) NeedsAuth() bool   { return true }

func (c *NoteCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.fileID, "file", "", "")
	fs.StringVar(&c.fileID, "f", "", "")
}

func (c *NoteCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	content := strings.TrimSpace(strings.Join(args, " "))
	if content == "" {
		fmt.Fprintln(errOut, "error: note text required")
		return exitcode.UserError
	}

	settings, err := cfg.LoadSettings()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	// The target falls back to the configured selection, which defaults
	// to today's daily note.
	fileID := c.fileID
	if fileID == "" {
		fileID = settings.QuickNote.SelectedFileID
	}
	if fileID == "" {
		fileID = quicknote.DailyFileID
	}

	qn := &quicknote.Service{Host: svc, Logf: debugLogf(cfg, errOut)}
	if _, err := qn.AddToFile(ctx, fileID, content, settings.QuickNote); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
