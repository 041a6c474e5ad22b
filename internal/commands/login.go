package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"sytask/internal/backend/siyuan"
	"sytask/internal/config"
	"sytask/internal/exitcode"
	"sytask/internal/service"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command: verify and store the host API
// token.
type LoginCmd struct {
	server string
	token  string

	// verify overrides the connectivity check (for testing).
	verify func(ctx context.Context, server, token string) error
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Store the host API token" }
func (c *LoginCmd) Usage() string     { return "sytask login --token <token> [--server <url>]" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

// SetVerify overrides the connectivity check (for testing).
func (c *LoginCmd) SetVerify(fn func(ctx context.Context, server, token string) error) {
	c.verify = fn
}

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.server, "server", "", "")
	fs.StringVar(&c.token, "token", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if c.token == "" {
		fmt.Fprintln(errOut, "error: token required (find it in the host's Settings > About)")
		return exitcode.UserError
	}

	// Preserve the existing quick-note and status configuration.
	settings, err := cfg.LoadSettings()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	server := c.server
	if server == "" {
		server = settings.Server
	}

	verify := c.verify
	if verify == nil {
		verify = func(ctx context.Context, server, token string) error {
			return siyuan.NewWithToken(ctx, server, token).Ping(ctx)
		}
	}
	if err := verify(ctx, server, c.token); err != nil {
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	}

	settings.Server = server
	settings.Token = c.token
	if err := cfg.SaveSettings(settings); err != nil {
		fmt.Fprintf(errOut, "error: failed to save settings: %v\n", err)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
