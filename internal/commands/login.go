package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"golang.org/x/oauth2"

	"clicknote/internal/config"
	"clicknote/internal/exitcode"
	"clicknote/internal/service"
)

// AuthorizeURL is the page where the user grants access and receives a code.
const AuthorizeURL = "https://app.clickup.com/api"

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	code string
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Authorize with ClickUp" }
func (c *LoginCmd) Usage() string     { return "clicknote login [common flags] [--code <code>]" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.code, "code", "", "authorization code from the redirect")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		fmt.Fprintf(errOut, "error: client_id and client_secret must be set in %s\n", cfg.ConfigPath())
		return exitcode.AuthError
	}

	code := strings.TrimSpace(c.code)
	if code == "" {
		if svc != nil && cfg.HasToken() {
			if user, err := svc.GetAuthorizedUser(ctx); err == nil {
				if !cfg.Quiet {
					fmt.Fprintf(out, "already logged in as %s\n", user.Username)
				}
				return exitcode.Success
			}
		}
		fmt.Fprintln(errOut, "Open this URL in your browser:")
		fmt.Fprintln(errOut, authCodeURL(cfg))
		fmt.Fprintln(errOut, "Then run: clicknote login --code <code>")
		return exitcode.Success
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}
	if _, err := svc.GetToken(ctx, code, cfg.ClientID, cfg.ClientSecret); err != nil {
		return ReportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// authCodeURL builds the authorization URL for the configured app.
func authCodeURL(cfg *config.Config) string {
	oc := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Endpoint: oauth2.Endpoint{
			AuthURL:   AuthorizeURL,
			TokenURL:  strings.TrimSuffix(cfg.BaseURL, "/") + "/oauth/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	return oc.AuthCodeURL(uuid.NewString())
}
