package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"clicknote/internal/config"
	"clicknote/internal/exitcode"
	"clicknote/internal/output"
	"clicknote/internal/service"
)

func init() {
	Register(&WhoamiCmd{})
	Register(&TeamsCmd{})
}

// WhoamiCmd prints the authorized user.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string      { return "whoami" }
func (c *WhoamiCmd) Aliases() []string { return nil }
func (c *WhoamiCmd) Synopsis() string  { return "Print the authorized user" }
func (c *WhoamiCmd) Usage() string     { return "clicknote whoami [common flags]" }
func (c *WhoamiCmd) NeedsAuth() bool   { return true }

func (c *WhoamiCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	user, err := svc.GetAuthorizedUser(ctx)
	if err != nil {
		return ReportError(errOut, err)
	}
	fmt.Fprintf(out, "%s", user.Username)
	if user.Email != "" {
		fmt.Fprintf(out, " <%s>", user.Email)
	}
	fmt.Fprintf(out, " (%d)\n", user.ID)
	return exitcode.Success
}

// TeamsCmd prints the teams of the user.
type TeamsCmd struct{}

func (c *TeamsCmd) Name() string      { return "teams" }
func (c *TeamsCmd) Aliases() []string { return []string{"workspaces"} }
func (c *TeamsCmd) Synopsis() string  { return "Print teams" }
func (c *TeamsCmd) Usage() string     { return "clicknote teams [common flags]" }
func (c *TeamsCmd) NeedsAuth() bool   { return true }

func (c *TeamsCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *TeamsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	teams, err := svc.GetTeams(ctx)
	if err != nil {
		return ReportError(errOut, err)
	}
	for _, t := range teams {
		output.FormatEntry(out, 0, t.ID, t.Name, "")
	}
	return exitcode.Success
}
