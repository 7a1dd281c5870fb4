package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"clicknote/internal/config"
	"clicknote/internal/exitcode"
	"clicknote/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "clicknote help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  clicknote login [common flags] [--code <code>]
  clicknote logout [common flags]
  clicknote whoami [common flags]
  clicknote teams [common flags]
  clicknote spaces [common flags] <team-id>
  clicknote folders [common flags] <space-id>
  clicknote lists [common flags] <space-id> | --folder <folder-id>
  clicknote tree [common flags] [--jobs <n>]
  clicknote members [common flags] [<list-id>]
  clicknote use [common flags] [--name <name>] [<list-id>]
  clicknote tasks [common flags] [--table] [<list-id>]
  clicknote sync [common flags] [--create [--name <name>]] [<list-id>]
  clicknote create [common flags] [--list <id>] --note <path> (--select <text> | --clipboard)
  clicknote create [common flags] [--list <id>] [--description <text>] [--priority <p>]
                   [--assignee <id>]... <name...>
  clicknote serve [common flags] [--addr <host:port>]
  clicknote help
  clicknote version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
