package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"clicknote/internal/config"
	"clicknote/internal/exitcode"
	"clicknote/internal/service"
)

func init() {
	Register(&SyncCmd{})
}

// SyncCmd rewrites the note bound to a list with the list's current tasks.
type SyncCmd struct {
	create bool
	name   string
}

func (c *SyncCmd) Name() string      { return "sync" }
func (c *SyncCmd) Aliases() []string { return nil }
func (c *SyncCmd) Synopsis() string  { return "Rewrite the note of a list from its tasks" }
func (c *SyncCmd) Usage() string {
	return "clicknote sync [common flags] [--create [--name <name>]] [<list-id>]"
}
func (c *SyncCmd) NeedsAuth() bool { return true }

func (c *SyncCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&c.create, "create", false, "create the note when none is bound to the list")
	fs.StringVar(&c.name, "name", "", "note name used with --create (default: the list name)")
}

func (c *SyncCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	list, err := resolveList(cfg, args)
	if err != nil {
		return ReportError(errOut, err)
	}

	syncer := newSynchronizer(cfg, svc, openVault(cfg))

	if c.create {
		name := strings.TrimSpace(c.name)
		if name == "" {
			name = list.Name
		}
		if name == "" {
			name = "List"
		}
		p, err := syncer.CreateNote(list.ID, name)
		if err != nil {
			return ReportError(errOut, err)
		}
		if !cfg.Quiet {
			fmt.Fprintf(out, "note %s\n", p)
		}
	}

	res, err := syncer.Sync(ctx, list.ID)
	if err != nil {
		return ReportError(errOut, err)
	}
	if res.Skipped {
		fmt.Fprintf(out, "no note bound to list %s\n", list.ID)
		return exitcode.Success
	}
	fmt.Fprintf(out, "synced %s (%d tasks)\n", res.Path, res.Rows)
	return exitcode.Success
}
