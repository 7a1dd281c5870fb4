package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"clicknote/internal/config"
	"clicknote/internal/exitcode"
	"clicknote/internal/hierarchy"
	"clicknote/internal/service"
)

func init() {
	Register(&UseCmd{})
}

// UseCmd shows or sets the default destination list.
type UseCmd struct {
	name string
}

func (c *UseCmd) Name() string      { return "use" }
func (c *UseCmd) Aliases() []string { return nil }
func (c *UseCmd) Synopsis() string  { return "Show or set the default list" }
func (c *UseCmd) Usage() string     { return "clicknote use [common flags] [--name <name>] [<list-id>]" }
func (c *UseCmd) NeedsAuth() bool   { return false }

func (c *UseCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.name, "name", "", "display name of the list")
}

func (c *UseCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	store := prefsStore(cfg)

	if len(args) == 0 {
		ref, err := store.DefaultList()
		if err != nil {
			return ReportError(errOut, err)
		}
		if ref == nil {
			fmt.Fprintln(out, "no default list")
			return exitcode.Success
		}
		fmt.Fprintf(out, "%s  %s\n", ref.ID, ref.Name)
		return exitcode.Success
	}

	ref := config.ListRef{ID: strings.TrimSpace(args[0]), Name: strings.TrimSpace(c.name)}
	if ref.ID == "" {
		fmt.Fprintf(errOut, "error: empty list id\nusage: %s\n", c.Usage())
		return exitcode.UserError
	}
	if ref.Name == "" && svc != nil && cfg.HasToken() {
		ref.Name = lookupListName(ctx, svc, ref.ID)
	}

	if err := store.SetDefaultList(ref); err != nil {
		fmt.Fprintf(errOut, "error: failed to save preferences: %v\n", err)
		return exitcode.UserError
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// lookupListName finds the name of a list by walking the hierarchy.
// Failures are logged and yield an empty name.
func lookupListName(ctx context.Context, svc service.Service, id string) string {
	tree, err := hierarchy.Walk(ctx, svc, hierarchy.DefaultConcurrency)
	if err != nil {
		slog.Warn("could not look up list name", "list", id, "err", err)
		return ""
	}
	lp, ok := tree.FindList(id)
	if !ok {
		slog.Warn("list not found in workspace", "list", id)
		return ""
	}
	return lp.List.Name
}
