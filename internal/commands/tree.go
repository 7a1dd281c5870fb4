package commands

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"clicknote/internal/config"
	"clicknote/internal/exitcode"
	"clicknote/internal/hierarchy"
	"clicknote/internal/output"
	"clicknote/internal/service"
)

func init() {
	Register(&TreeCmd{})
}

// TreeCmd prints the whole workspace hierarchy.
type TreeCmd struct {
	jobs int
}

func (c *TreeCmd) Name() string      { return "tree" }
func (c *TreeCmd) Aliases() []string { return nil }
func (c *TreeCmd) Synopsis() string  { return "Print teams, spaces, folders and lists" }
func (c *TreeCmd) Usage() string     { return "clicknote tree [common flags] [--jobs <n>]" }
func (c *TreeCmd) NeedsAuth() bool   { return true }

func (c *TreeCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.IntVar(&c.jobs, "jobs", hierarchy.DefaultConcurrency, "parallel requests")
}

func (c *TreeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	tree, err := hierarchy.Walk(ctx, svc, c.jobs)
	if err != nil {
		return ReportError(errOut, err)
	}

	defaultID := ""
	if ref, err := prefsStore(cfg).DefaultList(); err != nil {
		slog.Warn("could not read preferences", "err", err)
	} else if ref != nil {
		defaultID = ref.ID
	}
	marker := func(id string) string {
		if id == defaultID {
			return "[default]"
		}
		return ""
	}

	for _, team := range tree.Teams {
		output.FormatEntry(out, 0, team.ID, team.Name, "")
		for _, space := range team.Spaces {
			output.FormatEntry(out, 1, space.ID, space.Name, "")
			for _, l := range space.Lists {
				output.FormatEntry(out, 2, l.ID, l.Name, marker(l.ID))
			}
			for _, folder := range space.Folders {
				output.FormatEntry(out, 2, folder.ID, folder.Name+"/", "")
				for _, l := range folder.Lists {
					output.FormatEntry(out, 3, l.ID, l.Name, marker(l.ID))
				}
			}
		}
	}
	return exitcode.Success
}
