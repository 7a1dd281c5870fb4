package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"clicknote/internal/config"
	"clicknote/internal/exitcode"
	"clicknote/internal/output"
	"clicknote/internal/service"
)

func init() {
	Register(&SpacesCmd{})
	Register(&FoldersCmd{})
	Register(&ListsCmd{})
	Register(&MembersCmd{})
}

// SpacesCmd prints the spaces of a team.
type SpacesCmd struct{}

func (c *SpacesCmd) Name() string      { return "spaces" }
func (c *SpacesCmd) Aliases() []string { return nil }
func (c *SpacesCmd) Synopsis() string  { return "Print the spaces of a team" }
func (c *SpacesCmd) Usage() string     { return "clicknote spaces [common flags] <team-id>" }
func (c *SpacesCmd) NeedsAuth() bool   { return true }

func (c *SpacesCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *SpacesCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if !requireArgs(errOut, c, args, 1) {
		return exitcode.UserError
	}
	spaces, err := svc.GetSpaces(ctx, args[0])
	if err != nil {
		return ReportError(errOut, err)
	}
	for _, s := range spaces {
		output.FormatEntry(out, 0, s.ID, s.Name, "")
	}
	return exitcode.Success
}

// FoldersCmd prints the folders of a space.
type FoldersCmd struct{}

func (c *FoldersCmd) Name() string      { return "folders" }
func (c *FoldersCmd) Aliases() []string { return nil }
func (c *FoldersCmd) Synopsis() string  { return "Print the folders of a space" }
func (c *FoldersCmd) Usage() string     { return "clicknote folders [common flags] <space-id>" }
func (c *FoldersCmd) NeedsAuth() bool   { return true }

func (c *FoldersCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *FoldersCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if !requireArgs(errOut, c, args, 1) {
		return exitcode.UserError
	}
	folders, err := svc.GetFolders(ctx, args[0])
	if err != nil {
		return ReportError(errOut, err)
	}
	for _, f := range folders {
		output.FormatEntry(out, 0, f.ID, f.Name, "")
	}
	return exitcode.Success
}

// ListsCmd prints the lists of a space, or of a folder with --folder.
type ListsCmd struct {
	folder string
}

func (c *ListsCmd) Name() string      { return "lists" }
func (c *ListsCmd) Aliases() []string { return nil }
func (c *ListsCmd) Synopsis() string  { return "Print the lists of a space or folder" }
func (c *ListsCmd) Usage() string {
	return "clicknote lists [common flags] <space-id> | --folder <folder-id>"
}
func (c *ListsCmd) NeedsAuth() bool { return true }

func (c *ListsCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.folder, "folder", "", "folder id")
}

func (c *ListsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	var (
		lists []service.List
		err   error
	)
	switch {
	case c.folder != "":
		lists, err = svc.GetList(ctx, c.folder)
	case len(args) > 0:
		lists, err = svc.GetFolderlessList(ctx, args[0])
	default:
		fmt.Fprintf(errOut, "error: missing argument\nusage: %s\n", c.Usage())
		return exitcode.UserError
	}
	if err != nil {
		return ReportError(errOut, err)
	}

	defaultID := ""
	if ref, err := prefsStore(cfg).DefaultList(); err != nil {
		slog.Warn("could not read preferences", "err", err)
	} else if ref != nil {
		defaultID = ref.ID
	}

	for _, l := range lists {
		marker := ""
		if l.ID == defaultID {
			marker = "[default]"
		}
		output.FormatEntry(out, 0, l.ID, l.Name, marker)
	}
	return exitcode.Success
}

// MembersCmd prints the members of a list.
type MembersCmd struct{}

func (c *MembersCmd) Name() string      { return "members" }
func (c *MembersCmd) Aliases() []string { return nil }
func (c *MembersCmd) Synopsis() string  { return "Print the members of a list" }
func (c *MembersCmd) Usage() string     { return "clicknote members [common flags] [<list-id>]" }
func (c *MembersCmd) NeedsAuth() bool   { return true }

func (c *MembersCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *MembersCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	list, err := resolveList(cfg, args)
	if err != nil {
		return ReportError(errOut, err)
	}
	members, err := svc.GetListMembers(ctx, list.ID)
	if err != nil {
		return ReportError(errOut, err)
	}
	for _, m := range members {
		output.FormatMember(out, m)
	}
	return exitcode.Success
}
