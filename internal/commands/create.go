package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/pflag"

	"clicknote/internal/config"
	"clicknote/internal/exitcode"
	"clicknote/internal/service"
	"clicknote/internal/taskflow"
	"clicknote/internal/vault"
)

func init() {
	Register(&CreateCmd{})
}

// readClipboard is replaced in tests.
var readClipboard = clipboard.ReadAll

// CreateCmd creates a task, either from text selected in a note or from
// explicit flags.
type CreateCmd struct {
	list        string
	name        string
	description string
	priority    string
	assignees   []int64
	note        string
	selection   string
	fromClip    bool
}

func (c *CreateCmd) Name() string      { return "create" }
func (c *CreateCmd) Aliases() []string { return []string{"add"} }
func (c *CreateCmd) Synopsis() string  { return "Create a task and resync the list note" }
func (c *CreateCmd) Usage() string {
	return "clicknote create [common flags] [--list <id>] --note <path> (--select <text> | --clipboard)\n" +
		"       clicknote create [common flags] [--list <id>] [--description <text>] [--priority <p>] [--assignee <id>]... <name>..."
}
func (c *CreateCmd) NeedsAuth() bool { return true }

func (c *CreateCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.list, "list", "", "destination list id (default: the list chosen with use)")
	fs.StringVar(&c.name, "name", "", "task name")
	fs.StringVar(&c.description, "description", "", "task description")
	fs.StringVar(&c.priority, "priority", "", "priority: low, medium, high, critical or 1-4")
	fs.Int64SliceVar(&c.assignees, "assignee", nil, "assignee user id (repeatable)")
	fs.StringVar(&c.note, "note", "", "vault-relative note holding the selection")
	fs.StringVar(&c.selection, "select", "", "selected text inside --note")
	fs.BoolVar(&c.fromClip, "clipboard", false, "use the clipboard as the selection or name")
}

func (c *CreateCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	list, err := resolveList(cfg, c.listArgs())
	if err != nil {
		return ReportError(errOut, err)
	}

	v := openVault(cfg)
	flow := taskflow.New(svc, newSynchronizer(cfg, svc, v), taskflow.FixedList(list))
	flow.Delay = cfg.LinkDelay

	if c.note != "" {
		return c.runSelection(ctx, cfg, flow, v, out, errOut)
	}
	return c.runManual(ctx, cfg, flow, list.ID, args, out, errOut)
}

func (c *CreateCmd) listArgs() []string {
	if c.list == "" {
		return nil
	}
	return []string{c.list}
}

func (c *CreateCmd) runSelection(ctx context.Context, cfg *config.Config, flow *taskflow.Flow, v *vault.Vault, out, errOut io.Writer) int {
	text := c.selection
	if c.fromClip {
		clip, err := readClipboard()
		if err != nil {
			fmt.Fprintf(errOut, "error: failed to read clipboard: %v\n", err)
			return exitcode.UserError
		}
		text = clip
	}

	sel, err := v.Select(c.note, text)
	if err != nil {
		if errors.Is(err, vault.ErrSelectionNotFound) || errors.Is(err, vault.ErrNotExist) {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		return ReportError(errOut, err)
	}

	res, err := flow.CreateFromSelection(ctx, sel)
	return c.report(cfg, res, err, out, errOut)
}

func (c *CreateCmd) runManual(ctx context.Context, cfg *config.Config, flow *taskflow.Flow, listID string, args []string, out, errOut io.Writer) int {
	name := strings.TrimSpace(c.name)
	if name == "" {
		name = strings.TrimSpace(strings.Join(args, " "))
	}
	if name == "" && c.fromClip {
		clip, err := readClipboard()
		if err != nil {
			fmt.Fprintf(errOut, "error: failed to read clipboard: %v\n", err)
			return exitcode.UserError
		}
		name = strings.TrimSpace(clip)
	}
	if name == "" {
		fmt.Fprintf(errOut, "error: missing task name\nusage: %s\n", c.Usage())
		return exitcode.UserError
	}

	priority, err := service.ParsePriority(c.priority)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	res, err := flow.CreateInList(ctx, listID, service.TaskCreationRequest{
		Name:        name,
		Description: c.description,
		Assignees:   c.assignees,
		Priority:    priority,
	})
	return c.report(cfg, res, err, out, errOut)
}

func (c *CreateCmd) report(cfg *config.Config, res taskflow.Result, err error, out, errOut io.Writer) int {
	if res.Skipped {
		fmt.Fprintf(errOut, "nothing to do: %s\n", res.Reason)
		return exitcode.Success
	}
	if err != nil && res.Task.ID == "" {
		return ReportError(errOut, err)
	}

	fmt.Fprintf(out, "created %s %s\n", res.Task.ID, res.Task.URL)
	if err != nil && c.note != "" && res.Link == "" {
		// The link was never spliced.
		return ReportError(errOut, err)
	}
	if err != nil {
		fmt.Fprintf(errOut, "warning: task created but the note was not updated: %v\n", err)
		return exitcode.Success
	}
	if !cfg.Quiet {
		switch {
		case res.Sync.Skipped:
			fmt.Fprintf(out, "no note bound to list %s\n", res.ListID)
		case res.Sync.Path != "":
			fmt.Fprintf(out, "synced %s (%d tasks)\n", res.Sync.Path, res.Sync.Rows)
		}
	}
	return exitcode.Success
}
