package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"clicknote/internal/config"
	"clicknote/internal/exitcode"
	"clicknote/internal/notesync"
	"clicknote/internal/output"
	"clicknote/internal/service"
)

func init() {
	Register(&TasksCmd{})
}

// TasksCmd prints the tasks of a list.
type TasksCmd struct {
	table bool
}

func (c *TasksCmd) Name() string      { return "tasks" }
func (c *TasksCmd) Aliases() []string { return []string{"ls"} }
func (c *TasksCmd) Synopsis() string  { return "Print the tasks of a list" }
func (c *TasksCmd) Usage() string     { return "clicknote tasks [common flags] [--table] [<list-id>]" }
func (c *TasksCmd) NeedsAuth() bool   { return true }

func (c *TasksCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&c.table, "table", false, "print the markdown table written by sync")
}

func (c *TasksCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	list, err := resolveList(cfg, args)
	if err != nil {
		return ReportError(errOut, err)
	}

	tasks, err := svc.GetTasks(ctx, list.ID)
	if err != nil {
		return ReportError(errOut, err)
	}

	if c.table {
		rows := notesync.BuildRows(tasks, nil, cfg.LegacyPriority)
		fmt.Fprint(out, output.RenderTable(output.TaskHeaders, rows))
		return exitcode.Success
	}

	if !cfg.Quiet {
		title := list.Name
		if title == "" {
			title = list.ID
		}
		output.FormatSectionHeader(out, title)
	}
	for i, t := range tasks {
		output.FormatTask(out, i+1, t)
	}
	if len(tasks) == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks")
	}
	return exitcode.Success
}
