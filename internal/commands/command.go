// Package commands implements the clicknote subcommands.
package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"

	"clicknote/internal/config"
	"clicknote/internal/service"
)

// Command is a subcommand registered with the dispatcher.
type Command interface {
	Name() string
	Aliases() []string

	// Synopsis is the one-line summary; Usage is the full usage line(s)
	// printed for --help and argument errors.
	Synopsis() string
	Usage() string

	// NeedsAuth reports whether a stored token must exist before Run.
	// login, logout, use, help and version work without one.
	NeedsAuth() bool

	// RegisterFlags binds the command's own flags. It is called once per
	// invocation on a fresh flag set, which also resets the bound fields.
	RegisterFlags(fs *pflag.FlagSet)

	// Run executes the command with positional args and returns the exit code.
	// svc is supplied by the dispatcher's factory and may be nil when no
	// factory is configured.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int
}
