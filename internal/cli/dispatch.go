// Package cli parses the command line and dispatches to registered commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"clicknote/internal/commands"
	"clicknote/internal/config"
	"clicknote/internal/exitcode"
	"clicknote/internal/service"
)

// ServiceFactory creates a Service from config.
// requireAuth is true when the command needs a stored token; the factory
// should then fail with an auth error if none is available.
type ServiceFactory func(ctx context.Context, cfg *config.Config, requireAuth bool) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

type globalOptions struct {
	configDir string
	quiet     bool
	debug     bool
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		args = []string{"help"}
	}

	// Flags require a command.
	name := args[0]
	if strings.HasPrefix(name, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
		return exitcode.UserError
	}
	if _, ok := d.registry.Find(name); !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
		return exitcode.UserError
	}

	code := exitcode.Success
	root := d.rootCommand(&code, out, errOut)
	root.SetArgs(args)

	// Only flag parsing can fail here; command failures travel in code.
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return code
}

// rootCommand builds a cobra tree with one subcommand per registered command.
// The exit code of the command that ran is stored in code.
func (d *Dispatcher) rootCommand(code *int, out, errOut io.Writer) *cobra.Command {
	var opts globalOptions

	root := &cobra.Command{
		Use:           "clicknote",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if c.Long != "" {
			fmt.Fprintf(out, "usage: %s\n", c.Long)
			return
		}
		fmt.Fprint(out, c.Root().UsageString())
	})

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configDir, "config", "", "override config directory")
	pf.BoolVar(&opts.quiet, "quiet", false, "suppress informational output")
	pf.BoolVar(&opts.debug, "debug", false, "print debug logs to stderr")

	for _, cmd := range d.registry.All() {
		sub := &cobra.Command{
			Use:                   cmd.Name(),
			Aliases:               cmd.Aliases(),
			Short:                 cmd.Synopsis(),
			Long:                  cmd.Usage(),
			Args:                  cobra.ArbitraryArgs,
			DisableFlagsInUseLine: true,
			RunE: func(c *cobra.Command, positional []string) error {
				*code = d.execute(c.Context(), cmd, opts, positional, out, errOut)
				return nil
			},
		}
		cmd.RegisterFlags(sub.Flags())

		if cmd.Name() == "help" {
			root.SetHelpCommand(sub)
			continue
		}
		root.AddCommand(sub)
	}
	return root
}

func (d *Dispatcher) execute(ctx context.Context, cmd commands.Command, opts globalOptions, args []string, out, errOut io.Writer) int {
	cfg, err := config.Load(opts.configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = opts.quiet
	cfg.Debug = opts.debug
	setupLogging(errOut, cfg)

	var svc service.Service
	if d.factory != nil {
		svc, err = d.factory(ctx, cfg, cmd.NeedsAuth())
		if err != nil {
			if service.IsAuthError(err) {
				fmt.Fprintln(errOut, commands.AuthNotice)
				return exitcode.AuthError
			}
			fmt.Fprintf(errOut, "error: backend error: %s\n", err)
			return exitcode.BackendError
		}
	}

	return cmd.Run(ctx, cfg, svc, args, out, errOut)
}
