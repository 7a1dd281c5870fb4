package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"

	"clicknote/internal/config"
	"clicknote/internal/exitcode"
	"clicknote/internal/server"
	"clicknote/internal/service"
)

func init() {
	Register(&ServeCmd{})
}

// ServeCmd runs the local HTTP API used by editor integrations.
type ServeCmd struct {
	addr string
}

func (c *ServeCmd) Name() string      { return "serve" }
func (c *ServeCmd) Aliases() []string { return nil }
func (c *ServeCmd) Synopsis() string  { return "Serve the local HTTP API" }
func (c *ServeCmd) Usage() string     { return "clicknote serve [common flags] [--addr <host:port>]" }
func (c *ServeCmd) NeedsAuth() bool   { return true }

func (c *ServeCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.addr, "addr", "", "listen address (default: listen_addr from config.yaml)")
}

func (c *ServeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	addr := c.addr
	if addr == "" {
		addr = cfg.ListenAddr
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := server.New(server.Deps{
		Tasks:          svc,
		Creator:        svc,
		Syncer:         newSynchronizer(cfg, svc, openVault(cfg)),
		Lists:          prefsStore(cfg),
		LinkDelay:      cfg.LinkDelay,
		LegacyPriority: cfg.LegacyPriority,
		Logger:         slog.Default().With("component", "server"),
	})

	if !cfg.Quiet {
		fmt.Fprintf(out, "serving on http://%s\n", addr)
	}
	if err := srv.Run(ctx, addr); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
