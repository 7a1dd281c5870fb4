// Package main is the entry point for the clicknote CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"clicknote/internal/backend/clickup"
	"clicknote/internal/cli"
	"clicknote/internal/commands"
	"clicknote/internal/config"
	"clicknote/internal/credentials"
	"clicknote/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, newService)
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// newService builds the ClickUp client over the token stored in the config directory.
func newService(ctx context.Context, cfg *config.Config, requireAuth bool) (service.Service, error) {
	creds := credentials.NewFileProvider(cfg.TokenPath())
	if requireAuth {
		token, err := creds.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", service.ErrNotLoggedIn, err)
		}
		if token == "" {
			return nil, service.ErrNotLoggedIn
		}
	}
	return clickup.New(cfg, creds), nil
}
