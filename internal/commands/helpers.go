package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"clicknote/internal/config"
	"clicknote/internal/exitcode"
	"clicknote/internal/notesync"
	"clicknote/internal/service"
	"clicknote/internal/vault"
)

// AuthNotice is printed for any rejected or missing credential.
const AuthNotice = "error: authorization failed, please re-login (run: clicknote login)"

// ReportError prints err and returns the matching exit code.
// Unexpected response shapes are logged in full and reported briefly.
func ReportError(errOut io.Writer, err error) int {
	var (
		netErr    *service.NetworkError
		remoteErr *service.RemoteError
		appErr    *service.ApplicationError
	)
	switch {
	case service.IsAuthError(err):
		slog.Debug("auth failure", "err", err)
		fmt.Fprintln(errOut, AuthNotice)
		return exitcode.AuthError
	case errors.Is(err, service.ErrNotFound):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.As(err, &netErr):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	case errors.As(err, &remoteErr):
		slog.Warn("unexpected response", "op", remoteErr.Op, "field", remoteErr.Field, "status", remoteErr.Status, "err", remoteErr.Err)
		fmt.Fprintf(errOut, "error: unexpected response from server (%s)\n", remoteErr.Op)
		return exitcode.BackendError
	case errors.As(err, &appErr):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	default:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
}

func openVault(cfg *config.Config) *vault.Vault {
	return vault.NewDir(cfg.VaultDir)
}

func prefsStore(cfg *config.Config) *config.PrefsStore {
	return config.NewPrefsStore(cfg.PrefsPath())
}

func newSynchronizer(cfg *config.Config, svc service.Service, v *vault.Vault) *notesync.Synchronizer {
	s := notesync.New(svc, v, cfg.NotesRoot)
	s.LegacyPriority = cfg.LegacyPriority
	return s
}

// resolveList returns the list named by args[0], or the default list.
func resolveList(cfg *config.Config, args []string) (config.ListRef, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return config.ListRef{ID: strings.TrimSpace(args[0])}, nil
	}
	ref, err := prefsStore(cfg).DefaultList()
	if err != nil {
		return config.ListRef{}, err
	}
	if ref == nil {
		return config.ListRef{}, fmt.Errorf("%w (run: clicknote use <list-id>)", service.ErrNoDefaultList)
	}
	return *ref, nil
}

// requireArgs prints a usage error when fewer than n positional args were given.
func requireArgs(errOut io.Writer, c Command, args []string, n int) bool {
	if len(args) >= n {
		return true
	}
	fmt.Fprintf(errOut, "error: missing argument\nusage: %s\n", c.Usage())
	return false
}
