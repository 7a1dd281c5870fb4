package testutil

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"clicknote/internal/vault"
)

// NewMemVault returns a vault on an in-memory filesystem seeded with files
// (vault path -> content).
func NewMemVault(t *testing.T, files map[string]string) *vault.Vault {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for p, content := range files {
		require.NoError(t, afero.WriteFile(fsys, "/"+p, []byte(content), 0o644))
	}
	return vault.New(fsys)
}
