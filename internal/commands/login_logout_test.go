package commands_test

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clicknote/internal/commands"
	"clicknote/internal/config"
	"clicknote/internal/credentials"
	"clicknote/internal/exitcode"
	"clicknote/internal/testutil"
)

func loginConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := newConfig(t)
	cfg.ClientID = "cid"
	cfg.ClientSecret = "secret"
	cfg.RedirectURL = "http://localhost/callback"
	return cfg
}

// TestLoginCommand_NoClient verifies login fails without OAuth app settings.
func TestLoginCommand_NoClient(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.LoginCmd{}, newConfig(t), testutil.NewFakeService())

	assert.Equal(t, exitcode.AuthError, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "client_id and client_secret must be set")
}

// TestLoginCommand_PrintsAuthorizeURL verifies login without a code prints the consent URL.
func TestLoginCommand_PrintsAuthorizeURL(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.LoginCmd{}, loginConfig(t), testutil.NewFakeService())

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, commands.AuthorizeURL+"?")
	assert.Contains(t, stderr, "client_id=cid")
	assert.Contains(t, stderr, "redirect_uri=http%3A%2F%2Flocalhost%2Fcallback")
	assert.Contains(t, stderr, "clicknote login --code <code>")
	assert.NotContains(t, stderr, "secret")
}

// TestLoginCommand_ExchangesCode verifies the code is exchanged and the token stored.
func TestLoginCommand_ExchangesCode(t *testing.T) {
	cfg := loginConfig(t)
	svc := testutil.NewFakeService()
	creds := credentials.NewFileProvider(cfg.TokenPath())
	svc.Creds = creds

	stdout, stderr, code := runCommand(t, &commands.LoginCmd{}, cfg, svc, "--code", "abc")

	require.Equal(t, exitcode.Success, code, stderr)
	assert.Equal(t, "ok\n", stdout)
	token, err := creds.Token()
	require.NoError(t, err)
	assert.Equal(t, "token-abc", token)
	assert.True(t, cfg.HasToken())
}

// TestLoginCommand_ExchangeRejected verifies a rejected code is an auth error.
func TestLoginCommand_ExchangeRejected(t *testing.T) {
	cfg := loginConfig(t)
	svc := testutil.NewFakeService()
	svc.GetTokenErr = errors.New("Code already used")

	stdout, stderr, code := runCommand(t, &commands.LoginCmd{}, cfg, svc, "--code", "abc")

	assert.Equal(t, exitcode.AuthError, code)
	assert.Empty(t, stdout)
	assert.Equal(t, commands.AuthNotice+"\n", stderr)
	assert.False(t, cfg.HasToken())
}

// TestLoginCommand_AlreadyLoggedIn verifies a working token short-circuits login.
func TestLoginCommand_AlreadyLoggedIn(t *testing.T) {
	cfg := loginConfig(t)
	require.NoError(t, credentials.NewFileProvider(cfg.TokenPath()).SetToken("tok"))

	stdout, stderr, code := runCommand(t, &commands.LoginCmd{}, cfg, testutil.NewFakeService())

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "already logged in as tester\n", stdout)
	assert.Empty(t, stderr)
}

// TestLogoutCommand_RemovesTokenAndPrefs verifies logout clears both files.
func TestLogoutCommand_RemovesTokenAndPrefs(t *testing.T) {
	cfg := newConfig(t)
	require.NoError(t, credentials.NewFileProvider(cfg.TokenPath()).SetToken("tok"))
	setDefault(t, cfg, config.ListRef{ID: "l1"})

	stdout, stderr, code := runCommand(t, &commands.LogoutCmd{}, cfg, nil)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "ok\n", stdout)
	assert.Empty(t, stderr)
	assert.False(t, cfg.HasToken())
	_, err := os.Stat(cfg.PrefsPath())
	assert.True(t, os.IsNotExist(err))
}

// TestLogoutCommand_NotLoggedIn verifies logout succeeds without a token.
func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.LogoutCmd{}, newConfig(t), nil)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "not logged in\n", stdout)
	assert.Empty(t, stderr)
}

// TestLogoutCommand_NotLoggedInQuiet verifies quiet mode suppresses output.
func TestLogoutCommand_NotLoggedInQuiet(t *testing.T) {
	cfg := newConfig(t)
	cfg.Quiet = true

	stdout, stderr, code := runCommand(t, &commands.LogoutCmd{}, cfg, nil)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
}
