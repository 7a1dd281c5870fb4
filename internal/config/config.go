// Package config handles the configuration directory, config.yaml and stored files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	// AppName is the application directory name.
	AppName = "clicknote"

	// ConfigFile is the config file name inside the config directory.
	ConfigFile = "config.yaml"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// PrefsFile holds the default list selection.
	PrefsFile = "prefs.yaml"

	// EnvConfigDir overrides the config directory.
	EnvConfigDir = "CLICKNOTE_CONFIG_DIR"

	// EnvPrefix prefixes environment overrides of config keys.
	EnvPrefix = "CLICKNOTE"
)

// Config keys in config.yaml.
const (
	KeyBaseURL        = "base_url"
	KeyClientID       = "client_id"
	KeyClientSecret   = "client_secret"
	KeyRedirectURL    = "redirect_url"
	KeyVaultDir       = "vault_dir"
	KeyNotesRoot      = "notes_root"
	KeyLegacyPriority = "legacy_priority"
	KeyLinkDelay      = "link_delay"
	KeyAPITimeout     = "api_timeout"
	KeyListenAddr     = "listen_addr"
)

// Defaults for config keys.
const (
	DefaultBaseURL    = "https://api.clickup.com/api/v2/"
	DefaultNotesRoot  = "ClickUp"
	DefaultLinkDelay  = 100 * time.Millisecond
	DefaultAPITimeout = 20 * time.Second
	DefaultListenAddr = "127.0.0.1:8765"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# clicknote configuration

# ClickUp OAuth app (required for "clicknote login")
# client_id:
# client_secret:
# redirect_url:

# Directory holding the synchronized notes (default: current directory)
# vault_dir:

# Top-level folder inside the vault that holds list notes
notes_root: ClickUp

# Render every priority label in each row, as older releases did
legacy_priority: false
`

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	BaseURL      string
	ClientID     string
	ClientSecret string
	RedirectURL  string

	// VaultDir is the root of the notes directory.
	VaultDir string

	// NotesRoot is the top-level vault folder searched for list notes.
	NotesRoot string

	// LegacyPriority renders all priority labels in every row.
	LegacyPriority bool

	// LinkDelay is the pause before a task link is spliced into a note.
	LinkDelay time.Duration

	// APITimeout bounds a single HTTP exchange.
	APITimeout time.Duration

	// ListenAddr is the address of the local HTTP API.
	ListenAddr string
}

// New creates a new Config with defaults and the default or specified config directory.
// It does not read config.yaml; see Load.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:        dir,
		BaseURL:    DefaultBaseURL,
		VaultDir:   ".",
		NotesRoot:  DefaultNotesRoot,
		LinkDelay:  DefaultLinkDelay,
		APITimeout: DefaultAPITimeout,
		ListenAddr: DefaultListenAddr,
	}, nil
}

// Load resolves the config directory, writes a default config.yaml on first
// run, and reads it with environment overrides (CLICKNOTE_<KEY>).
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsureDir(); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := cfg.ensureDefaultConfigFile(); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(KeyBaseURL, DefaultBaseURL)
	v.SetDefault(KeyVaultDir, ".")
	v.SetDefault(KeyNotesRoot, DefaultNotesRoot)
	v.SetDefault(KeyLegacyPriority, false)
	v.SetDefault(KeyLinkDelay, DefaultLinkDelay.String())
	v.SetDefault(KeyAPITimeout, DefaultAPITimeout.String())
	v.SetDefault(KeyListenAddr, DefaultListenAddr)
	v.SetConfigFile(cfg.ConfigPath())
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg.BaseURL = v.GetString(KeyBaseURL)
	cfg.ClientID = v.GetString(KeyClientID)
	cfg.ClientSecret = v.GetString(KeyClientSecret)
	cfg.RedirectURL = v.GetString(KeyRedirectURL)
	cfg.VaultDir = expandHome(v.GetString(KeyVaultDir))
	cfg.NotesRoot = strings.Trim(v.GetString(KeyNotesRoot), "/")
	cfg.LegacyPriority = cast.ToBool(v.Get(KeyLegacyPriority))
	cfg.ListenAddr = v.GetString(KeyListenAddr)

	if cfg.LinkDelay, err = cast.ToDurationE(v.Get(KeyLinkDelay)); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyLinkDelay, err)
	}
	if cfg.APITimeout, err = cast.ToDurationE(v.Get(KeyAPITimeout)); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyAPITimeout, err)
	}
	if cfg.NotesRoot == "" {
		cfg.NotesRoot = DefaultNotesRoot
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses CLICKNOTE_CONFIG_DIR, then XDG_CONFIG_HOME, then $HOME/.config.
func DefaultConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to config.yaml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// PrefsPath returns the path to the preferences file.
func (c *Config) PrefsPath() string {
	return filepath.Join(c.Dir, PrefsFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}

func (c *Config) ensureDefaultConfigFile() error {
	_, err := os.Stat(c.ConfigPath())
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), []byte(defaultConfigYAML), 0o600)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~"+string(os.PathSeparator)) {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
