package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/docket-cli/internal/adapters/driven/llm/gemini"
	"github.com/custodia-labs/docket-cli/internal/adapters/driven/storage/csvfile"
	"github.com/custodia-labs/docket-cli/internal/connectors/courtlistener"
	"github.com/custodia-labs/docket-cli/internal/core/services"
)

const (
	// DefaultDirName is the config directory under the user's home.
	DefaultDirName = ".docket"

	// ConfigFilename is the config file name within the config directory.
	ConfigFilename = "config.toml"

	// DefaultWindowDays is the lookback window when none is configured.
	DefaultWindowDays = 30
)

// Config is the persisted CLI configuration. Credentials never live here;
// they are read from the environment at run time.
type Config struct {
	CourtListener CourtListenerConfig `toml:"courtlistener"`
	Gemini        GeminiConfig        `toml:"gemini"`
	Run           RunConfig           `toml:"run"`
}

// CourtListenerConfig configures the opinion source.
type CourtListenerConfig struct {
	BaseURL        string `toml:"base_url"`
	Court          string `toml:"court"`
	PageSize       int    `toml:"page_size"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// GeminiConfig configures the classifier.
type GeminiConfig struct {
	Model       string `toml:"model"`
	MaxAttempts int    `toml:"max_attempts"`
}

// RunConfig configures the ingestion run itself.
type RunConfig struct {
	WindowDays   int    `toml:"window_days"`
	Dataset      string `toml:"dataset"`
	MaxTextChars int    `toml:"max_text_chars"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		CourtListener: CourtListenerConfig{
			BaseURL:        courtlistener.DefaultBaseURL,
			Court:          courtlistener.DefaultCourt,
			PageSize:       courtlistener.DefaultPageSize,
			TimeoutSeconds: int(courtlistener.DefaultTimeout / time.Second),
		},
		Gemini: GeminiConfig{
			Model:       gemini.DefaultModel,
			MaxAttempts: gemini.MaxAttempts,
		},
		Run: RunConfig{
			WindowDays:   DefaultWindowDays,
			Dataset:      csvfile.DefaultFilename,
			MaxTextChars: services.DefaultMaxTextChars,
		},
	}
}

// DefaultPath returns the default config file path, ~/.docket/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, DefaultDirName, ConfigFilename), nil
}

// Load reads the config at path. A missing file yields the defaults; a
// present file is decoded over the defaults, so omitted keys keep their
// default values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path, creating the directory as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	// Write with restricted permissions.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ClientConfig maps the CourtListener section onto the connector's
// configuration.
func (c *Config) ClientConfig() courtlistener.Config {
	return courtlistener.Config{
		BaseURL:  c.CourtListener.BaseURL,
		Court:    c.CourtListener.Court,
		PageSize: c.CourtListener.PageSize,
		Timeout:  time.Duration(c.CourtListener.TimeoutSeconds) * time.Second,
	}
}

// ClassifierConfig maps the Gemini section onto the classifier's
// configuration.
func (c *Config) ClassifierConfig() gemini.Config {
	return gemini.Config{
		Model:       c.Gemini.Model,
		MaxAttempts: c.Gemini.MaxAttempts,
	}
}
