// Package config resolves the suite configuration from defaults, an optional
// .env file and CONTACT_LIST_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes every environment variable, e.g. CONTACT_LIST_BASE_URL.
const EnvPrefix = "CONTACT_LIST"

// DefaultBaseURL is the public deployment of the application under test.
const DefaultBaseURL = "https://thinking-tester-contact-list.herokuapp.com"

type Config struct {
	BaseURL  string         `mapstructure:"base_url"`
	Browser  BrowserConfig  `mapstructure:"browser"`
	Timeouts TimeoutConfig  `mapstructure:"timeouts"`
	Results  ResultsConfig  `mapstructure:"results"`
	Fixtures FixturesConfig `mapstructure:"fixtures"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

type BrowserConfig struct {
	Headless bool          `mapstructure:"headless"`
	SlowMo   time.Duration `mapstructure:"slow_mo"`
	// Install downloads the playwright driver and Chromium on startup.
	Install bool `mapstructure:"install"`
}

type TimeoutConfig struct {
	Action     time.Duration `mapstructure:"action"`
	Navigation time.Duration `mapstructure:"navigation"`
	Request    time.Duration `mapstructure:"request"`
}

// ResultsConfig locates the report artifacts and the run ledger.
type ResultsConfig struct {
	Dir    string `mapstructure:"dir"`
	Ledger string `mapstructure:"ledger"`
}

type FixturesConfig struct {
	Dir string `mapstructure:"dir"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	LogFile    string `mapstructure:"log_file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// SetDefaults registers the default of every key. Keys without a default are
// not resolved from the environment.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("base_url", DefaultBaseURL)

	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.slow_mo", "0s")
	v.SetDefault("browser.install", false)

	v.SetDefault("timeouts.action", "5s")
	v.SetDefault("timeouts.navigation", "10s")
	v.SetDefault("timeouts.request", "30s")

	v.SetDefault("results.dir", "test-results")
	v.SetDefault("results.ledger", "test-results/ledger.db")

	v.SetDefault("fixtures.dir", "testdata")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)
}

// Load reads envFile into the process environment, without overriding
// variables that are already set, and resolves the configuration. A missing
// envFile is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}

	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return NewConfigFromViper(v)
}

func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute http(s) URL, got %q", c.BaseURL)
	}
	if c.Browser.SlowMo < 0 {
		return fmt.Errorf("browser.slow_mo must not be negative")
	}
	for name, d := range map[string]time.Duration{
		"timeouts.action":     c.Timeouts.Action,
		"timeouts.navigation": c.Timeouts.Navigation,
		"timeouts.request":    c.Timeouts.Request,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	if c.Results.Dir == "" {
		return fmt.Errorf("results.dir is a required configuration field")
	}
	if _, err := zapcore.ParseLevel(c.Logger.Level); err != nil {
		return fmt.Errorf("logger.level: %w", err)
	}
	if c.Logger.Format != "console" && c.Logger.Format != "json" {
		return fmt.Errorf("logger.format must be console or json, got %q", c.Logger.Format)
	}
	return nil
}
