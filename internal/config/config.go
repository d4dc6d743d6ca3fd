package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Adda-Baaj/newstimes/internal/logger"
	"github.com/Adda-Baaj/newstimes/pkg/providers"
)

const (
	envPrefix = "NEWSTIMES"

	DefaultBaseURL = "http://content.guardianapis.com/search?&="
	DefaultSection = "world"
)

// Config is the full application configuration.
type Config struct {
	API          APIConfig          `mapstructure:"api"`
	Settings     SettingsConfig     `mapstructure:"settings"`
	Connectivity ConnectivityConfig `mapstructure:"connectivity"`
	Log          LogConfig          `mapstructure:"log"`
	Publishers   PublishersConfig   `mapstructure:"publishers"`
	Scrape       ScrapeConfig       `mapstructure:"scrape"`
	Decode       DecodeConfig       `mapstructure:"decode"`
}

// APIConfig describes the remote search endpoint.
type APIConfig struct {
	Provider  string            `mapstructure:"provider"`
	BaseURL   string            `mapstructure:"base_url"`
	Key       string            `mapstructure:"key"`
	UserAgent string            `mapstructure:"user_agent"`
	Headers   map[string]string `mapstructure:"headers"`
}

// SettingsConfig locates the preference store.
type SettingsConfig struct {
	Path           string `mapstructure:"path"`
	DefaultSection string `mapstructure:"default_section"`
}

// ConnectivityConfig tunes the pre-flight network check.
type ConnectivityConfig struct {
	ProbeAddress string        `mapstructure:"probe_address"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type PublishersConfig struct {
	File string `mapstructure:"file"`
}

type ScrapeConfig struct {
	RequestDelay time.Duration `mapstructure:"request_delay"`
}

type DecodeConfig struct {
	SkipMalformed bool `mapstructure:"skip_malformed"`
}

// Load reads configuration from defaults, an optional config file, .env and the environment.
func Load(cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("newstimes")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/newstimes")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.provider", providers.ProviderTypeGuardian)
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.key", "test")
	v.SetDefault("api.user_agent", "newstimes/1.0")

	v.SetDefault("settings.path", defaultSettingsPath())
	v.SetDefault("settings.default_section", DefaultSection)

	v.SetDefault("connectivity.probe_address", "")
	v.SetDefault("connectivity.timeout", 3*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("publishers.file", "")
	v.SetDefault("scrape.request_delay", time.Duration(0))
	v.SetDefault("decode.skip_malformed", false)
}

func defaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		dir = "."
	}
	return filepath.Join(dir, "newstimes", "settings.db")
}

func (c *Config) normalize() {
	c.API.Provider = strings.ToLower(strings.TrimSpace(c.API.Provider))
	c.API.BaseURL = strings.TrimSpace(c.API.BaseURL)
	c.API.Key = strings.TrimSpace(c.API.Key)
	c.Settings.Path = os.ExpandEnv(strings.TrimSpace(c.Settings.Path))
	c.Publishers.File = strings.TrimSpace(c.Publishers.File)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
}

// Validate checks the startup preconditions.
func (c *Config) Validate() error {
	if c.API.Provider == "" {
		return errors.New("api.provider is required")
	}
	if _, err := c.Provider().RequestBuilder(); err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	if c.API.Key == "" {
		return errors.New("api.key is required")
	}
	if c.Settings.Path == "" {
		return errors.New("settings.path is required")
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("log.format %q must be console or json", c.Log.Format)
	}
	if c.Connectivity.Timeout < 0 {
		return errors.New("connectivity.timeout must not be negative")
	}
	return nil
}

// Provider converts the API section into the provider description used by fetchers.
func (c *Config) Provider() providers.Provider {
	policy := providers.DecodeStrict
	if c.Decode.SkipMalformed {
		policy = providers.DecodeSkipMalformed
	}
	return providers.Provider{
		ID:             c.API.Provider,
		Type:           c.API.Provider,
		SourceURL:      c.API.BaseURL,
		APIKey:         c.API.Key,
		UserAgent:      c.API.UserAgent,
		Headers:        c.API.Headers,
		RequestDelayMS: int(c.Scrape.RequestDelay / time.Millisecond),
		Decode:         policy,
	}
}
