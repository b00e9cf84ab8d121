package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// DefaultUserAgent is the browser-like UA sent with every page fetch.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

var validate = validator.New()

// FetchConfig contains configuration for retrieving pages
type FetchConfig struct {
	UserAgent          string        `mapstructure:"user_agent" validate:"required"`
	Timeout            time.Duration `mapstructure:"timeout" validate:"gt=0"`
	SizeLimitBytes     int           `mapstructure:"size_limit_bytes" validate:"gt=0"`
	MaxRedirects       int           `mapstructure:"max_redirects" validate:"gte=0"`
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify"`
}

// ExtractConfig contains configuration for the extraction pipeline
type ExtractConfig struct {
	ContentThreshold int  `mapstructure:"content_threshold" validate:"gte=0"`
	ScrubMarkup      bool `mapstructure:"scrub_markup"`
}

// ServerConfig contains configuration for the HTTP transports
type ServerConfig struct {
	Port            string        `mapstructure:"port" validate:"required,numeric"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	APIKey          string        `mapstructure:"api_key"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic"`
	JSON  bool   `mapstructure:"json"`
}

// Config is the full service configuration.
type Config struct {
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Extract ExtractConfig `mapstructure:"extract"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
}

// DefaultFetchConfig returns the default fetch configuration
func DefaultFetchConfig() FetchConfig {
	return FetchConfig{
		UserAgent:      DefaultUserAgent,
		Timeout:        10 * time.Second,
		SizeLimitBytes: 6_000_000,
		MaxRedirects:   5,
	}
}

// DefaultExtractConfig returns the default extraction configuration
func DefaultExtractConfig() ExtractConfig {
	return ExtractConfig{
		ContentThreshold: 100,
		ScrubMarkup:      true,
	}
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Fetch:   DefaultFetchConfig(),
		Extract: DefaultExtractConfig(),
		Server: ServerConfig{
			Port:            "3000",
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{Level: "info"},
	}
}

func applyDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("fetch.user_agent", d.Fetch.UserAgent)
	v.SetDefault("fetch.timeout", d.Fetch.Timeout)
	v.SetDefault("fetch.size_limit_bytes", d.Fetch.SizeLimitBytes)
	v.SetDefault("fetch.max_redirects", d.Fetch.MaxRedirects)
	v.SetDefault("fetch.insecure_skip_verify", d.Fetch.InsecureSkipVerify)
	v.SetDefault("extract.content_threshold", d.Extract.ContentThreshold)
	v.SetDefault("extract.scrub_markup", d.Extract.ScrubMarkup)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.api_key", d.Server.APIKey)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.json", d.Log.JSON)
}

// Load resolves configuration with precedence: defaults < file < env.
// Environment variables use the EXTRACT_ prefix with dots replaced by
// underscores (EXTRACT_FETCH_TIMEOUT=5s). PORT overrides server.port.
// A missing ./config.yaml is fine; a file set with SetConfigFile must exist.
func Load(v *viper.Viper) (Config, error) {
	explicit := v.ConfigFileUsed() != ""
	if !explicit {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("extract")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		v.Set("server.port", port)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would make the pipeline unusable.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if strings.TrimSpace(c.Fetch.UserAgent) == "" {
		return errors.New("invalid config: fetch.user_agent is blank")
	}
	return nil
}
