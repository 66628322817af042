// Package config loads server configuration from defaults, an optional
// config file, STAYS_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/stay-browser/server/internal/accommodation"
	"github.com/stay-browser/server/internal/catalog"
)

// EnvPrefix prefixes every environment variable, e.g. STAYS_CATALOG_URL.
const EnvPrefix = "STAYS"

// Config holds all configuration values.
type Config struct {
	Addr     string `mapstructure:"addr"  validate:"required"`
	Env      string `mapstructure:"env"   validate:"required,oneof=development production test"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	Server  ServerConfig  `mapstructure:"server"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Dates   DatesConfig   `mapstructure:"dates"`
	Session SessionConfig `mapstructure:"session"`
	CORS    CORSConfig    `mapstructure:"cors"`

	// HealthCheck runs a probe against Addr and exits.
	HealthCheck bool `mapstructure:"-"`
}

type ServerConfig struct {
	ReadTimeout     time.Duration `mapstructure:"read_timeout"     validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"    validate:"gt=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"     validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

type CatalogConfig struct {
	URL     string        `mapstructure:"url"     validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// DatesConfig bounds the date controls of the listing screen.
type DatesConfig struct {
	Min string `mapstructure:"min" validate:"required,datetime=2006-01-02"`
	Max string `mapstructure:"max" validate:"required,datetime=2006-01-02"`
}

// Bounds returns the parsed date range. Call after Load has validated it.
func (d DatesConfig) Bounds() (first, last accommodation.Date) {
	return accommodation.MustParseDate(d.Min), accommodation.MustParseDate(d.Max)
}

type SessionConfig struct {
	Lifetime   time.Duration `mapstructure:"lifetime"    validate:"gt=0"`
	CookieName string        `mapstructure:"cookie_name" validate:"required"`
	Secure     bool          `mapstructure:"secure"`
}

type CORSConfig struct {
	Origins []string `mapstructure:"origins"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8099")
	v.SetDefault("env", "development")
	v.SetDefault("log_level", "info")

	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 45*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("catalog.url", catalog.DefaultURL)
	v.SetDefault("catalog.timeout", 30*time.Second)

	v.SetDefault("dates.min", "2024-01-01")
	v.SetDefault("dates.max", "2024-12-31")

	v.SetDefault("session.lifetime", 12*time.Hour)
	v.SetDefault("session.cookie_name", "stay_session")
	v.SetDefault("session.secure", false)

	v.SetDefault("cors.origins", []string{})
}

// Load parses args and merges every configuration source. Flags win over
// environment variables, which win over the config file and defaults.
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("stay-browser", pflag.ContinueOnError)
	configFile := fs.String("config", "", "Path to a YAML config file")
	fs.String("addr", ":8099", "HTTP server address")
	fs.String("catalog-url", catalog.DefaultURL, "Accommodation listing endpoint")
	fs.String("log-level", "info", "Log level (debug, info, warn, error)")
	healthCheck := fs.Bool("health-check", false, "Run health check and exit")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, flag := range map[string]string{
		"addr":        "addr",
		"catalog.url": "catalog-url",
		"log_level":   "log-level",
	} {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("binding flag %s: %w", flag, err)
		}
	}

	if *configFile != "" {
		v.SetConfigFile(*configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if *configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.HealthCheck = *healthCheck

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and that the date bounds are ordered.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	first, last := c.Dates.Bounds()
	if !first.Before(last) {
		return fmt.Errorf("invalid config: dates.min %s must be before dates.max %s", c.Dates.Min, c.Dates.Max)
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
