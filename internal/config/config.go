// Package config loads service configuration from defaults, an optional
// tidewise.yaml file and TIDEWISE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable, e.g.
// TIDEWISE_UPSTREAM_TIMEOUT.
const EnvPrefix = "TIDEWISE"

// Config is the resolved configuration shared by every binary.
type Config struct {
	Port        string `mapstructure:"port"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log-level"`
	TimeZone    string `mapstructure:"time-zone"`

	OTel      OTelConfig      `mapstructure:"otel"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Upstream  UpstreamConfig  `mapstructure:"upstream"`
	RateLimit RateLimitConfig `mapstructure:"rate-limit"`
	Worker    WorkerConfig    `mapstructure:"worker"`
	PubSub    PubSubConfig    `mapstructure:"pubsub"`
}

// OTelConfig configures OpenTelemetry export.
type OTelConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	Endpoint    string  `mapstructure:"endpoint"`
	SampleRatio float64 `mapstructure:"sample-ratio"`
}

// CacheConfig configures the forecast cache.
type CacheConfig struct {
	TTL      time.Duration `mapstructure:"ttl"`
	StaleTTL time.Duration `mapstructure:"stale-ttl"`
}

// UpstreamConfig configures the upstream data providers.
type UpstreamConfig struct {
	Timeout        time.Duration `mapstructure:"timeout"`
	MaxRetries     uint64        `mapstructure:"max-retries"`
	OpenMeteoURL   string        `mapstructure:"open-meteo-url"`
	MarineURL      string        `mapstructure:"marine-url"`
	CoopsURL       string        `mapstructure:"coops-url"`
	NWSURL         string        `mapstructure:"nws-url"`
	NWSUserAgent   string        `mapstructure:"nws-user-agent"`
	DefaultStation string        `mapstructure:"default-station"`
}

// RateLimitConfig configures per-IP request limits on the API.
type RateLimitConfig struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// WorkerConfig configures the cache-warming worker.
type WorkerConfig struct {
	Concurrency int           `mapstructure:"concurrency"`
	Interval    time.Duration `mapstructure:"interval"`
	Timeout     time.Duration `mapstructure:"timeout"`
	HealthPort  string        `mapstructure:"health-port"`
}

// PubSubConfig configures the optional Pub/Sub trigger.
type PubSubConfig struct {
	ProjectID    string `mapstructure:"project-id"`
	Subscription string `mapstructure:"subscription"`
}

// Enabled reports whether a subscription is configured.
func (c PubSubConfig) Enabled() bool {
	return c.ProjectID != "" && c.Subscription != ""
}

// New returns a viper instance with defaults, env binding and config file
// search paths set. Callers may bind flags before passing it to Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetConfigName("tidewise")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/tidewise")
	v.AddConfigPath("$HOME")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	SetDefaults(v)
	return v
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("environment", "development")
	v.SetDefault("log-level", "info")
	v.SetDefault("time-zone", "America/New_York")

	v.SetDefault("otel.enabled", false)
	v.SetDefault("otel.endpoint", "localhost:4317")
	v.SetDefault("otel.sample-ratio", 1.0)

	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.stale-ttl", time.Hour)

	v.SetDefault("upstream.timeout", 10*time.Second)
	v.SetDefault("upstream.max-retries", 0)
	v.SetDefault("upstream.open-meteo-url", "https://api.open-meteo.com/v1/forecast")
	v.SetDefault("upstream.marine-url", "https://marine-api.open-meteo.com/v1/marine")
	v.SetDefault("upstream.coops-url", "https://api.tidesandcurrents.noaa.gov/api/prod/datagetter")
	v.SetDefault("upstream.nws-url", "https://api.weather.gov")
	v.SetDefault("upstream.nws-user-agent", "TideWise/1.0 (github.com/tidewise/tidewise)")
	v.SetDefault("upstream.default-station", "8723214")

	v.SetDefault("rate-limit.requests", 100)
	v.SetDefault("rate-limit.window", time.Minute)

	v.SetDefault("worker.concurrency", 4)
	v.SetDefault("worker.interval", 5*time.Minute)
	v.SetDefault("worker.timeout", 2*time.Minute)
	v.SetDefault("worker.health-port", "8081")

	v.SetDefault("pubsub.project-id", "")
	v.SetDefault("pubsub.subscription", "")
}

// Load reads configuration with the default search paths.
func Load() (*Config, error) {
	return LoadFrom(New())
}

// LoadFrom reads the optional config file into v, unmarshals and validates.
// A missing config file is not an error.
func LoadFrom(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the resolved values are usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("port is required"))
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		errs = append(errs, fmt.Errorf("time-zone: %w", err))
	}
	if c.Cache.TTL <= 0 {
		errs = append(errs, errors.New("cache.ttl must be positive"))
	}
	if c.Cache.StaleTTL < c.Cache.TTL {
		errs = append(errs, errors.New("cache.stale-ttl must not be shorter than cache.ttl"))
	}
	if c.Upstream.Timeout <= 0 {
		errs = append(errs, errors.New("upstream.timeout must be positive"))
	}
	if c.OTel.SampleRatio < 0 || c.OTel.SampleRatio > 1 {
		errs = append(errs, errors.New("otel.sample-ratio must be within [0, 1]"))
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("rate-limit.requests and rate-limit.window must be positive"))
	}
	if c.Worker.Concurrency < 1 {
		errs = append(errs, errors.New("worker.concurrency must be at least 1"))
	}
	if c.Worker.Interval <= 0 {
		errs = append(errs, errors.New("worker.interval must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Location returns the display time zone. Validate has already checked it
// resolves.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
