package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Configuration keys. Each key is read from the upper-cased environment
// variable of the same name (PORT, METRICS_PATH, ...) and from the flag
// with dashes instead of underscores.
const (
	KeyPort            = "port"
	KeyMetricsPath     = "metrics_path"
	KeyCollectInterval = "collect_interval"
	KeyLogLevel        = "log_level"
	KeyStorCLIBinary   = "storcli_binary"
	KeyCommandTimeout  = "command_timeout"
	KeyResponseCache   = "response_cache"
	KeySingleton       = "singleton"
)

const (
	defaultPort            = "9100"
	defaultMetricsPath     = "/metrics"
	defaultCollectInterval = 30 * time.Second
	defaultLogLevel        = "info"
	defaultCommandTimeout  = 60 * time.Second
)

// Config holds the application configuration
type Config struct {
	Port            string
	MetricsPath     string
	CollectInterval time.Duration
	LogLevel        string

	// StorCLIBinary is the storcli binary name or path; empty auto-detects.
	StorCLIBinary  string
	CommandTimeout time.Duration
	ResponseCache  bool
	Singleton      bool
}

// NewViper returns a viper instance with defaults and environment lookup
// configured.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyPort, defaultPort)
	v.SetDefault(KeyMetricsPath, defaultMetricsPath)
	v.SetDefault(KeyCollectInterval, defaultCollectInterval.String())
	v.SetDefault(KeyLogLevel, defaultLogLevel)
	v.SetDefault(KeyStorCLIBinary, "")
	v.SetDefault(KeyCommandTimeout, defaultCommandTimeout.String())
	v.SetDefault(KeyResponseCache, true)
	v.SetDefault(KeySingleton, true)

	v.AutomaticEnv()
	return v
}

// AddFlags registers the configuration flags on fs and binds them to v, so
// flags take priority over the environment.
func AddFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	fs.String(flagName(KeyPort), defaultPort, "HTTP listen port")
	fs.String(flagName(KeyMetricsPath), defaultMetricsPath, "path under which metrics are exposed")
	fs.String(flagName(KeyCollectInterval), defaultCollectInterval.String(), "collection interval (e.g. 30s, or seconds)")
	fs.String(flagName(KeyLogLevel), defaultLogLevel, "log level (debug, info, warn, error)")
	fs.String(flagName(KeyStorCLIBinary), "", "storcli binary name or path (default: storcli64, then storcli)")
	fs.String(flagName(KeyCommandTimeout), defaultCommandTimeout.String(), "timeout for a single storcli command, 0 disables")
	fs.Bool(flagName(KeyResponseCache), true, "cache storcli responses within a collection cycle")
	fs.Bool(flagName(KeySingleton), true, "share one storcli instance across the process")

	for _, key := range []string{
		KeyPort, KeyMetricsPath, KeyCollectInterval, KeyLogLevel,
		KeyStorCLIBinary, KeyCommandTimeout, KeyResponseCache, KeySingleton,
	} {
		if err := v.BindPFlag(key, fs.Lookup(flagName(key))); err != nil {
			return fmt.Errorf("binding flag %s: %w", flagName(key), err)
		}
	}
	return nil
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// Load reads the configuration from v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:            v.GetString(KeyPort),
		MetricsPath:     v.GetString(KeyMetricsPath),
		CollectInterval: parseDuration(v.GetString(KeyCollectInterval), defaultCollectInterval),
		LogLevel:        v.GetString(KeyLogLevel),
		StorCLIBinary:   v.GetString(KeyStorCLIBinary),
		CommandTimeout:  parseDuration(v.GetString(KeyCommandTimeout), defaultCommandTimeout),
		ResponseCache:   v.GetBool(KeyResponseCache),
		Singleton:       v.GetBool(KeySingleton),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// New creates a new configuration from defaults and the environment
func New() (*Config, error) {
	return Load(NewViper())
}

// Validate rejects settings the exporter cannot run with.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port must not be empty")
	}
	if !strings.HasPrefix(c.MetricsPath, "/") {
		return fmt.Errorf("metrics path %q must start with /", c.MetricsPath)
	}
	switch c.MetricsPath {
	case "/", "/health", "/health/json":
		return fmt.Errorf("metrics path %q collides with a built-in route", c.MetricsPath)
	}
	if c.CollectInterval <= 0 {
		return fmt.Errorf("collect interval must be positive, got %s", c.CollectInterval)
	}
	if c.CommandTimeout < 0 {
		return fmt.Errorf("command timeout must not be negative, got %s", c.CommandTimeout)
	}
	return nil
}

// parseDuration accepts Go durations ("45s") or bare seconds ("60").
// Anything else yields defaultValue.
func parseDuration(value string, defaultValue time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultValue
	}
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	// Try parsing as seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}
