package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// IP lookup backends
const (
	IPBackendIPInfo = "ipinfo"
	IPBackendGeoIP  = "geoip"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Providers ProvidersConfig
	HTTP      HTTPConfig
	App       AppConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port    int
	GinMode string // debug, release, test
	// TrustedProxies lists the proxy addresses or CIDRs whose forwarding
	// headers are believed when working out the caller's IP. Empty trusts none.
	TrustedProxies []string `mapstructure:"trustedProxies"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// ProvidersConfig holds the upstream location provider settings
type ProvidersConfig struct {
	IPProviderURL             string `mapstructure:"ipProviderUrl"`
	IPProviderToken           string `mapstructure:"ipProviderToken"`
	ReverseGeocodeProviderURL string `mapstructure:"reverseGeocodeProviderUrl"`
	IPBackend                 string `mapstructure:"ipBackend"`     // ipinfo, geoip
	GeoIPDatabase             string `mapstructure:"geoipDatabase"` // path to a GeoLite2/GeoIP2 City mmdb
}

// HTTPConfig tunes outbound requests
type HTTPConfig struct {
	UserAgent string        `mapstructure:"userAgent"`
	Timeout   time.Duration // zero means no client-side timeout
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	RevealDelay time.Duration `mapstructure:"revealDelay"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.geolocator")

	// Set defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("server.trustedProxies", []string{})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("providers.ipProviderUrl", "https://ipinfo.io")
	v.SetDefault("providers.ipProviderToken", "")
	v.SetDefault("providers.reverseGeocodeProviderUrl", "https://nominatim.openstreetmap.org")
	v.SetDefault("providers.ipBackend", IPBackendIPInfo)
	v.SetDefault("providers.geoipDatabase", "")
	v.SetDefault("http.userAgent", "geolocator/1.0")
	v.SetDefault("http.timeout", time.Duration(0))
	v.SetDefault("app.revealDelay", 50*time.Millisecond)

	// Read from environment variables, e.g. GEOLOCATOR_PROVIDERS_IPPROVIDERTOKEN
	v.SetEnvPrefix("GEOLOCATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks settings that would otherwise fail at first use
func (c *Config) Validate() error {
	switch strings.ToLower(c.Providers.IPBackend) {
	case IPBackendIPInfo:
	case IPBackendGeoIP:
		if c.Providers.GeoIPDatabase == "" {
			return errors.New("providers.geoipDatabase is required for the geoip backend")
		}
	default:
		return fmt.Errorf("unknown providers.ipBackend %q", c.Providers.IPBackend)
	}
	for _, proxy := range c.Server.TrustedProxies {
		if net.ParseIP(proxy) != nil {
			continue
		}
		if _, _, err := net.ParseCIDR(proxy); err != nil {
			return fmt.Errorf("server.trustedProxies: %q is neither an IP nor a CIDR", proxy)
		}
	}
	if c.HTTP.Timeout < 0 {
		return fmt.Errorf("http.timeout must not be negative, got %s", c.HTTP.Timeout)
	}
	if c.App.RevealDelay < 0 {
		return fmt.Errorf("app.revealDelay must not be negative, got %s", c.App.RevealDelay)
	}
	return nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	// Parse log level
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// Create handler options
	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
