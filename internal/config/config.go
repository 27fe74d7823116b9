// Package config loads and validates application configuration.
//
// Configuration comes from environment variables with the SHUTTERSPOT_
// prefix (a .env file is loaded automatically when present), is decoded
// into structs via koanf, and validated so the process fails fast on a
// bad or missing value.
package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	// Loads .env into the process environment before anything reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// Config is the root configuration object.
//
// Observability is a pointer because it is optional; defaults are injected
// when it is absent.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary identifies the runtime environment ("local", "staging",
// "production").
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups HTTP server settings. Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details ("host:port").
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig stores token signing settings.
//
// TokenSecret is required with no fallback: a deployment without a signing
// secret must not start. TokenTTLHours defaults to 168 (7 days) when unset.
type AuthConfig struct {
	TokenSecret   string `koanf:"token_secret" validate:"required"`
	TokenTTLHours int    `koanf:"token_ttl_hours"`
	CookieName    string `koanf:"cookie_name"`
}

// IntegrationConfig holds third-party provider credentials.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
}

const (
	// DefaultTokenTTLHours is the token lifetime when auth.token_ttl_hours
	// is not configured: 7 days.
	DefaultTokenTTLHours = 7 * 24

	// DefaultAuthCookieName is the cookie checked when no Authorization
	// header is present.
	DefaultAuthCookieName = "auth_token"
)

// Load reads environment variables into a validated Config.
//
// Env keys use the SHUTTERSPOT_ prefix with "." as the nesting delimiter,
// e.g. SHUTTERSPOT_SERVER.PORT -> server.port -> Config.Server.Port.
func Load() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	err := k.Load(env.Provider("SHUTTERSPOT_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "SHUTTERSPOT_"))
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not load initial env variables.")
	}

	mainConfig := &Config{}

	if err := k.Unmarshal("", mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Could not unmarshal main config.")
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Config validation failed.")
	}

	if mainConfig.Auth.TokenTTLHours <= 0 {
		mainConfig.Auth.TokenTTLHours = DefaultTokenTTLHours
	}
	if mainConfig.Auth.CookieName == "" {
		mainConfig.Auth.CookieName = DefaultAuthCookieName
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment are pinned so telemetry is consistently
	// labeled regardless of what the deployment sets.
	mainConfig.Observability.ServiceName = "shutterspot-api"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid observability config")
	}

	return mainConfig, nil
}
