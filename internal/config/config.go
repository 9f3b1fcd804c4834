// Package config manages the service configuration.
//
// Values are layered, lowest precedence first:
//   - the defaults returned by Default()
//   - an optional YAML file whose path is given by NUTRI_CONFIG
//   - environment variables prefixed with NUTRI_ (a `.env` file is autoloaded)
//
// Nested keys use a double underscore in env vars:
//
//	NUTRI_DATABASE__HOST -> database.host -> Config.Database.Host
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	// Loads `.env` into the process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is the prefix every configuration env var carries.
	EnvPrefix = "NUTRI_"

	// FileEnvVar names the env var holding an optional YAML config path.
	FileEnvVar = "NUTRI_CONFIG"

	// ServiceName tags logs, traces and metrics.
	ServiceName = "nutri-api"
)

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected by Load.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Security      SecurityConfig       `koanf:"security" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`

	// DefaultLocale is used when a request carries no usable language hint.
	DefaultLocale string `koanf:"default_locale" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// RateLimit is the sustained number of requests per second allowed per client IP.
	// Zero disables the limiter.
	RateLimit      float64 `koanf:"rate_limit" validate:"min=0"`
	RateLimitBurst int     `koanf:"rate_limit_burst" validate:"min=0"`

	// MigrateOnStart runs the embedded migrations before serving.
	MigrateOnStart bool `koanf:"migrate_on_start"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required,min=1"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// DSN builds the postgres URL used by both the pool and the migrator.
//
// Host and port are joined IPv6-safely and the password is escaped, so a
// password like "pa:ss@word" cannot break the URL structure.
func (d DatabaseConfig) DSN() string {
	hostPort := net.JoinHostPort(d.Host, strconv.Itoa(d.Port))

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		d.User,
		url.QueryEscape(d.Password),
		hostPort,
		d.Name,
		d.SSLMode,
	)
}

// RedisConfig contains Redis connection details.
// Address is "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// IntegrationConfig holds third-party integration settings.
type IntegrationConfig struct {
	// ResendAPIKey authenticates against Resend. Empty keeps emails from being sent.
	ResendAPIKey string `koanf:"resend_api_key"`

	// EmailFrom is the sender identity of outgoing emails.
	EmailFrom string `koanf:"email_from"`

	// JobsEnabled toggles the asynq worker and job enqueueing.
	JobsEnabled bool `koanf:"jobs_enabled"`
}

// SecurityConfig holds credential handling parameters.
type SecurityConfig struct {
	// BcryptCost is the work factor used when hashing user passwords.
	BcryptCost int `koanf:"bcrypt_cost" validate:"required,min=4,max=31"`
}

// Default returns a Config populated with local-development defaults.
func Default() *Config {
	return &Config{
		Primary: Primary{
			Env:           "local",
			DefaultLocale: "pt-BR",
		},
		Server: ServerConfig{
			Port:               "8080",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
			RateLimit:          20,
			RateLimitBurst:     40,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			Name:            "nutri",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    25,
			ConnMaxLifetime: 300,
			ConnMaxIdleTime: 300,
		},
		Redis: RedisConfig{
			Address: "localhost:6379",
		},
		Integration: IntegrationConfig{
			EmailFrom: "Nutri <onboarding@resend.dev>",
		},
		Security: SecurityConfig{
			BcryptCost: 12,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// Load builds the Config by layering defaults, an optional YAML file and env vars,
// then validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(FileEnvVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrLoadConfig, path, err)
		}
	}

	// NUTRI_SERVER__READ_TIMEOUT -> server.read_timeout
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		if s == FileEnvVar {
			return ""
		}
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: reading env: %v", ErrLoadConfig, err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Comma separated origins arrive as a single env value.
	if len(cfg.Server.CORSAllowedOrigins) == 1 && strings.Contains(cfg.Server.CORSAllowedOrigins[0], ",") {
		cfg.Server.CORSAllowedOrigins = splitAndTrim(cfg.Server.CORSAllowedOrigins[0])
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if cfg.Observability == nil {
		cfg.Observability = DefaultObservabilityConfig()
	}

	// Service identity is not configurable; environment follows primary.env.
	cfg.Observability.ServiceName = ServiceName
	cfg.Observability.Environment = cfg.Primary.Env

	if err := cfg.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return cfg, nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
