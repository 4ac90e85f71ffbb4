package config

import (
	"github.com/oguzcv/football-league-service/internal/logger"
)

// Config is the full application configuration tree, loaded from YAML
// with APP_-prefixed environment overrides.
type Config struct {
	Logger   logger.LoggerConfig `mapstructure:"logger"`
	Server   ServerConfig        `mapstructure:"server"`
	Postgres PostgresConfig      `mapstructure:"postgres"`
	Auth     AuthConfig          `mapstructure:"auth"`
}

// ServerConfig tunes the HTTP listener.
type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // seconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // seconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // seconds
}

// PostgresConfig carries connection and pool settings. Durations are in
// seconds to keep the YAML plain.
type PostgresConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	User              string `mapstructure:"user"`
	Password          string `mapstructure:"password"`
	DBName            string `mapstructure:"dbname"`
	SSLMode           string `mapstructure:"sslmode"`
	MaxConns          int32  `mapstructure:"max_conns"`
	MinConns          int32  `mapstructure:"min_conns"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod int    `mapstructure:"health_check_period"`
	MigrationsDir     string `mapstructure:"migrations_dir"`
}

// AuthConfig configures token issuance. The secret must come from the
// environment in anything but local development.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	TokenTTL  int    `mapstructure:"token_ttl"` // minutes
}
