package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// LoggerConfig controls output format, level and the standard fields
// stamped on every record.
type LoggerConfig struct {
	Level          string                 `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format         string                 `mapstructure:"format" validate:"oneof=json console"`
	TimeField      string                 `mapstructure:"time_field"`
	TimeFormat     string                 `mapstructure:"time_format" validate:"oneof=rfc3339 rfc3339nano unix unix_ms"`
	ServiceName    string                 `mapstructure:"service_name"`
	ServiceVersion string                 `mapstructure:"service_version"`
	Env            string                 `mapstructure:"env" validate:"oneof=dev staging prod"`
	WithCaller     bool                   `mapstructure:"with_caller"`
	Stacktrace     bool                   `mapstructure:"stacktrace"`
	DebugLogPath   string                 `mapstructure:"debug_log_path"`
	Fields         map[string]interface{} `mapstructure:"fields"`
}

// New builds the root zerolog logger. Production environments get plain
// JSON on stdout; dev gets a console writer, plus a debug log file when
// running at debug level so the full history survives the terminal.
func New(cfg *LoggerConfig) (zerolog.Logger, error) {
	cfg.setDefaults()

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return zerolog.Logger{}, fmt.Errorf("logger config validation error: %w", err)
	}

	zerolog.TimestampFieldName = cfg.TimeField
	zerolog.TimeFieldFormat = cfg.TimeFormat

	var writer io.Writer = os.Stdout
	if cfg.Env == "dev" {
		console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: cfg.TimeFormat}
		writer = console
		if cfg.Level == "debug" || cfg.Level == "trace" {
			if file := openDebugLog(cfg.DebugLogPath); file != nil {
				writer = zerolog.MultiLevelWriter(console, file)
			}
		}
	}

	logger := zerolog.New(writer).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("version", cfg.ServiceVersion).
		Str("env", cfg.Env).
		Logger()

	if cfg.WithCaller {
		logger = logger.With().Caller().Logger()
	}
	if cfg.Stacktrace {
		logger = logger.With().Stack().Logger()
	}
	if len(cfg.Fields) > 0 {
		logger = logger.With().Fields(cfg.Fields).Logger()
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return logger, err
	}
	zerolog.SetGlobalLevel(level)

	return logger, nil
}

// openDebugLog returns nil on any failure; losing the file copy should
// never take the process down.
func openDebugLog(path string) *os.File {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil
	}
	return file
}

func (c *LoggerConfig) setDefaults() {
	if c.Env == "" {
		c.Env = "prod"
	}
	if c.Level == "" {
		if c.Env == "dev" {
			c.Level = "debug"
		} else {
			c.Level = "info"
		}
	}
	if c.Format == "" {
		if c.Env == "dev" {
			c.Format = "console"
		} else {
			c.Format = "json"
		}
	}
	if c.TimeField == "" {
		c.TimeField = "ts"
	}
	if c.TimeFormat == "" {
		c.TimeFormat = "rfc3339nano"
	}
	if c.Env == "dev" {
		c.WithCaller = true
	} else {
		c.Stacktrace = true
	}
	if c.DebugLogPath == "" {
		c.DebugLogPath = "logs/debug.log"
	}
	if c.ServiceName == "" {
		c.ServiceName = "football-league-service"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "0.1.0"
	}
	if c.Fields == nil {
		c.Fields = make(map[string]interface{})
	}
}
