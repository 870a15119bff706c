package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"http_server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Notification  NotificationConfig  `mapstructure:"notification"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	AllowedOrigins    string        `mapstructure:"allowed_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"required,min=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"required,min=1"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"required,min=1m"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time" validate:"required,min=1m"`
	Source          string        `mapstructure:"source"`
}

// NotificationConfig carries the WhatsApp delivery settings. HRPhone is the
// process-wide recipient for submission alerts; DefaultRecipient is the
// fallback when an employee has no phone on file. Both are loaded once at
// startup and read-only afterwards.
type NotificationConfig struct {
	HRPhone          string        `mapstructure:"hr_phone" validate:"required"`
	DefaultRecipient string        `mapstructure:"default_recipient" validate:"required"`
	DispatchMode     string        `mapstructure:"dispatch_mode" validate:"required,oneof=inline async"`
	SendTimeout      time.Duration `mapstructure:"send_timeout"`
	GatewayURL       string        `mapstructure:"gateway_url" validate:"required,url"`
	APIKey           string        `mapstructure:"api_key"`
	MaxWorkers       int           `mapstructure:"max_workers"`
	QueueSize        int           `mapstructure:"queue_size"`
	ReviewBaseURL    string        `mapstructure:"review_base_url"`
}

const (
	DispatchModeInline = "inline"
	DispatchModeAsync  = "async"
)

type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

// LoadConfigFromEnv builds the configuration from environment variables for
// container deployments where no config file is mounted.
func LoadConfigFromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              getEnvAsInt("HTTP_SERVER_PORT", 8080),
			BaseURL:           getEnv("HTTP_SERVER_BASE_URL", "http://localhost:8080"),
			AllowedOrigins:    getEnv("HTTP_SERVER_ALLOWED_ORIGINS", "*"),
			ReadHeaderTimeout: getEnvAsDuration("HTTP_SERVER_READ_HEADER_TIMEOUT", 5*time.Second),
			ReadTimeout:       getEnvAsDuration("HTTP_SERVER_READ_TIMEOUT", 15*time.Second),
			IdleTimeout:       getEnvAsDuration("HTTP_SERVER_IDLE_TIMEOUT", 60*time.Second),
			WriteTimeout:      getEnvAsDuration("HTTP_SERVER_WRITE_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			MaxOpenConns:    getEnvAsInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getEnvAsDuration("DATABASE_CONN_MAX_IDLE_TIME", 5*time.Minute),
			Source:          getEnv("DATABASE_SOURCE", ""),
		},
		Notification: NotificationConfig{
			HRPhone:          getEnv("NOTIFICATION_HR_PHONE", "+1234567890"),
			DefaultRecipient: getEnv("NOTIFICATION_DEFAULT_RECIPIENT", "+0987654321"),
			DispatchMode:     getEnv("NOTIFICATION_DISPATCH_MODE", DispatchModeAsync),
			SendTimeout:      getEnvAsDuration("NOTIFICATION_SEND_TIMEOUT", 10*time.Second),
			GatewayURL:       getEnv("NOTIFICATION_GATEWAY_URL", ""),
			APIKey:           getEnv("NOTIFICATION_API_KEY", ""),
			MaxWorkers:       getEnvAsInt("NOTIFICATION_MAX_WORKERS", 4),
			QueueSize:        getEnvAsInt("NOTIFICATION_QUEUE_SIZE", 100),
			ReviewBaseURL:    getEnv("NOTIFICATION_REVIEW_BASE_URL", ""),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOGGING_LEVEL", "info"),
				Format: getEnv("LOGGING_FORMAT", "json"),
			},
		},
	}
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Notification.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("notification config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.AllowedOrigins != "" {
		origins := strings.Split(c.AllowedOrigins, ",")
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}

func (c *NotificationConfig) Validate() error {
	if c.HRPhone == "" {
		return errors.New("hr_phone is required")
	}
	if c.DefaultRecipient == "" {
		return errors.New("default_recipient is required")
	}
	switch c.DispatchMode {
	case DispatchModeInline, DispatchModeAsync:
	default:
		return fmt.Errorf("dispatch_mode must be %q or %q", DispatchModeInline, DispatchModeAsync)
	}
	if c.GatewayURL == "" {
		return errors.New("gateway_url is required")
	}
	if c.SendTimeout <= 0 {
		return errors.New("send_timeout must be positive")
	}
	return nil
}
