package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultDirectionsURL = "https://www.google.com/maps/dir/"
	defaultMaxRange      = 62 * 24 * time.Hour
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	AccessSecret string
}

type WorkflowConfig struct {
	DirectionsURL string
}

type CalendarConfig struct {
	MaxRange time.Duration
	TimeZone string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Workflow    WorkflowConfig
	Calendar    CalendarConfig
}

func Load() (*Config, error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")

	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Workflow: WorkflowConfig{
			DirectionsURL: v.GetString("MAPS_DIRECTIONS_URL"),
		},
		Calendar: CalendarConfig{
			MaxRange: v.GetDuration("CALENDAR_MAX_RANGE"),
			TimeZone: v.GetString("CALENDAR_TIMEZONE"),
		},
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Workflow.DirectionsURL == "" {
		cfg.Workflow.DirectionsURL = defaultDirectionsURL
	}
	if cfg.Calendar.MaxRange <= 0 {
		cfg.Calendar.MaxRange = defaultMaxRange
	}
	if cfg.Calendar.TimeZone == "" {
		cfg.Calendar.TimeZone = "UTC"
	}
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if _, err := time.LoadLocation(cfg.Calendar.TimeZone); err != nil {
		return fmt.Errorf("CALENDAR_TIMEZONE: %w", err)
	}
	return nil
}
