package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxConns        int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
	} `yaml:"redis"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	// Attendance holds the verification tuning knobs. Durations are kept
	// as strings in the file and parsed through AttendanceParams so the
	// yaml stays human-editable ("15m", not nanosecond integers).
	Attendance struct {
		GraceBefore   string `yaml:"grace_before" env:"ATTENDANCE_GRACE_BEFORE"`
		GraceAfter    string `yaml:"grace_after" env:"ATTENDANCE_GRACE_AFTER"`
		LateThreshold string `yaml:"late_threshold" env:"ATTENDANCE_LATE_THRESHOLD"`
		PinValidity   string `yaml:"pin_validity" env:"ATTENDANCE_PIN_VALIDITY"`
		PinLength     int    `yaml:"pin_length" env:"ATTENDANCE_PIN_LENGTH"`
	} `yaml:"attendance"`

	RateLimit struct {
		MarkingPerMinute int `yaml:"marking_per_minute" env:"RATELIMIT_MARKING_PER_MINUTE"`
	} `yaml:"ratelimit"`
}

// AttendanceParams is the parsed form of the attendance section, handed
// to the services that do window and PIN math.
type AttendanceParams struct {
	GraceBefore   time.Duration
	GraceAfter    time.Duration
	LateThreshold time.Duration
	PinValidity   time.Duration
	PinLength     int
}

// LoadConfig loads configuration from a file and environment variables.
// A local .env file, if present, is loaded first so development setups
// can override without exporting variables.
func LoadConfig(configPath string) (*Config, error) {
	_ = godotenv.Load()

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "smartportal"
	config.Database.SSLMode = "disable"
	config.Database.MaxConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.Redis.Addr = "localhost:6379"

	config.JWT.AccessTokenExpiration = "1h"
	config.JWT.Issuer = "smartportal.app"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	// 15 minutes either side of the scheduled slot, matching the window
	// students are told about; PIN codes live for 10 minutes.
	config.Attendance.GraceBefore = "15m"
	config.Attendance.GraceAfter = "15m"
	config.Attendance.LateThreshold = "15m"
	config.Attendance.PinValidity = "10m"
	config.Attendance.PinLength = 6

	config.RateLimit.MarkingPerMinute = 10
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	if _, err := config.AttendanceParams(); err != nil {
		return err
	}

	if config.RateLimit.MarkingPerMinute <= 0 {
		return fmt.Errorf("ratelimit.marking_per_minute must be positive")
	}

	return nil
}

// AttendanceParams parses the attendance section into typed durations.
func (c *Config) AttendanceParams() (AttendanceParams, error) {
	var (
		params AttendanceParams
		err    error
	)

	fields := []struct {
		name  string
		raw   string
		out   *time.Duration
	}{
		{"attendance.grace_before", c.Attendance.GraceBefore, &params.GraceBefore},
		{"attendance.grace_after", c.Attendance.GraceAfter, &params.GraceAfter},
		{"attendance.late_threshold", c.Attendance.LateThreshold, &params.LateThreshold},
		{"attendance.pin_validity", c.Attendance.PinValidity, &params.PinValidity},
	}
	for _, f := range fields {
		*f.out, err = time.ParseDuration(f.raw)
		if err != nil {
			return AttendanceParams{}, fmt.Errorf("invalid %s: %w", f.name, err)
		}
		if *f.out < 0 {
			return AttendanceParams{}, fmt.Errorf("%s must not be negative", f.name)
		}
	}

	if c.Attendance.PinLength < 4 || c.Attendance.PinLength > 10 {
		return AttendanceParams{}, fmt.Errorf("attendance.pin_length must be between 4 and 10")
	}
	params.PinLength = c.Attendance.PinLength

	return params, nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
