// Package config loads application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every setting of the server and the terminal client.
type Config struct {
	// Server
	AppPort        string
	DBDriver       string
	DatabaseDSN    string
	JWTSecret      string
	TokenTTL       time.Duration
	UploadDir      string
	UploadMaxBytes int64
	PublicBaseURL  string
	RabbitMQURL    string

	// Catalog
	CatalogSeed        int64
	CatalogPerCategory int

	// Observability
	LogLevel           string
	LogFormat          string
	OTLPEndpoint       string
	OTLPInsecure       bool
	OTELServiceName    string
	OTELServiceVersion string

	// Client
	APIURL   string
	StateDir string
}

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":5001")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "storefront.db")
	v.SetDefault("JWT_SECRET", "fallback_secret")
	v.SetDefault("TOKEN_TTL", "168h")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("UPLOAD_MAX_BYTES", 5*1024*1024)
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:5001")
	v.SetDefault("RABBITMQ_URL", "")

	v.SetDefault("CATALOG_SEED", 0)
	v.SetDefault("CATALOG_PER_CATEGORY", 31)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", true)
	v.SetDefault("OTEL_SERVICE_NAME", "storefront")
	v.SetDefault("OTEL_SERVICE_VERSION", "1.0.0")

	v.SetDefault("API_URL", "http://localhost:5001/api")
	v.SetDefault("STATE_DIR", defaultStateDir())
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".voguemen"
	}
	return filepath.Join(home, ".voguemen")
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds a Config from v and validates it.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppPort:        v.GetString("APP_PORT"),
		DBDriver:       strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		TokenTTL:       v.GetDuration("TOKEN_TTL"),
		UploadDir:      v.GetString("UPLOAD_DIR"),
		UploadMaxBytes: v.GetInt64("UPLOAD_MAX_BYTES"),
		PublicBaseURL:  strings.TrimRight(v.GetString("PUBLIC_BASE_URL"), "/"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),

		CatalogSeed:        v.GetInt64("CATALOG_SEED"),
		CatalogPerCategory: v.GetInt("CATALOG_PER_CATEGORY"),

		LogLevel:           v.GetString("LOG_LEVEL"),
		LogFormat:          v.GetString("LOG_FORMAT"),
		OTLPEndpoint:       v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTLPInsecure:       v.GetBool("OTEL_EXPORTER_OTLP_INSECURE"),
		OTELServiceName:    v.GetString("OTEL_SERVICE_NAME"),
		OTELServiceVersion: v.GetString("OTEL_SERVICE_VERSION"),

		APIURL:   strings.TrimRight(v.GetString("API_URL"), "/"),
		StateDir: v.GetString("STATE_DIR"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail late.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres, DriverMySQL:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	if c.UploadMaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive, got %d", c.UploadMaxBytes)
	}
	return nil
}
