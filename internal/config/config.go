package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backend names.
const (
	BackendDrive = "drive"
	BackendS3    = "s3"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	S3      S3Config
	CORS    CORSConfig
	Log     LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `mapstructure:"port" validate:"required"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Environment     string        `mapstructure:"environment"`
}

// StorageConfig selects the backend and carries its credential blob.
type StorageConfig struct {
	Backend         string `mapstructure:"backend" validate:"oneof=drive s3"`
	Credentials     string `mapstructure:"credentials"`
	CredentialsFile string `mapstructure:"credentials_file"`
	// Container is the Drive folder id or the S3 bucket.
	Container string `mapstructure:"container" validate:"required_if=Backend s3"`
}

// S3Config holds settings only the s3 backend reads.
type S3Config struct {
	Region   string `mapstructure:"region" validate:"required_if=Backend s3"`
	Endpoint string `mapstructure:"endpoint"`

	// Backend mirrors StorageConfig.Backend for conditional validation.
	Backend string `mapstructure:"-"`
}

// CORSConfig holds the origin allow-list. A single "*" allows every origin.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"min=1,dive,origin"`
}

// AllowsAll reports whether the allow-list is the wildcard.
func (c *CORSConfig) AllowsAll() bool {
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
	File   string `mapstructure:"file"`
}

// Load reads configuration from a .env file (if present) and environment
// variables with the PHOTORELAY_ prefix.
func Load() (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PHOTORELAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Storage defaults
	v.SetDefault("storage.backend", BackendDrive)
	v.SetDefault("storage.credentials", "")
	v.SetDefault("storage.credentials_file", "")
	v.SetDefault("storage.container", "")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.endpoint", "")

	v.SetDefault("cors.allowed_origins", "*")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	envBindings := map[string]string{
		"server.port":              "PHOTORELAY_SERVER_PORT",
		"server.read_timeout":      "PHOTORELAY_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "PHOTORELAY_SERVER_WRITE_TIMEOUT",
		"server.shutdown_timeout":  "PHOTORELAY_SERVER_SHUTDOWN_TIMEOUT",
		"server.environment":       "PHOTORELAY_SERVER_ENVIRONMENT",
		"storage.backend":          "PHOTORELAY_STORAGE_BACKEND",
		"storage.credentials":      "PHOTORELAY_STORAGE_CREDENTIALS",
		"storage.credentials_file": "PHOTORELAY_STORAGE_CREDENTIALS_FILE",
		"storage.container":        "PHOTORELAY_STORAGE_CONTAINER",
		"s3.region":                "PHOTORELAY_S3_REGION",
		"s3.endpoint":              "PHOTORELAY_S3_ENDPOINT",
		"cors.allowed_origins":     "PHOTORELAY_CORS_ALLOWED_ORIGINS",
		"log.level":                "PHOTORELAY_LOG_LEVEL",
		"log.format":               "PHOTORELAY_LOG_FORMAT",
		"log.file":                 "PHOTORELAY_LOG_FILE",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if PHOTORELAY_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PHOTORELAY_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:            serverPort,
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		Environment:     v.GetString("server.environment"),
	}
	cfg.Storage = StorageConfig{
		Backend:         strings.ToLower(strings.TrimSpace(v.GetString("storage.backend"))),
		Credentials:     v.GetString("storage.credentials"),
		CredentialsFile: v.GetString("storage.credentials_file"),
		Container:       strings.TrimSpace(v.GetString("storage.container")),
	}
	cfg.S3 = S3Config{
		Region:   v.GetString("s3.region"),
		Endpoint: v.GetString("s3.endpoint"),
		Backend:  cfg.Storage.Backend,
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
	cfg.Log = LogConfig{
		Level:  strings.ToLower(v.GetString("log.level")),
		Format: strings.ToLower(v.GetString("log.format")),
		File:   v.GetString("log.file"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags of every section.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("origin", validOrigin); err != nil {
		return fmt.Errorf("registering origin validator: %w", err)
	}
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func validOrigin(fl validator.FieldLevel) bool {
	o := fl.Field().String()
	return o == "*" || strings.HasPrefix(o, "http://") || strings.HasPrefix(o, "https://")
}

// splitList parses a comma-separated string, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
