// Package config loads application configuration from a YAML file with
// environment-variable overrides for anything secret or deploy-specific.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Email        EmailConfig        `yaml:"email"`
	Publish      PublishConfig      `yaml:"publish"`
	Subscription SubscriptionConfig `yaml:"subscription"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
	// BaseURL is the public origin embedded in confirmation links,
	// e.g. "https://newsletter.ignite.com".
	BaseURL string `yaml:"base_url"`
}

// GetHost returns the listen host, honoring container environments and
// the SERVER_HOST override.
func (c ServerConfig) GetHost() string {
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	URL             string `yaml:"url"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime_minutes"`
}

// EmailProvider selects the outbound email transport.
type EmailProvider string

const (
	ProviderHTTP EmailProvider = "http"
	ProviderSES  EmailProvider = "ses"
)

// EmailConfig holds outbound email transport settings.
type EmailConfig struct {
	Provider       EmailProvider `yaml:"provider"`
	BaseURL        string        `yaml:"base_url"`
	Sender         string        `yaml:"sender"`
	AuthToken      string        `yaml:"auth_token"`
	TimeoutSeconds int           `yaml:"timeout_seconds"`
	SES            SESConfig     `yaml:"ses"`
}

// Timeout returns the connect/request timeout for the email transport.
func (c EmailConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SESConfig holds AWS SES credentials for the "ses" provider.
type SESConfig struct {
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// PublishConfig holds the Basic-auth credentials required to publish a
// newsletter issue.
type PublishConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// SubscriptionConfig holds subscriber lifecycle settings.
type SubscriptionConfig struct {
	// TokenTTLHours bounds how long a confirmation token stays
	// redeemable. Zero disables expiry.
	TokenTTLHours int `yaml:"token_ttl_hours"`
}

// TokenTTL returns the confirmation token lifetime; zero means no expiry.
func (c SubscriptionConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// Load reads configuration from a YAML file and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 30
	}
	if cfg.Email.Provider == "" {
		cfg.Email.Provider = ProviderHTTP
	}
	if cfg.Email.TimeoutSeconds == 0 {
		cfg.Email.TimeoutSeconds = 10
	}
	if cfg.Email.SES.Region == "" {
		cfg.Email.SES.Region = "us-west-2"
	}

	return &cfg, nil
}

// LoadFromEnv loads the YAML file then applies environment overrides.
// A .env file in the working directory is honored if present.
func LoadFromEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.Database.URL = dbURL
	}
	if v := os.Getenv("BASE_URL"); v != "" {
		cfg.Server.BaseURL = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("EMAIL_BASE_URL"); v != "" {
		cfg.Email.BaseURL = v
	}
	if v := os.Getenv("EMAIL_SENDER"); v != "" {
		cfg.Email.Sender = v
	}
	if v := os.Getenv("EMAIL_AUTH_TOKEN"); v != "" {
		cfg.Email.AuthToken = v
	}
	if v := os.Getenv("EMAIL_PROVIDER"); v != "" {
		cfg.Email.Provider = EmailProvider(v)
	}
	if v := os.Getenv("AWS_SES_REGION"); v != "" {
		cfg.Email.SES.Region = v
	}
	if v := os.Getenv("AWS_SES_ACCESS_KEY"); v != "" {
		cfg.Email.SES.AccessKey = v
	}
	if v := os.Getenv("AWS_SES_SECRET_KEY"); v != "" {
		cfg.Email.SES.SecretKey = v
	}
	if v := os.Getenv("PUBLISH_USERNAME"); v != "" {
		cfg.Publish.Username = v
	}
	if v := os.Getenv("PUBLISH_PASSWORD"); v != "" {
		cfg.Publish.Password = v
	}

	return cfg, nil
}

// Validate reports configuration that cannot work at runtime.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("database.url is required (or set DATABASE_URL)")
	}
	if c.Email.Sender == "" {
		return fmt.Errorf("email.sender is required")
	}
	if c.Email.Provider == ProviderHTTP && c.Email.BaseURL == "" {
		return fmt.Errorf("email.base_url is required for the http provider")
	}
	if c.Publish.Username == "" || c.Publish.Password == "" {
		return fmt.Errorf("publish.username and publish.password are required")
	}
	return nil
}
