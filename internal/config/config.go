package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	BookingAPI BookingAPIConfig `yaml:"booking_api"`
	Selection  SelectionConfig  `yaml:"selection"`
	Stripe     StripeConfig     `yaml:"stripe"`
	SendGrid   SendGridConfig   `yaml:"sendgrid"`
	Twilio     TwilioConfig     `yaml:"twilio"`
}

type ServerConfig struct {
	Port           string   `yaml:"port"`
	PublicURL      string   `yaml:"public_url"`
	AdminToken     string   `yaml:"admin_token"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	Timezone       string   `yaml:"timezone"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// BookingAPIConfig points at the backend serving /api/facilities and /api/bookings.
type BookingAPIConfig struct {
	URL            string `yaml:"url"`
	Token          string `yaml:"token"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// SelectionConfig holds the defaults a booking dialog starts with.
type SelectionConfig struct {
	DefaultDurationMinutes int `yaml:"default_duration_minutes"`
	DefaultParticipants    int `yaml:"default_participants"`
	IdleMinutes            int `yaml:"idle_minutes"`
}

type StripeConfig struct {
	SecretKey     string `yaml:"secret_key"`
	WebhookSecret string `yaml:"webhook_secret"`
	Currency      string `yaml:"currency"`
}

type SendGridConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

// GetConfigPath returns CONFIG_PATH, or configs/config.yaml when it exists.
func GetConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	p := filepath.Join("configs", "config.yaml")
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

// Load reads the optional YAML file at path, then a .env file, then the environment.
// Later sources win.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// a missing .env is normal outside development
	_ = godotenv.Load()
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			PublicURL:      "http://localhost:3000",
			AllowedOrigins: []string{"*"},
			Timezone:       "UTC",
		},
		BookingAPI: BookingAPIConfig{TimeoutSeconds: 15},
		Selection: SelectionConfig{
			DefaultDurationMinutes: 60,
			DefaultParticipants:    1,
			IdleMinutes:            30,
		},
		Stripe:   StripeConfig{Currency: "eur"},
		SendGrid: SendGridConfig{FromName: "Facility Booking"},
	}
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Port, "PORT")
	setString(&cfg.Server.PublicURL, "PUBLIC_URL")
	setString(&cfg.Server.AdminToken, "ADMIN_API_TOKEN")
	setString(&cfg.Server.Timezone, "TIMEZONE")
	setString(&cfg.Database.URL, "DATABASE_URL")
	setString(&cfg.BookingAPI.URL, "BOOKING_API_URL")
	setString(&cfg.BookingAPI.Token, "BOOKING_API_TOKEN")
	setInt(&cfg.BookingAPI.TimeoutSeconds, "BOOKING_API_TIMEOUT_SECONDS")
	setInt(&cfg.Selection.IdleMinutes, "SELECTION_IDLE_MINUTES")
	setString(&cfg.Stripe.SecretKey, "STRIPE_SECRET_KEY")
	setString(&cfg.Stripe.WebhookSecret, "STRIPE_WEBHOOK_SECRET")
	setString(&cfg.SendGrid.APIKey, "SENDGRID_API_KEY")
	setString(&cfg.SendGrid.FromEmail, "SENDGRID_FROM_EMAIL")
	setString(&cfg.SendGrid.FromName, "SENDGRID_FROM_NAME")
	setString(&cfg.Twilio.AccountSID, "TWILIO_ACCOUNT_SID")
	setString(&cfg.Twilio.AuthToken, "TWILIO_AUTH_TOKEN")
	setString(&cfg.Twilio.FromNumber, "TWILIO_FROM_NUMBER")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL not set")
	}
	if c.BookingAPI.URL == "" {
		return fmt.Errorf("BOOKING_API_URL not set")
	}
	if c.BookingAPI.TimeoutSeconds <= 0 {
		return fmt.Errorf("booking_api.timeout_seconds must be positive")
	}
	if c.Selection.DefaultDurationMinutes <= 0 || c.Selection.DefaultParticipants <= 0 {
		return fmt.Errorf("selection defaults must be positive")
	}
	if c.Selection.IdleMinutes <= 0 {
		return fmt.Errorf("selection.idle_minutes must be positive")
	}
	return nil
}

func (c BookingAPIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c SelectionConfig) IdleTimeout() time.Duration {
	return time.Duration(c.IdleMinutes) * time.Minute
}
