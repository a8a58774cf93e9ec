package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Email  EmailConfig  `mapstructure:"email"`
	CORS   CORSConfig   `mapstructure:"cors"`
	Debug  DebugConfig  `mapstructure:"debug"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// MaxBodyBytes caps the size of request bodies
	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EmailConfig holds email sending configuration
type EmailConfig struct {
	// Provider is the email provider to use: "smtp" or "gmail"
	Provider string `mapstructure:"provider"`
	// OwnerAddress receives contact notifications. Defaults to the SMTP username.
	OwnerAddress string `mapstructure:"owner_address"`
	// OwnerName signs the auto-reply
	OwnerName string `mapstructure:"owner_name"`
	// SiteName is used in subjects and footers
	SiteName string `mapstructure:"site_name"`
	// SendTimeout bounds each individual send attempt
	SendTimeout time.Duration `mapstructure:"send_timeout"`
	SMTP        SMTPConfig    `mapstructure:"smtp"`
	Gmail       GmailConfig   `mapstructure:"gmail"`
}

// SMTPConfig holds SMTP account configuration.
// With Gmail this is the account address and an app password.
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	// SenderName is the display name in the From header
	SenderName string `mapstructure:"sender_name"`
}

// GmailConfig holds Gmail API configuration
type GmailConfig struct {
	// CredentialsJSON is the service account credentials JSON content
	CredentialsJSON string `mapstructure:"credentials_json"`
	// ClientID for OAuth2 token-based auth (alternative to service account)
	ClientID string `mapstructure:"client_id"`
	// ClientSecret for OAuth2 token-based auth
	ClientSecret string `mapstructure:"client_secret"`
	// RefreshToken for OAuth2 token-based auth
	RefreshToken string `mapstructure:"refresh_token"`
	// SenderAddress is the "From" email address
	SenderAddress string `mapstructure:"sender_address"`
	// SenderName is the display name for the sender
	SenderName string `mapstructure:"sender_name"`
}

// CORSConfig holds the cross-origin allow-list
type CORSConfig struct {
	// AllowedOrigins are exact origins, e.g. "https://example.com"
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// AllowedSuffixes are trusted host suffixes, e.g. ".vercel.app"
	AllowedSuffixes []string `mapstructure:"allowed_suffixes"`
}

// DebugConfig toggles debug-only endpoints
type DebugConfig struct {
	TestEmail bool `mapstructure:"test_email"`
}

// Sender returns the address mail is sent from for the configured provider
func (c EmailConfig) Sender() string {
	if c.Provider == ProviderGmail {
		return c.Gmail.SenderAddress
	}
	return c.SMTP.Username
}

// Owner returns the address that receives contact notifications
func (c EmailConfig) Owner() string {
	if c.OwnerAddress != "" {
		return c.OwnerAddress
	}
	return c.Sender()
}

// Configured reports whether the provider credentials are present
func (c EmailConfig) Configured() bool {
	switch c.Provider {
	case ProviderGmail:
		if c.Gmail.SenderAddress == "" {
			return false
		}
		if c.Gmail.CredentialsJSON != "" {
			return true
		}
		return c.Gmail.ClientID != "" && c.Gmail.ClientSecret != "" && c.Gmail.RefreshToken != ""
	default:
		return c.SMTP.Username != "" && c.SMTP.Password != ""
	}
}

// Email providers
const (
	ProviderSMTP  = "smtp"
	ProviderGmail = "gmail"
)

// legacyEnv maps config keys to the environment variable names used by
// existing deployments of the portfolio backend.
var legacyEnv = map[string]string{
	"email.smtp.username":  "EMAIL_USER",
	"email.smtp.password":  "EMAIL_PASS",
	"server.port":          "PORT",
	"cors.allowed_origins": "ALLOWED_ORIGINS",
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	return load(viper.New(), []string{".", "./config", "/etc/folio"})
}

func load(v *viper.Viper, paths []string) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := mergeDotEnv(v, paths); err != nil {
		return nil, err
	}

	// Bind environment variables
	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		if err := v.BindEnv(key, envName(key), env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.CORS.AllowedOrigins = splitList(cfg.CORS.AllowedOrigins)
	cfg.CORS.AllowedSuffixes = splitList(cfg.CORS.AllowedSuffixes)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeDotEnv folds a .env file, if one exists, into v. Keys are the
// legacy variable names (EMAIL_USER=...) and are mapped onto config keys.
func mergeDotEnv(v *viper.Viper, paths []string) error {
	env := viper.New()
	env.SetConfigName(".env")
	env.SetConfigType("env")
	for _, p := range paths {
		env.AddConfigPath(p)
	}
	if err := env.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read .env file: %w", err)
	}

	// viper lowercases keys read from .env files; real environment wins
	for key, name := range legacyEnv {
		if _, set := os.LookupEnv(name); set {
			continue
		}
		if _, set := os.LookupEnv(envName(key)); set {
			continue
		}
		if val := env.GetString(strings.ToLower(name)); val != "" {
			v.Set(key, val)
		}
	}
	return nil
}

// envName returns the prefixed variable name for a config key
func envName(key string) string {
	return "FOLIO_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// splitList accepts both YAML lists and comma separated env values
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate checks settings that would otherwise fail at request time.
// Missing mail credentials are not an error here: the contact endpoint
// degrades to a configuration error instead.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch c.Email.Provider {
	case ProviderSMTP, ProviderGmail:
	default:
		return fmt.Errorf("unknown email provider %q", c.Email.Provider)
	}
	if c.Email.SendTimeout <= 0 {
		return fmt.Errorf("email.send_timeout must be positive")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.max_body_bytes", 64<<10)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Email defaults
	v.SetDefault("email.provider", ProviderSMTP)
	v.SetDefault("email.owner_address", "")
	v.SetDefault("email.owner_name", "Krish Bagaria")
	v.SetDefault("email.site_name", "Portfolio")
	v.SetDefault("email.send_timeout", "15s")
	v.SetDefault("email.smtp.host", "smtp.gmail.com")
	v.SetDefault("email.smtp.port", 587)
	v.SetDefault("email.smtp.username", "")
	v.SetDefault("email.smtp.password", "")
	v.SetDefault("email.smtp.sender_name", "Portfolio Contact")
	v.SetDefault("email.gmail.sender_address", "")
	v.SetDefault("email.gmail.sender_name", "Portfolio Contact")

	// CORS defaults
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("cors.allowed_suffixes", []string{".vercel.app"})

	v.SetDefault("debug.test_email", false)
}
