package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/mrlokans/bookhub/internal/entities"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Catalog
		Favorites
		Reveal
		Clients
		Sessions
		UI
		Log
		Metrics
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path     string
		LogLevel string
	}
	Catalog struct {
		Path string // Empty means the embedded catalog
	}
	Favorites struct {
		Backend string // "database" or "session"
		SlotKey string
	}
	Reveal struct {
		Step time.Duration
	}
	Clients struct {
		CacheSize int
		ClientID  string // Slot owner for terminal commands
	}
	Sessions struct {
		Lifetime      time.Duration
		SecureCookies bool // Set to false for local dev without HTTPS
		CSRFSecret    string
	}
	UI struct {
		TemplatesPath string // Empty means embedded templates
		StaticPath    string
	}
	Log struct {
		Level  string
		Format string
	}
	Metrics struct {
		Enabled bool
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_log_level", "warn")
	v.SetDefault("catalog_path", "")
	v.SetDefault("slot_backend", SlotBackendDatabase)
	v.SetDefault("slot_key", entities.SlotKeyFavorites)
	v.SetDefault("reveal_step", "90ms")
	v.SetDefault("client_cache_size", 1024)
	v.SetDefault("client_id", DefaultClientID)
	v.SetDefault("session_lifetime", "8760h") // One year
	v.SetDefault("secure_cookies", false)
	v.SetDefault("csrf_secret", "")
	v.SetDefault("templates_path", "")
	v.SetDefault("static_path", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("metrics_enabled", true)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:     v.GetString("DATABASE_PATH"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		Catalog: Catalog{
			Path: v.GetString("CATALOG_PATH"),
		},
		Favorites: Favorites{
			Backend: v.GetString("SLOT_BACKEND"),
			SlotKey: v.GetString("SLOT_KEY"),
		},
		Reveal: Reveal{
			Step: v.GetDuration("REVEAL_STEP"),
		},
		Clients: Clients{
			CacheSize: v.GetInt("CLIENT_CACHE_SIZE"),
			ClientID:  v.GetString("CLIENT_ID"),
		},
		Sessions: Sessions{
			Lifetime:      v.GetDuration("SESSION_LIFETIME"),
			SecureCookies: v.GetBool("SECURE_COOKIES"),
			CSRFSecret:    v.GetString("CSRF_SECRET"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Metrics: Metrics{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
	}
}

// Validate rejects settings the application cannot start with.
func (c *Config) Validate() error {
	switch c.Favorites.Backend {
	case SlotBackendDatabase, SlotBackendSession:
	default:
		return fmt.Errorf("SLOT_BACKEND must be %q or %q, got %q", SlotBackendDatabase, SlotBackendSession, c.Favorites.Backend)
	}
	if c.Favorites.SlotKey == "" {
		return fmt.Errorf("SLOT_KEY must not be empty")
	}
	if c.Clients.CacheSize <= 0 {
		return fmt.Errorf("CLIENT_CACHE_SIZE must be positive, got %d", c.Clients.CacheSize)
	}
	if c.Reveal.Step < 0 {
		return fmt.Errorf("REVEAL_STEP must not be negative, got %s", c.Reveal.Step)
	}
	if c.Sessions.CSRFSecret != "" && len(c.Sessions.CSRFSecret) != 32 {
		return fmt.Errorf("CSRF_SECRET must be 32 bytes, got %d", len(c.Sessions.CSRFSecret))
	}
	return nil
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.HTTP.Host, c.HTTP.Port)
}
