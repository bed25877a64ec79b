package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		UI
		Session
		RichText
		Sweep
		Log
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string // SQLite file holding sessions
	}
	UI struct {
		TemplatesPath string
		StaticPath    string
	}
	Session struct {
		Secret        string
		Lifetime      time.Duration
		SecureCookies bool // Set to false for local dev without HTTPS
		CSRFEnabled   bool
	}
	RichText struct {
		TruncateLength int // Default max length for truncated previews
	}
	Sweep struct {
		Enabled  bool
		Schedule string        // Cron format: "*/10 * * * *" = every 10 minutes
		IdleTTL  time.Duration // In-memory UI state idle longer than this is dropped
	}
	Log struct {
		Level  string // debug, info, warn, error
		Format string // json or console
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultSessionDatabasePath)
	v.SetDefault("templates_path", "./templates")
	v.SetDefault("static_path", "./static")

	// Session defaults
	v.SetDefault("session_secret", "")      // Auto-generated if empty
	v.SetDefault("session_lifetime", "24h") // 24 hours
	v.SetDefault("session_secure_cookies", true)
	v.SetDefault("csrf_enabled", true)

	v.SetDefault("richtext_truncate_length", DefaultTruncateLength)

	// Idle state sweep defaults
	v.SetDefault("sweep_enabled", true)
	v.SetDefault("sweep_schedule", "*/10 * * * *")
	v.SetDefault("sweep_idle_ttl", "1h")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
		Session: Session{
			Secret:        v.GetString("SESSION_SECRET"),
			Lifetime:      v.GetDuration("SESSION_LIFETIME"),
			SecureCookies: v.GetBool("SESSION_SECURE_COOKIES"),
			CSRFEnabled:   v.GetBool("CSRF_ENABLED"),
		},
		RichText: RichText{
			TruncateLength: v.GetInt("RICHTEXT_TRUNCATE_LENGTH"),
		},
		Sweep: Sweep{
			Enabled:  v.GetBool("SWEEP_ENABLED"),
			Schedule: v.GetString("SWEEP_SCHEDULE"),
			IdleTTL:  v.GetDuration("SWEEP_IDLE_TTL"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}
}
