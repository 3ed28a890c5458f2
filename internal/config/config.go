package config

import "time"

// Config is the service configuration, read from the environment.
type Config struct {
	Port        string
	GinMode     string
	LogLevel    string
	LogFormat   string
	PresetsFile string

	// Request limits
	MaxPixels          int
	MaxBodyBytes       int64
	RateLimitPerMinute int
	RateLimitBurst     int

	// Run history
	Database     DatabaseConfig
	RunRetention time.Duration
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Type     string // "sqlite", "postgres" or "none"
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	DataDir  string // For SQLite; ":memory:" keeps the database in memory
}

// Load reads the configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		Port:        Get("PORT", "8000"),
		GinMode:     Get("GIN_MODE", ""),
		LogLevel:    Get("LOG_LEVEL", "info"),
		LogFormat:   Get("LOG_FORMAT", "text"),
		PresetsFile: Get("PRESETS_FILE", ""),

		MaxPixels:          GetInt("MAX_PIXELS", 4096*4096),
		RateLimitPerMinute: GetInt("RATE_LIMIT_PER_MINUTE", 120),
		RateLimitBurst:     GetInt("RATE_LIMIT_BURST", 20),

		Database: DatabaseConfig{
			Type:     Get("DB_TYPE", "sqlite"),
			Host:     Get("DB_HOST", "localhost"),
			Port:     GetInt("DB_PORT", 5432),
			User:     Get("DB_USER", "monodither"),
			Password: Get("DB_PASSWORD", ""),
			DBName:   Get("DB_NAME", "monodither"),
			SSLMode:  Get("DB_SSLMODE", "disable"),
			DataDir:  Get("DATA_DIR", "/data"),
		},
		RunRetention: GetDuration("RUN_RETENTION", 30*24*time.Hour),
	}

	// A full-size RGBA body plus some slack for proxies that pad.
	cfg.MaxBodyBytes = GetInt64("MAX_BODY_BYTES", int64(4*cfg.MaxPixels)+1024)

	return cfg
}
