package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Environment string          `mapstructure:"environment"`
	LogLevel    string          `mapstructure:"log_level"`
	Server      ServerConfig    `mapstructure:"server"`
	Database    DatabaseConfig  `mapstructure:"database"`
	Redis       RedisConfig     `mapstructure:"redis"`
	Ephemeris   EphemerisConfig `mapstructure:"ephemeris"`
	Telegram    TelegramConfig  `mapstructure:"telegram"`
	Astrology   AstrologyConfig `mapstructure:"astrology"`
	Security    SecurityConfig  `mapstructure:"security"`
	Telemetry   TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// EphemerisConfig points at the external chart-resolution service that turns
// birth data into zodiacal positions.
type EphemerisConfig struct {
	ServiceURL string `mapstructure:"service_url"`
	Timeout    int    `mapstructure:"timeout"`
}

type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

// AstrologyConfig tunes the analysis service around the engine.
type AstrologyConfig struct {
	CacheTTL        string `mapstructure:"cache_ttl"`
	PersistResults  bool   `mapstructure:"persist_results"`
	TransitAlerts   bool   `mapstructure:"transit_alerts"`
	RecentChartsMax int    `mapstructure:"recent_charts_max"`
}

type SecurityConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" json:"-" yaml:"-"`
	JWTExpiry string `mapstructure:"jwt_expiry"`
}

type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	ServiceName    string `mapstructure:"service_name"`
	ServiceVersion string `mapstructure:"service_version"`
}

func Load() (*Config, error) {
	// Pull in a local .env first so viper's env lookup sees it.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	setDefaults()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.BindEnv("security.jwt_secret", "JWT_SECRET"); err != nil {
		return nil, fmt.Errorf("failed to bind JWT_SECRET environment variable: %w", err)
	}
	if err := viper.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind TELEGRAM_BOT_TOKEN environment variable: %w", err)
	}

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found, use defaults and environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.Environment = strings.ToLower(config.Environment)

	if config.Environment != "development" && config.Security.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required in non-development environments")
	}

	if config.Security.JWTExpiry != "" {
		if _, err := time.ParseDuration(config.Security.JWTExpiry); err != nil {
			return nil, fmt.Errorf("invalid JWT expiry duration: %w", err)
		}
	}

	if config.Astrology.CacheTTL != "" {
		if _, err := time.ParseDuration(config.Astrology.CacheTTL); err != nil {
			return nil, fmt.Errorf("invalid astrology cache TTL: %w", err)
		}
	}

	return &config, nil
}

// CacheTTLDuration returns the analysis cache TTL as a duration, falling
// back to one hour when unset or malformed.
func (c *AstrologyConfig) CacheTTLDuration() time.Duration {
	if c.CacheTTL == "" {
		return time.Hour
	}
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return time.Hour
	}
	return d
}

func setDefaults() {
	// Environment
	viper.SetDefault("environment", "development")
	viper.SetDefault("log_level", "info")

	// Server
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Database
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.dbname", "flashy_astro")
	viper.SetDefault("database.sslmode", "disable")

	// Redis
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Ephemeris resolver
	viper.SetDefault("ephemeris.service_url", "http://localhost:3100")
	viper.SetDefault("ephemeris.timeout", 15)

	// Telegram
	viper.SetDefault("telegram.bot_token", "")
	viper.SetDefault("telegram.chat_id", "")

	// Astrology
	viper.SetDefault("astrology.cache_ttl", "1h")
	viper.SetDefault("astrology.persist_results", true)
	viper.SetDefault("astrology.transit_alerts", false)
	viper.SetDefault("astrology.recent_charts_max", 50)

	// Security
	viper.SetDefault("security.jwt_secret", "")
	viper.SetDefault("security.jwt_expiry", "24h")

	// Telemetry
	viper.SetDefault("telemetry.enabled", false)
	viper.SetDefault("telemetry.otlp_endpoint", "")
	viper.SetDefault("telemetry.service_name", "flashy-astro")
	viper.SetDefault("telemetry.service_version", "1.0.0")
}
