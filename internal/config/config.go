package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	App         AppConfig
	Translation TranslationConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type AppConfig struct {
	Name        string
	Environment string
	LogLevel    string
}

type TranslationConfig struct {
	// MT backend configuration
	BackendURL string
	BackendKey string

	// Model registry file; empty means built-in defaults
	ModelsFile string

	// Cache settings
	CacheTTL     time.Duration
	CacheEnabled bool

	// Rate limiting
	RateLimit       int
	RateLimitWindow time.Duration

	// SizeLimit counts NFC-normalized characters of the translatable
	// content, not raw bytes.
	SizeLimit              int
	AllowSizeLimitOverride bool

	// Uploaded document handling
	AllowedExtensions []string

	// Fallback language pair for the /languages endpoints
	DefaultSourceLang string
	DefaultTargetLang string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "translation_db"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		App: AppConfig{
			Name:        getEnv("APP_NAME", "translation-api"),
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Translation: TranslationConfig{
			BackendURL:             getEnv("MT_BACKEND_URL", "http://mt-backend:8000"),
			BackendKey:             getEnv("MT_BACKEND_API_KEY", ""),
			ModelsFile:             getEnv("MODELS_FILE", ""),
			CacheTTL:               getEnvAsDuration("CACHE_TTL", 24*time.Hour),
			CacheEnabled:           getEnvAsBool("CACHE_ENABLED", true),
			RateLimit:              getEnvAsInt("RATE_LIMIT", 100),
			RateLimitWindow:        getEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
			SizeLimit:              getEnvAsInt("TEXT_LENGTH_LIMIT", 100000),
			AllowSizeLimitOverride: getEnvAsBool("ALLOW_SIZE_LIMIT_OVERRIDE", false),
			AllowedExtensions:      getEnvAsSlice("ALLOWED_EXTENSIONS", []string{"txt", "html", "htm", "xml", "odt"}),
			DefaultSourceLang:      getEnv("DEFAULT_SOURCE_LANG", "en"),
			DefaultTargetLang:      getEnv("DEFAULT_TARGET_LANG", "cs"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
