package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"

	AuthProviderJWT      = "jwt"
	AuthProviderFirebase = "firebase"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	App       AppConfig
}

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

type StoreConfig struct {
	Driver string
}

type DatabaseConfig struct {
	DSN         string
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	Provider                string
	JWTSecret               string
	JWTIssuer               string
	TokenTTL                time.Duration
	BcryptCost              int
	FirebaseCredentialsPath string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// RateLimitConfig disables limiting when RPS is zero.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FromEnv reads the configuration from the process environment without
// touching .env files or validating the result.
func FromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "4000"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		},
		Database: DatabaseConfig{
			DSN:         getEnv("DB_DSN", ""),
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnvAsInt("DB_PORT", 5432),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", ""),
			Name:        getEnv("DB_NAME", "uptask"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 2),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			Provider:                strings.ToLower(getEnv("AUTH_PROVIDER", AuthProviderJWT)),
			JWTSecret:               getEnv("SECRETA", getEnv("JWT_SECRET", "")),
			JWTIssuer:               getEnv("JWT_ISSUER", "uptask"),
			TokenTTL:                getEnvAsDuration("TOKEN_TTL", time.Hour),
			BcryptCost:              getEnvAsInt("BCRYPT_COST", 10),
			FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		RateLimit: RateLimitConfig{
			RPS:   getEnvAsFloat("RATE_LIMIT_RPS", 0),
			Burst: getEnvAsInt("RATE_LIMIT_BURST", 20),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Store.Driver {
	case StoreDriverPostgres:
		if c.Database.DSN == "" && c.Database.Host == "" {
			return fmt.Errorf("DB_DSN or DB_HOST is required")
		}
	case StoreDriverRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreDriverPostgres, StoreDriverRedis, c.Store.Driver)
	}

	switch c.Auth.Provider {
	case AuthProviderJWT:
		if c.Auth.JWTSecret == "" {
			return fmt.Errorf("SECRETA (or JWT_SECRET) is required when AUTH_PROVIDER=jwt")
		}
		if c.Auth.TokenTTL <= 0 {
			return fmt.Errorf("TOKEN_TTL must be positive")
		}
		if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
			return fmt.Errorf("BCRYPT_COST must be between 4 and 31")
		}
	case AuthProviderFirebase:
		if c.Auth.FirebaseCredentialsPath == "" {
			return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required when AUTH_PROVIDER=firebase")
		}
	default:
		return fmt.Errorf("AUTH_PROVIDER must be %q or %q, got %q", AuthProviderJWT, AuthProviderFirebase, c.Auth.Provider)
	}

	if c.RateLimit.RPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative")
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst <= 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be positive when rate limiting is enabled")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
