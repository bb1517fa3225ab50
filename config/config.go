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

const defaultJWTSecret = "dev_secret_key_change_in_production_make_it_longer_please!"

type Config struct {
	Port        string
	GinMode     string
	Environment string // production | staging | development
	LogLevel    string
	// Database
	DBDriver       string // postgres | sqlite
	DBUrl          string
	SQLitePath     string
	DBLogLevel     string
	SeedSampleJobs bool
	// Token service
	JWTSecret      string
	JWTIssuer      string
	JWTTTL         time.Duration
	AuthCookieName string
	// HTTP
	FrontendURLs   []string
	TrustedProxies []string
	// Storage
	StorageDriver string // local | s3
	UploadDir     string
	MaxUploadMB   int
	S3Bucket      string
	S3Region      string
	S3AccessKeyID string
	S3SecretKey   string
	S3Endpoint    string
	S3Prefix      string
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitAuthThreshold   int
	RateLimitUploadThreshold int
	FailedLoginBlockMinutes  int
	FailedLoginMaxAttempts   int
	FailedLoginWindowMinutes int
	// Events
	RabbitMQURL      string
	RabbitMQExchange string
}

func LoadConfig() (*Config, error) {
	// Load .env file when present; real environment wins
	_ = godotenv.Load()

	ginMode := getEnv("GIN_MODE", "debug")
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     ginMode,
		Environment: appEnvironment(ginMode),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		// Database
		DBDriver:       strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBUrl:          getEnv("DATABASE_URL", ""),
		SQLitePath:     getEnv("SQLITE_PATH", "jobportal.db"),
		DBLogLevel:     getEnv("DB_LOG_LEVEL", "warn"),
		SeedSampleJobs: getEnvBool("SEED_SAMPLE_JOBS", true),
		// Token service
		JWTSecret:      getEnv("JWT_SECRET", defaultJWTSecret),
		JWTIssuer:      getEnv("JWT_ISSUER", "jobportal"),
		JWTTTL:         getEnvDuration("JWT_TTL", 7*24*time.Hour),
		AuthCookieName: getEnv("AUTH_COOKIE_NAME", "JobPortalAuth"),
		FrontendURLs:   splitList(getEnv("FRONTEND_URL", "http://localhost:5173")),
		TrustedProxies: splitList(getEnv("TRUSTED_PROXIES", "")),
		// Storage
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", "local")),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadMB:   getEnvInt("MAX_UPLOAD_MB", 10),
		S3Bucket:      getEnv("S3_BUCKET", ""),
		S3Region:      getEnv("S3_REGION", "us-east-1"),
		S3AccessKeyID: getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretKey:   getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Endpoint:    strings.TrimRight(getEnv("S3_ENDPOINT", ""), "/"),
		S3Prefix:      strings.Trim(getEnv("S3_PREFIX", "uploads"), "/"),
		// Redis
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitAuthThreshold:   getEnvInt("RATE_LIMIT_AUTH_THRESHOLD", 20),
		RateLimitUploadThreshold: getEnvInt("RATE_LIMIT_UPLOAD_THRESHOLD", 10),
		FailedLoginBlockMinutes:  getEnvInt("FAILED_LOGIN_BLOCK_MINUTES", 15),
		FailedLoginMaxAttempts:   getEnvInt("FAILED_LOGIN_MAX_ATTEMPTS", 5),
		FailedLoginWindowMinutes: getEnvInt("FAILED_LOGIN_WINDOW_MINUTES", 15),
		// Events
		RabbitMQURL:      getEnv("RABBITMQ_URL", ""),
		RabbitMQExchange: getEnv("RABBITMQ_EXCHANGE", "jobportal.events"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}
	if cfg.JWTSecret == defaultJWTSecret {
		log.Println("WARNING: JWT_SECRET not set, using development key.")
	}

	return cfg, nil
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("config: JWT_SECRET must be at least 32 bytes")
	}
	switch c.DBDriver {
	case "sqlite":
	case "postgres":
		if c.DBUrl == "" {
			return fmt.Errorf("config: DATABASE_URL is required for DB_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("config: unknown DB_DRIVER %q", c.DBDriver)
	}
	switch c.StorageDriver {
	case "local":
	case "s3":
		if c.S3Bucket == "" {
			return fmt.Errorf("config: S3_BUCKET is required for STORAGE_DRIVER=s3")
		}
	default:
		return fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.MaxUploadMB < 1 {
		c.MaxUploadMB = 10
	}
	return nil
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// appEnvironment reads APP_ENV, falling back to the gin mode.
func appEnvironment(ginMode string) string {
	if env := strings.TrimSpace(os.Getenv("APP_ENV")); env != "" {
		return strings.ToLower(env)
	}
	if ginMode == "release" {
		return "production"
	}
	return "development"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimRight(strings.TrimSpace(part), "/")
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
