package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI         string
	Database    string
	MaxPoolSize int
}

// MinIOConfig holds object storage settings for MinIO.
// An empty Endpoint disables room image storage.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// KafkaConfig holds change event publishing settings.
// No brokers means events are only logged.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// AuthConfig holds the API key guard settings.
type AuthConfig struct {
	APIKey      string
	KeyLookup   string
	PublicPaths []string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Format string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port        string
	StoreDriver string
	CORSOrigins string
	SeedFile    string
	Auth        AuthConfig
	Log         LogConfig
	Mongo       MongoConfig
	Database    DatabaseConfig
	MinIO       MinIOConfig
	Kafka       KafkaConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port:        getEnv("PORT", "5000"),
		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
		CORSOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		SeedFile:    getEnv("SEED_FILE", ""),
		Auth: AuthConfig{
			APIKey:      getEnv("API_KEY", ""),
			KeyLookup:   getEnv("API_KEY_LOOKUP", "header:X-API-Key"),
			PublicPaths: getEnvList("API_KEY_PUBLIC_PATHS", []string{"/health", "/healthz", "/metrics", "/swagger"}),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Mongo: MongoConfig{
			URI:         getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:    getEnv("MONGODB_DATABASE", "hotel"),
			MaxPoolSize: getEnvInt("MONGODB_MAX_POOL_SIZE", 100),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvList("KAFKA_BROKERS", nil),
			Topic:   getEnv("KAFKA_TOPIC", "hotel.changes"),
		},
	}
}

// Validate reports configuration the process cannot start with.
func (c *AppConfig) Validate() error {
	var errs []error
	if c.Auth.APIKey == "" {
		errs = append(errs, errors.New("API_KEY is required"))
	}
	if !strings.Contains(c.Auth.KeyLookup, ":") {
		errs = append(errs, fmt.Errorf("API_KEY_LOOKUP %q must look like source:name", c.Auth.KeyLookup))
	}
	switch c.StoreDriver {
	case DriverMongo, DriverPostgres, DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	return errors.Join(errs...)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

// getEnvList splits a comma separated value, dropping blanks.
func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
