package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort        string
	LogLevel        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	SnapshotBackend   string
	SnapshotNamespace string
	SnapshotTTL       time.Duration
	RedisAddr         string
	RedisPassword     string
	MongoURI          string
	MongoDBName       string
	MongoMaxPoolSize  int
	MongoMinPoolSize  int
	MongoConnTimeout  time.Duration

	CatalogBackend string
	CatalogDBPath  string

	KafkaBrokers []string
	KafkaTopic   string

	SessionSecret  string
	ToastTTL       time.Duration
	EntryDelay     time.Duration
	VisitorIdleTTL time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		RequestTimeout:  getDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		SnapshotBackend:   getEnv("SNAPSHOT_BACKEND", "memory"),
		SnapshotNamespace: getEnv("SNAPSHOT_NAMESPACE", "kolor-cart"),
		SnapshotTTL:       getDuration("SNAPSHOT_TTL", 30*24*time.Hour),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		MongoURI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:       getEnv("MONGO_DB_NAME", "storefront"),
		MongoMaxPoolSize:  getInt("MONGO_MAX_POOL_SIZE", 20),
		MongoMinPoolSize:  getInt("MONGO_MIN_POOL_SIZE", 0),
		MongoConnTimeout:  getDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),

		CatalogBackend: getEnv("CATALOG_BACKEND", "static"),
		CatalogDBPath:  getEnv("CATALOG_DB_PATH", "./catalog.db"),

		KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "storefront-cart-activity"),

		SessionSecret:  getEnv("SESSION_SECRET", "dev-only-session-secret-change-me"),
		ToastTTL:       getDuration("TOAST_TTL", 3*time.Second),
		EntryDelay:     getDuration("ENTRY_DELAY", 2500*time.Millisecond),
		VisitorIdleTTL: getDuration("VISITOR_IDLE_TTL", 30*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("invalid duration %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		log.Printf("invalid integer %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
