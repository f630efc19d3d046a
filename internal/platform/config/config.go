package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr string
	// RequestTimeout bounds one whole lookup end to end. Sized to cover a
	// cold-cache worst case: one census fetch plus two analysis calls.
	RequestTimeout time.Duration
}

// RedisConfig configures the optional Redis cache backend.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig configures the optional PostgreSQL cache backend.
type PostgresConfig struct {
	URL string
}

// CensusConfig selects the demographic data source endpoint and its
// statistical vintage. One vintage per deployment so every ZIP code is
// compared against the same snapshot year.
type CensusConfig struct {
	BaseURL string
	Vintage string
}

// GeminiConfig configures the generative analysis service. APIKey missing is
// a startup-time fatal condition.
type GeminiConfig struct {
	APIKey     string
	Model      string
	MatchCount int
}

// AuditConfig configures the optional Kafka audit trail. Empty brokers
// disable it.
type AuditConfig struct {
	Brokers []string
	Topic   string
}

// Config is the process-level configuration assembled from the environment.
type Config struct {
	Server   Server
	Redis    RedisConfig
	Postgres PostgresConfig
	Census   CensusConfig
	Gemini   GeminiConfig
	Audit    AuditConfig
	LogLevel string
}

func intFromEnv(key string) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0
	}
	return v
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	addr := os.Getenv("DOPPEL_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	requestTimeout := 2 * time.Minute
	if v := os.Getenv("DOPPEL_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			requestTimeout = d
		}
	}

	var brokers []string
	if v := os.Getenv("AUDIT_KAFKA_BROKERS"); v != "" {
		brokers = strings.Split(v, ",")
	}
	topic := os.Getenv("AUDIT_KAFKA_TOPIC")
	if topic == "" {
		topic = "doppel.lookups"
	}

	return Config{
		Server: Server{
			Addr:           addr,
			RequestTimeout: requestTimeout,
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Postgres: PostgresConfig{
			URL: os.Getenv("POSTGRES_URL"),
		},
		Census: CensusConfig{
			BaseURL: os.Getenv("CENSUS_BASE_URL"),
			Vintage: os.Getenv("CENSUS_VINTAGE"),
		},
		Gemini: GeminiConfig{
			APIKey:     os.Getenv("GEMINI_API_KEY"),
			Model:      os.Getenv("GEMINI_MODEL"),
			MatchCount: intFromEnv("GEMINI_MATCH_COUNT"),
		},
		Audit: AuditConfig{
			Brokers: brokers,
			Topic:   topic,
		},
		LogLevel: os.Getenv("LOG_LEVEL"),
	}
}
