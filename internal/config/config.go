package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime settings for the mock API server and the
// delivery sinks. Values come from environment variables with defaults
// that work for local development.
type Config struct {
	Server   ServerConfig
	Kafka    KafkaConfig
	InfluxDB InfluxDBConfig
	Postgres PostgresConfig
}

// ServerConfig holds mock API server settings.
type ServerConfig struct {
	Addr             string
	LogFilePath      string
	Seed             int64
	CacheHours       int
	CacheAnomalyProb float64
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	ShutdownTimeout  time.Duration
}

// KafkaConfig holds Kafka delivery settings.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// InfluxDBConfig holds InfluxDB delivery settings.
type InfluxDBConfig struct {
	URL    string
	Org    string
	Token  string
	Bucket string
}

// PostgresConfig holds Postgres seeding settings.
type PostgresConfig struct {
	DSN       string
	BatchSize int
}

// Load resolves configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:             getEnv("GRIDSYNTH_ADDR", ":3001"),
			LogFilePath:      getEnv("GRIDSYNTH_LOGFILE", ""),
			Seed:             getEnvInt64("GRIDSYNTH_SEED", time.Now().UnixNano()),
			CacheHours:       getEnvInt("GRIDSYNTH_CACHE_HOURS", 168),
			CacheAnomalyProb: getEnvFloat("GRIDSYNTH_CACHE_ANOMALY_PROB", 0.01),
			ReadTimeout:      getEnvDuration("GRIDSYNTH_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:     getEnvDuration("GRIDSYNTH_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout:  getEnvDuration("GRIDSYNTH_SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvStringSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:   getEnv("KAFKA_TOPIC", "smart-grid-readings"),
		},
		InfluxDB: InfluxDBConfig{
			URL:    getEnv("INFLUXDB_URL", "http://localhost:8086"),
			Org:    getEnv("INFLUXDB_ORG", "gridsynth"),
			Token:  getEnv("INFLUX_TOKEN", ""),
			Bucket: getEnv("INFLUXDB_BUCKET", "energy-mock"),
		},
		Postgres: PostgresConfig{
			DSN:       getEnv("PG_DSN", os.Getenv("DATABASE_URL")),
			BatchSize: getEnvInt("PG_BATCH_SIZE", 500),
		},
	}
}

// Helper functions to get environment variables with defaults

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists {
		return strings.Split(value, ",")
	}
	return defaultValue
}
