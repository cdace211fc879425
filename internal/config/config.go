package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all runtime settings of the API server.
type Config struct {
	Port           string
	MongoURI       string
	DBName         string
	JWTSecret      string
	TokenExpiry    time.Duration
	CORSOrigins    []string
	LogLevel       string
	RequestTimeout time.Duration

	// Notification outbox. A queue size of 0 delivers synchronously.
	NotificationQueueSize int
	NotificationWorkers   int

	// Cron spec for the watch-later reminder sweep; empty disables it.
	ReminderSchedule string
}

// LoadConfig reads the .env file (if present) and the process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using process environment")
	}

	return &Config{
		Port:                  getEnv("PORT", "8080"),
		MongoURI:              getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:                getEnv("DB_NAME", "streamify"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		TokenExpiry:           getDuration("TOKEN_EXPIRY", 24*time.Hour),
		CORSOrigins:           getList("CORS_ORIGINS", []string{"http://localhost:5173"}),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		RequestTimeout:        getDuration("REQUEST_TIMEOUT", 10*time.Second),
		NotificationQueueSize: getInt("NOTIFICATION_QUEUE_SIZE", 1024),
		NotificationWorkers:   getInt("NOTIFICATION_WORKERS", 4),
		ReminderSchedule:      getEnvAllowEmpty("REMINDER_SCHEDULE", "@every 5m"),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// getEnvAllowEmpty distinguishes an unset variable from one explicitly set to "".
func getEnvAllowEmpty(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		logrus.WithField("key", key).Warnf("Invalid integer %q, using %d", raw, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		logrus.WithField("key", key).Warnf("Invalid duration %q, using %s", raw, fallback)
		return fallback
	}
	return d
}

func getList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
