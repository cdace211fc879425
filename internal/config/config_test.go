package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "MONGO_URI", "DB_NAME", "TOKEN_EXPIRY", "CORS_ORIGINS", "NOTIFICATION_QUEUE_SIZE", "NOTIFICATION_WORKERS"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "streamify", cfg.DBName)
	assert.Equal(t, 24*time.Hour, cfg.TokenExpiry)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.Equal(t, 1024, cfg.NotificationQueueSize)
	assert.Equal(t, 4, cfg.NotificationWorkers)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("TOKEN_EXPIRY", "2h")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("NOTIFICATION_QUEUE_SIZE", "0")
	t.Setenv("REMINDER_SCHEDULE", "")

	cfg := LoadConfig()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.TokenExpiry)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 0, cfg.NotificationQueueSize)
	assert.Empty(t, cfg.ReminderSchedule)
}

func TestLoadConfigRejectsGarbage(t *testing.T) {
	t.Setenv("NOTIFICATION_WORKERS", "many")
	t.Setenv("REQUEST_TIMEOUT", "-5s")

	cfg := LoadConfig()

	assert.Equal(t, 4, cfg.NotificationWorkers)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}
