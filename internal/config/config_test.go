package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lexiflash/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:                  ":8080",
		DBPath:                "test.db",
		LogLevel:              "INFO",
		LogFormat:             "text",
		WorkerCount:           2,
		QueueSize:             32,
		DueBatchLimit:         20,
		RequestTimeout:        15 * time.Second,
		ReminderCheckInterval: 30 * time.Minute,
		ReminderMinInterval:   4 * time.Hour,
		MasteredMinRepetition: 5,
		MasteredMinEase:       2.5,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_InvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "unknown log level",
			mutate: func(c *config.Config) { c.LogLevel = "TRACE" },
			want:   "LOG_LEVEL must be one of",
		},
		{
			name:   "unknown log format",
			mutate: func(c *config.Config) { c.LogFormat = "xml" },
			want:   "LOG_FORMAT must be one of",
		},
		{
			name:   "no workers",
			mutate: func(c *config.Config) { c.WorkerCount = 0 },
			want:   "WORKER_COUNT must be at least 1",
		},
		{
			name:   "too many workers",
			mutate: func(c *config.Config) { c.WorkerCount = 65 },
			want:   "WORKER_COUNT must be at most 64",
		},
		{
			name:   "due batch too large",
			mutate: func(c *config.Config) { c.DueBatchLimit = 501 },
			want:   "DUE_BATCH_LIMIT must be at most 500",
		},
		{
			name:   "reminder check too frequent",
			mutate: func(c *config.Config) { c.ReminderCheckInterval = time.Second },
			want:   "REMINDER_CHECK_INTERVAL must be at least 1m",
		},
		{
			name:   "mastery ease below SM-2 floor",
			mutate: func(c *config.Config) { c.MasteredMinEase = 1.0 },
			want:   "MASTERED_MIN_EASE must be at least 1.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_ReportsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""
	cfg.QueueSize = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR")
	assert.Contains(t, err.Error(), "QUEUE_SIZE")
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"ADDR", "DB_PATH", "LOG_LEVEL", "WORKER_COUNT", "REMINDER_MIN_INTERVAL", "MASTERED_MIN_EASE"} {
		t.Setenv(k, "")
	}

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:lexiflash.db", cfg.DBPath)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 2, cfg.WorkerCount)
	assert.Equal(t, 4*time.Hour, cfg.ReminderMinInterval)
	assert.Equal(t, 2.5, cfg.MasteredMinEase)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("WORKER_COUNT", "4")
	t.Setenv("REMINDER_MIN_INTERVAL", "90m")
	t.Setenv("MASTERED_MIN_REPETITION", "7")
	t.Setenv("MASTERED_MIN_EASE", "2.7")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, 4, cfg.WorkerCount)
	assert.Equal(t, 90*time.Minute, cfg.ReminderMinInterval)
	assert.Equal(t, 7, cfg.MasteredMinRepetition)
	assert.Equal(t, 2.7, cfg.MasteredMinEase)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_InvalidNumberFallsBack(t *testing.T) {
	t.Setenv("WORKER_COUNT", "many")
	t.Setenv("REQUEST_TIMEOUT", "soon")

	cfg := config.Load()

	assert.Equal(t, 2, cfg.WorkerCount)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}
