package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr                  string        `validate:"required" env:"ADDR"`
	DBPath                string        `validate:"required" env:"DB_PATH"`
	LogLevel              string        `validate:"oneof=DEBUG INFO WARN WARNING ERROR" env:"LOG_LEVEL"`
	LogFormat             string        `validate:"oneof=text json" env:"LOG_FORMAT"`
	WorkerCount           int           `validate:"min=1,max=64" env:"WORKER_COUNT"`
	QueueSize             int           `validate:"min=1" env:"QUEUE_SIZE"`
	DueBatchLimit         int           `validate:"min=1,max=500" env:"DUE_BATCH_LIMIT"`
	RequestTimeout        time.Duration `validate:"min=1s" env:"REQUEST_TIMEOUT"`
	ReminderCheckInterval time.Duration `validate:"min=1m" env:"REMINDER_CHECK_INTERVAL"`
	ReminderMinInterval   time.Duration `validate:"min=0" env:"REMINDER_MIN_INTERVAL"`
	TelegramBotToken      string        `env:"TELEGRAM_BOT_TOKEN"`
	MasteredMinRepetition int           `validate:"min=1" env:"MASTERED_MIN_REPETITION"`
	MasteredMinEase       float64       `validate:"min=1.3" env:"MASTERED_MIN_EASE"`
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                  envOr("ADDR", ":8080"),
		DBPath:                envOr("DB_PATH", "file:lexiflash.db"),
		LogLevel:              strings.ToUpper(envOr("LOG_LEVEL", "INFO")),
		LogFormat:             strings.ToLower(envOr("LOG_FORMAT", "text")),
		WorkerCount:           envIntOr("WORKER_COUNT", 2),
		QueueSize:             envIntOr("QUEUE_SIZE", 32),
		DueBatchLimit:         envIntOr("DUE_BATCH_LIMIT", 20),
		RequestTimeout:        envDurationOr("REQUEST_TIMEOUT", 15*time.Second),
		ReminderCheckInterval: envDurationOr("REMINDER_CHECK_INTERVAL", 30*time.Minute),
		ReminderMinInterval:   envDurationOr("REMINDER_MIN_INTERVAL", 4*time.Hour),
		TelegramBotToken:      os.Getenv("TELEGRAM_BOT_TOKEN"),
		MasteredMinRepetition: envIntOr("MASTERED_MIN_REPETITION", 5),
		MasteredMinEase:       envFloatOr("MASTERED_MIN_EASE", 2.5),
	}
}

var validate = newValidator()

// newValidator reports fields by their environment key.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("env")
	})
	return v
}

// Validate reports every invalid setting, named by its environment key.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	key := fe.Field()
	switch fe.Tag() {
	case "required":
		return key + " cannot be empty"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", key, fe.Param(), fe.Value())
	case "min":
		return fmt.Sprintf("%s must be at least %s, got %v", key, fe.Param(), fe.Value())
	case "max":
		return fmt.Sprintf("%s must be at most %s, got %v", key, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", key, fe.Tag())
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %g", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
