package config

import (
	"errors"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

// defaultDayAnchorMinutes places the day boundary at 04:00 local time.
const defaultDayAnchorMinutes = 240

type Config struct {
	Env              string
	LogLevel         string
	Port             string
	DBType           string
	DBDSN            string
	FileEvents       string
	FileSettings     string
	FileUsers        string
	DayAnchorMinutes int
	AuthServiceURL   string
	AuthToken        string
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		_ = godotenv.Load()
		cfg = &Config{
			Env:              getEnv("APP_ENV", "development"),
			LogLevel:         getEnv("LOG_LEVEL", "info"),
			Port:             getEnv("PORT", "8088"),
			DBType:           getEnv("STORAGE_BACKEND", "file"),
			DBDSN:            getEnv("POSTGRES_DSN", ""),
			FileEvents:       getEnv("EVENTS_FILE", "data/events.json"),
			FileSettings:     getEnv("SETTINGS_FILE", "data/settings.json"),
			FileUsers:        getEnv("USERS_FILE", "data/users.json"),
			DayAnchorMinutes: getEnvInt("DAY_ANCHOR_MINUTES", defaultDayAnchorMinutes),
			AuthServiceURL:   getEnv("AUTH_SERVICE_URL", ""),
			AuthToken:        getEnv("AUTH_TOKEN", "MOCK-TOKEN"),
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	if c.DBType == "postgres" && c.DBDSN == "" {
		return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
	}
	if c.DBType == "file" && (c.FileEvents == "" || c.FileSettings == "") {
		return errors.New("File storage requires EVENTS_FILE and SETTINGS_FILE to be set")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.Env != "development" && c.AuthServiceURL == "" {
		return errors.New("AUTH_SERVICE_URL is required outside development")
	}
	if c.DayAnchorMinutes < 0 || c.DayAnchorMinutes >= 24*60 {
		return errors.New("DAY_ANCHOR_MINUTES must be within [0, 1440)")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
