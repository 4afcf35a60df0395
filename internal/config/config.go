package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port  string
	DB    DBConfig
	Shift ShiftConfig

	JWTSecret string

	BackupDir  string
	BackupCron string

	FingerprintURL string
}

type DBConfig struct {
	Path    string
	LogMode bool
}

// ShiftConfig drives the status classifier: a check-in later than
// StartHour:GraceMinutes is recorded as late.
type ShiftConfig struct {
	StartHour    int
	GraceMinutes int
}

func Load() Config {
	cfg := Config{
		Port: getEnv("PORT", "3000"),
		DB: DBConfig{
			Path:    getEnv("DB_PATH", "attendance.db"),
			LogMode: getEnvAsBool("DB_LOG_MODE", false),
		},
		Shift: ShiftConfig{
			StartHour:    getEnvAsInt("SHIFT_START_HOUR", 8),
			GraceMinutes: getEnvAsInt("GRACE_MINUTES", 15),
		},
		JWTSecret:      getEnv("JWT_SECRET", "change-me"),
		BackupDir:      getEnv("BACKUP_DIR", "backups"),
		BackupCron:     getEnv("BACKUP_CRON", ""),
		FingerprintURL: getEnv("FINGERPRINT_URL", "http://localhost:5500"),
	}

	return cfg
}

func getEnv(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	return value
}

func getEnvAsInt(key string, def int) int {
	value := os.Getenv(key)
	if value == "" {
		return def
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("invalid integer for %s, fallback to %d", key, def)
		return def
	}
	return parsed
}

func getEnvAsBool(key string, def bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return def
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("invalid boolean for %s, fallback to %t", key, def)
		return def
	}
	return parsed
}
