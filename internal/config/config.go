package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr         string
	DataPath           string
	MaxUploadSizeBytes int64
	HistoryLimit       int
	ConvertWorkers     int
	SwatchSize         int
	ResendBaseURL      string
	ResendAPIKey       string
	MailFrom           string
	MailTimeoutSec     int
	Debug              bool
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ListenAddr:         getEnv("LISTEN_ADDR", ":8080"),
		DataPath:           getEnv("DATA_PATH", "./data/state.json"),
		MaxUploadSizeBytes: getEnvInt64("MAX_UPLOAD_SIZE_BYTES", 8*1024*1024),
		HistoryLimit:       getEnvInt("HISTORY_LIMIT", 200),
		ConvertWorkers:     getEnvInt("CONVERT_WORKERS", 4),
		SwatchSize:         getEnvInt("SWATCH_SIZE", 96),
		ResendBaseURL:      strings.TrimRight(getEnv("RESEND_BASE_URL", "https://api.resend.com"), "/"),
		ResendAPIKey:       getEnv("RESEND_API_KEY", ""),
		MailFrom:           getEnv("MAIL_FROM", "cxf-converter <no-reply@cxf-converter.app>"),
		MailTimeoutSec:     getEnvInt("MAIL_TIMEOUT_SEC", 10),
		Debug:              getEnvBool("DEBUG", false),
	}

	if cfg.MaxUploadSizeBytes <= 0 {
		return Config{}, errors.New("max upload size bytes must be > 0")
	}
	if cfg.HistoryLimit <= 0 {
		return Config{}, errors.New("history limit must be > 0")
	}
	if cfg.ConvertWorkers <= 0 {
		return Config{}, errors.New("convert workers must be > 0")
	}
	if cfg.SwatchSize <= 0 || cfg.SwatchSize > 1024 {
		return Config{}, errors.New("swatch size must be in 1..1024")
	}
	if cfg.MailTimeoutSec <= 0 {
		return Config{}, errors.New("mail timeout sec must be > 0")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
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

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
