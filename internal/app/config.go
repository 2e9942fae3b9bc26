package app

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Env, Port string

	DataDir   string
	PublicDir string

	StoreDriver string
	DBDSN       string

	CORSOrigins   []string
	MaxUploadMB   int64
	ImageMaxWidth uint
	LogLevel      slog.Level
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		slog.Warn("invalid number in environment, using default", "key", k, "value", v, "default", d)
		return d
	}
	return n
}

func LoadConfig() Config {
	cfg := Config{
		Env:           getEnv("APP_ENV", "dev"),
		Port:          getEnv("APP_PORT", "3000"),
		DataDir:       getEnv("DATA_DIR", "./data"),
		PublicDir:     getEnv("PUBLIC_DIR", "./public"),
		StoreDriver:   getEnv("STORE_DRIVER", "json"),
		DBDSN:         os.Getenv("DB_DSN"),
		MaxUploadMB:   int64(getInt("MAX_UPLOAD_MB", 10)),
		ImageMaxWidth: uint(getInt("IMAGE_MAX_WIDTH", 800)),
	}
	for _, o := range strings.Split(getEnv("CORS_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		slog.Warn("invalid LOG_LEVEL, using info", "value", os.Getenv("LOG_LEVEL"))
		cfg.LogLevel = slog.LevelInfo
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("invalid APP_PORT, falling back to default", "APP_PORT", cfg.Port)
		cfg.Port = "3000"
	}
	return cfg
}
