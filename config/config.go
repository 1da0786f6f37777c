package config

import (
	"os"
	"strconv"
	"time"
)

const (
	DefaultMaxFileSize   = 100 << 20 // 100 MB
	DefaultMaxBatchFiles = 100
	DefaultUploadTimeout = 5 * time.Minute
)

type Config struct {
	ListenAddr  string
	Env         string
	FrontendURL string

	UploadsRoot string
	VideoPath   string

	MaxFileSize   int64
	MaxBatchFiles int
	UploadTimeout time.Duration

	CorsOrigins string
	RedisHost   string

	Debug   bool
	Tracing bool
}

func LoadConfig() Config {
	return Config{
		ListenAddr:  getEnv("LISTEN_ADDR", ":8080"),
		Env:         getEnv("ENV", "DEV"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		UploadsRoot: getEnv("UPLOADS_ROOT", "./uploads"),
		VideoPath:   getEnv("VIDEO_PATH", "./media/video.mp4"),

		MaxFileSize:   getEnvInt64("MAX_FILE_SIZE", DefaultMaxFileSize),
		MaxBatchFiles: getEnvInt("MAX_BATCH_FILES", DefaultMaxBatchFiles),
		UploadTimeout: getEnvDuration("UPLOAD_TIMEOUT", DefaultUploadTimeout),

		CorsOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		RedisHost:   getEnv("REDIS_HOST", ""),

		Debug:   getEnvBool("DEBUG", false),
		Tracing: getEnvBool("TRACING", false),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
