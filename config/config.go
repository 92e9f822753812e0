package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// R2Config holds Cloudflare R2 credentials for exporting standings snapshots.
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicBaseURL   string
}

// Enabled reports whether any R2 setting was provided.
func (c R2Config) Enabled() bool {
	return c != R2Config{}
}

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL        string
	DBConnectTimeout   time.Duration
	ServerPort         int
	LogLevel           slog.Level
	CORSAllowedOrigins []string
	R2                 R2Config
}

// Load загружает конфигурацию из переменных окружения.
// A .env file is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) (*Config, error) {
	dbURL := getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, errors.New("DATABASE_URL environment variable is not set")
	}

	portStr := getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	timeout := 5 * time.Second
	if v := getenv("DB_CONNECT_TIMEOUT"); v != "" {
		timeout, err = time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_CONNECT_TIMEOUT environment variable: %w", err)
		}
	}

	var level slog.Level
	if v := getenv("LOG_LEVEL"); v != "" {
		if err := level.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL environment variable: %w", err)
		}
	}

	origins := []string{"*"}
	if v := getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		origins = origins[:0]
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	r2 := R2Config{
		AccountID:       getenv("R2_ACCOUNT_ID"),
		AccessKeyID:     getenv("R2_ACCESS_KEY_ID"),
		SecretAccessKey: getenv("R2_SECRET_ACCESS_KEY"),
		BucketName:      getenv("R2_BUCKET_NAME"),
		PublicBaseURL:   getenv("R2_PUBLIC_BASE_URL"),
	}
	if r2.Enabled() && (r2.AccountID == "" || r2.AccessKeyID == "" || r2.SecretAccessKey == "" ||
		r2.BucketName == "" || r2.PublicBaseURL == "") {
		return nil, errors.New("R2 configuration is partial: set all R2_* variables or none")
	}

	return &Config{
		DatabaseURL:        dbURL,
		DBConnectTimeout:   timeout,
		ServerPort:         port,
		LogLevel:           level,
		CORSAllowedOrigins: origins,
		R2:                 r2,
	}, nil
}
