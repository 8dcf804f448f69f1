package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/foodbridge/dashboard/internal/models"
)

type Config struct {
	ProjectID         string
	CredentialsFile   string
	Port              string
	PageSize          int
	Collections       []models.Collection
	BroadcastInterval time.Duration
	LogLevel          slog.Level
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; real environment variables win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		return nil, fmt.Errorf("GOOGLE_CLOUD_PROJECT environment variable is required but not set")
	}

	credentialsFile := os.Getenv("FIRESTORE_CREDENTIALS_FILE")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		slog.Info("Defaulting to port", "port", port)
	}

	pageSize := 5
	if v := os.Getenv("PAGE_SIZE"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PAGE_SIZE %q: %w", v, err)
		}
		if parsed < 1 {
			return nil, fmt.Errorf("invalid PAGE_SIZE %q: must be at least 1", v)
		}
		pageSize = parsed
	}

	collections := models.DefaultCollections
	if v := os.Getenv("COLLECTIONS"); v != "" {
		parsed, err := models.ParseCollections(v)
		if err != nil {
			return nil, fmt.Errorf("invalid COLLECTIONS %q: %w", v, err)
		}
		collections = parsed
	}

	broadcastIntervalStr := os.Getenv("BROADCAST_INTERVAL")
	if broadcastIntervalStr == "" {
		broadcastIntervalStr = "1s"
	}
	broadcastInterval, err := time.ParseDuration(broadcastIntervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid BROADCAST_INTERVAL %q: %w", broadcastIntervalStr, err)
	}

	logLevel := slog.LevelInfo
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if err := logLevel.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", v, err)
		}
	}

	return &Config{
		ProjectID:         projectID,
		CredentialsFile:   credentialsFile,
		Port:              port,
		PageSize:          pageSize,
		Collections:       collections,
		BroadcastInterval: broadcastInterval,
		LogLevel:          logLevel,
	}, nil
}
