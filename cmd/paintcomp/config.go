package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// config holds settings read from the environment. A .env file in the
// working directory is loaded first if present; variables already set in
// the environment win.
type config struct {
	logLevel   slog.Level
	workers    int
	background string
}

const (
	envLog        = "PAINTCORE_LOG"
	envWorkers    = "PAINTCORE_WORKERS"
	envBackground = "PAINTCORE_BACKGROUND"
)

func loadConfig() (config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config{}, fmt.Errorf("load .env: %w", err)
	}
	return configFromEnv(os.Getenv)
}

func configFromEnv(getenv func(string) string) (config, error) {
	cfg := config{
		logLevel:   slog.LevelWarn,
		background: "#ffffff",
	}

	if v := getenv(envLog); v != "" {
		if err := cfg.logLevel.UnmarshalText([]byte(strings.TrimSpace(v))); err != nil {
			return config{}, fmt.Errorf("%s: %w", envLog, err)
		}
	}
	if v := getenv(envWorkers); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 0 {
			return config{}, fmt.Errorf("%s: invalid worker count %q", envWorkers, v)
		}
		cfg.workers = n
	}
	if v := getenv(envBackground); v != "" {
		cfg.background = strings.TrimSpace(v)
	}
	return cfg, nil
}
