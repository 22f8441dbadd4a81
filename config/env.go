package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// envValue parses key with parse. Unset, blank and unparsable values yield fallback.
func envValue[T any](key string, fallback T, parse func(string) (T, error)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := parse(raw)
	if err != nil {
		return fallback
	}
	return v
}

func GetEnv(key, fallback string) string {
	return envValue(key, fallback, func(s string) (string, error) { return s, nil })
}

func GetEnvInt(key string, fallback int) int {
	return envValue(key, fallback, strconv.Atoi)
}

func GetEnvBool(key string, fallback bool) bool {
	return envValue(key, fallback, strconv.ParseBool)
}

// GetEnvDuration reads values like "500ms" or "1m30s".
func GetEnvDuration(key string, fallback time.Duration) time.Duration {
	return envValue(key, fallback, time.ParseDuration)
}

// LoadEnvFiles reads dir/.env without touching variables already set, then
// dir/.env.local overriding everything. Missing files are skipped.
func LoadEnvFiles(dir string) error {
	files := []struct {
		name string
		load func(...string) error
	}{
		{".env", godotenv.Load},
		{".env.local", godotenv.Overload},
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := f.load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}
