// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets finds the ADS API token. Tokens may come from an
// explicit value, a .secrets/ directory of key files (the filename is the
// key name and the trimmed contents the value), the environment (with an
// optional .env file), or the ~/.ads/dev_key file used by other ADS tools.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

// TokenKey is the .secrets/ filename holding the ADS token.
const TokenKey = "ads-api-token"

// ErrNoToken is returned when no source provides an ADS token.
var ErrNoToken = errors.New("no ADS API token found: set ADS_API_TOKEN, add .secrets/ads-api-token, or pass --token")

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files are logged and skipped.
func Load(dir string, logger *zap.Logger) (map[string]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("could not read secret", zap.String("name", name), zap.Error(err))
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// adsEnv holds the environment variables ADS tooling conventionally reads.
type adsEnv struct {
	APIToken string `envconfig:"ADS_API_TOKEN"`
	DevKey   string `envconfig:"ADS_DEV_KEY"`
}

// Sources lists where ResolveToken looks. Empty fields are skipped.
type Sources struct {
	// Explicit is a token passed on the command line or in config.
	Explicit string

	// SecretsDir is a directory of key files (e.g. ".secrets/").
	SecretsDir string

	// EnvFile is a dotenv file loaded into the environment if it exists.
	EnvFile string

	// DevKeyFile is a file containing only the token (e.g. ~/.ads/dev_key).
	DevKeyFile string
}

// DefaultSources returns the lookup chain used by the CLI.
func DefaultSources(explicit string) Sources {
	src := Sources{
		Explicit:   explicit,
		SecretsDir: ".secrets",
		EnvFile:    ".env",
	}
	if home, err := os.UserHomeDir(); err == nil {
		src.DevKeyFile = filepath.Join(home, ".ads", "dev_key")
	}
	return src
}

// ResolveToken returns the first token found, in order: explicit value,
// secrets directory, environment (ADS_API_TOKEN then ADS_DEV_KEY), dev key
// file. It returns ErrNoToken when every source is empty.
func ResolveToken(src Sources, logger *zap.Logger) (string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if t := strings.TrimSpace(src.Explicit); t != "" {
		logger.Debug("using ADS token", zap.String("source", "explicit"))
		return t, nil
	}

	if src.SecretsDir != "" {
		s, err := Load(src.SecretsDir, logger)
		if err != nil {
			return "", err
		}
		if t, ok := s[TokenKey]; ok {
			logger.Debug("using ADS token", zap.String("source", filepath.Join(src.SecretsDir, TokenKey)))
			return t, nil
		}
	}

	if src.EnvFile != "" {
		// godotenv never overrides variables already set.
		if err := godotenv.Load(src.EnvFile); err != nil && !os.IsNotExist(err) {
			return "", fmt.Errorf("loading %s: %w", src.EnvFile, err)
		}
	}
	var env adsEnv
	if err := envconfig.Process("", &env); err != nil {
		return "", fmt.Errorf("reading ADS environment: %w", err)
	}
	if t := strings.TrimSpace(env.APIToken); t != "" {
		logger.Debug("using ADS token", zap.String("source", "ADS_API_TOKEN"))
		return t, nil
	}
	if t := strings.TrimSpace(env.DevKey); t != "" {
		logger.Debug("using ADS token", zap.String("source", "ADS_DEV_KEY"))
		return t, nil
	}

	if src.DevKeyFile != "" {
		data, err := os.ReadFile(src.DevKeyFile)
		if err == nil {
			if t := strings.TrimSpace(string(data)); t != "" {
				logger.Debug("using ADS token", zap.String("source", src.DevKeyFile))
				return t, nil
			}
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("reading %s: %w", src.DevKeyFile, err)
		}
	}

	return "", ErrNoToken
}
