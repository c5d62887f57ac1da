package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file configuration.
const (
	EnvRankingURL = "COMBOJUMP_RANKING_URL"
	EnvDBPath     = "COMBOJUMP_DB"
)

// LoadJumper loads the game configuration.
// Search order: customPath -> ~/.combojump/config.yaml -> ./configs/jumper.yaml -> embedded default
func LoadJumper(customPath string) (JumperConfig, error) {
	// Files only override what they mention.
	cfg := DefaultJumperConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := UserPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, cfg.Validate()
			}
			cfg = DefaultJumperConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "jumper.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, cfg.Validate()
		}
		cfg = DefaultJumperConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultJumperYAML, &cfg); err != nil {
		return DefaultJumperConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// UserPath returns a path under ~/.combojump, or empty if home is unavailable.
func UserPath(elem ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{home, ".combojump"}, elem...)...)
}

// LoadEnv reads KEY=VALUE pairs from the given dotenv files (".env" when none
// are given) into the process environment. Missing files are not an error and
// variables already set in the environment win.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides configuration from the environment.
func ApplyEnv(cfg *JumperConfig) {
	if url, ok := os.LookupEnv(EnvRankingURL); ok {
		cfg.Ranking.URL = url
	}
}
