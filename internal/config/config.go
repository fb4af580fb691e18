// Package config loads tool configuration from an optional gemba.yaml and
// GEMBA_* environment variables. The zero configuration works out of the box.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Backend names a storage adapter implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

// Config is the resolved tool configuration.
type Config struct {
	// DataDir holds the persisted state (JSON documents or the SQLite file).
	DataDir string `mapstructure:"data_dir"`
	// Backend selects the storage implementation: file or sqlite.
	Backend Backend `mapstructure:"backend"`
	// SessionSecret signs persisted session tokens. Changing it logs
	// everyone out, nothing worse.
	SessionSecret string `mapstructure:"session_secret"`
	// BcryptCost tunes credential hashing.
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

// SQLitePath is the database location for the sqlite backend.
func (c Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "gemba.db")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gemba"
	}
	return filepath.Join(home, ".gemba")
}

// Load reads configuration from the given file (optional; empty means search
// the working directory), then applies environment overrides.
func Load(file string) (Config, error) {
	v := viper.New()
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("backend", string(BackendFile))
	v.SetDefault("session_secret", "gemba-local")
	v.SetDefault("bcrypt_cost", bcrypt.DefaultCost)

	v.SetEnvPrefix("GEMBA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", file, err)
		}
	} else {
		v.SetConfigName("gemba")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		var notFound viper.ConfigFileNotFoundError
		if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if cfg.Backend != BackendFile && cfg.Backend != BackendSQLite {
		return Config{}, fmt.Errorf("config: unknown backend %q", cfg.Backend)
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("config: bcrypt cost %d out of range", cfg.BcryptCost)
	}
	return cfg, nil
}
