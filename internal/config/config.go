// Package config loads contactbook settings from defaults, an optional TOML
// file, a .env file, the environment and command-line flags, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/mmynk/contactbook/internal/auth"
)

const (
	EnvDBPath   = "CONTACTBOOK_DB"
	EnvLogLevel = "LOG_LEVEL"

	defaultDBPath       = "data.sqlite"
	defaultLogLevel     = "warn"
	defaultLogMaxSizeMB = 10
	defaultLogMaxFiles  = 5

	// Iteration counts below this are too fast to slow down guessing.
	minIterations = 10000
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Storage StorageConfig `toml:"storage"`
	Auth    AuthConfig    `toml:"auth"`
	Logging LoggingConfig `toml:"logging"`
	UI      UIConfig      `toml:"ui"`
}

type StorageConfig struct {
	Path string `toml:"path"`
}

type AuthConfig struct {
	Algorithm         string `toml:"algorithm"`
	Iterations        int    `toml:"iterations"`
	SaltBytes         int    `toml:"salt_bytes"`
	MinPasswordLength int    `toml:"min_password_length"`
}

type LoggingConfig struct {
	Level     string `toml:"level"`
	File      string `toml:"file"`
	MaxSizeMB int    `toml:"max_size_mb"`
	MaxFiles  int    `toml:"max_files"`
}

type UIConfig struct {
	Accessible bool `toml:"accessible"`
}

// HashParams converts the auth section into hashing parameters.
func (c AuthConfig) HashParams() auth.Params {
	return auth.Params{
		Algorithm:  c.Algorithm,
		Iterations: c.Iterations,
		SaltLen:    c.SaltBytes,
	}
}

type LoadOptions struct {
	// ConfigPath is an explicit config file; it must exist when set.
	ConfigPath string
	// EnvFile is read if present; missing files are ignored.
	EnvFile string
	// Env replaces the process environment when non-nil.
	Env   map[string]string
	Flags FlagOverrides
}

type FlagOverrides struct {
	DBPath     string
	Debug      bool
	Accessible bool
}

func DefaultConfig() Config {
	params := auth.DefaultParams()
	return Config{
		Storage: StorageConfig{
			Path: defaultDBPath,
		},
		Auth: AuthConfig{
			Algorithm:         params.Algorithm,
			Iterations:        params.Iterations,
			SaltBytes:         params.SaltLen,
			MinPasswordLength: auth.DefaultMinPasswordLength,
		},
		Logging: LoggingConfig{
			Level:     defaultLogLevel,
			MaxSizeMB: defaultLogMaxSizeMB,
			MaxFiles:  defaultLogMaxFiles,
		},
	}
}

func Load(opts LoadOptions) (Config, error) {
	cfg := DefaultConfig()

	configPath, explicit := opts.ConfigPath, opts.ConfigPath != ""
	if !explicit {
		configPath = DefaultConfigPath()
	}
	if err := loadFile(configPath, explicit, &cfg); err != nil {
		return Config{}, err
	}

	env, err := environment(opts)
	if err != nil {
		return Config{}, err
	}
	applyEnvOverrides(&cfg, env)
	applyFlagOverrides(&cfg, opts.Flags)

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultConfigPath is $XDG_CONFIG_HOME/contactbook/config.toml or "" if no
// user config directory is known.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "contactbook", "config.toml")
}

func loadFile(path string, required bool, cfg *Config) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
	}
	return nil
}

// environment merges the .env file with the real environment; real variables win.
func environment(opts LoadOptions) (map[string]string, error) {
	env := map[string]string{}

	if opts.EnvFile != "" {
		fromFile, err := godotenv.Read(opts.EnvFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read env file %s: %w", opts.EnvFile, err)
		}
		for k, v := range fromFile {
			env[k] = v
		}
	}

	if opts.Env != nil {
		for k, v := range opts.Env {
			env[k] = v
		}
		return env, nil
	}

	for _, key := range []string{EnvDBPath, EnvLogLevel} {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	return env, nil
}

func applyEnvOverrides(cfg *Config, env map[string]string) {
	if v := strings.TrimSpace(env[EnvDBPath]); v != "" {
		cfg.Storage.Path = v
	}
	if v := strings.TrimSpace(env[EnvLogLevel]); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
}

func applyFlagOverrides(cfg *Config, flags FlagOverrides) {
	if flags.DBPath != "" {
		cfg.Storage.Path = flags.DBPath
	}
	if flags.Debug {
		cfg.Logging.Level = "debug"
	}
	if flags.Accessible {
		cfg.UI.Accessible = true
	}
}

func validate(cfg Config) error {
	if strings.TrimSpace(cfg.Storage.Path) == "" {
		return fmt.Errorf("%w: storage.path must not be empty", ErrInvalidConfig)
	}

	if err := cfg.Auth.HashParams().Validate(); err != nil {
		return fmt.Errorf("%w: auth: %v", ErrInvalidConfig, err)
	}
	if cfg.Auth.Iterations < minIterations {
		return fmt.Errorf("%w: auth.iterations must be >= %d", ErrInvalidConfig, minIterations)
	}
	if cfg.Auth.MinPasswordLength < 1 {
		return fmt.Errorf("%w: auth.min_password_length must be > 0", ErrInvalidConfig)
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level %q", ErrInvalidConfig, cfg.Logging.Level)
	}
	if cfg.Logging.MaxSizeMB < 0 || cfg.Logging.MaxFiles < 0 {
		return fmt.Errorf("%w: logging rotation limits must not be negative", ErrInvalidConfig)
	}

	return nil
}
