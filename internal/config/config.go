// Package config resolves the configuration directory, the tasks file and CLI settings.
//
// Values are layered, lowest precedence first: built-in defaults, the
// config.env file in the configuration directory, TASK_CLI_* environment
// variables, and finally command-line flags applied by the dispatcher.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName is the application directory name.
	AppName = "task-cli"

	// TasksFile is the default tasks filename inside the config directory.
	TasksFile = "tasks.json"

	// EnvFile is the optional dotenv file read from the config directory.
	EnvFile = "config.env"

	// EnvPrefix prefixes every environment variable the CLI reads.
	EnvPrefix = "TASK_CLI_"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `koanf:"dir"`

	// File overrides the tasks file location. Empty means Dir/tasks.json.
	File string `koanf:"file"`

	// Debug enables debug logging.
	Debug bool `koanf:"debug"`

	// Quiet suppresses informational output.
	Quiet bool `koanf:"quiet"`

	// Color enables styled list output. Set by the caller after terminal detection.
	Color bool `koanf:"-"`
}

// New loads a Config. A non-empty configDir takes precedence over every
// other source for the directory; if empty, TASK_CLI_DIR or the XDG default is used.
func New(configDir string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Config{Dir: DefaultConfigDir()}, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if err := loadEnv(k); err != nil {
		return nil, err
	}
	if configDir != "" {
		if err := k.Set("dir", configDir); err != nil {
			return nil, fmt.Errorf("failed to set config dir: %w", err)
		}
	}
	if err := loadEnvFile(k, EnvFilePath(k.String("dir"))); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return &cfg, nil
}

// envKey maps TASK_CLI_QUIET to "quiet". Unrelated variables map to "" and are skipped.
func envKey(name string) string {
	if !strings.HasPrefix(name, EnvPrefix) {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
}

func loadEnv(k *koanf.Koanf) error {
	err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), value
		},
	}), nil)
	if err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}
	return nil
}

// loadEnvFile applies values from a dotenv file. Keys already present in the
// process environment win, and the file cannot move the config directory.
func loadEnvFile(k *koanf.Koanf, path string) error {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	for name, value := range values {
		key := envKey(name)
		if key == "" || key == "dir" {
			continue
		}
		if _, set := os.LookupEnv(name); set {
			continue
		}
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("failed to apply %s from %s: %w", name, path, err)
		}
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// TasksPath returns the path of the tasks file.
func (c *Config) TasksPath() string {
	if c.File != "" {
		return c.File
	}
	return filepath.Join(c.Dir, TasksFile)
}

// EnvFilePath returns the path of the optional dotenv file in dir.
func EnvFilePath(dir string) string {
	return filepath.Join(dir, EnvFile)
}
