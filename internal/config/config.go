// Package config layers each tool's configuration: built-in defaults,
// then an optional YAML file from the user's config directory, then
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/mitchellh/go-homedir"
)

const userDirSuffix = ".config/mediakit"

var validate = validator.New()

// DefaultPath returns the conventional config file location for the
// named tool (e.g. ~/.config/mediakit/movconv.yaml).
func DefaultPath(tool string) (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("cannot determine user's home directory: %w", err)
	}

	return filepath.Join(home, userDirSuffix, tool+".yaml"), nil
}

// LoadTool populates cfg for the named tool. A missing config file is
// not an error; env vars and struct defaults still apply. The loaded
// struct is validated before being returned.
func LoadTool(tool string, cfg interface{}) error {
	path, err := DefaultPath(tool)
	if err != nil {
		return err
	}

	return LoadToolFrom(path, cfg)
}

// LoadToolFrom behaves as LoadTool but reads the given file path
// directly, primarily so tests (and the --config flag) can point at an
// explicit file.
func LoadToolFrom(path string, cfg interface{}) error {
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return fmt.Errorf("failed to load configuration from %s: %w", path, err)
		}
	} else if errors.Is(err, os.ErrNotExist) {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return fmt.Errorf("failed to load configuration from environment: %w", err)
		}
	} else {
		return fmt.Errorf("cannot access configuration file %s: %w", path, err)
	}

	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	return nil
}
