// Package config loads the optional per-project projdb.yaml file.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ProjectConfig carries per-project build settings. Command-line flags
// and environment variables take precedence over values set here.
type ProjectConfig struct {
	// SQLDir overrides the directory holding the destination schema
	// script and receiving the generated dump files.
	SQLDir string `yaml:"sql_dir,omitempty"`

	// KeepTemp retains the temporary source store after the run.
	KeepTemp bool `yaml:"keep_temp,omitempty"`
}

// ConfigFileName is the expected name of the project config file.
const ConfigFileName = "projdb.yaml"

// Load reads ConfigFileName from the given source directory.
func Load(sourcePath string) (*ProjectConfig, error) {
	configPath := filepath.Join(sourcePath, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
