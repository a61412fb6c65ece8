package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

const fileName = "config.yaml"

// Load builds the effective config: defaults, then the config file, then flags.
// The file is f.ConfigPath if set, otherwise the first of searchPaths that exists.
func Load(f Flags) (*Config, error) {
	cfg := Default()

	path := f.ConfigPath
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	f.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func searchPaths() []string {
	return []string{
		filepath.Join(".", fileName),
		filepath.Join(ConfigDir(), fileName),
	}
}

func findConfigFile() string {
	for _, path := range searchPaths() {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user config directory for the viewer.
func ConfigDir() string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "MidgardGlobe")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "MidgardGlobe")
		}
		return filepath.Join(home, "AppData", "Roaming", "MidgardGlobe")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "midgard-globe")
	}
	return filepath.Join(home, ".config", "midgard-globe")
}

// loadFromFile decodes the YAML file at path over cfg. Keys absent from the
// file keep their current value; a markers list replaces the current one.
// Unknown keys are rejected so typos do not pass silently.
func loadFromFile(cfg *Config, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
