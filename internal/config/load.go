package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working and config directories.
const FileName = "sceneview.yaml"

// Load builds the config from defaults, then the config file, then flags,
// and validates the result.
func Load() (*Config, error) {
	cfg := Default()

	if path := locate(); path != "" {
		if err := readFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// locate returns the -config path, or the first existing FileName in the
// working directory and ConfigDir. An explicit path is returned even when
// missing so that Load reports it.
func locate() string {
	if p := ConfigPath(); p != "" {
		return p
	}
	for _, dir := range []string{".", ConfigDir()} {
		p := filepath.Join(dir, FileName)
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p
		}
	}
	return ""
}

// ConfigDir returns the per-user config directory of the viewer.
func ConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "sceneview")
}

func readFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Decode(f, cfg)
}

// Decode merges the YAML document read from r into cfg. Unknown keys are
// rejected; an empty document leaves cfg unchanged.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
