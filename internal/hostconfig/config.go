// Package hostconfig loads and validates boreal-host's yaml configuration.
package hostconfig

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level boreal-host configuration.
type Config struct {
	Link  LinkConfig  `yaml:"link"`
	Keys  KeysConfig  `yaml:"keys"`
	Model ModelConfig `yaml:"model"`
}

// LinkConfig describes the transport the host writes frames to.
type LinkConfig struct {
	Device string `yaml:"device"`
	RateHz *int   `yaml:"rate_hz"`
}

// KeysConfig points at the hex-encoded MAC and cipher keys shared with
// the brainstem.
type KeysConfig struct {
	MACKeyHexFile    string `yaml:"mac_key_hex_file"`
	CipherKeyHexFile string `yaml:"cipher_key_hex_file"`
}

// ModelConfig identifies which model's frames this host issues.
type ModelConfig struct {
	ID *int `yaml:"id"`
}

// Load reads, parses, resolves relative key file paths against path's
// directory, and validates the configuration at path.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	cfg.resolvePaths(path)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Link.Device) == "" {
		return fmt.Errorf("config.link.device is required")
	}
	if c.Link.RateHz == nil {
		return fmt.Errorf("config.link.rate_hz is required")
	}
	if *c.Link.RateHz <= 0 {
		return fmt.Errorf("config.link.rate_hz must be > 0")
	}
	if strings.TrimSpace(c.Keys.MACKeyHexFile) == "" {
		return fmt.Errorf("config.keys.mac_key_hex_file is required")
	}
	if err := validateReadableFile(c.Keys.MACKeyHexFile, "config.keys.mac_key_hex_file"); err != nil {
		return err
	}
	if strings.TrimSpace(c.Keys.CipherKeyHexFile) == "" {
		return fmt.Errorf("config.keys.cipher_key_hex_file is required")
	}
	if err := validateReadableFile(c.Keys.CipherKeyHexFile, "config.keys.cipher_key_hex_file"); err != nil {
		return err
	}
	if c.Model.ID == nil {
		return fmt.Errorf("config.model.id is required")
	}
	if *c.Model.ID < 0 || *c.Model.ID > 0xFFFF {
		return fmt.Errorf("config.model.id must fit in 16 bits")
	}
	return nil
}

func (c *Config) resolvePaths(configPath string) {
	dir := filepath.Dir(configPath)
	c.Keys.MACKeyHexFile = resolvePath(dir, c.Keys.MACKeyHexFile)
	c.Keys.CipherKeyHexFile = resolvePath(dir, c.Keys.CipherKeyHexFile)
}

func resolvePath(baseDir, path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || filepath.IsAbs(trimmed) {
		return trimmed
	}
	return filepath.Clean(filepath.Join(baseDir, trimmed))
}

func validateReadableFile(path, field string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s must point to a file, got directory", field)
	}
	return nil
}
