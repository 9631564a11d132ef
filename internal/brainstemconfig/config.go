// Package brainstemconfig loads and validates boreal-brainstem's yaml
// configuration.
package brainstemconfig

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level boreal-brainstem configuration.
type Config struct {
	Link   LinkConfig   `yaml:"link"`
	Keys   KeysConfig   `yaml:"keys"`
	Policy PolicyConfig `yaml:"policy"`
}

// LinkConfig describes the transport the brainstem reads frames from.
type LinkConfig struct {
	Device string `yaml:"device"`
}

// KeysConfig points at the hex-encoded MAC and cipher keys shared with
// the host.
type KeysConfig struct {
	MACKeyHexFile    string `yaml:"mac_key_hex_file"`
	CipherKeyHexFile string `yaml:"cipher_key_hex_file"`
}

// PolicyConfig points at a compiled policy bytecode file and its sha256
// manifest, both produced by boreal-policyc.
type PolicyConfig struct {
	BytecodeFile string `yaml:"bytecode_file"`
	ManifestFile string `yaml:"manifest_file"`
}

// Load reads, parses, resolves relative file paths against path's
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
	if strings.TrimSpace(c.Policy.BytecodeFile) == "" {
		return fmt.Errorf("config.policy.bytecode_file is required")
	}
	if err := validateReadableFile(c.Policy.BytecodeFile, "config.policy.bytecode_file"); err != nil {
		return err
	}
	if strings.TrimSpace(c.Policy.ManifestFile) == "" {
		return fmt.Errorf("config.policy.manifest_file is required")
	}
	if err := validateReadableFile(c.Policy.ManifestFile, "config.policy.manifest_file"); err != nil {
		return err
	}
	return nil
}

func (c *Config) resolvePaths(configPath string) {
	dir := filepath.Dir(configPath)
	c.Keys.MACKeyHexFile = resolvePath(dir, c.Keys.MACKeyHexFile)
	c.Keys.CipherKeyHexFile = resolvePath(dir, c.Keys.CipherKeyHexFile)
	c.Policy.BytecodeFile = resolvePath(dir, c.Policy.BytecodeFile)
	c.Policy.ManifestFile = resolvePath(dir, c.Policy.ManifestFile)
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
