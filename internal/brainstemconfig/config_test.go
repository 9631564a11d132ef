package brainstemconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFixtures(t *testing.T, dir string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "mac.hex"), []byte("00112233445566778899AABBCCDDEEFF\n"), 0o600); err != nil {
		t.Fatalf("write mac key: %v", err)
	}
	cipher := ""
	for i := 0; i < 32; i++ {
		cipher += "AB"
	}
	if err := os.WriteFile(filepath.Join(dir, "cipher.hex"), []byte(cipher+"\n"), 0o600); err != nil {
		t.Fatalf("write cipher key: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "policy.bin"), []byte{0xFF}, 0o600); err != nil {
		t.Fatalf("write policy bytecode: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "policy.sha256"), []byte("deadbeef\n"), 0o600); err != nil {
		t.Fatalf("write policy manifest: %v", err)
	}
}

func TestLoadValidConfigResolvesRelativePaths(t *testing.T) {
	tmp := t.TempDir()
	writeFixtures(t, tmp)

	cfgPath := filepath.Join(tmp, "brainstem.yaml")
	cfgYAML := `
link:
  device: "/dev/ttyUSB1"
keys:
  mac_key_hex_file: "mac.hex"
  cipher_key_hex_file: "cipher.hex"
policy:
  bytecode_file: "policy.bin"
  manifest_file: "policy.sha256"
`
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Policy.BytecodeFile != filepath.Join(tmp, "policy.bin") {
		t.Fatalf("expected resolved bytecode path, got %q", cfg.Policy.BytecodeFile)
	}
	if cfg.Policy.ManifestFile != filepath.Join(tmp, "policy.sha256") {
		t.Fatalf("expected resolved manifest path, got %q", cfg.Policy.ManifestFile)
	}
}

func TestLoadRejectsMissingBytecodeFile(t *testing.T) {
	tmp := t.TempDir()
	writeFixtures(t, tmp)
	cfgPath := filepath.Join(tmp, "brainstem.yaml")
	cfgYAML := `
link:
  device: "/dev/ttyUSB1"
keys:
  mac_key_hex_file: "mac.hex"
  cipher_key_hex_file: "cipher.hex"
policy:
  bytecode_file: "missing.bin"
  manifest_file: "policy.sha256"
`
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(cfgPath); err == nil {
		t.Fatalf("expected missing bytecode file to be rejected")
	}
}

func TestLoadRejectsMissingManifestFile(t *testing.T) {
	tmp := t.TempDir()
	writeFixtures(t, tmp)
	cfgPath := filepath.Join(tmp, "brainstem.yaml")
	cfgYAML := `
link:
  device: "/dev/ttyUSB1"
keys:
  mac_key_hex_file: "mac.hex"
  cipher_key_hex_file: "cipher.hex"
policy:
  bytecode_file: "policy.bin"
  manifest_file: "missing.sha256"
`
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(cfgPath); err == nil {
		t.Fatalf("expected missing manifest file to be rejected")
	}
}

func TestLoadRejectsUnknownField(t *testing.T) {
	tmp := t.TempDir()
	writeFixtures(t, tmp)
	cfgPath := filepath.Join(tmp, "brainstem.yaml")
	cfgYAML := `
link:
  device: "/dev/ttyUSB1"
  bogus: true
keys:
  mac_key_hex_file: "mac.hex"
  cipher_key_hex_file: "cipher.hex"
policy:
  bytecode_file: "policy.bin"
  manifest_file: "policy.sha256"
`
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(cfgPath); err == nil {
		t.Fatalf("expected unknown field to be rejected")
	}
}
