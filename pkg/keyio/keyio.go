// Package keyio loads and writes the fixed-width hex-encoded key files
// shared by the host and brainstem binaries.
package keyio

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

// LoadFixed reads a single line of exactly 2*n hex characters from path
// and decodes it into an n-byte array.
func LoadFixed(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open key file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if len(line) != n*2 {
			return nil, fmt.Errorf("key must be %d hex chars, got %d", n*2, len(line))
		}
		key, err := hex.DecodeString(line)
		if err != nil {
			return nil, fmt.Errorf("invalid hex key: %w", err)
		}
		return key, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}
	return nil, fmt.Errorf("key file %s is empty", path)
}

// WriteFixed writes key as a single hex line to path with 0o600
// permissions, refusing to silently overwrite unless overwrite is true.
func WriteFixed(path string, key []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, refusing to overwrite", path)
		}
	}
	line := hex.EncodeToString(key) + "\n"
	return os.WriteFile(path, []byte(line), 0o600)
}
