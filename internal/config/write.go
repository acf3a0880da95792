// internal/config/write.go
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// defaultConfig is the commented template `mkvcat config init` writes. Its
// scan root stays as ${MKVCAT_ROOT:-.} so the file works unedited.
//
//go:embed default_config.toml
var defaultConfig string

// WriteDefault writes the commented mkvcat template to path.
func WriteDefault(path string) error {
	return writeFile(path, []byte(defaultConfig))
}

// Write encodes the resolved config (defaults and overrides applied, no
// comments or ${VAR} references) to path.
func (c *Config) Write(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return writeFile(path, buf.Bytes())
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
