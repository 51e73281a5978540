package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadJump loads the jump configuration.
// Search order: customPath -> ~/.arcade/configs/jump.{yaml,toml} -> ./configs/jump.{yaml,toml} -> embedded default.
// Keys missing from a file keep their default values.
func LoadJump(customPath string) (JumpConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultJumpConfig(), fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := decodeJump(customPath, data)
		if err != nil {
			return DefaultJumpConfig(), fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return DefaultJumpConfig(), fmt.Errorf("%s: %w", customPath, err)
		}
		return cfg, nil
	}

	var candidates []string
	if dir := userConfigDir(); dir != "" {
		candidates = append(candidates, filepath.Join(dir, "jump.yaml"), filepath.Join(dir, "jump.toml"))
	}
	candidates = append(candidates, filepath.Join("configs", "jump.yaml"), filepath.Join("configs", "jump.toml"))

	// Unreadable or invalid discovered files are skipped silently
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := decodeJump(path, data); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := decodeJump("jump.yaml", defaultJumpYAML)
	if err != nil {
		return DefaultJumpConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// decodeJump decodes YAML or TOML (by file extension) over the defaults.
func decodeJump(path string, data []byte) (JumpConfig, error) {
	cfg := DefaultJumpConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, err
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// EncodeJump serializes a config as "yaml" or "toml".
func EncodeJump(cfg JumpConfig, format string) ([]byte, error) {
	switch format {
	case "", "yaml", "yml":
		return yaml.Marshal(cfg)
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("config: encode toml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("config: unknown format %q", format)
	}
}

// userConfigDir returns ~/.arcade/configs, or empty if home is unavailable.
func userConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs")
}
