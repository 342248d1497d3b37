// Package config loads the small JSON-configured settings cmd/aethc needs:
// which language edition to compile under and how many diagnostics to
// print per stage before suppressing the rest. Mirrors cmd/orizon-config's load/save-via-
// encoding/json style; no third-party config library is pulled in, since
// none appears anywhere in the teacher.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aethlang/aethc/internal/edition"
)

// CompilerConfig is the on-disk shape of an aethc project config file.
type CompilerConfig struct {
	Edition        string `json:"edition"`
	MaxDiagnostics int    `json:"max_diagnostics"`
}

// Default mirrors orizon-config's initConfig defaults: an edition string
// matching the package-wide edition.Default and a generous diagnostics cap.
func Default() *CompilerConfig {
	return &CompilerConfig{
		Edition:        edition.Default.String(),
		MaxDiagnostics: 100,
	}
}

// Load reads configPath and parses it as a CompilerConfig. A missing file is
// not an error: the caller gets Default() back, matching orizon-config's
// LoadConfig-falls-back-to-defaults behavior for cmd-line tools that accept
// an optional --config flag.
func Load(configPath string) (*CompilerConfig, error) {
	cfg := Default()
	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to configPath as indented JSON.
func Save(configPath string, cfg *CompilerConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(configPath, data, 0644)
}

// ResolveEdition parses the config's Edition string, falling back to
// edition.Default only when it is empty. A malformed edition string is
// returned as an error (cmd/aethc exits on it).
func (c *CompilerConfig) ResolveEdition() (edition.Edition, error) {
	if c.Edition == "" {
		return edition.Default, nil
	}
	return edition.Parse(c.Edition)
}

// EffectiveMaxDiagnostics returns MaxDiagnostics, defaulting to 100 when the
// config sets zero or a negative value.
func (c *CompilerConfig) EffectiveMaxDiagnostics() int {
	if c.MaxDiagnostics <= 0 {
		return 100
	}
	return c.MaxDiagnostics
}
