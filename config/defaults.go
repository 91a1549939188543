// Package config loads promptpad settings from defaults, a YAML file and
// PROMPTPAD_ environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"promptpad/compose"
	"promptpad/kv"
)

// Clipboard fallbacks.
const (
	FallbackOSC52 = "osc52"
	FallbackNone  = "none"
)

type Config struct {
	LogLevel    string                     `json:"log_level" mapstructure:"log_level" yaml:"log_level"`
	Server      ServerConfig               `json:"server" mapstructure:"server" yaml:"server"`
	Storage     StorageConfig              `json:"storage" mapstructure:"storage" yaml:"storage"`
	Translation compose.TranslationOptions `json:"translation" mapstructure:"translation" yaml:"translation"`
	Export      ExportConfig               `json:"export" mapstructure:"export" yaml:"export"`
	Clipboard   ClipboardConfig            `json:"clipboard" mapstructure:"clipboard" yaml:"clipboard"`
}

type ServerConfig struct {
	Host string `json:"host" mapstructure:"host" yaml:"host"`
	Port string `json:"port" mapstructure:"port" yaml:"port"`
}

// StorageConfig selects the key-value backend. An empty Path means a file
// under the home data directory.
type StorageConfig struct {
	Backend string `json:"backend" mapstructure:"backend" yaml:"backend"`
	Path    string `json:"path" mapstructure:"path" yaml:"path"`
}

type ExportConfig struct {
	// Timestamp adds exportedAt to backup files.
	Timestamp bool `json:"timestamp" mapstructure:"timestamp" yaml:"timestamp"`
}

type ClipboardConfig struct {
	// Fallback is used when no system clipboard tool exists: osc52 or none.
	Fallback string `json:"fallback" mapstructure:"fallback" yaml:"fallback"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: "8080",
		},
		Storage: StorageConfig{
			Backend: kv.BackendFile,
		},
		Translation: compose.DefaultTranslationOptions(),
		Export:      ExportConfig{Timestamp: true},
		Clipboard:   ClipboardConfig{Fallback: FallbackOSC52},
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if p, err := strconv.Atoi(c.Server.Port); err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("server.port: %q is not a valid port", c.Server.Port)
	}
	switch c.Storage.Backend {
	case kv.BackendMemory, kv.BackendFile, kv.BackendSQLite:
	default:
		return fmt.Errorf("storage.backend: unknown backend %q (want memory, file or sqlite)", c.Storage.Backend)
	}
	if err := c.Translation.Validate(); err != nil {
		return fmt.Errorf("translation: %w", err)
	}
	switch c.Clipboard.Fallback {
	case FallbackOSC52, FallbackNone:
	default:
		return fmt.Errorf("clipboard.fallback: unknown fallback %q (want osc52 or none)", c.Clipboard.Fallback)
	}
	return nil
}

// ParseLevel maps a level name (debug, info, warn, error) to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}
