package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultTargetField is the field stripped when no override is configured.
const DefaultTargetField = "requiresProject"

// DefaultConfigPath is the config file looked up when --config is not set.
// Only this path may be absent without error.
const DefaultConfigPath = "sidebar-cleanup.yaml"

// Environment variables consulted for the database DSN, in precedence order.
var dsnEnvVars = []string{"SIDEBAR_CLEANUP_DSN", "DATABASE_URL"}

// Config holds the tool configuration loaded from YAML.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Cleanup  CleanupConfig  `yaml:"cleanup"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig holds connection settings.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// CleanupConfig holds cleanup behavior settings.
type CleanupConfig struct {
	Field string `yaml:"field"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max-size-mb"`
	MaxBackups int    `yaml:"max-backups"`
}

// Load reads the YAML config at path. A missing path yields defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()

	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return cfg, nil
	}

	data, errRead := os.ReadFile(trimmed)
	if errRead != nil {
		if os.IsNotExist(errRead) && trimmed == DefaultConfigPath {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", trimmed, errRead)
	}
	if errUnmarshal := yaml.Unmarshal(data, cfg); errUnmarshal != nil {
		return nil, fmt.Errorf("config: parse %s: %w", trimmed, errUnmarshal)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Cleanup.Field) == "" {
		c.Cleanup.Field = DefaultTargetField
	}
	if strings.TrimSpace(c.Log.Level) == "" {
		c.Log.Level = "info"
	}
	if c.Log.MaxSizeMB <= 0 {
		c.Log.MaxSizeMB = 20
	}
	if c.Log.MaxBackups <= 0 {
		c.Log.MaxBackups = 3
	}
}

// ResolveDSN picks the DSN by precedence: flag > environment > config file.
func (c *Config) ResolveDSN(flagDSN string) (string, error) {
	if dsn := strings.TrimSpace(flagDSN); dsn != "" {
		return dsn, nil
	}
	for _, key := range dsnEnvVars {
		if dsn := strings.TrimSpace(os.Getenv(key)); dsn != "" {
			return dsn, nil
		}
	}
	if dsn := strings.TrimSpace(c.Database.DSN); dsn != "" {
		return dsn, nil
	}
	return "", fmt.Errorf("config: no database dsn (set --dsn, %s, or database.dsn)", strings.Join(dsnEnvVars, ", "))
}

// MaskDSN obscures credentials embedded in a DSN for logging purposes.
func MaskDSN(dsn string) string {
	trimmed := strings.TrimSpace(dsn)
	if trimmed == "" {
		return ""
	}
	parsed, errParse := url.Parse(trimmed)
	if errParse == nil && parsed.User != nil {
		if _, hasPassword := parsed.User.Password(); hasPassword {
			parsed.User = url.UserPassword(parsed.User.Username(), "***")
		}
		return parsed.String()
	}

	// Key/value form: host=... password=... dbname=...
	parts := strings.Fields(trimmed)
	changed := false
	for i, part := range parts {
		if strings.HasPrefix(strings.ToLower(part), "password=") {
			parts[i] = "password=***"
			changed = true
		}
	}
	if !changed {
		return trimmed
	}
	return strings.Join(parts, " ")
}
