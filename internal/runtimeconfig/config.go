package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrModuleDisabled = errors.New("pagekit config: module is disabled")
var ErrStorageProviderUnknown = errors.New("pagekit config: storage provider is invalid")
var ErrInheritanceMaxDepthInvalid = errors.New("pagekit config: inheritance max depth must be positive")
var ErrCacheTTLInvalid = errors.New("pagekit config: cache ttl cannot be negative")
var ErrLoggingProviderRequired = errors.New("pagekit config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("pagekit config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("pagekit config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("pagekit config: logging format is invalid")
var ErrWidgetDefinitionInvalid = errors.New("pagekit config: seeded widget definition requires name and schema")

// Config aggregates feature flags and adapter bindings for the module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled     bool
	Storage     StorageConfig
	Cache       CacheConfig
	Inheritance InheritanceConfig
	Widgets     WidgetConfig
	Features    Features
	Commands    CommandsConfig
	Logging     LoggingConfig
}

// StorageConfig lists identifiers for storage-related dependencies.
type StorageConfig struct {
	Provider string
	DSN      string
}

// CacheConfig captures repository cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// InheritanceConfig bounds the resolution walk.
type InheritanceConfig struct {
	MaxDepth int
}

// WidgetConfig controls definition seeding at container build time.
type WidgetConfig struct {
	Definitions []WidgetDefinitionConfig
}

// WidgetDefinitionConfig mirrors the minimal RegisterDefinitionInput requirements.
type WidgetDefinitionConfig struct {
	Name        string
	Description string
	Schema      map[string]any
	Defaults    map[string]any
}

// Features toggles module functionality.
type Features struct {
	Widgets     bool
	Versioning  bool
	Inheritance bool
	Logger      bool
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled bool
	Timeout time.Duration
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults: memory storage, widgets and
// versioning enabled, a safety cap on ancestry depth.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Storage: StorageConfig{
			Provider: "memory",
		},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: time.Minute,
		},
		Inheritance: InheritanceConfig{
			MaxDepth: 256,
		},
		Widgets: WidgetConfig{
			Definitions: []WidgetDefinitionConfig{},
		},
		Features: Features{
			Widgets:     true,
			Versioning:  true,
			Inheritance: true,
		},
		Commands: CommandsConfig{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if provider := normalizeProvider(cfg.Storage.Provider); provider != "" && !isSupportedStorage(provider) {
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}
	if cfg.Inheritance.MaxDepth < 0 {
		return fmt.Errorf("%w: %d", ErrInheritanceMaxDepthInvalid, cfg.Inheritance.MaxDepth)
	}
	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}
	for _, definition := range cfg.Widgets.Definitions {
		if strings.TrimSpace(definition.Name) == "" || len(definition.Schema) == 0 {
			return fmt.Errorf("%w: %q", ErrWidgetDefinitionInvalid, definition.Name)
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedLogProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedStorage(provider string) bool {
	switch provider {
	case "memory", "bun", "sqlite", "postgres":
		return true
	default:
		return false
	}
}

func isSupportedLogProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
