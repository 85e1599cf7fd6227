// Package core contains the business logic of burrito: reading task files,
// verifying and resolving the task hierarchy, and loading configuration.
package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"github.com/valter-silva-au/burrito/internal/observability"
	"github.com/valter-silva-au/burrito/pkg/models"
)

// ConfigFileName is the base name of the optional YAML configuration file.
const ConfigFileName = ".burrito"

// ConfigurationManager loads and validates the settings that control how a
// task file is exported.
type ConfigurationManager interface {
	LoadGlobalConfig() (*models.GlobalConfig, error)
	ValidateConfig(cfg *models.GlobalConfig) error
}

// viperConfigManager implements ConfigurationManager using Viper for reading
// .burrito.yaml and BURRITO_* environment variables.
type viperConfigManager struct {
	// basePath is the directory searched for .burrito.yaml.
	basePath string
}

// NewConfigurationManager creates a ConfigurationManager that reads
// .burrito.yaml from basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// DefaultGlobalConfig returns the settings used when no file is present.
func DefaultGlobalConfig() *models.GlobalConfig {
	return &models.GlobalConfig{
		ExportSettings: models.ExportSettings{Summary: true, Fold: true},
		HTMLSettings:   models.HTMLSettings{RefreshSeconds: 5},
		LogSettings:    models.LogSettings{LogLevel: "warn"},
	}
}

// LoadGlobalConfig reads .burrito.yaml if present. Missing keys and a missing
// file fall back to DefaultGlobalConfig. Environment variables such as
// BURRITO_LOG_LEVEL override the file.
func (cm *viperConfigManager) LoadGlobalConfig() (*models.GlobalConfig, error) {
	cfg := DefaultGlobalConfig()

	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)
	v.SetEnvPrefix("BURRITO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("export.summary", cfg.Summary)
	v.SetDefault("export.fold", cfg.Fold)
	v.SetDefault("html.head", cfg.Head)
	v.SetDefault("html.tail", cfg.Tail)
	v.SetDefault("html.refresh_seconds", cfg.RefreshSeconds)
	v.SetDefault("log.level", cfg.LogLevel)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading %s.yaml: %w", ConfigFileName, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding %s.yaml: %w", ConfigFileName, err)
	}

	return cfg, nil
}

// ValidateConfig checks the configuration for invalid values and returns a
// message naming every problem found.
func (cm *viperConfigManager) ValidateConfig(cfg *models.GlobalConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string
	if cfg.RefreshSeconds < 0 {
		errs = append(errs, fmt.Sprintf("html.refresh_seconds must not be negative, got %d", cfg.RefreshSeconds))
	}
	if _, err := observability.ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, fmt.Sprintf("log.level %q is not one of: debug, info, warn, error, fatal", cfg.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// ApplyOptions overrides cfg with KEY=VALUE options given on the command
// line. Boolean options are true only for the value 1.
func ApplyOptions(cfg *models.GlobalConfig, options []string) error {
	for _, option := range options {
		key, value, ok := strings.Cut(option, "=")
		if !ok {
			return fmt.Errorf("invalid option '%s', not in KEY=VALUE format", option)
		}

		switch key {
		case "summary", "fold":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid value %s for %s config value", value, key)
			}
			if key == "summary" {
				cfg.Summary = n == 1
			} else {
				cfg.Fold = n == 1
			}
		case "refresh":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return fmt.Errorf("invalid value %s for refresh config value", value)
			}
			cfg.RefreshSeconds = n
		default:
			return fmt.Errorf("unknown option '%s'", key)
		}
	}
	return nil
}

// ExportConfigFor turns the loaded settings into the section-independent
// part of an ExportConfig. Exporters decide which sections to include.
func ExportConfigFor(cfg *models.GlobalConfig) models.ExportConfig {
	out := models.DefaultExportConfig()
	out.IncludeSummary = cfg.Summary
	out.FoldTOC = cfg.Fold

	var head []string
	if cfg.RefreshSeconds > 0 {
		head = append(head, fmt.Sprintf(`<meta http-equiv="refresh" content="%d">`, cfg.RefreshSeconds))
	}
	if cfg.Head != "" {
		head = append(head, cfg.Head)
	}
	out.HeadPrefix = strings.Join(head, "\n")
	out.BodySuffix = cfg.Tail
	return out
}
