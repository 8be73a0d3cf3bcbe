// Package config loads runtime settings for diagnostics. Shipping limits are
// fixed and deliberately absent here.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"packagexpress/internal/errors"
)

// EnvPrefix is the prefix of environment variables read by Load
const EnvPrefix = "PACKAGEXPRESS_"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config is the root configuration structure
type Config struct {
	Log LogConfig `koanf:"log" validate:"required"`
}

// LogConfig contains diagnostics logging settings
type LogConfig struct {
	Level  string `koanf:"level"  validate:"required,oneof=debug info warn error"`
	Format string `koanf:"format" validate:"required,oneof=text json logfmt"`
}

func defaults() map[string]any {
	return map[string]any{
		"log.level":  "warn",
		"log.format": "text",
	}
}

// Load builds the configuration with the following precedence (highest to lowest):
//  1. overrides (set from command-line flags)
//  2. environment variables (PACKAGEXPRESS_ prefix, e.g. PACKAGEXPRESS_LOG_LEVEL)
//  3. defaults
func Load(overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.ConfigErrorWithCause("failed to load defaults", err)
	}

	// Empty variables are skipped so that VAR= behaves like an unset variable
	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		if strings.TrimSpace(value) == "" {
			return "", nil
		}
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(key, EnvPrefix)),
			"_",
			".",
		), value
	}), nil)
	if err != nil {
		return nil, errors.ConfigErrorWithCause("failed to load environment variables", err)
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.ConfigErrorWithCause("failed to apply flag overrides", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.ConfigErrorWithCause("failed to decode configuration", err)
	}

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.ConfigErrorWithCause("configuration validation failed", err)
	}

	result := errors.ConfigError("configuration validation failed")
	for _, fieldErr := range validationErrors {
		field := formatFieldPath(fieldErr.Namespace())
		result.WithContext(field, fieldErr.Value())
		result.WithSuggestion(formatFieldError(field, fieldErr))
	}
	return result
}

func formatFieldError(field string, e validator.FieldError) string {
	envName := EnvPrefix + strings.ToUpper(strings.ReplaceAll(field, ".", "_"))

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("Set %s", envName)
	case "oneof":
		return fmt.Sprintf("Set %s to one of: %s", envName, strings.ReplaceAll(e.Param(), " ", ", "))
	default:
		return fmt.Sprintf("Check %s (failed %s)", envName, e.Tag())
	}
}

// formatFieldPath converts "Config.Log.Level" to "log.level"
func formatFieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, part := range parts {
		parts[i] = strings.ToLower(part)
	}
	return strings.Join(parts, ".")
}
