// Package config provides Viper-backed configuration helpers for the CLI.
package config

import (
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/bankops/atmrecon/pkg/errors"
)

// Configuration keys.
const (
	KeyTolerance = "tolerance"
	KeyOutput    = "output"
)

// Tolerance bounds in minutes. The window is a UI-facing parameter; values
// outside the range are rejected rather than clamped.
const (
	DefaultToleranceMinutes = 30
	MaxToleranceMinutes     = 120
)

// SetDefaults registers the default configuration values.
func SetDefaults() {
	viper.SetDefault(KeyTolerance, DefaultToleranceMinutes)
	viper.SetDefault(KeyOutput, "")
}

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// Tolerance returns the configured matching tolerance as a duration,
// validating it against the allowed range.
func Tolerance() (time.Duration, error) {
	minutes := viper.GetInt(KeyTolerance)
	if minutes < 0 || minutes > MaxToleranceMinutes {
		return 0, errors.NewConfigError(KeyTolerance,
			"tolerance must be between 0 and 120 minutes", nil)
	}
	return time.Duration(minutes) * time.Minute, nil
}
