// Package envutil reads configuration from environment variables with
// defaults. Lookups happen at the program boundary; core packages receive the
// resolved values.
package envutil

import (
	"os"
	"strconv"
	"strings"

	"github.com/githubnext/runner-guard/pkg/logger"
)

// GetStringFromEnv returns the trimmed value of envVar, or defaultValue when
// the variable is unset or blank. log may be nil.
func GetStringFromEnv(envVar, defaultValue string, log *logger.Logger) string {
	value := strings.TrimSpace(os.Getenv(envVar))
	if value == "" {
		return defaultValue
	}
	if log != nil {
		log.Printf("Using %s=%s", envVar, value)
	}
	return value
}

// GetBoolFromEnv reports whether envVar parses as true ("true", "1", ...).
// Unparseable values are false.
func GetBoolFromEnv(envVar string) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(envVar)))
	return err == nil && value
}

// GetIntFromEnv returns envVar as an int when it parses and lies within
// [minValue, maxValue]; otherwise defaultValue. log may be nil.
func GetIntFromEnv(envVar string, defaultValue, minValue, maxValue int, log *logger.Logger) int {
	raw := strings.TrimSpace(os.Getenv(envVar))
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		if log != nil {
			log.Printf("Invalid %s value %q, using default %d", envVar, raw, defaultValue)
		}
		return defaultValue
	}
	if value < minValue || value > maxValue {
		if log != nil {
			log.Printf("%s=%d outside [%d, %d], using default %d", envVar, value, minValue, maxValue, defaultValue)
		}
		return defaultValue
	}
	return value
}
