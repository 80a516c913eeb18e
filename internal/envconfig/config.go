// Package envconfig reads the BACKPROP_* environment variables that supply
// defaults to the command line tool.
package envconfig

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// LogLevel returns the log level. Configure via BACKPROP_DEBUG: a true
// boolean selects debug, an integer n selects slog.Level(-4n).
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("BACKPROP_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}
	return level
}

var (
	// Seed seeds every random source of a run. Configure via BACKPROP_SEED.
	// Zero means seed from the clock.
	Seed = Int64("BACKPROP_SEED", 0)

	// MNISTDir is the directory holding the gzipped MNIST IDX files.
	// Configure via BACKPROP_MNIST_DIR.
	MNISTDir = StringWithDefault("BACKPROP_MNIST_DIR", "mnist_data")
)

// Var returns an environment variable stripped of surrounding whitespace
// and quotes.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// StringWithDefault returns a reader for key that falls back to
// defaultValue when the variable is unset or empty.
func StringWithDefault(key, defaultValue string) func() string {
	return func() string {
		if s := Var(key); s != "" {
			return s
		}
		return defaultValue
	}
}

// Int64 returns a reader for key that falls back to defaultValue when the
// variable is unset or not an integer.
func Int64(key string, defaultValue int64) func() int64 {
	return func() int64 {
		if s := Var(key); s != "" {
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
				return defaultValue
			}
			return n
		}
		return defaultValue
	}
}

// EnvVar describes one supported variable.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns every supported variable with its current value.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"BACKPROP_DEBUG":     {"BACKPROP_DEBUG", LogLevel(), "Show additional debug information (e.g. BACKPROP_DEBUG=1)"},
		"BACKPROP_SEED":      {"BACKPROP_SEED", Seed(), "Seed for weight init and batch sampling (default: clock)"},
		"BACKPROP_MNIST_DIR": {"BACKPROP_MNIST_DIR", MNISTDir(), "Directory with the gzipped MNIST IDX files (default \"mnist_data\")"},
	}
}
