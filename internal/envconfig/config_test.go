package envconfig

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"false": slog.LevelInfo,
		"t":     slog.LevelDebug,
		"1":     slog.LevelDebug,
		"2":     slog.Level(-8),
		"-1":    slog.LevelWarn,
	}
	for value, want := range cases {
		t.Run(value, func(t *testing.T) {
			t.Setenv("BACKPROP_DEBUG", value)
			assert.Equal(t, want, LogLevel())
		})
	}
}

func TestVar(t *testing.T) {
	t.Setenv("BACKPROP_MNIST_DIR", `  "/data/mnist" `)
	assert.Equal(t, "/data/mnist", Var("BACKPROP_MNIST_DIR"))
	assert.Equal(t, "/data/mnist", MNISTDir())

	t.Setenv("BACKPROP_MNIST_DIR", "")
	assert.Equal(t, "mnist_data", MNISTDir())
}

func TestSeed(t *testing.T) {
	t.Setenv("BACKPROP_SEED", "42")
	assert.Equal(t, int64(42), Seed())

	t.Setenv("BACKPROP_SEED", "forty-two")
	assert.Equal(t, int64(0), Seed())
}

func TestAsMap(t *testing.T) {
	m := AsMap()
	assert.Len(t, m, 3)
	assert.Contains(t, m, "BACKPROP_SEED")
}
