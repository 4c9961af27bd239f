package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{EnvSampleRate, EnvSegmentDuration, EnvTolerance, EnvParallel, EnvBitDepth, EnvLogLevel} {
		t.Setenv(k, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.SampleRate)
	assert.InDelta(t, 0.04, cfg.SegmentDuration, 0)
	assert.InDelta(t, 100.0, cfg.Tolerance, 0)
	assert.False(t, cfg.Parallel)
	assert.Equal(t, 16, cfg.BitDepth)
	assert.Equal(t, zapcore.InfoLevel, cfg.LogLevel)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv(EnvSampleRate, "16000")
	t.Setenv(EnvSegmentDuration, "0.05")
	t.Setenv(EnvTolerance, "50")
	t.Setenv(EnvParallel, "true")
	t.Setenv(EnvBitDepth, "24")
	t.Setenv(EnvLogLevel, "DEBUG")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 16000, cfg.SampleRate)
	assert.InDelta(t, 0.05, cfg.SegmentDuration, 0)
	assert.InDelta(t, 50.0, cfg.Tolerance, 0)
	assert.True(t, cfg.Parallel)
	assert.Equal(t, 24, cfg.BitDepth)
	assert.Equal(t, zapcore.DebugLevel, cfg.LogLevel)

	codec := cfg.Codec()
	assert.InDelta(t, 16000.0, codec.SampleRate, 0)
	assert.True(t, codec.EnableParallel)
	require.NoError(t, codec.Validate())
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{EnvSampleRate, "fast"},
		{EnvSegmentDuration, "long"},
		{EnvTolerance, "x"},
		{EnvParallel, "maybe"},
		{EnvBitDepth, "16bit"},
		{EnvLogLevel, "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	// godotenv never overrides variables that are already set, so clear them.
	for _, k := range []string{EnvSampleRate, EnvTolerance} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(EnvSampleRate+"=11025\n"+EnvTolerance+"=80\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 11025, cfg.SampleRate)
	assert.InDelta(t, 80.0, cfg.Tolerance, 0)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv(EnvSampleRate, "")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.SampleRate)
}
