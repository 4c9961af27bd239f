// Package config loads command-line defaults from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	tonecodec "github.com/tphakala/go-tonecodec"
	"github.com/tphakala/go-tonecodec/internal/wavio"
	"go.uber.org/zap/zapcore"
)

// Environment variable names
const (
	EnvSampleRate      = "TONECODEC_SAMPLE_RATE"
	EnvSegmentDuration = "TONECODEC_SEGMENT_DURATION"
	EnvTolerance       = "TONECODEC_TOLERANCE"
	EnvParallel        = "TONECODEC_PARALLEL"
	EnvBitDepth        = "TONECODEC_BIT_DEPTH"
	EnvLogLevel        = "TONECODEC_LOG_LEVEL"
)

// Config holds settings shared by the tonecodec commands.
type Config struct {
	SampleRate      int
	SegmentDuration float64
	Tolerance       float64
	Parallel        bool
	BitDepth        int
	LogLevel        zapcore.Level
}

// Load reads .env files (if any) into the environment, then builds a
// Config from the environment, falling back to codec defaults.
func Load(envFiles ...string) (*Config, error) {
	// Missing .env files are not an error
	_ = godotenv.Load(envFiles...)
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		SampleRate:      tonecodec.DefaultSampleRate,
		SegmentDuration: tonecodec.DefaultSegmentDuration,
		Tolerance:       tonecodec.DefaultTolerance,
		BitDepth:        wavio.DefaultBitDepth,
		LogLevel:        zapcore.InfoLevel,
	}

	var err error
	if cfg.SampleRate, err = getEnvInt(EnvSampleRate, cfg.SampleRate); err != nil {
		return nil, err
	}
	if cfg.SegmentDuration, err = getEnvFloat(EnvSegmentDuration, cfg.SegmentDuration); err != nil {
		return nil, err
	}
	if cfg.Tolerance, err = getEnvFloat(EnvTolerance, cfg.Tolerance); err != nil {
		return nil, err
	}
	if cfg.Parallel, err = getEnvBool(EnvParallel, cfg.Parallel); err != nil {
		return nil, err
	}
	if cfg.BitDepth, err = getEnvInt(EnvBitDepth, cfg.BitDepth); err != nil {
		return nil, err
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(strings.ToLower(v))); err != nil {
			return nil, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
	}

	return cfg, nil
}

// Codec returns the codec configuration for these settings.
func (c *Config) Codec() tonecodec.Config {
	return tonecodec.Config{
		SampleRate:      float64(c.SampleRate),
		SegmentDuration: c.SegmentDuration,
		Tolerance:       c.Tolerance,
		EnableParallel:  c.Parallel,
	}
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getEnvBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
