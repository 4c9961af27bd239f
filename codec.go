package tonecodec

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"go.uber.org/zap"
)

// Common errors returned by the codec.
var (
	// ErrUnknownSymbol indicates a character with no entry in the symbol table.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrInvalidConfiguration indicates timing parameters that do not yield
	// at least one sample per segment.
	ErrInvalidConfiguration = errors.New("invalid codec configuration")
)

// Config holds codec configuration.
type Config struct {
	// SampleRate is the signal sample rate in Hz.
	SampleRate float64

	// SegmentDuration is the length of one symbol in seconds.
	SegmentDuration float64

	// Tolerance is the classifier match window in Hz.
	// Set to 0 to use DefaultTolerance.
	Tolerance float64

	// EnableParallel decodes segments concurrently using goroutines.
	// Output is identical to sequential decoding.
	EnableParallel bool

	// Logger receives per-segment debug output. Nil disables logging.
	Logger *zap.Logger
}

// DefaultConfig returns the configuration shared by the reference encoder
// and decoder: 8 kHz, 40 ms per symbol, 100 Hz tolerance.
func DefaultConfig() Config {
	return Config{
		SampleRate:      DefaultSampleRate,
		SegmentDuration: DefaultSegmentDuration,
		Tolerance:       DefaultTolerance,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive", ErrInvalidConfiguration)
	}

	if c.SegmentDuration <= 0 {
		return fmt.Errorf("%w: segment duration must be positive", ErrInvalidConfiguration)
	}

	if n := segmentLength(c.SampleRate, c.SegmentDuration); n < minSegment {
		return fmt.Errorf("%w: segment length %d samples (rate %v Hz, duration %v s)",
			ErrInvalidConfiguration, n, c.SampleRate, c.SegmentDuration)
	}

	if c.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance must not be negative", ErrInvalidConfiguration)
	}

	return nil
}

// segmentLength is the number of samples in one symbol segment.
// Encoder and decoder both use it so frames always line up.
func segmentLength(sampleRate, duration float64) int {
	return int(math.Round(sampleRate * duration))
}

// Codec encodes text to tone segments and decodes signals back to text.
// A Codec is safe for concurrent use.
type Codec struct {
	config        Config
	segmentLength int
	logger        *zap.Logger

	// Per-symbol waveforms, synthesized on first Encode.
	segmentsOnce sync.Once
	segments     map[rune][]float64
}

// New creates a codec from config.
func New(config *Config) (*Codec, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfiguration)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &Codec{
		config:        *config,
		segmentLength: segmentLength(config.SampleRate, config.SegmentDuration),
		logger:        config.Logger,
	}
	if c.config.Tolerance == 0 {
		c.config.Tolerance = DefaultTolerance
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}

	return c, nil
}

// SegmentLength returns the number of samples per symbol.
func (c *Codec) SegmentLength() int {
	return c.segmentLength
}

// Config returns a copy of the codec configuration.
func (c *Codec) Config() Config {
	return c.config
}
