package tonecodec

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// SynthesizeSegment returns one segment for symbol r: the sum of three
// unit-amplitude cosines at the symbol's tones, sampled on the half-open
// interval [0, duration). The result is not normalized and peaks at 3.0.
func SynthesizeSegment(r rune, sampleRate, duration float64) ([]float64, error) {
	cfg := Config{SampleRate: sampleRate, SegmentDuration: duration}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tr, err := FrequenciesOf(r)
	if err != nil {
		return nil, err
	}

	return synthesize(tr, segmentLength(sampleRate, duration), duration), nil
}

// synthesize renders n samples of tr spaced duration/n seconds apart.
func synthesize(tr Triplet, n int, duration float64) []float64 {
	step := duration / float64(n)
	out := make([]float64, n)
	tone := make([]float64, n)

	for _, freq := range tr.Tones() {
		w := 2 * math.Pi * freq
		for i := range tone {
			tone[i] = math.Cos(w * float64(i) * step)
		}
		floats.Add(out, tone)
	}

	return out
}

// EncodeText lowercases text and encodes every character as one segment,
// concatenated with no gaps. If any character has no table entry, nothing
// is encoded and the error wraps ErrUnknownSymbol.
func EncodeText(text string, sampleRate, duration float64) ([]float64, error) {
	c, err := New(&Config{SampleRate: sampleRate, SegmentDuration: duration})
	if err != nil {
		return nil, err
	}
	return c.Encode(text)
}

// Encode converts text into a signal at the codec's sample rate.
// Empty text yields an empty signal.
func (c *Codec) Encode(text string) ([]float64, error) {
	symbols, err := normalizeText(text)
	if err != nil {
		return nil, err
	}

	c.segmentsOnce.Do(c.buildSegments)

	out := make([]float64, 0, len(symbols)*c.segmentLength)
	for _, r := range symbols {
		out = append(out, c.segments[r]...)
	}

	c.logger.Debug("encoded text",
		zap.Int("symbols", len(symbols)),
		zap.Int("samples", len(out)))

	return out, nil
}

// buildSegments renders one waveform per table symbol.
func (c *Codec) buildSegments() {
	c.segments = make(map[rune][]float64, len(symbolTable))
	for _, e := range symbolTable {
		c.segments[e.symbol] = synthesize(e.triplet, c.segmentLength, c.config.SegmentDuration)
	}
}

// normalizeText lowercases text and checks every rune against the table.
func normalizeText(text string) ([]rune, error) {
	symbols := []rune(strings.ToLower(text))
	for i, r := range symbols {
		if !IsSymbol(r) {
			return nil, fmt.Errorf("%w: %q at position %d", ErrUnknownSymbol, r, i)
		}
	}
	return symbols, nil
}
