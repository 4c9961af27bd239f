package tonecodec

import (
	"runtime"
	"strings"
	"sync"

	"github.com/tphakala/go-tonecodec/internal/simdops"
	"github.com/tphakala/go-tonecodec/internal/spectrum"
	"go.uber.org/zap"
)

// Peak is the spectral magnitude measured at the bin nearest to one table
// frequency.
type Peak = spectrum.Peak

// SegmentReport describes how one segment was classified.
type SegmentReport struct {
	Index  int     // segment number, from 0
	Start  int     // offset of the first sample in the signal
	Length int     // samples in this segment; the last may be short
	RMS    float64 // root-mean-square level of the segment
	Peaks  []Peak  // strongest candidate peaks, descending magnitude
	Symbol rune    // classified symbol or Unknown
}

// DecodeSignal splits signal into segments of round(sampleRate*duration)
// samples and classifies each one. A trailing partial segment is decoded
// as-is. An empty signal decodes to the empty string.
func DecodeSignal(signal []float64, sampleRate int, duration float64) (string, error) {
	c, err := New(&Config{SampleRate: float64(sampleRate), SegmentDuration: duration})
	if err != nil {
		return "", err
	}
	return c.Decode(signal), nil
}

// Analyze is like DecodeSignal but returns the per-segment detail.
func Analyze(signal []float64, sampleRate int, duration float64) ([]SegmentReport, error) {
	c, err := New(&Config{SampleRate: float64(sampleRate), SegmentDuration: duration})
	if err != nil {
		return nil, err
	}
	return c.Analyze(signal), nil
}

// Decode converts signal, sampled at the codec's rate, back to text.
func (c *Codec) Decode(signal []float64) string {
	reports := c.Analyze(signal)

	var sb strings.Builder
	sb.Grow(len(reports))
	unknown := 0
	for _, r := range reports {
		sb.WriteRune(r.Symbol)
		if r.Symbol == Unknown {
			unknown++
		}
	}

	c.logger.Debug("decoded signal",
		zap.Int("samples", len(signal)),
		zap.Int("segments", len(reports)),
		zap.Int("unknown", unknown))

	return sb.String()
}

// Analyze classifies every segment of signal and returns one report per
// segment in signal order.
func (c *Codec) Analyze(signal []float64) []SegmentReport {
	numSegments := (len(signal) + c.segmentLength - 1) / c.segmentLength
	reports := make([]SegmentReport, numSegments)
	if numSegments == 0 {
		return reports
	}

	workers := 1
	if c.config.EnableParallel {
		workers = min(runtime.GOMAXPROCS(0), numSegments)
	}

	// Sequential processing (default or when parallel disabled)
	if workers <= 1 {
		d := c.newSegmentDecoder()
		for i := range numSegments {
			reports[i] = d.decode(signal, i)
		}
		return reports
	}

	// Parallel processing: each worker takes every workers-th segment
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func(first int) {
			defer wg.Done()
			d := c.newSegmentDecoder()
			for i := first; i < numSegments; i += workers {
				reports[i] = d.decode(signal, i)
			}
		}(w)
	}
	wg.Wait()

	return reports
}

// segmentDecoder holds the per-goroutine state for classifying segments.
type segmentDecoder struct {
	analyzer   *spectrum.Analyzer
	candidates []float64
	tolerance  float64
	length     int
	logger     *zap.Logger
}

func (c *Codec) newSegmentDecoder() *segmentDecoder {
	return &segmentDecoder{
		analyzer:   spectrum.NewAnalyzer(c.config.SampleRate),
		candidates: distinctFreqs,
		tolerance:  c.config.Tolerance,
		length:     c.segmentLength,
		logger:     c.logger,
	}
}

// decode classifies segment i of signal.
func (d *segmentDecoder) decode(signal []float64, i int) SegmentReport {
	start := i * d.length
	end := min(start+d.length, len(signal))
	seg := signal[start:end]

	peaks := spectrum.Strongest(d.analyzer.Probe(seg, d.candidates), peaksPerSegment)
	peaks = spectrum.AboveFloor(peaks, silenceFloor)
	sym := ClassifyWithTolerance(spectrum.Frequencies(peaks), d.tolerance)

	if ce := d.logger.Check(zap.DebugLevel, "decoded segment"); ce != nil {
		ce.Write(
			zap.Int("index", i),
			zap.Int("length", len(seg)),
			zap.Float64s("frequencies", spectrum.Frequencies(peaks)),
			zap.String("symbol", string(sym)))
	}

	return SegmentReport{
		Index:  i,
		Start:  start,
		Length: len(seg),
		RMS:    simdops.RMS(seg),
		Peaks:  peaks,
		Symbol: sym,
	}
}
