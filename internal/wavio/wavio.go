// Package wavio reads and writes the WAV files exchanged with the codec and
// converts their sample rate when it differs from the codec rate.
package wavio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	resampling "github.com/tphakala/go-audio-resampler"
	"github.com/tphakala/go-tonecodec/internal/simdops"
	"gonum.org/v1/gonum/floats"
)

// DefaultBitDepth is the PCM sample size used when writing.
const DefaultBitDepth = bitsPerSample16

// WAV format constants
const (
	formatPCM       = 1 // integer PCM
	formatIEEEFloat = 3 // 32-bit IEEE float
	monoChannels    = 1
	bitsPerSample8  = 8
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32
	unsigned8Offset = 128 // 8-bit PCM is unsigned
	bytesPerFloat32 = 4
)

// alignmentLeadSeconds of silence is prepended before resampling. It must
// exceed half the resampler's filter length.
const alignmentLeadSeconds = 1

// ErrUnsupportedFormat indicates a WAV encoding this package cannot read or write.
var ErrUnsupportedFormat = errors.New("unsupported WAV format")

// Audio is a decoded WAV file mixed down to one channel.
type Audio struct {
	Samples    []float64 // mono samples in [-1, 1]
	SampleRate int       // Hz, from the file header
	Channels   int       // channel count in the file before mixdown
	BitDepth   int       // bits per sample in the file
}

// Duration returns the length of the audio in seconds.
func (a *Audio) Duration() float64 {
	if a.SampleRate == 0 {
		return 0
	}
	return float64(len(a.Samples)) / float64(a.SampleRate)
}

// ReadFile opens and decodes a WAV file.
func ReadFile(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	a, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// Read decodes PCM (8/16/24/32-bit) or 32-bit float WAV data from r.
// Multi-channel files are averaged to mono.
func Read(r io.ReadSeeker) (*Audio, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, errors.New("invalid WAV file")
	}

	format := decoder.Format()
	bitDepth := int(decoder.BitDepth)
	channels := format.NumChannels
	if channels < monoChannels {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, channels)
	}

	var interleaved []float64
	var err error
	switch decoder.WavAudioFormat {
	case formatPCM:
		interleaved, err = readPCM(decoder, bitDepth)
	case formatIEEEFloat:
		interleaved, err = readFloat32(decoder, bitDepth)
	default:
		err = fmt.Errorf("%w: audio format %d", ErrUnsupportedFormat, decoder.WavAudioFormat)
	}
	if err != nil {
		return nil, err
	}

	return &Audio{
		Samples:    Downmix(interleaved, channels),
		SampleRate: format.SampleRate,
		Channels:   channels,
		BitDepth:   bitDepth,
	}, nil
}

// readPCM reads integer PCM and scales it to [-1, 1].
func readPCM(decoder *wav.Decoder, bitDepth int) ([]float64, error) {
	maxVal := audio.IntMaxSignedValue(bitDepth)
	if maxVal == 0 {
		return nil, fmt.Errorf("%w: %d-bit PCM", ErrUnsupportedFormat, bitDepth)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read PCM data: %w", err)
	}

	invMaxVal := 1.0 / float64(maxVal)
	out := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		if bitDepth == bitsPerSample8 {
			v -= unsigned8Offset
		}
		out[i] = float64(v) * invMaxVal
	}
	return out, nil
}

// readFloat32 reads IEEE float samples straight from the PCM chunk.
func readFloat32(decoder *wav.Decoder, bitDepth int) ([]float64, error) {
	if bitDepth != bitsPerSample32 {
		return nil, fmt.Errorf("%w: %d-bit float", ErrUnsupportedFormat, bitDepth)
	}

	if err := decoder.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("failed to find PCM data: %w", err)
	}
	if decoder.PCMChunk == nil {
		return nil, errors.New("PCM chunk not found")
	}

	raw, err := io.ReadAll(decoder.PCMChunk)
	if err != nil {
		return nil, fmt.Errorf("failed to read PCM data: %w", err)
	}

	out := make([]float64, len(raw)/bytesPerFloat32)
	for i := range out {
		bits := binary.LittleEndian.Uint32(raw[i*bytesPerFloat32:])
		out[i] = float64(math.Float32frombits(bits))
	}
	return out, nil
}

// Downmix averages interleaved frames of channels samples into mono.
// Any incomplete trailing frame is dropped.
func Downmix(interleaved []float64, channels int) []float64 {
	if channels <= monoChannels {
		return interleaved
	}

	frames := len(interleaved) / channels
	out := make([]float64, frames)
	for i := range out {
		out[i] = simdops.Mean(interleaved[i*channels : (i+1)*channels])
	}
	return out
}

// WriteFile writes samples as a mono PCM WAV file. See Write.
func WriteFile(path string, samples []float64, sampleRate, bitDepth int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	return Write(f, samples, sampleRate, bitDepth)
}

// Write encodes samples as mono integer PCM of bitDepth bits (16, 24 or 32).
// The signal is peak-normalized to full scale first; a silent signal is
// written as zeros.
func Write(w io.WriteSeeker, samples []float64, sampleRate, bitDepth int) error {
	switch bitDepth {
	case bitsPerSample16, bitsPerSample24, bitsPerSample32:
	default:
		return fmt.Errorf("%w: cannot write %d-bit PCM", ErrUnsupportedFormat, bitDepth)
	}

	buf := &audio.IntBuffer{
		Data:           Quantize(samples, bitDepth),
		Format:         &audio.Format{NumChannels: monoChannels, SampleRate: sampleRate},
		SourceBitDepth: bitDepth,
	}

	encoder := wav.NewEncoder(w, sampleRate, bitDepth, monoChannels, formatPCM)
	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to write WAV data: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	return nil
}

// Quantize peak-normalizes samples and converts them to integers of
// bitDepth bits.
func Quantize(samples []float64, bitDepth int) []int {
	maxVal := float64(audio.IntMaxSignedValue(bitDepth))

	scaled := make([]float64, len(samples))
	simdops.Normalize(scaled, samples, maxVal)

	out := make([]int, len(scaled))
	for i, v := range scaled {
		out[i] = int(math.Round(v))
	}
	return out
}

// ResampleTo converts samples from fromRate to toRate. Equal rates return
// the input unchanged. The output is aligned with the input in time and
// holds round(len(samples)*toRate/fromRate) samples, so fixed-length frames
// keep their boundaries across the conversion.
func ResampleTo(samples []float64, fromRate, toRate int) ([]float64, error) {
	if fromRate <= 0 || toRate <= 0 {
		return nil, fmt.Errorf("%w: sample rates must be positive (%d -> %d)",
			ErrUnsupportedFormat, fromRate, toRate)
	}
	if fromRate == toRate || len(samples) == 0 {
		return samples, nil
	}

	want := int(math.Round(float64(len(samples)) * float64(toRate) / float64(fromRate)))
	lead := fromRate * alignmentLeadSeconds

	delay, err := resamplerDelay(lead, fromRate, toRate)
	if err != nil {
		return nil, err
	}

	padded := make([]float64, lead+len(samples))
	copy(padded[lead:], samples)

	converted, err := resampleMono(padded, fromRate, toRate)
	if err != nil {
		return nil, err
	}

	out := make([]float64, want)
	if delay < len(converted) {
		copy(out, converted[delay:])
	}
	return out, nil
}

// resamplerDelay returns the output index that corresponds to input index
// lead, found by passing a unit impulse through an identical resampler.
func resamplerDelay(lead, fromRate, toRate int) (int, error) {
	impulse := make([]float64, 2*lead+1)
	impulse[lead] = 1

	response, err := resampleMono(impulse, fromRate, toRate)
	if err != nil {
		return 0, err
	}
	if len(response) == 0 {
		return 0, fmt.Errorf("resampling %d Hz to %d Hz: empty impulse response", fromRate, toRate)
	}

	for i, v := range response {
		response[i] = math.Abs(v)
	}
	peak := floats.MaxIdx(response)
	if peak == 0 {
		return 0, fmt.Errorf("resampling %d Hz to %d Hz: filter longer than %d samples lead-in",
			fromRate, toRate, lead)
	}
	return peak, nil
}

// resampleMono runs samples through a fresh resampler and flushes it.
func resampleMono(samples []float64, fromRate, toRate int) ([]float64, error) {
	r, err := resampling.NewEngine(float64(fromRate), float64(toRate), resampling.QualityHigh)
	if err != nil {
		return nil, fmt.Errorf("resampling %d Hz to %d Hz: %w", fromRate, toRate, err)
	}

	out, err := r.Process(samples)
	if err != nil {
		return nil, fmt.Errorf("resampling %d Hz to %d Hz: %w", fromRate, toRate, err)
	}

	flushed, err := r.Flush()
	if err != nil {
		return nil, fmt.Errorf("flushing resampler: %w", err)
	}
	return append(out, flushed...), nil
}
