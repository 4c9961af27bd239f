package main

import (
	"github.com/tphakala/go-tonecodec/internal/simdops"
)

// toPlaybackFrames peak-normalizes signal to volume and converts it to
// float32, zero-padded to a whole number of buffers of bufSize samples.
func toPlaybackFrames(signal []float64, volume float32, bufSize int) []float32 {
	frames := make([]float32, len(signal))
	for i, v := range signal {
		frames[i] = float32(v)
	}
	simdops.Normalize(frames, frames, min(max(volume, 0), 1))

	if rem := len(frames) % bufSize; rem != 0 {
		frames = append(frames, make([]float32, bufSize-rem)...)
	}
	return frames
}
