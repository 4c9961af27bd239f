package tonecodec

// Codec timing defaults
const (
	DefaultSampleRate      = 8000 // Hz
	DefaultSegmentDuration = 0.04 // seconds per symbol (320 samples at 8 kHz)
)

// Classifier constants
const (
	DefaultTolerance = 100.0 // Hz, max distance between a peak and a reference tone
	peaksPerSegment  = 3     // strongest candidate peaks passed to the classifier
	minMatchCount    = 3     // tones that must match for a symbol to be accepted
	silenceFloor     = 1e-9  // peaks at or below this magnitude are not tones

	// Unknown is emitted for segments no symbol explains.
	Unknown = '?'
)

// Frequency bands (Hz). Each symbol takes one tone from every band.
var (
	lowBand  = [3]float64{100, 300, 500}
	midBand  = [3]float64{1100, 1300, 1500}
	highBand = [3]float64{2500, 3000, 3500}
)

const (
	alphabetSize = 27 // a-z plus space
	minSegment   = 1  // minimum samples per segment
)
