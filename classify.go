package tonecodec

import "math"

// Classify maps up to three peak frequencies to a symbol using
// DefaultTolerance. See ClassifyWithTolerance.
func Classify(freqs []float64) rune {
	return ClassifyWithTolerance(freqs, DefaultTolerance)
}

// ClassifyWithTolerance returns the first symbol, in table order, for which
// at least three of freqs lie within tolerance Hz of any of its tones.
// Each input frequency counts at most once per symbol. Returns Unknown when
// no symbol qualifies.
func ClassifyWithTolerance(freqs []float64, tolerance float64) rune {
	if len(freqs) < minMatchCount {
		return Unknown
	}

	for _, e := range symbolTable {
		if matchCount(freqs, e.triplet, tolerance) >= minMatchCount {
			return e.symbol
		}
	}

	return Unknown
}

// matchCount counts inputs that sit within tolerance of any tone in tr.
func matchCount(freqs []float64, tr Triplet, tolerance float64) int {
	count := 0
	for _, f := range freqs {
		if math.Abs(tr.Low-f) <= tolerance ||
			math.Abs(tr.Mid-f) <= tolerance ||
			math.Abs(tr.High-f) <= tolerance {
			count++
		}
	}
	return count
}
