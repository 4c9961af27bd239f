// Package spectrum computes magnitude spectra of short audio segments and
// looks up the bins nearest to a set of probe frequencies.
package spectrum

import (
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// Peak is the spectral magnitude found for one probe frequency.
// Frequency is the centre of the matched bin, not the probe itself.
type Peak struct {
	Frequency float64
	Magnitude float64
}

// Analyzer computes real-input FFT spectra at a fixed sample rate.
// FFT plans are cached per segment length, so an Analyzer is not safe
// for concurrent use. Create one per goroutine.
type Analyzer struct {
	sampleRate float64
	plans      map[int]*fourier.FFT
	coeffs     []complex128
}

// NewAnalyzer creates an analyzer for signals sampled at sampleRate Hz.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{
		sampleRate: sampleRate,
		plans:      make(map[int]*fourier.FFT),
	}
}

// plan returns the cached FFT for length n.
func (a *Analyzer) plan(n int) *fourier.FFT {
	p, ok := a.plans[n]
	if !ok {
		p = fourier.NewFFT(n)
		a.plans[n] = p
	}
	return p
}

// Magnitudes returns |X[k]| for k in [0, len(seg)/2], the non-negative
// frequency half of the spectrum. An empty segment yields nil.
func (a *Analyzer) Magnitudes(seg []float64) []float64 {
	n := len(seg)
	if n == 0 {
		return nil
	}

	bins := n/2 + 1
	if cap(a.coeffs) < bins {
		a.coeffs = make([]complex128, bins)
	}
	coeffs := a.plan(n).Coefficients(a.coeffs[:bins], seg)

	mags := make([]float64, bins)
	for k, c := range coeffs {
		mags[k] = cmplx.Abs(c)
	}
	return mags
}

// BinFrequencies returns the centre frequency in Hz of each bin produced
// by Magnitudes for a segment of n samples.
func (a *Analyzer) BinFrequencies(n int) []float64 {
	if n == 0 {
		return nil
	}
	p := a.plan(n)
	freqs := make([]float64, n/2+1)
	for k := range freqs {
		freqs[k] = p.Freq(k) * a.sampleRate
	}
	return freqs
}

// NearestBin returns the index of the bin whose frequency is closest to
// freq. The lowest index wins an exact tie.
func NearestBin(binFreqs []float64, freq float64, dist []float64) int {
	for k, bf := range binFreqs {
		d := bf - freq
		if d < 0 {
			d = -d
		}
		dist[k] = d
	}
	return floats.MinIdx(dist[:len(binFreqs)])
}

// Probe measures the spectrum of seg at the bin nearest to each probe
// frequency and returns one Peak per probe, in probe order.
func (a *Analyzer) Probe(seg []float64, probes []float64) []Peak {
	if len(seg) == 0 {
		return nil
	}

	mags := a.Magnitudes(seg)
	binFreqs := a.BinFrequencies(len(seg))
	dist := make([]float64, len(binFreqs))

	peaks := make([]Peak, len(probes))
	for i, f := range probes {
		k := NearestBin(binFreqs, f, dist)
		peaks[i] = Peak{Frequency: binFreqs[k], Magnitude: mags[k]}
	}
	return peaks
}

// Strongest sorts peaks by magnitude, descending, and returns the first n.
// The sort is stable: equal magnitudes keep their probe order.
func Strongest(peaks []Peak, n int) []Peak {
	sorted := make([]Peak, len(peaks))
	copy(sorted, peaks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Magnitude > sorted[j].Magnitude
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// AboveFloor returns the leading peaks whose magnitude exceeds floor.
// peaks must already be sorted by descending magnitude.
func AboveFloor(peaks []Peak, floor float64) []Peak {
	for i, p := range peaks {
		if p.Magnitude <= floor {
			return peaks[:i]
		}
	}
	return peaks
}

// Frequencies extracts the frequency of each peak.
func Frequencies(peaks []Peak) []float64 {
	out := make([]float64, len(peaks))
	for i, p := range peaks {
		out[i] = p.Frequency
	}
	return out
}
