// Package simdops provides SIMD-accelerated reductions used for signal
// levels and normalization, for both float32 and float64 samples.
package simdops

import (
	"math"

	"github.com/tphakala/simd/f32"
	"github.com/tphakala/simd/f64"
)

// Float is the type constraint for supported floating-point types.
type Float interface {
	float32 | float64
}

// Ops provides SIMD-accelerated operations for type F.
type Ops[F Float] struct {
	// DotProductUnsafe computes the dot product without bounds checking.
	// Use only when slices are guaranteed to have equal length.
	DotProductUnsafe func(a, b []F) F

	// Sum returns the sum of all elements.
	Sum func(a []F) F

	// Scale multiplies each element by scalar s: dst[i] = a[i] * s
	Scale func(dst, a []F, s F)
}

var (
	ops32 = Ops[float32]{
		DotProductUnsafe: f32.DotProductUnsafe,
		Sum:              f32.Sum,
		Scale:            f32.Scale,
	}
	ops64 = Ops[float64]{
		DotProductUnsafe: f64.DotProductUnsafe,
		Sum:              f64.Sum,
		Scale:            f64.Scale,
	}
)

// For returns the Ops instance for type F.
func For[F Float]() *Ops[F] {
	var zero F
	switch any(zero).(type) {
	case float32:
		ops, ok := any(&ops32).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float32")
		}
		return ops
	case float64:
		ops, ok := any(&ops64).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float64")
		}
		return ops
	default:
		panic("simdops: unsupported float type")
	}
}

// RMS returns the root-mean-square level of x, or 0 for an empty slice.
func RMS[F Float](x []F) F {
	if len(x) == 0 {
		return 0
	}
	energy := For[F]().DotProductUnsafe(x, x)
	return F(math.Sqrt(float64(energy) / float64(len(x))))
}

// Mean returns the arithmetic mean of x, or 0 for an empty slice.
func Mean[F Float](x []F) F {
	if len(x) == 0 {
		return 0
	}
	return For[F]().Sum(x) / F(len(x))
}

// MaxAbs returns the largest absolute sample value in x.
func MaxAbs[F Float](x []F) F {
	var peak F
	for _, v := range x {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	return peak
}

// Normalize scales src so its largest absolute sample equals peak and
// writes the result to dst. A silent src is copied unchanged.
// Returns the gain applied.
func Normalize[F Float](dst, src []F, peak F) F {
	maxAbs := MaxAbs(src)
	if maxAbs == 0 {
		copy(dst, src)
		return 1
	}
	gain := peak / maxAbs
	For[F]().Scale(dst, src, gain)
	return gain
}
