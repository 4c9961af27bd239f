package simdops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRMS(t *testing.T) {
	tests := []struct {
		name  string
		input []float64
		want  float64
	}{
		{"empty", nil, 0},
		{"silence", []float64{0, 0, 0, 0}, 0},
		{"constant", []float64{2, 2, 2, 2}, 2},
		{"square", []float64{1, -1, 1, -1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RMS(tt.input), 1e-12)
		})
	}
}

func TestRMS_Float32(t *testing.T) {
	assert.InDelta(t, 3.0, float64(RMS([]float32{3, -3, 3})), 1e-6)
}

func TestMean(t *testing.T) {
	assert.InDelta(t, 0.0, Mean[float64](nil), 0)
	assert.InDelta(t, 2.5, Mean([]float64{1, 2, 3, 4}), 1e-12)
}

func TestMaxAbs(t *testing.T) {
	assert.InDelta(t, 3.0, MaxAbs([]float64{1, -3, 2}), 0)
	assert.InDelta(t, 0.0, MaxAbs([]float64{}), 0)
}

func TestNormalize(t *testing.T) {
	src := []float64{0.5, -1.5, 3.0, -0.75}
	dst := make([]float64, len(src))

	gain := Normalize(dst, src, 1.0)

	assert.InDelta(t, 1.0/3.0, gain, 1e-12)
	assert.InDelta(t, 1.0, MaxAbs(dst), 1e-12)
	assert.InDelta(t, -0.5, dst[1], 1e-12)
}

func TestNormalize_Silence(t *testing.T) {
	src := []float64{0, 0, 0}
	dst := []float64{9, 9, 9}

	gain := Normalize(dst, src, 32767)

	assert.InDelta(t, 1.0, gain, 0)
	assert.Equal(t, []float64{0, 0, 0}, dst)
}

func TestFor(t *testing.T) {
	assert.NotNil(t, For[float32]())
	assert.NotNil(t, For[float64]())
	assert.InDelta(t, 6.0, For[float64]().Sum([]float64{1, 2, 3}), 1e-12)
}
