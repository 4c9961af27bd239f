package tonecodec

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-tonecodec/internal/testutil"
)

func TestEncodeText_LiteralAB(t *testing.T) {
	signal, err := EncodeText("ab", DefaultSampleRate, DefaultSegmentDuration)
	require.NoError(t, err)
	require.Len(t, signal, 640)

	wantA := testutil.ToneSum(DefaultSampleRate, 320, 100, 1100, 2500)
	wantB := testutil.ToneSum(DefaultSampleRate, 320, 100, 1100, 3000)

	testutil.AssertSamplesInDelta(t, wantA, signal[:320], testutil.SampleTolerance)
	testutil.AssertSamplesInDelta(t, wantB, signal[320:], testutil.SampleTolerance)

	// t=0 is included, so every segment starts at the 3.0 peak.
	assert.InDelta(t, 3.0, signal[0], 1e-12)
	assert.InDelta(t, 3.0, signal[320], 1e-12)
}

func TestEncodeText_LengthInvariant(t *testing.T) {
	for _, s := range []string{"", "a", "hello world", "the quick brown fox"} {
		signal, err := EncodeText(s, DefaultSampleRate, DefaultSegmentDuration)
		require.NoError(t, err)
		assert.Len(t, signal, len(s)*320, "text %q", s)
	}
}

func TestEncodeText_Empty(t *testing.T) {
	signal, err := EncodeText("", DefaultSampleRate, DefaultSegmentDuration)
	require.NoError(t, err)
	assert.Empty(t, signal)
}

func TestEncodeText_UnknownSymbol(t *testing.T) {
	tests := []string{"hello!", "abc1", "tab\there", "naïve"}

	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			signal, err := EncodeText(s, DefaultSampleRate, DefaultSegmentDuration)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnknownSymbol))
			assert.Nil(t, signal)
		})
	}
}

func TestEncodeText_ErrorNamesCharacter(t *testing.T) {
	_, err := EncodeText("hello!", DefaultSampleRate, DefaultSegmentDuration)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `'!'`)
	assert.Contains(t, err.Error(), "position 5")
}

func TestEncodeText_Lowercases(t *testing.T) {
	upper, err := EncodeText("Hello World", DefaultSampleRate, DefaultSegmentDuration)
	require.NoError(t, err)
	lower, err := EncodeText("hello world", DefaultSampleRate, DefaultSegmentDuration)
	require.NoError(t, err)

	assert.Equal(t, lower, upper)
}

func TestEncodeText_Deterministic(t *testing.T) {
	first, err := EncodeText("determinism check", DefaultSampleRate, DefaultSegmentDuration)
	require.NoError(t, err)
	second, err := EncodeText("determinism check", DefaultSampleRate, DefaultSegmentDuration)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		if math.Float64bits(first[i]) != math.Float64bits(second[i]) {
			t.Fatalf("sample %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestEncodeText_Bounded(t *testing.T) {
	signal, err := EncodeText("abcdefghijklmnopqrstuvwxyz ", DefaultSampleRate, DefaultSegmentDuration)
	require.NoError(t, err)

	testutil.AssertNoNaNOrInf(t, signal)
	testutil.AssertAllInRange(t, signal, -3.0, 3.0+1e-12)
}

func TestEncodeText_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate float64
		duration   float64
	}{
		{"zero rate", 0, 0.04},
		{"negative rate", -8000, 0.04},
		{"zero duration", 8000, 0},
		{"sub-sample segment", 8000, 0.00001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeText("a", tt.sampleRate, tt.duration)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfiguration))
		})
	}
}

func TestSynthesizeSegment(t *testing.T) {
	seg, err := SynthesizeSegment(' ', DefaultSampleRate, DefaultSegmentDuration)
	require.NoError(t, err)

	want := testutil.ToneSum(DefaultSampleRate, 320, 500, 1500, 3500)
	testutil.AssertSamplesInDelta(t, want, seg, testutil.SampleTolerance)
}

func TestSynthesizeSegment_RoundsLength(t *testing.T) {
	// 10 Hz * 0.25 s = 2.5 samples, rounded to 3.
	seg, err := SynthesizeSegment('a', 10, 0.25)
	require.NoError(t, err)
	assert.Len(t, seg, 3)

	c, err := New(&Config{SampleRate: 10, SegmentDuration: 0.25})
	require.NoError(t, err)
	assert.Equal(t, len(seg), c.SegmentLength())

	signal, err := c.Encode("ab")
	require.NoError(t, err)
	assert.Len(t, signal, 2*c.SegmentLength())
}

func TestSynthesizeSegment_Unknown(t *testing.T) {
	_, err := SynthesizeSegment('A', DefaultSampleRate, DefaultSegmentDuration)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownSymbol))
}

func TestCodec_EncodeMatchesEncodeText(t *testing.T) {
	c, err := New(&Config{SampleRate: DefaultSampleRate, SegmentDuration: DefaultSegmentDuration})
	require.NoError(t, err)

	fromCodec, err := c.Encode("cached segments")
	require.NoError(t, err)
	direct, err := EncodeText("cached segments", DefaultSampleRate, DefaultSegmentDuration)
	require.NoError(t, err)

	assert.Equal(t, direct, fromCodec)
}
