// Package tonecodec encodes text as multi-tone audio and decodes it back.
//
// Each of 27 symbols (the lowercase letters a-z and space) is assigned a
// triplet of tones, one from each of three frequency bands:
//
//	low:  100, 300, 500 Hz
//	mid:  1100, 1300, 1500 Hz
//	high: 2500, 3000, 3500 Hz
//
// The triplets form a base-3 positional code in alphabet order, so 'a' is
// (100, 1100, 2500), 'b' is (100, 1100, 3000) and ' ' is (500, 1500, 3500).
//
// # Quick Start
//
// For one-shot encoding and decoding with the default 8 kHz sample rate and
// 40 ms per symbol:
//
//	signal, err := tonecodec.Encode("hello world")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	text, err := tonecodec.Decode(signal, tonecodec.DefaultSampleRate)
//
// For repeated use, build a [Codec] from a [Config]:
//
//	cfg := tonecodec.DefaultConfig()
//	cfg.EnableParallel = true
//	c, err := tonecodec.New(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	text := c.Decode(signal)
//
// # Encoding
//
// Every character becomes one segment of round(SampleRate*SegmentDuration)
// samples holding the sum of three unit-amplitude cosines. Segments are
// concatenated with no gaps, so a message of n characters is exactly
// n*320 samples at the defaults. Input is lowercased first; any other
// character fails the whole call with [ErrUnknownSymbol].
//
// # Decoding
//
// The signal is cut into segments of the same length; a short trailing
// segment is decoded as-is. For each segment the decoder takes the real FFT
// magnitude spectrum, reads the bin nearest to each of the nine table
// frequencies, keeps the three strongest and passes their bin frequencies to
// [Classify]. Ties in magnitude keep the order of [DistinctFrequencies].
//
// [Classify] walks the table in order and returns the first symbol for which
// all three frequencies fall within the tolerance (100 Hz by default) of one
// of its tones, or [Unknown] when none does. Silent segments decode to
// [Unknown].
//
// # Thread Safety
//
// A [Codec] is safe for concurrent use. With EnableParallel set, a single
// Decode call spreads segments over GOMAXPROCS goroutines; the output is
// identical to sequential decoding.
package tonecodec
