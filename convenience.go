package tonecodec

// Encode encodes text with the default 8 kHz, 40 ms configuration.
func Encode(text string) ([]float64, error) {
	return EncodeText(text, DefaultSampleRate, DefaultSegmentDuration)
}

// Decode decodes a signal sampled at sampleRate using the default 40 ms
// segment duration. Signals recorded at a rate other than the one they were
// encoded at should be resampled first.
func Decode(signal []float64, sampleRate int) (string, error) {
	return DecodeSignal(signal, sampleRate, DefaultSegmentDuration)
}

// NewDefault returns a codec using DefaultConfig.
func NewDefault() *Codec {
	cfg := DefaultConfig()
	c, err := New(&cfg)
	if err != nil {
		panic("tonecodec: default configuration rejected: " + err.Error())
	}
	return c
}
