// Command tone-play encodes text and plays it on the default audio device.
//
// Usage:
//
//	tone-play hello world
//	tone-play -volume 0.5 -repeat 3 sos
//
// Requires PortAudio (cgo).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gordonklaus/portaudio"
	tonecodec "github.com/tphakala/go-tonecodec"
	"github.com/tphakala/go-tonecodec/internal/config"
	"go.uber.org/zap"
)

const (
	framesPerBuffer = 512
	outputChannels  = 1
	inputChannels   = 0
	defaultVolume   = 0.8
)

func main() {
	logger, err := buildLogger(zap.NewProduction)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger); err != nil {
		logger.Fatal("playback failed", zap.Error(err))
	}
}

// buildLogger wraps a zap constructor so a failure is reported before any
// logger method is used.
func buildLogger(build func(...zap.Option) (*zap.Logger, error)) (*zap.Logger, error) {
	logger, err := build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

func run(logger *zap.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	volume := flag.Float64("volume", defaultVolume, "Peak output level, 0-1")
	repeat := flag.Int("repeat", 1, "Number of times to play the message")
	flag.IntVar(&cfg.SampleRate, "rate", cfg.SampleRate, "Sample rate in Hz")
	flag.Float64Var(&cfg.SegmentDuration, "duration", cfg.SegmentDuration, "Seconds per symbol")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] text...\n\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
		return fmt.Errorf("no text to play")
	}

	codecCfg := cfg.Codec()
	codecCfg.Logger = logger
	codec, err := tonecodec.New(&codecCfg)
	if err != nil {
		return err
	}

	signal, err := codec.Encode(strings.Join(flag.Args(), " "))
	if err != nil {
		return err
	}

	frames := toPlaybackFrames(signal, float32(*volume), framesPerBuffer)
	logger.Info("playing message",
		zap.Int("samples", len(signal)),
		zap.Int("rate", cfg.SampleRate),
		zap.Int("repeat", *repeat))

	return play(frames, float64(cfg.SampleRate), *repeat)
}

// play writes frames to the default output device repeat times.
func play(frames []float32, sampleRate float64, repeat int) (err error) {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initializing PortAudio: %w", err)
	}
	defer func() { _ = portaudio.Terminate() }()

	buf := make([]float32, framesPerBuffer)
	stream, err := portaudio.OpenDefaultStream(inputChannels, outputChannels, sampleRate, len(buf), &buf)
	if err != nil {
		return fmt.Errorf("opening output stream: %w", err)
	}
	defer func() {
		if cerr := stream.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("starting output stream: %w", err)
	}

	for range repeat {
		for off := 0; off < len(frames); off += len(buf) {
			copy(buf, frames[off:off+len(buf)])
			if err := stream.Write(); err != nil {
				return fmt.Errorf("writing audio: %w", err)
			}
		}
	}

	return stream.Stop()
}
