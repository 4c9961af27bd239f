package main

import (
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	tonecodec "github.com/tphakala/go-tonecodec"
	"github.com/tphakala/go-tonecodec/internal/wavio"
	"go.uber.org/zap"
)

const defaultOutputPath = "encoded.wav"

// newFlagSet creates a subcommand flag set with the codec options shared
// by every command.
func newFlagSet(env *environment, name, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	fs.IntVar(&env.cfg.SampleRate, "rate", env.cfg.SampleRate, "Codec sample rate in Hz")
	fs.Float64Var(&env.cfg.SegmentDuration, "duration", env.cfg.SegmentDuration, "Seconds per symbol")
	fs.Float64Var(&env.cfg.Tolerance, "tolerance", env.cfg.Tolerance, "Classifier tolerance in Hz")
	fs.BoolVar(&env.cfg.Parallel, "parallel", env.cfg.Parallel, "Decode segments in parallel")
	fs.Usage = func() {
		fmt.Fprintf(env.stderr, "Usage: tonecodec %s %s\n\nOptions:\n", name, usage)
		fs.PrintDefaults()
	}
	return fs
}

// newCodec builds a codec from the (flag-adjusted) configuration.
func newCodec(env *environment) (*tonecodec.Codec, error) {
	cfg := env.cfg.Codec()
	cfg.Logger = env.logger
	return tonecodec.New(&cfg)
}

func runEncode(env *environment, args []string) error {
	fs := newFlagSet(env, "encode", "[options] text...")
	output := fs.String("o", defaultOutputPath, "Output WAV file")
	fs.IntVar(&env.cfg.BitDepth, "bits", env.cfg.BitDepth, "Output bit depth: 16, 24 or 32")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	codec, err := newCodec(env)
	if err != nil {
		return err
	}

	text := strings.Join(fs.Args(), " ")
	signal, err := codec.Encode(text)
	if err != nil {
		return err
	}

	if err := wavio.WriteFile(*output, signal, env.cfg.SampleRate, env.cfg.BitDepth); err != nil {
		return err
	}

	env.logger.Info("wrote encoded message",
		zap.String("path", *output),
		zap.Int("characters", len([]rune(text))),
		zap.Int("samples", len(signal)),
		zap.Duration("duration", secondsToDuration(float64(len(signal))/float64(env.cfg.SampleRate))))

	fmt.Fprintf(env.stdout, "Encoded %d characters -> %s (%d samples at %d Hz)\n",
		len([]rune(text)), *output, len(signal), env.cfg.SampleRate)
	return nil
}

// loadSignal reads path and, when resample is set, converts it to the
// codec sample rate.
func loadSignal(env *environment, path string, resample bool) ([]float64, error) {
	a, err := wavio.ReadFile(path)
	if err != nil {
		return nil, err
	}

	env.logger.Debug("read WAV file",
		zap.String("path", path),
		zap.Int("rate", a.SampleRate),
		zap.Int("channels", a.Channels),
		zap.Int("bit_depth", a.BitDepth),
		zap.Int("samples", len(a.Samples)))

	if a.SampleRate == env.cfg.SampleRate {
		return a.Samples, nil
	}

	if !resample {
		env.logger.Warn("file sample rate differs from codec rate; decoding at file rate",
			zap.Int("file_rate", a.SampleRate),
			zap.Int("codec_rate", env.cfg.SampleRate))
		env.cfg.SampleRate = a.SampleRate
		return a.Samples, nil
	}

	env.logger.Info("resampling input",
		zap.Int("from", a.SampleRate),
		zap.Int("to", env.cfg.SampleRate))
	return wavio.ResampleTo(a.Samples, a.SampleRate, env.cfg.SampleRate)
}

func runDecode(env *environment, args []string) error {
	fs := newFlagSet(env, "decode", "[options] input.wav")
	resample := fs.Bool("resample", true, "Resample input to the codec rate when they differ")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}

	signal, err := loadSignal(env, fs.Arg(0), *resample)
	if err != nil {
		return err
	}

	codec, err := newCodec(env)
	if err != nil {
		return err
	}

	fmt.Fprintln(env.stdout, codec.Decode(signal))
	return nil
}

func runAnalyze(env *environment, args []string) error {
	fs := newFlagSet(env, "analyze", "[options] input.wav")
	resample := fs.Bool("resample", true, "Resample input to the codec rate when they differ")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}

	signal, err := loadSignal(env, fs.Arg(0), *resample)
	if err != nil {
		return err
	}

	codec, err := newCodec(env)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(env.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEG\tSTART\tLEN\tRMS\tPEAKS (Hz @ magnitude)\tSYMBOL")
	for _, r := range codec.Analyze(signal) {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%.3f\t%s\t%q\n",
			r.Index, r.Start, r.Length, r.RMS, formatPeaks(r.Peaks), r.Symbol)
	}
	return tw.Flush()
}

func formatPeaks(peaks []tonecodec.Peak) string {
	if len(peaks) == 0 {
		return "-"
	}
	parts := make([]string, len(peaks))
	for i, p := range peaks {
		parts[i] = fmt.Sprintf("%.0f@%.1f", p.Frequency, p.Magnitude)
	}
	return strings.Join(parts, " ")
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
