// Command tonecodec encodes text to multi-tone WAV files and decodes them.
//
// Usage:
//
//	tonecodec encode -o hello.wav hello world
//	tonecodec decode hello.wav
//	tonecodec decode -resample=false recording.wav
//	tonecodec analyze hello.wav
//
// Defaults come from TONECODEC_* environment variables, optionally loaded
// from a .env file in the working directory. Flags override them.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/tphakala/go-tonecodec/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	minRequiredArgs = 1
	exitUsage       = 2
)

// errUsage marks command-line mistakes; usage has already been printed.
var errUsage = errors.New("usage error")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(exitUsage)
		}
		log.SetFlags(0)
		log.SetPrefix("tonecodec: ")
		log.Fatal(err)
	}
}

// command is one tonecodec subcommand.
type command struct {
	name    string
	summary string
	run     func(env *environment, args []string) error
}

var commands = []command{
	{"encode", "encode text into a WAV file", runEncode},
	{"decode", "decode a WAV file to text", runDecode},
	{"analyze", "print per-segment peaks of a WAV file", runAnalyze},
}

// environment carries what every subcommand needs.
type environment struct {
	cfg    *config.Config
	logger *zap.Logger
	stdout io.Writer
	stderr io.Writer
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	global := flag.NewFlagSet("tonecodec", flag.ContinueOnError)
	global.SetOutput(stderr)
	verbose := global.Bool("v", false, "Verbose (debug) logging")
	global.Usage = func() { printUsage(stderr, global) }
	if err := global.Parse(args); err != nil {
		return errUsage
	}

	rest := global.Args()
	if len(rest) < minRequiredArgs {
		printUsage(stderr, global)
		return errUsage
	}

	if *verbose {
		cfg.LogLevel = zapcore.DebugLevel
	}
	logger := newLogger(cfg.LogLevel, stderr)
	defer func() { _ = logger.Sync() }()

	env := &environment{cfg: cfg, logger: logger, stdout: stdout, stderr: stderr}
	for _, c := range commands {
		if c.name == rest[0] {
			return c.run(env, rest[1:])
		}
	}

	fmt.Fprintf(stderr, "unknown command %q\n\n", rest[0])
	printUsage(stderr, global)
	return errUsage
}

func printUsage(w io.Writer, global *flag.FlagSet) {
	fmt.Fprintf(w, "Usage: tonecodec [-v] <command> [options] [args]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.summary)
	}
	fmt.Fprintf(w, "\nGlobal options:\n")
	global.PrintDefaults()
}

// newLogger builds a console logger writing to w at level.
func newLogger(level zapcore.Level, w io.Writer) *zap.Logger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(zapcore.AddSync(w)),
		zap.NewAtomicLevelAt(level),
	)
	return zap.New(core)
}
