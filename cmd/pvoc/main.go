// Command pvoc time-stretches and pitch-shifts audio files with a phase
// vocoder.
//
// Usage:
//
//	pvoc [flags] input...
//
// Each input is downmixed to mono, processed and written next to the input
// (or into -out) as <name>.pvoc.wav.
//
// Examples:
//
//	pvoc -stretch 1.5 song.wav
//	pvoc -semitones -3 -start 10 -end 25 song.mp3
//	pvoc -stretch 0.8 -pitch 1.2 -loop-seconds 30 -out renders/ a.ogg b.aiff
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-pvoc/internal/audiofile"
)

func main() {
	cfg := defaultConfig()

	flag.Float64Var(&cfg.stretch, "stretch", cfg.stretch, "time stretch factor (>1 is slower)")
	flag.Float64Var(&cfg.pitch, "pitch", cfg.pitch, "pitch factor (>1 is higher)")
	flag.Float64Var(&cfg.semitones, "semitones", math.NaN(), "pitch shift in semitones, overrides -pitch")
	flag.Float64Var(&cfg.startSec, "start", cfg.startSec, "range start in seconds")
	flag.Float64Var(&cfg.endSec, "end", cfg.endSec, "range end in seconds (0 = end of file)")
	flag.IntVar(&cfg.window, "window", cfg.window, "analysis window length (power of two)")
	flag.IntVar(&cfg.hop, "hop", cfg.hop, "analysis hop in samples (0 = window/4)")
	flag.BoolVar(&cfg.noLock, "no-lock", cfg.noLock, "disable identity phase locking")
	flag.Float64Var(&cfg.transientDB, "transient-db", cfg.transientDB, "frame energy rise in dB that resets phases")
	flag.StringVar(&cfg.outDir, "out", cfg.outDir, "output directory (default: next to each input)")
	flag.IntVar(&cfg.bits, "bits", cfg.bits, "output bit depth (16, 24 or 32)")
	flag.StringVar(&cfg.dither, "dither", cfg.dither, "output dither: none, rpdf or tpdf")
	flag.BoolVar(&cfg.shaping, "noise-shaping", cfg.shaping, "shape quantization noise towards high frequencies")
	flag.Float64Var(&cfg.loopSeconds, "loop-seconds", cfg.loopSeconds,
		"render this many seconds of looped playback instead of a single pass")
	flag.IntVar(&cfg.workers, "workers", runtime.NumCPU(), "files processed in parallel")
	flag.BoolVar(&cfg.progress, "progress", true, "show a progress bar")
	verbose := flag.Bool("v", false, "verbose logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pvoc [flags] input...\n\n")
		fmt.Fprintf(os.Stderr, "Time-stretches and pitch-shifts audio files with a phase vocoder.\n")
		fmt.Fprintf(os.Stderr, "Reads %s; writes <name>.pvoc.wav.\n\n",
			strings.Join(audiofile.DefaultRegistry().Formats(), ", "))
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pvoc -stretch 1.5 song.wav\n")
		fmt.Fprintf(os.Stderr, "  pvoc -semitones -3 -start 10 -end 25 song.mp3\n")
		fmt.Fprintf(os.Stderr, "  pvoc -stretch 0.8 -loop-seconds 30 -out renders/ a.ogg\n")
	}
	flag.Parse()

	logrus.SetOutput(os.Stderr)
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	inputs := flag.Args()
	if len(inputs) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := cfg.resolve(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	failed := run(cfg, inputs)
	if failed > 0 {
		logrus.WithFields(logrus.Fields{
			"function": "main",
			"failed":   failed,
			"total":    len(inputs),
		}).Error("Some inputs could not be processed")
		os.Exit(1)
	}
}
