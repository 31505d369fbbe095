package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/cwbudde/algo-pvoc/dsp/dither"
	"github.com/cwbudde/algo-pvoc/dsp/effects/pitch"
	"github.com/cwbudde/algo-pvoc/internal/audiofile"
	"github.com/cwbudde/algo-pvoc/internal/playback"
	"github.com/cwbudde/algo-pvoc/internal/session"
	timestats "github.com/cwbudde/algo-pvoc/stats/time"
)

const outputSuffix = ".pvoc.wav"

// run processes every input and returns the number of failures.
func run(cfg config, inputs []string) int {
	registry := audiofile.DefaultRegistry()

	var (
		p   *mpb.Progress
		bar *mpb.Bar
	)

	if cfg.progress {
		p = mpb.New(mpb.WithWidth(64))
		bar = p.AddBar(int64(len(inputs)),
			mpb.PrependDecorators(
				decor.Name("Processing: "),
				decor.CountersNoUnit("%d / %d"),
			),
			mpb.AppendDecorators(
				decor.Percentage(),
				decor.EwmaETA(decor.ET_STYLE_GO, 60),
			),
		)
	}

	jobs := make(chan string, len(inputs))
	errs := make(chan error, len(inputs))

	var wg sync.WaitGroup
	for range min(cfg.workers, len(inputs)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				errs <- processFile(registry, cfg, path)
			}
		}()
	}

	for _, in := range inputs {
		jobs <- in
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(errs)
	}()

	failed := 0
	for err := range errs {
		if bar != nil {
			bar.Increment()
		}
		if err != nil {
			failed++
			logrus.WithFields(logrus.Fields{
				"function": "run",
				"error":    err,
			}).Error("Processing failed")
		}
	}

	if p != nil {
		p.Wait()
	}

	return failed
}

func processFile(registry *audiofile.Registry, cfg config, path string) error {
	seg, err := registry.Load(path)
	if err != nil {
		return err
	}

	proc, err := pitch.NewProcessor(seg, cfg.vocoderOptions()...)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	start, end := cfg.sampleRange(seg.Len(), seg.SampleRate())

	log := logrus.WithFields(logrus.Fields{
		"function": "processFile",
		"input":    filepath.Base(path),
		"start":    start,
		"end":      end,
		"stretch":  cfg.stretch,
		"pitch":    cfg.pitch,
	})
	log.Debug("Processing input")

	var out []float64
	if cfg.loopSeconds > 0 {
		out, err = renderLoop(proc, cfg, start, end)
	} else {
		out, err = proc.Process(start, end, cfg.stretch, cfg.pitch)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	dst := outputPath(cfg.outDir, path)

	q, err := cfg.quantizer()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if err := writeOutput(dst, out, int(seg.SampleRate()), q); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	levels := timestats.Calculate(out)
	log.WithFields(logrus.Fields{
		"output":  dst,
		"samples": len(out),
		"peak_db": fmt.Sprintf("%.1f", levels.Peak_dB),
		"rms_db":  fmt.Sprintf("%.1f", levels.RMS_dB),
	}).Info("Wrote output")

	if levels.Clipped > 0 {
		log.WithField("clipped", levels.Clipped).Warn("Output reaches full scale")
	}

	return nil
}

// renderLoop plays the selected range through a session controller and a
// looper in device-sized blocks, the way an interactive player would, and
// collects loopSeconds of output.
func renderLoop(proc *pitch.Processor, cfg config, start, end int) ([]float64, error) {
	looper := playback.NewLooper()
	scfg := session.DefaultConfig()
	ctrl := session.NewController(proc, looper, scfg)

	n := float64(proc.Len())
	settings := session.Settings{
		Start:   float64(start) / n,
		End:     float64(end) / n,
		Stretch: cfg.stretch,
		Pitch:   cfg.pitch,
	}

	if _, err := ctrl.Apply(context.Background(), settings); err != nil {
		return nil, err
	}

	looper.Play()

	total := int(cfg.loopSeconds * proc.SampleRate())
	out := make([]float64, 0, total)
	block := make([]float32, scfg.BlockSize)

	for len(out) < total {
		looper.Read(block)
		for _, v := range block[:min(len(block), total-len(out))] {
			out = append(out, float64(v))
		}
	}

	return out, nil
}

func outputPath(outDir, input string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + outputSuffix
	if outDir == "" {
		return filepath.Join(filepath.Dir(input), base)
	}

	return filepath.Join(outDir, base)
}

func writeOutput(path string, samples []float64, sampleRate int, q *dither.Quantizer) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := audiofile.EncodeWAV(f, samples, sampleRate, q); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
