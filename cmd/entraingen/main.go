// Command entraingen renders neural-entrainment sessions to stereo WAV
// files.
//
// Usage:
//
//	entraingen [flags]
//
// A single session comes from flags; a multi-segment session schedule comes
// from a YAML file, with consecutive segments joined by frequency sweeps.
//
// Examples:
//
//	entraingen -frequency 10 -duration 300 -output out/alpha.wav
//	entraingen -frequency 6 -background white_noise -background-volume 0.1
//	entraingen -schedule wind_down.yaml -output out/wind_down.wav
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-entrain/entrain/core"
	"github.com/cwbudde/algo-entrain/entrain/mixer"
	"github.com/cwbudde/algo-entrain/entrain/pcm"
	"github.com/cwbudde/algo-entrain/entrain/safety"
	"github.com/cwbudde/algo-entrain/entrain/synth"
	"github.com/cwbudde/algo-entrain/entrain/transition"
	"github.com/cwbudde/algo-entrain/entrain/wavsink"
)

// segment is one fully resolved schedule entry.
type segment struct {
	Frequency        float64
	Duration         float64
	Volume           float64
	Transition       string
	Background       string
	BackgroundVolume float64
	Enrich           bool
}

// scheduleSegment is the YAML form of a segment. Volume is a pointer so an
// omitted volume inherits the -volume flag while an explicit 0 stays silent.
type scheduleSegment struct {
	Frequency        float64  `yaml:"frequency"`
	Duration         float64  `yaml:"duration"`
	Volume           *float64 `yaml:"volume"`
	Transition       string   `yaml:"transition"`
	Background       string   `yaml:"background"`
	BackgroundVolume float64  `yaml:"background_volume"`
	Enrich           bool     `yaml:"enrich"`
}

type schedule struct {
	Segments []scheduleSegment `yaml:"segments"`
}

func main() {
	output := flag.String("output", "out/session.wav", "Output WAV path")
	frequency := flag.Float64("frequency", 10.0, "Entrainment target frequency in Hz")
	duration := flag.Float64("duration", 300.0, "Session duration in seconds")
	volume := flag.Float64("volume", 0.7, "Volume in [0, 1]")
	transitionName := flag.String("transition", "sigmoid", "Transition curve: linear, exponential, sigmoid")
	background := flag.String("background", "", "Background bed: white_noise or ambient (empty for none)")
	backgroundVolume := flag.Float64("background-volume", 0.1, "Background volume in [0, 1]")
	enrich := flag.Bool("enrich", false, "Add harmonic overtone enrichment")
	scheduleFile := flag.String("schedule", "", "YAML session schedule (overrides single-session flags)")
	sampleRate := flag.Float64("sample-rate", core.DefaultSampleRate, "Output sample rate in Hz")
	seed := flag.Int64("seed", 1, "Noise seed for reproducible backgrounds")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	segments := []segment{{
		Frequency:        *frequency,
		Duration:         *duration,
		Volume:           *volume,
		Transition:       *transitionName,
		Background:       *background,
		BackgroundVolume: *backgroundVolume,
		Enrich:           *enrich,
	}}

	if *scheduleFile != "" {
		var err error
		segments, err = loadSchedule(*scheduleFile, *volume, *transitionName)
		if err != nil {
			logrus.WithError(err).Fatal("failed to load schedule")
		}
	}

	err := run(segments, *output, *sampleRate, *seed)
	if err != nil {
		logrus.WithError(err).Error("generation failed")
		os.Exit(1)
	}
}

func loadSchedule(path string, defaultVolume float64, defaultTransition string) ([]segment, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var sched schedule
	err = yaml.Unmarshal(raw, &sched)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(sched.Segments) == 0 {
		return nil, fmt.Errorf("schedule %s contains no segments", path)
	}

	segments := make([]segment, len(sched.Segments))
	for i, s := range sched.Segments {
		volume := defaultVolume
		if s.Volume != nil {
			volume = *s.Volume
		}
		transitionName := s.Transition
		if transitionName == "" {
			transitionName = defaultTransition
		}

		segments[i] = segment{
			Frequency:        s.Frequency,
			Duration:         s.Duration,
			Volume:           volume,
			Transition:       transitionName,
			Background:       s.Background,
			BackgroundVolume: s.BackgroundVolume,
			Enrich:           s.Enrich,
		}
	}
	return segments, nil
}

func run(segments []segment, output string, sampleRate float64, seed int64) error {
	limits := safety.DefaultLimits()
	for i, seg := range segments {
		ok, msg := limits.ValidateSession(seg.Frequency, seg.Volume, seg.Duration)
		if !ok {
			return fmt.Errorf("segment %d rejected: %s", i, msg)
		}
	}

	logPlan(segments)

	s := synth.NewSynthesizer(core.WithSampleRate(sampleRate))
	s.Mixer().SetSeed(seed)

	var left, right []float64
	session := synth.Session{}

	for i, seg := range segments {
		curve, err := transition.ParseCurve(seg.Transition)
		if err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}

		req := synth.Request{
			FrequencyHz:      seg.Frequency,
			DurationS:        seg.Duration,
			Volume:           seg.Volume,
			Transition:       curve,
			Enrich:           seg.Enrich,
			Background:       mixer.BackgroundKind(seg.Background),
			BackgroundVolume: seg.BackgroundVolume,
		}

		res, next, err := s.Generate(req, session)
		if err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
		session = next

		left = append(left, res.Left...)
		right = append(right, res.Right...)

		logrus.WithFields(logrus.Fields{
			"segment":      i,
			"frequency_hz": seg.Frequency,
			"duration_s":   seg.Duration,
			"samples":      len(res.Left),
		}).Debug("segment rendered")
	}

	data, err := pcm.EncodeStereo16(left, right)
	if err != nil {
		return err
	}

	sink, err := wavsink.NewDir(filepath.Dir(output))
	if err != nil {
		return err
	}

	handle, err := sink.Store(filepath.Base(output), data, int(sampleRate))
	if err != nil {
		return err
	}

	peak, rms := pcm.Stats(left, right)
	logrus.WithFields(logrus.Fields{
		"output":      handle,
		"sample_rate": int(sampleRate),
		"duration_s":  float64(len(left)) / sampleRate,
		"peak":        fmt.Sprintf("%.6f", peak),
		"rms":         fmt.Sprintf("%.6f", rms),
	}).Info("session written")

	return nil
}

// logPlan reports the transition legs implied by the schedule.
func logPlan(segments []segment) {
	if len(segments) < 2 {
		return
	}

	freqs := make([]float64, len(segments))
	starts := make([]float64, len(segments))
	elapsed := 0.0
	for i, seg := range segments {
		freqs[i] = seg.Frequency
		starts[i] = elapsed
		elapsed += seg.Duration
	}

	points, err := transition.Points(freqs, starts)
	if err != nil {
		return
	}

	for i, p := range points {
		logrus.WithFields(logrus.Fields{
			"from_hz":  freqs[i],
			"to_hz":    freqs[i+1],
			"start_s":  p.StartTime,
			"end_s":    p.EndTime,
			"length_s": p.Duration,
		}).Debug("scheduled transition")
	}
}
