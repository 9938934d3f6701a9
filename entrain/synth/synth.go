package synth

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-entrain/entrain/core"
	"github.com/cwbudde/algo-entrain/entrain/eq"
	"github.com/cwbudde/algo-entrain/entrain/harmonic"
	"github.com/cwbudde/algo-entrain/entrain/mixer"
	"github.com/cwbudde/algo-entrain/entrain/pcm"
	"github.com/cwbudde/algo-entrain/entrain/transition"
)

const (
	// fadeDurationS is the linear fade-in/out applied to both channels.
	fadeDurationS = 0.1

	// isochronicCarrierHz is the fixed audible carrier gated on and off at
	// the entrainment frequency.
	isochronicCarrierHz = 440.0

	// enrichmentGain scales the overtone enrichment layer relative to the
	// session volume.
	enrichmentGain = 0.25
)

// BinauralCarrierFor returns the carrier frequency used for binaural beats
// at the given entrainment target. Lower targets get lower carriers so the
// beat stays perceptible.
func BinauralCarrierFor(targetHz float64) float64 {
	switch {
	case targetHz <= 4.0: // delta
		return 100.0
	case targetHz <= 8.0: // theta
		return 200.0
	case targetHz <= 14.0: // alpha
		return 440.0
	default: // gamma
		return 500.0
	}
}

// Session carries the only state that outlives a Generate call: the target
// frequency the previous call ended on. The zero value means no prior
// session, so the first call synthesizes without a transition sweep.
type Session struct {
	FrequencyHz float64
	Valid       bool
}

// Request describes one generation call.
type Request struct {
	FrequencyHz float64          // entrainment target
	DurationS   float64          // total segment duration, seconds
	Volume      float64          // 0..1, split across binaural and isochronic layers
	Transition  transition.Curve // sweep shape used when a prior frequency differs

	// Enrich adds an overtone-enriched carrier layer on both channels.
	Enrich bool

	// Background selects an optional background bed; empty means none.
	Background       mixer.BackgroundKind
	BackgroundVolume float64
	BackgroundEQ     map[eq.Band]float64
}

// Result holds the finished stereo buffer.
type Result struct {
	Left  []float64
	Right []float64
}

// Synthesizer composes the synthesis pipeline. It keeps no per-call state
// and may be shared between goroutines handling independent sessions.
type Synthesizer struct {
	cfg       core.Config
	overtones *harmonic.OvertoneGenerator
	curves    *transition.Generator
	mixer     *mixer.Mixer
}

// NewSynthesizer creates a configured synthesizer.
func NewSynthesizer(opts ...core.Option) *Synthesizer {
	cfg := core.ApplyOptions(opts...)
	rate := core.WithSampleRate(cfg.SampleRate)
	return &Synthesizer{
		cfg:       cfg,
		overtones: harmonic.NewOvertoneGenerator(rate),
		curves:    transition.NewGenerator(rate),
		mixer:     mixer.NewMixer(rate),
	}
}

// Config returns the synthesizer processing configuration.
func (s *Synthesizer) Config() core.Config {
	return s.cfg
}

// Mixer exposes the background mixer, mainly so callers can seed it for
// reproducible renders.
func (s *Synthesizer) Mixer() *mixer.Mixer {
	return s.mixer
}

// Generate synthesizes one session segment. When prior holds a different
// frequency, the segment opens with a sweep from the prior target over
// min(OptimalDuration, DurationS/4) seconds, then holds the new target for
// the remainder. The finished stereo pair is faded, jointly normalized, and
// optionally mixed over a background bed.
//
// The returned Session records the request frequency and feeds the next
// call; it commits even on the first call.
func (s *Synthesizer) Generate(req Request, prior Session) (*Result, Session, error) {
	next := Session{FrequencyHz: req.FrequencyHz, Valid: true}

	totalSamples, err := s.cfg.Samples(req.DurationS)
	if err != nil {
		return nil, prior, err
	}

	left := make([]float64, totalSamples)
	right := make([]float64, totalSamples)
	iso := make([]float64, totalSamples)

	layerVolume := req.Volume * 0.5
	var ph phases

	offset := 0
	if prior.Valid && prior.FrequencyHz != req.FrequencyHz {
		sweepDuration := math.Min(
			transition.OptimalDuration(prior.FrequencyHz, req.FrequencyHz),
			req.DurationS/4,
		)

		curve, err := s.curves.Generate(req.Transition, prior.FrequencyHz, req.FrequencyHz, sweepDuration)
		if err != nil {
			return nil, prior, err
		}
		if len(curve) > totalSamples {
			curve = curve[:totalSamples]
		}

		s.renderSweep(left[:len(curve)], right[:len(curve)], iso[:len(curve)], curve, layerVolume, &ph)
		offset = len(curve)
	}

	if offset < totalSamples {
		s.renderSteady(left[offset:], right[offset:], iso[offset:], req.FrequencyHz, layerVolume, &ph)
	}

	vecmath.AddBlockInPlace(left, iso)
	vecmath.AddBlockInPlace(right, iso)

	if req.Enrich {
		enhanced, err := s.overtones.GenerateEnhanced(req.FrequencyHz, req.DurationS, req.Volume*enrichmentGain)
		if err != nil {
			return nil, prior, err
		}
		vecmath.AddBlockInPlace(left, enhanced)
		vecmath.AddBlockInPlace(right, enhanced)
	}

	s.applyFade(left)
	s.applyFade(right)
	normalizeJoint(left, right)

	if req.Background != "" {
		mixed, err := s.mixer.Mix([][]float64{left, right}, req.Background, req.BackgroundVolume, req.BackgroundEQ)
		if err != nil {
			return nil, prior, err
		}
		left, right = mixed[0], mixed[1]
	}

	return &Result{Left: left, Right: right}, next, nil
}

// GenerateAndStore runs Generate, encodes the stereo pair as 16-bit PCM and
// hands it to sink under the given name, returning the sink handle.
func (s *Synthesizer) GenerateAndStore(req Request, prior Session, sink pcm.Sink, name string) (string, Session, error) {
	res, next, err := s.Generate(req, prior)
	if err != nil {
		return "", prior, err
	}

	data, err := pcm.EncodeStereo16(res.Left, res.Right)
	if err != nil {
		return "", prior, err
	}

	handle, err := sink.Store(name, data, int(s.cfg.SampleRate))
	if err != nil {
		return "", prior, err
	}
	return handle, next, nil
}

// phases carries oscillator phase across the sweep/steady boundary so the
// two segments join without a click.
type phases struct {
	left, right, iso, gate float64
}

// renderSweep synthesizes binaural and isochronic layers over a varying
// frequency curve in one pass, accumulating phase per sample.
func (s *Synthesizer) renderSweep(left, right, iso, freqs []float64, volume float64, ph *phases) {
	step := 2 * math.Pi / s.cfg.SampleRate
	isoStep := step * isochronicCarrierHz

	for i, f := range freqs {
		carrier := BinauralCarrierFor(f)

		left[i] = volume * math.Sin(ph.left)
		right[i] = volume * math.Sin(ph.right)
		iso[i] = volume * math.Sin(ph.iso) * 0.5 * (1 + math.Sin(ph.gate))

		ph.left += step * carrier
		ph.right += step * (carrier + f)
		ph.iso += isoStep
		ph.gate += step * f
	}
}

// renderSteady synthesizes the layers at a fixed frequency.
func (s *Synthesizer) renderSteady(left, right, iso []float64, freqHz, volume float64, ph *phases) {
	step := 2 * math.Pi / s.cfg.SampleRate
	isoStep := step * isochronicCarrierHz
	carrier := BinauralCarrierFor(freqHz)
	leftStep := step * carrier
	rightStep := step * (carrier + freqHz)
	gateStep := step * freqHz

	for i := range left {
		left[i] = volume * math.Sin(ph.left)
		right[i] = volume * math.Sin(ph.right)
		iso[i] = volume * math.Sin(ph.iso) * 0.5 * (1 + math.Sin(ph.gate))

		ph.left += leftStep
		ph.right += rightStep
		ph.iso += isoStep
		ph.gate += gateStep
	}
}

// applyFade applies a linear 100 ms fade-in and fade-out. Buffers shorter
// than two fade windows fade over half their length instead.
func (s *Synthesizer) applyFade(data []float64) {
	fadeSamples := int(fadeDurationS * s.cfg.SampleRate)
	if 2*fadeSamples > len(data) {
		fadeSamples = len(data) / 2
	}
	if fadeSamples == 0 {
		return
	}

	for i := 0; i < fadeSamples; i++ {
		g := float64(i) / float64(fadeSamples)
		data[i] *= g
		data[len(data)-1-i] *= g
	}
}

// normalizeJoint scales both channels by one factor derived from the larger
// channel peak, preserving the inter-channel amplitude ratio. Pairs already
// within full scale are left untouched.
func normalizeJoint(left, right []float64) {
	peak := math.Max(core.MaxAbs(left), core.MaxAbs(right))
	if peak <= 1.0 || peak == 0 {
		return
	}

	core.Scale(left, 1/peak)
	core.Scale(right, 1/peak)
}
