// Package chime plays short audio cues when a wishheart formation changes
// phase: a two-tone bell when the heart gathers and a soft breath of noise
// when it scatters again.
package chime

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/phanxgames/wishheart"
)

// DefaultSampleRate is the speaker rate used by NewSpeaker.
const DefaultSampleRate = beep.SampleRate(48000)

// Tone lengths.
const (
	gatherDuration  = 900 * time.Millisecond
	gatherAttack    = 8 * time.Millisecond
	gatherGap       = 110 * time.Millisecond
	scatterDuration = 350 * time.Millisecond
	scatterAttack   = 60 * time.Millisecond
)

// Gather tones: E5 then B5.
const (
	gatherLow  = 659.25
	gatherHigh = 987.77
)

// Player plays a finished streamer. The speaker implementation is safe to call
// from any goroutine.
type Player interface {
	Play(s beep.Streamer)
}

// Config tunes the cues.
type Config struct {
	SampleRate beep.SampleRate
	// Volume is a linear gain in [0, 1]. Zero mutes.
	Volume float64
	// Scatter enables the cue on leaving the heart.
	Scatter bool
}

// DefaultConfig returns a quiet configuration with both cues enabled.
func DefaultConfig() Config {
	return Config{SampleRate: DefaultSampleRate, Volume: 0.35, Scatter: true}
}

// Chime turns ModeChanged events into sounds.
type Chime struct {
	player Player
	config Config
	rng    *rand.Rand
	played int
}

// New returns a chime that plays through p.
func New(p Player, cfg Config) *Chime {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	return &Chime{player: p, config: cfg, rng: wishheart.NewRand(1)}
}

// Attach subscribes the chime to f's phase transitions.
func (c *Chime) Attach(f *wishheart.Formation) wishheart.CallbackHandle {
	return f.OnModeChanged(c.OnModeChanged)
}

// OnModeChanged plays the cue for a transition, if any.
func (c *Chime) OnModeChanged(ev wishheart.ModeChangedEvent) {
	if c.config.Volume <= 0 {
		return
	}
	switch {
	case ev.To == wishheart.PhaseGathered:
		s, err := GatherSound(c.config.SampleRate, c.config.Volume)
		if err != nil {
			return
		}
		c.play(s)
	case ev.From == wishheart.PhaseGathered && ev.To == wishheart.PhaseScattering && c.config.Scatter:
		c.play(ScatterSound(c.config.SampleRate, c.config.Volume, c.rng))
	}
}

// Played returns the number of cues handed to the player.
func (c *Chime) Played() int {
	return c.played
}

func (c *Chime) play(s beep.Streamer) {
	c.played++
	c.player.Play(s)
}

// GatherSound builds the two-tone bell: the low tone rings at once and the
// high tone joins after a short gap.
func GatherSound(sr beep.SampleRate, volume float64) (beep.Streamer, error) {
	low, err := bell(sr, gatherLow, gatherDuration)
	if err != nil {
		return nil, err
	}
	high, err := bell(sr, gatherHigh, gatherDuration-gatherGap)
	if err != nil {
		return nil, err
	}
	high = beep.Seq(beep.Silence(sr.N(gatherGap)), high)
	mixed := beep.Mix(gain(low, 0.6), gain(high, 0.4))
	return gain(mixed, volume), nil
}

func bell(sr beep.SampleRate, freq float64, d time.Duration) (beep.Streamer, error) {
	tone, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, fmt.Errorf("chime: tone %.0f Hz: %w", freq, err)
	}
	return newDecay(beep.Take(sr.N(d), tone), sr.N(d), sr.N(gatherAttack)), nil
}

// ScatterSound builds a short swell of filtered noise.
func ScatterSound(sr beep.SampleRate, volume float64, rng *rand.Rand) beep.Streamer {
	n := sr.N(scatterDuration)
	return gain(newDecay(&noise{rng: rng, left: n}, n, sr.N(scatterAttack)), volume*0.25)
}

// gain scales s linearly; zero or less is silent.
func gain(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

// noise is a one-pole low-passed white noise source of fixed length.
type noise struct {
	rng  *rand.Rand
	left int
	last float64
}

func (n *noise) Stream(samples [][2]float64) (int, bool) {
	if n.left <= 0 {
		return 0, false
	}
	count := min(len(samples), n.left)
	for i := 0; i < count; i++ {
		n.last += 0.15 * (n.rng.Float64()*2 - 1 - n.last)
		samples[i][0] = n.last
		samples[i][1] = n.last
	}
	n.left -= count
	return count, true
}

func (n *noise) Err() error { return nil }

// decay shapes a stream with a linear attack and an exponential tail that
// reaches about -60 dB at total.
type decay struct {
	streamer beep.Streamer
	pos      int
	total    int
	attack   int
}

func newDecay(s beep.Streamer, total, attack int) *decay {
	return &decay{streamer: s, total: total, attack: attack}
}

func (d *decay) Stream(samples [][2]float64) (int, bool) {
	n, ok := d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		v := d.level(d.pos)
		samples[i][0] *= v
		samples[i][1] *= v
		d.pos++
	}
	return n, ok
}

func (d *decay) level(pos int) float64 {
	if pos < d.attack {
		return float64(pos) / float64(d.attack)
	}
	if d.total <= d.attack {
		return 1
	}
	t := float64(pos-d.attack) / float64(d.total-d.attack)
	return math.Exp(-6.9 * t)
}

func (d *decay) Err() error { return d.streamer.Err() }

// speakerPlayer plays through the system audio device.
type speakerPlayer struct{}

func (speakerPlayer) Play(s beep.Streamer) { speaker.Play(s) }

// NewSpeaker initialises the system speaker at sr with a 100 ms buffer and
// returns a Player for it.
func NewSpeaker(sr beep.SampleRate) (Player, error) {
	if err := speaker.Init(sr, sr.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("chime: init speaker: %w", err)
	}
	return speakerPlayer{}, nil
}
