// Package audio plays short synthesized cues for gameplay events through
// the system speaker. The game runs silently when no audio device exists.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// thrustGap throttles thrust cues so held keys do not stack up.
const thrustGap = 80 * time.Millisecond

// Cue identifies a gameplay sound.
type Cue int

const (
	CueThrust Cue = iota
	CueHit
	CueDeath
	CueGameOver
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueThrust:
		return "thrust"
	case CueHit:
		return "hit"
	case CueDeath:
		return "death"
	case CueGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// tone is one note of a cue. A zero frequency is a rest.
type tone struct {
	freq float64
	dur  time.Duration
}

var cueTones = map[Cue][]tone{
	CueThrust: {{freq: 180, dur: 40 * time.Millisecond}},
	CueHit: {
		{freq: 660, dur: 50 * time.Millisecond},
		{freq: 440, dur: 80 * time.Millisecond},
	},
	CueDeath: {
		{freq: 330, dur: 120 * time.Millisecond},
		{freq: 220, dur: 120 * time.Millisecond},
		{freq: 110, dur: 240 * time.Millisecond},
	},
	CueGameOver: {
		{freq: 392, dur: 150 * time.Millisecond},
		{dur: 50 * time.Millisecond},
		{freq: 330, dur: 150 * time.Millisecond},
		{dur: 50 * time.Millisecond},
		{freq: 262, dur: 300 * time.Millisecond},
	},
}

// Sound builds the streamer for a cue at volume (0..1).
func Sound(c Cue, rate beep.SampleRate, volume float64) (beep.Streamer, error) {
	tones, ok := cueTones[c]
	if !ok {
		return nil, fmt.Errorf("audio: unknown cue %d", c)
	}

	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		n := rate.N(t.dur)
		if t.freq == 0 {
			parts = append(parts, generators.Silence(n))
			continue
		}
		sine, err := generators.SineTone(rate, t.freq)
		if err != nil {
			return nil, fmt.Errorf("audio: %s tone: %w", c, err)
		}
		parts = append(parts, newRelease(beep.Take(n, sine), n, n/4))
	}
	return newVolume(beep.Seq(parts...), volume), nil
}

// release fades the last samples of a stream out to avoid clicks.
type release struct {
	streamer beep.Streamer
	position int
	total    int
	fade     int
}

func newRelease(s beep.Streamer, total, fade int) beep.Streamer {
	return &release{streamer: s, total: total, fade: fade}
}

func (r *release) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = r.streamer.Stream(samples)
	start := r.total - r.fade
	for i := 0; i < n; i++ {
		if r.fade > 0 && r.position >= start {
			vol := math.Max(0, float64(r.total-r.position)/float64(r.fade))
			samples[i][0] *= vol
			samples[i][1] *= vol
		}
		r.position++
	}
	return n, ok
}

func (r *release) Err() error { return r.streamer.Err() }

// newVolume scales a stream linearly. Zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Player plays cues on the speaker. Its methods are safe to call before a
// successful Init; they do nothing then.
type Player struct {
	mu     sync.Mutex
	volume float64
	ready  bool
	last   map[Cue]time.Time
	now    func() time.Time
}

// NewPlayer creates a player at volume (0..1).
func NewPlayer(volume float64) *Player {
	return &Player{
		volume: math.Max(0, math.Min(volume, 1)),
		last:   make(map[Cue]time.Time),
		now:    time.Now,
	}
}

// Init opens the audio device.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}
	p.ready = true
	return nil
}

// Close stops every playing cue.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	speaker.Clear()
	p.ready = false
}

// Play starts a cue without waiting for it to finish.
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready || !p.allow(c) {
		return
	}
	s, err := Sound(c, sampleRate, p.volume)
	if err != nil {
		return
	}
	speaker.Play(s)
}

// allow applies the thrust throttle. Caller holds mu.
func (p *Player) allow(c Cue) bool {
	if c != CueThrust {
		return true
	}
	now := p.now()
	if last, ok := p.last[c]; ok && now.Sub(last) < thrustGap {
		return false
	}
	p.last[c] = now
	return true
}

// Thrust plays the thruster cue.
func (p *Player) Thrust() { p.Play(CueThrust) }

// Hit plays the collision cue.
func (p *Player) Hit() { p.Play(CueHit) }

// Death plays the destruction cue.
func (p *Player) Death() { p.Play(CueDeath) }

// GameOver plays the end of run jingle.
func (p *Player) GameOver() { p.Play(CueGameOver) }
