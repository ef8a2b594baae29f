// Package sound turns game events into short chiptune cues. Playback is
// fire and forget: Play never waits for a cue to finish.
package sound

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/amalg/cupid-panda/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// Cue is a run of notes played back to back.
type Cue struct {
	Notes []float64 // Hz
	Note  time.Duration
}

var cues = map[game.EventKind]Cue{
	game.EventGrabbed:   {Notes: []float64{660}, Note: 40 * time.Millisecond},
	game.EventThrown:    {Notes: []float64{880, 660}, Note: 30 * time.Millisecond},
	game.EventPaired:    {Notes: []float64{523, 659, 784}, Note: 70 * time.Millisecond},
	game.EventDelivered: {Notes: []float64{784, 1047}, Note: 60 * time.Millisecond},
	game.EventStarved:   {Notes: []float64{392, 330, 262}, Note: 150 * time.Millisecond},
	game.EventCollapsed: {Notes: []float64{330, 262, 196}, Note: 150 * time.Millisecond},
}

// CueFor returns the cue for an event kind. Aging out is silent.
func CueFor(kind game.EventKind) (Cue, bool) {
	c, ok := cues[kind]
	return c, ok
}

// Player plays cues through the system speaker.
type Player struct {
	enabled bool
}

// NewPlayer initializes the speaker. Audio failure is not fatal: the
// returned Player stays silent.
func NewPlayer(enabled bool) *Player {
	if !enabled {
		return &Player{}
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Printf("[SOUND] Audio initialization failed: %v", err)
		return &Player{}
	}
	return &Player{enabled: true}
}

// Enabled reports whether cues are audible.
func (p *Player) Enabled() bool { return p.enabled }

// Play queues the cue of every event and returns immediately.
func (p *Player) Play(events []game.Event) {
	if !p.enabled {
		return
	}
	for _, ev := range events {
		c, ok := CueFor(ev.Kind)
		if !ok {
			continue
		}
		s, err := c.streamer()
		if err != nil {
			log.Printf("[SOUND] %s cue: %v", ev.Kind, err)
			continue
		}
		speaker.Play(s)
	}
}

// Close releases the speaker.
func (p *Player) Close() {
	if p.enabled {
		speaker.Close()
		p.enabled = false
	}
}

func (c Cue) streamer() (beep.Streamer, error) {
	n := sampleRate.N(c.Note)
	parts := make([]beep.Streamer, 0, len(c.Notes))
	for _, f := range c.Notes {
		sine, err := generators.SineTone(sampleRate, f)
		if err != nil {
			return nil, err
		}
		parts = append(parts, beep.Take(n, sine))
	}
	return beep.Seq(parts...), nil
}
