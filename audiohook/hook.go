// This file is part of Gfxbench.
//
// Gfxbench is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gfxbench is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gfxbench.  If not, see <https://www.gnu.org/licenses/>.

package audiohook

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/jetsetilly/gfxbench/clock"
	"github.com/jetsetilly/gfxbench/logger"
)

// Mixer implementations receive the audio played during a session.
type Mixer interface {
	Mix(samples []float32, sampleRate int) error
}

// Hook counts audio activity. Hook is safe for concurrent use.
type Hook struct {
	crit sync.Mutex

	wall  clock.Wall
	mixer Mixer

	numDecodes    int
	decodeTime    time.Duration
	decodeErrors  int
	numPlays      int
	samplesPlayed int
	playTime      time.Duration
}

// NewHook is the preferred method of initialisation for the Hook type. The
// wall clock is used to measure decoding time and may be nil.
func NewHook(wall clock.Wall) *Hook {
	return &Hook{wall: wall}
}

// SetMixer sets the destination of played audio. A nil mixer discards audio.
func (h *Hook) SetMixer(m Mixer) {
	h.crit.Lock()
	defer h.crit.Unlock()
	h.mixer = m
}

func (h *Hook) now() time.Duration {
	if h.wall == nil {
		return 0
	}
	return h.wall.Now()
}

// Load decodes an audio asset.
func (h *Hook) Load(name string, r io.ReadSeeker) (Clip, error) {
	start := h.now()
	c, err := Decode(name, r)
	d := h.now() - start

	h.crit.Lock()
	defer h.crit.Unlock()

	if err != nil {
		h.decodeErrors++
		return c, err
	}

	h.numDecodes++
	h.decodeTime += d
	logger.Logf(logger.Allow, "audiohook", "decoded %s: %.2fs at %dHz", name, c.Duration().Seconds(), c.SampleRate)

	return c, nil
}

// Play a clip.
func (h *Hook) Play(c Clip) error {
	h.crit.Lock()
	defer h.crit.Unlock()

	h.numPlays++
	h.samplesPlayed += len(c.Samples)
	h.playTime += c.Duration()

	if h.mixer != nil {
		if err := h.mixer.Mix(c.Samples, c.SampleRate); err != nil {
			return fmt.Errorf("audiohook: %w", err)
		}
	}
	return nil
}

// Summary returns the counters as a statistics block. Times are in
// milliseconds.
func (h *Hook) Summary() map[string]float64 {
	h.crit.Lock()
	defer h.crit.Unlock()

	return map[string]float64{
		"numDecodes":    float64(h.numDecodes),
		"decodeErrors":  float64(h.decodeErrors),
		"decodeTime":    float64(h.decodeTime) / float64(time.Millisecond),
		"numPlays":      float64(h.numPlays),
		"samplesPlayed": float64(h.samplesPlayed),
		"playTime":      float64(h.playTime) / float64(time.Millisecond),
	}
}
