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

// Package glstats counts texture uploads made by an application through the
// host's graphics context.
//
// An upload frame is a frame during which at least one texture was uploaded.
// The upload time is the duration of such frames, measured from the start of
// the frame to the start of the next.
package glstats

import (
	"sync"
	"time"
)

// Counters of graphics activity. Counters is safe for concurrent use.
type Counters struct {
	crit sync.Mutex

	numTextureUploads      int
	numTextureUploadFrames int
	numTexImage2DCalls     int
	totalUploadTime        time.Duration

	uploading bool
	current   time.Duration
}

// Enable sets the time from which upload time is measured.
func (c *Counters) Enable(now time.Duration) {
	c.crit.Lock()
	defer c.crit.Unlock()
	c.current = now
}

// TexImage2D should be called whenever the application uploads a texture.
func (c *Counters) TexImage2D() {
	c.crit.Lock()
	defer c.crit.Unlock()
	c.numTexImage2DCalls++
	c.numTextureUploads++
	c.uploading = true
}

// FrameStart should be called at the start of every frame with the current
// wall time.
func (c *Counters) FrameStart(now time.Duration) {
	c.crit.Lock()
	defer c.crit.Unlock()
	if c.uploading {
		c.numTextureUploadFrames++
		c.totalUploadTime += now - c.current
		c.uploading = false
	}
	c.current = now
}

// Summary returns the counters as a statistics block. Times are in
// milliseconds.
func (c *Counters) Summary() map[string]float64 {
	c.crit.Lock()
	defer c.crit.Unlock()

	total := float64(c.totalUploadTime) / float64(time.Millisecond)

	s := map[string]float64{
		"numTextureUploads":      float64(c.numTextureUploads),
		"numTextureUploadFrames": float64(c.numTextureUploadFrames),
		"numTexImage2DCalls":     float64(c.numTexImage2DCalls),
		"totalUploadTime":        total,
	}

	if c.numTextureUploads > 0 {
		s["avgUploadTime"] = total / float64(c.numTextureUploads)
	}
	if c.numTextureUploadFrames > 0 {
		perFrame := total / float64(c.numTextureUploadFrames)
		s["uploadTimePerFrame"] = perFrame
		if perFrame > 0 {
			s["avgFps"] = 1000 / perFrame
		}
	}

	return s
}
