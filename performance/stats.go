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

package performance

import (
	"math"
	"time"
)

// Running keeps the minimum, maximum, mean and variance of a series of values
// without storing the values.
type Running struct {
	n    int
	mean float64
	m2   float64
	min  float64
	max  float64
}

// Add a value to the series.
func (r *Running) Add(v float64) {
	r.n++
	if r.n == 1 {
		r.min = v
		r.max = v
	} else {
		r.min = min(r.min, v)
		r.max = max(r.max, v)
	}

	// welford's algorithm
	d := v - r.mean
	r.mean += d / float64(r.n)
	r.m2 += d * (v - r.mean)
}

// Count returns the number of values in the series.
func (r *Running) Count() int {
	return r.n
}

func (r *Running) Min() float64 {
	return r.min
}

func (r *Running) Max() float64 {
	return r.max
}

func (r *Running) Mean() float64 {
	return r.mean
}

// StdDev returns the population standard deviation of the series.
func (r *Running) StdDev() float64 {
	if r.n < 2 {
		return 0
	}
	return math.Sqrt(r.m2 / float64(r.n))
}

// Stats measures the frame rate, the frame interval and the time spent inside
// each frame. Times are recorded in milliseconds.
type Stats struct {
	FPS     Running
	Delta   Running
	CPU     Running
	started bool
	inFrame bool

	start     time.Duration
	lastStart time.Duration

	// time spent preparing images for the reference image comparison
	ImageTime time.Duration
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// FrameStart should be called at the beginning of each frame.
func (s *Stats) FrameStart(now time.Duration) {
	if s.started {
		dt := now - s.lastStart
		s.Delta.Add(ms(dt))
		if dt > 0 {
			s.FPS.Add(1000 / ms(dt))
		}
	}
	s.started = true
	s.inFrame = true
	s.start = now
	s.lastStart = now
}

// FrameEnd should be called at the end of each frame.
func (s *Stats) FrameEnd(now time.Duration) {
	if !s.inFrame {
		return
	}
	s.inFrame = false
	s.CPU.Add(ms(now - s.start))
}

// Summary returns the statistics as a flat map suitable for a statistics block
// in the benchmark result.
func (s *Stats) Summary() map[string]float64 {
	summary := make(map[string]float64)
	add := func(name string, r *Running) {
		summary[name+"_min"] = r.Min()
		summary[name+"_max"] = r.Max()
		summary[name+"_avg"] = r.Mean()
		summary[name+"_stddev"] = r.StdDev()
	}
	add("fps", &s.FPS)
	add("dt", &s.Delta)
	add("cpu", &s.CPU)
	summary["timeGeneratingReferenceImages"] = ms(s.ImageTime)
	return summary
}
