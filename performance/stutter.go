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

import "time"

// Parameters of stutter detection.
const (
	// stutter detection begins after this frame index
	StutterWarmup = 5

	// a frame shorter than this is never a stutter
	StutterMinDuration = 20 * time.Millisecond

	// a frame is a stutter if its duration is greater than the duration of the
	// previous frame multiplied by this factor
	StutterFactor = 1.35

	// the number of consecutive frames without a stutter required before the
	// frame rate is considered to be stable
	SmoothFramesForStability = 120
)

// value of the smooth frame counter once the stable frame rate has been found
const smoothDisabled = -1

// Stutter counts stutter events and finds the time it takes for the frame rate
// to become stable.
type Stutter struct {
	count  int
	smooth int

	// duration of the previous tick
	last time.Duration

	stable time.Duration
}

// Tick should be called once per completed frame. The index is the frame index
// before the clock advances for this frame, the duration is the wall time
// since the previous tick and sinceFirstFrame is the wall time since the first
// rendered frame.
//
// Returns true if the tick was a stutter.
func (s *Stutter) Tick(index int, duration time.Duration, sinceFirstFrame time.Duration) bool {
	defer func() {
		s.last = duration
	}()

	if index <= StutterWarmup || s.last <= 0 {
		return false
	}

	if duration > StutterMinDuration && float64(duration) > float64(s.last)*StutterFactor {
		s.count++
		if s.smooth != smoothDisabled {
			s.smooth = 0
		}
		return true
	}

	if s.smooth != smoothDisabled {
		s.smooth++
		if s.smooth >= SmoothFramesForStability {
			s.stable = sinceFirstFrame
			s.smooth = smoothDisabled
		}
	}

	return false
}

// Count returns the number of stutter events.
func (s *Stutter) Count() int {
	return s.count
}

// ConsecutiveSmooth returns the number of consecutive frames without a stutter.
// Returns -1 once the frame rate has been found to be stable.
func (s *Stutter) ConsecutiveSmooth() int {
	return s.smooth
}

// LastDuration returns the duration of the most recent tick.
func (s *Stutter) LastDuration() time.Duration {
	return s.last
}

// TimeToStable returns the time between the first rendered frame and the moment
// the frame rate became stable. The second value is false if the frame rate
// has not yet been stable.
func (s *Stutter) TimeToStable() (time.Duration, bool) {
	return s.stable, s.smooth == smoothDisabled
}
