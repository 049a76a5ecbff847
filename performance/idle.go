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

// Idle accumulates the time spent inside and outside of frames. Enter() should
// be called at the start of a frame and Exit() at the end.
type Idle struct {
	idle time.Duration
	busy time.Duration

	inFrame bool
	entered time.Duration

	exitPending bool
	exited      time.Duration
}

// Enter is called at the start of a frame with the current wall time. The time
// since the previous Exit() is added to the idle time.
func (i *Idle) Enter(now time.Duration) {
	if i.exitPending {
		i.idle += now - i.exited
		i.exitPending = false
	}
	i.inFrame = true
	i.entered = now
}

// Exit is called at the end of a frame with the current wall time. The time
// since Enter() is added to the busy time.
func (i *Idle) Exit(now time.Duration) {
	if i.inFrame {
		i.busy += now - i.entered
		i.inFrame = false
	}
	i.exitPending = true
	i.exited = now
}

// Idle returns the accumulated time between frames.
func (i *Idle) Idle() time.Duration {
	return i.idle
}

// Busy returns the accumulated time inside frames.
func (i *Idle) Busy() time.Duration {
	return i.busy
}

// Percentage returns idle time as a percentage of the total. Returns zero if
// total is zero or less.
func (i *Idle) Percentage(total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	return float64(i.idle) * 100 / float64(total)
}
