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

package clock

import "time"

// FrameDuration is the default duration of a single virtual frame.
const FrameDuration = time.Second / 60

// Virtual is a deterministic frame counter. The zero value is a clock at frame
// zero using FrameDuration.
type Virtual struct {
	frames uint64

	// duration of each frame. if zero then FrameDuration is used
	Step time.Duration
}

// NewVirtual is the preferred method of initialisation for the Virtual type.
// A step value of zero or less means FrameDuration.
func NewVirtual(step time.Duration) *Virtual {
	if step <= 0 {
		step = FrameDuration
	}
	return &Virtual{Step: step}
}

func (v *Virtual) step() time.Duration {
	if v.Step <= 0 {
		return FrameDuration
	}
	return v.Step
}

// Advance the clock by one frame.
func (v *Virtual) Advance() {
	v.frames++
}

// Frames returns the number of completed frames.
func (v *Virtual) Frames() uint64 {
	return v.frames
}

// Now returns the virtual time. It is the number of completed frames
// multiplied by the frame duration.
func (v *Virtual) Now() time.Duration {
	return time.Duration(v.frames) * v.step()
}

// Milliseconds returns the virtual time as fractional milliseconds. This is
// the form of the value passed to application callbacks by most hosts.
func (v *Virtual) Milliseconds() float64 {
	return Milliseconds(v.Now())
}

// Milliseconds converts a duration to fractional milliseconds.
func Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
