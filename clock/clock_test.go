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

package clock_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/gfxbench/clock"
	"github.com/jetsetilly/gfxbench/test"
)

func TestVirtual(t *testing.T) {
	var v clock.Virtual
	test.ExpectEquality(t, v.Frames(), uint64(0))
	test.ExpectEquality(t, v.Now(), time.Duration(0))

	for range 60 {
		v.Advance()
	}
	test.ExpectEquality(t, v.Frames(), uint64(60))
	test.ExpectApproximate(t, v.Milliseconds(), 1000.0, 0.001)
}

func TestVirtualStep(t *testing.T) {
	v := clock.NewVirtual(10 * time.Millisecond)
	v.Advance()
	v.Advance()
	test.ExpectEquality(t, v.Now(), 20*time.Millisecond)

	v = clock.NewVirtual(0)
	test.ExpectEquality(t, v.Step, clock.FrameDuration)
}

func TestManual(t *testing.T) {
	var m clock.Manual
	test.ExpectEquality(t, m.Now(), time.Duration(0))

	test.ExpectEquality(t, m.Add(5*time.Millisecond), 5*time.Millisecond)

	// time does not go backwards
	m.Set(time.Millisecond)
	test.ExpectEquality(t, m.Now(), 5*time.Millisecond)
	m.Add(-time.Second)
	test.ExpectEquality(t, m.Now(), 5*time.Millisecond)

	m.Set(time.Second)
	test.ExpectEquality(t, m.Now(), time.Second)
}

func TestReal(t *testing.T) {
	r := clock.NewReal()
	a := r.Now()
	b := r.Now()
	test.ExpectSuccess(t, b >= a)
}
