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

package random_test

import (
	"testing"

	"github.com/jetsetilly/gfxbench/random"
	"github.com/jetsetilly/gfxbench/test"
)

func TestRandom(t *testing.T) {
	a := random.NewRandom(random.DefaultSeed)
	b := random.NewRandom(random.DefaultSeed)

	for i := 1; i < 256; i++ {
		test.ExpectEquality(t, a.Intn(i), b.Intn(i))
		test.ExpectEquality(t, a.Float64(), b.Float64())
	}
}

func TestReseed(t *testing.T) {
	a := random.NewRandom(100)
	first := a.Float64()
	a.Float64()

	a.Seed(100)
	test.ExpectEquality(t, a.Float64(), first)
	test.ExpectEquality(t, a.CurrentSeed(), uint64(100))
}

func TestDifferentSeeds(t *testing.T) {
	a := random.NewRandom(1)
	b := random.NewRandom(2)

	same := true
	for range 16 {
		if a.Float64() != b.Float64() {
			same = false
		}
	}
	test.ExpectFailure(t, same)
}

func TestRange(t *testing.T) {
	a := random.NewRandom(random.DefaultSeed)
	for range 1000 {
		v := a.Float64()
		test.ExpectSuccess(t, v >= 0.0 && v < 1.0)
		n := a.Intn(10)
		test.ExpectSuccess(t, n >= 0 && n < 10)
	}
}
