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

package random

import (
	"math/rand/v2"
)

// DefaultSeed is the seed used when no seed has been specified.
const DefaultSeed = 1

// Random is a deterministic random number generator.
//
// Random is not safe for concurrent use. Applications are driven from a
// single goroutine.
type Random struct {
	seed uint64
	rnd  *rand.Rand
}

// NewRandom is the preferred method of initialisation for the Random type.
func NewRandom(seed uint64) *Random {
	rnd := &Random{}
	rnd.Seed(seed)
	return rnd
}

// Seed resets the generator. The same seed will always produce the same
// sequence of numbers.
func (rnd *Random) Seed(seed uint64) {
	rnd.seed = seed
	rnd.rnd = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// CurrentSeed returns the value given to the most recent call to Seed().
func (rnd *Random) CurrentSeed() uint64 {
	return rnd.seed
}

// Float64 returns a number in the range [0.0, 1.0).
func (rnd *Random) Float64() float64 {
	return rnd.rnd.Float64()
}

// Intn returns a number in the range [0, n). It panics if n <= 0.
func (rnd *Random) Intn(n int) int {
	return rnd.rnd.IntN(n)
}
