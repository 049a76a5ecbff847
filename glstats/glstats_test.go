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

package glstats_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/gfxbench/glstats"
	"github.com/jetsetilly/gfxbench/test"
)

func TestCounters(t *testing.T) {
	var c glstats.Counters
	ms := time.Millisecond

	c.Enable(0)
	c.FrameStart(0)

	// two uploads in the first frame
	c.TexImage2D()
	c.TexImage2D()
	c.FrameStart(20 * ms)

	// no uploads in the second frame
	c.FrameStart(36 * ms)

	// one upload in the third frame
	c.TexImage2D()
	c.FrameStart(46 * ms)

	s := c.Summary()
	test.ExpectEquality(t, s["numTextureUploads"], 3.0)
	test.ExpectEquality(t, s["numTexImage2DCalls"], 3.0)
	test.ExpectEquality(t, s["numTextureUploadFrames"], 2.0)
	test.ExpectApproximate(t, s["totalUploadTime"], 30.0, 0.0001)
	test.ExpectApproximate(t, s["avgUploadTime"], 10.0, 0.0001)
	test.ExpectApproximate(t, s["uploadTimePerFrame"], 15.0, 0.0001)
	test.ExpectApproximate(t, s["avgFps"], 66.667, 0.0001)
}

func TestNoUploads(t *testing.T) {
	var c glstats.Counters
	c.FrameStart(time.Second)
	s := c.Summary()
	_, ok := s["avgUploadTime"]
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, s["numTextureUploads"], 0.0)
}
