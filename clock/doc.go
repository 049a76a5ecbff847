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

// Package clock provides the two time domains used during a benchmark session.
//
// The Virtual clock is the time seen by the application being benchmarked. It
// advances by exactly one frame duration for every completed frame, regardless
// of how long the frame took to render. This means that an animation driven by
// the time value passed to the application will always produce the same
// sequence of frames.
//
// The Wall clock is the time used for measurement. It is never seen by the
// application. The Real implementation measures elapsed time since it was
// created, which corresponds to the moment the page was initialised. The
// Manual implementation is stepped explicitly and is used by simulated hosts
// and by tests.
package clock
