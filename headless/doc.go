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

// Package headless is a simulated rendering host. It offers a window frame
// loop, an optional XR presentation system and a canvas, and it can run the
// built-in applications listed in Apps.
//
// By default the host has a simulated wall clock. Each real frame advances
// the clock by the frame gap and each callback advances it by the callback
// cost, so a session run on the headless host produces the same timings every
// time. Alternatively, the host can be paced in real time with a real wall
// clock.
package headless
