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

// Package recorder records and plays back input events. Events are keyed by
// the frame index at which they were received so that playing back a
// recording produces the same input on the same frames every time.
//
// The recording file format is plain text. The header contains the test id
// and the canvas size the recording was made with. Each subsequent line is one
// event with the fields separated by a comma and a space:
//
//	frame, type, x, y, button, key, code
//
// The key and code fields are quoted.
package recorder
