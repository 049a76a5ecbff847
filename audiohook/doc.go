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

// Package audiohook gives applications access to audio assets and counts the
// audio activity of a benchmark session.
//
// Audio assets can be in WAV or MP3 format. Decoded clips are mono with
// samples in the range -1.0 to 1.0. Stereo sources contribute only their left
// channel.
//
// Clips played through the Hook are counted and, if a Mixer has been set,
// forwarded to it. The wavwriter package provides a Mixer that can capture
// the audio of a session to disk.
package audiohook
