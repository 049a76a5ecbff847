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

// Package xr negotiates an alternate presentation session with the rendering
// host and provides the synthetic poses used while that session is active.
//
// Poses from a real headset depend on the movement of the person wearing it.
// SyntheticPoses replaces the pose data of every frame with values derived
// only from virtual time so that rendering in an XR session is reproducible.
package xr
