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

// Package regression compares the final image of a benchmark session with a
// reference image.
//
// The reference image is addressed by name and fetched through a Loader. The
// FSLoader reads from any fs.FS and the HTTPLoader fetches from a base URL. In
// both cases the image is expected to be a PNG file named "<name>.png".
//
// The current image is resampled to the dimensions of the reference image when
// the sizes differ. The images are then compared pixel by pixel in the YIQ
// colour space with anti-aliased pixels excluded from the count of differing
// pixels. The session passes if no more than MaxDiffPercentage of the pixels
// differ.
//
// The Comparator caches the reference image for the lifetime of a session. A
// failure to load the reference image is also cached and is never retried.
package regression
