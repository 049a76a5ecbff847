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

// Package performance contains the measurements taken for every frame of a
// benchmark session.
//
// Stutter detects frames that took noticeably longer than the frame before. It
// also records the time it took for the frame rate to become stable, which is
// when a fixed number of consecutive frames have rendered without a stutter.
//
// Idle accumulates the time spent between the end of one frame and the start
// of the next, along with the time spent inside frames.
//
// Stats keeps running minimum, maximum, average and standard deviation values
// for the frame rate, the frame interval and the time spent inside each frame.
//
// RunProfiler() can be used to generate the various profile types. On it's own
// it will not limit the amount of time the program runs for.
//
// CalcFPS() calculates frames-per-second in aggregate along with an accuracy
// value as compared to a target frame rate. Not suitable for "live" FPS
// monitoring.
package performance
