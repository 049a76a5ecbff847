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

// Package result defines the record produced at the end of every benchmark
// session and the Aggregator that builds it.
//
// A BenchmarkResult is produced exactly once per session. It is either the
// full record built by Aggregator.Result() or the early-failure record built
// by Failed(), which carries the identity of the session and the reason for
// the failure but no timing information.
//
// All times are in milliseconds.
package result
