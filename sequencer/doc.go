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

// Package sequencer chains benchmark sessions into an ordered sequence.
//
// The Coordinator is a websocket server. Each benchmark session connects to
// the coordinator, announces itself with test_started and reports its result
// with benchmark_finish. If the reporting test has a successor in the
// sequence the coordinator replies with next_benchmark, giving the URL of the
// next test. Every completed result is broadcast to all connections with
// benchmark_finished. When the final test in the sequence completes the
// coordinator also broadcasts sequence_finished.
//
// Messages are JSON text frames of the form:
//
//	{"event": "<name>", "data": {...}}
//
// Each connection is served by its own reader and writer goroutines.
// Messages from one connection are handled in the order they arrive. There is
// no ordering between connections.
//
// Results are kept by a Store. MemoryStore keeps results in memory for the
// lifetime of the coordinator. BadgerStore keeps them in a badger database.
//
// The Client type is the session side of the protocol and satisfies the
// harness.Reporter interface.
package sequencer
