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

package sequencer

import (
	"sync"

	"github.com/jetsetilly/gfxbench/result"
)

// Store keeps the results reported to the coordinator.
type Store interface {
	Put(res result.BenchmarkResult) error

	// Results returns every result in the order it was stored
	Results() ([]result.BenchmarkResult, error)

	Close() error
}

// MemoryStore keeps results in memory.
type MemoryStore struct {
	crit    sync.Mutex
	results []result.BenchmarkResult
}

// NewMemoryStore is the preferred method of initialisation for the
// MemoryStore type.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Put(res result.BenchmarkResult) error {
	s.crit.Lock()
	defer s.crit.Unlock()
	s.results = append(s.results, res)
	return nil
}

func (s *MemoryStore) Results() ([]result.BenchmarkResult, error) {
	s.crit.Lock()
	defer s.crit.Unlock()
	return append([]result.BenchmarkResult{}, s.results...), nil
}

func (s *MemoryStore) Close() error {
	return nil
}
