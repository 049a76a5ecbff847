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

package clock

import (
	"sync"
	"time"
)

// Wall implementations return the time elapsed since page initialisation.
type Wall interface {
	Now() time.Duration
}

// Real is a Wall clock backed by the monotonic system clock.
type Real struct {
	start time.Time
}

// NewReal returns a Wall clock that measures time from this moment.
func NewReal() *Real {
	return &Real{start: time.Now()}
}

func (r *Real) Now() time.Duration {
	return time.Since(r.start)
}

// Manual is a Wall clock that only moves when told to. It is safe for
// concurrent use.
type Manual struct {
	crit sync.Mutex
	now  time.Duration
}

func (m *Manual) Now() time.Duration {
	m.crit.Lock()
	defer m.crit.Unlock()
	return m.now
}

// Set the current time. Time is not allowed to go backwards and a value
// earlier than the current time is ignored.
func (m *Manual) Set(t time.Duration) {
	m.crit.Lock()
	defer m.crit.Unlock()
	if t > m.now {
		m.now = t
	}
}

// Add moves the clock forward by the duration. Negative durations are ignored.
func (m *Manual) Add(d time.Duration) time.Duration {
	m.crit.Lock()
	defer m.crit.Unlock()
	if d > 0 {
		m.now += d
	}
	return m.now
}
