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

// Package limiter provides a rough and ready way of limiting events to a fixed
// rate.
//
// A new Limiter can be created with (error handling removed for clarity):
//
//	lim, _ := limiter.NewLimiter(60)
//	defer lim.Stop()
//
// Operations can then be stalled with the Wait() function. For example:
//
//	for {
//		lim.Wait(ctx)
//		host.Step(ctx)
//	}
package limiter

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRate is returned by NewLimiter() when the rate is zero or less.
var ErrInvalidRate = errors.New("invalid rate")

// Limiter will trigger every frames per second.
type Limiter struct {
	framesPerSecond int
	ticker          *time.Ticker
}

// NewLimiter is the preferred method of initialisation for Limiter type.
func NewLimiter(framesPerSecond int) (*Limiter, error) {
	if framesPerSecond <= 0 {
		return nil, fmt.Errorf("limiter: %w: %d", ErrInvalidRate, framesPerSecond)
	}
	lim := &Limiter{
		framesPerSecond: framesPerSecond,
		ticker:          time.NewTicker(time.Second / time.Duration(framesPerSecond)),
	}
	return lim, nil
}

// Rate returns the number of events per second.
func (lim *Limiter) Rate() int {
	return lim.framesPerSecond
}

// SetLimit changes the limit at which the Limiter waits.
func (lim *Limiter) SetLimit(framesPerSecond int) error {
	if framesPerSecond <= 0 {
		return fmt.Errorf("limiter: %w: %d", ErrInvalidRate, framesPerSecond)
	}
	lim.framesPerSecond = framesPerSecond
	lim.ticker.Reset(time.Second / time.Duration(framesPerSecond))
	return nil
}

// Wait will block until trigger or until the context is done.
func (lim *Limiter) Wait(ctx context.Context) error {
	select {
	case <-lim.ticker.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// HasWaited will return true if time has already elapsed and false it it is
// still yet to happen.
func (lim *Limiter) HasWaited() bool {
	select {
	case <-lim.ticker.C:
		return true
	default:
		// default case means that the channel receiving case doesn't block
		return false
	}
}

// Stop the limiter. Wait() should not be called after Stop().
func (lim *Limiter) Stop() {
	lim.ticker.Stop()
}
