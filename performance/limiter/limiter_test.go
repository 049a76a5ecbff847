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

package limiter_test

import (
	"context"
	"testing"
	"time"

	"github.com/jetsetilly/gfxbench/performance/limiter"
	"github.com/jetsetilly/gfxbench/test"
)

func TestInvalidRate(t *testing.T) {
	_, err := limiter.NewLimiter(0)
	test.ExpectFailure(t, err)
}

func TestWait(t *testing.T) {
	lim, err := limiter.NewLimiter(100)
	test.DemandSuccess(t, err)
	defer lim.Stop()

	start := time.Now()
	for range 3 {
		test.ExpectSuccess(t, lim.Wait(context.Background()))
	}
	test.ExpectSuccess(t, time.Since(start) >= 20*time.Millisecond)

	test.ExpectFailure(t, lim.SetLimit(-1))
	test.ExpectEquality(t, lim.Rate(), 100)
}

func TestCancelledWait(t *testing.T) {
	lim, err := limiter.NewLimiter(1)
	test.DemandSuccess(t, err)
	defer lim.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	test.ExpectFailure(t, lim.Wait(ctx))
}

func TestHasWaited(t *testing.T) {
	lim, err := limiter.NewLimiter(1)
	test.DemandSuccess(t, err)
	defer lim.Stop()
	test.ExpectFailure(t, lim.HasWaited())

	test.DemandSuccess(t, lim.SetLimit(200))
	time.Sleep(20 * time.Millisecond)
	test.ExpectSuccess(t, lim.HasWaited())
}
