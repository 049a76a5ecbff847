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

package frameloop_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/gfxbench/clock"
	"github.com/jetsetilly/gfxbench/frameloop"
	"github.com/jetsetilly/gfxbench/test"
)

// primitive delivers queued callbacks in batches, one batch per call to step()
type primitive struct {
	frame uint64
	now   time.Duration
	queue []frameloop.HostCallback
}

func (p *primitive) Request(cb frameloop.HostCallback) {
	p.queue = append(p.queue, cb)
}

func (p *primitive) step(frame *frameloop.Frame) {
	batch := p.queue
	p.queue = nil
	p.frame++
	p.now += 5 * time.Millisecond
	for i, cb := range batch {
		cb(frameloop.Token{Frame: p.frame, Position: i, Count: len(batch)}, p.now, frame)
	}
}

type ticker struct {
	pre, post int
	onPost    func()
}

func (t *ticker) PreTick() {
	t.pre++
}

func (t *ticker) PostTick() {
	t.post++
	if t.onPost != nil {
		t.onPost()
	}
}

func TestTicks(t *testing.T) {
	var clk clock.Virtual
	var tck ticker
	icpt := frameloop.NewInterceptor(&clk, &tck)
	test.ExpectEquality(t, icpt.State(), frameloop.Idle)

	prim := &primitive{}
	req, err := icpt.Install(&frameloop.Context{Name: "window", Primitive: prim})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, icpt.State(), frameloop.AwaitingFirstCallback)

	var seen []time.Duration
	var loop frameloop.Callback
	loop = func(now time.Duration, _ *frameloop.Frame) {
		seen = append(seen, now)
		test.ExpectEquality(t, icpt.State(), frameloop.InFrame)
		req.Request(loop)
	}
	req.Request(loop)

	for range 10 {
		prim.step(nil)
	}

	test.ExpectEquality(t, tck.pre, 10)
	test.ExpectEquality(t, tck.post, 10)
	test.ExpectEquality(t, clk.Frames(), uint64(10))
	test.ExpectEquality(t, icpt.State(), frameloop.AwaitingFirstCallback)

	// callbacks see virtual time and never host time
	for i, now := range seen {
		test.ExpectEquality(t, now, time.Duration(i)*clock.FrameDuration)
	}
}

func TestChangingBatch(t *testing.T) {
	var clk clock.Virtual
	var tck ticker
	icpt := frameloop.NewInterceptor(&clk, &tck)

	prim := &primitive{}
	req, err := icpt.Install(&frameloop.Context{Name: "window", Primitive: prim})
	test.DemandSuccess(t, err)

	calls := 0
	cb := func(_ time.Duration, _ *frameloop.Frame) {
		calls++
	}

	// three callbacks in the first frame
	req.Request(cb)
	req.Request(cb)
	req.Request(cb)
	prim.step(nil)
	test.ExpectEquality(t, tck.pre, 1)
	test.ExpectEquality(t, tck.post, 1)
	test.ExpectEquality(t, icpt.State(), frameloop.Idle)

	// one callback in the second frame
	req.Request(cb)
	prim.step(nil)
	test.ExpectEquality(t, tck.pre, 2)
	test.ExpectEquality(t, tck.post, 2)

	// an empty frame is not a frame
	prim.step(nil)
	test.ExpectEquality(t, tck.pre, 2)
	test.ExpectEquality(t, calls, 4)
	test.ExpectEquality(t, clk.Frames(), uint64(2))
}

func TestHandOff(t *testing.T) {
	var clk clock.Virtual
	var tck ticker
	icpt := frameloop.NewInterceptor(&clk, &tck)

	window := &primitive{}
	xr := &primitive{}
	windowCtx := &frameloop.Context{Name: "window", Primitive: window}
	xrCtx := &frameloop.Context{Name: "xr", Primitive: xr}

	wreq, err := icpt.Install(windowCtx)
	test.DemandSuccess(t, err)

	var xreq *frameloop.Requester
	windowCalls := 0
	xrCalls := 0

	var xrLoop frameloop.Callback
	xrLoop = func(_ time.Duration, _ *frameloop.Frame) {
		xrCalls++
		xreq.Request(xrLoop)
	}

	// the first callback of the window's second frame begins the hand-off
	first := func(_ time.Duration, _ *frameloop.Frame) {
		windowCalls++
		if clk.Frames() == 1 {
			xreq, err = icpt.Install(xrCtx)
			test.DemandSuccess(t, err)
			xreq.Request(xrLoop)
		}
	}
	second := func(_ time.Duration, _ *frameloop.Frame) {
		windowCalls++
	}

	wreq.Request(first)
	wreq.Request(second)
	window.step(nil)
	test.ExpectEquality(t, tck.post, 1)
	test.ExpectEquality(t, windowCalls, 2)

	wreq.Request(first)
	wreq.Request(second)
	window.step(nil)

	// the second callback of the window's frame was dropped and the frame was
	// abandoned without a post-tick
	test.ExpectEquality(t, windowCalls, 3)
	test.ExpectEquality(t, tck.pre, 2)
	test.ExpectEquality(t, tck.post, 1)
	test.ExpectEquality(t, icpt.State(), frameloop.AwaitingFirstCallback)
	test.ExpectEquality(t, icpt.Active(), xrCtx)

	// the window requester is now a no-op
	wreq.Request(second)
	test.ExpectEquality(t, len(window.queue), 0)

	for range 5 {
		xr.step(nil)
	}
	test.ExpectEquality(t, xrCalls, 5)
	test.ExpectEquality(t, tck.post, 6)

	// session state was not reset by the hand-off
	test.ExpectEquality(t, clk.Frames(), uint64(6))
}

func TestRelease(t *testing.T) {
	var clk clock.Virtual
	var tck ticker
	icpt := frameloop.NewInterceptor(&clk, &tck)

	prim := &primitive{}
	req, err := icpt.Install(&frameloop.Context{Name: "window", Primitive: prim})
	test.DemandSuccess(t, err)

	calls := 0
	var loop frameloop.Callback
	loop = func(_ time.Duration, _ *frameloop.Frame) {
		calls++
		req.Request(loop)
	}

	tck.onPost = func() {
		if clk.Frames() == 3 {
			icpt.Release()
		}
	}

	req.Request(loop)
	for range 10 {
		prim.step(nil)
	}

	test.ExpectEquality(t, calls, 3)
	test.ExpectEquality(t, tck.post, 3)
	test.ExpectSuccess(t, icpt.Released())
	test.ExpectEquality(t, icpt.State(), frameloop.Idle)

	req.Request(loop)
	test.ExpectEquality(t, len(prim.queue), 0)

	_, err = icpt.Install(&frameloop.Context{Name: "xr", Primitive: prim})
	test.ExpectFailure(t, err)
}

func TestUninstall(t *testing.T) {
	var clk clock.Virtual
	var tck ticker
	icpt := frameloop.NewInterceptor(&clk, &tck)

	prim := &primitive{}
	ctx := &frameloop.Context{Name: "window", Primitive: prim}
	req, err := icpt.Install(ctx)
	test.DemandSuccess(t, err)

	icpt.Uninstall(ctx)
	test.ExpectEquality(t, icpt.State(), frameloop.Idle)

	var now time.Duration
	req.Request(func(n time.Duration, _ *frameloop.Frame) {
		now = n
	})
	prim.step(nil)

	// unmeasured and with host time
	test.ExpectEquality(t, tck.pre, 0)
	test.ExpectEquality(t, now, prim.now)
	test.ExpectEquality(t, clk.Frames(), uint64(0))
}

func TestTransform(t *testing.T) {
	var clk clock.Virtual
	var tck ticker
	icpt := frameloop.NewInterceptor(&clk, &tck)

	transforms := 0
	transform := frameloop.FrameTransformFunc(func(now time.Duration, frame *frameloop.Frame) *frameloop.Frame {
		transforms++
		return &frameloop.Frame{Pose: &frameloop.Pose{
			Transform: frameloop.RigidTransform{Position: frameloop.Vec4{X: float64(now)}},
		}}
	})

	prim := &primitive{}
	req, err := icpt.Install(&frameloop.Context{Name: "xr", Primitive: prim, Transform: transform})
	test.DemandSuccess(t, err)

	var frames []*frameloop.Frame
	cb := func(_ time.Duration, frame *frameloop.Frame) {
		frames = append(frames, frame)
	}

	host := &frameloop.Frame{}
	for range 3 {
		req.Request(cb)
		req.Request(cb)
		prim.step(host)
	}

	test.ExpectEquality(t, transforms, 3)
	test.DemandEquality(t, len(frames), 6)
	for i := 0; i < len(frames); i += 2 {
		test.ExpectEquality(t, frames[i], frames[i+1])
		test.ExpectInequality(t, frames[i], host)
	}
	test.ExpectInequality(t, frames[0], frames[2])
}

func TestStateString(t *testing.T) {
	test.ExpectEquality(t, frameloop.InFrame.String(), "in frame")
	test.ExpectEquality(t, frameloop.State(99).String(), "unknown state (99)")
}
