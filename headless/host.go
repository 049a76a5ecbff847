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

package headless

import (
	"context"
	"fmt"
	"time"

	"github.com/jetsetilly/gfxbench/clock"
	"github.com/jetsetilly/gfxbench/frameloop"
	"github.com/jetsetilly/gfxbench/harness"
	"github.com/jetsetilly/gfxbench/logger"
	"github.com/jetsetilly/gfxbench/performance/limiter"
	"github.com/jetsetilly/gfxbench/recorder"
	"github.com/jetsetilly/gfxbench/xr"
)

// Default timings of the simulated wall clock.
const (
	DefaultFrameGap     = 16 * time.Millisecond
	DefaultCallbackCost = time.Millisecond
)

// Options of the headless host.
type Options struct {
	Width  int
	Height int

	// wall time between real frames and the wall time between the callbacks of
	// a single real frame
	FrameGap     time.Duration
	CallbackCost time.Duration

	// additional wall time before the real frame with the number. real frames
	// are numbered from one
	Hitches map[uint64]time.Duration

	// presentation system available
	XR bool

	// live input by frame index
	Input map[int][]recorder.Event

	// pace frames in real time at this rate with a real wall clock. zero
	// selects the simulated wall clock
	Realtime int
}

// DefaultOptions returns the default options for a host of the given size.
func DefaultOptions(width, height int) Options {
	return Options{
		Width:        width,
		Height:       height,
		FrameGap:     DefaultFrameGap,
		CallbackCost: DefaultCallbackCost,
	}
}

// loop is an animation-frame primitive of the host
type loop struct {
	name  string
	queue []frameloop.HostCallback

	// frame data for each real frame. may be nil
	data func(frame uint64) *frameloop.Frame
}

func (l *loop) Request(cb frameloop.HostCallback) {
	l.queue = append(l.queue, cb)
}

func (l *loop) pending() bool {
	return len(l.queue) > 0
}

// Host is the headless rendering host.
type Host struct {
	opts Options

	canvas *Canvas
	window *loop
	xr     *loop

	manual *clock.Manual
	wall   clock.Wall
	lim    *limiter.Limiter

	frame uint64
}

// NewHost is the preferred method of initialisation for the Host type.
func NewHost(opts Options) (*Host, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("headless: invalid canvas size %dx%d", opts.Width, opts.Height)
	}

	h := &Host{
		opts:   opts,
		canvas: NewCanvas(opts.Width, opts.Height),
		window: &loop{name: "window"},
	}

	if opts.Realtime > 0 {
		lim, err := limiter.NewLimiter(opts.Realtime)
		if err != nil {
			return nil, fmt.Errorf("headless: %w", err)
		}
		h.lim = lim
		h.wall = clock.NewReal()
	} else {
		h.manual = &clock.Manual{}
		h.wall = h.manual
	}

	return h, nil
}

// Close releases the resources of the host.
func (h *Host) Close() {
	if h.lim != nil {
		h.lim.Stop()
	}
}

// Canvas returns the canvas of the host.
func (h *Host) Canvas() *Canvas {
	return h.canvas
}

// Frame returns the number of real frames delivered.
func (h *Host) Frame() uint64 {
	return h.frame
}

// Primitive implements the harness.Host interface.
func (h *Host) Primitive() frameloop.Primitive {
	return h.window
}

// Surface implements the harness.Host interface.
func (h *Host) Surface() harness.Surface {
	return h.canvas
}

// Wall implements the harness.Host interface.
func (h *Host) Wall() clock.Wall {
	return h.wall
}

// XR implements the harness.Host interface.
func (h *Host) XR() xr.System {
	if !h.opts.XR {
		return nil
	}
	return h
}

// IsSessionSupported implements the xr.System interface.
func (h *Host) IsSessionSupported(ctx context.Context, mode xr.Mode) (bool, error) {
	return h.opts.XR && mode == xr.ImmersiveVR, nil
}

// RequestSession implements the xr.System interface.
func (h *Host) RequestSession(ctx context.Context, mode xr.Mode) (frameloop.Primitive, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !h.opts.XR || mode != xr.ImmersiveVR {
		return nil, fmt.Errorf("headless: %w: %s", xr.ErrNotSupported, mode)
	}
	if h.xr == nil {
		h.xr = &loop{name: "xr", data: viewerFrame}
		logger.Logf(logger.Allow, "headless", "%s session started", mode)
	}
	return h.xr, nil
}

// viewerFrame is the frame data of the xr loop. a stationary viewer with two
// views
func viewerFrame(frame uint64) *frameloop.Frame {
	origin := frameloop.RigidTransform{Orientation: frameloop.Vec4{W: 1}}
	return &frameloop.Frame{
		Pose: &frameloop.Pose{Transform: origin},
		Viewer: &frameloop.ViewerPose{
			Pose: frameloop.Pose{Transform: origin},
			Views: []frameloop.View{
				{Eye: "left", Transform: origin},
				{Eye: "right", Transform: origin},
			},
		},
	}
}

// Events implements the recorder.Source interface.
func (h *Host) Events(frame int) []recorder.Event {
	return h.opts.Input[frame]
}

func (h *Host) advance(d time.Duration) {
	if h.manual != nil && d > 0 {
		h.manual.Add(d)
	}
}

// Step implements the harness.Host interface. Callbacks of the window loop are
// delivered before callbacks of the xr loop.
func (h *Host) Step(ctx context.Context) error {
	if !h.window.pending() && (h.xr == nil || !h.xr.pending()) {
		return harness.ErrStalled
	}

	if h.lim != nil {
		if err := h.lim.Wait(ctx); err != nil {
			return fmt.Errorf("headless: %w", err)
		}
	}

	h.frame++
	h.advance(h.opts.FrameGap + h.opts.Hitches[h.frame])

	h.deliver(h.window)
	if h.xr != nil {
		h.deliver(h.xr)
	}

	return nil
}

// deliver the callbacks queued on the loop before the real frame started.
// callbacks requested during delivery wait for the next real frame
func (h *Host) deliver(l *loop) {
	batch := l.queue
	l.queue = nil

	var data *frameloop.Frame
	if l.data != nil {
		data = l.data(h.frame)
	}

	for i, cb := range batch {
		if i > 0 {
			h.advance(h.opts.CallbackCost)
		}
		tok := frameloop.Token{Frame: h.frame, Position: i, Count: len(batch)}
		cb(tok, h.wall.Now(), data)
	}
}
