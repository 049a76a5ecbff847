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

package frameloop

import (
	"errors"
	"fmt"
	"time"

	"github.com/jetsetilly/gfxbench/clock"
	"github.com/jetsetilly/gfxbench/logger"
)

// Sentinel errors returned by the Interceptor.
var (
	ErrReleased    = errors.New("interceptor has been released")
	ErrNoPrimitive = errors.New("context has no primitive")
)

// State of the Interceptor.
type State int

// List of valid State values.
const (
	Idle State = iota
	AwaitingFirstCallback
	InFrame
	FrameComplete
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingFirstCallback:
		return "awaiting first callback"
	case InFrame:
		return "in frame"
	case FrameComplete:
		return "frame complete"
	}
	return fmt.Sprintf("unknown state (%d)", int(s))
}

// Ticker is notified at the beginning and at the end of every measured frame.
type Ticker interface {
	PreTick()
	PostTick()
}

// registration of a context with the interceptor
type registration struct {
	ctx *Context

	// installed is false once the context has been uninstalled
	installed bool

	// generation is incremented whenever the registration is deactivated.
	// deliveries requested under an earlier generation are dropped
	generation int

	// number of requests waiting to be delivered under the current generation
	pending int

	// transformed frame data for the current real frame
	cacheValid bool
	cacheFrame uint64
	cache      *Frame
}

// Interceptor measures the frames produced by the active Context.
type Interceptor struct {
	clk    *clock.Virtual
	ticker Ticker

	state    State
	released bool

	registrations map[*Context]*registration
	active        *registration

	// the real frame currently in progress or most recently completed
	haveFrame bool
	frame     uint64
}

// NewInterceptor is the preferred method of initialisation for the
// Interceptor type. The virtual clock is advanced on the completion of every
// frame.
func NewInterceptor(clk *clock.Virtual, ticker Ticker) *Interceptor {
	return &Interceptor{
		clk:           clk,
		ticker:        ticker,
		registrations: make(map[*Context]*registration),
	}
}

// State returns the current state of the interceptor.
func (icpt *Interceptor) State() State {
	return icpt.state
}

// Released returns true if Release() has been called.
func (icpt *Interceptor) Released() bool {
	return icpt.released
}

// Active returns the currently active context. Returns nil if no context is
// active.
func (icpt *Interceptor) Active() *Context {
	if icpt.active == nil {
		return nil
	}
	return icpt.active.ctx
}

// deactivate the active registration. any frame in progress is abandoned
func (icpt *Interceptor) deactivate() {
	if icpt.active == nil {
		return
	}
	if icpt.state == InFrame {
		logger.Logf(logger.Allow, "frameloop", "frame %d of %s abandoned", icpt.frame, icpt.active.ctx.Name)
	}
	icpt.active.generation++
	icpt.active.pending = 0
	icpt.active.cacheValid = false
	icpt.active = nil
	icpt.haveFrame = false
}

// Install a context and make it the active context. If another context is
// active then it is deactivated. The returned Requester should be given to the
// application in place of the context's Primitive.
//
// Installing the context that is already active has no effect other than to
// return its Requester.
func (icpt *Interceptor) Install(ctx *Context) (*Requester, error) {
	if icpt.released {
		return nil, fmt.Errorf("frameloop: %w", ErrReleased)
	}
	if ctx == nil || ctx.Primitive == nil {
		return nil, fmt.Errorf("frameloop: %w", ErrNoPrimitive)
	}

	reg, ok := icpt.registrations[ctx]
	if !ok {
		reg = &registration{ctx: ctx}
		icpt.registrations[ctx] = reg
	}
	reg.installed = true

	if icpt.active == reg {
		return &Requester{icpt: icpt, reg: reg}, nil
	}

	if icpt.active != nil {
		logger.Logf(logger.Allow, "frameloop", "hand-off from %s to %s", icpt.active.ctx.Name, ctx.Name)
	}
	icpt.deactivate()
	icpt.active = reg
	icpt.state = AwaitingFirstCallback

	return &Requester{icpt: icpt, reg: reg}, nil
}

// Uninstall a context. Requests made through its Requester are passed directly
// to the original primitive and are not measured. If the context was the
// active context then no context is active afterwards.
func (icpt *Interceptor) Uninstall(ctx *Context) {
	reg, ok := icpt.registrations[ctx]
	if !ok {
		return
	}
	if icpt.active == reg {
		icpt.deactivate()
		icpt.state = Idle
	} else {
		reg.generation++
		reg.pending = 0
	}
	reg.installed = false
}

// Release makes every Requester a no-op. Deliveries already queued with the
// host are dropped. Release is called after the final frame of a session.
func (icpt *Interceptor) Release() {
	icpt.released = true
	icpt.state = Idle
}

// deliver a frame callback
func (icpt *Interceptor) deliver(reg *registration, generation int, cb Callback, tok Token, frame *Frame) {
	if icpt.released || reg != icpt.active || reg.generation != generation {
		return
	}
	reg.pending--

	if icpt.state != InFrame || !icpt.haveFrame || tok.Frame != icpt.frame {
		// late delivery for a frame that has already completed
		if icpt.haveFrame && tok.Frame == icpt.frame {
			return
		}

		// a new real frame arriving while another frame is in progress means
		// the final callback of the earlier frame was never delivered
		if icpt.state == InFrame {
			logger.Logf(logger.Allow, "frameloop", "frame %d of %s incomplete", icpt.frame, reg.ctx.Name)
		}

		icpt.haveFrame = true
		icpt.frame = tok.Frame
		icpt.state = InFrame
		reg.cacheValid = false
		icpt.ticker.PreTick()

		// the ticker may have released the interceptor or caused a hand-off
		if icpt.released || reg != icpt.active {
			return
		}
	}

	now := icpt.clk.Now()

	if reg.ctx.Transform != nil {
		if !reg.cacheValid || reg.cacheFrame != tok.Frame {
			reg.cache = reg.ctx.Transform.TransformFrame(now, frame)
			reg.cacheFrame = tok.Frame
			reg.cacheValid = true
		}
		frame = reg.cache
	}

	cb(now, frame)

	// the callback may have released the interceptor or caused a hand-off
	if icpt.released || reg != icpt.active {
		return
	}

	if tok.Last() {
		icpt.state = FrameComplete
		icpt.clk.Advance()
		icpt.ticker.PostTick()

		if icpt.released || reg != icpt.active {
			return
		}
		if reg.pending > 0 {
			icpt.state = AwaitingFirstCallback
		} else {
			icpt.state = Idle
		}
	}
}

// Requester is given to the application in place of a host Primitive.
type Requester struct {
	icpt *Interceptor
	reg  *registration
}

// Context returns the context the Requester is attached to.
func (r *Requester) Context() *Context {
	return r.reg.ctx
}

// Request a callback for the next frame.
func (r *Requester) Request(cb Callback) {
	icpt := r.icpt

	if icpt.released {
		return
	}

	reg := r.reg

	// uninstalled contexts behave like the original primitive
	if !reg.installed {
		reg.ctx.Primitive.Request(func(_ Token, now time.Duration, frame *Frame) {
			if icpt.released {
				return
			}
			cb(now, frame)
		})
		return
	}

	// deactivated context
	if icpt.active != reg {
		return
	}

	reg.pending++
	if icpt.state == Idle {
		icpt.state = AwaitingFirstCallback
	}

	generation := reg.generation
	reg.ctx.Primitive.Request(func(tok Token, _ time.Duration, frame *Frame) {
		icpt.deliver(reg, generation, cb, tok, frame)
	})
}
