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

package harness

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/jetsetilly/gfxbench/audiohook"
	"github.com/jetsetilly/gfxbench/clock"
	"github.com/jetsetilly/gfxbench/frameloop"
	"github.com/jetsetilly/gfxbench/glstats"
	"github.com/jetsetilly/gfxbench/random"
	"github.com/jetsetilly/gfxbench/recorder"
	"github.com/jetsetilly/gfxbench/result"
	"github.com/jetsetilly/gfxbench/xr"
)

// ErrStalled should be returned by Host.Step() when there are no frame
// requests waiting to be delivered.
var ErrStalled = errors.New("no frame requests pending")

// Surface is the image the application renders to.
type Surface interface {
	Snapshot() (image.Image, error)
}

// Host is the rendering host of the session.
type Host interface {
	// the window animation-frame primitive
	Primitive() frameloop.Primitive

	Surface() Surface
	Wall() clock.Wall

	// XR system of the host. May be nil
	XR() xr.System

	// Step delivers one real frame to the frame requests that are waiting.
	// Returns ErrStalled if there are no requests
	Step(ctx context.Context) error
}

// Env is the environment given to the application at start up.
type Env struct {
	Config Config

	// frame requests on the window primitive
	Loop *Loop

	// virtual clock. the application should not advance the clock
	Clock *clock.Virtual

	Random  *random.Random
	Console *Console
	Audio   *audiohook.Hook
	GL      *glstats.Counters
	Surface Surface
}

// App is the application under test. Start() should request the first frame.
type App interface {
	Start(env *Env) error
}

// AppFunc allows a function to be used as an App.
type AppFunc func(env *Env) error

func (f AppFunc) Start(env *Env) error {
	return f(env)
}

// PresentationReceiver is implemented by applications that can render to an XR
// session. EnterXR() is called once the session has started. Frames should be
// requested on the new Loop from that point on.
type PresentationReceiver interface {
	EnterXR(loop *Loop)
}

// EventReceiver is implemented by applications that accept input.
type EventReceiver interface {
	HandleEvent(ev recorder.Event)
}

// Reporter is told about the progress of the session.
type Reporter interface {
	TestStarted(ctx context.Context, testID string, testUUID string) error
	Log(ctx context.Context, args ...any) error
	Finish(ctx context.Context, res result.BenchmarkResult) error
}

// Loop requests frames on behalf of the application. A callback that panics
// is recorded by the Console as a caught error.
type Loop struct {
	req     *frameloop.Requester
	console *Console
}

// Name returns the name of the context frames are requested from.
func (l *Loop) Name() string {
	return l.req.Context().Name
}

// Request a callback for the next frame.
func (l *Loop) Request(cb frameloop.Callback) {
	l.req.Request(func(now time.Duration, frame *frameloop.Frame) {
		defer func() {
			if r := recover(); r != nil {
				l.console.catch(fmt.Sprintf("%s: %v", l.Name(), r))
			}
		}()
		cb(now, frame)
	})
}
