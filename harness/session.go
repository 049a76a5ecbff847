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
	"time"

	"github.com/jetsetilly/gfxbench/audiohook"
	"github.com/jetsetilly/gfxbench/clock"
	"github.com/jetsetilly/gfxbench/frameloop"
	"github.com/jetsetilly/gfxbench/glstats"
	"github.com/jetsetilly/gfxbench/logger"
	"github.com/jetsetilly/gfxbench/performance"
	"github.com/jetsetilly/gfxbench/recorder"
	"github.com/jetsetilly/gfxbench/result"
)

// FrameTick describes a completed frame.
type FrameTick struct {
	// zero based index of the frame
	Index int

	// wall time at the end of the frame, measured from the start of the
	// session
	Wall time.Duration

	// wall time since the end of the previous frame
	Duration time.Duration

	// virtual time at the end of the frame
	Virtual time.Duration

	Stutter bool
}

// Session is the state of a running benchmark session. It is notified of the
// start and end of every frame by the frame loop interceptor.
type Session struct {
	cfg  Config
	wall clock.Wall

	clk  *clock.Virtual
	icpt *frameloop.Interceptor
	agg  *result.Aggregator

	stutter performance.Stutter
	idle    performance.Idle
	stats   performance.Stats
	gl      *glstats.Counters
	audio   *audiohook.Hook
	console *Console

	app      App
	replay   *recorder.Playback
	live     recorder.Source
	rec      *recorder.Recorder
	observer func(FrameTick)

	// wall time at which the session was created
	pageInit time.Duration

	started    bool
	lastTick   time.Duration
	firstFrame time.Duration

	frames int
	done   bool
	end    time.Duration
}

func newSession(cfg Config, wall clock.Wall, app App) *Session {
	s := &Session{
		cfg:      cfg,
		wall:     wall,
		clk:      clock.NewVirtual(clock.FrameDuration),
		agg:      result.NewAggregator(cfg.Identity()),
		gl:       &glstats.Counters{},
		audio:    audiohook.NewHook(wall),
		app:      app,
		pageInit: wall.Now(),
	}
	s.icpt = frameloop.NewInterceptor(s.clk, s)
	s.gl.Enable(0)
	return s
}

// now returns the wall time since the session was created
func (s *Session) now() time.Duration {
	return s.wall.Now() - s.pageInit
}

// Frames returns the number of frames completed.
func (s *Session) Frames() int {
	return s.frames
}

// Done returns true once the target number of frames has been completed.
func (s *Session) Done() bool {
	return s.done
}

// Stutters returns the number of stutter events so far.
func (s *Session) Stutters() int {
	return s.stutter.Count()
}

// State returns the state of the frame loop interceptor.
func (s *Session) State() frameloop.State {
	return s.icpt.State()
}

// Console returns the console of the session.
func (s *Session) Console() *Console {
	return s.console
}

// PreTick implements the frameloop.Ticker interface.
func (s *Session) PreTick() {
	now := s.now()
	if !s.started {
		s.started = true
		s.agg.SetPageLoad(now)
	}
	s.idle.Enter(now)
	s.stats.FrameStart(now)
	s.gl.FrameStart(now)
}

// PostTick implements the frameloop.Ticker interface.
func (s *Session) PostTick() {
	if s.done {
		return
	}

	now := s.now()
	s.stats.FrameEnd(now)

	index := s.frames
	s.input(index)

	duration := now - s.lastTick
	s.lastTick = now
	if index == 0 {
		s.firstFrame = now
	}
	stutter := s.stutter.Tick(index, duration, now-s.firstFrame)
	s.idle.Exit(now)

	s.frames++

	if s.observer != nil {
		s.observer(FrameTick{
			Index:    index,
			Wall:     now,
			Duration: duration,
			Virtual:  s.clk.Now(),
			Stutter:  stutter,
		})
	}

	if s.frames >= s.cfg.NumFrames {
		s.done = true
		s.end = now
		s.icpt.Release()
		logger.Logf(logger.Allow, "harness", "%s: completed %d frames", s.cfg.TestID, s.frames)
	}
}

// input delivers the input events for the frame. live input is ignored while
// a recording is being replayed
func (s *Session) input(frame int) {
	var events []recorder.Event
	if s.replay != nil {
		events = s.replay.Events(frame)
	} else if s.live != nil {
		events = s.live.Events(frame)
		if s.rec != nil {
			for _, ev := range events {
				ev.Frame = frame
				if err := s.rec.Record(ev); err != nil {
					logger.Log(logger.Allow, "harness", err)
				}
			}
		}
	}

	if r, ok := s.app.(EventReceiver); ok {
		for _, ev := range events {
			r.HandleEvent(ev)
		}
	}
}

// timing of the completed session
func (s *Session) timing() result.Timing {
	t := result.Timing{
		End:        s.end,
		FirstFrame: s.firstFrame,
		Busy:       s.idle.Busy(),
		Idle:       s.idle.Idle(),
		Stutters:   s.stutter.Count(),
		Frames:     s.frames,
	}
	t.TimeToStable, t.HasTimeToStable = s.stutter.TimeToStable()
	return t
}
