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
	"io"
	"io/fs"

	"github.com/google/uuid"

	"github.com/jetsetilly/gfxbench/audiohook"
	"github.com/jetsetilly/gfxbench/frameloop"
	"github.com/jetsetilly/gfxbench/logger"
	"github.com/jetsetilly/gfxbench/random"
	"github.com/jetsetilly/gfxbench/recorder"
	"github.com/jetsetilly/gfxbench/regression"
	"github.com/jetsetilly/gfxbench/result"
	"github.com/jetsetilly/gfxbench/xr"
)

// size of the per-session console log
const maxConsoleEntries = 1024

// DiffOutput receives the outcome of the reference image comparison.
type DiffOutput func(name string, diff regression.DiffResult, current image.Image) error

// Option changes the behaviour of the Harness.
type Option func(*Harness)

// WithReporter sets the reporter of the session.
func WithReporter(r Reporter) Option {
	return func(h *Harness) {
		h.reporter = r
	}
}

// WithReferenceLoader sets the source of reference images.
func WithReferenceLoader(l regression.Loader) Option {
	return func(h *Harness) {
		h.loader = l
	}
}

// WithReplayFS sets the filesystem from which input recordings are read.
func WithReplayFS(fsys fs.FS) Option {
	return func(h *Harness) {
		h.replayFS = fsys
	}
}

// WithRecording sets the destination of the input recording. Only used if
// recording is enabled in the configuration.
func WithRecording(w io.Writer) Option {
	return func(h *Harness) {
		h.recording = w
	}
}

// WithDiffOutput sets a function to receive the outcome of the reference image
// comparison.
func WithDiffOutput(f DiffOutput) Option {
	return func(h *Harness) {
		h.diffOutput = f
	}
}

// WithTickObserver sets a function to be called at the end of every frame.
func WithTickObserver(f func(FrameTick)) Option {
	return func(h *Harness) {
		h.observer = f
	}
}

// WithMixer sets the destination of audio played by the application.
func WithMixer(m audiohook.Mixer) Option {
	return func(h *Harness) {
		h.mixer = m
	}
}

// Harness runs the application on the host and measures it.
type Harness struct {
	cfg  Config
	host Host
	app  App

	reporter   Reporter
	loader     regression.Loader
	replayFS   fs.FS
	recording  io.Writer
	diffOutput DiffOutput
	observer   func(FrameTick)
	mixer      audiohook.Mixer

	session *Session
}

// NewHarness is the preferred method of initialisation for the Harness type.
func NewHarness(cfg Config, host Host, app App, opts ...Option) (*Harness, error) {
	if host == nil {
		return nil, fmt.Errorf("harness: no host")
	}
	if app == nil {
		return nil, fmt.Errorf("harness: no application")
	}
	if cfg.MandatoryAutoEnterXR {
		cfg.AutoEnterXR = true
	}
	if cfg.Revision == "" {
		cfg.Revision = result.DefaultRevision
	}
	if cfg.TestUUID == "" {
		cfg.TestUUID = uuid.NewString()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	h := &Harness{
		cfg:  cfg,
		host: host,
		app:  app,
	}
	for _, o := range opts {
		o(h)
	}
	return h, nil
}

// Config returns the configuration of the harness.
func (h *Harness) Config() Config {
	return h.cfg
}

// Session returns the most recent session. Returns nil if Run() has not been
// called.
func (h *Harness) Session() *Session {
	return h.session
}

// Run the session to completion. The result is reported and returned.
func (h *Harness) Run(ctx context.Context) (result.BenchmarkResult, error) {
	cfg := h.cfg

	s := newSession(cfg, h.host.Wall(), h.app)
	s.observer = h.observer
	s.audio.SetMixer(h.mixer)
	h.session = s

	log := logger.NewLogger(maxConsoleEntries)
	s.console = newConsole(log)
	if cfg.SendLog && h.reporter != nil {
		log.SetForward(func(e logger.Entry) {
			if err := h.reporter.Log(ctx, e.Tag, e.Detail); err != nil {
				logger.Log(logger.Allow, "harness", err)
			}
		})
	}

	if h.reporter != nil {
		if err := h.reporter.TestStarted(ctx, cfg.TestID, cfg.TestUUID); err != nil {
			return result.BenchmarkResult{}, fmt.Errorf("harness: %w", err)
		}
	}

	if cfg.Replay && cfg.Input != "" {
		if h.replayFS == nil {
			return h.fail(ctx, s, result.ReasonInputUnavailable,
				fmt.Errorf("no filesystem for input recording %s", cfg.Input))
		}
		plb, err := recorder.ReadPlayback(ctx, h.replayFS, cfg.Input)
		if err != nil {
			if ctx.Err() != nil {
				return result.BenchmarkResult{}, fmt.Errorf("harness: %w", ctx.Err())
			}
			return h.fail(ctx, s, result.ReasonInputUnavailable, err)
		}
		s.replay = plb
		logger.Logf(logger.Allow, "harness", "replaying %s", plb)
	} else if src, ok := h.host.(recorder.Source); ok {
		s.live = src
		if cfg.Recording && h.recording != nil {
			s.rec = recorder.NewRecorder(h.recording, cfg.TestID, cfg.Width, cfg.Height)
		}
	}

	// negotiate the XR session before the first frame
	var xrPrimitive frameloop.Primitive
	if cfg.AutoEnterXR {
		s.agg.SetAutoEnterXR(true, false)
		p, err := xr.Negotiate(ctx, h.host.XR(), xr.ImmersiveVR)
		if err != nil {
			if ctx.Err() != nil {
				return result.BenchmarkResult{}, fmt.Errorf("harness: %w", ctx.Err())
			}
			if cfg.MandatoryAutoEnterXR {
				return h.fail(ctx, s, result.ReasonAutoEnterXR, err)
			}
			s.console.Warn(err)
		} else {
			xrPrimitive = p
		}
	}

	window := &frameloop.Context{Name: "window", Primitive: h.host.Primitive()}
	req, err := s.icpt.Install(window)
	if err != nil {
		return result.BenchmarkResult{}, fmt.Errorf("harness: %w", err)
	}

	env := &Env{
		Config:  cfg,
		Loop:    &Loop{req: req, console: s.console},
		Clock:   s.clk,
		Random:  random.NewRandom(cfg.RandomSeed),
		Console: s.console,
		Audio:   s.audio,
		GL:      s.gl,
		Surface: h.host.Surface(),
	}

	if err := h.app.Start(env); err != nil {
		return h.fail(ctx, s, result.ReasonStartFailed, err)
	}

	if xrPrimitive != nil {
		if r, ok := h.app.(PresentationReceiver); ok {
			xrCtx := &frameloop.Context{
				Name:      "xr",
				Primitive: xrPrimitive,
				Transform: xr.SyntheticPoses,
			}
			xreq, err := s.icpt.Install(xrCtx)
			if err != nil {
				return result.BenchmarkResult{}, fmt.Errorf("harness: %w", err)
			}
			s.agg.SetAutoEnterXR(true, true)
			r.EnterXR(&Loop{req: xreq, console: s.console})
		} else {
			s.console.Warn("application does not support XR presentation")
		}
	}

	stalled := false
	for !s.done {
		if err := ctx.Err(); err != nil {
			return result.BenchmarkResult{}, fmt.Errorf("harness: %w", err)
		}
		err := h.host.Step(ctx)
		if err != nil {
			if errors.Is(err, ErrStalled) {
				logger.Logf(logger.Allow, "harness", "%s: stalled after %d frames", cfg.TestID, s.frames)
				s.agg.Fail(result.ReasonStalled)
				s.icpt.Release()
				s.end = s.now()
				stalled = true
				break
			}
			return result.BenchmarkResult{}, fmt.Errorf("harness: %w", err)
		}
	}

	t := s.timing()
	t.Stalled = stalled
	s.agg.SetTiming(t)

	if s.rec != nil {
		if err := s.rec.End(); err != nil {
			s.console.Error(err)
		}
	}

	if err := h.compare(ctx, s); err != nil {
		return result.BenchmarkResult{}, err
	}

	s.agg.AddStats("perf", s.stats.Summary())
	s.agg.AddStats("gl", s.gl.Summary())
	s.agg.AddStats("audio", s.audio.Summary())
	s.agg.SetLogs(s.console.Logs())

	res, err := s.agg.Result()
	if err != nil {
		return result.BenchmarkResult{}, fmt.Errorf("harness: %w", err)
	}
	return h.finish(ctx, res)
}

// compare the surface with the reference image. only an error from the host
// or a cancelled context is returned. every other failure fails the session
func (h *Harness) compare(ctx context.Context, s *Session) error {
	if h.cfg.SkipReferenceImage || s.agg.FailReason() != "" {
		return nil
	}

	start := s.now()
	defer func() {
		s.stats.ImageTime += s.now() - start
	}()

	img, err := h.host.Surface().Snapshot()
	if err != nil {
		return fmt.Errorf("harness: %w", err)
	}

	cmp := regression.NewComparator(h.loader, h.cfg.ReferenceName(), h.cfg.ReferenceCompareThreshold)
	d, err := cmp.Compare(ctx, img)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("harness: %w", ctx.Err())
		}
		s.console.Error(err)
		s.agg.Fail(result.ReasonReferenceUnavailable)
		return nil
	}
	s.agg.SetDiff(d)
	logger.Logf(logger.Allow, "harness", "%s: %s", h.cfg.TestID, d)

	if h.diffOutput != nil {
		if err := h.diffOutput(cmp.Name(), d, img); err != nil {
			s.console.Warn(err)
		}
	}
	return nil
}

// fail ends the session before it could be measured. the early-failure record
// is reported like any other result
func (h *Harness) fail(ctx context.Context, s *Session, reason string, cause error) (result.BenchmarkResult, error) {
	logger.Logf(logger.Allow, "harness", "%s: %s: %v", h.cfg.TestID, reason, cause)
	s.console.Error(cause)
	s.icpt.Release()
	s.agg.SetLogs(s.console.Logs())

	res, err := s.agg.Failed(reason)
	if err != nil {
		return result.BenchmarkResult{}, fmt.Errorf("harness: %w", err)
	}
	return h.finish(ctx, res)
}

// finish validates and reports the result
func (h *Harness) finish(ctx context.Context, res result.BenchmarkResult) (result.BenchmarkResult, error) {
	if err := res.Validate(); err != nil {
		return res, fmt.Errorf("harness: %w", err)
	}
	if h.reporter != nil {
		if err := h.reporter.Finish(ctx, res); err != nil {
			return res, fmt.Errorf("harness: %w", err)
		}
	}
	return res, nil
}
