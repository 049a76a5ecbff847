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

package result

import (
	"errors"
	"maps"
	"time"

	"github.com/jetsetilly/gfxbench/regression"
)

// ErrAlreadyProduced is returned when a result is requested from an
// Aggregator that has already produced one.
var ErrAlreadyProduced = errors.New("result already produced")

// Identity of a benchmark session.
type Identity struct {
	TestID    string
	TestUUID  string
	Revision  string
	NumFrames int
}

// Timing measurements of a session. All times are wall times measured from
// page initialisation.
type Timing struct {
	// the moment the session ended
	End time.Duration

	// the moment the first frame was completed
	FirstFrame time.Duration

	// time in frames and between frames
	Busy time.Duration
	Idle time.Duration

	Stutters int

	// a stalled session completed only Frames of the frames requested
	Stalled bool
	Frames  int

	// time between the first frame and the frame rate becoming stable
	TimeToStable    time.Duration
	HasTimeToStable bool
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Failed creates the record for a session that failed before it could be
// measured.
func Failed(id Identity, reason string) BenchmarkResult {
	revision := id.Revision
	if revision == "" {
		revision = DefaultRevision
	}
	return BenchmarkResult{
		TestID:     id.TestID,
		TestUUID:   id.TestUUID,
		Revision:   revision,
		NumFrames:  id.NumFrames,
		Result:     Fail,
		FailReason: reason,
	}
}

// Aggregator collects the measurements of a session and combines them into a
// single BenchmarkResult.
type Aggregator struct {
	id Identity

	timing    Timing
	hasTiming bool

	pageLoad    time.Duration
	hasPageLoad bool

	xr *XRStatus

	diff *regression.DiffResult

	failReason string

	stats map[string]map[string]float64
	logs  *Logs

	produced bool
}

// NewAggregator is the preferred method of initialisation for the Aggregator
// type.
func NewAggregator(id Identity) *Aggregator {
	return &Aggregator{
		id:    id,
		stats: make(map[string]map[string]float64),
	}
}

// SetTiming sets the timing measurements of the session.
func (a *Aggregator) SetTiming(t Timing) {
	a.timing = t
	a.hasTiming = true
}

// SetPageLoad sets the time between page initialisation and the first frame
// request.
func (a *Aggregator) SetPageLoad(d time.Duration) {
	a.pageLoad = d
	a.hasPageLoad = true
}

// SetAutoEnterXR records the outcome of entering XR automatically.
func (a *Aggregator) SetAutoEnterXR(requested, successful bool) {
	a.xr = &XRStatus{Requested: requested, Successful: successful}
}

// AddStats adds a block of statistics. Values are added to any existing block
// with the same name.
func (a *Aggregator) AddStats(block string, values map[string]float64) {
	if len(values) == 0 {
		return
	}
	b, ok := a.stats[block]
	if !ok {
		b = make(map[string]float64, len(values))
		a.stats[block] = b
	}
	maps.Copy(b, values)
}

// SetDiff sets the outcome of the reference image comparison. A failed
// comparison fails the session.
func (a *Aggregator) SetDiff(d regression.DiffResult) {
	a.diff = &d
	if !d.Pass {
		a.Fail(ReasonMismatch)
	}
}

// Fail the session. The first reason given is the reason reported.
func (a *Aggregator) Fail(reason string) {
	if a.failReason == "" {
		a.failReason = reason
	}
}

// FailReason returns the reason the session failed. Returns the empty string if
// the session has not failed.
func (a *Aggregator) FailReason() string {
	return a.failReason
}

// SetLogs sets the logs captured during the session.
func (a *Aggregator) SetLogs(l Logs) {
	a.logs = &l
}

// Failed produces an early-failure record for the session. Counts as the one
// result produced by the Aggregator.
func (a *Aggregator) Failed(reason string) (BenchmarkResult, error) {
	if a.produced {
		return BenchmarkResult{}, ErrAlreadyProduced
	}
	a.produced = true
	a.Fail(reason)

	r := Failed(a.id, a.failReason)
	r.AutoEnterXR = a.xr
	r.Logs = a.logs
	if a.hasPageLoad {
		v := ms(a.pageLoad)
		r.PageLoadTime = &v
	}
	return r, nil
}

// Result produces the BenchmarkResult. A second call returns
// ErrAlreadyProduced.
func (a *Aggregator) Result() (BenchmarkResult, error) {
	if a.produced {
		return BenchmarkResult{}, ErrAlreadyProduced
	}
	a.produced = true

	r := Failed(a.id, a.failReason)
	r.AutoEnterXR = a.xr
	r.Logs = a.logs
	if a.failReason == "" {
		r.Result = Pass
	}

	if a.hasPageLoad {
		v := ms(a.pageLoad)
		r.PageLoadTime = &v
	}

	if a.hasTiming {
		t := a.timing
		frames := a.id.NumFrames
		if t.Stalled {
			frames = t.Frames
			r.NumFrames = frames
		}
		renderTime := t.End - t.FirstFrame
		m := &Metrics{
			TotalTime:        ms(t.End),
			TimeToFirstFrame: ms(t.FirstFrame),
			NumStutterEvents: t.Stutters,
			TotalRenderTime:  ms(renderTime),
			CPUTime:          ms(t.Busy),
			CPUIdleTime:      ms(t.Idle),
		}
		if renderTime > 0 {
			m.AvgFps = float64(frames) * 1000 / ms(renderTime)
			m.CPUIdlePerc = ms(t.Idle) * 100 / ms(renderTime)
		}
		if frames > 0 {
			m.AvgCPUTime = ms(t.Busy) / float64(frames)
		}
		if t.HasTimeToStable {
			v := ms(t.TimeToStable)
			m.TimeToStableFrameRate = &v
		}
		r.Metrics = m
	}

	if a.diff != nil && !a.diff.Pass {
		perc := a.diff.DiffPerc
		num := a.diff.NumDiffPixels
		r.DiffPerc = &perc
		r.NumDiffPixels = &num
	}

	if len(a.stats) > 0 {
		r.Stats = make(map[string]map[string]float64, len(a.stats))
		for k, v := range a.stats {
			r.Stats[k] = maps.Clone(v)
		}
	}

	return r, nil
}
