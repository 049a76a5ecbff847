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

package performance_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/gfxbench/performance"
	"github.com/jetsetilly/gfxbench/test"
)

func TestStutterWarmup(t *testing.T) {
	var s performance.Stutter

	// large jumps in the warmup period are never stutters
	for i := 0; i <= performance.StutterWarmup; i++ {
		test.ExpectFailure(t, s.Tick(i, time.Duration(i+1)*100*time.Millisecond, 0))
	}
	test.ExpectEquality(t, s.Count(), 0)
}

func TestStutter(t *testing.T) {
	var s performance.Stutter

	for i := range 10 {
		s.Tick(i, 16*time.Millisecond, 0)
	}

	// previous duration of 16ms, current of 30ms
	test.ExpectSuccess(t, s.Tick(10, 30*time.Millisecond, 0))
	test.ExpectEquality(t, s.Count(), 1)
	test.ExpectEquality(t, s.ConsecutiveSmooth(), 0)

	// longer than 20ms but not 1.35 times longer than the previous frame
	test.ExpectFailure(t, s.Tick(11, 35*time.Millisecond, 0))

	// 1.35 times longer than the previous frame but not longer than 20ms
	var s2 performance.Stutter
	for i := range 10 {
		s2.Tick(i, 5*time.Millisecond, 0)
	}
	test.ExpectFailure(t, s2.Tick(10, 19*time.Millisecond, 0))
	test.ExpectEquality(t, s2.LastDuration(), 19*time.Millisecond)
}

func TestStutterZeroPrevious(t *testing.T) {
	var s performance.Stutter
	for i := range 10 {
		s.Tick(i, 0, 0)
	}
	test.ExpectFailure(t, s.Tick(10, time.Second, 0))
}

func TestStableFrameRate(t *testing.T) {
	var s performance.Stutter

	_, ok := s.TimeToStable()
	test.ExpectFailure(t, ok)

	frame := 16 * time.Millisecond
	since := time.Duration(0)

	// the first tick after the warmup has a previous duration so 120 smooth
	// frames complete at index StutterWarmup+120
	last := performance.StutterWarmup + performance.SmoothFramesForStability
	for i := 0; i <= last; i++ {
		since += frame
		s.Tick(i, frame, since)
	}

	stable, ok := s.TimeToStable()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, stable, since)
	test.ExpectEquality(t, s.ConsecutiveSmooth(), -1)

	// milestone fires once and stutters no longer affect it
	s.Tick(last+1, time.Second, since+time.Second)
	s.Tick(last+2, frame, since+time.Second+frame)
	again, ok := s.TimeToStable()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, again, stable)
	test.ExpectEquality(t, s.ConsecutiveSmooth(), -1)
	test.ExpectEquality(t, s.Count(), 1)
}

func TestStutterResetsSmooth(t *testing.T) {
	var s performance.Stutter
	frame := 16 * time.Millisecond
	for i := range 100 {
		s.Tick(i, frame, 0)
	}
	s.Tick(100, 50*time.Millisecond, 0)
	test.ExpectEquality(t, s.ConsecutiveSmooth(), 0)
	s.Tick(101, 50*time.Millisecond, 0)
	test.ExpectEquality(t, s.ConsecutiveSmooth(), 1)
}

func TestIdle(t *testing.T) {
	var idle performance.Idle

	ms := time.Millisecond

	idle.Enter(0)
	idle.Exit(4 * ms)
	idle.Enter(16 * ms)
	idle.Exit(20 * ms)
	idle.Enter(32 * ms)
	idle.Exit(40 * ms)

	test.ExpectEquality(t, idle.Busy(), 16*ms)
	test.ExpectEquality(t, idle.Idle(), 24*ms)
	test.ExpectApproximate(t, idle.Percentage(48*ms), 50.0, 0.0001)
	test.ExpectEquality(t, idle.Percentage(0), 0.0)
}

func TestRunning(t *testing.T) {
	var r performance.Running
	test.ExpectEquality(t, r.StdDev(), 0.0)

	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		r.Add(v)
	}
	test.ExpectEquality(t, r.Count(), 8)
	test.ExpectEquality(t, r.Min(), 2.0)
	test.ExpectEquality(t, r.Max(), 9.0)
	test.ExpectApproximate(t, r.Mean(), 5.0, 0.0001)
	test.ExpectApproximate(t, r.StdDev(), 2.0, 0.0001)
}

func TestStats(t *testing.T) {
	var s performance.Stats
	ms := time.Millisecond

	for i := range 5 {
		start := time.Duration(i) * 20 * ms
		s.FrameStart(start)
		s.FrameEnd(start + 5*ms)
	}

	sum := s.Summary()
	test.ExpectApproximate(t, sum["fps_avg"], 50.0, 0.0001)
	test.ExpectApproximate(t, sum["dt_avg"], 20.0, 0.0001)
	test.ExpectApproximate(t, sum["cpu_max"], 5.0, 0.0001)
	test.ExpectEquality(t, s.CPU.Count(), 5)
	test.ExpectEquality(t, s.Delta.Count(), 4)
}

func TestCalcFPS(t *testing.T) {
	fps, accuracy := performance.CalcFPS(100, 2*time.Second, 60)
	test.ExpectApproximate(t, fps, 50.0, 0.0001)
	test.ExpectApproximate(t, accuracy, 83.333, 0.001)

	fps, _ = performance.CalcFPS(100, 0, 60)
	test.ExpectEquality(t, fps, 0.0)
}

func TestParseProfile(t *testing.T) {
	p, err := performance.ParseProfile("cpu,trace")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileCPU|performance.ProfileTrace)
	test.ExpectEquality(t, p.String(), "cpu,trace")

	p, err = performance.ParseProfile("all")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileAll)

	p, err = performance.ParseProfile("")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p.String(), "none")

	_, err = performance.ParseProfile("gpu")
	test.ExpectFailure(t, err)
}

func TestRunProfilerNone(t *testing.T) {
	ran := false
	err := performance.RunProfiler(performance.ProfileNone, t.TempDir()+"/none", func() error {
		ran = true
		return nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, ran)
}
