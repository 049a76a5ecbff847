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
	"fmt"
	"slices"
	"strings"
)

// Flat is a single result reduced to a flat map of numeric values. Used for
// comparing results across runs.
type Flat struct {
	Test     string
	TestUUID string
	Values   map[string]float64
}

// Flatten merges the metrics and the statistics blocks of the result into a
// single map. Statistics are named "<block>_<key>".
func (r BenchmarkResult) Flatten() Flat {
	f := Flat{
		Test:     r.TestID,
		TestUUID: r.TestUUID,
		Values:   make(map[string]float64),
	}

	if m := r.Metrics; m != nil {
		f.Values["avgFps"] = m.AvgFps
		f.Values["numStutterEvents"] = float64(m.NumStutterEvents)
		f.Values["totalRenderTime"] = m.TotalRenderTime
		f.Values["cpuTime"] = m.CPUTime
		f.Values["avgCpuTime"] = m.AvgCPUTime
		f.Values["cpuIdleTime"] = m.CPUIdleTime
		f.Values["cpuIdlePerc"] = m.CPUIdlePerc
		f.Values["totalTime"] = m.TotalTime
		f.Values["timeToFirstFrame"] = m.TimeToFirstFrame
		if m.TimeToStableFrameRate != nil {
			f.Values["timeToStableFrameRate"] = *m.TimeToStableFrameRate
		}
	}
	if r.PageLoadTime != nil {
		f.Values["pageLoadTime"] = *r.PageLoadTime
	}
	if r.DiffPerc != nil {
		f.Values["diffPerc"] = *r.DiffPerc
	}
	if r.NumDiffPixels != nil {
		f.Values["numDiffPixels"] = float64(*r.NumDiffPixels)
	}

	for block, values := range r.Stats {
		for k, v := range values {
			f.Values[fmt.Sprintf("%s_%s", block, k)] = v
		}
	}

	return f
}

// Keys returns the names of the values in sorted order.
func (f Flat) Keys() []string {
	keys := make([]string, 0, len(f.Values))
	for k := range f.Values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (f Flat) String() string {
	s := strings.Builder{}
	s.WriteString(f.Test)
	for _, k := range f.Keys() {
		s.WriteString(fmt.Sprintf("\n  %s: %.3f", k, f.Values[k]))
	}
	return s.String()
}
