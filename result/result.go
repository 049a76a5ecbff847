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
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Verdict of a benchmark session.
type Verdict string

// List of valid Verdict values.
const (
	Pass Verdict = "pass"
	Fail Verdict = "fail"
)

// Failure reasons.
const (
	ReasonMismatch             = "Reference image mismatch"
	ReasonReferenceUnavailable = "Error loading reference image"
	ReasonAutoEnterXR          = "autoenter-xr failed"
	ReasonStalled              = "Animation loop stalled"
	ReasonInputUnavailable     = "Error loading input recording"
	ReasonStartFailed          = "Application failed to start"
)

// DefaultRevision is used when no revision has been specified.
const DefaultRevision = "0"

// XRStatus records whether entering XR automatically was requested and
// whether it succeeded.
type XRStatus struct {
	Requested  bool `json:"requested"`
	Successful bool `json:"successful"`
}

// Logs captured during the session.
type Logs struct {
	Errors      []string `json:"errors"`
	Warnings    []string `json:"warnings"`
	CatchErrors []string `json:"catchErrors"`
}

// Metrics are the timing measurements of a completed session. They are absent
// from early-failure records.
type Metrics struct {
	TotalTime             float64  `json:"totalTime" validate:"gte=0"`
	TimeToFirstFrame      float64  `json:"timeToFirstFrame" validate:"gte=0"`
	AvgFps                float64  `json:"avgFps" validate:"gte=0"`
	NumStutterEvents      int      `json:"numStutterEvents" validate:"gte=0"`
	TimeToStableFrameRate *float64 `json:"timeToStableFrameRate,omitempty"`
	TotalRenderTime       float64  `json:"totalRenderTime" validate:"gte=0"`
	CPUTime               float64  `json:"cpuTime" validate:"gte=0"`
	AvgCPUTime            float64  `json:"avgCpuTime" validate:"gte=0"`
	CPUIdleTime           float64  `json:"cpuIdleTime" validate:"gte=0"`
	CPUIdlePerc           float64  `json:"cpuIdlePerc" validate:"gte=0"`
}

// BenchmarkResult is the outcome of a benchmark session.
type BenchmarkResult struct {
	TestID    string `json:"test_id" validate:"required"`
	TestUUID  string `json:"testUUID,omitempty"`
	Revision  string `json:"revision"`
	NumFrames int    `json:"numFrames" validate:"gte=0"`

	*Metrics

	PageLoadTime *float64  `json:"pageLoadTime,omitempty"`
	AutoEnterXR  *XRStatus `json:"autoEnterXR,omitempty"`

	Result        Verdict  `json:"result" validate:"oneof=pass fail"`
	DiffPerc      *float64 `json:"diffPerc,omitempty"`
	NumDiffPixels *int     `json:"numDiffPixels,omitempty"`
	FailReason    string   `json:"failReason,omitempty" validate:"required_if=Result fail"`

	Stats map[string]map[string]float64 `json:"stats,omitempty"`
	Logs  *Logs                         `json:"logs,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate checks that the result is well formed.
func (r *BenchmarkResult) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("result: %w", err)
	}
	return nil
}

// Passed returns true if the result is a pass.
func (r *BenchmarkResult) Passed() bool {
	return r.Result == Pass
}

func (r BenchmarkResult) String() string {
	if r.Result == Fail {
		return fmt.Sprintf("%s: %s (%s)", r.TestID, r.Result, r.FailReason)
	}
	if r.Metrics != nil {
		return fmt.Sprintf("%s: %s (%.2f fps, %d stutters)", r.TestID, r.Result, r.AvgFps, r.NumStutterEvents)
	}
	return fmt.Sprintf("%s: %s", r.TestID, r.Result)
}

// Parse a JSON encoded result. The result is validated.
func Parse(data []byte) (BenchmarkResult, error) {
	var r BenchmarkResult
	if err := json.Unmarshal(data, &r); err != nil {
		return BenchmarkResult{}, fmt.Errorf("result: %w", err)
	}
	if err := r.Validate(); err != nil {
		return BenchmarkResult{}, err
	}
	return r, nil
}
