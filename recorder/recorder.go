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

package recorder

import (
	"bufio"
	"fmt"
	"io"
)

// Recorder writes input events to a recording.
type Recorder struct {
	output *bufio.Writer

	testID string
	width  int
	height int

	headerWritten bool
	lastFrame     int
	numEvents     int
}

// NewRecorder is the preferred method of initialisation for the Recorder type.
func NewRecorder(w io.Writer, testID string, width int, height int) *Recorder {
	return &Recorder{
		output: bufio.NewWriter(w),
		testID: testID,
		width:  width,
		height: height,
	}
}

func (rec *Recorder) writeHeader() error {
	if rec.headerWritten {
		return nil
	}
	rec.headerWritten = true
	_, err := io.WriteString(rec.output, header(rec.testID, rec.width, rec.height))
	if err != nil {
		return fmt.Errorf("recorder: %w", err)
	}
	return nil
}

// Record an event. Events must be recorded in frame order.
func (rec *Recorder) Record(ev Event) error {
	if err := rec.writeHeader(); err != nil {
		return err
	}
	if ev.Frame < rec.lastFrame {
		return fmt.Errorf("recorder: event for frame %d recorded after frame %d", ev.Frame, rec.lastFrame)
	}
	if !ev.Type.valid() {
		return fmt.Errorf("recorder: unknown event type: %s", ev.Type)
	}
	rec.lastFrame = ev.Frame
	rec.numEvents++
	_, err := io.WriteString(rec.output, formatEvent(ev))
	if err != nil {
		return fmt.Errorf("recorder: %w", err)
	}
	return nil
}

// NumEvents returns the number of events recorded so far.
func (rec *Recorder) NumEvents() int {
	return rec.numEvents
}

// End the recording. The header is written even if no events were recorded.
func (rec *Recorder) End() error {
	if err := rec.writeHeader(); err != nil {
		return err
	}
	if err := rec.output.Flush(); err != nil {
		return fmt.Errorf("recorder: %w", err)
	}
	return nil
}
