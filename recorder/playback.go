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
	"context"
	"fmt"
	"io"
	"io/fs"
	"strings"
)

// Playback is a Source of events read from a recording.
type Playback struct {
	TestID string
	Width  int
	Height int

	sequence []Event
	seqCt    int

	// the last frame where an event occurs
	endFrame int
}

func (plb *Playback) String() string {
	if plb.seqCt >= len(plb.sequence) {
		return fmt.Sprintf("%d events (complete)", len(plb.sequence))
	}
	return fmt.Sprintf("%d/%d events (next on frame %d)", plb.seqCt, len(plb.sequence), plb.sequence[plb.seqCt].Frame)
}

// EndFrame returns the frame of the last event in the recording.
func (plb *Playback) EndFrame() int {
	return plb.endFrame
}

// Len returns the number of events in the recording.
func (plb *Playback) Len() int {
	return len(plb.sequence)
}

// NewPlayback reads a recording.
func NewPlayback(r io.Reader) (*Playback, error) {
	buffer, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("playback: %w", err)
	}

	plb := &Playback{}

	// convert file contents to an array of lines
	lines := strings.Split(strings.TrimRight(string(buffer), "\n"), "\n")

	err = plb.readHeader(lines)
	if err != nil {
		return nil, err
	}

	for i := numHeaderLines; i < len(lines); i++ {
		if lines[i] == "" {
			continue
		}

		ev, err := parseEvent(lines[i])
		if err != nil {
			return nil, fmt.Errorf("playback: line %d: %w", i+1, err)
		}

		if ev.Frame < plb.endFrame {
			return nil, fmt.Errorf("playback: line %d: event for frame %d is out of order", i+1, ev.Frame)
		}
		plb.endFrame = ev.Frame

		plb.sequence = append(plb.sequence, ev)
	}

	return plb, nil
}

// ReadPlayback reads the named recording from the file system.
func ReadPlayback(ctx context.Context, fsys fs.FS, name string) (*Playback, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("playback: %w", err)
	}
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("playback: %w", err)
	}
	defer f.Close()
	return NewPlayback(f)
}

// Events returns the events recorded on the frame. Frames must be requested
// in ascending order. Events for frames that are skipped are never returned.
func (plb *Playback) Events(frame int) []Event {
	// skip events for earlier frames
	for plb.seqCt < len(plb.sequence) && plb.sequence[plb.seqCt].Frame < frame {
		plb.seqCt++
	}

	start := plb.seqCt
	for plb.seqCt < len(plb.sequence) && plb.sequence[plb.seqCt].Frame == frame {
		plb.seqCt++
	}

	if start == plb.seqCt {
		return nil
	}
	return plb.sequence[start:plb.seqCt:plb.seqCt]
}

// Rewind playback to the beginning of the recording.
func (plb *Playback) Rewind() {
	plb.seqCt = 0
}
