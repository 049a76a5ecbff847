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

import "fmt"

// EventType is the type of an input event.
type EventType string

// List of valid EventType values.
const (
	MouseMove EventType = "mousemove"
	MouseDown EventType = "mousedown"
	MouseUp   EventType = "mouseup"
	Wheel     EventType = "wheel"
	KeyDown   EventType = "keydown"
	KeyUp     EventType = "keyup"
)

func (t EventType) valid() bool {
	switch t {
	case MouseMove, MouseDown, MouseUp, Wheel, KeyDown, KeyUp:
		return true
	}
	return false
}

// Event is a single input event.
type Event struct {
	// frame index the event was received on
	Frame int

	Type EventType

	// pointer position. for wheel events X and Y are the scroll deltas
	X, Y float64

	Button int

	Key  string
	Code string
}

func (ev Event) String() string {
	switch ev.Type {
	case KeyDown, KeyUp:
		return fmt.Sprintf("%d: %s %s", ev.Frame, ev.Type, ev.Key)
	}
	return fmt.Sprintf("%d: %s %.0f,%.0f", ev.Frame, ev.Type, ev.X, ev.Y)
}

// Source implementations return the events for a frame.
type Source interface {
	Events(frame int) []Event
}
