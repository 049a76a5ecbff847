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
	"fmt"
	"strconv"
	"strings"
)

const (
	fieldFrame int = iota
	fieldType
	fieldX
	fieldY
	fieldButton
	fieldKey
	fieldCode
	numFields
)

const fieldSep = ", "

const (
	lineTestID int = iota
	lineCanvas
	numHeaderLines
)

func header(testID string, width, height int) string {
	lines := make([]string, numHeaderLines)
	lines[lineTestID] = testID
	lines[lineCanvas] = fmt.Sprintf("%dx%d", width, height)
	return strings.Join(lines, "\n") + "\n"
}

func (plb *Playback) readHeader(lines []string) error {
	if len(lines) < numHeaderLines {
		return fmt.Errorf("playback: recording is missing header")
	}

	plb.TestID = lines[lineTestID]

	_, err := fmt.Sscanf(lines[lineCanvas], "%dx%d", &plb.Width, &plb.Height)
	if err != nil {
		return fmt.Errorf("playback: canvas size at line %d: %w", lineCanvas+1, err)
	}

	return nil
}

func formatEvent(ev Event) string {
	fields := make([]string, numFields)
	fields[fieldFrame] = strconv.Itoa(ev.Frame)
	fields[fieldType] = string(ev.Type)
	fields[fieldX] = strconv.FormatFloat(ev.X, 'f', -1, 64)
	fields[fieldY] = strconv.FormatFloat(ev.Y, 'f', -1, 64)
	fields[fieldButton] = strconv.Itoa(ev.Button)
	fields[fieldKey] = strconv.Quote(ev.Key)
	fields[fieldCode] = strconv.Quote(ev.Code)
	return strings.Join(fields, fieldSep) + "\n"
}

// split line into fields. quoted fields may contain the field separator
func splitFields(line string) ([]string, error) {
	var fields []string
	for len(fields) < numFields-2 {
		i := strings.Index(line, fieldSep)
		if i == -1 {
			return nil, fmt.Errorf("expected %d fields", numFields)
		}
		fields = append(fields, line[:i])
		line = line[i+len(fieldSep):]
	}

	// the last two fields are quoted
	key, err := strconv.QuotedPrefix(line)
	if err != nil {
		return nil, fmt.Errorf("key field: %w", err)
	}
	line = strings.TrimPrefix(line[len(key):], fieldSep)
	code, err := strconv.QuotedPrefix(line)
	if err != nil {
		return nil, fmt.Errorf("code field: %w", err)
	}
	if len(code) != len(line) {
		return nil, fmt.Errorf("unexpected data after code field")
	}

	return append(fields, key, code), nil
}

func parseEvent(line string) (Event, error) {
	var ev Event

	toks, err := splitFields(line)
	if err != nil {
		return ev, err
	}

	ev.Frame, err = strconv.Atoi(toks[fieldFrame])
	if err != nil {
		return ev, fmt.Errorf("frame field: %w", err)
	}

	ev.Type = EventType(toks[fieldType])
	if !ev.Type.valid() {
		return ev, fmt.Errorf("unknown event type: %s", toks[fieldType])
	}

	ev.X, err = strconv.ParseFloat(toks[fieldX], 64)
	if err != nil {
		return ev, fmt.Errorf("x field: %w", err)
	}
	ev.Y, err = strconv.ParseFloat(toks[fieldY], 64)
	if err != nil {
		return ev, fmt.Errorf("y field: %w", err)
	}
	ev.Button, err = strconv.Atoi(toks[fieldButton])
	if err != nil {
		return ev, fmt.Errorf("button field: %w", err)
	}

	// QuotedPrefix has already checked that the fields are well formed
	ev.Key, _ = strconv.Unquote(toks[fieldKey])
	ev.Code, _ = strconv.Unquote(toks[fieldCode])

	return ev, nil
}
