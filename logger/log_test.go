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

package logger_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/jetsetilly/gfxbench/logger"
	"github.com/jetsetilly/gfxbench/test"
)

func TestTail(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	test.ExpectEquality(t, log.Write(w), false)
	test.ExpectEquality(t, w.String(), "")

	log.Log(logger.Allow, "harness", "benchmark started")
	log.Log(logger.Allow, "harness", "benchmark finished")

	// too many entries is okay
	log.Tail(w, 100)
	test.ExpectEquality(t, w.String(), "harness: benchmark started\nharness: benchmark finished\n")

	w.Reset()
	log.Tail(w, 1)
	test.ExpectEquality(t, w.String(), "harness: benchmark finished\n")

	w.Reset()
	log.Tail(w, 0)
	test.ExpectEquality(t, w.String(), "")
}

func TestRepeats(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Log(logger.Allow, "frameloop", "frame stalled")
	log.Log(logger.Allow, "frameloop", "frame stalled")
	log.Log(logger.Allow, "frameloop", "frame stalled")
	log.Log(logger.Allow, "frameloop", "resumed")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "frameloop: frame stalled (repeat x3)\nframeloop: resumed\n")
	test.ExpectEquality(t, len(log.Entries()), 2)
}

func TestMaxEntries(t *testing.T) {
	log := logger.NewLogger(2)
	w := &strings.Builder{}

	log.Log(logger.Allow, "a", 1)
	log.Log(logger.Allow, "b", 2)
	log.Log(logger.Allow, "c", 3)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "b: 2\nc: 3\n")
}

func TestPermissions(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Log(logger.Verbosity(false), "tag", "detail")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "")

	log.Log(logger.Verbosity(true), "tag", "detail")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: detail\n")

	// nil permission is never allowed
	log.Clear()
	w.Reset()
	log.Log(nil, "tag", "detail")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "")
}

// the Log() function explicitly handles error types by using the Error() result
func TestErrorLogging(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	err := errors.New("test error")

	log.Log(logger.Allow, "tag", err)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: test error\n")

	log.Clear()
	w.Reset()

	log.Logf(logger.Allow, "tag", "wrapped: %v", err)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: wrapped: test error\n")
}

type stringerTest struct{}

func (_ stringerTest) String() string {
	return "stringer test"
}

func TestStringerLogging(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Log(logger.Allow, "tag", stringerTest{})
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: stringer test\n")
}

func TestNewlinesRemoved(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Log(logger.Allow, "ta\ng", "multi\nline")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: multiline\n")
}

func TestEchoAndForward(t *testing.T) {
	log := logger.NewLogger(100)
	echo := &strings.Builder{}
	var forwarded []logger.Entry

	log.SetEcho(echo)
	log.SetForward(func(e logger.Entry) {
		forwarded = append(forwarded, e)
	})

	log.Log(logger.Allow, "console", "warning")
	log.Log(logger.Allow, "console", "warning")
	test.ExpectEquality(t, echo.String(), "console: warning\nconsole: warning (repeat x2)\n")

	// every call is forwarded even when collapsed in the history
	test.ExpectEquality(t, len(forwarded), 2)
	test.ExpectEquality(t, forwarded[1].Repeated, 0)

	log.SetEcho(nil)
	log.SetForward(nil)
	log.Log(logger.Allow, "console", "other")
	test.ExpectEquality(t, len(forwarded), 2)
}
