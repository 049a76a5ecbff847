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

package sequencer

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jetsetilly/gfxbench/result"
)

// List of valid event names.
const (
	EventTestStarted       = "test_started"
	EventLog               = "log"
	EventBenchmarkFinish   = "benchmark_finish"
	EventNextBenchmark     = "next_benchmark"
	EventBenchmarkFinished = "benchmark_finished"
	EventSequenceFinished  = "sequence_finished"
)

// ErrUnknownEvent is returned when a message has an event name that is not
// recognised.
var ErrUnknownEvent = errors.New("unknown event")

// Message is the envelope of every message sent over the connection.
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// TestStarted is the data of the test_started event.
type TestStarted struct {
	ID       string `json:"id"`
	TestUUID string `json:"testUUID,omitempty"`
}

// Log is the data of the log event.
type Log struct {
	Args []any `json:"args"`
}

// Benchmark is the data of the benchmark_finish and benchmark_finished events.
type Benchmark struct {
	Result result.BenchmarkResult `json:"result"`
}

// NextBenchmark is the data of the next_benchmark event.
type NextBenchmark struct {
	URL string `json:"url"`
}

// NewMessage creates a message for the event. The data may be nil.
func NewMessage(event string, data any) (Message, error) {
	msg := Message{Event: event}
	if data == nil {
		return msg, nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return Message{}, fmt.Errorf("sequencer: %s: %w", event, err)
	}
	msg.Data = b
	return msg, nil
}

// Decode the data of the message.
func (msg Message) Decode(v any) error {
	if len(msg.Data) == 0 {
		return fmt.Errorf("sequencer: %s: no data", msg.Event)
	}
	if err := json.Unmarshal(msg.Data, v); err != nil {
		return fmt.Errorf("sequencer: %s: %w", msg.Event, err)
	}
	return nil
}

// Entry is a single test in the sequence.
type Entry struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
