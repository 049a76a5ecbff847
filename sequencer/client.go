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
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jetsetilly/gfxbench/result"
)

// ErrClientClosed is returned when the connection to the coordinator has
// closed.
var ErrClientClosed = errors.New("connection to coordinator closed")

// outcome of a reported result
type outcome struct {
	next string
	ok   bool
}

// Client is the session side of the sequencing protocol.
type Client struct {
	ws *websocket.Conn

	// gorilla connections support one concurrent writer
	writeCrit sync.Mutex

	crit     sync.Mutex
	testID   string
	testUUID string
	next     string
	err    error

	outcome  chan outcome
	finished func(result.BenchmarkResult)

	closed   chan struct{}
	sequence chan struct{}
	seqOnce  sync.Once
}

// Dial the coordinator. The URL should be the websocket endpoint of the
// coordinator, for example ws://localhost:8888/ws
func Dial(ctx context.Context, url string) (*Client, error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("sequencer: %w", err)
	}

	c := &Client{
		ws:       ws,
		outcome:  make(chan outcome, 1),
		closed:   make(chan struct{}),
		sequence: make(chan struct{}),
	}
	go c.read()
	return c, nil
}

// OnFinished sets a function to be called for every result broadcast by the
// coordinator. The function is called from the connection's reader and
// should not block.
func (c *Client) OnFinished(f func(result.BenchmarkResult)) {
	c.crit.Lock()
	defer c.crit.Unlock()
	c.finished = f
}

func (c *Client) read() {
	defer close(c.closed)

	for {
		var msg Message
		if err := c.ws.ReadJSON(&msg); err != nil {
			c.crit.Lock()
			c.err = err
			c.crit.Unlock()
			return
		}

		switch msg.Event {
		case EventNextBenchmark:
			var d NextBenchmark
			if err := msg.Decode(&d); err != nil {
				continue
			}
			c.crit.Lock()
			c.next = d.URL
			c.crit.Unlock()

		case EventBenchmarkFinished:
			var d Benchmark
			if err := msg.Decode(&d); err != nil {
				continue
			}

			c.crit.Lock()
			f := c.finished
			own := d.Result.TestID == c.testID
			if c.testUUID != "" && d.Result.TestUUID != "" {
				own = d.Result.TestUUID == c.testUUID
			}
			next := c.next
			if own {
				c.next = ""
			}
			c.crit.Unlock()

			if f != nil {
				f(d.Result)
			}
			if own {
				select {
				case c.outcome <- outcome{next: next, ok: next != ""}:
				default:
				}
			}

		case EventSequenceFinished:
			c.seqOnce.Do(func() { close(c.sequence) })
		}
	}
}

func (c *Client) send(ctx context.Context, event string, data any) error {
	msg, err := NewMessage(event, data)
	if err != nil {
		return err
	}

	c.writeCrit.Lock()
	defer c.writeCrit.Unlock()

	if dl, ok := ctx.Deadline(); ok {
		_ = c.ws.SetWriteDeadline(dl)
		defer c.ws.SetWriteDeadline(time.Time{})
	}
	if err := c.ws.WriteJSON(msg); err != nil {
		return fmt.Errorf("sequencer: %w", err)
	}
	return nil
}

// TestStarted announces the session to the coordinator.
func (c *Client) TestStarted(ctx context.Context, testID string, testUUID string) error {
	c.crit.Lock()
	c.testID = testID
	c.testUUID = testUUID
	c.next = ""
	c.crit.Unlock()
	return c.send(ctx, EventTestStarted, TestStarted{ID: testID, TestUUID: testUUID})
}

// Log sends a log line to the coordinator.
func (c *Client) Log(ctx context.Context, args ...any) error {
	return c.send(ctx, EventLog, Log{Args: args})
}

// Finish reports the result of the session.
func (c *Client) Finish(ctx context.Context, res result.BenchmarkResult) error {
	return c.send(ctx, EventBenchmarkFinish, Benchmark{Result: res})
}

// WaitNext waits for the coordinator to acknowledge the reported result.
// Returns the URL of the next test in the sequence, if there is one.
func (c *Client) WaitNext(ctx context.Context) (string, bool, error) {
	select {
	case o := <-c.outcome:
		return o.next, o.ok, nil
	case <-c.closed:
		c.crit.Lock()
		err := c.err
		c.crit.Unlock()
		return "", false, fmt.Errorf("sequencer: %w: %w", ErrClientClosed, err)
	case <-ctx.Done():
		return "", false, fmt.Errorf("sequencer: %w", ctx.Err())
	}
}

// SequenceFinished is closed when the coordinator announces that the final
// test of the sequence has completed.
func (c *Client) SequenceFinished() <-chan struct{} {
	return c.sequence
}

// Close the connection to the coordinator.
func (c *Client) Close() error {
	c.writeCrit.Lock()
	err := c.ws.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeCrit.Unlock()

	select {
	case <-c.closed:
	case <-time.After(time.Second):
	}

	if cerr := c.ws.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		return fmt.Errorf("sequencer: %w", err)
	}
	return nil
}
