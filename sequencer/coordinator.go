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
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/jetsetilly/gfxbench/logger"
	"github.com/jetsetilly/gfxbench/result"
)

// size of the outgoing message queue of each connection
const sendQueueLen = 16

// Options for the Coordinator. Zero values are replaced with defaults.
type Options struct {
	Store   Store
	Metrics *Metrics
	Logger  *logger.Logger
}

// Coordinator of a benchmark sequence.
type Coordinator struct {
	runID   string
	entries []Entry
	index   map[string]int

	store   Store
	metrics *Metrics
	log     *logger.Logger

	upgrader websocket.Upgrader

	// connections are only shared for the purposes of broadcast
	crit  sync.Mutex
	conns map[*conn]struct{}

	done     chan struct{}
	doneOnce sync.Once
}

// NewCoordinator is the preferred method of initialisation for the
// Coordinator type. Test IDs in the sequence must be unique.
func NewCoordinator(entries []Entry, opts Options) (*Coordinator, error) {
	c := &Coordinator{
		runID:   uuid.NewString(),
		entries: append([]Entry{}, entries...),
		index:   make(map[string]int, len(entries)),
		store:   opts.Store,
		metrics: opts.Metrics,
		log:     opts.Logger,
		conns:   make(map[*conn]struct{}),
		done:    make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	for i, e := range c.entries {
		if e.ID == "" {
			return nil, fmt.Errorf("sequencer: entry %d has no test id", i)
		}
		if _, ok := c.index[e.ID]; ok {
			return nil, fmt.Errorf("sequencer: duplicate test id: %s", e.ID)
		}
		c.index[e.ID] = i
	}

	if c.store == nil {
		c.store = NewMemoryStore()
	}
	if c.metrics == nil {
		c.metrics = NewMetrics()
	}
	if c.log == nil {
		c.log = logger.Central()
	}

	return c, nil
}

// RunID returns the unique identifier of this run of the sequence.
func (c *Coordinator) RunID() string {
	return c.runID
}

// Entries returns the entries of the sequence in order.
func (c *Coordinator) Entries() []Entry {
	return append([]Entry{}, c.entries...)
}

// First returns the first entry of the sequence.
func (c *Coordinator) First() (Entry, bool) {
	if len(c.entries) == 0 {
		return Entry{}, false
	}
	return c.entries[0], true
}

// Next returns the entry that follows the test. Returns false if the test is
// the final entry or is not in the sequence.
func (c *Coordinator) Next(testID string) (Entry, bool) {
	i, ok := c.index[testID]
	if !ok || i+1 >= len(c.entries) {
		return Entry{}, false
	}
	return c.entries[i+1], true
}

// Done is closed when the final entry of the sequence has completed.
func (c *Coordinator) Done() <-chan struct{} {
	return c.done
}

// Store returns the result store of the coordinator.
func (c *Coordinator) Store() Store {
	return c.store
}

// Metrics returns the metrics of the coordinator.
func (c *Coordinator) Metrics() *Metrics {
	return c.metrics
}

// Handler returns the HTTP handler of the coordinator.
func (c *Coordinator) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/ws", func(ctx *gin.Context) {
		ws, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
		if err != nil {
			c.log.Log(logger.Allow, "sequencer", err)
			return
		}
		if err := c.ServeConn(ctx.Request.Context(), ws); err != nil {
			c.log.Log(logger.Allow, "sequencer", err)
		}
	})

	r.GET("/metrics", gin.WrapH(c.metrics.Handler()))

	r.GET("/results", func(ctx *gin.Context) {
		results, err := c.store.Results()
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if results == nil {
			results = []result.BenchmarkResult{}
		}
		ctx.JSON(http.StatusOK, results)
	})

	r.GET("/sequence", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"runID": c.runID,
			"tests": c.entries,
		})
	})

	return r
}

// conn is the state of a single connection
type conn struct {
	send chan Message
	done chan struct{}

	// closes the underlying connection
	close    func()
	dropOnce sync.Once

	// state of the current session on the connection. a connection may
	// carry any number of sessions, one after the other. only accessed by
	// the reader goroutine
	testID   string
	testUUID string
	finished bool
}

// queue a message for sending without blocking. a connection that is not
// keeping up with its messages is dropped. returns false if the message was
// not queued
func (cn *conn) queue(msg Message) bool {
	select {
	case <-cn.done:
		return false
	default:
	}

	select {
	case cn.send <- msg:
		return true
	default:
		cn.dropOnce.Do(cn.close)
		return false
	}
}

// ServeConn serves the websocket connection until it closes or the context is
// cancelled. The connection is closed on return.
func (c *Coordinator) ServeConn(ctx context.Context, ws *websocket.Conn) error {
	cn := &conn{
		send: make(chan Message, sendQueueLen),
		done: make(chan struct{}),
		close: func() {
			_ = ws.Close()
		},
	}

	c.crit.Lock()
	c.conns[cn] = struct{}{}
	c.crit.Unlock()
	c.metrics.connections.Inc()

	defer func() {
		c.crit.Lock()
		delete(c.conns, cn)
		c.crit.Unlock()
		close(cn.done)
		c.metrics.connections.Dec()
		_ = ws.Close()
	}()

	g, ctx := errgroup.WithContext(ctx)

	// reader
	g.Go(func() error {
		defer func() {
			if cn.testID != "" && !cn.finished {
				c.metrics.disconnects.Inc()
				c.log.Logf(logger.Allow, "sequencer", "%s disconnected before reporting", describe(cn))
			}
		}()

		for {
			var msg Message
			if err := ws.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					return fmt.Errorf("sequencer: %w", err)
				}
				// normal closure or a broken connection. the writer is
				// stopped by returning a sentinel error
				return errClosed
			}
			if err := c.handle(cn, msg); err != nil {
				c.metrics.invalid.Inc()
				c.log.Log(logger.Allow, "sequencer", err)
			}
		}
	})

	// writer
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case msg := <-cn.send:
				if err := ws.WriteJSON(msg); err != nil {
					return fmt.Errorf("sequencer: %w", err)
				}
			}
		}
	})

	// closing the websocket unblocks the reader if the context is
	// cancelled from outside
	go func() {
		<-ctx.Done()
		_ = ws.Close()
	}()

	err := g.Wait()
	if errors.Is(err, errClosed) {
		return nil
	}
	return err
}

// errClosed ends the connection goroutines when the connection closes
var errClosed = errors.New("connection closed")

func describe(cn *conn) string {
	if cn.testID == "" {
		return "anonymous session"
	}
	return cn.testID
}

// handle a single message from the connection
func (c *Coordinator) handle(cn *conn, msg Message) error {
	switch msg.Event {
	case EventTestStarted:
		var d TestStarted
		if err := msg.Decode(&d); err != nil {
			return err
		}
		if cn.testID != "" && !cn.finished {
			c.log.Logf(logger.Allow, "sequencer", "%s replaced before reporting", describe(cn))
		}
		cn.testID = d.ID
		cn.testUUID = d.TestUUID
		cn.finished = false
		c.metrics.started.Inc()
		if _, ok := c.index[d.ID]; !ok {
			c.log.Logf(logger.Allow, "sequencer", "%s is not in the sequence", d.ID)
		}
		c.log.Logf(logger.Allow, "sequencer", "%s started (%s)", d.ID, d.TestUUID)

	case EventLog:
		var d Log
		if err := msg.Decode(&d); err != nil {
			return err
		}
		s := make([]string, len(d.Args))
		for i, a := range d.Args {
			s[i] = fmt.Sprint(a)
		}
		c.log.Log(logger.Allow, describe(cn), strings.Join(s, " "))

	case EventBenchmarkFinish:
		if cn.finished {
			c.log.Logf(logger.Allow, "sequencer", "%s: ignoring repeated result", describe(cn))
			return nil
		}
		var d Benchmark
		if err := msg.Decode(&d); err != nil {
			return err
		}
		if err := d.Result.Validate(); err != nil {
			return fmt.Errorf("sequencer: %s: %w", describe(cn), err)
		}
		cn.finished = true
		c.finish(cn, d.Result)

	default:
		return fmt.Errorf("sequencer: %w: %s", ErrUnknownEvent, msg.Event)
	}

	return nil
}

// finish handles a completed result. the successor of the test is sent to the
// reporting connection before the result is broadcast
func (c *Coordinator) finish(cn *conn, res result.BenchmarkResult) {
	c.log.Logf(logger.Allow, "sequencer", "%s", res)

	if err := c.store.Put(res); err != nil {
		c.log.Log(logger.Allow, "sequencer", err)
	}
	c.metrics.observe(res)

	idx, ok := c.index[res.TestID]
	if !ok {
		c.metrics.unknown.Inc()
		c.log.Logf(logger.Allow, "sequencer", "result for %s is not in the sequence", res.TestID)
	} else if next, ok := c.Next(res.TestID); ok {
		msg, err := NewMessage(EventNextBenchmark, NextBenchmark{URL: next.URL})
		if err == nil && !cn.queue(msg) {
			c.log.Logf(logger.Allow, "sequencer", "%s: message not delivered: %s", describe(cn), msg.Event)
		}
	}

	msg, err := NewMessage(EventBenchmarkFinished, Benchmark{Result: res})
	if err != nil {
		c.log.Log(logger.Allow, "sequencer", err)
		return
	}
	c.broadcast(msg)

	if ok && idx == len(c.entries)-1 {
		msg, _ := NewMessage(EventSequenceFinished, nil)
		c.broadcast(msg)
		c.doneOnce.Do(func() {
			c.log.Logf(logger.Allow, "sequencer", "sequence %s finished", c.runID)
			close(c.done)
		})
	}
}

// broadcast sends the message to every connection
func (c *Coordinator) broadcast(msg Message) {
	c.crit.Lock()
	conns := make([]*conn, 0, len(c.conns))
	for cn := range c.conns {
		conns = append(conns, cn)
	}
	c.crit.Unlock()

	dropped := 0
	for _, cn := range conns {
		if !cn.queue(msg) {
			dropped++
		}
	}
	if dropped > 0 {
		c.log.Logf(logger.Allow, "sequencer", "%s not delivered to %d connections", msg.Event, dropped)
	}
}
