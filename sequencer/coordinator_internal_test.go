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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jetsetilly/gfxbench/logger"
)

func TestSlowConnectionDropped(t *testing.T) {
	c, err := NewCoordinator([]Entry{{ID: "a", URL: "/tests/a"}}, Options{Logger: logger.NewLogger(100)})
	require.NoError(t, err)

	// a connection that never drains its queue
	closed := 0
	slow := &conn{
		send:  make(chan Message, 1),
		done:  make(chan struct{}),
		close: func() { closed++ },
	}
	fast := &conn{
		send:  make(chan Message, sendQueueLen),
		done:  make(chan struct{}),
		close: func() { t.Error("fast connection closed") },
	}
	c.conns[slow] = struct{}{}
	c.conns[fast] = struct{}{}

	msg, err := NewMessage(EventSequenceFinished, nil)
	require.NoError(t, err)

	broadcast := make(chan struct{})
	go func() {
		defer close(broadcast)
		for range 3 {
			c.broadcast(msg)
		}
	}()

	select {
	case <-broadcast:
	case <-time.After(5 * time.Second):
		t.Fatal("broadcast blocked on a slow connection")
	}

	assert.Equal(t, 1, closed)
	assert.Len(t, slow.send, 1)
	assert.Len(t, fast.send, 3)

	// nothing is queued for a connection that has gone
	close(fast.done)
	assert.False(t, fast.queue(msg))
}
