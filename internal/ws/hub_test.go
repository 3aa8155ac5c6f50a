package ws

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(userID uint) *Client {
	return &Client{UserID: userID, Send: make(chan []byte, 4)}
}

func TestHubBroadcastToUserReachesOnlyThatUser(t *testing.T) {
	h := NewHub()
	a := newTestClient(1)
	b := newTestClient(2)
	h.Register(a)
	h.Register(b)

	h.BroadcastToUser(1, map[string]string{"type": "reminder"})

	require.Len(t, a.Send, 1)
	assert.Len(t, b.Send, 0)
}

func TestHubCloseRemovesClientAndIsIdempotent(t *testing.T) {
	h := NewHub()
	c := newTestClient(1)
	h.Register(c)

	c.Close()
	c.Close() // second close must be a no-op

	// A broadcast after close reaches nobody and must not panic.
	h.BroadcastToUser(1, map[string]string{"type": "reminder"})
	h.BroadcastAll(map[string]string{"type": "announcement"})
}

func TestHubSendAfterCloseIsDropped(t *testing.T) {
	c := newTestClient(1)
	c.Close()
	c.trySend([]byte("late")) // must not send on the closed channel
}

func TestHubBroadcastRacingDisconnectDoesNotPanic(t *testing.T) {
	// A broadcast can snapshot a client just before its connection tears
	// down; the send and the channel close must be mutually exclusive.
	h := NewHub()
	for i := 0; i < 500; i++ {
		c := newTestClient(1)
		h.Register(c)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			h.BroadcastToUser(1, map[string]string{"type": "reminder"})
		}()
		go func() {
			defer wg.Done()
			c.Close()
		}()
		wg.Wait()
	}
}

func TestHubFullBufferDropsInsteadOfBlocking(t *testing.T) {
	h := NewHub()
	c := &Client{UserID: 1, Send: make(chan []byte, 1)}
	h.Register(c)

	h.BroadcastToUser(1, map[string]string{"n": "1"})
	h.BroadcastToUser(1, map[string]string{"n": "2"}) // buffer full, dropped

	assert.Len(t, c.Send, 1)
}
