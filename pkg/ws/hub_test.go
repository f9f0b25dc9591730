package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(h *Hub, userID string) *Client {
	c := &Client{
		UserID: userID,
		send:   make(chan []byte, 4),
		hub:    h,
	}

	h.register(c)
	return c
}

func TestHub_SendToUser(t *testing.T) {
	h := NewHub()
	c1 := newTestClient(h, "user1")
	c2 := newTestClient(h, "user1")
	other := newTestClient(h, "user2")

	event := map[string]any{"type": "notification", "data": "hello"}
	require.NoError(t, h.SendToUser("user1", event))

	// Every connection of the user receives the event.
	for _, c := range []*Client{c1, c2} {
		select {
		case b := <-c.send:
			var got map[string]any
			require.NoError(t, json.Unmarshal(b, &got))
			require.Equal(t, "notification", got["type"])
		default:
			t.Fatal("expected an event on the send channel")
		}
	}

	select {
	case <-other.send:
		t.Fatal("event leaked to another user")
	default:
	}
}

func TestHub_SendToUser_noConnection(t *testing.T) {
	h := NewHub()
	require.NoError(t, h.SendToUser("nobody", "event"))
}

func TestHub_unregister(t *testing.T) {
	h := NewHub()
	c1 := newTestClient(h, "user1")
	c2 := newTestClient(h, "user1")

	h.unregister(c1)
	require.NoError(t, h.SendToUser("user1", "still here"))

	select {
	case <-c1.send:
		t.Fatal("unregistered client must not receive")
	default:
	}

	select {
	case <-c2.send:
	default:
		t.Fatal("remaining client must still receive")
	}

	h.unregister(c2)
	_, ok := h.users.Load("user1")
	require.False(t, ok)
}

func TestHub_unregister_idempotent(t *testing.T) {
	h := NewHub()
	c1 := newTestClient(h, "user1")
	c2 := newTestClient(h, "user1")

	h.unregister(c1)
	h.unregister(c1)
	h.unregister(&Client{UserID: "user1", send: make(chan []byte, 1)})

	require.NoError(t, h.SendToUser("user1", "event"))
	select {
	case <-c2.send:
	default:
		t.Fatal("remaining client must still receive")
	}
}
