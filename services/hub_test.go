package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastRoomScoped(t *testing.T) {
	hub := NewHub()
	a := newClient("conn-a", nil)
	b := newClient("conn-b", nil)
	lobby := newClient("conn-lobby", nil)
	hub.Register(a)
	hub.Register(b)
	hub.Register(lobby)
	hub.Attach("conn-a", "111111")
	hub.Attach("conn-b", "111111")

	hub.BroadcastRoom("111111", EventNumberToggled, NumberToggledPayload{Number: 42, Action: "added"})

	assert.Len(t, drain(a), 1)
	assert.Len(t, drain(b), 1)
	assert.Empty(t, drain(lobby), "room events stay inside the room")
}

func TestBroadcastGlobalReachesEveryone(t *testing.T) {
	hub := NewHub()
	inRoom := newClient("conn-a", nil)
	lobby := newClient("conn-b", nil)
	hub.Register(inRoom)
	hub.Register(lobby)
	hub.Attach("conn-a", "111111")

	hub.BroadcastGlobal(EventActivePlayers, ActivePlayersPayload{RoomCode: "111111", ActiveCount: 1})

	got := drain(lobby)
	require.Len(t, got, 1, "lobby badge updates reach clients outside the room")
	assert.Equal(t, EventActivePlayers, got[0].Type)
	assert.Len(t, drain(inRoom), 1)
}

func TestDetachNeverFails(t *testing.T) {
	hub := NewHub()
	hub.Detach("never-registered", "111111")

	c := newClient("conn-a", nil)
	hub.Register(c)
	hub.Attach("conn-a", "111111")
	hub.Detach("conn-a", "111111")
	hub.Detach("conn-a", "111111")
	assert.Empty(t, hub.RoomConns("111111"))

	// Detached clients still get global traffic.
	hub.BroadcastGlobal(EventActivePlayers, ActivePlayersPayload{RoomCode: "111111"})
	assert.Len(t, drain(c), 1)
}

func TestUnregisterRemovesEverywhere(t *testing.T) {
	hub := NewHub()
	c := newClient("conn-a", nil)
	hub.Register(c)
	hub.Attach("conn-a", "111111")

	hub.Unregister("conn-a")
	assert.Empty(t, hub.RoomConns("111111"))
	hub.BroadcastGlobal(EventActivePlayers, ActivePlayersPayload{})
	assert.Empty(t, drain(c))

	hub.Unregister("conn-a") // redundant
}

func TestSendToUnknownConnIsNoop(t *testing.T) {
	hub := NewHub()
	hub.SendTo("ghost", EventError, ErrorPayload{Action: "join_game", Error: "x"})
}

func TestAttachUnknownConnIgnored(t *testing.T) {
	hub := NewHub()
	hub.Attach("ghost", "111111")
	assert.Empty(t, hub.RoomConns("111111"))
}

func TestEnqueueDropsWhenBufferFull(t *testing.T) {
	c := newClient("conn-a", nil)
	for i := 0; i < cap(c.send)+10; i++ {
		c.enqueue([]byte(`{"type":"number_toggled"}`))
	}
	assert.Len(t, drain(c), cap(c.send), "overflow drops instead of blocking")
}

func TestEnqueueAfterCloseDoesNotPanic(t *testing.T) {
	c := newClient("conn-a", nil)
	c.Close()
	c.Close() // idempotent
	c.enqueue([]byte(`{"type":"number_toggled"}`))
}
