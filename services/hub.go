package services

import (
	"sync"
)

// Hub owns transport-group membership: which connections belong to which
// room, plus the set of all connections for global fan-out. It does no
// ordering of its own; per-room ordering comes from the room workers that
// call into it.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client            // all connections, by conn id
	rooms   map[string]map[string]*Client // room code -> conn id -> client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]*Client),
	}
}

// Register adds a freshly upgraded connection to the global set.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c.connID] = c
	h.mu.Unlock()
}

// Unregister removes a connection everywhere. Safe to call redundantly.
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, connID)
	for code, members := range h.rooms {
		delete(members, connID)
		if len(members) == 0 {
			delete(h.rooms, code)
		}
	}
}

// Attach adds a connection to a room's transport group. Unknown connection
// ids are ignored.
func (h *Hub) Attach(connID, roomCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[connID]
	if !ok {
		return
	}
	members, ok := h.rooms[roomCode]
	if !ok {
		members = make(map[string]*Client)
		h.rooms[roomCode] = members
	}
	members[connID] = c
}

// Detach removes a connection from a room's transport group. Never fails,
// even when the connection was never attached.
func (h *Hub) Detach(connID, roomCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[roomCode]
	if !ok {
		return
	}
	delete(members, connID)
	if len(members) == 0 {
		delete(h.rooms, roomCode)
	}
}

// BroadcastRoom delivers an event to every connection attached to the room.
func (h *Hub) BroadcastRoom(roomCode, eventType string, data any) {
	msg := encode(eventType, data)
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.rooms[roomCode]))
	for _, c := range h.rooms[roomCode] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		c.enqueue(msg)
	}
}

// BroadcastGlobal delivers an event to every connected client regardless of
// room. Used for the lobby badges: active-count updates and join/leave
// notices feed a cross-room summary view.
func (h *Hub) BroadcastGlobal(eventType string, data any) {
	msg := encode(eventType, data)
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		c.enqueue(msg)
	}
}

// SendTo delivers an event to one connection.
func (h *Hub) SendTo(connID, eventType string, data any) {
	h.mu.RLock()
	c, ok := h.clients[connID]
	h.mu.RUnlock()
	if ok {
		c.enqueue(encode(eventType, data))
	}
}

// RoomConns returns the connection ids currently attached to a room.
func (h *Hub) RoomConns(roomCode string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, 0, len(h.rooms[roomCode]))
	for id := range h.rooms[roomCode] {
		out = append(out, id)
	}
	return out
}

// Reset drops all membership. Used on graceful shutdown.
func (h *Hub) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		c.Close()
	}
	h.clients = make(map[string]*Client)
	h.rooms = make(map[string]map[string]*Client)
}
