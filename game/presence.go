package game

import (
	"sync"
	"time"
)

// PresenceRecord is the ephemeral per-connection marker of liveness inside a
// room. Records are never persisted; a process restart drops them all and
// active counts rebuild as clients reconnect.
type PresenceRecord struct {
	ConnID    string
	UserID    string // empty for anonymous connections
	RoomCode  string
	Live      bool
	CreatedAt time.Time
}

// PresenceTable is the in-memory table of connection records. It is a pure
// data structure: no I/O, and every method completes synchronously so
// callers can rely on the count reflecting the previous mutation.
//
// Invariant: at most one live record exists per (userID, roomCode) pair,
// maintained by invalidating prior records on Register rather than
// rejecting the new one. Anonymous connections (no userID) are never
// deduplicated and each one counts.
type PresenceTable struct {
	mu      sync.RWMutex
	records map[string]*PresenceRecord // keyed by connection id
}

func NewPresenceTable() *PresenceTable {
	return &PresenceTable{records: make(map[string]*PresenceRecord)}
}

// Register invalidates any live record for (userID, roomCode) then inserts
// a live record for connID. A second tab for the same user therefore moves
// the presence instead of double-counting it.
func (t *PresenceTable) Register(connID, userID, roomCode string) *PresenceRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	if userID != "" {
		for _, r := range t.records {
			if r.Live && r.UserID == userID && r.RoomCode == roomCode {
				r.Live = false
			}
		}
	}

	rec := &PresenceRecord{
		ConnID:    connID,
		UserID:    userID,
		RoomCode:  roomCode,
		Live:      true,
		CreatedAt: time.Now(),
	}
	t.records[connID] = rec
	return rec
}

// Invalidate marks the record for connID as not live and returns the room
// code it belonged to. Missing or already-dead records are a no-op, so the
// disconnect path can call this redundantly.
func (t *PresenceTable) Invalidate(connID string) (roomCode string, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, found := t.records[connID]
	if !found || !rec.Live {
		return "", false
	}
	rec.Live = false
	return rec.RoomCode, true
}

// InvalidateUser marks every live record for (userID, roomCode) as not live
// and returns the affected connection ids. Used on ban, where the user's
// open connections are not implicitly closed by the transport.
func (t *PresenceTable) InvalidateUser(userID, roomCode string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var conns []string
	for id, r := range t.records {
		if r.Live && r.UserID == userID && r.RoomCode == roomCode {
			r.Live = false
			conns = append(conns, id)
		}
	}
	return conns
}

// ActiveCount counts live records for a room. This counts connections, not
// distinct users: anonymous tabs and multi-account users inflate it, which
// is the definition the lobby badges were built against.
func (t *PresenceTable) ActiveCount(roomCode string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, r := range t.records {
		if r.Live && r.RoomCode == roomCode {
			n++
		}
	}
	return n
}

// ActiveRoster filters a persistent roster down to the user ids holding at
// least one live record for the room.
func (t *PresenceTable) ActiveRoster(roomCode string, roster []string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	live := make(map[string]bool)
	for _, r := range t.records {
		if r.Live && r.RoomCode == roomCode && r.UserID != "" {
			live[r.UserID] = true
		}
	}

	var out []string
	for _, id := range roster {
		if live[id] {
			out = append(out, id)
		}
	}
	return out
}

// Get returns the record for a connection id.
func (t *PresenceTable) Get(connID string) (*PresenceRecord, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, ok := t.records[connID]
	if !ok {
		return nil, false
	}
	cp := *rec
	return &cp, true
}

// Reset drops every record. Called on graceful shutdown and between tests.
func (t *PresenceTable) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records = make(map[string]*PresenceRecord)
}
