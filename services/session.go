package services

import (
	"github.com/CHgh0sts/LotoSocket/game"
	"github.com/CHgh0sts/LotoSocket/models"
	"github.com/CHgh0sts/LotoSocket/store"
	"github.com/CHgh0sts/LotoSocket/utils/logger"
)

// SessionReconciler keeps presence records consistent with the connect,
// disconnect and ban lifecycle, and derives the counts the roster and lobby
// badges display.
type SessionReconciler struct {
	store    store.Store
	presence *game.PresenceTable
}

func NewSessionReconciler(st store.Store, presence *game.PresenceTable) *SessionReconciler {
	return &SessionReconciler{store: st, presence: presence}
}

// JoinResult is what Join hands back to the transport layer.
type JoinResult struct {
	Room     *models.Room
	Snapshot *RoomSnapshot
	// PlayerName is the display name of the joining user, empty for
	// anonymous connections.
	PlayerName string
}

// Join validates the room and ban state, then moves the connection's
// presence in: prior live records for the same (user, room) pair are
// invalidated, a new live record is created, and the user is attached to
// the persistent roster if absent. Returns a snapshot reflecting the state
// immediately after the join.
func (s *SessionReconciler) Join(connID, roomCode, userID string) (*JoinResult, error) {
	room, err := s.store.GetRoomByCode(roomCode)
	if err != nil {
		return nil, err
	}
	if !room.IsActive {
		return nil, game.ErrRoomNotFound
	}

	if userID != "" {
		ban, err := s.store.FindBan(userID, room.ID)
		if err != nil {
			return nil, err
		}
		if ban != nil {
			return nil, game.ErrBanned
		}
	}

	s.presence.Register(connID, userID, roomCode)

	playerName := ""
	if userID != "" {
		if !room.HasPlayer(userID) {
			if err := s.store.AddPlayerToRoom(room.ID, userID); err != nil {
				// Roll the presence record back so a failed join leaves no
				// in-memory state behind and the client can retry safely.
				s.presence.Invalidate(connID)
				return nil, err
			}
			if user, uerr := s.store.GetUserByID(userID); uerr == nil && user != nil {
				room.Players = append(room.Players, *user)
			}
		}
		for _, p := range room.Players {
			if p.ID == userID {
				playerName = p.Name
			}
		}
	}

	snapshot, err := s.Snapshot(room)
	if err != nil {
		s.presence.Invalidate(connID)
		return nil, err
	}

	logger.Infof("[Session] conn=%s user=%s joined room %s (active=%d)",
		connID, userID, roomCode, snapshot.ActiveCount)
	return &JoinResult{Room: room, Snapshot: snapshot, PlayerName: playerName}, nil
}

// Leave invalidates the presence record for a closing connection and
// returns the room code it was in. Idempotent and error-free: the
// disconnect path must never raise, or presence state would leak.
func (s *SessionReconciler) Leave(connID string) (roomCode string, ok bool) {
	return s.presence.Invalidate(connID)
}

// ActiveCount counts live connections for a room.
func (s *SessionReconciler) ActiveCount(roomCode string) int {
	return s.presence.ActiveCount(roomCode)
}

// Roster builds the roster payload for a room: every persistent member,
// flagged with whether they hold a live presence record.
func (s *SessionReconciler) Roster(room *models.Room) []RosterEntry {
	ids := make([]string, len(room.Players))
	for i, p := range room.Players {
		ids[i] = p.ID
	}
	live := make(map[string]bool)
	for _, id := range s.presence.ActiveRoster(room.Code, ids) {
		live[id] = true
	}

	entries := make([]RosterEntry, 0, len(room.Players))
	for _, p := range room.Players {
		entries = append(entries, RosterEntry{
			ID:          p.ID,
			Username:    p.Name,
			IsCreator:   p.ID == room.CreatorID,
			IsConnected: live[p.ID],
		})
	}
	return entries
}

// ActiveRosterEntries is Roster filtered down to connected members.
func (s *SessionReconciler) ActiveRosterEntries(room *models.Room) []RosterEntry {
	all := s.Roster(room)
	out := make([]RosterEntry, 0, len(all))
	for _, e := range all {
		if e.IsConnected {
			out = append(out, e)
		}
	}
	return out
}

// Snapshot assembles the room view a joining client receives: room
// metadata, the current party's variant and drawn numbers, and the roster
// with live-connection flags.
func (s *SessionReconciler) Snapshot(room *models.Room) (*RoomSnapshot, error) {
	party, err := s.store.GetLatestParty(room.ID)
	if err != nil {
		return nil, err
	}

	variant := game.OneLine
	numbers := []int{}
	if party != nil {
		variant = game.Variant(party.GameType)
		numbers = party.Numbers()
	}

	return &RoomSnapshot{
		ID:            room.ID,
		Code:          room.Code,
		Name:          room.Name,
		CreatorID:     room.CreatorID,
		GameType:      variant,
		Numbers:       numbers,
		CurrentNumber: game.CurrentNumber(numbers),
		ListUsers:     s.Roster(room),
		ActiveCount:   s.presence.ActiveCount(room.Code),
	}, nil
}
