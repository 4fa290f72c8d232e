package services

import (
	"github.com/CHgh0sts/LotoSocket/game"
	"github.com/CHgh0sts/LotoSocket/models"
	"github.com/CHgh0sts/LotoSocket/store"
	"github.com/CHgh0sts/LotoSocket/utils/logger"
)

// Moderation orchestrates ban, unban and creator transfer by composing the
// store, the presence table and the hub.
type Moderation struct {
	store    store.Store
	presence *game.PresenceTable
	sessions *SessionReconciler
	hub      *Hub
}

func NewModeration(st store.Store, presence *game.PresenceTable, sessions *SessionReconciler, hub *Hub) *Moderation {
	return &Moderation{store: st, presence: presence, sessions: sessions, hub: hub}
}

// Ban evicts a player from a room. Only the creator may ban, and never
// themself. The target's open connections are not closed by the transport,
// so their presence records are invalidated here and each connection gets a
// terminal rejection before being detached.
func (m *Moderation) Ban(actorID, targetUserID, roomCode string) (*models.Room, error) {
	room, err := m.store.GetRoomByCode(roomCode)
	if err != nil {
		return nil, err
	}
	if room.CreatorID != actorID {
		return nil, game.ErrForbidden
	}
	if targetUserID == actorID || targetUserID == room.CreatorID {
		return nil, game.ErrConflict
	}

	if err := m.store.CreateBan(targetUserID, room.ID); err != nil {
		return nil, err
	}
	if err := m.store.RemovePlayerFromRoom(room.ID, targetUserID); err != nil {
		return nil, err
	}

	// Drop the target from the in-memory roster view before broadcasting.
	players := room.Players[:0]
	for _, p := range room.Players {
		if p.ID != targetUserID {
			players = append(players, p)
		}
	}
	room.Players = players

	m.hub.BroadcastRoom(roomCode, EventPlayerBanned, PlayerBannedPayload{PlayerID: targetUserID})

	conns := m.presence.InvalidateUser(targetUserID, roomCode)
	for _, connID := range conns {
		m.hub.SendTo(connID, EventRoomJoined, RoomJoinedPayload{
			RoomCode: roomCode,
			Success:  false,
			Error:    "Vous êtes banni de cette room",
		})
		m.hub.Detach(connID, roomCode)
	}

	m.hub.BroadcastRoom(roomCode, EventRosterUpdated, RosterUpdatedPayload{
		Players:     m.sessions.ActiveRosterEntries(room),
		ActiveCount: m.presence.ActiveCount(roomCode),
	})
	m.hub.BroadcastGlobal(EventActivePlayers, ActivePlayersPayload{
		RoomCode:    roomCode,
		ActiveCount: m.presence.ActiveCount(roomCode),
	})

	logger.Infof("[Moderation] user %s banned from room %s by %s (%d conns evicted)",
		targetUserID, roomCode, actorID, len(conns))
	return room, nil
}

// Unban lifts a ban. Creator only.
func (m *Moderation) Unban(actorID, targetUserID, roomCode string) error {
	room, err := m.store.GetRoomByCode(roomCode)
	if err != nil {
		return err
	}
	if room.CreatorID != actorID {
		return game.ErrForbidden
	}
	return m.store.DeleteBan(targetUserID, room.ID)
}

// TransferCreator hands the creator role to another roster member. Only the
// current creator may transfer, the target must be on the roster and must
// not already be the creator.
func (m *Moderation) TransferCreator(actorID, newCreatorID, roomCode string) (*models.Room, error) {
	room, err := m.store.GetRoomByCode(roomCode)
	if err != nil {
		return nil, err
	}
	if room.CreatorID != actorID {
		return nil, game.ErrForbidden
	}
	if newCreatorID == room.CreatorID {
		return nil, game.ErrConflict
	}

	var newCreator *models.User
	for i := range room.Players {
		if room.Players[i].ID == newCreatorID {
			newCreator = &room.Players[i]
			break
		}
	}
	if newCreator == nil {
		return nil, game.ErrConflict
	}

	if err := m.store.SetRoomCreator(room.ID, newCreatorID); err != nil {
		return nil, err
	}
	room.CreatorID = newCreatorID

	// Room-scoped is enough: only members render the creator badge.
	m.hub.BroadcastRoom(roomCode, EventCreatorChanged, CreatorChangedPayload{
		NewCreatorID:   newCreatorID,
		NewCreatorName: newCreator.Name,
	})

	logger.Infof("[Moderation] room %s creator transferred %s -> %s", roomCode, actorID, newCreatorID)
	return room, nil
}
