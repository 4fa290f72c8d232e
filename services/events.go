package services

import (
	"encoding/json"

	"github.com/CHgh0sts/LotoSocket/game"
	"github.com/CHgh0sts/LotoSocket/utils/logger"
)

// Event names on the wire. Clients were built against these exact strings.
const (
	EventRoomJoined      = "room_joined"
	EventNumberToggled   = "number_toggled"
	EventRoundStarted    = "round_started"
	EventVariantChanged  = "variant_changed"
	EventRosterUpdated   = "roster_updated"
	EventPlayerJoined    = "player_joined"
	EventPlayerLeft      = "player_left"
	EventPlayerBanned    = "player_banned"
	EventCreatorChanged  = "creator_changed"
	EventWinnersDetected = "winners_detected"
	EventActivePlayers   = "active_players_updated"
	EventError           = "error"
)

// Message is the envelope every event travels in.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

func encode(typ string, data any) []byte {
	b, err := json.Marshal(Message{Type: typ, Data: data})
	if err != nil {
		logger.Errorf("[WS] failed to encode %s event: %v", typ, err)
		return nil
	}
	return b
}

// RosterEntry is one player in a roster payload, flagged with live presence.
type RosterEntry struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	IsCreator   bool   `json:"isCreator"`
	IsConnected bool   `json:"isConnected"`
}

// RoomSnapshot is what a joining connection receives.
type RoomSnapshot struct {
	ID            string        `json:"id"`
	Code          string        `json:"code"`
	Name          string        `json:"name"`
	CreatorID     string        `json:"creatorId"`
	GameType      game.Variant  `json:"gameType"`
	Numbers       []int         `json:"numbers"`
	CurrentNumber int           `json:"currentNumber"`
	ListUsers     []RosterEntry `json:"listUsers"`
	ActiveCount   int           `json:"activeCount"`
}

type RoomJoinedPayload struct {
	RoomCode string        `json:"gameId"`
	Success  bool          `json:"success"`
	Game     *RoomSnapshot `json:"game,omitempty"`
	Error    string        `json:"error,omitempty"`
}

type NumberToggledPayload struct {
	Number        int    `json:"number"`
	Action        string `json:"action"` // added | removed
	DrawnNumbers  []int  `json:"allNumbers"`
	CurrentNumber int    `json:"gameNumber"`
}

type RoundStartedPayload struct {
	PartyID      string       `json:"partyId"`
	GameType     game.Variant `json:"gameType"`
	DrawnNumbers []int        `json:"listNumbers"`
}

type VariantChangedPayload struct {
	GameType game.Variant `json:"gameType"`
}

type RosterUpdatedPayload struct {
	Players     []RosterEntry `json:"players"`
	ActiveCount int           `json:"count"`
}

type PlayerPresencePayload struct {
	PlayerID    string `json:"playerId"`
	PlayerName  string `json:"playerName"`
	RoomCode    string `json:"roomCode"`
	ActiveCount int    `json:"activeCount"`
}

type PlayerBannedPayload struct {
	PlayerID string `json:"playerId"`
}

type CreatorChangedPayload struct {
	NewCreatorID   string `json:"newCreatorId"`
	NewCreatorName string `json:"newCreatorName"`
}

type WinnersDetectedPayload struct {
	GameType game.Variant        `json:"gameType"`
	Winners  []game.WinnerRecord `json:"winners"`
}

type ActivePlayersPayload struct {
	RoomCode    string `json:"roomCode"`
	ActiveCount int    `json:"activeCount"`
}

type ErrorPayload struct {
	Action string `json:"action"`
	Error  string `json:"error"`
}
