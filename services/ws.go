package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/CHgh0sts/LotoSocket/game"
	"github.com/CHgh0sts/LotoSocket/models"
	"github.com/CHgh0sts/LotoSocket/store"
	"github.com/CHgh0sts/LotoSocket/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SocketServer is the process-scoped registry for everything live: the
// presence table, the broadcast hub and the per-room workers. Constructed
// once at startup and injected into the handlers; Shutdown tears it down.
type SocketServer struct {
	store      store.Store
	presence   *game.PresenceTable
	hub        *Hub
	workers    *RoomWorkers
	sessions   *SessionReconciler
	moderation *Moderation

	mu        sync.Mutex
	announced map[string]map[string]bool // party id -> card ids already announced as winners
}

func NewSocketServer(st store.Store) *SocketServer {
	presence := game.NewPresenceTable()
	hub := NewHub()
	sessions := NewSessionReconciler(st, presence)
	return &SocketServer{
		store:      st,
		presence:   presence,
		hub:        hub,
		workers:    NewRoomWorkers(),
		sessions:   sessions,
		moderation: NewModeration(st, presence, sessions, hub),
		announced:  make(map[string]map[string]bool),
	}
}

// Sessions exposes the reconciler for REST handlers needing active counts.
func (s *SocketServer) Sessions() *SessionReconciler { return s.sessions }

// Shutdown drains the room workers and clears all live state.
func (s *SocketServer) Shutdown() {
	s.workers.Shutdown()
	s.hub.Reset()
	s.presence.Reset()
}

// clientMessage is the inbound frame. One shape for every action keeps the
// dispatch flat, matching what clients have always sent.
type clientMessage struct {
	Action       string `json:"action"`
	GameID       string `json:"gameId"`
	UserID       string `json:"userId"`
	Number       int    `json:"number"`
	GameType     string `json:"gameType"`
	TypeGame     string `json:"typeGame"`
	ClearNumbers bool   `json:"clearNumbers"`
	PlayerID     string `json:"playerId"`
	NewCreatorID string `json:"newCreatorId"`
	RoomCode     string `json:"roomCode"`
}

// HandleWebSocket upgrades the connection and runs its read loop. The user
// id arrives inside the join message; identity validation happens upstream
// and this layer trusts it.
func (s *SocketServer) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("[WS] upgrade error: %v", err)
		return
	}

	client := newClient(uuid.NewString(), conn)
	s.hub.Register(client)
	logger.Infof("[WS] connection %s opened", client.connID)

	go client.writePump()
	s.readLoop(client)
}

func (s *SocketServer) readLoop(c *Client) {
	defer s.disconnect(c)

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Infof("[WS] connection %s closed", c.connID)
			} else {
				logger.Warnf("[WS] connection %s read error: %v", c.connID, err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			logger.Warnf("[WS] connection %s sent invalid frame: %v", c.connID, err)
			continue
		}
		s.dispatch(c, msg)
	}
}

func (s *SocketServer) dispatch(c *Client, msg clientMessage) {
	switch msg.Action {
	case "join_game":
		s.handleJoin(c, msg.GameID, msg.UserID)
	case "add_number":
		s.handleToggle(c, msg.GameID, msg.Number)
	case "change_game_type":
		s.handleChangeGameType(c, msg.GameID, game.Variant(msg.GameType))
	case "end_party":
		s.handleEndParty(c, msg.GameID, game.Variant(msg.TypeGame), msg.ClearNumbers)
	case "ban_player":
		s.handleBan(c, msg.GameID, msg.PlayerID)
	case "transfer_creator":
		s.handleTransferCreator(c, msg.GameID, msg.NewCreatorID)
	case "request_active_players":
		s.hub.SendTo(c.connID, EventActivePlayers, ActivePlayersPayload{
			RoomCode:    msg.RoomCode,
			ActiveCount: s.presence.ActiveCount(msg.RoomCode),
		})
	default:
		logger.Warnf("[WS] connection %s unknown action %q", c.connID, msg.Action)
	}
}

// disconnect is the single teardown path: presence invalidation, hub
// removal and the final broadcasts. It never fails; a missing record just
// means there is nothing to announce.
func (s *SocketServer) disconnect(c *Client) {
	c.Close()
	roomCode, wasLive := s.sessions.Leave(c.connID)
	s.hub.Unregister(c.connID)

	if !wasLive {
		return
	}

	userID, userName := c.userID, ""
	s.workers.Do(roomCode, func() {
		room, err := s.store.GetRoomByCode(roomCode)
		if err != nil {
			logger.Errorf("[WS] post-disconnect lookup for room %s failed: %v", roomCode, err)
			return
		}
		for _, p := range room.Players {
			if p.ID == userID {
				userName = p.Name
			}
		}

		count := s.presence.ActiveCount(roomCode)
		s.hub.BroadcastRoom(roomCode, EventRosterUpdated, RosterUpdatedPayload{
			Players:     s.sessions.ActiveRosterEntries(room),
			ActiveCount: count,
		})
		if userID != "" {
			s.hub.BroadcastGlobal(EventPlayerLeft, PlayerPresencePayload{
				PlayerID:    userID,
				PlayerName:  userName,
				RoomCode:    roomCode,
				ActiveCount: count,
			})
		}
		s.hub.BroadcastGlobal(EventActivePlayers, ActivePlayersPayload{
			RoomCode:    roomCode,
			ActiveCount: count,
		})
	})
}

func (s *SocketServer) handleJoin(c *Client, roomCode, userID string) {
	s.workers.DoSync(roomCode, func() {
		result, err := s.sessions.Join(c.connID, roomCode, userID)
		if err != nil {
			s.hub.SendTo(c.connID, EventRoomJoined, RoomJoinedPayload{
				RoomCode: roomCode,
				Success:  false,
				Error:    joinErrorMessage(err),
			})
			return
		}

		c.roomCode = roomCode
		c.userID = userID
		s.hub.Attach(c.connID, roomCode)

		s.hub.SendTo(c.connID, EventRoomJoined, RoomJoinedPayload{
			RoomCode: roomCode,
			Success:  true,
			Game:     result.Snapshot,
		})

		count := result.Snapshot.ActiveCount
		s.hub.BroadcastRoom(roomCode, EventRosterUpdated, RosterUpdatedPayload{
			Players:     s.sessions.ActiveRosterEntries(result.Room),
			ActiveCount: count,
		})
		if userID != "" {
			s.hub.BroadcastGlobal(EventPlayerJoined, PlayerPresencePayload{
				PlayerID:    userID,
				PlayerName:  result.PlayerName,
				RoomCode:    roomCode,
				ActiveCount: count,
			})
		}
		s.hub.BroadcastGlobal(EventActivePlayers, ActivePlayersPayload{
			RoomCode:    roomCode,
			ActiveCount: count,
		})
	})
}

func joinErrorMessage(err error) string {
	switch {
	case errors.Is(err, game.ErrBanned):
		return "Vous êtes banni de cette room"
	case errors.Is(err, game.ErrRoomNotFound):
		return "Room non trouvée"
	default:
		return "Erreur serveur"
	}
}

func (s *SocketServer) handleToggle(c *Client, roomCode string, number int) {
	if number < 1 || number > 90 {
		s.hub.SendTo(c.connID, EventError, ErrorPayload{Action: "add_number", Error: "numéro invalide"})
		return
	}

	s.workers.Do(roomCode, func() {
		room, err := s.store.GetRoomByCode(roomCode)
		if err != nil {
			s.sendActionError(c.connID, "add_number", err)
			return
		}
		party, err := s.store.GetLatestParty(room.ID)
		if err != nil {
			s.sendActionError(c.connID, "add_number", err)
			return
		}
		if party == nil {
			s.sendActionError(c.connID, "add_number", game.ErrInvalidState)
			return
		}

		newList, added, err := s.store.ToggleNumberInParty(party.ID, number)
		if err != nil {
			s.sendActionError(c.connID, "add_number", err)
			return
		}

		action := "removed"
		if added {
			action = "added"
		}
		s.hub.BroadcastRoom(roomCode, EventNumberToggled, NumberToggledPayload{
			Number:        number,
			Action:        action,
			DrawnNumbers:  newList,
			CurrentNumber: game.CurrentNumber(newList),
		})

		// Evaluation runs inside the same command so the winner state the
		// next toggle observes is never stale.
		s.evaluateWinners(room, party.ID, game.Variant(party.GameType), newList)
	})
}

func (s *SocketServer) handleChangeGameType(c *Client, roomCode string, variant game.Variant) {
	if !variant.Valid() {
		s.hub.SendTo(c.connID, EventError, ErrorPayload{Action: "change_game_type", Error: "type de jeu invalide"})
		return
	}

	s.workers.Do(roomCode, func() {
		room, err := s.store.GetRoomByCode(roomCode)
		if err != nil {
			s.sendActionError(c.connID, "change_game_type", err)
			return
		}
		party, err := s.store.GetLatestParty(room.ID)
		if err != nil {
			s.sendActionError(c.connID, "change_game_type", err)
			return
		}
		if party == nil {
			s.sendActionError(c.connID, "change_game_type", game.ErrInvalidState)
			return
		}

		if err := s.store.SetPartyVariant(party.ID, variant); err != nil {
			s.sendActionError(c.connID, "change_game_type", err)
			return
		}

		s.hub.BroadcastRoom(roomCode, EventVariantChanged, VariantChangedPayload{GameType: variant})

		// The win threshold moved, so the winning set may have too.
		s.evaluateWinners(room, party.ID, variant, party.Numbers())
	})
}

func (s *SocketServer) handleEndParty(c *Client, roomCode string, finished game.Variant, clearNumbers bool) {
	s.workers.Do(roomCode, func() {
		room, err := s.store.GetRoomByCode(roomCode)
		if err != nil {
			s.sendActionError(c.connID, "end_party", err)
			return
		}
		current, err := s.store.GetLatestParty(room.ID)
		if err != nil {
			s.sendActionError(c.connID, "end_party", err)
			return
		}

		next := game.OneLine
		if finished.Valid() {
			next = finished.Next()
		}

		var initial []int
		if !clearNumbers && current != nil {
			initial = current.Numbers()
		}

		party, err := s.store.CreateParty(room.ID, next, initial)
		if err != nil {
			s.sendActionError(c.connID, "end_party", err)
			return
		}

		// The finished party's announcements are done with.
		if current != nil {
			s.mu.Lock()
			delete(s.announced, current.ID)
			s.mu.Unlock()
		}

		s.hub.BroadcastRoom(roomCode, EventRoundStarted, RoundStartedPayload{
			PartyID:      party.ID,
			GameType:     next,
			DrawnNumbers: party.Numbers(),
		})
		logger.Infof("[WS] room %s started party %s (%s)", roomCode, party.ID, next)
	})
}

func (s *SocketServer) handleBan(c *Client, roomCode, targetUserID string) {
	s.workers.DoSync(roomCode, func() {
		if _, err := s.moderation.Ban(c.userID, targetUserID, roomCode); err != nil {
			s.sendActionError(c.connID, "ban_player", err)
		}
	})
}

func (s *SocketServer) handleTransferCreator(c *Client, roomCode, newCreatorID string) {
	s.workers.DoSync(roomCode, func() {
		if _, err := s.moderation.TransferCreator(c.userID, newCreatorID, roomCode); err != nil {
			s.sendActionError(c.connID, "transfer_creator", err)
		}
	})
}

func (s *SocketServer) sendActionError(connID, action string, err error) {
	logger.Warnf("[WS] action %s failed: %v", action, err)
	s.hub.SendTo(connID, EventError, ErrorPayload{Action: action, Error: userMessage(err)})
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, game.ErrForbidden):
		return "Action réservée au créateur de la room"
	case errors.Is(err, game.ErrConflict):
		return "Action impossible sur ce joueur"
	case errors.Is(err, game.ErrRoomNotFound):
		return "Room non trouvée"
	case errors.Is(err, game.ErrInvalidState):
		return "Aucune partie en cours pour cette room"
	case errors.Is(err, game.ErrBanned):
		return "Vous êtes banni de cette room"
	default:
		return "Erreur serveur"
	}
}

// evaluateWinners re-runs the full win evaluation for the party and
// announces cards that newly entered the winning set. The announced set
// shrinks when a removed number un-wins a card, so a later re-win is
// announced again.
func (s *SocketServer) evaluateWinners(room *models.Room, partyID string, variant game.Variant, drawn []int) {
	cartons, err := s.store.ListCartonsForRoom(room.Code, true)
	if err != nil {
		logger.Errorf("[WS] winner evaluation for room %s failed: %v", room.Code, err)
		return
	}

	cards := make([]game.CardView, 0, len(cartons))
	for _, ct := range cartons {
		cards = append(cards, game.CardView{ID: ct.ID, UserID: ct.UserID, Cells: ct.Cells()})
	}
	winners := game.DetectWinners(cards, drawn, variant)

	s.mu.Lock()
	prev := s.announced[partyID]
	current := make(map[string]bool, len(winners))
	var fresh []game.WinnerRecord
	for _, w := range winners {
		current[w.CardID] = true
		if !prev[w.CardID] {
			fresh = append(fresh, w)
		}
	}
	s.announced[partyID] = current
	s.mu.Unlock()

	if len(fresh) > 0 {
		s.hub.BroadcastRoom(room.Code, EventWinnersDetected, WinnersDetectedPayload{
			GameType: variant,
			Winners:  fresh,
		})
		logger.Infof("[WS] room %s: %d new winning carton(s)", room.Code, len(fresh))
	}
}

// NotifyCartonAdded re-runs win evaluation after a card insertion through
// the REST API; a card created against an already-winning draw list must be
// announced without waiting for the next toggle.
func (s *SocketServer) NotifyCartonAdded(roomCode string) {
	s.workers.Do(roomCode, func() {
		room, err := s.store.GetRoomByCode(roomCode)
		if err != nil {
			logger.Errorf("[WS] carton evaluation for room %s failed: %v", roomCode, err)
			return
		}
		party, err := s.store.GetLatestParty(room.ID)
		if err != nil || party == nil {
			return
		}
		s.evaluateWinners(room, party.ID, game.Variant(party.GameType), party.Numbers())
	})
}

// BanPlayer runs a ban through the room's worker. Used by the REST route so
// HTTP-initiated bans serialize with the websocket traffic for the room.
func (s *SocketServer) BanPlayer(actorID, targetUserID, roomCode string) error {
	var err error
	s.workers.DoSync(roomCode, func() {
		_, err = s.moderation.Ban(actorID, targetUserID, roomCode)
	})
	return err
}

// UnbanPlayer lifts a ban through the room's worker.
func (s *SocketServer) UnbanPlayer(actorID, targetUserID, roomCode string) error {
	var err error
	s.workers.DoSync(roomCode, func() {
		err = s.moderation.Unban(actorID, targetUserID, roomCode)
	})
	return err
}

// TransferCreator runs a creator transfer through the room's worker.
func (s *SocketServer) TransferCreator(actorID, newCreatorID, roomCode string) (*models.User, error) {
	var (
		room *models.Room
		err  error
	)
	s.workers.DoSync(roomCode, func() {
		room, err = s.moderation.TransferCreator(actorID, newCreatorID, roomCode)
	})
	if err != nil {
		return nil, err
	}
	for i := range room.Players {
		if room.Players[i].ID == newCreatorID {
			return &room.Players[i], nil
		}
	}
	return nil, nil
}

// ActiveCount reports live connections for a room, for the lobby REST view.
func (s *SocketServer) ActiveCount(roomCode string) int {
	return s.presence.ActiveCount(roomCode)
}
