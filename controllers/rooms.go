package controllers

import (
	"net/http"
	"strings"

	"github.com/CHgh0sts/LotoSocket/game"
	"github.com/CHgh0sts/LotoSocket/middleware"
	"github.com/CHgh0sts/LotoSocket/models"
	"github.com/CHgh0sts/LotoSocket/store"
	"github.com/CHgh0sts/LotoSocket/utils"

	"github.com/gin-gonic/gin"
)

const maxCodeAttempts = 10

type createRoomRequest struct {
	RoomName   string `json:"roomName"`
	GameType   string `json:"gameType"`
	IsPublic   *bool  `json:"isPublic"`
	Password   string `json:"password"`
	MaxPlayers int    `json:"maxPlayers"`
}

// CreateRoom creates a room with a fresh 6-digit code, an initial party and
// the creator already on the roster.
func (h *Handlers) CreateRoom(c *gin.Context) {
	userID := middleware.UserID(c)
	user, err := h.Store.GetUserByID(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur non trouvé"})
		return
	}

	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	variant := game.Variant(req.GameType)
	if !variant.Valid() {
		variant = game.OneLine
	}
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}
	maxPlayers := req.MaxPlayers
	if maxPlayers <= 0 {
		maxPlayers = 10
	}
	name := req.RoomName
	if name == "" {
		name = "Partie de " + user.Name
	}

	var room *models.Room
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := utils.GenerateRoomCode()
		if _, err := h.Store.GetRoomByCode(code); err == nil {
			continue // collision, retry
		} else if !errorsIsRoomNotFound(err) {
			respondError(c, err)
			return
		}

		candidate := models.Room{
			Code:       code,
			Name:       name,
			IsPublic:   isPublic,
			MaxPlayers: maxPlayers,
			IsActive:   true,
			CreatorID:  user.ID,
		}
		if !isPublic && req.Password != "" {
			candidate.Password = &req.Password
		}
		if err := h.Store.CreateRoom(&candidate); err != nil {
			respondError(c, err)
			return
		}
		room = &candidate
		break
	}
	if room == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de générer un code unique pour la room"})
		return
	}

	if err := h.Store.AddPlayerToRoom(room.ID, user.ID); err != nil {
		respondError(c, err)
		return
	}

	party, err := h.Store.CreateParty(room.ID, variant, nil)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"room":     room,
		"party":    party,
		"gameCode": room.Code,
	})
}

type joinRoomRequest struct {
	RoomCode string `json:"roomCode" binding:"required"`
	Password string `json:"password"`
}

// JoinRoom validates code, activity, password and ban before handing the
// client the room to open a websocket against. The persistent roster attach
// itself happens on the websocket join.
func (h *Handlers) JoinRoom(c *gin.Context) {
	userID := middleware.UserID(c)

	var req joinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code de room requis"})
		return
	}
	if !utils.IsValidRoomCode(req.RoomCode) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le code doit contenir exactement 6 chiffres"})
		return
	}

	room, err := h.Store.GetRoomByCode(req.RoomCode)
	if err != nil {
		respondError(c, err)
		return
	}
	if !room.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cette room n'est plus active"})
		return
	}
	if !room.IsPublic && room.Password != nil && *room.Password != req.Password {
		c.JSON(http.StatusForbidden, gin.H{"error": "Mot de passe incorrect"})
		return
	}

	ban, err := h.Store.FindBan(userID, room.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if ban != nil {
		respondError(c, game.ErrBanned)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "room": room})
}

// GetRoom returns room details and the latest party for room members.
func (h *Handlers) GetRoom(c *gin.Context) {
	room, err := h.Store.GetRoomByCode(c.Param("gameId"))
	if err != nil {
		respondError(c, err)
		return
	}

	party, err := h.Store.GetLatestParty(room.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "room": room, "party": party})
}

// CheckRoom reports whether a code points at a joinable room.
func (h *Handlers) CheckRoom(c *gin.Context) {
	code := c.Query("code")
	if !utils.IsValidRoomCode(code) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le code doit contenir exactement 6 chiffres"})
		return
	}

	room, err := h.Store.GetRoomByCode(code)
	if err != nil {
		if errorsIsRoomNotFound(err) {
			c.JSON(http.StatusOK, gin.H{"exists": false})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"exists":      room.IsActive,
		"isPublic":    room.IsPublic,
		"hasPassword": room.Password != nil,
		"name":        room.Name,
	})
}

// PublicRooms lists joinable public rooms with their live connection counts
// for the lobby view.
func (h *Handlers) PublicRooms(c *gin.Context) {
	rooms, err := h.Store.ListPublicRooms()
	if err != nil {
		respondError(c, err)
		return
	}

	type publicRoom struct {
		Code        string `json:"code"`
		Name        string `json:"name"`
		MaxPlayers  int    `json:"maxPlayers"`
		PlayerCount int    `json:"playerCount"`
		ActiveCount int    `json:"activeCount"`
	}
	out := make([]publicRoom, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, publicRoom{
			Code:        r.Code,
			Name:        r.Name,
			MaxPlayers:  r.MaxPlayers,
			PlayerCount: len(r.Players),
			ActiveCount: h.Socket.ActiveCount(r.Code),
		})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "rooms": out})
}

// ActivePlayers returns live connection counts. The lobby polls several
// rooms at once with ?codes=111111,222222; a single ?roomCode= also works.
func (h *Handlers) ActivePlayers(c *gin.Context) {
	if code := c.Query("roomCode"); code != "" {
		if !utils.IsValidRoomCode(code) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Code de room requis"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"roomCode": code, "activeCount": h.Socket.ActiveCount(code)})
		return
	}

	counts := make(map[string]int)
	for _, code := range strings.Split(c.Query("codes"), ",") {
		if utils.IsValidRoomCode(code) {
			counts[code] = h.Socket.ActiveCount(code)
		}
	}
	if len(counts) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code de room requis"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"counts": counts})
}

type settingsRequest struct {
	Name       *string `json:"name"`
	IsPublic   *bool   `json:"isPublic"`
	Password   *string `json:"password"`
	MaxPlayers *int    `json:"maxPlayers"`
	IsActive   *bool   `json:"isActive"`
}

// UpdateSettings lets the creator change room parameters.
func (h *Handlers) UpdateSettings(c *gin.Context) {
	room, err := h.Store.GetRoomByCode(c.Param("gameId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if room.CreatorID != middleware.UserID(c) {
		respondError(c, game.ErrForbidden)
		return
	}

	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = h.Store.UpdateRoomSettings(room.ID, store.RoomSettings{
		Name:       req.Name,
		IsPublic:   req.IsPublic,
		Password:   req.Password,
		MaxPlayers: req.MaxPlayers,
		IsActive:   req.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
