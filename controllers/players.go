package controllers

import (
	"net/http"

	"github.com/CHgh0sts/LotoSocket/middleware"

	"github.com/gin-gonic/gin"
)

// ListPlayers returns the persistent roster with live-connection flags.
func (h *Handlers) ListPlayers(c *gin.Context) {
	room, err := h.Store.GetRoomByCode(c.Param("gameId"))
	if err != nil {
		respondError(c, err)
		return
	}

	roster := h.Socket.Sessions().Roster(room)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"players": roster,
		"count":   h.Socket.ActiveCount(room.Code),
	})
}

// BanPlayer bans a roster member. The eviction of any open connection runs
// through the room worker so it serializes with websocket traffic.
func (h *Handlers) BanPlayer(c *gin.Context) {
	roomCode := c.Param("gameId")
	targetID := c.Param("playerId")

	if err := h.Socket.BanPlayer(middleware.UserID(c), targetID, roomCode); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Joueur banni de la room",
		"bannedPlayerId": targetID,
		"roomCode":       roomCode,
	})
}

// UnbanPlayer lifts a ban.
func (h *Handlers) UnbanPlayer(c *gin.Context) {
	roomCode := c.Param("gameId")
	targetID := c.Param("playerId")

	if err := h.Socket.UnbanPlayer(middleware.UserID(c), targetID, roomCode); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "unbannedPlayerId": targetID})
}

// BannedPlayers lists the bans for a room. Creator only.
func (h *Handlers) BannedPlayers(c *gin.Context) {
	room, err := h.Store.GetRoomByCode(c.Param("gameId"))
	if err != nil {
		respondError(c, err)
		return
	}

	bans, err := h.Store.ListBans(room.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	type bannedPlayer struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	out := make([]bannedPlayer, 0, len(bans))
	for _, b := range bans {
		name := ""
		if b.User != nil {
			name = b.User.Name
		}
		out = append(out, bannedPlayer{ID: b.UserID, Name: name})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "bannedPlayers": out})
}

type transferRequest struct {
	NewCreatorID string `json:"newCreatorId" binding:"required"`
}

// TransferCreator hands the creator role to another roster member.
func (h *Handlers) TransferCreator(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "newCreatorId requis"})
		return
	}

	newCreator, err := h.Socket.TransferCreator(middleware.UserID(c), req.NewCreatorID, c.Param("gameId"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"success": true}
	if newCreator != nil {
		resp["newCreator"] = gin.H{"id": newCreator.ID, "name": newCreator.Name}
		resp["message"] = "Le rôle de créateur a été transféré à " + newCreator.Name
	}
	c.JSON(http.StatusOK, resp)
}
