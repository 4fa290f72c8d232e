package controllers

import (
	"net/http"

	"github.com/CHgh0sts/LotoSocket/game"
	"github.com/CHgh0sts/LotoSocket/middleware"
	"github.com/CHgh0sts/LotoSocket/models"

	"github.com/gin-gonic/gin"
)

type createCartonRequest struct {
	PlayerID    string  `json:"playerId"`
	ListNumbers []int   `json:"listNumbers" binding:"required"`
	CategoryID  *string `json:"categoryId"`
}

// CreateCarton stores a card after structural validation, then triggers a
// win evaluation so a card created against an already-winning draw list is
// announced immediately.
func (h *Handlers) CreateCarton(c *gin.Context) {
	roomCode := c.Param("gameId")

	var req createCartonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "playerId et listNumbers sont requis"})
		return
	}
	if err := game.ValidateCells(req.ListNumbers); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.Store.GetRoomByCode(roomCode)
	if err != nil {
		respondError(c, err)
		return
	}

	ownerID := req.PlayerID
	if ownerID == "" {
		ownerID = middleware.UserID(c)
	}
	if !room.HasPlayer(ownerID) {
		respondError(c, game.ErrForbidden)
		return
	}

	carton := models.Carton{
		RoomCode:   roomCode,
		UserID:     ownerID,
		CategoryID: req.CategoryID,
	}
	carton.SetCells(req.ListNumbers)
	if err := h.Store.CreateCarton(&carton); err != nil {
		respondError(c, err)
		return
	}

	h.Socket.NotifyCartonAdded(roomCode)
	c.JSON(http.StatusCreated, gin.H{"success": true, "carton": carton})
}

// ListCartons returns the room's cards, hiding those in deactivated
// categories. Members only.
func (h *Handlers) ListCartons(c *gin.Context) {
	room, err := h.Store.GetRoomByCode(c.Param("gameId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !room.HasPlayer(middleware.UserID(c)) {
		respondError(c, game.ErrForbidden)
		return
	}

	cartons, err := h.Store.ListCartonsForRoom(room.Code, true)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cartons": cartons})
}

type cartonCategoryRequest struct {
	CategoryID *string `json:"categoryId"`
}

// SetCartonCategory tags or untags a card. Owner or creator only.
func (h *Handlers) SetCartonCategory(c *gin.Context) {
	room, err := h.Store.GetRoomByCode(c.Param("gameId"))
	if err != nil {
		respondError(c, err)
		return
	}

	carton, err := h.Store.GetCarton(c.Param("cartonId"))
	if err != nil {
		respondError(c, err)
		return
	}

	userID := middleware.UserID(c)
	if carton.UserID != userID && room.CreatorID != userID {
		respondError(c, game.ErrForbidden)
		return
	}

	var req cartonCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Store.SetCartonCategory(carton.ID, req.CategoryID); err != nil {
		respondError(c, err)
		return
	}

	// Category moves can reveal or hide winning cards.
	h.Socket.NotifyCartonAdded(room.Code)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
