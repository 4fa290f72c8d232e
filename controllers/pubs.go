package controllers

import (
	"net/http"

	"github.com/CHgh0sts/LotoSocket/game"
	"github.com/CHgh0sts/LotoSocket/middleware"
	"github.com/CHgh0sts/LotoSocket/models"

	"github.com/gin-gonic/gin"
)

type pubRequest struct {
	Title    string `json:"title" binding:"required"`
	ImageURL string `json:"imageUrl"`
	LinkURL  string `json:"linkUrl"`
}

// ListPubs returns the room's advertisement slots.
func (h *Handlers) ListPubs(c *gin.Context) {
	room, err := h.Store.GetRoomByCode(c.Param("gameId"))
	if err != nil {
		respondError(c, err)
		return
	}

	pubs, err := h.Store.ListPubs(room.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "pubs": pubs})
}

// CreatePub adds an advertisement. Creator only.
func (h *Handlers) CreatePub(c *gin.Context) {
	room, err := h.Store.GetRoomByCode(c.Param("gameId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if room.CreatorID != middleware.UserID(c) {
		respondError(c, game.ErrForbidden)
		return
	}

	var req pubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Titre requis"})
		return
	}

	pub := models.Pub{
		RoomCode: room.Code,
		Title:    req.Title,
		ImageURL: req.ImageURL,
		LinkURL:  req.LinkURL,
	}
	if err := h.Store.CreatePub(&pub); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "pub": pub})
}

// DeletePub removes an advertisement. Creator only.
func (h *Handlers) DeletePub(c *gin.Context) {
	room, err := h.Store.GetRoomByCode(c.Param("gameId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if room.CreatorID != middleware.UserID(c) {
		respondError(c, game.ErrForbidden)
		return
	}

	if err := h.Store.DeletePub(c.Param("pubId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
