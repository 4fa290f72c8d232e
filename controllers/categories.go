package controllers

import (
	"net/http"

	"github.com/CHgh0sts/LotoSocket/game"
	"github.com/CHgh0sts/LotoSocket/middleware"
	"github.com/CHgh0sts/LotoSocket/models"

	"github.com/gin-gonic/gin"
)

type categoryRequest struct {
	Name      string `json:"name"`
	Activated *bool  `json:"activated"`
}

// CreateCategory adds a carton category to a room. Creator only.
func (h *Handlers) CreateCategory(c *gin.Context) {
	room, err := h.Store.GetRoomByCode(c.Param("gameId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if room.CreatorID != middleware.UserID(c) {
		respondError(c, game.ErrForbidden)
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom de catégorie requis"})
		return
	}

	category := models.Category{RoomCode: room.Code, Name: req.Name, Activated: true}
	if err := h.Store.CreateCategory(&category); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "category": category})
}

// ListCategories returns the room's categories.
func (h *Handlers) ListCategories(c *gin.Context) {
	room, err := h.Store.GetRoomByCode(c.Param("gameId"))
	if err != nil {
		respondError(c, err)
		return
	}

	categories, err := h.Store.ListCategories(room.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "categories": categories})
}

// UpdateCategory renames or toggles a category. Creator only. Toggling
// changes which cards the evaluator sees, so evaluation re-runs.
func (h *Handlers) UpdateCategory(c *gin.Context) {
	room, err := h.Store.GetRoomByCode(c.Param("gameId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if room.CreatorID != middleware.UserID(c) {
		respondError(c, game.ErrForbidden)
		return
	}

	categories, err := h.Store.ListCategories(room.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	var category *models.Category
	for i := range categories {
		if categories[i].ID == c.Param("categoryId") {
			category = &categories[i]
			break
		}
	}
	if category == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie non trouvée"})
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != "" {
		category.Name = req.Name
	}
	if req.Activated != nil {
		category.Activated = *req.Activated
	}

	if err := h.Store.UpdateCategory(category); err != nil {
		respondError(c, err)
		return
	}

	h.Socket.NotifyCartonAdded(room.Code)
	c.JSON(http.StatusOK, gin.H{"success": true, "category": category})
}

// DeleteCategory removes a category. Creator only. Cards keep existing,
// untagged.
func (h *Handlers) DeleteCategory(c *gin.Context) {
	room, err := h.Store.GetRoomByCode(c.Param("gameId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if room.CreatorID != middleware.UserID(c) {
		respondError(c, game.ErrForbidden)
		return
	}

	if err := h.Store.DeleteCategory(c.Param("categoryId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
