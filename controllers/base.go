package controllers

import (
	"errors"
	"net/http"

	"github.com/CHgh0sts/LotoSocket/game"
	"github.com/CHgh0sts/LotoSocket/services"
	"github.com/CHgh0sts/LotoSocket/store"
	"github.com/CHgh0sts/LotoSocket/utils/logger"

	"github.com/gin-gonic/gin"
)

// Handlers groups the REST endpoints around their injected collaborators.
type Handlers struct {
	Store     store.Store
	Socket    *services.SocketServer
	JWTSecret string
}

func NewHandlers(st store.Store, socket *services.SocketServer, jwtSecret string) *Handlers {
	return &Handlers{Store: st, Socket: socket, JWTSecret: jwtSecret}
}

func errorsIsRoomNotFound(err error) bool {
	return errors.Is(err, game.ErrRoomNotFound)
}

// respondError maps the game error taxonomy onto HTTP statuses. Store
// failures come out as a generic 500 so no internals leak.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, game.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Room non trouvée"})
	case errors.Is(err, game.ErrCardNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Carton non trouvé"})
	case errors.Is(err, game.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Action réservée au créateur de la room"})
	case errors.Is(err, game.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Action impossible sur ce joueur"})
	case errors.Is(err, game.ErrBanned):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Vous êtes banni de cette room"})
	case errors.Is(err, game.ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Aucune partie en cours pour cette room"})
	default:
		logger.Errorf("[API] internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur interne du serveur"})
	}
}
