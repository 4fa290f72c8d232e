package routes

import (
	"github.com/CHgh0sts/LotoSocket/controllers"
	"github.com/CHgh0sts/LotoSocket/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// SetupRoutes registers the REST API.
func SetupRoutes(r *gin.Engine, h *controllers.Handlers) {
	api := r.Group("/api")
	auth := middleware.Authentication(h.JWTSecret)

	// ----------------------
	// Auth routes
	// ----------------------
	authGroup := api.Group("/auth", middleware.Limiter(rate.Limit(5), 10))
	authGroup.POST("/register", h.Register)
	authGroup.POST("/login", h.Login)
	authGroup.GET("/me", auth, h.Me)

	// ----------------------
	// Lobby routes
	// ----------------------
	api.GET("/game/public-rooms", h.PublicRooms)
	api.GET("/game/check-room", h.CheckRoom)
	api.GET("/game/active-players", h.ActivePlayers)
	api.POST("/game/create", auth, h.CreateRoom)
	api.POST("/game/join", auth, h.JoinRoom)

	// ----------------------
	// Room routes
	// ----------------------
	room := api.Group("/game/:gameId", auth)
	room.GET("", h.GetRoom)
	room.PUT("/settings", h.UpdateSettings)

	room.GET("/players", h.ListPlayers)
	room.POST("/players/ban/:playerId", h.BanPlayer)
	room.POST("/players/unban/:playerId", h.UnbanPlayer)
	room.GET("/players/banned", h.BannedPlayers)
	room.POST("/players/transfer-creator", h.TransferCreator)

	room.GET("/cartons", h.ListCartons)
	room.POST("/carton", h.CreateCarton)
	room.PUT("/cartons/:cartonId/category", h.SetCartonCategory)

	room.GET("/categories", h.ListCategories)
	room.POST("/categories", h.CreateCategory)
	room.PUT("/categories/:categoryId", h.UpdateCategory)
	room.DELETE("/categories/:categoryId", h.DeleteCategory)

	room.GET("/pubs", h.ListPubs)
	room.POST("/pubs", h.CreatePub)
	room.DELETE("/pubs/:pubId", h.DeletePub)
}
