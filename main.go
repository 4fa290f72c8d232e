package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CHgh0sts/LotoSocket/config"
	"github.com/CHgh0sts/LotoSocket/controllers"
	"github.com/CHgh0sts/LotoSocket/routes"
	"github.com/CHgh0sts/LotoSocket/services"
	"github.com/CHgh0sts/LotoSocket/store"
	"github.com/CHgh0sts/LotoSocket/utils/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func setupRouter(cfg *config.Config, h *controllers.Handlers, socket *services.SocketServer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, h)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	// Single websocket endpoint; the room is picked by the join message.
	r.GET("/ws", socket.HandleWebSocket)

	return r
}

func main() {
	cfg := config.Load()

	db := config.ConnectDB(cfg.DatabaseURL)
	st := store.NewGormStore(db)

	socket := services.NewSocketServer(st)
	handlers := controllers.NewHandlers(st, socket, cfg.JWTSecret)

	router := setupRouter(cfg, handlers, socket)

	// Presence is ephemeral: tear the live state down cleanly, counts
	// rebuild when clients reconnect.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Infof("Shutting down, clearing live state")
		socket.Shutdown()
		logger.Sync()
		os.Exit(0)
	}()

	logger.Infof("🚀 LotoSocket server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
