package main

import (
	"log"

	"github.com/CHgh0sts/LotoSocket/config"
)

// Standalone migration runner for deploy pipelines that migrate before
// rolling the server.
func main() {
	cfg := config.Load()
	db := config.ConnectDB(cfg.DatabaseURL)
	_ = db

	log.Println("Migration complete")
}
