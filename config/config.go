package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment at startup.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	CORSOrigins []string
}

// Load reads .env (if present) and validates required variables.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, reading environment variables")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("[FATAL] DATABASE_URL is required in .env or environment")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("[FATAL] JWT_SECRET is required in .env or environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	origins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	if env := os.Getenv("CORS_ORIGIN"); env != "" {
		origins = []string{env}
	}

	return &Config{
		Port:        port,
		DatabaseURL: dsn,
		JWTSecret:   secret,
		CORSOrigins: origins,
	}
}
