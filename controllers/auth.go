package controllers

import (
	"net/http"
	"time"

	"github.com/CHgh0sts/LotoSocket/middleware"
	"github.com/CHgh0sts/LotoSocket/models"
	"github.com/CHgh0sts/LotoSocket/utils/jwtauth"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 7 * 24 * time.Hour

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates an account and returns a signed token.
func (h *Handlers) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom, email et mot de passe (6 caractères minimum) requis"})
		return
	}

	existing, err := h.Store.GetUserByEmail(req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Un compte existe déjà avec cet email"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		respondError(c, err)
		return
	}

	user := models.User{Name: req.Name, Email: req.Email, Password: string(hashed)}
	if err := h.Store.CreateUser(&user); err != nil {
		respondError(c, err)
		return
	}

	token, err := jwtauth.GenToken(h.JWTSecret, user.ID, user.Email, tokenLifetime)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "token": token, "user": user})
}

// Login verifies credentials and returns a signed token.
func (h *Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email et mot de passe requis"})
		return
	}

	user, err := h.Store.GetUserByEmail(req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	token, err := jwtauth.GenToken(h.JWTSecret, user.ID, user.Email, tokenLifetime)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "user": user})
}

// Me returns the authenticated user.
func (h *Handlers) Me(c *gin.Context) {
	user, err := h.Store.GetUserByID(middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur non trouvé"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}
