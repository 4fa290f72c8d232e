package jwtauth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenData is what a verified token resolves to.
type TokenData struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// GenToken signs an HS256 token for the user.
func GenToken(secret, userID, email string, exp time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     time.Now().Add(exp).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// IdentifyToken verifies the signature and expiry and extracts the claims.
func IdentifyToken(secret, tokenString string) (TokenData, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return TokenData{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return TokenData{}, fmt.Errorf("invalid token")
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return TokenData{}, fmt.Errorf("token missing user_id")
	}
	email, _ := claims["email"].(string)
	return TokenData{UserID: userID, Email: email}, nil
}
