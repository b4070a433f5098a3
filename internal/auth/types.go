package auth

import "github.com/golang-jwt/jwt/v5"

// holds the JWT claims for an authenticated user
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
