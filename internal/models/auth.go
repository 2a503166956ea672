package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims is the token payload issued by the directory service.
type JWTClaims struct {
	UserID   int64    `json:"user_id"`
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
	jwt.RegisteredClaims
}
