package models

import "github.com/golang-jwt/jwt/v5"

// CustomClaims represents the custom claims in our JWT tokens.
// Subject and UserID both carry the user id.
type CustomClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}
