package models

import "github.com/golang-jwt/jwt/v5"

// AdminClaims are the JWT claims carried by the admin session cookie.
type AdminClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}
