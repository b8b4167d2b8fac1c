package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims carried by an access token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// HasRole reports whether the token carries the given role.
func (c Claims) HasRole(role string) bool {
	return c.Role == role
}
