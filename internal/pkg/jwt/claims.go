// internal/pkg/jwt/claims.go
package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the JWT claims carried by CRM login tokens.
type Claims struct {
	IdentityID string `json:"identity_id"`
	Email      string `json:"email"`
	Role       string `json:"role"` // admin or employee
	jwt.RegisteredClaims
}

// IsAdmin checks if the token belongs to the admin console.
func (c *Claims) IsAdmin() bool {
	return c.Role == "admin"
}
