// internal/pkg/session/types.go
package session

import "time"

type SessionData struct {
	JTI        string    `json:"jti"`
	IdentityID string    `json:"identity_id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	LoginAt    time.Time `json:"login_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}
