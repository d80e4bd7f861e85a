// internal/pkg/session/manager.go
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Manager keeps login sessions in Redis. A token is only accepted while its
// session key exists, so logout and expiry both invalidate it.
type Manager struct {
	client *redis.Client
}

func NewManager(client *redis.Client) *Manager {
	return &Manager{client: client}
}

func (m *Manager) sessionKey(identityID, jti string) string {
	return fmt.Sprintf("session:%s:%s", identityID, jti)
}

// CreateSession stores a new session with a TTL matching the token expiry.
func (m *Manager) CreateSession(ctx context.Context, s *SessionData) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := m.client.Set(ctx, m.sessionKey(s.IdentityID, s.JTI), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session in redis: %w", err)
	}
	return nil
}

// GetSession retrieves a session, or an error if it no longer exists.
func (m *Manager) GetSession(ctx context.Context, identityID, jti string) (*SessionData, error) {
	data, err := m.client.Get(ctx, m.sessionKey(identityID, jti)).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("session not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var s SessionData
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &s, nil
}

// DeleteSession removes a single session (logout).
func (m *Manager) DeleteSession(ctx context.Context, identityID, jti string) error {
	return m.client.Del(ctx, m.sessionKey(identityID, jti)).Err()
}
