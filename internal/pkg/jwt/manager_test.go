// internal/pkg/jwt/manager_test.go
package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Secret:   "test-secret",
		Issuer:   "crm-service",
		Audience: "crm-users",
		TTL:      time.Hour,
	}
}

func TestGenerateVerifyRoundTrip(t *testing.T) {
	m, err := NewManager(testConfig())
	require.NoError(t, err)

	token, jti, err := m.Generate("emp-1", "alice@example.com", "employee")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, jti)

	claims, err := m.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, "emp-1", claims.IdentityID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "employee", claims.Role)
	assert.Equal(t, jti, claims.ID)
	assert.False(t, claims.IsAdmin())
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	m1, err := NewManager(testConfig())
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Secret = "other-secret"
	m2, err := NewManager(cfg)
	require.NoError(t, err)

	token, _, err := m1.Generate("emp-1", "alice@example.com", "employee")
	require.NoError(t, err)

	_, err = m2.Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	cfg := testConfig()
	cfg.Issuer = "someone-else"
	m1, err := NewManager(cfg)
	require.NoError(t, err)

	m2, err := NewManager(testConfig())
	require.NoError(t, err)

	token, _, err := m1.Generate("emp-1", "alice@example.com", "employee")
	require.NoError(t, err)

	_, err = m2.Verify(token)
	require.Error(t, err)
}

func TestNewManagerRequiresSecret(t *testing.T) {
	_, err := NewManager(Config{})
	require.Error(t, err)
}
