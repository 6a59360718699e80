package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/user"
)

const testSecret = "test-secret-key-for-jwt"

func newTestService() Service {
	return NewJWTService(testSecret, "1h", "24h")
}

func TestGenerateAccessToken(t *testing.T) {
	svc := newTestService()
	employeeID := "emp-1"

	tokenString, expiresAt, err := svc.GenerateAccessToken("usr-1", "jordan@example.com", &employeeID, user.RoleHR)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, int64(0))

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	typ, _ := token.Get("type")
	assert.Equal(t, "access", typ)
	uid, _ := token.Get("user_id")
	assert.Equal(t, "usr-1", uid)
	role, _ := token.Get("role")
	assert.Equal(t, string(user.RoleHR), role)
	emp, _ := token.Get("employee_id")
	assert.Equal(t, "emp-1", emp)
}

func TestGenerateRefreshToken(t *testing.T) {
	svc := newTestService()

	tokenString, _, err := svc.GenerateRefreshToken("usr-1")
	require.NoError(t, err)

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)
	typ, _ := token.Get("type")
	assert.Equal(t, "refresh", typ)
}

func TestRevokeToken(t *testing.T) {
	svc := newTestService()

	tokenString, _, err := svc.GenerateRefreshToken("usr-1")
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(tokenString))
	svc.RevokeToken(tokenString)
	assert.True(t, svc.IsTokenRevoked(tokenString))
}

func TestSSEToken(t *testing.T) {
	svc := newTestService()

	tokenString, expiresIn, err := svc.GenerateSSEToken("usr-1")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	userID, err := svc.ValidateSSEToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "usr-1", userID)

	// Access tokens must not open an event stream.
	accessToken, _, err := svc.GenerateAccessToken("usr-1", "jordan@example.com", nil, user.RoleEmployee)
	require.NoError(t, err)
	_, err = svc.ValidateSSEToken(accessToken)
	assert.Error(t, err)

	_, err = svc.ValidateSSEToken("not-a-token")
	assert.Error(t, err)
}
