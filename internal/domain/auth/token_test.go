package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	identity := Identity{EmployeeID: "E1", Email: "jane@company.com", IsAdmin: true}

	token, err := GenerateToken("test-secret", identity, time.Minute)
	require.NoError(t, err)

	claims, err := ParseToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, "E1", claims.EmployeeID)
	assert.Equal(t, "jane@company.com", claims.Email)
	assert.True(t, claims.IsAdmin)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	token, err := GenerateToken("secret-a", Identity{EmployeeID: "E1"}, time.Minute)
	require.NoError(t, err)

	_, err = ParseToken("secret-b", token)
	assert.Error(t, err)
}

func TestTokenExpiredRejected(t *testing.T) {
	token, err := GenerateToken("test-secret", Identity{EmployeeID: "E1"}, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken("test-secret", token)
	assert.Error(t, err)
}

func TestHashPasswordVerifies(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret!")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret!", hash)
	assert.NotEqual(t, HashToken("a"), HashToken("b"))
}
