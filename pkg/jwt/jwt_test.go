package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	token, err := GenerateToken("65f000000000000000000001", "a@b.c", "ana", "user", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "65f000000000000000000001", claims.UserID)
	assert.Equal(t, "ana", claims.Username)
}

func TestValidateRejects(t *testing.T) {
	token, err := GenerateToken("u1", "a@b.c", "ana", "user", "secret", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)

	expired, err := GenerateToken("u1", "a@b.c", "ana", "user", "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateToken(expired, "secret")
	assert.Error(t, err)

	_, err = ValidateToken("not-a-token", "secret")
	assert.Error(t, err)
}
