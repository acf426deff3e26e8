package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Sup3r-secret-pw")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3r-secret-pw", hash)

	assert.True(t, CheckPassword(hash, "Sup3r-secret-pw"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Sup3r-secret"))
	assert.Error(t, ValidatePassword("short1A"))
	assert.Error(t, ValidatePassword("nouppercase1"))
	assert.Error(t, ValidatePassword("NOLOWERCASE1"))
	assert.Error(t, ValidatePassword("NoNumbersHere"))
}

func TestTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken(userID, true, "secret", time.Minute)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.True(t, claims.IsAdmin)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	token, err := GenerateToken(uuid.New(), false, "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, "secret")
	assert.Error(t, err)
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "Jamie Rivera", SanitizeString("  Jamie Rivera  "))
	assert.Equal(t, "&lt;script&gt;", SanitizeString("<script>"))
	assert.Equal(t, "", SanitizeString("   "))
}

func TestDeviceModelValidation(t *testing.T) {
	type probe struct {
		Model string `validate:"device_model"`
	}

	assert.NoError(t, ValidateStruct(&probe{Model: "chromebook"}))
	assert.NoError(t, ValidateStruct(&probe{Model: "hotspot"}))
	assert.Error(t, ValidateStruct(&probe{Model: "toaster"}))
}
