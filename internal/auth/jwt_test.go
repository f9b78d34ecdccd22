package auth_test

import (
	"testing"
	"time"

	"paxala/internal/auth"
	"paxala/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestGenerateAndParseToken(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, 24)

	userID := uuid.New()
	token, err := tm.GenerateToken(userID, model.RoleStaff)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, model.RoleStaff, claims.Role)
}

func TestParseToken_InvalidToken(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, 24)

	_, err := tm.ParseToken("invalid-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := auth.NewTokenManager("other-secret", 24).GenerateToken(uuid.New(), model.RoleAdmin)
	require.NoError(t, err)

	_, err = auth.NewTokenManager(testSecret, 24).ParseToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_ExpiredToken(t *testing.T) {
	claims := jwt.MapClaims{
		"user_id": uuid.NewString(),
		"role":    "ADMIN",
		"exp":     time.Now().Add(-1 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	expired, _ := token.SignedString([]byte(testSecret))

	_, err := auth.NewTokenManager(testSecret, 24).ParseToken(expired)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_MissingClaims(t *testing.T) {
	claims := jwt.MapClaims{
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	withoutUser, _ := token.SignedString([]byte(testSecret))

	_, err := auth.NewTokenManager(testSecret, 24).ParseToken(withoutUser)
	assert.ErrorIs(t, err, auth.ErrInvalidClaims)
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := auth.HashPassword("s3cret!")
	require.NoError(t, err)

	assert.True(t, auth.CheckPassword(hashed, "s3cret!"))
	assert.False(t, auth.CheckPassword(hashed, "wrong"))
}
