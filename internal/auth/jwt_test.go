package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arora427/HomeVerse/internal/auth"
)

const testSecret = "test-secret-key"

func TestGenerateAndValidateJWT(t *testing.T) {
	userID := primitive.NewObjectID()

	tokenString, err := auth.GenerateJWT(userID, testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := auth.ValidateJWT(tokenString, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userID.Hex(), claims.UserID)
	assert.Equal(t, userID.Hex(), claims.Subject)
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	userID := primitive.NewObjectID()

	tokenString, err := auth.GenerateJWT(userID, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = auth.ValidateJWT(tokenString, "a-different-secret")
	assert.Error(t, err)
}

func TestValidateJWT_Expired(t *testing.T) {
	userID := primitive.NewObjectID()

	tokenString, err := auth.GenerateJWT(userID, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = auth.ValidateJWT(tokenString, testSecret)
	assert.Error(t, err)
}

func TestValidateJWT_Tampered(t *testing.T) {
	userID := primitive.NewObjectID()

	tokenString, err := auth.GenerateJWT(userID, testSecret, time.Hour)
	require.NoError(t, err)

	tampered := tokenString[:len(tokenString)-2] + "xx"
	_, err = auth.ValidateJWT(tampered, testSecret)
	assert.Error(t, err)
}

func TestValidateJWT_Garbage(t *testing.T) {
	_, err := auth.ValidateJWT("not-a-jwt", testSecret)
	assert.Error(t, err)
}
