package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"reportd/internal/report/model"
)

func testUser() *model.User {
	user := &model.User{Email: "user@example.com", CompanyID: primitive.NewObjectID()}
	user.ID = primitive.NewObjectID()
	return user
}

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)
	user := testUser()

	raw, err := manager.Generate(user)
	require.NoError(t, err)

	userID, companyID, err := manager.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, user.CompanyID, companyID)
}

func TestTokenRejections(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)
	user := testUser()

	t.Run("garbage", func(t *testing.T) {
		_, _, err := manager.Parse("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		raw, err := manager.Generate(user)
		require.NoError(t, err)

		other := NewTokenManager("other-secret", time.Hour)
		_, _, err = other.Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewTokenManager("test-secret", -time.Minute)
		raw, err := expired.Generate(user)
		require.NoError(t, err)

		_, _, err = manager.Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPassword(hash, "correct horse battery staple"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
