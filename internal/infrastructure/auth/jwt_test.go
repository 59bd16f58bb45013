package auth

import (
	"testing"
	"time"

	"github.com/gemsuite/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-for-jwt-service-tests",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "gemsuite-test",
	})
}

func TestJWTService_GenerateToken(t *testing.T) {
	svc := newTestJWTService()

	input := GenerateTokenInput{
		TenantID: uuid.New(),
		UserID:   uuid.New(),
		Username: "storekeeper",
	}

	token, err := svc.GenerateToken(input)
	require.NoError(t, err)
	require.NotNil(t, token)

	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), token.ExpiresAt, 5*time.Second)
}

func TestJWTService_ValidateToken(t *testing.T) {
	svc := newTestJWTService()
	tenantID := uuid.New()
	userID := uuid.New()

	t.Run("accepts a valid token", func(t *testing.T) {
		token, err := svc.GenerateToken(GenerateTokenInput{
			TenantID: tenantID,
			UserID:   userID,
			Username: "storekeeper",
		})
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token.AccessToken)
		require.NoError(t, err)

		assert.Equal(t, tenantID.String(), claims.TenantID)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "storekeeper", claims.Username)

		parsedTenant, err := claims.GetTenantUUID()
		require.NoError(t, err)
		assert.Equal(t, tenantID, parsedTenant)

		parsedUser, err := claims.GetUserUUID()
		require.NoError(t, err)
		assert.Equal(t, userID, parsedUser)
	})

	t.Run("rejects a malformed token", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects a token signed with a different secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                "another-secret-entirely-for-this-test",
			AccessTokenExpiration: 15 * time.Minute,
			Issuer:                "gemsuite-test",
		})
		token, err := other.GenerateToken(GenerateTokenInput{
			TenantID: tenantID,
			UserID:   userID,
		})
		require.NoError(t, err)

		_, err = svc.ValidateToken(token.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := NewJWTService(config.JWTConfig{
			Secret:                "test-secret-key-for-jwt-service-tests",
			AccessTokenExpiration: -time.Minute,
			Issuer:                "gemsuite-test",
		})
		token, err := expired.GenerateToken(GenerateTokenInput{
			TenantID: tenantID,
			UserID:   userID,
		})
		require.NoError(t, err)

		_, err = svc.ValidateToken(token.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}
