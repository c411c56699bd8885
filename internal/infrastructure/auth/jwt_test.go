package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mandi/backend/internal/infrastructure/config"
)

func newTestJWTService(maxRefresh int) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "access-secret-0123456789abcdefghij",
		RefreshSecret:          "refresh-secret-0123456789abcdefghij",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "mandi-test",
		MaxRefreshCount:        maxRefresh,
	})
}

func TestJWTServiceTokenPair(t *testing.T) {
	service := newTestJWTService(5)
	userID := uuid.New()

	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		UserID:      userID,
		Email:       "agent@example.com",
		CompanyName: "Sharma Traders",
	})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	t.Run("access claims", func(t *testing.T) {
		claims, err := service.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "agent@example.com", claims.Email)
		assert.Equal(t, "Sharma Traders", claims.CompanyName)
		assert.Equal(t, TokenTypeAccess, claims.TokenType)
		assert.NotEmpty(t, claims.ID)

		tenantID, err := claims.GetTenantUUID()
		require.NoError(t, err)
		assert.Equal(t, userID, tenantID, "the account is its own tenant")
	})

	t.Run("refresh claims are minimal", func(t *testing.T) {
		claims, err := service.ValidateRefreshToken(pair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Empty(t, claims.Email)
		assert.Equal(t, TokenTypeRefresh, claims.TokenType)
		assert.Equal(t, 0, claims.RefreshCount)
	})

	t.Run("token types are not interchangeable", func(t *testing.T) {
		_, err := service.ValidateAccessToken(pair.RefreshToken)
		assert.Error(t, err)
		_, err = service.ValidateRefreshToken(pair.AccessToken)
		assert.Error(t, err)
	})

	t.Run("type check applies with a shared secret", func(t *testing.T) {
		// With no refresh secret configured both token kinds verify against
		// the same key, so only the embedded type tells them apart.
		shared := NewJWTService(config.JWTConfig{
			Secret:                 "shared-secret-0123456789abcdefghij",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "mandi-test",
		})
		sharedPair, err := shared.GenerateTokenPair(GenerateTokenInput{UserID: userID})
		require.NoError(t, err)

		_, err = shared.ValidateRefreshToken(sharedPair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidTokenType)
		_, err = shared.ValidateAccessToken(sharedPair.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidTokenType)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		_, err := service.ValidateAccessToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                 "a-completely-different-secret-value",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "mandi-test",
		})
		_, err := other.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestJWTServiceRefreshTokenPair(t *testing.T) {
	service := newTestJWTService(2)
	userID := uuid.New()

	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		UserID:      userID,
		Email:       "agent@example.com",
		CompanyName: "Sharma Traders",
	})
	require.NoError(t, err)

	t.Run("increments refresh count", func(t *testing.T) {
		refreshed, err := service.RefreshTokenPair(pair.RefreshToken, "agent@example.com", "Sharma Traders")
		require.NoError(t, err)

		claims, err := service.ValidateRefreshToken(refreshed.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, 1, claims.RefreshCount)

		accessClaims, err := service.ValidateAccessToken(refreshed.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "agent@example.com", accessClaims.Email)
	})

	t.Run("stops at the refresh limit", func(t *testing.T) {
		token := pair.RefreshToken
		for i := 0; i < 2; i++ {
			refreshed, err := service.RefreshTokenPair(token, "agent@example.com", "Sharma Traders")
			require.NoError(t, err)
			token = refreshed.RefreshToken
		}

		_, err := service.RefreshTokenPair(token, "agent@example.com", "Sharma Traders")
		assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
	})

	t.Run("rejects access token as refresh input", func(t *testing.T) {
		_, err := service.RefreshTokenPair(pair.AccessToken, "agent@example.com", "Sharma Traders")
		assert.Error(t, err)
	})
}

func TestJWTServiceExpiredToken(t *testing.T) {
	service := NewJWTService(config.JWTConfig{
		Secret:                 "access-secret-0123456789abcdefghij",
		RefreshSecret:          "refresh-secret-0123456789abcdefghij",
		AccessTokenExpiration:  -time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "mandi-test",
	})

	pair, err := service.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New()})
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestClaimsRemainingTTL(t *testing.T) {
	service := newTestJWTService(5)
	pair, err := service.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New()})
	require.NoError(t, err)

	claims, err := service.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	ttl := claims.GetRemainingTTL()
	assert.Greater(t, ttl, 14*time.Minute)
	assert.LessOrEqual(t, ttl, 15*time.Minute)
	assert.False(t, claims.GetIssuedAtTime().IsZero())
}
