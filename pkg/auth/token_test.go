package auth

import (
	"testing"
	"time"

	"github.com/marocvoyages/marocvoyages-backend/pkg/config"
	"github.com/stretchr/testify/require"
)

func jwtTestConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "marocvoyages-test",
		ExpirationMinutes: 60,
		SessionTTLMinutes: 120,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	t.Parallel()

	cfg := jwtTestConfig()
	signed, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID:   7,
		Username: "admin",
		IsAdmin:  true,
	})
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, signed)
	require.NoError(t, err)
	require.Equal(t, uint(7), claims.UserID)
	require.Equal(t, "admin", claims.Username)
	require.True(t, claims.IsAdmin)
	require.NotEmpty(t, claims.ID)
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	cfg := jwtTestConfig()
	signed, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: 1, Username: "admin"})
	require.NoError(t, err)

	other := cfg
	other.Secret = "different"
	_, err = ParseAccessToken(other, signed)
	require.Error(t, err)
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	t.Parallel()

	cfg := jwtTestConfig()
	signed, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), AccessTokenPayload{UserID: 1, Username: "admin"})
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, signed)
	require.Error(t, err)
}

func TestMintAccessTokenValidation(t *testing.T) {
	t.Parallel()

	cfg := jwtTestConfig()
	_, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{})
	require.Error(t, err)

	noSecret := cfg
	noSecret.Secret = ""
	_, err = MintAccessToken(noSecret, time.Now(), AccessTokenPayload{UserID: 1})
	require.Error(t, err)
}
