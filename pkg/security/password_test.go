package security

import (
	"testing"

	"github.com/marocvoyages/marocvoyages-backend/pkg/config"
	"github.com/stretchr/testify/require"
)

func testParams() config.PasswordConfig {
	// Small parameters keep the test fast; clamps still apply.
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	encoded, err := HashPassword("correct horse battery staple", testParams())
	require.NoError(t, err)
	require.Contains(t, encoded, "$argon2id$")

	ok, err := VerifyPassword("correct horse battery staple", encoded)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = VerifyPassword("wrong password", encoded)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	t.Parallel()

	_, err := HashPassword("", testParams())
	require.Error(t, err)
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	t.Parallel()

	_, err := VerifyPassword("anything", "not-a-hash")
	require.ErrorIs(t, err, ErrInvalidHash)
}
