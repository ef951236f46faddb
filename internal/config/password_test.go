package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig_Defaults(t *testing.T) {
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("PASSWORD_PEPPER", "")

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Empty(t, cfg.Pepper)
}

func TestNewPasswordConfig_FromEnv(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "global-secret")

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "global-secret", cfg.Pepper)
}

func TestNewPasswordConfig_InvalidCost(t *testing.T) {
	t.Setenv("BCRYPT_COST", "not-a-number")

	cfg, err := NewPasswordConfig()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "invalid BCRYPT_COST")
}

func TestNewPasswordConfig_CostOutOfRange(t *testing.T) {
	for _, cost := range []string{"9", "15"} {
		t.Setenv("BCRYPT_COST", cost)

		cfg, err := NewPasswordConfig()
		assert.Error(t, err, "cost %s should be rejected", cost)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "out of range")
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	hash, err := cfg.HashPassword("АнанасовыйСок42")
	require.NoError(t, err)
	require.NotEqual(t, "АнанасовыйСок42", hash)

	assert.True(t, cfg.VerifyPassword("АнанасовыйСок42", hash))
	assert.False(t, cfg.VerifyPassword("другой пароль", hash))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	first, err := cfg.HashPassword("password123")
	require.NoError(t, err)
	second, err := cfg.HashPassword("password123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, cfg.VerifyPassword("password123", first))
	assert.True(t, cfg.VerifyPassword("password123", second))
}

func TestVerifyPassword_PepperMustMatch(t *testing.T) {
	peppered := &PasswordConfig{BcryptCost: 10, Pepper: "pepper-a"}

	hash, err := peppered.HashPassword("password123")
	require.NoError(t, err)

	assert.True(t, peppered.VerifyPassword("password123", hash))

	otherPepper := &PasswordConfig{BcryptCost: 10, Pepper: "pepper-b"}
	assert.False(t, otherPepper.VerifyPassword("password123", hash))

	noPepper := &PasswordConfig{BcryptCost: 10}
	assert.False(t, noPepper.VerifyPassword("password123", hash))
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	assert.False(t, cfg.VerifyPassword("password123", "not-a-bcrypt-hash"))
	assert.False(t, cfg.VerifyPassword("password123", ""))
}
