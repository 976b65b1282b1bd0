// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joelnust/namsa/internal/platform/sec"
)

func signToken(t *testing.T, key *rsa.PrivateKey, claims sec.AuthClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func claimsFor(userID, issuer string, expiresIn time.Duration) sec.AuthClaims {
	now := time.Now()
	return sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
		UserID: userID,
		Role:   string(sec.RoleArtist),
	}
}

/*
TestTokenService_VerifyToken covers the accepted and rejected token shapes.
*/
func TestTokenService_VerifyToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	service := sec.NewTokenServiceFromKey(&key.PublicKey, "namsa.org.na")

	t.Run("valid", func(t *testing.T) {
		claims, err := service.VerifyToken(signToken(t, key, claimsFor("artist-7", "namsa.org.na", time.Hour)))
		require.NoError(t, err)
		assert.Equal(t, "artist-7", claims.UserID)
		assert.Equal(t, "artist", claims.Role)
	})

	t.Run("expired", func(t *testing.T) {
		_, err := service.VerifyToken(signToken(t, key, claimsFor("artist-7", "namsa.org.na", -time.Minute)))
		assert.Error(t, err)
	})

	t.Run("wrong_issuer", func(t *testing.T) {
		_, err := service.VerifyToken(signToken(t, key, claimsFor("artist-7", "elsewhere", time.Hour)))
		assert.Error(t, err)
	})

	t.Run("foreign_key", func(t *testing.T) {
		_, err := service.VerifyToken(signToken(t, other, claimsFor("artist-7", "namsa.org.na", time.Hour)))
		assert.Error(t, err)
	})

	t.Run("missing_user", func(t *testing.T) {
		_, err := service.VerifyToken(signToken(t, key, claimsFor("", "namsa.org.na", time.Hour)))
		assert.Error(t, err)
	})
}

func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleArtist))
	assert.True(t, sec.RoleArtist.AtLeast(sec.RoleArtist))
	assert.False(t, sec.RoleArtist.AtLeast(sec.RoleOfficer))
	assert.False(t, sec.UserRole("guest").AtLeast(sec.RoleArtist))
}
