package auth

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkshelfapp/linkshelf-server/internal/domain"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword(hash, "correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "wrong password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_Invalid(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)

	_, err = HashPassword(strings.Repeat("x", maxPasswordLength+1))
	assert.Error(t, err)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	// Garbage hashes verify false without an error.
	ok, err := VerifyPassword("not-a-hash", "anything")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenRoundTrip(t *testing.T) {
	key := strings.Repeat("ab", 32)
	svc, err := NewTokenService(key, time.Hour)
	require.NoError(t, err)

	user := &domain.User{ID: "user-123", Email: "token@example.com"}
	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "token@example.com", claims.Email)
	assert.Equal(t, "user-123", claims.Subject)
	assert.NotEmpty(t, claims.TokenID)
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	key := strings.Repeat("cd", 32)
	svc, err := NewTokenService(key, -time.Minute)
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken(&domain.User{ID: "user-exp", Email: "exp@example.com"})
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestVerifyAccessToken_WrongKey(t *testing.T) {
	svc1, err := NewTokenService(strings.Repeat("aa", 32), time.Hour)
	require.NoError(t, err)
	svc2, err := NewTokenService(strings.Repeat("bb", 32), time.Hour)
	require.NoError(t, err)

	token, err := svc1.GenerateAccessToken(&domain.User{ID: "user-x", Email: "x@example.com"})
	require.NoError(t, err)

	_, err = svc2.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestNewTokenService_BadKey(t *testing.T) {
	_, err := NewTokenService("tooshort", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenService(strings.Repeat("zz", 32), time.Hour)
	assert.Error(t, err)
}

func TestLoadOrGenerateKey(t *testing.T) {
	dir := t.TempDir()

	key1, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Len(t, key1, 32)

	// Second load returns the same key.
	key2, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Equal(t, key1, key2)

	// The file holds the key hex-encoded.
	data, err := os.ReadFile(filepath.Join(dir, "auth.key"))
	require.NoError(t, err)
	decoded, err := hex.DecodeString(strings.TrimSpace(string(data)))
	require.NoError(t, err)
	assert.Equal(t, key1, decoded)
}

func TestLoadOrGenerateKey_Corrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth.key"), []byte("short"), 0o600))

	_, err := LoadOrGenerateKey(dir)
	assert.Error(t, err)
}
