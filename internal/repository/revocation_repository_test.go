package repository_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"watchlist-server/config"
	"watchlist-server/internal/repository"
	"watchlist-server/internal/security"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const revokedTokensKey = "jwt.revoked.tokens"

func newTestRevocationRepo(t *testing.T) (*repository.RevocationRepository, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	return repository.NewRevocationRepository(&config.RedisClient{Client: client}), server
}

func accessClaims(subject, tokenID string, issuedAt time.Time) *security.AccessClaims {
	return &security.AccessClaims{
		TokenType: uint8(security.AccessToken),
		Roles:     "customer",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(15 * time.Minute)),
		},
	}
}

func refreshClaims(subject, tokenID, pairedTokenID string, issuedAt time.Time, expireAt time.Time) *security.RefreshClaims {
	return &security.RefreshClaims{
		TokenType:       uint8(security.RefreshToken),
		Roles:           "customer",
		PairedTokenID:   pairedTokenID,
		PairedExpiresAt: issuedAt.Add(15 * time.Minute).Unix(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expireAt),
		},
	}
}

// Глобальная отсечка отзывает токены с iat <= T и не трогает выпущенные позже
func TestRevokeGlobal(t *testing.T) {
	repo, _ := newTestRevocationRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.RevokeGlobal(ctx))

	revoked, err := repo.IsRevoked(ctx, accessClaims("u1", "a1", time.Now().Add(-10*time.Second)))
	require.NoError(t, err)
	assert.True(t, revoked)

	notRevoked, err := repo.IsRevoked(ctx, accessClaims("u1", "a2", time.Now().Add(10*time.Second)))
	require.NoError(t, err)
	assert.False(t, notRevoked)
}

// Пользовательская отсечка действует только на subject и только на старые токены
func TestRevokeUser(t *testing.T) {
	repo, _ := newTestRevocationRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.RevokeUser(ctx, "u1"))

	issuedBefore := time.Now().Add(-10 * time.Second)

	revoked, err := repo.IsRevoked(ctx, accessClaims("u1", "a1", issuedBefore))
	require.NoError(t, err)
	assert.True(t, revoked)

	// другой пользователь с тем же iat не затронут
	otherUser, err := repo.IsRevoked(ctx, accessClaims("u2", "a2", issuedBefore))
	require.NoError(t, err)
	assert.False(t, otherUser)

	// токен того же пользователя, выпущенный после отсечки
	issuedAfter, err := repo.IsRevoked(ctx, accessClaims("u1", "a3", time.Now().Add(10*time.Second)))
	require.NoError(t, err)
	assert.False(t, issuedAfter)
}

// Отзыв пары вносит оба jti, горизонтом хранения служит exp refresh токена
func TestRevokeTokenPair(t *testing.T) {
	repo, server := newTestRevocationRepo(t)
	ctx := context.Background()

	issuedAt := time.Now()
	refreshExpireAt := issuedAt.Add(24 * time.Hour)
	claims := refreshClaims("u1", "r1", "a1", issuedAt, refreshExpireAt)

	require.NoError(t, repo.RevokeTokenPair(ctx, claims))

	revokedRefresh, err := repo.IsRevoked(ctx, claims)
	require.NoError(t, err)
	assert.True(t, revokedRefresh)

	revokedAccess, err := repo.IsRevoked(ctx, accessClaims("u1", "a1", issuedAt))
	require.NoError(t, err)
	assert.True(t, revokedAccess)

	// у обеих записей exp именно refresh токена, хотя access истекает раньше
	expected := strconv.FormatInt(refreshExpireAt.Unix(), 10)
	assert.Equal(t, expected, server.HGet(revokedTokensKey, "r1"))
	assert.Equal(t, expected, server.HGet(revokedTokensKey, "a1"))
}

// Очистка удаляет только записи с истёкшим exp и возвращает точное число,
// повторный вызов без новых записей возвращает 0
func TestCleanupExpired(t *testing.T) {
	repo, server := newTestRevocationRepo(t)
	ctx := context.Background()

	now := time.Now().Unix()
	server.HSet(revokedTokensKey, "expired-1", strconv.FormatInt(now-100, 10))
	server.HSet(revokedTokensKey, "expired-2", strconv.FormatInt(now-1, 10))
	server.HSet(revokedTokensKey, "alive", strconv.FormatInt(now+100, 10))

	deleted, err := repo.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	assert.Empty(t, server.HGet(revokedTokensKey, "expired-1"))
	assert.Empty(t, server.HGet(revokedTokensKey, "expired-2"))
	assert.NotEmpty(t, server.HGet(revokedTokensKey, "alive"))

	deleted, err = repo.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
}

// Битая запись не удаляется и не ломает очистку остальных
func TestCleanupExpired_SkipsCorruptEntry(t *testing.T) {
	repo, server := newTestRevocationRepo(t)
	ctx := context.Background()

	now := time.Now().Unix()
	server.HSet(revokedTokensKey, "corrupt", "not-a-timestamp")
	server.HSet(revokedTokensKey, "expired", strconv.FormatInt(now-100, 10))

	deleted, err := repo.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
	assert.Equal(t, "not-a-timestamp", server.HGet(revokedTokensKey, "corrupt"))
}

// Ошибка бэкенда поднимается наверх, а не трактуется как "не отозван"
func TestIsRevoked_BackendError(t *testing.T) {
	repo, server := newTestRevocationRepo(t)
	ctx := context.Background()

	server.Close()

	_, err := repo.IsRevoked(ctx, accessClaims("u1", "a1", time.Now()))
	assert.Error(t, err)
}
