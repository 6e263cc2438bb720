package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"watchlist-server/config"
	"watchlist-server/internal/security"
	"watchlist-server/internal/util"

	"github.com/redis/go-redis/v9"
)

// Ключи Redis для трёх механизмов отзыва токенов
const (
	revokeGlobalBeforeKey = "jwt.revoke.global.before"
	revokeUserBeforeKey   = "jwt.revoke.user.before"
	revokedTokensKey      = "jwt.revoked.tokens"
)

// RevocationRepository хранит отозванные токены в Redis.
// Глобальная отсечка — строка с timestamp, пользовательская — hash
// uuid→timestamp, явный список — hash jti→exp (exp нужен только как
// горизонт очистки, валидность токена им не определяется)
type RevocationRepository struct {
	client *config.RedisClient
}

func NewRevocationRepository(redisClient *config.RedisClient) *RevocationRepository {
	return &RevocationRepository{client: redisClient}
}

// RevokeGlobal отзывает все токены, выпущенные до текущего момента
func (r *RevocationRepository) RevokeGlobal(ctx context.Context) error {
	timestampNow := time.Now().Unix()
	log.Printf("[RevocationRepo] установка глобальной отсечки: %d", timestampNow)

	if err := r.client.Client.Set(ctx, revokeGlobalBeforeKey, timestampNow, 0).Err(); err != nil {
		return util.LogError("[RevocationRepo] ошибка записи глобальной отсечки", err)
	}

	return nil
}

// RevokeUser отзывает все токены пользователя, выпущенные до текущего момента
func (r *RevocationRepository) RevokeUser(ctx context.Context, userUUID string) error {
	timestampNow := time.Now().Unix()
	log.Printf("[RevocationRepo] установка отсечки пользователя %s: %d", userUUID, timestampNow)

	if err := r.client.Client.HSet(ctx, revokeUserBeforeKey, userUUID, timestampNow).Err(); err != nil {
		return util.LogError("[RevocationRepo] ошибка записи отсечки пользователя", err)
	}

	return nil
}

// RevokeTokenPair вносит refresh токен и парный ему access токен в список
// отозванных. Оба jti получают срок хранения, равный exp refresh токена:
// он дольше, значит запись об отзыве access токена гарантированно
// переживёт его собственный срок действия
func (r *RevocationRepository) RevokeTokenPair(ctx context.Context, claims *security.RefreshClaims) error {
	refreshExpire, err := claims.GetExpirationTime()
	if err != nil || refreshExpire == nil {
		return util.LogError("[RevocationRepo] у refresh токена отсутствует exp", err)
	}

	expireAt := refreshExpire.Unix()
	log.Printf("[RevocationRepo] отзыв пары токенов: %s, %s", claims.ID, claims.PairedTokenID)

	// обе записи должны появиться атомарно, иначе отозванный refresh
	// может остаться с действующим access токеном
	_, err = r.client.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, revokedTokensKey, claims.ID, expireAt)
		pipe.HSet(ctx, revokedTokensKey, claims.PairedTokenID, expireAt)
		return nil
	})
	if err != nil {
		return util.LogError("[RevocationRepo] ошибка записи пары в список отозванных", err)
	}

	r.logRevokedTokensCount(ctx)
	return nil
}

// IsRevoked проверяет токен по трём механизмам отзыва по очереди.
// Порядок значим только для диагностики — проверки объединяются по ИЛИ.
// Любая ошибка бэкенда возвращается наверх: вызывающая сторона обязана
// отказать в доступе, а не счесть токен неотозванным
func (r *RevocationRepository) IsRevoked(ctx context.Context, claims security.ClaimsMethods) (bool, error) {
	issuedAt, err := claims.GetIssuedAt()
	if err != nil || issuedAt == nil {
		return false, util.LogError("[RevocationRepo] у токена отсутствует iat", err)
	}
	iat := issuedAt.Unix()

	globalRevoked, err := r.isGlobalRevoked(ctx, iat)
	if err != nil {
		return false, err
	}
	if globalRevoked {
		log.Printf("[RevocationRepo] доступ запрещён (глобальный отзыв), jti: %s", claims.GetTokenID())
		return true, nil
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return false, util.LogError("[RevocationRepo] у токена отсутствует sub", err)
	}

	userRevoked, err := r.isUserRevoked(ctx, subject, iat)
	if err != nil {
		return false, err
	}
	if userRevoked {
		log.Printf("[RevocationRepo] доступ запрещён (отзыв пользователя %s), jti: %s", subject, claims.GetTokenID())
		return true, nil
	}

	tokenRevoked, err := r.isTokenRevoked(ctx, claims.GetTokenID())
	if err != nil {
		return false, err
	}
	if tokenRevoked {
		log.Printf("[RevocationRepo] доступ запрещён (токен отозван), jti: %s", claims.GetTokenID())
		return true, nil
	}

	return false, nil
}

func (r *RevocationRepository) isGlobalRevoked(ctx context.Context, iat int64) (bool, error) {
	value, err := r.client.Client.Get(ctx, revokeGlobalBeforeKey).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	} else if err != nil {
		return false, util.LogError("[RevocationRepo] ошибка чтения глобальной отсечки", err)
	}

	cutoff, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return false, util.LogError("[RevocationRepo] битая глобальная отсечка", err)
	}

	return cutoff >= iat, nil
}

func (r *RevocationRepository) isUserRevoked(ctx context.Context, userUUID string, iat int64) (bool, error) {
	value, err := r.client.Client.HGet(ctx, revokeUserBeforeKey, userUUID).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	} else if err != nil {
		return false, util.LogError("[RevocationRepo] ошибка чтения отсечки пользователя", err)
	}

	cutoff, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return false, util.LogError(fmt.Sprintf("[RevocationRepo] битая отсечка пользователя %s", userUUID), err)
	}

	return cutoff >= iat, nil
}

func (r *RevocationRepository) isTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	revoked, err := r.client.Client.HExists(ctx, revokedTokensKey, tokenID).Result()
	if err != nil {
		return false, util.LogError("[RevocationRepo] ошибка проверки списка отозванных", err)
	}

	return revoked, nil
}

// CleanupExpired удаляет из списка отозванных записи с истёкшим exp:
// такие токены уже не проходят проверку срока действия и отслеживать их
// незачем. Полный проход по hash допустим — размер списка ограничен
// временем жизни refresh токена, а не числом пользователей
func (r *RevocationRepository) CleanupExpired(ctx context.Context) (int, error) {
	timestampNow := time.Now().Unix()

	revokedTokens, err := r.client.Client.HGetAll(ctx, revokedTokensKey).Result()
	if err != nil {
		return 0, util.LogError("[RevocationRepo] ошибка чтения списка отозванных", err)
	}

	deleted := 0
	for tokenID, value := range revokedTokens {
		expireAt, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			log.Printf("[RevocationRepo] битый exp у записи %s: %v", tokenID, err)
			continue
		}

		if timestampNow > expireAt {
			if err := r.client.Client.HDel(ctx, revokedTokensKey, tokenID).Err(); err != nil {
				return deleted, util.LogError("[RevocationRepo] ошибка удаления записи", err)
			}
			deleted++
		}
	}

	r.logRevokedTokensCount(ctx)
	return deleted, nil
}

func (r *RevocationRepository) logRevokedTokensCount(ctx context.Context) {
	count, err := r.client.Client.HLen(ctx, revokedTokensKey).Result()
	if err != nil {
		log.Printf("[RevocationRepo] ошибка чтения размера списка отозванных: %v", err)
		return
	}
	log.Printf("[RevocationRepo] записей в списке отозванных: %d", count)
}
