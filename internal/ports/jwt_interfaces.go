package ports

import (
	"context"

	"watchlist-server/internal/model"
	"watchlist-server/internal/security"
)

type JWTServiceInterface interface {
	GenerateTokenPair(user *model.User) (*model.TokensPair, error)
	ParseAccessToken(tokenStr string) (*security.AccessClaims, error)
	ParseRefreshToken(tokenStr string) (*security.RefreshClaims, error)
}

// RevocationRepositoryInterface : Redis слой учёта отозванных токенов.
// Три независимых механизма: глобальная отсечка, отсечка по пользователю
// и явный список отозванных jti
type RevocationRepositoryInterface interface {
	RevokeGlobal(ctx context.Context) error
	RevokeUser(ctx context.Context, userUUID string) error
	RevokeTokenPair(ctx context.Context, claims *security.RefreshClaims) error
	IsRevoked(ctx context.Context, claims security.ClaimsMethods) (bool, error)
	CleanupExpired(ctx context.Context) (int, error)
}
