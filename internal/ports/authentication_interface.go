package ports

import (
	"context"

	"watchlist-server/internal/model"
	"watchlist-server/internal/security"
)

type AuthenticationService interface {
	Login(ctx context.Context, username, password string) (*model.TokensPair, error)
	Logout(ctx context.Context, refreshClaims *security.RefreshClaims) error
	Refresh(ctx context.Context, refreshClaims *security.RefreshClaims) (*model.TokensPair, error)
	Cleanup(ctx context.Context, accessClaims *security.AccessClaims) (int, error)
	RevokeAll(ctx context.Context, accessClaims *security.AccessClaims) error
	RevokeUser(ctx context.Context, accessClaims *security.AccessClaims, userUUID string) error
}
