package security

import (
	"context"
	"log"
	"net/http"
	"strings"

	"watchlist-server/config"
	"watchlist-server/internal/util"
)

type contextKey string

const (
	UserContextKey contextKey = "user"
)

// RevocationChecker : минимальный контракт проверки отзыва,
// который нужен middleware (реализуется repository.RevocationRepository)
type RevocationChecker interface {
	IsRevoked(ctx context.Context, claims ClaimsMethods) (bool, error)
}

// ExtractBearerToken достает токен из заголовка Authorization.
// Отсутствующий и искажённый заголовок для клиента неразличимы
func ExtractBearerToken(request *http.Request) (string, error) {
	authorizationHeader := request.Header.Get("Authorization")
	if !strings.HasPrefix(authorizationHeader, "Bearer ") {
		return "", ErrWrongCredentials
	}

	return strings.TrimPrefix(authorizationHeader, "Bearer "), nil
}

// JWTMiddleware аутентифицирует запрос по access токену.
// При включенном учете отзыва токен дополнительно проверяется по Redis;
// ошибка бэкенда в этом случае приводит к отказу (fail-closed) —
// ошибку нельзя трактовать как "не отозван"
func JWTMiddleware(jwtService *JWTService, revocationChecker RevocationChecker, cfg *config.JWTConfig) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(handleAuthentication(jwtService, revocationChecker, cfg, next))
	}
}

func handleAuthentication(jwtService *JWTService, revocationChecker RevocationChecker, cfg *config.JWTConfig, next http.Handler) func(writer http.ResponseWriter, request *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		token, err := ExtractBearerToken(request)
		if err != nil {
			util.HandleError(writer, ErrWrongCredentials.Error(), http.StatusUnauthorized)
			return
		}

		claims, err := jwtService.ParseAccessToken(token)
		if err != nil {
			util.HandleError(writer, ErrWrongCredentials.Error(), http.StatusUnauthorized)
			return
		}

		if cfg.EnableRevokedTokens {
			revoked, err := revocationChecker.IsRevoked(request.Context(), claims)
			if err != nil {
				log.Printf("ошибка проверки отзыва токена %s: %v", claims.GetTokenID(), err)
				util.HandleError(writer, ErrWrongCredentials.Error(), http.StatusUnauthorized)
				return
			}
			if revoked {
				util.HandleError(writer, ErrWrongCredentials.Error(), http.StatusUnauthorized)
				return
			}
		}

		req := request.WithContext(context.WithValue(request.Context(), UserContextKey, claims))
		next.ServeHTTP(writer, req)
	}
}

// GetAccessClaimsFromContext возвращает claims, положенные middleware
func GetAccessClaimsFromContext(ctx context.Context) (*AccessClaims, error) {
	claims, ok := ctx.Value(UserContextKey).(*AccessClaims)
	if !ok || claims == nil {
		return nil, ErrWrongCredentials
	}
	return claims, nil
}
