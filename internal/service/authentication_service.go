package service

import (
	"context"
	"log"

	"watchlist-server/config"
	"watchlist-server/internal/model"
	"watchlist-server/internal/ports"
	"watchlist-server/internal/security"
	"watchlist-server/internal/util"
)

// AuthenticationService управляет жизненным циклом пары токенов:
// выпуск при логине, отзыв при логауте, ротация при refresh
// и периодическая очистка списка отозванных
type AuthenticationService struct {
	userRepository       ports.UserRepository
	jwtService           ports.JWTServiceInterface
	revocationRepository ports.RevocationRepositoryInterface
	jwtConfig            *config.JWTConfig
}

func NewAuthenticationService(
	userRepository ports.UserRepository,
	jwtService ports.JWTServiceInterface,
	revocationRepository ports.RevocationRepositoryInterface,
	jwtConfig *config.JWTConfig,
) *AuthenticationService {
	return &AuthenticationService{
		userRepository:       userRepository,
		jwtService:           jwtService,
		revocationRepository: revocationRepository,
		jwtConfig:            jwtConfig,
	}
}

// Login проверяет учетные данные и выпускает пару токенов.
// Несуществующий пользователь и неверный пароль для клиента неразличимы
func (s *AuthenticationService) Login(ctx context.Context, username, password string) (*model.TokensPair, error) {
	user, err := s.userRepository.FindByUsername(ctx, username)
	if err != nil {
		log.Printf("[AuthService] логин отклонён, пользователь %s: %v", username, err)
		return nil, security.ErrWrongCredentials
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		log.Printf("[AuthService] логин отклонён, неверный пароль: %s", username)
		return nil, security.ErrWrongCredentials
	}

	tokens, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, util.LogError("[AuthService] ошибка генерации токенов", err)
	}

	return tokens, nil
}

// Logout отзывает refresh токен вместе с парным access токеном.
// Повторный logout того же токена — успешный no-op: отзыв одностороннее
// действие и второй вызов ничего не меняет
func (s *AuthenticationService) Logout(ctx context.Context, refreshClaims *security.RefreshClaims) error {
	if !s.jwtConfig.EnableRevokedTokens {
		return security.ErrRevokedTokensInactive
	}

	if err := validateTokenType(refreshClaims, security.RefreshToken); err != nil {
		return err
	}

	revoked, err := s.revocationRepository.IsRevoked(ctx, refreshClaims)
	if err != nil {
		return util.LogError("[AuthService] ошибка проверки отзыва при logout", err)
	}
	if revoked {
		log.Printf("[AuthService] повторный logout токена %s", refreshClaims.ID)
		return nil
	}

	if err := s.revocationRepository.RevokeTokenPair(ctx, refreshClaims); err != nil {
		return util.LogError("[AuthService] ошибка отзыва пары токенов", err)
	}

	return nil
}

// Refresh ротирует пару токенов: старая пара отзывается (если учет отзыва
// включен), для пользователя из sub выпускается новая
func (s *AuthenticationService) Refresh(ctx context.Context, refreshClaims *security.RefreshClaims) (*model.TokensPair, error) {
	if err := validateTokenType(refreshClaims, security.RefreshToken); err != nil {
		return nil, err
	}

	if s.jwtConfig.EnableRevokedTokens {
		revoked, err := s.revocationRepository.IsRevoked(ctx, refreshClaims)
		if err != nil {
			return nil, util.LogError("[AuthService] ошибка проверки отзыва при refresh", err)
		}
		if revoked {
			log.Printf("[AuthService] попытка refresh отозванным токеном %s", refreshClaims.ID)
			return nil, security.ErrWrongCredentials
		}

		if err := s.revocationRepository.RevokeTokenPair(ctx, refreshClaims); err != nil {
			return nil, util.LogError("[AuthService] ошибка отзыва старой пары", err)
		}
	}

	subject, err := refreshClaims.GetSubject()
	if err != nil {
		return nil, util.LogError("[AuthService] у refresh токена отсутствует sub", err)
	}

	user, err := s.userRepository.FindByUUID(ctx, subject)
	if err != nil {
		return nil, util.LogError("[AuthService] пользователь из refresh токена не найден", err)
	}

	tokens, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, util.LogError("[AuthService] ошибка генерации токенов", err)
	}

	return tokens, nil
}

// Cleanup удаляет просроченные записи из списка отозванных токенов.
// Доступно только администратору
func (s *AuthenticationService) Cleanup(ctx context.Context, accessClaims *security.AccessClaims) (int, error) {
	if err := accessClaims.ValidateRoleAdmin(); err != nil {
		return 0, err
	}

	if !s.jwtConfig.EnableRevokedTokens {
		return 0, security.ErrRevokedTokensInactive
	}

	deleted, err := s.revocationRepository.CleanupExpired(ctx)
	if err != nil {
		return 0, util.LogError("[AuthService] ошибка очистки списка отозванных", err)
	}

	return deleted, nil
}

// RevokeAll отзывает все ранее выпущенные токены (административная операция)
func (s *AuthenticationService) RevokeAll(ctx context.Context, accessClaims *security.AccessClaims) error {
	if err := accessClaims.ValidateRoleAdmin(); err != nil {
		return err
	}

	if !s.jwtConfig.EnableRevokedTokens {
		return security.ErrRevokedTokensInactive
	}

	if err := s.revocationRepository.RevokeGlobal(ctx); err != nil {
		return util.LogError("[AuthService] ошибка глобального отзыва", err)
	}

	return nil
}

// RevokeUser отзывает все токены одного пользователя (logout-everywhere)
func (s *AuthenticationService) RevokeUser(ctx context.Context, accessClaims *security.AccessClaims, userUUID string) error {
	if err := accessClaims.ValidateRoleAdmin(); err != nil {
		return err
	}

	if !s.jwtConfig.EnableRevokedTokens {
		return security.ErrRevokedTokensInactive
	}

	if err := s.revocationRepository.RevokeUser(ctx, userUUID); err != nil {
		return util.LogError("[AuthService] ошибка отзыва токенов пользователя", err)
	}

	return nil
}

// validateTokenType защищает от подмены access токена вместо refresh
func validateTokenType(claims *security.RefreshClaims, expected security.TokenType) error {
	found := security.TokenTypeFromUint8(claims.TokenType)
	if found != expected {
		log.Printf("[AuthService] неверный тип токена: ожидался %s, получен %s", expected, found)
		return security.ErrInvalidToken
	}
	return nil
}
