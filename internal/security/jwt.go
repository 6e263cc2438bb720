package security

import (
	"fmt"
	"log"
	"time"

	"watchlist-server/config"
	"watchlist-server/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType : тип токена в claim-поле typ.
// Значение вне диапазона никогда не приравнивается к известному типу
type TokenType uint8

const (
	AccessToken TokenType = iota
	RefreshToken
	UnknownToken
)

func TokenTypeFromUint8(value uint8) TokenType {
	switch value {
	case uint8(AccessToken):
		return AccessToken
	case uint8(RefreshToken):
		return RefreshToken
	default:
		return UnknownToken
	}
}

func (t TokenType) String() string {
	switch t {
	case AccessToken:
		return "access"
	case RefreshToken:
		return "refresh"
	default:
		return "unknown"
	}
}

// ClaimsMethods объединяет обе формы claims: проверки отзыва и авторизация
// по ролям работают одинаково для access и refresh токенов
type ClaimsMethods interface {
	jwt.Claims
	GetTokenID() string
	GetRoles() string
	ValidateRoleAdmin() error
}

// AccessClaims : короткоживущий токен доступа.
// Регистровые поля (sub, jti, iat, exp) приходят из jwt.RegisteredClaims
type AccessClaims struct {
	TokenType uint8  `json:"typ"`
	Roles     string `json:"roles"`
	jwt.RegisteredClaims
}

func (c *AccessClaims) GetTokenID() string { return c.ID }

func (c *AccessClaims) GetRoles() string { return c.Roles }

func (c *AccessClaims) ValidateRoleAdmin() error { return ValidateRoleAdmin(c.Roles) }

// RefreshClaims : долгоживущий токен обновления.
// Несёт ссылку на парный access токен (prf) и его срок (pex),
// чтобы отзыв refresh токена отзывал и выданный вместе с ним access
type RefreshClaims struct {
	TokenType       uint8  `json:"typ"`
	Roles           string `json:"roles"`
	PairedTokenID   string `json:"prf"`
	PairedExpiresAt int64  `json:"pex"`
	jwt.RegisteredClaims
}

func (c *RefreshClaims) GetTokenID() string { return c.ID }

func (c *RefreshClaims) GetRoles() string { return c.Roles }

func (c *RefreshClaims) ValidateRoleAdmin() error { return ValidateRoleAdmin(c.Roles) }

type JWTService struct {
	*config.JWTConfig
}

func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{cfg}
}

// GenerateTokenPair выпускает пару access/refresh токенов для пользователя.
// Оба токена получают свежие jti и общий iat, refresh токен ссылается
// на access через prf/pex
func (service *JWTService) GenerateTokenPair(user *model.User) (*model.TokensPair, error) {
	timeNow := time.Now()
	accessTokenID := uuid.New().String()
	refreshTokenID := uuid.New().String()
	accessExpireAt := timeNow.Add(time.Duration(service.ExpireAccessTokenSeconds) * time.Second)
	refreshExpireAt := timeNow.Add(time.Duration(service.ExpireRefreshTokenSeconds) * time.Second)

	accessClaims := AccessClaims{
		TokenType: uint8(AccessToken),
		Roles:     user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UUID,
			ID:        accessTokenID,
			IssuedAt:  jwt.NewNumericDate(timeNow),
			ExpiresAt: jwt.NewNumericDate(accessExpireAt),
		},
	}

	refreshClaims := RefreshClaims{
		TokenType:       uint8(RefreshToken),
		Roles:           user.Roles,
		PairedTokenID:   accessTokenID,
		PairedExpiresAt: accessExpireAt.Unix(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UUID,
			ID:        refreshTokenID,
			IssuedAt:  jwt.NewNumericDate(timeNow),
			ExpiresAt: jwt.NewNumericDate(refreshExpireAt),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).
		SignedString([]byte(service.SecretKey))
	if err != nil {
		log.Printf("ошибка подписи access токена: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrTokenCreation, err)
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).
		SignedString([]byte(service.SecretKey))
	if err != nil {
		log.Printf("ошибка подписи refresh токена: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrTokenCreation, err)
	}

	return &model.TokensPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// ParseAccessToken проверяет подпись и срок действия access токена
func (service *JWTService) ParseAccessToken(tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := service.parseWithClaims(tokenStr, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// ParseRefreshToken проверяет подпись и срок действия refresh токена
func (service *JWTService) ParseRefreshToken(tokenStr string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := service.parseWithClaims(tokenStr, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// parseWithClaims выполняет общую проверку токена. Причина отказа наружу
// не различается (подпись, структура, срок) и всегда сводится к
// ErrWrongCredentials; сырой токен при этом логируется для диагностики
func (service *JWTService) parseWithClaims(tokenStr string, claims jwt.Claims) error {
	leeway := time.Duration(service.ValidationLeewaySeconds) * time.Second

	// срок сравнивается в целых секундах: текущее время усекается до
	// секунды, leeway расширяется на неё же, поэтому токен валиден,
	// пока exp >= now - leeway включительно
	jwtToken, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return []byte(service.SecretKey), nil
	},
		jwt.WithLeeway(leeway+time.Second),
		jwt.WithTimeFunc(func() time.Time { return time.Now().Truncate(time.Second) }),
	)

	if err != nil || !jwtToken.Valid {
		log.Printf("невалидный токен %q: %v", tokenStr, err)
		return ErrWrongCredentials
	}

	return nil
}
