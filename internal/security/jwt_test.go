package security_test

import (
	"testing"
	"time"

	"watchlist-server/config"
	"watchlist-server/internal/model"
	"watchlist-server/internal/security"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(secret string, leewaySeconds int64) *security.JWTService {
	return security.NewJWTService(&config.JWTConfig{
		SecretKey:                 secret,
		ExpireAccessTokenSeconds:  900,
		ExpireRefreshTokenSeconds: 86400,
		ValidationLeewaySeconds:   leewaySeconds,
		EnableRevokedTokens:       true,
	})
}

func testUser() *model.User {
	return &model.User{
		UUID:     "b6a1e1c4-4b1d-4f1e-8b29-1234567890ab",
		Username: "user1",
		Roles:    "admin,customer",
	}
}

// Выпущенная пара сразу же декодируется, subject и роли совпадают с входными
func TestGenerateTokenPair_DecodeAccess(t *testing.T) {
	svc := newTestJWTService("test-secret", 0)
	user := testUser()

	tokens, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)

	claims, err := svc.ParseAccessToken(tokens.AccessToken)
	require.NoError(t, err)

	subject, err := claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, user.UUID, subject)
	assert.Equal(t, user.Roles, claims.GetRoles())
	assert.Equal(t, security.AccessToken, security.TokenTypeFromUint8(claims.TokenType))
	assert.NotEmpty(t, claims.GetTokenID())
}

// prf refresh токена равен jti access токена из того же вызова,
// pex равен exp access токена
func TestGenerateTokenPair_PairReference(t *testing.T) {
	svc := newTestJWTService("test-secret", 0)

	tokens, err := svc.GenerateTokenPair(testUser())
	require.NoError(t, err)

	accessClaims, err := svc.ParseAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	refreshClaims, err := svc.ParseRefreshToken(tokens.RefreshToken)
	require.NoError(t, err)

	assert.Equal(t, accessClaims.GetTokenID(), refreshClaims.PairedTokenID)

	accessExpire, err := accessClaims.GetExpirationTime()
	require.NoError(t, err)
	assert.Equal(t, accessExpire.Unix(), refreshClaims.PairedExpiresAt)

	assert.Equal(t, security.RefreshToken, security.TokenTypeFromUint8(refreshClaims.TokenType))
	assert.NotEqual(t, accessClaims.GetTokenID(), refreshClaims.GetTokenID())
}

// Токен, подписанный другим секретом, не декодируется никогда
func TestParseAccessToken_WrongSecret(t *testing.T) {
	issuer := newTestJWTService("secret-one", 0)
	verifier := newTestJWTService("secret-two", 0)

	tokens, err := issuer.GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = verifier.ParseAccessToken(tokens.AccessToken)
	assert.ErrorIs(t, err, security.ErrWrongCredentials)

	_, err = verifier.ParseRefreshToken(tokens.RefreshToken)
	assert.ErrorIs(t, err, security.ErrWrongCredentials)
}

func signAccessToken(t *testing.T, secret string, expireAt time.Time) string {
	t.Helper()

	claims := security.AccessClaims{
		TokenType: uint8(security.AccessToken),
		Roles:     "customer",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ID:        "a1",
			IssuedAt:  jwt.NewNumericDate(expireAt.Add(-15 * time.Minute)),
			ExpiresAt: jwt.NewNumericDate(expireAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

// Просроченный токен принимается внутри leeway и отклоняется за его пределами
func TestParseAccessToken_ExpiryLeeway(t *testing.T) {
	const leeway = 30
	svc := newTestJWTService("test-secret", leeway)

	// истёк, но ещё в пределах leeway
	insideLeeway := signAccessToken(t, "test-secret", time.Now().Add(-(leeway-5)*time.Second))
	_, err := svc.ParseAccessToken(insideLeeway)
	assert.NoError(t, err)

	// истёк и leeway уже не спасает
	outsideLeeway := signAccessToken(t, "test-secret", time.Now().Add(-(leeway+5)*time.Second))
	_, err = svc.ParseAccessToken(outsideLeeway)
	assert.ErrorIs(t, err, security.ErrWrongCredentials)
}

// Граница leeway принимается целиком: токен с exp == now - leeway ещё
// валиден, на секунду старше — уже нет
func TestParseAccessToken_ExpiryLeewayExactBoundary(t *testing.T) {
	const leeway = 30
	svc := newTestJWTService("test-secret", leeway)

	// привязка к началу секунды, чтобы она не сменилась между
	// подписью и разбором
	now := time.Now()
	time.Sleep(now.Truncate(time.Second).Add(time.Second).Sub(now))
	second := time.Now().Truncate(time.Second)

	atBoundary := signAccessToken(t, "test-secret", second.Add(-leeway*time.Second))
	_, err := svc.ParseAccessToken(atBoundary)
	assert.NoError(t, err)

	pastBoundary := signAccessToken(t, "test-secret", second.Add(-(leeway+1)*time.Second))
	_, err = svc.ParseAccessToken(pastBoundary)
	assert.ErrorIs(t, err, security.ErrWrongCredentials)
}

// Структурно битые строки сводятся к той же ошибке, что и неверная подпись
func TestParseAccessToken_Malformed(t *testing.T) {
	svc := newTestJWTService("test-secret", 0)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := svc.ParseAccessToken(token)
		assert.ErrorIs(t, err, security.ErrWrongCredentials)
	}
}

// Неизвестное значение typ никогда не приравнивается к известному типу
func TestTokenTypeFromUint8(t *testing.T) {
	assert.Equal(t, security.AccessToken, security.TokenTypeFromUint8(0))
	assert.Equal(t, security.RefreshToken, security.TokenTypeFromUint8(1))
	assert.Equal(t, security.UnknownToken, security.TokenTypeFromUint8(2))
	assert.Equal(t, security.UnknownToken, security.TokenTypeFromUint8(255))
}
