package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"watchlist-server/internal/model/requestresponse"
	"watchlist-server/internal/ports"
	"watchlist-server/internal/security"
	"watchlist-server/internal/util"
)

type AuthenticationHandler struct {
	authenticationService ports.AuthenticationService
	jwtService            ports.JWTServiceInterface
}

func NewAuthenticationHandler(
	authenticationService ports.AuthenticationService,
	jwtService ports.JWTServiceInterface,
) *AuthenticationHandler {
	return &AuthenticationHandler{
		authenticationService: authenticationService,
		jwtService:            jwtService,
	}
}

// Login godoc
// @Summary Аутентификация пользователя
// @Description Выпускает пару access/refresh токенов по логину и паролю
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Тело запроса"
// @Success 200 {object} requestresponse.TokensResponse "Успешная аутентификация"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или пустые поля"
// @Failure 401 {object} requestresponse.ErrorResponse "Неверные учетные данные"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "некорректный JSON", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Password == "" {
		util.HandleError(w, security.ErrMissingCredentials.Error(), http.StatusBadRequest)
		return
	}

	tokens, err := h.authenticationService.Login(ctx, req.Username, req.Password)
	if err != nil {
		handleAuthError(w, err)
		return
	}

	writeTokensResponse(w, tokens.AccessToken, tokens.RefreshToken)
}

// Logout godoc
// @Summary Завершение сессии
// @Description Отзывает refresh токен из заголовка Authorization вместе с парным access токеном
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer refresh токен" default(Bearer <refresh_token>)
// @Success 200 "Токены отозваны"
// @Failure 400 {object} requestresponse.ErrorResponse "Неверный тип токена или учет отзыва выключен"
// @Failure 401 {object} requestresponse.ErrorResponse "Невалидный токен"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/logout [post]
func (h *AuthenticationHandler) Logout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	refreshClaims, err := h.extractRefreshClaims(r)
	if err != nil {
		handleAuthError(w, err)
		return
	}

	if err := h.authenticationService.Logout(ctx, refreshClaims); err != nil {
		handleAuthError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Refresh godoc
// @Summary Обновление пары токенов
// @Description Отзывает предъявленную пару и выпускает новую по refresh токену из заголовка Authorization
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer refresh токен" default(Bearer <refresh_token>)
// @Success 200 {object} requestresponse.TokensResponse "Новая пара токенов"
// @Failure 400 {object} requestresponse.ErrorResponse "Неверный тип токена"
// @Failure 401 {object} requestresponse.ErrorResponse "Невалидный или отозванный токен"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/refresh [post]
func (h *AuthenticationHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	refreshClaims, err := h.extractRefreshClaims(r)
	if err != nil {
		handleAuthError(w, err)
		return
	}

	tokens, err := h.authenticationService.Refresh(ctx, refreshClaims)
	if err != nil {
		handleAuthError(w, err)
		return
	}

	writeTokensResponse(w, tokens.AccessToken, tokens.RefreshToken)
}

// Cleanup godoc
// @Summary Очистка списка отозванных токенов
// @Description Удаляет записи об отзыве с истёкшим сроком. Только для администратора
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer access токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.CleanupResponse "Число удалённых записей"
// @Failure 400 {object} requestresponse.ErrorResponse "Учет отзыва выключен"
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Failure 403 {object} requestresponse.ErrorResponse "Нет роли admin"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /api/auth/cleanup [post]
func (h *AuthenticationHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	accessClaims, err := security.GetAccessClaimsFromContext(ctx)
	if err != nil {
		handleAuthError(w, err)
		return
	}

	deleted, err := h.authenticationService.Cleanup(ctx, accessClaims)
	if err != nil {
		handleAuthError(w, err)
		return
	}

	resp := requestresponse.CleanupResponse{DeletedTokens: deleted}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Println("ошибка кодирования ответа:", err)
	}
}

// RevokeAll godoc
// @Summary Глобальный отзыв токенов
// @Description Отзывает все ранее выпущенные токены. Только для администратора
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer access токен" default(Bearer <access_token>)
// @Success 200 "Токены отозваны"
// @Failure 400 {object} requestresponse.ErrorResponse "Учет отзыва выключен"
// @Failure 403 {object} requestresponse.ErrorResponse "Нет роли admin"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /api/auth/revoke-all [post]
func (h *AuthenticationHandler) RevokeAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	accessClaims, err := security.GetAccessClaimsFromContext(ctx)
	if err != nil {
		handleAuthError(w, err)
		return
	}

	if err := h.authenticationService.RevokeAll(ctx, accessClaims); err != nil {
		handleAuthError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// RevokeUser godoc
// @Summary Отзыв токенов пользователя
// @Description Отзывает все токены одного пользователя. Только для администратора
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RevokeUserRequest true "Тело запроса"
// @Param Authorization header string true "Bearer access токен" default(Bearer <access_token>)
// @Success 200 "Токены отозваны"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или учет отзыва выключен"
// @Failure 403 {object} requestresponse.ErrorResponse "Нет роли admin"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /api/auth/revoke-user [post]
func (h *AuthenticationHandler) RevokeUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	accessClaims, err := security.GetAccessClaimsFromContext(ctx)
	if err != nil {
		handleAuthError(w, err)
		return
	}

	var req requestresponse.RevokeUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "некорректный JSON", http.StatusBadRequest)
		return
	}
	if req.UserUUID == "" {
		util.HandleError(w, "user_uuid обязателен", http.StatusBadRequest)
		return
	}

	if err := h.authenticationService.RevokeUser(ctx, accessClaims, req.UserUUID); err != nil {
		handleAuthError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// extractRefreshClaims разбирает refresh токен из заголовка Authorization
func (h *AuthenticationHandler) extractRefreshClaims(r *http.Request) (*security.RefreshClaims, error) {
	token, err := security.ExtractBearerToken(r)
	if err != nil {
		return nil, err
	}
	return h.jwtService.ParseRefreshToken(token)
}

func writeTokensResponse(w http.ResponseWriter, accessToken, refreshToken string) {
	resp := requestresponse.TokensResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Println("ошибка кодирования ответа:", err)
	}
}

// handleAuthError переводит ошибки аутентификации в HTTP статусы.
// Внутренние ошибки бэкенда наружу не раскрываются — клиент получает
// общий текст, подробности остаются в логах под trace_id
func handleAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, security.ErrWrongCredentials):
		util.HandleError(w, security.ErrWrongCredentials.Error(), http.StatusUnauthorized)
	case errors.Is(err, security.ErrMissingCredentials):
		util.HandleError(w, security.ErrMissingCredentials.Error(), http.StatusBadRequest)
	case errors.Is(err, security.ErrInvalidToken):
		util.HandleError(w, security.ErrInvalidToken.Error(), http.StatusBadRequest)
	case errors.Is(err, security.ErrRevokedTokensInactive):
		util.HandleError(w, security.ErrRevokedTokensInactive.Error(), http.StatusBadRequest)
	case errors.Is(err, security.ErrForbidden):
		util.HandleError(w, security.ErrForbidden.Error(), http.StatusForbidden)
	default:
		traceID := util.LogInternalError("внутренняя ошибка", err)
		util.HandleError(w, "внутренняя ошибка сервера, trace_id: "+traceID, http.StatusInternalServerError)
	}
}
