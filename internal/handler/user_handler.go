package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"watchlist-server/internal/model"
	"watchlist-server/internal/model/requestresponse"
	"watchlist-server/internal/ports"
	"watchlist-server/internal/repository"
	"watchlist-server/internal/security"
	"watchlist-server/internal/service"
	"watchlist-server/internal/util"

	"github.com/go-chi/chi/v5"
)

// UserHandler обслуживает администрирование пользователей.
// Все операции требуют роли admin у предъявленного access токена
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers godoc
// @Summary Список пользователей
// @Tags Users
// @Produce json
// @Param Authorization header string true "Bearer access токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListUsersResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	if !requireAdmin(w, r) {
		return
	}

	users, err := h.userService.ListUsers(ctx)
	if err != nil {
		handleUserError(w, err)
		return
	}

	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}

	resp := requestresponse.ListUsersResponse{Data: users}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Println("ошибка кодирования ответа:", err)
	}
}

// CreateUser godoc
// @Summary Создание пользователя
// @Tags Users
// @Accept json
// @Produce json
// @Param body body requestresponse.CreateUserRequest true "Тело запроса"
// @Param Authorization header string true "Bearer access токен" default(Bearer <access_token>)
// @Success 201 {object} requestresponse.UserResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/users [post]
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	if !requireAdmin(w, r) {
		return
	}

	var req requestresponse.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "некорректный JSON", http.StatusBadRequest)
		return
	}

	user, err := h.userService.CreateUser(ctx, req.Username, req.Email, req.Password, req.Roles)
	if err != nil {
		handleUserError(w, err)
		return
	}

	resp := requestresponse.UserResponse{Data: user}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Println("ошибка кодирования ответа:", err)
	}
}

// GetUser godoc
// @Summary Получение пользователя по UUID
// @Tags Users
// @Produce json
// @Param uuid path string true "UUID пользователя"
// @Param Authorization header string true "Bearer access токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UserResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/users/{uuid} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	if !requireAdmin(w, r) {
		return
	}

	user, err := h.userService.GetUser(ctx, chi.URLParam(r, "uuid"))
	if err != nil {
		handleUserError(w, err)
		return
	}

	resp := requestresponse.UserResponse{Data: user}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Println("ошибка кодирования ответа:", err)
	}
}

// UpdateUser godoc
// @Summary Обновление пользователя
// @Tags Users
// @Accept json
// @Produce json
// @Param uuid path string true "UUID пользователя"
// @Param body body requestresponse.UpdateUserRequest true "Тело запроса"
// @Param Authorization header string true "Bearer access токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UserResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/users/{uuid} [put]
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	if !requireAdmin(w, r) {
		return
	}

	var req requestresponse.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "некорректный JSON", http.StatusBadRequest)
		return
	}

	user := &model.User{
		UUID:     chi.URLParam(r, "uuid"),
		Username: req.Username,
		Email:    req.Email,
		Roles:    req.Roles,
	}

	updatedUser, err := h.userService.UpdateUser(ctx, user)
	if err != nil {
		handleUserError(w, err)
		return
	}

	resp := requestresponse.UserResponse{Data: updatedUser}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Println("ошибка кодирования ответа:", err)
	}
}

// DeleteUser godoc
// @Summary Удаление пользователя
// @Tags Users
// @Produce json
// @Param uuid path string true "UUID пользователя"
// @Param Authorization header string true "Bearer access токен" default(Bearer <access_token>)
// @Success 200 "Пользователь удалён"
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/users/{uuid} [delete]
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	if !requireAdmin(w, r) {
		return
	}

	deleted, err := h.userService.DeleteUser(ctx, chi.URLParam(r, "uuid"))
	if err != nil {
		handleUserError(w, err)
		return
	}

	if !deleted {
		util.HandleError(w, repository.ErrUserNotFound.Error(), http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// requireAdmin проверяет роль admin у claims из контекста.
// При отказе сам пишет ответ и возвращает false
func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	claims, err := security.GetAccessClaimsFromContext(r.Context())
	if err != nil {
		util.HandleError(w, security.ErrWrongCredentials.Error(), http.StatusUnauthorized)
		return false
	}

	if err := claims.ValidateRoleAdmin(); err != nil {
		util.HandleError(w, security.ErrForbidden.Error(), http.StatusForbidden)
		return false
	}

	return true
}

func handleUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		util.HandleError(w, repository.ErrUserNotFound.Error(), http.StatusNotFound)
	case errors.Is(err, security.ErrForbidden):
		util.HandleError(w, security.ErrForbidden.Error(), http.StatusForbidden)
	case errors.Is(err, service.ErrValidation):
		util.HandleError(w, err.Error(), http.StatusBadRequest)
	default:
		traceID := util.LogInternalError("внутренняя ошибка", err)
		util.HandleError(w, "внутренняя ошибка сервера, trace_id: "+traceID, http.StatusInternalServerError)
	}
}
