package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"watchlist-server/internal/model"
	"watchlist-server/internal/model/requestresponse"
	"watchlist-server/internal/ports"
	"watchlist-server/internal/repository"
	"watchlist-server/internal/security"
	"watchlist-server/internal/service"
	"watchlist-server/internal/util"

	"github.com/go-chi/chi/v5"
)

// MovieHandler обслуживает watchlist: фильмы принадлежат пользователю
// из access токена, чужие записи не видны
type MovieHandler struct {
	movieService ports.MovieService
}

func NewMovieHandler(movieService ports.MovieService) *MovieHandler {
	return &MovieHandler{movieService: movieService}
}

// ListMovies godoc
// @Summary Страница watchlist текущего пользователя
// @Tags Movies
// @Produce json
// @Param page query int false "Номер страницы (с 1)"
// @Param per_page query int false "Размер страницы"
// @Param max_runtime query int false "Фильтр по длительности, минуты"
// @Param Authorization header string true "Bearer access токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.PaginatedMoviesResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/movies [get]
func (h *MovieHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	claims, err := security.GetAccessClaimsFromContext(ctx)
	if err != nil {
		util.HandleError(w, security.ErrWrongCredentials.Error(), http.StatusUnauthorized)
		return
	}

	ownerUUID, err := claims.GetSubject()
	if err != nil {
		util.HandleError(w, security.ErrWrongCredentials.Error(), http.StatusUnauthorized)
		return
	}

	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", 0)
	maxRuntime := queryInt(r, "max_runtime", 0)

	movies, total, err := h.movieService.ListMovies(ctx, ownerUUID, maxRuntime, page, perPage)
	if err != nil {
		handleMovieError(w, err)
		return
	}

	resp := requestresponse.PaginatedMoviesResponse{
		Page:    page,
		PerPage: len(movies),
		Total:   total,
		Data:    movies,
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Println("ошибка кодирования ответа:", err)
	}
}

// CreateMovie godoc
// @Summary Добавление фильма в watchlist
// @Tags Movies
// @Accept json
// @Produce json
// @Param body body requestresponse.CreateMovieRequest true "Тело запроса"
// @Param Authorization header string true "Bearer access токен" default(Bearer <access_token>)
// @Success 201 {object} requestresponse.MovieResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/movies [post]
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	claims, err := security.GetAccessClaimsFromContext(ctx)
	if err != nil {
		util.HandleError(w, security.ErrWrongCredentials.Error(), http.StatusUnauthorized)
		return
	}

	ownerUUID, err := claims.GetSubject()
	if err != nil {
		util.HandleError(w, security.ErrWrongCredentials.Error(), http.StatusUnauthorized)
		return
	}

	var req requestresponse.CreateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "некорректный JSON", http.StatusBadRequest)
		return
	}

	movie := &model.Movie{
		Name:         req.Name,
		LetterboxdID: req.LetterboxdID,
		URL:          req.URL,
		TmdbID:       req.TmdbID,
		Runtime:      req.Runtime,
		PosterPath:   req.PosterPath,
		VoteAverage:  req.VoteAverage,
	}

	createdMovie, err := h.movieService.CreateMovie(ctx, ownerUUID, movie)
	if err != nil {
		handleMovieError(w, err)
		return
	}

	resp := requestresponse.MovieResponse{Data: createdMovie}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Println("ошибка кодирования ответа:", err)
	}
}

// GetMovie godoc
// @Summary Получение фильма по UUID
// @Tags Movies
// @Produce json
// @Param uuid path string true "UUID фильма"
// @Param Authorization header string true "Bearer access токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.MovieResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/movies/{uuid} [get]
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	movie, err := h.movieService.GetMovie(ctx, chi.URLParam(r, "uuid"))
	if err != nil {
		handleMovieError(w, err)
		return
	}

	resp := requestresponse.MovieResponse{Data: movie}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Println("ошибка кодирования ответа:", err)
	}
}

// UpdateMovie godoc
// @Summary Обновление фильма
// @Tags Movies
// @Accept json
// @Produce json
// @Param uuid path string true "UUID фильма"
// @Param body body requestresponse.CreateMovieRequest true "Тело запроса"
// @Param Authorization header string true "Bearer access токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.MovieResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/movies/{uuid} [put]
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.CreateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "некорректный JSON", http.StatusBadRequest)
		return
	}

	movie := &model.Movie{
		UUID:         chi.URLParam(r, "uuid"),
		Name:         req.Name,
		LetterboxdID: req.LetterboxdID,
		URL:          req.URL,
		TmdbID:       req.TmdbID,
		Runtime:      req.Runtime,
		PosterPath:   req.PosterPath,
		VoteAverage:  req.VoteAverage,
	}

	updatedMovie, err := h.movieService.UpdateMovie(ctx, movie)
	if err != nil {
		handleMovieError(w, err)
		return
	}

	resp := requestresponse.MovieResponse{Data: updatedMovie}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Println("ошибка кодирования ответа:", err)
	}
}

// DeleteMovie godoc
// @Summary Удаление фильма из watchlist
// @Tags Movies
// @Produce json
// @Param uuid path string true "UUID фильма"
// @Param Authorization header string true "Bearer access токен" default(Bearer <access_token>)
// @Success 200 "Фильм удалён"
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/movies/{uuid} [delete]
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	deleted, err := h.movieService.DeleteMovie(ctx, chi.URLParam(r, "uuid"))
	if err != nil {
		handleMovieError(w, err)
		return
	}

	if !deleted {
		util.HandleError(w, repository.ErrMovieNotFound.Error(), http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func queryInt(r *http.Request, name string, fallback int) int {
	value := r.URL.Query().Get(name)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func handleMovieError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrMovieNotFound):
		util.HandleError(w, repository.ErrMovieNotFound.Error(), http.StatusNotFound)
	// владелец из токена уже удалён из БД
	case errors.Is(err, repository.ErrUserNotFound):
		util.HandleError(w, security.ErrWrongCredentials.Error(), http.StatusUnauthorized)
	case errors.Is(err, service.ErrValidation):
		util.HandleError(w, err.Error(), http.StatusBadRequest)
	default:
		traceID := util.LogInternalError("внутренняя ошибка", err)
		util.HandleError(w, "внутренняя ошибка сервера, trace_id: "+traceID, http.StatusInternalServerError)
	}
}
