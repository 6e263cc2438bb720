package service

import (
	"context"
	"fmt"

	"watchlist-server/internal/model"
	"watchlist-server/internal/ports"

	"github.com/google/uuid"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
	// фильмы длиннее суток в watchlist не встречаются,
	// значение служит фильтром "без ограничения"
	defaultMaxRuntime = 1440
)

// MovieService ведёт watchlist. Владелец операций задаётся uuid
// пользователя из access токена и разрешается в username,
// под которым фильмы хранятся в БД
type MovieService struct {
	movieRepository ports.MovieRepository
	userRepository  ports.UserRepository
}

func NewMovieService(movieRepository ports.MovieRepository, userRepository ports.UserRepository) *MovieService {
	return &MovieService{
		movieRepository: movieRepository,
		userRepository:  userRepository,
	}
}

func (s *MovieService) CreateMovie(ctx context.Context, ownerUUID string, movie *model.Movie) (*model.Movie, error) {
	if movie.Name == "" {
		return nil, fmt.Errorf("[MovieService] название фильма обязательно: %w", ErrValidation)
	}

	owner, err := s.userRepository.FindByUUID(ctx, ownerUUID)
	if err != nil {
		return nil, fmt.Errorf("[MovieService] владелец watchlist не найден: %w", err)
	}

	movie.UUID = uuid.New().String()
	movie.Username = owner.Username

	createdMovie, err := s.movieRepository.CreateMovie(ctx, movie)
	if err != nil {
		return nil, fmt.Errorf("[MovieService] не удалось добавить фильм: %w", err)
	}

	return createdMovie, nil
}

func (s *MovieService) GetMovie(ctx context.Context, uuid string) (*model.Movie, error) {
	return s.movieRepository.FindByUUID(ctx, uuid)
}

// ListMovies возвращает страницу фильмов пользователя и общее число записей
// под фильтром. Номера страниц начинаются с 1
func (s *MovieService) ListMovies(ctx context.Context, ownerUUID string, maxRuntime, page, perPage int) ([]model.Movie, int, error) {
	owner, err := s.userRepository.FindByUUID(ctx, ownerUUID)
	if err != nil {
		return nil, 0, fmt.Errorf("[MovieService] владелец watchlist не найден: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	if maxRuntime < 1 {
		maxRuntime = defaultMaxRuntime
	}

	offset := (page - 1) * perPage

	movies, err := s.movieRepository.ListPaginated(ctx, owner.Username, maxRuntime, perPage, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("[MovieService] не удалось получить страницу фильмов: %w", err)
	}

	total, err := s.movieRepository.CountMovies(ctx, owner.Username, maxRuntime)
	if err != nil {
		return nil, 0, fmt.Errorf("[MovieService] не удалось посчитать фильмы: %w", err)
	}

	return movies, total, nil
}

func (s *MovieService) UpdateMovie(ctx context.Context, movie *model.Movie) (*model.Movie, error) {
	return s.movieRepository.UpdateMovie(ctx, movie)
}

func (s *MovieService) DeleteMovie(ctx context.Context, uuid string) (bool, error) {
	return s.movieRepository.DeleteMovie(ctx, uuid)
}
