package repository

import (
	"context"
	"database/sql"
	"errors"

	"watchlist-server/config"
	"watchlist-server/internal/model"
	"watchlist-server/internal/util"
)

var ErrMovieNotFound = errors.New("фильм не найден")

type MovieRepository struct {
	*config.Database
}

func NewMovieRepository(database *config.Database) *MovieRepository {
	return &MovieRepository{database}
}

// CreateMovie : добавляет фильм в watchlist
func (r *MovieRepository) CreateMovie(ctx context.Context, movie *model.Movie) (*model.Movie, error) {
	query := `
	INSERT INTO movies (uuid, name, letterboxd_id, url, tmdb_id, username, runtime, poster_path, vote_average)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING uuid, name, letterboxd_id, url, tmdb_id, username, runtime, poster_path, vote_average, created_at, updated_at
	`

	createdMovie := &model.Movie{}
	err := r.DB.QueryRowxContext(ctx, query,
		movie.UUID,
		movie.Name,
		movie.LetterboxdID,
		movie.URL,
		movie.TmdbID,
		movie.Username,
		movie.Runtime,
		movie.PosterPath,
		movie.VoteAverage,
	).StructScan(createdMovie)

	if err != nil {
		return nil, util.LogError("[MovieRepo] ошибка вставки данных в БД", err)
	}

	return createdMovie, nil
}

// FindByUUID : ищет фильм по UUID
func (r *MovieRepository) FindByUUID(ctx context.Context, uuid string) (*model.Movie, error) {
	query := `SELECT uuid, name, letterboxd_id, url, tmdb_id, username, runtime, poster_path, vote_average, created_at, updated_at FROM movies WHERE uuid = $1`

	var movie model.Movie
	err := r.DB.GetContext(ctx, &movie, query, uuid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, util.LogError("[MovieRepo] не удалось найти фильм", err)
	}

	return &movie, nil
}

// ListPaginated : страница фильмов пользователя с фильтром по длительности,
// отсортированная по убыванию рейтинга
func (r *MovieRepository) ListPaginated(ctx context.Context, username string, maxRuntime int, limit, offset int) ([]model.Movie, error) {
	query := `
	SELECT uuid, name, letterboxd_id, url, tmdb_id, username, runtime, poster_path, vote_average, created_at, updated_at
	FROM movies
	WHERE runtime <= $1 AND username = $2
	ORDER BY vote_average DESC
	LIMIT $3 OFFSET $4
	`

	movies := []model.Movie{}
	if err := r.DB.SelectContext(ctx, &movies, query, maxRuntime, username, limit, offset); err != nil {
		return nil, util.LogError("[MovieRepo] не удалось получить список фильмов", err)
	}

	return movies, nil
}

// CountMovies : общее число фильмов под тем же фильтром, что и ListPaginated
func (r *MovieRepository) CountMovies(ctx context.Context, username string, maxRuntime int) (int, error) {
	query := `SELECT COUNT(*) FROM movies WHERE runtime <= $1 AND username = $2`

	var total int
	if err := r.DB.GetContext(ctx, &total, query, maxRuntime, username); err != nil {
		return 0, util.LogError("[MovieRepo] не удалось посчитать фильмы", err)
	}

	return total, nil
}

// UpdateMovie : обновляет данные фильма
func (r *MovieRepository) UpdateMovie(ctx context.Context, movie *model.Movie) (*model.Movie, error) {
	query := `
	UPDATE movies
	SET name = $2, letterboxd_id = $3, url = $4, tmdb_id = $5, runtime = $6, poster_path = $7, vote_average = $8, updated_at = now()
	WHERE uuid = $1
	RETURNING uuid, name, letterboxd_id, url, tmdb_id, username, runtime, poster_path, vote_average, created_at, updated_at
	`

	updatedMovie := &model.Movie{}
	err := r.DB.QueryRowxContext(ctx, query,
		movie.UUID,
		movie.Name,
		movie.LetterboxdID,
		movie.URL,
		movie.TmdbID,
		movie.Runtime,
		movie.PosterPath,
		movie.VoteAverage,
	).StructScan(updatedMovie)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, util.LogError("[MovieRepo] не удалось обновить фильм", err)
	}

	return updatedMovie, nil
}

// DeleteMovie : удаляет фильм по UUID, возвращает признак удаления
func (r *MovieRepository) DeleteMovie(ctx context.Context, uuid string) (bool, error) {
	query := `DELETE FROM movies WHERE uuid = $1`

	result, err := r.DB.ExecContext(ctx, query, uuid)
	if err != nil {
		return false, util.LogError("[MovieRepo] не удалось удалить фильм", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, util.LogError("[MovieRepo] не удалось проверить, удален ли фильм", err)
	}

	return rowsAffected == 1, nil
}
