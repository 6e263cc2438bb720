package ports

import (
	"context"

	"watchlist-server/internal/model"
)

type MovieRepository interface {
	CreateMovie(ctx context.Context, movie *model.Movie) (*model.Movie, error)
	FindByUUID(ctx context.Context, uuid string) (*model.Movie, error)
	ListPaginated(ctx context.Context, username string, maxRuntime int, limit, offset int) ([]model.Movie, error)
	CountMovies(ctx context.Context, username string, maxRuntime int) (int, error)
	UpdateMovie(ctx context.Context, movie *model.Movie) (*model.Movie, error)
	DeleteMovie(ctx context.Context, uuid string) (bool, error)
}

type MovieService interface {
	CreateMovie(ctx context.Context, ownerUUID string, movie *model.Movie) (*model.Movie, error)
	GetMovie(ctx context.Context, uuid string) (*model.Movie, error)
	ListMovies(ctx context.Context, ownerUUID string, maxRuntime, page, perPage int) ([]model.Movie, int, error)
	UpdateMovie(ctx context.Context, movie *model.Movie) (*model.Movie, error)
	DeleteMovie(ctx context.Context, uuid string) (bool, error)
}
