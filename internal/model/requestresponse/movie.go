package requestresponse

import "watchlist-server/internal/model"

// CreateMovieRequest : тело запроса на добавление фильма в watchlist
type CreateMovieRequest struct {
	Name         string  `json:"name" example:"Heat"`
	LetterboxdID int     `json:"letterboxd_id" example:"51568"`
	URL          string  `json:"url" example:"https://letterboxd.com/film/heat-1995/"`
	TmdbID       int     `json:"tmdb_id" example:"949"`
	Runtime      int     `json:"runtime" example:"170"`
	PosterPath   string  `json:"poster_path" example:"/umSVjVdbVwtx5ryCA2QXL44Durm.jpg"`
	VoteAverage  float64 `json:"vote_average" example:"7.9"`
}

// MovieResponse : успешный ответ с данными фильма
type MovieResponse struct {
	Data *model.Movie `json:"data"`
}

// PaginatedMoviesResponse : страница списка фильмов
type PaginatedMoviesResponse struct {
	Page    int           `json:"page" example:"1"`
	PerPage int           `json:"per_page" example:"20"`
	Total   int           `json:"total" example:"135"`
	Data    []model.Movie `json:"data"`
}
