package model

import "time"

type Movie struct {
	UUID         string    `db:"uuid" json:"uuid"`
	Name         string    `db:"name" json:"name"`
	LetterboxdID int       `db:"letterboxd_id" json:"letterboxd_id"`
	URL          string    `db:"url" json:"url"`
	TmdbID       int       `db:"tmdb_id" json:"tmdb_id"`
	Username     string    `db:"username" json:"username"`
	Runtime      int       `db:"runtime" json:"runtime"`
	PosterPath   string    `db:"poster_path" json:"poster_path"`
	VoteAverage  float64   `db:"vote_average" json:"vote_average"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
