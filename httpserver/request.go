package httpserver

import (
	"moviecatalog/actor"
	"moviecatalog/genre"
	"moviecatalog/movie"
)

type ReferenceRequest struct {
	ID int `json:"id" validate:"gt=0"`
}

// CreateMovieRequest carries references to existing genres and actors by id.
// A blank title passes validation here and is rejected by the movie usecase.
type CreateMovieRequest struct {
	Title  string             `json:"title" validate:"max=255"`
	Genres []ReferenceRequest `json:"genres" validate:"omitempty,max=50,dive"`
	Actors []ReferenceRequest `json:"actors" validate:"omitempty,max=500,dive"`
}

func (r CreateMovieRequest) ToMovie() movie.Movie {
	m := movie.Movie{Title: r.Title}
	if len(r.Genres) > 0 {
		m.Genres = make([]genre.Genre, len(r.Genres))
		for i, g := range r.Genres {
			m.Genres[i] = genre.Genre{ID: g.ID}
		}
	}
	if len(r.Actors) > 0 {
		m.Actors = make([]actor.Actor, len(r.Actors))
		for i, a := range r.Actors {
			m.Actors[i] = actor.Actor{ID: a.ID}
		}
	}
	return m
}
