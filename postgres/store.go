package postgres

import (
	"moviecatalog/actor"
	"moviecatalog/genre"
	"moviecatalog/movie"

	"gorm.io/gorm"
)

var (
	_ genre.Repository = (*Store)(nil)
	_ actor.Repository = (*Store)(nil)
	_ actor.Replica    = (*Store)(nil)
	_ movie.Repository = (*Store)(nil)
)

// Store groups the catalog repositories sharing one connection.
type Store struct {
	*GenreRepository
	*ActorRepository
	*MovieRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		GenreRepository: NewGenreRepository(db),
		ActorRepository: NewActorRepository(db),
		MovieRepository: NewMovieRepository(db),
	}
}
