package movie

import (
	"moviecatalog/actor"
	"moviecatalog/errs"
	"moviecatalog/genre"
	"strings"
)

// DefaultCascadeActors is used when a delete request does not say otherwise.
const DefaultCascadeActors = true

var (
	ErrInvalidMovie    = errs.Errorf(errs.EINVALID, "invalid movie data")
	ErrInvalidGenreIDs = errs.Errorf(errs.EINVALID, "invalid genre ids")
	ErrMovieNotFound   = errs.Errorf(errs.ENOTFOUND, "movie not found")
	ErrMovieHasActors  = errs.Errorf(errs.ECONFLICT, "movie still has actor associations")
)

type Movie struct {
	ID     int           `json:"id"`
	Title  string        `json:"title"`
	Genres []genre.Genre `json:"genres,omitempty"`
	Actors []actor.Actor `json:"actors,omitempty"`
}

func (m Movie) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return ErrInvalidMovie
	}
	return nil
}

func (m Movie) GenreIDs() []int {
	ids := make([]int, 0, len(m.Genres))
	seen := make(map[int]struct{}, len(m.Genres))
	for _, g := range m.Genres {
		if _, ok := seen[g.ID]; ok {
			continue
		}
		seen[g.ID] = struct{}{}
		ids = append(ids, g.ID)
	}
	return ids
}

func (m Movie) ActorIDs() []int {
	return actor.UniqueIDs(actor.IDs(m.Actors))
}

// GetOptions selects which relations are loaded with a movie.
// Unset relations are left nil.
type GetOptions struct {
	IncludeGenres bool
	IncludeActors bool
}
