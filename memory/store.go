// Package memory provides a mutex-guarded in-memory store implementing the
// genre, actor and movie repositories. It backs unit tests and local runs
// without a database.
package memory

import (
	"context"
	"moviecatalog/actor"
	"moviecatalog/genre"
	"moviecatalog/movie"
	"sort"
	"strings"
	"sync"
)

var (
	_ genre.Repository = (*Store)(nil)
	_ actor.Repository = (*Store)(nil)
	_ movie.Repository = (*Store)(nil)
	_ actor.Replica    = (*Store)(nil)
)

type movieRecord struct {
	title    string
	genreIDs []int
	actorIDs []int
}

type Store struct {
	mu     sync.RWMutex
	genres map[int]genre.Genre
	actors map[int]actor.Actor
	movies map[int]movieRecord

	nextGenreID int
	nextActorID int
	nextMovieID int
}

func NewStore() *Store {
	return &Store{
		genres:      make(map[int]genre.Genre),
		actors:      make(map[int]actor.Actor),
		movies:      make(map[int]movieRecord),
		nextGenreID: 1,
		nextActorID: 1,
		nextMovieID: 1,
	}
}

// AddGenre seeds a genre and returns it with its assigned id.
func (s *Store) AddGenre(name string) genre.Genre {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := genre.Genre{ID: s.nextGenreID, Name: strings.TrimSpace(name)}
	s.genres[g.ID] = g
	s.nextGenreID++
	return g
}

// AddActor seeds an actor and returns it with its assigned id.
func (s *Store) AddActor(name string) actor.Actor {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := actor.Actor{ID: s.nextActorID, Name: strings.TrimSpace(name)}
	s.actors[a.ID] = a
	s.nextActorID++
	return a
}

// UpsertActors stores actors under their own ids, replacing existing names.
func (s *Store) UpsertActors(_ context.Context, actors []actor.Actor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range actors {
		s.actors[a.ID] = a
		if a.ID >= s.nextActorID {
			s.nextActorID = a.ID + 1
		}
	}
	return nil
}

func (s *Store) AllGenres(_ context.Context) ([]genre.Genre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	genres := make([]genre.Genre, 0, len(s.genres))
	for _, id := range sortedKeys(s.genres) {
		genres = append(genres, s.genres[id])
	}
	return genres, nil
}

func (s *Store) ExistingActorIDs(_ context.Context, ids []int) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var existing []int
	for _, id := range actor.UniqueIDs(ids) {
		if _, ok := s.actors[id]; ok {
			existing = append(existing, id)
		}
	}
	return existing, nil
}

func (s *Store) ActorsByIDs(_ context.Context, ids []int) ([]actor.Actor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.actorsByIDs(ids), nil
}

func (s *Store) AllMovies(_ context.Context) ([]movie.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	movies := make([]movie.Movie, 0, len(s.movies))
	for _, id := range sortedKeys(s.movies) {
		movies = append(movies, movie.Movie{ID: id, Title: s.movies[id].title})
	}
	return movies, nil
}

func (s *Store) SearchMovies(_ context.Context, f movie.Filter) ([]movie.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	movies := []movie.Movie{}
	for _, id := range sortedKeys(s.movies) {
		rec := s.movies[id]
		candidate := movie.Movie{ID: id, Title: rec.title, Genres: s.genresByIDs(rec.genreIDs)}
		if f.Match(candidate) {
			movies = append(movies, movie.Movie{ID: id, Title: rec.title})
		}
	}
	return movies, nil
}

func (s *Store) GetMovie(_ context.Context, id int, opts movie.GetOptions) (movie.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.movies[id]
	if !ok {
		return movie.Movie{}, movie.ErrMovieNotFound
	}
	return s.toMovie(id, rec, opts), nil
}

func (s *Store) CreateMovie(_ context.Context, m movie.Movie) (movie.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	genreIDs := m.GenreIDs()
	for _, id := range genreIDs {
		if _, ok := s.genres[id]; !ok {
			return movie.Movie{}, movie.ErrInvalidGenreIDs
		}
	}

	actorIDs := m.ActorIDs()
	var missing []int
	for _, id := range actorIDs {
		if _, ok := s.actors[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return movie.Movie{}, actor.NewMissingError(missing)
	}

	id := s.nextMovieID
	s.nextMovieID++
	rec := movieRecord{
		title:    m.Title,
		genreIDs: genreIDs,
		actorIDs: actorIDs,
	}
	s.movies[id] = rec

	return s.toMovie(id, rec, movie.GetOptions{IncludeGenres: true, IncludeActors: true}), nil
}

func (s *Store) DeleteMovie(_ context.Context, id int, cascadeActors bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.movies[id]
	if !ok {
		return movie.ErrMovieNotFound
	}
	if !cascadeActors && len(rec.actorIDs) > 0 {
		return movie.ErrMovieHasActors
	}
	delete(s.movies, id)
	return nil
}

func (s *Store) toMovie(id int, rec movieRecord, opts movie.GetOptions) movie.Movie {
	m := movie.Movie{ID: id, Title: rec.title}
	if opts.IncludeGenres {
		m.Genres = s.genresByIDs(rec.genreIDs)
	}
	if opts.IncludeActors {
		m.Actors = s.actorsByIDs(rec.actorIDs)
	}
	return m
}

// genresByIDs keeps the order of ids.
func (s *Store) genresByIDs(ids []int) []genre.Genre {
	genres := make([]genre.Genre, 0, len(ids))
	for _, id := range ids {
		if g, ok := s.genres[id]; ok {
			genres = append(genres, g)
		}
	}
	return genres
}

// actorsByIDs returns actors ordered by id.
func (s *Store) actorsByIDs(ids []int) []actor.Actor {
	ids = actor.UniqueIDs(ids)
	sort.Ints(ids)
	actors := make([]actor.Actor, 0, len(ids))
	for _, id := range ids {
		if a, ok := s.actors[id]; ok {
			actors = append(actors, a)
		}
	}
	return actors
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
