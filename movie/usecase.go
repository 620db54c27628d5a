package movie

import (
	"context"
	"moviecatalog/actor"
	"strings"
)

type Service interface {
	ListMovies(ctx context.Context) ([]Movie, error)
	SearchMovies(ctx context.Context, f Filter) ([]Movie, error)
	GetMovie(ctx context.Context, id int, opts GetOptions) (Movie, error)
	CreateMovie(ctx context.Context, m Movie) (Movie, error)
	DeleteMovie(ctx context.Context, id int, cascadeActors bool) error
}

type Repository interface {
	AllMovies(ctx context.Context) ([]Movie, error)
	SearchMovies(ctx context.Context, f Filter) ([]Movie, error)
	// GetMovie returns ErrMovieNotFound when no movie has the id.
	GetMovie(ctx context.Context, id int, opts GetOptions) (Movie, error)
	// CreateMovie assigns the id and stores the movie with its genre and
	// actor associations atomically. The result has every relation loaded.
	CreateMovie(ctx context.Context, m Movie) (Movie, error)
	// DeleteMovie removes the movie and its genre associations atomically.
	// Actor associations are removed when cascadeActors is set, otherwise
	// their presence fails the call with ErrMovieHasActors.
	DeleteMovie(ctx context.Context, id int, cascadeActors bool) error
}

type Usecase struct {
	r      Repository
	actors actor.Service
}

func NewUsecase(r Repository, actors actor.Service) *Usecase {
	return &Usecase{
		r:      r,
		actors: actors,
	}
}

func (uc *Usecase) ListMovies(ctx context.Context) ([]Movie, error) {
	return uc.r.AllMovies(ctx)
}

func (uc *Usecase) SearchMovies(ctx context.Context, f Filter) ([]Movie, error) {
	f = f.Normalize()
	if f.IsEmpty() {
		return uc.r.AllMovies(ctx)
	}
	return uc.r.SearchMovies(ctx, f)
}

func (uc *Usecase) GetMovie(ctx context.Context, id int, opts GetOptions) (Movie, error) {
	if id <= 0 {
		return Movie{}, ErrMovieNotFound
	}
	return uc.r.GetMovie(ctx, id, opts)
}

func (uc *Usecase) CreateMovie(ctx context.Context, m Movie) (Movie, error) {
	if err := m.Validate(); err != nil {
		return Movie{}, err
	}
	if err := uc.actors.ValidateExist(ctx, m.ActorIDs()); err != nil {
		return Movie{}, err
	}

	m.ID = 0
	m.Title = strings.TrimSpace(m.Title)
	return uc.r.CreateMovie(ctx, m)
}

func (uc *Usecase) DeleteMovie(ctx context.Context, id int, cascadeActors bool) error {
	if id <= 0 {
		return ErrMovieNotFound
	}
	return uc.r.DeleteMovie(ctx, id, cascadeActors)
}
