package postgres

import (
	"context"
	"errors"
	"moviecatalog/actor"
	"moviecatalog/genre"
	"moviecatalog/movie"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MovieModel represents the database model for movies
type MovieModel struct {
	ID    int    `gorm:"primaryKey"`
	Title string `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

// MovieGenreModel links a movie to a genre. Position keeps the order in
// which genres were attached.
type MovieGenreModel struct {
	MovieID  int `gorm:"primaryKey"`
	GenreID  int `gorm:"primaryKey"`
	Position int `gorm:"not null"`
}

func (MovieGenreModel) TableName() string {
	return "movie_genres"
}

type MovieActorModel struct {
	MovieID int `gorm:"primaryKey"`
	ActorID int `gorm:"primaryKey"`
}

func (MovieActorModel) TableName() string {
	return "movie_actors"
}

// MovieRepository implements movie.Repository interface
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) AllMovies(ctx context.Context) ([]movie.Movie, error) {
	var models []MovieModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainMovies(models), nil
}

func (r *MovieRepository) SearchMovies(ctx context.Context, f movie.Filter) ([]movie.Movie, error) {
	f = f.Normalize()
	q := r.db.WithContext(ctx).Model(&MovieModel{})

	if len(f.Genres) > 0 {
		names := make([]string, len(f.Genres))
		for i, name := range f.Genres {
			names[i] = strings.ToLower(name)
		}
		q = q.Where(`EXISTS (
SELECT 1
FROM movie_genres mg
JOIN genres g ON g.id = mg.genre_id
WHERE mg.movie_id = movies.id AND lower(g.name) IN ?)`, names)
	}
	if f.Query != "" {
		q = q.Where("strpos(lower(movies.title), lower(?)) > 0", f.Query)
	}

	var models []MovieModel
	if err := q.Order("movies.id").Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainMovies(models), nil
}

func (r *MovieRepository) GetMovie(ctx context.Context, id int, opts movie.GetOptions) (movie.Movie, error) {
	var model MovieModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return movie.Movie{}, movie.ErrMovieNotFound
		}
		return movie.Movie{}, err
	}

	return loadRelations(r.db.WithContext(ctx), model, opts)
}

// CreateMovie inserts the movie and its associations in one transaction.
func (r *MovieRepository) CreateMovie(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	var created movie.Movie
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := MovieModel{Title: m.Title}
		if err := tx.Create(&model).Error; err != nil {
			return err
		}

		if genreIDs := m.GenreIDs(); len(genreIDs) > 0 {
			links := make([]MovieGenreModel, len(genreIDs))
			for i, id := range genreIDs {
				links[i] = MovieGenreModel{MovieID: model.ID, GenreID: id, Position: i}
			}
			if err := tx.Create(&links).Error; err != nil {
				if isForeignKeyViolation(err) {
					return movie.ErrInvalidGenreIDs
				}
				return err
			}
		}

		if actorIDs := m.ActorIDs(); len(actorIDs) > 0 {
			links := make([]MovieActorModel, len(actorIDs))
			for i, id := range actorIDs {
				links[i] = MovieActorModel{MovieID: model.ID, ActorID: id}
			}
			if err := tx.Create(&links).Error; err != nil {
				if isForeignKeyViolation(err) {
					return actor.ErrInvalidActorIDs
				}
				return err
			}
		}

		var err error
		created, err = loadRelations(tx, model, movie.GetOptions{IncludeGenres: true, IncludeActors: true})
		return err
	})
	if err != nil {
		return movie.Movie{}, err
	}
	return created, nil
}

// DeleteMovie removes the movie and its associations in one transaction.
func (r *MovieRepository) DeleteMovie(ctx context.Context, id int, cascadeActors bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model MovieModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return movie.ErrMovieNotFound
			}
			return err
		}

		if cascadeActors {
			if err := tx.Where("movie_id = ?", id).Delete(&MovieActorModel{}).Error; err != nil {
				return err
			}
		} else {
			var count int64
			if err := tx.Model(&MovieActorModel{}).Where("movie_id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return movie.ErrMovieHasActors
			}
		}

		if err := tx.Where("movie_id = ?", id).Delete(&MovieGenreModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&MovieModel{}, id).Error
	})
}

func loadRelations(db *gorm.DB, model MovieModel, opts movie.GetOptions) (movie.Movie, error) {
	m := movie.Movie{ID: model.ID, Title: model.Title}

	if opts.IncludeGenres {
		var genres []GenreModel
		err := db.Model(&GenreModel{}).
			Select("genres.id, genres.name").
			Joins("JOIN movie_genres ON movie_genres.genre_id = genres.id").
			Where("movie_genres.movie_id = ?", model.ID).
			Order("movie_genres.position").
			Find(&genres).Error
		if err != nil {
			return movie.Movie{}, err
		}
		m.Genres = make([]genre.Genre, len(genres))
		for i, g := range genres {
			m.Genres[i] = g.toDomain()
		}
	}

	if opts.IncludeActors {
		var actors []ActorModel
		err := db.Model(&ActorModel{}).
			Select("actors.id, actors.name").
			Joins("JOIN movie_actors ON movie_actors.actor_id = actors.id").
			Where("movie_actors.movie_id = ?", model.ID).
			Order("actors.id").
			Find(&actors).Error
		if err != nil {
			return movie.Movie{}, err
		}
		m.Actors = make([]actor.Actor, len(actors))
		for i, a := range actors {
			m.Actors[i] = a.toDomain()
		}
	}

	return m, nil
}

func toDomainMovies(models []MovieModel) []movie.Movie {
	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = movie.Movie{ID: model.ID, Title: model.Title}
	}
	return movies
}
