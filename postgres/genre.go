package postgres

import (
	"context"
	"moviecatalog/genre"

	"gorm.io/gorm"
)

// GenreModel represents the database model for genres
type GenreModel struct {
	ID   int    `gorm:"primaryKey"`
	Name string `gorm:"not null;uniqueIndex"`
}

// TableName specifies the table name for GORM
func (GenreModel) TableName() string {
	return "genres"
}

func (m GenreModel) toDomain() genre.Genre {
	return genre.Genre{ID: m.ID, Name: m.Name}
}

// GenreRepository implements genre.Repository interface
type GenreRepository struct {
	db *gorm.DB
}

// NewGenreRepository creates a new genre repository
func NewGenreRepository(db *gorm.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

func (r *GenreRepository) AllGenres(ctx context.Context) ([]genre.Genre, error) {
	var models []GenreModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	genres := make([]genre.Genre, len(models))
	for i, model := range models {
		genres[i] = model.toDomain()
	}
	return genres, nil
}
