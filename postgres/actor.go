package postgres

import (
	"context"
	"moviecatalog/actor"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ActorModel represents the database model for actors. Actors are owned by
// the actor catalog; this service only reads or replicates them.
type ActorModel struct {
	ID   int    `gorm:"primaryKey"`
	Name string `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ActorModel) TableName() string {
	return "actors"
}

func (m ActorModel) toDomain() actor.Actor {
	return actor.Actor{ID: m.ID, Name: m.Name}
}

// ActorRepository implements actor.Repository interface
type ActorRepository struct {
	db *gorm.DB
}

// NewActorRepository creates a new actor repository
func NewActorRepository(db *gorm.DB) *ActorRepository {
	return &ActorRepository{db: db}
}

func (r *ActorRepository) ExistingActorIDs(ctx context.Context, ids []int) ([]int, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var existing []int
	err := r.db.WithContext(ctx).
		Model(&ActorModel{}).
		Where("id IN ?", ids).
		Order("id").
		Pluck("id", &existing).Error
	if err != nil {
		return nil, err
	}
	return existing, nil
}

func (r *ActorRepository) ActorsByIDs(ctx context.Context, ids []int) ([]actor.Actor, error) {
	if len(ids) == 0 {
		return []actor.Actor{}, nil
	}

	var models []ActorModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	actors := make([]actor.Actor, len(models))
	for i, model := range models {
		actors[i] = model.toDomain()
	}
	return actors, nil
}

// UpsertActors replicates actors resolved from an external catalog so that
// movie_actors rows can reference them.
func (r *ActorRepository) UpsertActors(ctx context.Context, actors []actor.Actor) error {
	if len(actors) == 0 {
		return nil
	}

	models := make([]ActorModel, len(actors))
	for i, a := range actors {
		models[i] = ActorModel{ID: a.ID, Name: a.Name}
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(&models).Error
}
