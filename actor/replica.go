package actor

import "context"

// Replica stores a local copy of actors so movie associations can reference
// them when the actor catalog lives elsewhere.
type Replica interface {
	UpsertActors(ctx context.Context, actors []Actor) error
}

// ReplicatingRepository resolves actors from an external catalog and copies
// every actor it finds into the local replica before reporting it as existing.
type ReplicatingRepository struct {
	source  Repository
	replica Replica
}

func NewReplicatingRepository(source Repository, replica Replica) *ReplicatingRepository {
	return &ReplicatingRepository{
		source:  source,
		replica: replica,
	}
}

func (r *ReplicatingRepository) ExistingActorIDs(ctx context.Context, ids []int) ([]int, error) {
	actors, err := r.ActorsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return IDs(actors), nil
}

func (r *ReplicatingRepository) ActorsByIDs(ctx context.Context, ids []int) ([]Actor, error) {
	actors, err := r.source.ActorsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(actors) == 0 {
		return actors, nil
	}
	if err := r.replica.UpsertActors(ctx, actors); err != nil {
		return nil, err
	}
	return actors, nil
}
