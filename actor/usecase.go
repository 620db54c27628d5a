package actor

import "context"

type Service interface {
	ValidateExist(ctx context.Context, ids []int) error
}

type Repository interface {
	// ExistingActorIDs returns the subset of ids that exist, in any order.
	ExistingActorIDs(ctx context.Context, ids []int) ([]int, error)
	ActorsByIDs(ctx context.Context, ids []int) ([]Actor, error)
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

// ValidateExist checks all ids in one pass and reports every missing one.
func (uc *Usecase) ValidateExist(ctx context.Context, ids []int) error {
	ids = UniqueIDs(ids)
	if len(ids) == 0 {
		return nil
	}

	existing, err := uc.r.ExistingActorIDs(ctx, ids)
	if err != nil {
		return err
	}

	found := make(map[int]struct{}, len(existing))
	for _, id := range existing {
		found[id] = struct{}{}
	}

	var missing []int
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return NewMissingError(missing)
	}
	return nil
}
