package genre

import "context"

type Service interface {
	ListGenres(ctx context.Context) ([]Genre, error)
}

type Repository interface {
	AllGenres(ctx context.Context) ([]Genre, error)
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) ListGenres(ctx context.Context) ([]Genre, error) {
	return uc.r.AllGenres(ctx)
}
