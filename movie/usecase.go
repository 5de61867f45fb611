package movie

import "context"

type Service interface {
	ListMovies(ctx context.Context) ([]Movie, error)
	GetMovie(ctx context.Context, id int64) (*Movie, error)
	CreateMovie(ctx context.Context, m Movie) (Movie, error)
	UpdateMovie(ctx context.Context, id int64, patch Patch) (*Movie, error)
	DeleteMovie(ctx context.Context, id int64) error
}

// Repository is the record store for movies.
//
// FindByID returns nil and no error when the id is unknown. Save assigns a
// new identifier when m.ID is zero and overwrites the stored record
// otherwise. DeleteByID on an unknown id is a no-op.
type Repository interface {
	FindAll(ctx context.Context) ([]Movie, error)
	FindByID(ctx context.Context, id int64) (*Movie, error)
	Save(ctx context.Context, m Movie) (Movie, error)
	DeleteByID(ctx context.Context, id int64) error
}

type Option func(uc *Usecase)

// WithMergePolicy selects how UpdateMovie applies a patch.
func WithMergePolicy(p MergePolicy) Option {
	return func(uc *Usecase) {
		uc.policy = p
	}
}

type Usecase struct {
	r      Repository
	policy MergePolicy
}

func NewUsecase(r Repository, opts ...Option) *Usecase {
	uc := &Usecase{
		r:      r,
		policy: MergeOverwrite,
	}
	for _, fn := range opts {
		fn(uc)
	}
	return uc
}

func (uc *Usecase) ListMovies(ctx context.Context) ([]Movie, error) {
	movies, err := uc.r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if movies == nil {
		movies = []Movie{}
	}
	return movies, nil
}

func (uc *Usecase) GetMovie(ctx context.Context, id int64) (*Movie, error) {
	return uc.r.FindByID(ctx, id)
}

// CreateMovie stores m under a fresh identifier. Any id set by the caller
// is discarded.
func (uc *Usecase) CreateMovie(ctx context.Context, m Movie) (Movie, error) {
	m.ID = 0
	return uc.r.Save(ctx, m)
}

// UpdateMovie applies patch to the movie stored under id. It returns nil
// when no such movie exists and never creates one. The record is saved even
// if the patch changes nothing.
func (uc *Usecase) UpdateMovie(ctx context.Context, id int64, patch Patch) (*Movie, error) {
	existing, err := uc.r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	merged := uc.policy.Apply(*existing, patch)
	merged.ID = existing.ID

	saved, err := uc.r.Save(ctx, merged)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (uc *Usecase) DeleteMovie(ctx context.Context, id int64) error {
	return uc.r.DeleteByID(ctx, id)
}
