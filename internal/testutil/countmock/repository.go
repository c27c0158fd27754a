package countmock

import (
	"context"

	domain "bicocont/internal/domain/count"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn func(ctx context.Context, c *domain.Count) error
	FindFn   func(ctx context.Context, f domain.Filter) ([]domain.Count, error)
}

func (m *Repo) Create(ctx context.Context, c *domain.Count) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) Find(ctx context.Context, f domain.Filter) ([]domain.Count, error) {
	if m.FindFn != nil {
		return m.FindFn(ctx, f)
	}
	return nil, nil
}
