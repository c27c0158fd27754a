package materialmock

import (
	"context"

	domain "bicocont/internal/domain/material"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset functions behave like an empty table that accepts writes.
type Repo struct {
	ListFn        func(ctx context.Context) ([]domain.Material, error)
	DeleteAllFn   func(ctx context.Context) error
	CreateBatchFn func(ctx context.Context, ms []domain.Material) error

	ListCalls int
}

func (m *Repo) List(ctx context.Context) ([]domain.Material, error) {
	m.ListCalls++
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *Repo) DeleteAll(ctx context.Context) error {
	if m.DeleteAllFn != nil {
		return m.DeleteAllFn(ctx)
	}
	return nil
}

func (m *Repo) CreateBatch(ctx context.Context, ms []domain.Material) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, ms)
	}
	return nil
}

// Static returns a Repo whose List always yields items.
func Static(items ...domain.Material) *Repo {
	return &Repo{ListFn: func(context.Context) ([]domain.Material, error) { return items, nil }}
}
