package uow

import (
	"context"

	"bicocont/internal/domain/count"
	"bicocont/internal/domain/material"
)

type Repos struct {
	Materials material.Repository
	Counts    count.Repository
}

type UnitOfWork interface {
	// WithinTx commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
