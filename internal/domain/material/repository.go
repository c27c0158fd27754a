package material

import "context"

type Repository interface {
	// List returns every material in storage order.
	List(ctx context.Context) ([]Material, error)

	// DeleteAll empties the table. Only the importer calls it, inside a tx.
	DeleteAll(ctx context.Context) error

	CreateBatch(ctx context.Context, ms []Material) error
}
