package count

import "context"

// Repository has no update or delete: counts are immutable once written.
type Repository interface {
	Create(ctx context.Context, c *Count) error

	// Find applies f as an AND of its non-empty fields, newest first, capped at f.Limit.
	Find(ctx context.Context, f Filter) ([]Count, error)
}
