package sqlstore

import (
	"context"

	countDomain "bicocont/internal/domain/count"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CountRepository struct{ db *gorm.DB }

func NewCountRepository(db *gorm.DB) *CountRepository { return &CountRepository{db: db} }

func (r *CountRepository) Create(ctx context.Context, c *countDomain.Count) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CountRepository) Find(ctx context.Context, f countDomain.Filter) ([]countDomain.Count, error) {
	// "timestamp" is a keyword in some dialects, so it goes through clause.Column for quoting.
	ts := clause.Column{Name: "timestamp"}

	q := r.db.WithContext(ctx).Model(&countDomain.Count{})
	if f.Code != "" {
		q = q.Where("code = ?", f.Code)
	}
	if f.Deposit != "" {
		q = q.Where("deposit = ?", f.Deposit)
	}
	if f.DateFrom != "" {
		q = q.Where(clause.Gte{Column: ts, Value: f.DateFrom})
	}
	if f.DateTo != "" {
		q = q.Where(clause.Lte{Column: ts, Value: f.DateTo})
	}
	q = q.Order(clause.OrderByColumn{Column: ts, Desc: true})
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var out []countDomain.Count
	res := q.Find(&out)
	return out, res.Error
}
