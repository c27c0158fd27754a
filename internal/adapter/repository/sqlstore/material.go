package sqlstore

import (
	"context"

	materialDomain "bicocont/internal/domain/material"

	"gorm.io/gorm"
)

// insertBatchSize keeps each INSERT well under SQLite's bound-parameter limit.
const insertBatchSize = 200

type MaterialRepository struct{ db *gorm.DB }

func NewMaterialRepository(db *gorm.DB) *MaterialRepository { return &MaterialRepository{db: db} }

func (r *MaterialRepository) List(ctx context.Context) ([]materialDomain.Material, error) {
	var out []materialDomain.Material
	res := r.db.WithContext(ctx).Find(&out)
	return out, res.Error
}

func (r *MaterialRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&materialDomain.Material{}).Error
}

func (r *MaterialRepository) CreateBatch(ctx context.Context, ms []materialDomain.Material) error {
	if len(ms) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(ms, insertBatchSize).Error
}
