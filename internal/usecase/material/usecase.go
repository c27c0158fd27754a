package material

import (
	"context"
	"strconv"

	materialDomain "bicocont/internal/domain/material"
	"bicocont/internal/domain/uow"
	"bicocont/internal/infrastructure/cache"
	"bicocont/internal/infrastructure/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Cache memoizes the full materials table until Invalidate. Every
// Invalidate starts a new generation, and SetIfGeneration refuses to store a
// table loaded under an older one.
type Cache interface {
	Get(ctx context.Context) ([]materialDomain.Material, bool, error)
	Generation(ctx context.Context) (uint64, error)
	SetIfGeneration(ctx context.Context, gen uint64, items []materialDomain.Material) (bool, error)
	Invalidate(ctx context.Context) error
}

type Usecase struct {
	repo    materialDomain.Repository
	uow     uow.UnitOfWork
	cache   Cache
	metrics *metrics.Metrics
	log     *zap.Logger

	loads singleflight.Group
}

// NewUsecase wires the material flows. A nil cache falls back to an
// in-process memo; nil metrics and logger are allowed.
func NewUsecase(repo materialDomain.Repository, tx uow.UnitOfWork, c Cache, m *metrics.Metrics, log *zap.Logger) *Usecase {
	if c == nil {
		c = cache.NewMemory()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: repo, uow: tx, cache: c, metrics: m, log: log}
}

// materials returns the memoized table, loading it from the repository on a miss.
func (u *Usecase) materials(ctx context.Context) ([]materialDomain.Material, error) {
	items, ok, err := u.cache.Get(ctx)
	if err != nil {
		u.log.Warn("materials cache read failed, reading store", zap.Error(err))
	}
	if ok {
		u.metrics.CacheLookup(true)
		return items, nil
	}
	u.metrics.CacheLookup(false)

	// the generation is read before the store so a load that races an
	// import can only be cached if no import finished in between
	gen, err := u.cache.Generation(ctx)
	cacheable := err == nil
	if err != nil {
		u.log.Warn("materials cache generation unreadable, not caching", zap.Error(err))
	}
	v, err, _ := u.loads.Do("materials:"+strconv.FormatUint(gen, 10), func() (any, error) {
		items, err := u.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		if !cacheable {
			return items, nil
		}
		stored, err := u.cache.SetIfGeneration(ctx, gen, items)
		switch {
		case err != nil:
			u.log.Warn("materials cache write failed", zap.Error(err))
		case !stored:
			u.log.Debug("materials load superseded by an import, not cached", zap.Uint64("generation", gen))
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]materialDomain.Material), nil
}
