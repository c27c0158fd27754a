package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"

	materialDomain "bicocont/internal/domain/material"

	"github.com/redis/go-redis/v9"
)

const (
	// MaterialsKey holds the JSON-encoded materials table in Redis.
	MaterialsKey = "bicocont:materials"
	// MaterialsGenKey counts imports; an entry is only written under the
	// generation its loader started from.
	MaterialsGenKey = "bicocont:materials:gen"
)

// Memory memoizes the materials table for the process lifetime.
type Memory struct {
	mu     sync.RWMutex
	gen    uint64
	loaded bool
	items  []materialDomain.Material
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Get(_ context.Context) ([]materialDomain.Material, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.loaded {
		return nil, false, nil
	}
	return m.items, true, nil
}

func (m *Memory) Generation(_ context.Context) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gen, nil
}

// SetIfGeneration stores items unless an Invalidate happened since gen was read.
func (m *Memory) SetIfGeneration(_ context.Context, gen uint64, items []materialDomain.Material) (bool, error) {
	cp := make([]materialDomain.Material, len(items))
	copy(cp, items)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		return false, nil
	}
	m.items, m.loaded = cp, true
	return true, nil
}

// Invalidate drops the entry and starts a new generation.
func (m *Memory) Invalidate(_ context.Context) error {
	m.mu.Lock()
	m.gen++
	m.items, m.loaded = nil, false
	m.mu.Unlock()
	return nil
}

// Redis shares the memoized table between API instances, so an import on one
// instance invalidates all of them. Entries never expire.
type Redis struct {
	rdb    *redis.Client
	key    string
	genKey string
}

func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb, key: MaterialsKey, genKey: MaterialsGenKey}
}

// KEYS[1] entry, KEYS[2] generation; ARGV[1] expected generation, ARGV[2] payload.
var setIfGeneration = redis.NewScript(`
local cur = redis.call('GET', KEYS[2]) or '0'
if cur ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2])
return 1
`)

func (r *Redis) Get(ctx context.Context) ([]materialDomain.Material, bool, error) {
	b, err := r.rdb.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var items []materialDomain.Material
	if err := json.Unmarshal(b, &items); err != nil {
		// A corrupt entry is treated as a miss; the next load overwrites it.
		return nil, false, nil
	}
	return items, true, nil
}

func (r *Redis) Generation(ctx context.Context) (uint64, error) {
	gen, err := r.rdb.Get(ctx, r.genKey).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (r *Redis) SetIfGeneration(ctx context.Context, gen uint64, items []materialDomain.Material) (bool, error) {
	if items == nil {
		items = []materialDomain.Material{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return false, err
	}
	n, err := setIfGeneration.Run(ctx, r.rdb, []string{r.key, r.genKey}, strconv.FormatUint(gen, 10), b).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Invalidate bumps the shared generation and drops the entry in one transaction.
func (r *Redis) Invalidate(ctx context.Context) error {
	_, err := r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, r.genKey)
		p.Del(ctx, r.key)
		return nil
	})
	return err
}
