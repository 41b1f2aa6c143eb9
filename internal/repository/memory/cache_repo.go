// Package memory — кэш карточек товара в памяти процесса, для запуска без Redis.
package memory

import (
	"context"
	"time"

	"github.com/DRSN-tech/bikeshop-backend/internal/cfg"
	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/DRSN-tech/bikeshop-backend/pkg/e"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jimlawless/whereami"
)

type item struct {
	detail    domain.ProductDetail
	expiresAt time.Time
}

// CacheRepo хранит до cfg.Size карточек, вытесняя давно не читанные.
type CacheRepo struct {
	cache *lru.Cache[uuid.UUID, item]
	ttl   time.Duration
	now   func() time.Time
}

func NewCacheRepo(cfg *cfg.CacheCfg) (*CacheRepo, error) {
	c, err := lru.New[uuid.UUID, item](cfg.Size)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &CacheRepo{cache: c, ttl: cfg.ProductTTL, now: time.Now}, nil
}

func (r *CacheRepo) GetProducts(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.ProductDetail, error) {
	result := make(map[uuid.UUID]domain.ProductDetail, len(ids))
	for _, id := range ids {
		cached, ok := r.cache.Get(id)
		if !ok {
			continue
		}
		if r.now().After(cached.expiresAt) {
			r.cache.Remove(id)
			continue
		}
		// копия: вызывающий может менять карточку, не задевая кэш
		result[id] = cached.detail.Clone()
	}

	return result, nil
}

func (r *CacheRepo) SetProducts(_ context.Context, products []domain.ProductDetail) error {
	expiresAt := r.now().Add(r.ttl)
	for _, p := range products {
		r.cache.Add(p.Product.ID, item{detail: p.Clone(), expiresAt: expiresAt})
	}

	return nil
}

func (r *CacheRepo) DeleteProducts(_ context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		r.cache.Remove(id)
	}

	return nil
}
