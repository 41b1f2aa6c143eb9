package usecase

import (
	"context"
	"sync"

	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/google/uuid"
)

// ProductCache оборачивает кэш карточек счётчиком поколений.
// Каждое удаление увеличивает поколение, и запись, прочитанная из БД до удаления,
// в кэш уже не попадает.
type ProductCache struct {
	repo CacheRepository

	mu  sync.RWMutex
	gen uint64
}

func NewProductCache(repo CacheRepository) *ProductCache {
	return &ProductCache{repo: repo}
}

// Generation запоминается до чтения карточки из БД и передаётся в PutIfCurrent.
func (c *ProductCache) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

func (c *ProductCache) GetProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.ProductDetail, error) {
	return c.repo.GetProducts(ctx, ids)
}

func (c *ProductCache) SetProducts(ctx context.Context, products []domain.ProductDetail) error {
	return c.repo.SetProducts(ctx, products)
}

// PutIfCurrent пишет карточки, только если с момента gen не было удалений.
// Возвращает false, если запись пропущена.
func (c *ProductCache) PutIfCurrent(ctx context.Context, gen uint64, products []domain.ProductDetail) (bool, error) {
	// читающая блокировка держится до конца записи, удаление ждёт её
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.gen != gen {
		return false, nil
	}
	return true, c.repo.SetProducts(ctx, products)
}

func (c *ProductCache) DeleteProducts(ctx context.Context, ids []uuid.UUID) error {
	c.mu.Lock()
	c.gen++
	c.mu.Unlock()

	return c.repo.DeleteProducts(ctx, ids)
}
