package usecase

import (
	"context"

	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/DRSN-tech/bikeshop-backend/pkg/e"
	"github.com/DRSN-tech/bikeshop-backend/pkg/logger"
	"github.com/google/uuid"
)

// PartUseCase управляет частями товаров.
type PartUseCase struct {
	partRepo    PartRepository
	productRepo ProductRepository
	cacheRepo   CacheRepository
	logger      logger.Logger
}

func NewPartUC(partRepo PartRepository, productRepo ProductRepository, cacheRepo CacheRepository, logger logger.Logger) *PartUseCase {
	return &PartUseCase{
		partRepo:    partRepo,
		productRepo: productRepo,
		cacheRepo:   cacheRepo,
		logger:      logger,
	}
}

func (p *PartUseCase) CreatePart(ctx context.Context, req *CreatePartReq) (*domain.ProductPart, error) {
	const op = "PartUseCase.CreatePart"

	if err := validateName(req.Name); err != nil {
		return nil, e.Wrap(op, err)
	}
	if _, err := p.productRepo.GetByID(ctx, req.ProductID); err != nil {
		return nil, e.Wrap(op, err)
	}

	part, err := p.partRepo.Create(ctx, domain.NewProductPart(req.ProductID, req.Name))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	invalidateProducts(ctx, p.cacheRepo, p.logger, part.ProductID)
	return part, nil
}

func (p *PartUseCase) GetPart(ctx context.Context, id uuid.UUID) (*domain.ProductPart, error) {
	part, err := p.partRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap("PartUseCase.GetPart", err)
	}
	return part, nil
}

func (p *PartUseCase) ListParts(ctx context.Context) ([]domain.ProductPart, error) {
	parts, err := p.partRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap("PartUseCase.ListParts", err)
	}
	return parts, nil
}

// UpdatePart применяет частичное обновление. При переносе части сбрасываются карточки обоих товаров.
func (p *PartUseCase) UpdatePart(ctx context.Context, id uuid.UUID, patch domain.ProductPartPatch) (*domain.ProductPart, error) {
	const op = "PartUseCase.UpdatePart"

	part, err := p.partRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	oldProductID := part.ProductID

	if !patch.Apply(part) {
		return part, nil
	}

	if err := validateName(part.Name); err != nil {
		return nil, e.Wrap(op, err)
	}
	if part.ProductID != oldProductID {
		if _, err := p.productRepo.GetByID(ctx, part.ProductID); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	updated, err := p.partRepo.Update(ctx, part)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	invalidateProducts(ctx, p.cacheRepo, p.logger, distinct(oldProductID, updated.ProductID)...)
	return updated, nil
}

func (p *PartUseCase) DeletePart(ctx context.Context, id uuid.UUID) error {
	const op = "PartUseCase.DeletePart"

	part, err := p.partRepo.GetByID(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}

	if err := p.partRepo.Delete(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	invalidateProducts(ctx, p.cacheRepo, p.logger, part.ProductID)
	return nil
}

func distinct(a, b uuid.UUID) []uuid.UUID {
	if a == b {
		return []uuid.UUID{a}
	}
	return []uuid.UUID{a, b}
}
