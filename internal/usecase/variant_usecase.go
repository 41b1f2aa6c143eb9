package usecase

import (
	"context"

	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/DRSN-tech/bikeshop-backend/pkg/e"
	"github.com/DRSN-tech/bikeshop-backend/pkg/logger"
	"github.com/google/uuid"
)

// VariantUseCase управляет вариантами частей.
type VariantUseCase struct {
	variantRepo VariantRepository
	partRepo    PartRepository
	cacheRepo   CacheRepository
	logger      logger.Logger
}

func NewVariantUC(variantRepo VariantRepository, partRepo PartRepository, cacheRepo CacheRepository, logger logger.Logger) *VariantUseCase {
	return &VariantUseCase{
		variantRepo: variantRepo,
		partRepo:    partRepo,
		cacheRepo:   cacheRepo,
		logger:      logger,
	}
}

func (v *VariantUseCase) CreateVariant(ctx context.Context, req *CreateVariantReq) (*domain.PartVariant, error) {
	const op = "VariantUseCase.CreateVariant"

	variant := domain.NewPartVariant(req.PartID, req.Name, req.Price, req.IsAvailable, req.StockQuantity)
	if err := validateVariant(variant); err != nil {
		return nil, e.Wrap(op, err)
	}

	part, err := v.partRepo.GetByID(ctx, req.PartID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	created, err := v.variantRepo.Create(ctx, variant)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	invalidateProducts(ctx, v.cacheRepo, v.logger, part.ProductID)
	return created, nil
}

func (v *VariantUseCase) GetVariant(ctx context.Context, id uuid.UUID) (*domain.PartVariant, error) {
	variant, err := v.variantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap("VariantUseCase.GetVariant", err)
	}
	return variant, nil
}

func (v *VariantUseCase) ListVariants(ctx context.Context) ([]domain.PartVariant, error) {
	variants, err := v.variantRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap("VariantUseCase.ListVariants", err)
	}
	return variants, nil
}

func (v *VariantUseCase) UpdateVariant(ctx context.Context, id uuid.UUID, patch domain.PartVariantPatch) (*domain.PartVariant, error) {
	const op = "VariantUseCase.UpdateVariant"

	variant, err := v.variantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	oldPart, err := v.partRepo.GetByID(ctx, variant.PartID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if !patch.Apply(variant) {
		return variant, nil
	}

	if err := validateVariant(variant); err != nil {
		return nil, e.Wrap(op, err)
	}

	newPart := oldPart
	if variant.PartID != oldPart.ID {
		if newPart, err = v.partRepo.GetByID(ctx, variant.PartID); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	updated, err := v.variantRepo.Update(ctx, variant)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	invalidateProducts(ctx, v.cacheRepo, v.logger, distinct(oldPart.ProductID, newPart.ProductID)...)
	return updated, nil
}

func (v *VariantUseCase) DeleteVariant(ctx context.Context, id uuid.UUID) error {
	const op = "VariantUseCase.DeleteVariant"

	variant, err := v.variantRepo.GetByID(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}

	if err := v.variantRepo.Delete(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	if part, err := v.partRepo.GetByID(ctx, variant.PartID); err == nil {
		invalidateProducts(ctx, v.cacheRepo, v.logger, part.ProductID)
	}
	return nil
}

func validateVariant(v *domain.PartVariant) error {
	if err := validateName(v.Name); err != nil {
		return err
	}
	if err := validateMoney(v.Price); err != nil {
		return err
	}
	return validateStock(v.StockQuantity)
}
