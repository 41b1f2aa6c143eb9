package usecase

import (
	"context"

	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/DRSN-tech/bikeshop-backend/pkg/e"
	"github.com/google/uuid"
)

// CustomPriceUseCase управляет условными надбавками.
type CustomPriceUseCase struct {
	priceRepo   CustomPriceRepository
	variantRepo VariantRepository
}

func NewCustomPriceUC(priceRepo CustomPriceRepository, variantRepo VariantRepository) *CustomPriceUseCase {
	return &CustomPriceUseCase{
		priceRepo:   priceRepo,
		variantRepo: variantRepo,
	}
}

func (c *CustomPriceUseCase) CreateCustomPrice(ctx context.Context, req *CreateCustomPriceReq) (*domain.CustomPrice, error) {
	const op = "CustomPriceUseCase.CreateCustomPrice"

	price := domain.NewCustomPrice(req.VariantID, req.DependentVariantID, req.CustomPrice)
	if err := c.validate(ctx, price); err != nil {
		return nil, e.Wrap(op, err)
	}

	created, err := c.priceRepo.Create(ctx, price)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	return created, nil
}

func (c *CustomPriceUseCase) GetCustomPrice(ctx context.Context, id uuid.UUID) (*domain.CustomPrice, error) {
	price, err := c.priceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap("CustomPriceUseCase.GetCustomPrice", err)
	}
	return price, nil
}

func (c *CustomPriceUseCase) ListCustomPrices(ctx context.Context) ([]domain.CustomPrice, error) {
	prices, err := c.priceRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap("CustomPriceUseCase.ListCustomPrices", err)
	}
	return prices, nil
}

func (c *CustomPriceUseCase) UpdateCustomPrice(ctx context.Context, id uuid.UUID, patch domain.CustomPricePatch) (*domain.CustomPrice, error) {
	const op = "CustomPriceUseCase.UpdateCustomPrice"

	price, err := c.priceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if !patch.Apply(price) {
		return price, nil
	}

	if err := c.validate(ctx, price); err != nil {
		return nil, e.Wrap(op, err)
	}

	updated, err := c.priceRepo.Update(ctx, price)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	return updated, nil
}

func (c *CustomPriceUseCase) DeleteCustomPrice(ctx context.Context, id uuid.UUID) error {
	if err := c.priceRepo.Delete(ctx, id); err != nil {
		return e.Wrap("CustomPriceUseCase.DeleteCustomPrice", err)
	}
	return nil
}

func (c *CustomPriceUseCase) validate(ctx context.Context, price *domain.CustomPrice) error {
	if err := validateMoney(price.CustomPrice); err != nil {
		return err
	}
	if price.VariantID == price.DependentVariantID {
		return e.Wrap("variant and dependent variant must differ", e.ErrStatusBadRequest)
	}
	if _, err := c.variantRepo.GetByID(ctx, price.VariantID); err != nil {
		return err
	}
	if _, err := c.variantRepo.GetByID(ctx, price.DependentVariantID); err != nil {
		return err
	}
	return nil
}
