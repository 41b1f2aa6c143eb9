package usecase

import (
	"context"

	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/DRSN-tech/bikeshop-backend/internal/pricing"
	"github.com/DRSN-tech/bikeshop-backend/pkg/e"
	"github.com/google/uuid"
)

// DependencyUseCase управляет правилами совместимости вариантов.
type DependencyUseCase struct {
	depRepo     DependencyRepository
	variantRepo VariantRepository
}

func NewDependencyUC(depRepo DependencyRepository, variantRepo VariantRepository) *DependencyUseCase {
	return &DependencyUseCase{
		depRepo:     depRepo,
		variantRepo: variantRepo,
	}
}

func (d *DependencyUseCase) CreateDependency(ctx context.Context, req *CreateDependencyReq) (*domain.VariantDependency, error) {
	const op = "DependencyUseCase.CreateDependency"

	dep := domain.NewVariantDependency(req.VariantID, pricing.Dedupe(req.Restrictions))
	if err := d.checkVariants(ctx, dep); err != nil {
		return nil, e.Wrap(op, err)
	}

	created, err := d.depRepo.Create(ctx, dep)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	return created, nil
}

func (d *DependencyUseCase) GetDependency(ctx context.Context, variantID uuid.UUID) (*domain.VariantDependency, error) {
	dep, err := d.depRepo.Get(ctx, variantID)
	if err != nil {
		return nil, e.Wrap("DependencyUseCase.GetDependency", err)
	}
	return dep, nil
}

func (d *DependencyUseCase) ListDependencies(ctx context.Context) ([]domain.VariantDependency, error) {
	deps, err := d.depRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap("DependencyUseCase.ListDependencies", err)
	}
	return deps, nil
}

func (d *DependencyUseCase) UpdateDependency(ctx context.Context, variantID uuid.UUID, patch domain.VariantDependencyPatch) (*domain.VariantDependency, error) {
	const op = "DependencyUseCase.UpdateDependency"

	dep, err := d.depRepo.Get(ctx, variantID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if !patch.Apply(dep) {
		return dep, nil
	}
	dep.Restrictions = pricing.Dedupe(dep.Restrictions)

	if err := d.checkVariants(ctx, dep); err != nil {
		return nil, e.Wrap(op, err)
	}

	updated, err := d.depRepo.Update(ctx, dep)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	return updated, nil
}

func (d *DependencyUseCase) DeleteDependency(ctx context.Context, variantID uuid.UUID) error {
	if err := d.depRepo.Delete(ctx, variantID); err != nil {
		return e.Wrap("DependencyUseCase.DeleteDependency", err)
	}
	return nil
}

// checkVariants проверяет существование варианта правила и всех вариантов из списка.
func (d *DependencyUseCase) checkVariants(ctx context.Context, dep *domain.VariantDependency) error {
	if _, err := d.variantRepo.GetByID(ctx, dep.VariantID); err != nil {
		return err
	}
	for _, id := range dep.Restrictions {
		if _, err := d.variantRepo.GetByID(ctx, id); err != nil {
			return e.Wrap(id.String(), err)
		}
	}
	return nil
}
