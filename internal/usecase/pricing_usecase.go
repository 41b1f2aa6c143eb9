package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/DRSN-tech/bikeshop-backend/internal/infrastructure/metrics"
	"github.com/DRSN-tech/bikeshop-backend/internal/pricing"
	"github.com/DRSN-tech/bikeshop-backend/pkg/e"
	"github.com/DRSN-tech/bikeshop-backend/pkg/logger"
	"github.com/DRSN-tech/bikeshop-backend/pkg/tracing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

// PriceEngine — расчёт цены и проверка конфигурации (pricing.Engine).
type PriceEngine interface {
	PriceConfiguration(ctx context.Context, productID uuid.UUID, variantIDs []uuid.UUID) (decimal.Decimal, error)
	ValidateConfiguration(ctx context.Context, productID uuid.UUID, variantIDs []uuid.UUID) error
	PriceValidConfiguration(ctx context.Context, productID uuid.UUID, variantIDs []uuid.UUID) (decimal.Decimal, error)
}

// PricingUseCase оборачивает движок цен логированием, метриками и трейсингом.
type PricingUseCase struct {
	engine PriceEngine
	logger logger.Logger
}

func NewPricingUC(engine PriceEngine, logger logger.Logger) *PricingUseCase {
	return &PricingUseCase{engine: engine, logger: logger}
}

func (p *PricingUseCase) CalculatePrice(ctx context.Context, req *ConfigurationReq) (decimal.Decimal, error) {
	const op = "PricingUseCase.CalculatePrice"

	var total decimal.Decimal
	err := p.observe(ctx, op, "price", req, func(ctx context.Context) error {
		var err error
		total, err = p.engine.PriceConfiguration(ctx, req.ProductID, req.VariantIDs)
		return err
	})
	if err != nil {
		return decimal.Zero, e.Wrap(op, err)
	}

	return total, nil
}

func (p *PricingUseCase) ValidateConfiguration(ctx context.Context, req *ConfigurationReq) error {
	const op = "PricingUseCase.ValidateConfiguration"

	err := p.observe(ctx, op, "validate", req, func(ctx context.Context) error {
		return p.engine.ValidateConfiguration(ctx, req.ProductID, req.VariantIDs)
	})
	if err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

func (p *PricingUseCase) observe(ctx context.Context, op, operation string, req *ConfigurationReq, fn func(ctx context.Context) error) error {
	ctx, span := tracing.StartSpan(ctx, op)
	defer span.End()
	span.SetAttributes(
		attribute.String("product_id", req.ProductID.String()),
		attribute.Int("variants", len(req.VariantIDs)),
	)

	start := time.Now()
	err := fn(ctx)
	metrics.PricingDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	metrics.PricingRequestsTotal.WithLabelValues(operation, outcome(err)).Inc()

	if err != nil {
		tracing.Fail(span, err)
		if _, ok := pricing.AsRejection(err); ok {
			p.logger.Debugf("%s: configuration rejected: %v", op, err)
		} else if !errors.Is(err, context.Canceled) {
			p.logger.Errorf(err, "%s: pricing failed for product %s", op, req.ProductID)
		}
	}

	return err
}

// outcome возвращает метку метрики для результата вызова движка.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if rej, ok := pricing.AsRejection(err); ok {
		return rej.Kind.String()
	}
	return "error"
}
