package grpc

import (
	"context"
	"fmt"

	"github.com/DRSN-tech/bikeshop-backend/internal/proto"
	"github.com/DRSN-tech/bikeshop-backend/internal/usecase"
	"github.com/DRSN-tech/bikeshop-backend/pkg/e"
	"github.com/DRSN-tech/bikeshop-backend/pkg/logger"
	"github.com/google/uuid"
)

type PricingService struct {
	proto.UnimplementedPricingServiceServer
	pricingUC usecase.PricingUC
	logger    logger.Logger
}

func NewPricingService(pricingUC usecase.PricingUC, logger logger.Logger) *PricingService {
	return &PricingService{pricingUC: pricingUC, logger: logger}
}

// PriceConfiguration возвращает цену конфигурации строкой с двумя знаками после запятой.
func (g *PricingService) PriceConfiguration(ctx context.Context, req *proto.ConfigurationRequest) (*proto.PriceResponse, error) {
	const op = "grpc.PriceConfiguration"

	cfgReq, err := toConfigurationReq(req)
	if err != nil {
		g.logger.Debugf("%s: %v", op, err)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	total, err := g.pricingUC.CalculatePrice(ctx, cfgReq)
	if err != nil {
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	return &proto.PriceResponse{TotalPrice: total.StringFixed(2)}, nil
}

func (g *PricingService) ValidateConfiguration(ctx context.Context, req *proto.ConfigurationRequest) (*proto.ValidationResponse, error) {
	const op = "grpc.ValidateConfiguration"

	cfgReq, err := toConfigurationReq(req)
	if err != nil {
		g.logger.Debugf("%s: %v", op, err)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	if err := g.pricingUC.ValidateConfiguration(ctx, cfgReq); err != nil {
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	return &proto.ValidationResponse{Valid: true}, nil
}

func toConfigurationReq(req *proto.ConfigurationRequest) (*usecase.ConfigurationReq, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, e.Wrap("product_id", e.ErrInvalidID)
	}

	variantIDs := make([]uuid.UUID, 0, len(req.VariantIDs))
	for i, raw := range req.VariantIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, e.Wrap(fmt.Sprintf("variant_ids[%d]", i), e.ErrInvalidID)
		}
		variantIDs = append(variantIDs, id)
	}

	return usecase.NewConfigurationReq(productID, variantIDs), nil
}
