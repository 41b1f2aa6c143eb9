package http

import (
	"net/http"

	"github.com/DRSN-tech/bikeshop-backend/internal/usecase"
	"github.com/DRSN-tech/bikeshop-backend/pkg/logger"
)

type PricingHandler struct {
	pricing usecase.PricingUC
	logger  logger.Logger
}

func NewPricingHandler(pricing usecase.PricingUC, logger logger.Logger) *PricingHandler {
	return &PricingHandler{pricing: pricing, logger: logger}
}

// calculatePrice
//
//	@Summary		Расчёт цены конфигурации
//	@Description	Базовая цена товара + цены вариантов + условные надбавки
//	@Tags			pricing
//	@Accept			json
//	@Produce		json
//	@Param			configuration	body		configurationRequest	true	"Конфигурация"
//	@Success		200				{object}	priceResponse
//	@Failure		400				{object}	ErrorResponse	"Конфигурация отклонена"
//	@Failure		404				{object}	ErrorResponse	"Товар или вариант не найден"
//	@Router			/calculate-price [post]
func (p *PricingHandler) calculatePrice(w http.ResponseWriter, r *http.Request) {
	var req configurationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	total, err := p.pricing.CalculatePrice(r.Context(), usecase.NewConfigurationReq(req.ProductID, req.VariantIDs))
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, priceResponse{TotalPrice: money(total)})
}

// validateConfiguration
//
//	@Summary		Проверка конфигурации
//	@Description	Наличие, остатки, принадлежность товару и зависимости вариантов
//	@Tags			pricing
//	@Accept			json
//	@Produce		json
//	@Param			configuration	body		configurationRequest	true	"Конфигурация"
//	@Success		200				{object}	validResponse
//	@Failure		400				{object}	ErrorResponse	"Конфигурация отклонена"
//	@Failure		404				{object}	ErrorResponse	"Товар или вариант не найден"
//	@Router			/configurations/validate [post]
func (p *PricingHandler) validateConfiguration(w http.ResponseWriter, r *http.Request) {
	var req configurationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if err := p.pricing.ValidateConfiguration(r.Context(), usecase.NewConfigurationReq(req.ProductID, req.VariantIDs)); err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, validResponse{Valid: true})
}
