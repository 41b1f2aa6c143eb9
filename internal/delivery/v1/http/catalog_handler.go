package http

import (
	"net/http"

	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/DRSN-tech/bikeshop-backend/internal/usecase"
	"github.com/DRSN-tech/bikeshop-backend/pkg/logger"
)

// CatalogHandler обслуживает части, варианты, зависимости и надбавки.
type CatalogHandler struct {
	parts        usecase.PartUC
	variants     usecase.VariantUC
	dependencies usecase.DependencyUC
	customPrices usecase.CustomPriceUC
	logger       logger.Logger
}

func NewCatalogHandler(
	parts usecase.PartUC,
	variants usecase.VariantUC,
	dependencies usecase.DependencyUC,
	customPrices usecase.CustomPriceUC,
	logger logger.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		parts:        parts,
		variants:     variants,
		dependencies: dependencies,
		customPrices: customPrices,
		logger:       logger,
	}
}

// PRODUCT PARTS

// createPart
//
//	@Summary	Создание части товара
//	@Tags		product-parts
//	@Accept		json
//	@Produce	json
//	@Param		part	body		createPartRequest	true	"Часть"
//	@Success	201		{object}	partResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse	"Товар не найден"
//	@Router		/product-parts [post]
func (c *CatalogHandler) createPart(w http.ResponseWriter, r *http.Request) {
	var req createPartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	part, err := c.parts.CreatePart(r.Context(), &usecase.CreatePartReq{ProductID: req.ProductID, Name: req.Name})
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toPartResponse(part))
}

// listParts
//
//	@Summary	Список частей
//	@Tags		product-parts
//	@Produce	json
//	@Success	200	{array}	partResponse
//	@Router		/product-parts [get]
func (c *CatalogHandler) listParts(w http.ResponseWriter, r *http.Request) {
	parts, err := c.parts.ListParts(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteSuccess(w, http.StatusOK, toPartResponses(parts))
}

// getPart
//
//	@Summary	Часть товара
//	@Tags		product-parts
//	@Produce	json
//	@Param		id	path		string	true	"ID части"
//	@Success	200	{object}	partResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/product-parts/{id} [get]
func (c *CatalogHandler) getPart(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	part, err := c.parts.GetPart(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteSuccess(w, http.StatusOK, toPartResponse(part))
}

// updatePart
//
//	@Summary	Частичное обновление части
//	@Tags		product-parts
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"ID части"
//	@Param		patch	body		domain.ProductPartPatch	true	"Изменяемые поля"
//	@Success	200		{object}	partResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/product-parts/{id} [patch]
func (c *CatalogHandler) updatePart(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var patch domain.ProductPartPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		WriteError(w, err)
		return
	}

	part, err := c.parts.UpdatePart(r.Context(), id, patch)
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}
	WriteSuccess(w, http.StatusOK, toPartResponse(part))
}

// deletePart
//
//	@Summary	Удаление части
//	@Tags		product-parts
//	@Param		id	path	string	true	"ID части"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/product-parts/{id} [delete]
func (c *CatalogHandler) deletePart(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := c.parts.DeletePart(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PART VARIANTS

// createVariant
//
//	@Summary	Создание варианта части
//	@Tags		part-variants
//	@Accept		json
//	@Produce	json
//	@Param		variant	body		createVariantRequest	true	"Вариант"
//	@Success	201		{object}	variantResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse	"Часть не найдена"
//	@Router		/part-variants [post]
func (c *CatalogHandler) createVariant(w http.ResponseWriter, r *http.Request) {
	var req createVariantRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	variant, err := c.variants.CreateVariant(r.Context(), &usecase.CreateVariantReq{
		PartID:        req.PartID,
		Name:          req.Name,
		Price:         req.Price,
		IsAvailable:   req.IsAvailable,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toVariantResponse(variant))
}

// listVariants
//
//	@Summary	Список вариантов
//	@Tags		part-variants
//	@Produce	json
//	@Success	200	{array}	variantResponse
//	@Router		/part-variants [get]
func (c *CatalogHandler) listVariants(w http.ResponseWriter, r *http.Request) {
	variants, err := c.variants.ListVariants(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteSuccess(w, http.StatusOK, toVariantResponses(variants))
}

// getVariant
//
//	@Summary	Вариант части
//	@Tags		part-variants
//	@Produce	json
//	@Param		id	path		string	true	"ID варианта"
//	@Success	200	{object}	variantResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/part-variants/{id} [get]
func (c *CatalogHandler) getVariant(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	variant, err := c.variants.GetVariant(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteSuccess(w, http.StatusOK, toVariantResponse(variant))
}

// updateVariant
//
//	@Summary	Частичное обновление варианта
//	@Tags		part-variants
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"ID варианта"
//	@Param		patch	body		domain.PartVariantPatch	true	"Изменяемые поля"
//	@Success	200		{object}	variantResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/part-variants/{id} [patch]
func (c *CatalogHandler) updateVariant(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var patch domain.PartVariantPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		WriteError(w, err)
		return
	}

	variant, err := c.variants.UpdateVariant(r.Context(), id, patch)
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}
	WriteSuccess(w, http.StatusOK, toVariantResponse(variant))
}

// deleteVariant
//
//	@Summary	Удаление варианта
//	@Tags		part-variants
//	@Param		id	path	string	true	"ID варианта"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/part-variants/{id} [delete]
func (c *CatalogHandler) deleteVariant(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := c.variants.DeleteVariant(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// VARIANT DEPENDENCIES

// createDependency
//
//	@Summary		Создание зависимости варианта
//	@Description	Вариант можно выбрать, только если выбран хотя бы один вариант из restrictions
//	@Tags			variant-dependencies
//	@Accept			json
//	@Produce		json
//	@Param			dependency	body		createDependencyRequest	true	"Зависимость"
//	@Success		201			{object}	dependencyResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		409			{object}	ErrorResponse	"Зависимость уже существует"
//	@Router			/variant-dependencies [post]
func (c *CatalogHandler) createDependency(w http.ResponseWriter, r *http.Request) {
	var req createDependencyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	dep, err := c.dependencies.CreateDependency(r.Context(), &usecase.CreateDependencyReq{
		VariantID:    req.VariantID,
		Restrictions: req.Restrictions,
	})
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toDependencyResponse(dep))
}

// listDependencies
//
//	@Summary	Список зависимостей
//	@Tags		variant-dependencies
//	@Produce	json
//	@Success	200	{array}	dependencyResponse
//	@Router		/variant-dependencies [get]
func (c *CatalogHandler) listDependencies(w http.ResponseWriter, r *http.Request) {
	deps, err := c.dependencies.ListDependencies(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteSuccess(w, http.StatusOK, toDependencyResponses(deps))
}

// getDependency
//
//	@Summary	Зависимость варианта
//	@Tags		variant-dependencies
//	@Produce	json
//	@Param		variant_id	path		string	true	"ID варианта"
//	@Success	200			{object}	dependencyResponse
//	@Failure	404			{object}	ErrorResponse
//	@Router		/variant-dependencies/{variant_id} [get]
func (c *CatalogHandler) getDependency(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "variant_id")
	if err != nil {
		WriteError(w, err)
		return
	}

	dep, err := c.dependencies.GetDependency(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteSuccess(w, http.StatusOK, toDependencyResponse(dep))
}

// updateDependency
//
//	@Summary	Замена списка restrictions
//	@Tags		variant-dependencies
//	@Accept		json
//	@Produce	json
//	@Param		variant_id	path		string							true	"ID варианта"
//	@Param		patch		body		domain.VariantDependencyPatch	true	"Изменяемые поля"
//	@Success	200			{object}	dependencyResponse
//	@Failure	400			{object}	ErrorResponse
//	@Failure	404			{object}	ErrorResponse
//	@Router		/variant-dependencies/{variant_id} [patch]
func (c *CatalogHandler) updateDependency(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "variant_id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var patch domain.VariantDependencyPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		WriteError(w, err)
		return
	}

	dep, err := c.dependencies.UpdateDependency(r.Context(), id, patch)
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}
	WriteSuccess(w, http.StatusOK, toDependencyResponse(dep))
}

// deleteDependency
//
//	@Summary	Удаление зависимости
//	@Tags		variant-dependencies
//	@Param		variant_id	path	string	true	"ID варианта"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/variant-dependencies/{variant_id} [delete]
func (c *CatalogHandler) deleteDependency(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "variant_id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := c.dependencies.DeleteDependency(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CUSTOM PRICES

// createCustomPrice
//
//	@Summary		Создание условной надбавки
//	@Description	custom_price прибавляется, если выбраны оба варианта
//	@Tags			custom-prices
//	@Accept			json
//	@Produce		json
//	@Param			custom_price	body		createCustomPriceRequest	true	"Надбавка"
//	@Success		201				{object}	customPriceResponse
//	@Failure		400				{object}	ErrorResponse
//	@Failure		404				{object}	ErrorResponse	"Вариант не найден"
//	@Router			/custom-prices [post]
func (c *CatalogHandler) createCustomPrice(w http.ResponseWriter, r *http.Request) {
	var req createCustomPriceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	price, err := c.customPrices.CreateCustomPrice(r.Context(), &usecase.CreateCustomPriceReq{
		VariantID:          req.VariantID,
		DependentVariantID: req.DependentVariantID,
		CustomPrice:        req.CustomPrice,
	})
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toCustomPriceResponse(price))
}

// listCustomPrices
//
//	@Summary	Список надбавок
//	@Tags		custom-prices
//	@Produce	json
//	@Success	200	{array}	customPriceResponse
//	@Router		/custom-prices [get]
func (c *CatalogHandler) listCustomPrices(w http.ResponseWriter, r *http.Request) {
	prices, err := c.customPrices.ListCustomPrices(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteSuccess(w, http.StatusOK, toCustomPriceResponses(prices))
}

// getCustomPrice
//
//	@Summary	Надбавка
//	@Tags		custom-prices
//	@Produce	json
//	@Param		id	path		string	true	"ID надбавки"
//	@Success	200	{object}	customPriceResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/custom-prices/{id} [get]
func (c *CatalogHandler) getCustomPrice(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	price, err := c.customPrices.GetCustomPrice(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteSuccess(w, http.StatusOK, toCustomPriceResponse(price))
}

// updateCustomPrice
//
//	@Summary	Частичное обновление надбавки
//	@Tags		custom-prices
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"ID надбавки"
//	@Param		patch	body		domain.CustomPricePatch	true	"Изменяемые поля"
//	@Success	200		{object}	customPriceResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/custom-prices/{id} [patch]
func (c *CatalogHandler) updateCustomPrice(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var patch domain.CustomPricePatch
	if err := decodeJSON(w, r, &patch); err != nil {
		WriteError(w, err)
		return
	}

	price, err := c.customPrices.UpdateCustomPrice(r.Context(), id, patch)
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}
	WriteSuccess(w, http.StatusOK, toCustomPriceResponse(price))
}

// deleteCustomPrice
//
//	@Summary	Удаление надбавки
//	@Tags		custom-prices
//	@Param		id	path	string	true	"ID надбавки"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/custom-prices/{id} [delete]
func (c *CatalogHandler) deleteCustomPrice(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := c.customPrices.DeleteCustomPrice(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
