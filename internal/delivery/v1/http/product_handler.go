package http

import (
	"net/http"

	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/DRSN-tech/bikeshop-backend/internal/usecase"
	"github.com/DRSN-tech/bikeshop-backend/pkg/logger"
)

const (
	defaultPageSize = 10

	maxTotalRequestSize = 150 << 20
	maxMultipartMemory  = 32 << 20
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
	maxImages      int
	maxImageSize   int64
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger, maxImages int, maxImageSize int64) *ProductHandler {
	return &ProductHandler{
		productUsecase: productUsecase,
		logger:         logger,
		maxImages:      maxImages,
		maxImageSize:   maxImageSize,
	}
}

// createProduct
//
//	@Summary		Создание товара
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			product	body		createProductRequest	true	"Товар"
//	@Success		201		{object}	productResponse
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/products [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.CreateProduct(r.Context(), req.toUC())
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toProductResponse(product))
}

// listProducts
//
//	@Summary		Список товаров
//	@Tags			products
//	@Produce		json
//	@Param			page		query		int	false	"Номер страницы"	default(1)
//	@Param			page_size	query		int	false	"Размер страницы"	default(10)
//	@Success		200			{object}	productListResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	page, err := intQuery(r, "page", 1)
	if err != nil {
		WriteError(w, err)
		return
	}
	pageSize, err := intQuery(r, "page_size", defaultPageSize)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := p.productUsecase.ListProducts(r.Context(), &usecase.ListProductsReq{Page: page, PageSize: pageSize})
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductListResponse(res))
}

// getProduct
//
//	@Summary		Карточка товара
//	@Description	Товар с частями, вариантами и изображениями
//	@Tags			products
//	@Produce		json
//	@Param			id	path		string	true	"ID товара"
//	@Success		200	{object}	productDetailResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/products/{id} [get]
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	detail, err := p.productUsecase.GetProductDetail(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductDetailResponse(detail))
}

// updateProduct
//
//	@Summary		Частичное обновление товара
//	@Description	Меняются только переданные поля
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"ID товара"
//	@Param			patch	body		domain.ProductPatch	true	"Изменяемые поля"
//	@Success		200		{object}	productResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/products/{id} [patch]
func (p *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var patch domain.ProductPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.UpdateProduct(r.Context(), id, patch)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// deleteProduct
//
//	@Summary	Удаление товара
//	@Tags		products
//	@Param		id	path	string	true	"ID товара"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Failure	409	{object}	ErrorResponse	"Товар в корзинах"
//	@Router		/products/{id} [delete]
func (p *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := p.productUsecase.DeleteProduct(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// uploadImages
//
//	@Summary		Загрузка изображений товара
//	@Tags			products
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id		path		string	true	"ID товара"
//	@Param			images	formData	file	true	"Изображения (jpeg, png, webp)"
//	@Success		201		{array}		imageResponse
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		404		{object}	ErrorResponse
//	@Router			/products/{id}/images [post]
func (p *ProductHandler) uploadImages(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMultipartMemory); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, err.Error(), r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	images, err := parseImages(r.MultipartForm.File["images"], p.maxImages, p.maxImageSize)
	if err != nil {
		p.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	saved, err := p.productUsecase.UploadProductImages(r.Context(), &usecase.UploadProductImagesReq{
		ProductID: id,
		Images:    images,
	})
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toImageResponses(saved))
}
