package http

import (
	"net/http"

	"github.com/DRSN-tech/bikeshop-backend/internal/usecase"
	"github.com/DRSN-tech/bikeshop-backend/pkg/logger"
)

type CartHandler struct {
	carts  usecase.CartUC
	logger logger.Logger
}

func NewCartHandler(carts usecase.CartUC, logger logger.Logger) *CartHandler {
	return &CartHandler{carts: carts, logger: logger}
}

// createCart
//
//	@Summary		Создание корзины
//	@Description	Цена каждой позиции пересчитывается на сервере
//	@Tags			carts
//	@Accept			json
//	@Produce		json
//	@Param			cart	body		createCartRequest	true	"Позиции корзины"
//	@Success		201		{object}	cartResponse
//	@Failure		400		{object}	ErrorResponse	"Конфигурация отклонена"
//	@Failure		404		{object}	ErrorResponse	"Товар или вариант не найден"
//	@Router			/carts [post]
func (c *CartHandler) createCart(w http.ResponseWriter, r *http.Request) {
	var req createCartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	cart, err := c.carts.CreateCart(r.Context(), req.toUC())
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toCartResponse(cart))
}

// getCart
//
//	@Summary	Корзина
//	@Tags		carts
//	@Produce	json
//	@Param		id	path		string	true	"ID корзины"
//	@Success	200	{object}	cartResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/carts/{id} [get]
func (c *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	cart, err := c.carts.GetCart(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCartResponse(cart))
}

// updateCart
//
//	@Summary		Покупка корзины
//	@Description	purchased=true можно передать один раз
//	@Tags			carts
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"ID корзины"
//	@Param			cart	body		updateCartRequest	true	"Статус"
//	@Success		200		{object}	cartResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse	"Корзина уже куплена"
//	@Router			/carts/{id} [patch]
func (c *CartHandler) updateCart(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req updateCartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	cart, err := c.carts.UpdateCart(r.Context(), id, &usecase.UpdateCartReq{Purchased: *req.Purchased})
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCartResponse(cart))
}
