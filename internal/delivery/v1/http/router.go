package http

import (
	"net/http"

	_ "github.com/DRSN-tech/bikeshop-backend/docs" // регистрирует Swagger-описание
	"github.com/DRSN-tech/bikeshop-backend/internal/cfg"
	"github.com/DRSN-tech/bikeshop-backend/internal/usecase"
	"github.com/DRSN-tech/bikeshop-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
	images *cfg.MinIOCfg
}

func NewRouter(router *chi.Mux, logger logger.Logger, images *cfg.MinIOCfg) *Router {
	return &Router{router: router, logger: logger, images: images}
}

func (r *Router) Init(uc *usecase.UseCases) {
	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.Recoverer)
	r.router.Use(loggingMiddleware(r.logger))
	r.router.Use(metricsMiddleware)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), // ссылка на JSON
	))
	r.router.Handle("/metrics", promhttp.Handler())

	r.router.Route("/api/v1", func(v1 chi.Router) {
		v1.Get("/healthchecker", healthchecker)

		registerProductRoutes(v1, NewProductHandler(uc.Products, r.logger, r.images.UploadImagesLimit, r.images.MaxImageSize))
		registerCatalogRoutes(v1, NewCatalogHandler(uc.Parts, uc.Variants, uc.Dependencies, uc.CustomPrices, r.logger))
		registerPricingRoutes(v1, NewPricingHandler(uc.Pricing, r.logger))
		registerCartRoutes(v1, NewCartHandler(uc.Carts, r.logger))
	})
}

// healthchecker
//
//	@Summary	Проверка доступности
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/healthchecker [get]
func healthchecker(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, http.StatusOK, map[string]string{"message": "API is Live"})
}

func registerProductRoutes(router chi.Router, h *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Post("/", h.createProduct)
		pr.Get("/", h.listProducts)
		pr.Get("/{id}", h.getProduct)
		pr.Put("/{id}", h.updateProduct)
		pr.Patch("/{id}", h.updateProduct)
		pr.Delete("/{id}", h.deleteProduct)
		pr.Post("/{id}/images", h.uploadImages)
	})
}

func registerCatalogRoutes(router chi.Router, h *CatalogHandler) {
	router.Route("/product-parts", func(pp chi.Router) {
		pp.Post("/", h.createPart)
		pp.Get("/", h.listParts)
		pp.Get("/{id}", h.getPart)
		pp.Put("/{id}", h.updatePart)
		pp.Patch("/{id}", h.updatePart)
		pp.Delete("/{id}", h.deletePart)
	})

	router.Route("/part-variants", func(pv chi.Router) {
		pv.Post("/", h.createVariant)
		pv.Get("/", h.listVariants)
		pv.Get("/{id}", h.getVariant)
		pv.Put("/{id}", h.updateVariant)
		pv.Patch("/{id}", h.updateVariant)
		pv.Delete("/{id}", h.deleteVariant)
	})

	router.Route("/variant-dependencies", func(vd chi.Router) {
		vd.Post("/", h.createDependency)
		vd.Get("/", h.listDependencies)
		vd.Get("/{variant_id}", h.getDependency)
		vd.Put("/{variant_id}", h.updateDependency)
		vd.Patch("/{variant_id}", h.updateDependency)
		vd.Delete("/{variant_id}", h.deleteDependency)
	})

	router.Route("/custom-prices", func(cp chi.Router) {
		cp.Post("/", h.createCustomPrice)
		cp.Get("/", h.listCustomPrices)
		cp.Get("/{id}", h.getCustomPrice)
		cp.Put("/{id}", h.updateCustomPrice)
		cp.Patch("/{id}", h.updateCustomPrice)
		cp.Delete("/{id}", h.deleteCustomPrice)
	})
}

func registerPricingRoutes(router chi.Router, h *PricingHandler) {
	router.Post("/calculate-price", h.calculatePrice)
	router.Post("/configurations/validate", h.validateConfiguration)
}

func registerCartRoutes(router chi.Router, h *CartHandler) {
	router.Route("/carts", func(c chi.Router) {
		c.Post("/", h.createCart)
		c.Get("/{id}", h.getCart)
		c.Patch("/{id}", h.updateCart)
	})
}
