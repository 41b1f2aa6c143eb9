package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/DRSN-tech/bikeshop-backend/internal/infrastructure/metrics"
	"github.com/DRSN-tech/bikeshop-backend/pkg/e"
	"github.com/DRSN-tech/bikeshop-backend/pkg/logger"
	"github.com/DRSN-tech/bikeshop-backend/pkg/tracing"
	"github.com/google/uuid"
)

// ProductUseCase реализует бизнес-логику управления товарами и их карточками.
type ProductUseCase struct {
	productRepo  ProductRepository
	partRepo     PartRepository
	variantRepo  VariantRepository
	imageRepo    ProductImageRepository
	cache        *ProductCache
	imagesInfra  ImagesInfra
	txManager    TxManager
	logger       logger.Logger
	cacheTimeout time.Duration
}

func NewProductUC(
	productRepo ProductRepository,
	partRepo PartRepository,
	variantRepo VariantRepository,
	imageRepo ProductImageRepository,
	cache *ProductCache,
	imagesInfra ImagesInfra,
	txManager TxManager,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		partRepo:     partRepo,
		variantRepo:  variantRepo,
		imageRepo:    imageRepo,
		cache:        cache,
		imagesInfra:  imagesInfra,
		txManager:    txManager,
		logger:       logger,
		cacheTimeout: 500 * time.Millisecond,
	}
}

// CreateProduct проверяет и сохраняет новый товар.
func (p *ProductUseCase) CreateProduct(ctx context.Context, req *CreateProductReq) (*domain.Product, error) {
	const op = "ProductUseCase.CreateProduct"

	product := domain.NewProduct(req.Name, req.Description, req.Category, req.BasePrice,
		req.IsCustom, req.IsAvailable, req.StockQuantity)
	if err := validateProduct(product); err != nil {
		return nil, e.Wrap(op, err)
	}

	created, err := p.productRepo.Create(ctx, product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	p.logger.Infof("product created: id=%s name=%q", created.ID, created.Name)
	return created, nil
}

// ListProducts возвращает страницу каталога в порядке создания.
func (p *ProductUseCase) ListProducts(ctx context.Context, req *ListProductsReq) (*ListProductsRes, error) {
	const op = "ProductUseCase.ListProducts"

	if err := validatePage(req.Page, req.PageSize); err != nil {
		return nil, e.Wrap(op, err)
	}

	products, total, err := p.productRepo.List(ctx, req.PageSize, (req.Page-1)*req.PageSize)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &ListProductsRes{
		Products: products,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

// GetProductDetail возвращает товар с частями, вариантами и изображениями.
// Сначала читается кэш, при промахе карточка собирается из БД и кэшируется в фоне.
func (p *ProductUseCase) GetProductDetail(ctx context.Context, id uuid.UUID) (*domain.ProductDetail, error) {
	const op = "ProductUseCase.GetProductDetail"

	ctx, span := tracing.StartSpan(ctx, op)
	defer span.End()

	cached, err := p.cache.GetProducts(ctx, []uuid.UUID{id})
	if err != nil {
		metrics.CacheRequestsTotal.WithLabelValues("error").Inc()
	} else if detail, ok := cached[id]; ok {
		metrics.CacheRequestsTotal.WithLabelValues("hit").Inc()
		return &detail, nil
	} else {
		metrics.CacheRequestsTotal.WithLabelValues("miss").Inc()
	}

	gen := p.cache.Generation()
	detail, err := p.loadProductDetail(ctx, id)
	if err != nil {
		tracing.Fail(span, err)
		return nil, e.Wrap(op, err)
	}

	// Фоновое добавление карточки в кэш
	go func(d domain.ProductDetail) {
		bgCtx, cancel := context.WithTimeout(context.Background(), p.cacheTimeout)
		defer cancel()

		stored, err := p.cache.PutIfCurrent(bgCtx, gen, []domain.ProductDetail{d})
		if err != nil {
			p.logger.Warnf("Failed to cache product in background: %v", e.Wrap(op, err))
			return
		}
		if !stored {
			p.logger.Debugf("product %s changed while loading, skip caching", d.Product.ID)
		}
	}(detail.Clone())

	return detail, nil
}

func (p *ProductUseCase) loadProductDetail(ctx context.Context, id uuid.UUID) (*domain.ProductDetail, error) {
	product, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	parts, err := p.partRepo.ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	partIDs := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		partIDs = append(partIDs, part.ID)
	}

	var variants []domain.PartVariant
	if len(partIDs) > 0 {
		variants, err = p.variantRepo.ListByParts(ctx, partIDs)
		if err != nil {
			return nil, err
		}
	}

	byPart := make(map[uuid.UUID][]domain.PartVariant, len(parts))
	for _, v := range variants {
		byPart[v.PartID] = append(byPart[v.PartID], v)
	}

	images, err := p.imageRepo.ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &domain.ProductDetail{
		Product: *product,
		Parts:   make([]domain.PartDetail, 0, len(parts)),
		Images:  images,
	}
	for _, part := range parts {
		detail.Parts = append(detail.Parts, domain.PartDetail{
			Part:     part,
			Variants: byPart[part.ID],
		})
	}

	return detail, nil
}

// UpdateProduct применяет частичное обновление. Без изменений запись не трогается.
func (p *ProductUseCase) UpdateProduct(ctx context.Context, id uuid.UUID, patch domain.ProductPatch) (*domain.Product, error) {
	const op = "ProductUseCase.UpdateProduct"

	product, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if !patch.Apply(product) {
		return product, nil
	}

	if err := validateProduct(product); err != nil {
		return nil, e.Wrap(op, err)
	}

	updated, err := p.productRepo.Update(ctx, product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	p.invalidate(ctx, id)
	return updated, nil
}

func (p *ProductUseCase) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	const op = "ProductUseCase.DeleteProduct"

	if err := p.productRepo.Delete(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	p.invalidate(ctx, id)
	p.logger.Infof("product deleted: id=%s", id)
	return nil
}

// UploadProductImages загружает изображения в объектное хранилище и сохраняет записи о них.
// Если запись в БД не удалась, загруженные объекты удаляются в фоне.
func (p *ProductUseCase) UploadProductImages(ctx context.Context, req *UploadProductImagesReq) ([]domain.ProductImage, error) {
	const op = "ProductUseCase.UploadProductImages"

	ctx, span := tracing.StartSpan(ctx, op)
	defer span.End()

	var err error
	defer func() { tracing.Fail(span, err) }()

	if len(req.Images) == 0 {
		err = e.ErrNoImages
		return nil, e.Wrap(op, err)
	}
	if len(req.Images) > maxUploadImages {
		err = e.ErrTooManyImages
		return nil, e.Wrap(op, err)
	}

	if _, err = p.productRepo.GetByID(ctx, req.ProductID); err != nil {
		return nil, e.Wrap(op, err)
	}

	var uploaded *UploadImagesRes
	uploaded, err = p.imagesInfra.UploadImages(ctx, NewUploadImagesReq(req.ProductID.String(), req.Images))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if len(uploaded.ImagesKeys) != len(req.Images) {
		p.imagesInfra.CleanupImages(uploaded.ImagesKeys)
		err = errors.New("uploaded keys count mismatch")
		return nil, e.Wrap(op, err)
	}

	images := make([]domain.ProductImage, 0, len(req.Images))
	for i, key := range uploaded.ImagesKeys {
		images = append(images, *domain.NewProductImage(req.ProductID, key, req.Images[i].MimeType, req.Images[i].Size))
	}

	err = p.txManager.Do(ctx, func(ctx context.Context) error {
		return p.imageRepo.CreateBatch(ctx, images)
	})
	if err != nil {
		p.logger.Warnf(
			"Cleaning up orphaned images after transaction failure. product_id: %s, error: %v",
			req.ProductID,
			e.Wrap(op, err),
		)
		p.imagesInfra.CleanupImages(uploaded.ImagesKeys)
		return nil, e.Wrap(op, err)
	}

	p.invalidate(ctx, req.ProductID)
	return images, nil
}

// invalidate удаляет карточки из кэша. Ошибка кэша только логируется.
func (p *ProductUseCase) invalidate(ctx context.Context, ids ...uuid.UUID) {
	invalidateProducts(ctx, p.cache, p.logger, ids...)
}

func invalidateProducts(ctx context.Context, cache CacheRepository, log logger.Logger, ids ...uuid.UUID) {
	if len(ids) == 0 {
		return
	}
	if err := cache.DeleteProducts(ctx, ids); err != nil {
		log.Warnf("Failed to delete products from cache: %v", err)
	}
}

func validateProduct(p *domain.Product) error {
	if err := validateName(p.Name); err != nil {
		return err
	}
	if err := validateName(p.Category); err != nil {
		return e.Wrap("category", err)
	}
	if err := validateMoney(p.BasePrice); err != nil {
		return err
	}
	return validateStock(p.StockQuantity)
}
