package http

import (
	"context"

	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/DRSN-tech/bikeshop-backend/internal/usecase"
	"github.com/DRSN-tech/bikeshop-backend/pkg/e"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type fakeProductUC struct {
	products  map[uuid.UUID]*domain.Product
	lastList  *usecase.ListProductsReq
	lastPatch domain.ProductPatch
	uploaded  *usecase.UploadProductImagesReq
}

func newFakeProductUC() *fakeProductUC {
	return &fakeProductUC{products: map[uuid.UUID]*domain.Product{}}
}

func (f *fakeProductUC) CreateProduct(_ context.Context, req *usecase.CreateProductReq) (*domain.Product, error) {
	if req.BasePrice.IsNegative() {
		return nil, e.Wrap("ProductUseCase.CreateProduct", e.ErrInvalidPrice)
	}
	p := domain.NewProduct(req.Name, req.Description, req.Category, req.BasePrice, req.IsCustom, req.IsAvailable, req.StockQuantity)
	f.products[p.ID] = p
	return p, nil
}

func (f *fakeProductUC) ListProducts(_ context.Context, req *usecase.ListProductsReq) (*usecase.ListProductsRes, error) {
	f.lastList = req
	res := &usecase.ListProductsRes{Page: req.Page, PageSize: req.PageSize}
	for _, p := range f.products {
		res.Products = append(res.Products, *p)
	}
	res.Total = len(res.Products)
	return res, nil
}

func (f *fakeProductUC) GetProductDetail(_ context.Context, id uuid.UUID) (*domain.ProductDetail, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, e.Wrap("ProductUseCase.GetProductDetail", e.ErrProductNotFound)
	}
	return &domain.ProductDetail{Product: *p}, nil
}

func (f *fakeProductUC) UpdateProduct(_ context.Context, id uuid.UUID, patch domain.ProductPatch) (*domain.Product, error) {
	f.lastPatch = patch
	p, ok := f.products[id]
	if !ok {
		return nil, e.ErrProductNotFound
	}
	patch.Apply(p)
	return p, nil
}

func (f *fakeProductUC) DeleteProduct(_ context.Context, id uuid.UUID) error {
	if _, ok := f.products[id]; !ok {
		return e.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductUC) UploadProductImages(_ context.Context, req *usecase.UploadProductImagesReq) ([]domain.ProductImage, error) {
	f.uploaded = req
	images := make([]domain.ProductImage, 0, len(req.Images))
	for _, img := range req.Images {
		images = append(images, *domain.NewProductImage(req.ProductID, req.ProductID.String()+"/"+img.Name, img.MimeType, img.Size))
	}
	return images, nil
}

type fakePricingUC struct {
	total decimal.Decimal
	err   error
	last  *usecase.ConfigurationReq
}

func (f *fakePricingUC) CalculatePrice(_ context.Context, req *usecase.ConfigurationReq) (decimal.Decimal, error) {
	f.last = req
	return f.total, f.err
}

func (f *fakePricingUC) ValidateConfiguration(_ context.Context, req *usecase.ConfigurationReq) error {
	f.last = req
	return f.err
}

type fakeCartUC struct {
	carts    map[uuid.UUID]*domain.Cart
	lastReq  *usecase.CreateCartReq
	priceErr error
}

func (f *fakeCartUC) CreateCart(_ context.Context, req *usecase.CreateCartReq) (*domain.Cart, error) {
	f.lastReq = req
	if len(req.Items) == 0 {
		return nil, e.ErrEmptyCart
	}
	if f.priceErr != nil {
		return nil, f.priceErr
	}
	items := make([]domain.CartItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.NewCartItem(it.ProductID, it.VariantIDs, decimal.RequireFromString("100.5")))
	}
	cart := domain.NewCart(items)
	f.carts[cart.ID] = cart
	return cart, nil
}

func (f *fakeCartUC) GetCart(_ context.Context, id uuid.UUID) (*domain.Cart, error) {
	c, ok := f.carts[id]
	if !ok {
		return nil, e.ErrCartNotFound
	}
	return c, nil
}

func (f *fakeCartUC) UpdateCart(_ context.Context, id uuid.UUID, req *usecase.UpdateCartReq) (*domain.Cart, error) {
	c, ok := f.carts[id]
	if !ok {
		return nil, e.ErrCartNotFound
	}
	if c.Purchased {
		return nil, e.Wrap("CartUseCase.UpdateCart", e.ErrCartAlreadyPurchased)
	}
	c.Purchased = req.Purchased
	return c, nil
}

type fakePartUC struct {
	usecase.PartUC
	parts []domain.ProductPart
}

func (f *fakePartUC) ListParts(context.Context) ([]domain.ProductPart, error) {
	return f.parts, nil
}

type fakeDependencyUC struct {
	usecase.DependencyUC
	created *usecase.CreateDependencyReq
}

func (f *fakeDependencyUC) CreateDependency(_ context.Context, req *usecase.CreateDependencyReq) (*domain.VariantDependency, error) {
	f.created = req
	return domain.NewVariantDependency(req.VariantID, req.Restrictions), nil
}

func (f *fakeDependencyUC) GetDependency(_ context.Context, variantID uuid.UUID) (*domain.VariantDependency, error) {
	return nil, e.Wrap(variantID.String(), e.ErrDependencyNotFound)
}

type fakeCustomPriceUC struct {
	usecase.CustomPriceUC
}

func (f *fakeCustomPriceUC) CreateCustomPrice(_ context.Context, req *usecase.CreateCustomPriceReq) (*domain.CustomPrice, error) {
	if req.VariantID == req.DependentVariantID {
		return nil, e.Wrap("CustomPriceUseCase.CreateCustomPrice", e.ErrStatusBadRequest)
	}
	return domain.NewCustomPrice(req.VariantID, req.DependentVariantID, req.CustomPrice), nil
}

type fakeVariantUC struct {
	usecase.VariantUC
}

func (f *fakeVariantUC) DeleteVariant(context.Context, uuid.UUID) error {
	return e.Wrap("VariantUseCase.DeleteVariant", e.ErrReferencedRecord)
}
