package converter

import (
	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/DRSN-tech/bikeshop-backend/internal/usecase"
	"github.com/google/uuid"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) *domain.Product
}

// PartConverter преобразует части товара.
type PartConverter interface {
	ToModel(entity *domain.ProductPart) *ProductPartModel
	ToEntity(model *ProductPartModel) *domain.ProductPart
}

type VariantConverter interface {
	ToModel(entity *domain.PartVariant) *PartVariantModel
	ToEntity(model *PartVariantModel) *domain.PartVariant
}

type DependencyConverter interface {
	ToModel(entity *domain.VariantDependency) *VariantDependencyModel
	ToEntity(model *VariantDependencyModel) *domain.VariantDependency
}

type CustomPriceConverter interface {
	ToModel(entity *domain.CustomPrice) *CustomPriceModel
	ToEntity(model *CustomPriceModel) *domain.CustomPrice
}

type ProductImageConverter interface {
	ToModel(entity *domain.ProductImage) *ProductImageModel
	ToEntity(model *ProductImageModel) *domain.ProductImage
}

// CartConverter собирает корзину из строки carts и строк cart_items.
type CartConverter interface {
	ToModel(entity *domain.Cart) (*CartModel, []CartItemModel)
	ToEntity(model *CartModel, items []CartItemModel) *domain.Cart
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

type ProductConverterImpl struct{}

func (ProductConverterImpl) ToModel(p *domain.Product) *ProductModel {
	if p == nil {
		return nil
	}
	return &ProductModel{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		BasePrice:     p.BasePrice,
		IsCustom:      p.IsCustom,
		IsAvailable:   p.IsAvailable,
		StockQuantity: p.StockQuantity,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (ProductConverterImpl) ToEntity(m *ProductModel) *domain.Product {
	if m == nil {
		return nil
	}
	return &domain.Product{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Category:      m.Category,
		BasePrice:     m.BasePrice,
		IsCustom:      m.IsCustom,
		IsAvailable:   m.IsAvailable,
		StockQuantity: m.StockQuantity,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

type PartConverterImpl struct{}

func (PartConverterImpl) ToModel(p *domain.ProductPart) *ProductPartModel {
	if p == nil {
		return nil
	}
	return &ProductPartModel{
		ID:        p.ID,
		ProductID: p.ProductID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (PartConverterImpl) ToEntity(m *ProductPartModel) *domain.ProductPart {
	if m == nil {
		return nil
	}
	return &domain.ProductPart{
		ID:        m.ID,
		ProductID: m.ProductID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type VariantConverterImpl struct{}

func (VariantConverterImpl) ToModel(v *domain.PartVariant) *PartVariantModel {
	if v == nil {
		return nil
	}
	return &PartVariantModel{
		ID:            v.ID,
		PartID:        v.PartID,
		Name:          v.Name,
		Price:         v.Price,
		IsAvailable:   v.IsAvailable,
		StockQuantity: v.StockQuantity,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func (VariantConverterImpl) ToEntity(m *PartVariantModel) *domain.PartVariant {
	if m == nil {
		return nil
	}
	return &domain.PartVariant{
		ID:            m.ID,
		PartID:        m.PartID,
		Name:          m.Name,
		Price:         m.Price,
		IsAvailable:   m.IsAvailable,
		StockQuantity: m.StockQuantity,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

type DependencyConverterImpl struct{}

// ToModel никогда не отдаёт nil-список: колонка restrictions объявлена NOT NULL.
func (DependencyConverterImpl) ToModel(d *domain.VariantDependency) *VariantDependencyModel {
	if d == nil {
		return nil
	}
	restrictions := d.Restrictions
	if restrictions == nil {
		restrictions = []uuid.UUID{}
	}
	return &VariantDependencyModel{
		VariantID:    d.VariantID,
		Restrictions: restrictions,
	}
}

func (DependencyConverterImpl) ToEntity(m *VariantDependencyModel) *domain.VariantDependency {
	if m == nil {
		return nil
	}
	return &domain.VariantDependency{
		VariantID:    m.VariantID,
		Restrictions: m.Restrictions,
	}
}

type CustomPriceConverterImpl struct{}

func (CustomPriceConverterImpl) ToModel(c *domain.CustomPrice) *CustomPriceModel {
	if c == nil {
		return nil
	}
	return &CustomPriceModel{
		ID:                 c.ID,
		VariantID:          c.VariantID,
		DependentVariantID: c.DependentVariantID,
		CustomPrice:        c.CustomPrice,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

func (CustomPriceConverterImpl) ToEntity(m *CustomPriceModel) *domain.CustomPrice {
	if m == nil {
		return nil
	}
	return &domain.CustomPrice{
		ID:                 m.ID,
		VariantID:          m.VariantID,
		DependentVariantID: m.DependentVariantID,
		CustomPrice:        m.CustomPrice,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

type ProductImageConverterImpl struct{}

func (ProductImageConverterImpl) ToModel(i *domain.ProductImage) *ProductImageModel {
	if i == nil {
		return nil
	}
	return &ProductImageModel{
		ID:          i.ID,
		ProductID:   i.ProductID,
		ObjectKey:   i.ObjectKey,
		ContentType: i.ContentType,
		Size:        i.Size,
		CreatedAt:   i.CreatedAt,
	}
}

func (ProductImageConverterImpl) ToEntity(m *ProductImageModel) *domain.ProductImage {
	if m == nil {
		return nil
	}
	return &domain.ProductImage{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ObjectKey:   m.ObjectKey,
		ContentType: m.ContentType,
		Size:        m.Size,
		CreatedAt:   m.CreatedAt,
	}
}

type CartConverterImpl struct{}

func (CartConverterImpl) ToModel(c *domain.Cart) (*CartModel, []CartItemModel) {
	if c == nil {
		return nil, nil
	}
	items := make([]CartItemModel, 0, len(c.Items))
	for _, it := range c.Items {
		selected := it.SelectedParts
		if selected == nil {
			selected = []uuid.UUID{}
		}
		items = append(items, CartItemModel{
			ID:            it.ID,
			CartID:        c.ID,
			ProductID:     it.ProductID,
			SelectedParts: selected,
			TotalPrice:    it.TotalPrice,
			CreatedAt:     it.CreatedAt,
			UpdatedAt:     it.UpdatedAt,
		})
	}
	return &CartModel{
		ID:         c.ID,
		Purchased:  c.Purchased,
		TotalPrice: c.TotalPrice,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}, items
}

func (CartConverterImpl) ToEntity(m *CartModel, items []CartItemModel) *domain.Cart {
	if m == nil {
		return nil
	}
	cart := &domain.Cart{
		ID:         m.ID,
		Purchased:  m.Purchased,
		TotalPrice: m.TotalPrice,
		Items:      make([]domain.CartItem, 0, len(items)),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	for _, it := range items {
		cart.Items = append(cart.Items, domain.CartItem{
			ID:            it.ID,
			CartID:        it.CartID,
			ProductID:     it.ProductID,
			SelectedParts: it.SelectedParts,
			TotalPrice:    it.TotalPrice,
			CreatedAt:     it.CreatedAt,
			UpdatedAt:     it.UpdatedAt,
		})
	}
	return cart
}

type OutboxEventConverterImpl struct{}

func (OutboxEventConverterImpl) ToModel(ev *usecase.OutboxEvent) *OutboxEventModel {
	if ev == nil {
		return nil
	}
	return &OutboxEventModel{
		ID:          ev.ID,
		EventID:     ev.EventID,
		EventType:   string(ev.EventType),
		AggregateID: ev.AggregateID,
		Payload:     ev.Payload,
		Status:      string(ev.Status),
		CreatedAt:   ev.CreatedAt,
		ProcessedAt: ev.ProcessedAt,
	}
}

func (OutboxEventConverterImpl) ToEntity(m *OutboxEventModel) *usecase.OutboxEvent {
	if m == nil {
		return nil
	}
	return &usecase.OutboxEvent{
		ID:          m.ID,
		EventID:     m.EventID,
		EventType:   usecase.OutboxEventType(m.EventType),
		AggregateID: m.AggregateID,
		Payload:     m.Payload,
		Status:      usecase.OutboxStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		ProcessedAt: m.ProcessedAt,
	}
}

func (c OutboxEventConverterImpl) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	out := make([]*usecase.OutboxEvent, 0, len(models))
	for _, m := range models {
		out = append(out, c.ToEntity(m))
	}
	return out
}
