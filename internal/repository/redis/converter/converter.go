package converter

import (
	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
)

// ProductDetailConverter преобразует карточку товара между domain и моделью кэша.
type ProductDetailConverter interface {
	ToRedisModel(entity *domain.ProductDetail) *ProductDetailRedisModel
	ToDomain(model *ProductDetailRedisModel) *domain.ProductDetail
	ToArrRedisModel(entities []domain.ProductDetail) []ProductDetailRedisModel
}

type ProductDetailConverterImpl struct{}

func (c ProductDetailConverterImpl) ToRedisModel(d *domain.ProductDetail) *ProductDetailRedisModel {
	if d == nil {
		return nil
	}

	p := d.Product
	model := &ProductDetailRedisModel{
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
		Parts:         make([]PartRedisModel, 0, len(d.Parts)),
		Images:        make([]ImageRedisModel, 0, len(d.Images)),
	}

	for _, part := range d.Parts {
		pm := PartRedisModel{
			ID:        part.Part.ID,
			Name:      part.Part.Name,
			CreatedAt: part.Part.CreatedAt,
			UpdatedAt: part.Part.UpdatedAt,
			Variants:  make([]VariantRedisModel, 0, len(part.Variants)),
		}
		for _, v := range part.Variants {
			pm.Variants = append(pm.Variants, VariantRedisModel{
				ID:            v.ID,
				Name:          v.Name,
				Price:         v.Price,
				IsAvailable:   v.IsAvailable,
				StockQuantity: v.StockQuantity,
				CreatedAt:     v.CreatedAt,
				UpdatedAt:     v.UpdatedAt,
			})
		}
		model.Parts = append(model.Parts, pm)
	}

	for _, img := range d.Images {
		model.Images = append(model.Images, ImageRedisModel{
			ID:          img.ID,
			ObjectKey:   img.ObjectKey,
			ContentType: img.ContentType,
			Size:        img.Size,
			CreatedAt:   img.CreatedAt,
		})
	}

	return model
}

// ToDomain восстанавливает ссылки на родителя (ProductID, PartID), которые в кэше не хранятся.
func (c ProductDetailConverterImpl) ToDomain(m *ProductDetailRedisModel) *domain.ProductDetail {
	if m == nil {
		return nil
	}

	detail := &domain.ProductDetail{
		Product: domain.Product{
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
		},
		Parts:  make([]domain.PartDetail, 0, len(m.Parts)),
		Images: make([]domain.ProductImage, 0, len(m.Images)),
	}

	for _, pm := range m.Parts {
		part := domain.PartDetail{
			Part: domain.ProductPart{
				ID:        pm.ID,
				ProductID: m.ID,
				Name:      pm.Name,
				CreatedAt: pm.CreatedAt,
				UpdatedAt: pm.UpdatedAt,
			},
			Variants: make([]domain.PartVariant, 0, len(pm.Variants)),
		}
		for _, v := range pm.Variants {
			part.Variants = append(part.Variants, domain.PartVariant{
				ID:            v.ID,
				PartID:        pm.ID,
				Name:          v.Name,
				Price:         v.Price,
				IsAvailable:   v.IsAvailable,
				StockQuantity: v.StockQuantity,
				CreatedAt:     v.CreatedAt,
				UpdatedAt:     v.UpdatedAt,
			})
		}
		detail.Parts = append(detail.Parts, part)
	}

	for _, img := range m.Images {
		detail.Images = append(detail.Images, domain.ProductImage{
			ID:          img.ID,
			ProductID:   m.ID,
			ObjectKey:   img.ObjectKey,
			ContentType: img.ContentType,
			Size:        img.Size,
			CreatedAt:   img.CreatedAt,
		})
	}

	return detail
}

func (c ProductDetailConverterImpl) ToArrRedisModel(entities []domain.ProductDetail) []ProductDetailRedisModel {
	out := make([]ProductDetailRedisModel, 0, len(entities))
	for i := range entities {
		out = append(out, *c.ToRedisModel(&entities[i]))
	}
	return out
}
