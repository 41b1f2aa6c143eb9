package domain

import "slices"

// ProductDetail — товар вместе с частями, вариантами и изображениями.
// Собирается запросами по внешним ключам, сущности ссылаются друг на друга только через ID.
type ProductDetail struct {
	Product Product
	Parts   []PartDetail
	Images  []ProductImage
}

type PartDetail struct {
	Part     ProductPart
	Variants []PartVariant
}

// Clone возвращает копию карточки, не разделяющую срезы и указатели с исходной.
func (d ProductDetail) Clone() ProductDetail {
	out := ProductDetail{Product: d.Product}
	if d.Product.Description != nil {
		desc := *d.Product.Description
		out.Product.Description = &desc
	}
	if d.Parts != nil {
		out.Parts = make([]PartDetail, len(d.Parts))
		for i, p := range d.Parts {
			out.Parts[i] = PartDetail{Part: p.Part, Variants: slices.Clone(p.Variants)}
		}
	}
	out.Images = slices.Clone(d.Images)
	return out
}
