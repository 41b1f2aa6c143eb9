package domain

import (
	"time"

	"github.com/google/uuid"
)

// Image описывает изображение, которое хранится в S3
type Image struct {
	ID        string // uuid
	Bucket    string
	ObjectKey string
	Bytes     []byte
	// Передайте значение -1 в Size, если размер потока неизвестен
	// (внимание: при передаче значения -1 будет выделен большой объем памяти).
	Size     *int64
	MimeType *string // Example: "image/png"
}

func NewImage(id string, bucket string, objectKey string, data []byte, size *int64, mimeType *string) *Image {
	return &Image{
		ID:        id,
		Bucket:    bucket,
		ObjectKey: objectKey,
		Bytes:     data,
		Size:      size,
		MimeType:  mimeType,
	}
}

// ProductImage — запись о загруженном изображении товара.
type ProductImage struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	ObjectKey   string
	ContentType string
	Size        int64
	CreatedAt   time.Time
}

func NewProductImage(productID uuid.UUID, objectKey, contentType string, size int64) *ProductImage {
	return &ProductImage{
		ID:          uuid.New(),
		ProductID:   productID,
		ObjectKey:   objectKey,
		ContentType: contentType,
		Size:        size,
	}
}
