package infrastructure

import (
	"fmt"
	"path"
	"strings"

	"github.com/DRSN-tech/bikeshop-backend/pkg/e"
)

// GetExtensionFromMIME возвращает расширение файла по MIME-типу изображения.
// Поддерживает jpeg, jpg, png, webp. Возвращает ошибку e.ErrUnsupportedMediaType для неподдерживаемых типов.
func GetExtensionFromMIME(mime string) (string, error) {
	switch mime {
	case "image/jpeg", "image/jpg":
		return "jpg", nil
	case "image/png":
		return "png", nil
	case "image/webp":
		return "webp", nil
	default:
		return "bin", e.ErrUnsupportedMediaType
	}
}

// ObjectKey собирает ключ объекта вида <prefix>/<имя>-<id>.<ext>.
// От имени файла остаётся только базовое имя без расширения.
func ObjectKey(prefix, fileName, id, ext string) string {
	base := strings.TrimSuffix(path.Base(fileName), path.Ext(fileName))
	if base == "" || base == "." || base == "/" {
		base = "image"
	}
	return fmt.Sprintf("%s/%s-%s.%s", prefix, base, id, ext)
}
