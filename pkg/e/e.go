package e

import (
	"errors"
	"fmt"
)

// Базовые виды ошибок. Конкретные ошибки ниже оборачивают один из них,
// поэтому транспортный слой может проверять вид через errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
)

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Конфигурация
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// 404 Not Found
	ErrProductNotFound     = fmt.Errorf("product %w", ErrNotFound)
	ErrPartNotFound        = fmt.Errorf("product part %w", ErrNotFound)
	ErrVariantNotFound     = fmt.Errorf("part variant %w", ErrNotFound)
	ErrDependencyNotFound  = fmt.Errorf("variant dependency %w", ErrNotFound)
	ErrCustomPriceNotFound = fmt.Errorf("custom price %w", ErrNotFound)
	ErrCartNotFound        = fmt.Errorf("cart %w", ErrNotFound)

	// 400 Bad Request: конфигурация товара
	ErrProductUnavailable     = fmt.Errorf("%w: product is unavailable", ErrValidation)
	ErrProductOutOfStock      = fmt.Errorf("%w: product is out of stock", ErrValidation)
	ErrProductNotCustomisable = fmt.Errorf("%w: product is not customisable", ErrValidation)
	ErrVariantUnavailable     = fmt.Errorf("%w: variant is unavailable", ErrValidation)
	ErrVariantOutOfStock      = fmt.Errorf("%w: variant is out of stock", ErrValidation)
	ErrVariantNotInProduct    = fmt.Errorf("%w: variant does not belong to product", ErrValidation)
	ErrDependencyUnmet        = fmt.Errorf("%w: unmet dependency", ErrValidation)

	// 400 Bad Request: входные данные
	ErrStatusBadRequest     = fmt.Errorf("%w: bad request", ErrValidation)
	ErrMissingFields        = fmt.Errorf("%w: missing required fields", ErrValidation)
	ErrInvalidID            = fmt.Errorf("%w: invalid id", ErrValidation)
	ErrInvalidPrice         = fmt.Errorf("%w: invalid price", ErrValidation)
	ErrPricePrecision       = fmt.Errorf("%w: price must have at most 2 decimal places", ErrValidation)
	ErrNegativeStock        = fmt.Errorf("%w: stock quantity must not be negative", ErrValidation)
	ErrNameRequired         = fmt.Errorf("%w: name is required", ErrValidation)
	ErrInvalidPagination    = fmt.Errorf("%w: invalid pagination", ErrValidation)
	ErrEmptyCart            = fmt.Errorf("%w: cart must contain at least one item", ErrValidation)
	ErrExpectedMultipart    = fmt.Errorf("%w: expected multipart/form-data", ErrValidation)
	ErrNoImages             = fmt.Errorf("%w: no images provided", ErrValidation)
	ErrTooManyImages        = fmt.Errorf("%w: too many images", ErrValidation)
	ErrFileTooLarge         = fmt.Errorf("%w: file too large", ErrValidation)
	ErrUnsupportedMediaType = fmt.Errorf("%w: unsupported media type", ErrValidation)

	// 409 Conflict
	ErrCartAlreadyPurchased = fmt.Errorf("%w: cart already purchased", ErrConflict)
	ErrDependencyExists     = fmt.Errorf("%w: variant dependency already exists", ErrConflict)
	ErrReferencedRecord     = fmt.Errorf("%w: record is referenced by other records", ErrConflict)

	// 500
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
