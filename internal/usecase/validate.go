package usecase

import (
	"strings"

	"github.com/DRSN-tech/bikeshop-backend/pkg/e"
	"github.com/shopspring/decimal"
)

const (
	maxPageSize     = 100
	maxMoneyScale   = 2
	maxUploadImages = 10
)

var maxMoney = decimal.New(1, 10) // 10^10

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return e.ErrNameRequired
	}
	return nil
}

// validateMoney: неотрицательная сумма с точностью до копеек.
func validateMoney(d decimal.Decimal) error {
	if d.IsNegative() || d.GreaterThanOrEqual(maxMoney) {
		return e.ErrInvalidPrice
	}
	if !d.Equal(d.Round(maxMoneyScale)) {
		return e.ErrPricePrecision
	}
	return nil
}

func validateStock(stock int) error {
	if stock < 0 {
		return e.ErrNegativeStock
	}
	return nil
}

func validatePage(page, pageSize int) error {
	if page < 1 || pageSize < 1 || pageSize > maxPageSize {
		return e.ErrInvalidPagination
	}
	return nil
}
