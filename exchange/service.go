package exchange

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go-commodity-market/basket"
	"go-commodity-market/domain"
)

// Service values one basket against another
type Service interface {
	// Exchange returns the change owed when input is handed over for deliverable,
	// as a store of Federal Reserve Notes. It fails with domain.ErrInsufficientFunds
	// when input is worth less than deliverable.
	Exchange(input, deliverable *basket.Basket) (domain.CommodityStore, error)

	// ValueDifference returns input's total valuation minus deliverable's.
	ValueDifference(input, deliverable *basket.Basket) decimal.Decimal
}

// service holds no state, so one value can be shared freely.
type service struct{}

// NewService constructs a valid Service
func NewService() Service {
	return service{}
}

func (s service) Exchange(input, deliverable *basket.Basket) (domain.CommodityStore, error) {
	difference := s.ValueDifference(input, deliverable)
	if difference.IsNegative() {
		return domain.CommodityStore{}, fmt.Errorf("exchange short by %v: %w", difference.Neg(), domain.ErrInsufficientFunds)
	}
	return domain.Money(difference), nil
}

func (s service) ValueDifference(input, deliverable *basket.Basket) decimal.Decimal {
	return input.TotalValuation().Sub(deliverable.TotalValuation())
}
