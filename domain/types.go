package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// FederalReserveNote the name of the monetary commodity used for change
const FederalReserveNote = "Federal Reserve Note"

// Currency a currency code
type Currency string

// Rates maps a currency code to how many units of it one unit of the base currency buys
type Rates map[Currency]decimal.Decimal

// Commodity a valued item. Commodities are immutable once built by a factory.
type Commodity struct {
	// Name identifies the commodity. Baskets key their entries by it.
	Name string

	// CurrentValuation worth of one unit now
	CurrentValuation decimal.Decimal

	// AverageValuation historical worth of one unit, informational only
	AverageValuation decimal.Decimal
}

// NewCommodity builds a commodity whose average valuation equals its current one.
func NewCommodity(name string, valuation decimal.Decimal) Commodity {
	return Commodity{
		Name:             name,
		CurrentValuation: valuation,
		AverageValuation: valuation,
	}
}

// CommodityStore a quantity held of one commodity
type CommodityStore struct {
	Commodity Commodity
	Quantity  decimal.Decimal
}

// CalculateWorth returns quantity × current valuation.
func (s CommodityStore) CalculateWorth() decimal.Decimal {
	return s.Quantity.Mul(s.Commodity.CurrentValuation)
}

// Equal reports whether both stores hold the same quantity of the same commodity.
// Decimals are compared by value, so 3 and 3.00 are equal.
func (s CommodityStore) Equal(o CommodityStore) bool {
	return s.Commodity.Name == o.Commodity.Name &&
		s.Commodity.CurrentValuation.Equal(o.Commodity.CurrentValuation) &&
		s.Commodity.AverageValuation.Equal(o.Commodity.AverageValuation) &&
		s.Quantity.Equal(o.Quantity)
}

// Stat returns the presentation record for this store.
func (s CommodityStore) Stat() Stat {
	return Stat{
		Name:      s.Commodity.Name,
		Valuation: s.Commodity.CurrentValuation,
		Quantity:  s.Quantity,
		Subtotal:  s.CalculateWorth(),
	}
}

// Money returns a store of Federal Reserve Notes worth exactly quantity.
func Money(quantity decimal.Decimal) CommodityStore {
	return CommodityStore{
		Commodity: NewCommodity(FederalReserveNote, decimal.NewFromInt(1)),
		Quantity:  quantity,
	}
}

// Stat one line of a basket's statistics, consumed by the presentation layer
type Stat struct {
	Name      string
	Valuation decimal.Decimal
	Quantity  decimal.Decimal
	Subtotal  decimal.Decimal
}

// MarshalJSON renders the decimals as JSON numbers rather than strings.
func (s Stat) MarshalJSON() ([]byte, error) {
	type record struct {
		Name      string      `json:"name"`
		Valuation json.Number `json:"valuation"`
		Quantity  json.Number `json:"quantity"`
		Subtotal  json.Number `json:"subtotal"`
	}
	return json.Marshal(record{
		Name:      s.Name,
		Valuation: json.Number(s.Valuation.String()),
		Quantity:  json.Number(s.Quantity.String()),
		Subtotal:  json.Number(s.Subtotal.String()),
	})
}
