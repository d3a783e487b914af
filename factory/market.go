package factory

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"go-commodity-market/coinbase"
	"go-commodity-market/domain"
)

// valuationPlaces decimal places kept when inverting an exchange rate
const valuationPlaces = 8

// Market values commodities from a live exchange-rate feed, in units of the
// base currency. A commodity name is used as its currency code unless an
// alias maps it to another one.
type Market struct {
	rates   coinbase.Service
	base    domain.Currency
	aliases map[string]domain.Currency

	// lock guards averages
	lock     sync.Mutex
	averages map[string]runningMean
}

type runningMean struct {
	sum decimal.Decimal
	n   int64
}

// NewMarket constructs a Market. Federal Reserve Notes are aliased to USD.
func NewMarket(rates coinbase.Service, base domain.Currency, aliases map[string]domain.Currency) *Market {
	m := &Market{
		rates:    rates,
		base:     base,
		aliases:  map[string]domain.Currency{domain.FederalReserveNote: "USD"},
		averages: map[string]runningMean{},
	}
	for name, code := range aliases {
		m.aliases[name] = code
	}
	return m
}

// Build values one unit of name in the base currency. The average valuation
// is the mean of every valuation this Market has produced for name.
func (m *Market) Build(ctx context.Context, name string) (domain.Commodity, error) {
	code, ok := m.aliases[name]
	if !ok {
		code = domain.Currency(name)
	}

	valuation := decimal.NewFromInt(1)
	if code != m.base {
		rates, err := m.rates.ExchangeRates(ctx, m.base)
		if err != nil {
			return domain.Commodity{}, fmt.Errorf("build [%v]: %w", name, err)
		}
		rate, ok := rates[code]
		if !ok {
			return domain.Commodity{}, fmt.Errorf("%w: %q", ErrUnknownCommodity, name)
		}
		if !rate.IsPositive() {
			return domain.Commodity{}, fmt.Errorf("build [%v]: non-positive rate %v", name, rate)
		}
		valuation = decimal.NewFromInt(1).DivRound(rate, valuationPlaces)
	}

	return domain.Commodity{
		Name:             name,
		CurrentValuation: valuation,
		AverageValuation: m.observe(name, valuation),
	}, nil
}

// observe records valuation and returns the new mean for name
func (m *Market) observe(name string, valuation decimal.Decimal) decimal.Decimal {
	m.lock.Lock()
	defer m.lock.Unlock()
	mean := m.averages[name]
	mean.sum = mean.sum.Add(valuation)
	mean.n++
	m.averages[name] = mean
	return mean.sum.DivRound(decimal.NewFromInt(mean.n), valuationPlaces)
}
