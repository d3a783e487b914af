package factory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go-commodity-market/domain"
)

// Catalog a fixed, in-memory set of commodities. Safe for concurrent reads.
type Catalog struct {
	commodities map[string]domain.Commodity
}

// NewCatalog returns a catalog of the given commodities. Federal Reserve Notes,
// valued at 1, are always present unless overridden.
func NewCatalog(commodities ...domain.Commodity) *Catalog {
	c := &Catalog{
		commodities: map[string]domain.Commodity{
			domain.FederalReserveNote: domain.NewCommodity(domain.FederalReserveNote, decimal.NewFromInt(1)),
		},
	}
	for _, commodity := range commodities {
		c.commodities[commodity.Name] = commodity
	}
	return c
}

// Build returns the catalog entry for name.
func (c *Catalog) Build(_ context.Context, name string) (domain.Commodity, error) {
	commodity, ok := c.commodities[name]
	if !ok {
		return domain.Commodity{}, fmt.Errorf("%w: %q", ErrUnknownCommodity, name)
	}
	return commodity, nil
}

// Len number of commodities in the catalog
func (c *Catalog) Len() int {
	return len(c.commodities)
}
