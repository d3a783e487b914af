// Package factory resolves commodity names to valued commodities.
//
// Implementations may be backed by a fixed catalog, a SQLite table or a live
// exchange-rate feed. Any of them can be combined with Chain.
package factory

import (
	"context"
	"errors"
	"fmt"

	"go-commodity-market/domain"
)

// ErrUnknownCommodity is returned when a factory has no commodity by the requested name.
var ErrUnknownCommodity = errors.New("unknown commodity")

// Factory builds commodities by name
type Factory interface {
	Build(ctx context.Context, name string) (domain.Commodity, error)
}

// Func adapts a plain function to a Factory.
type Func func(ctx context.Context, name string) (domain.Commodity, error)

// Build calls f(ctx, name).
func (f Func) Build(ctx context.Context, name string) (domain.Commodity, error) {
	return f(ctx, name)
}

// Chain returns a Factory asking each factory in turn. The first that knows
// the name wins; any error other than ErrUnknownCommodity stops the search.
func Chain(factories ...Factory) Factory {
	return Func(func(ctx context.Context, name string) (domain.Commodity, error) {
		for _, f := range factories {
			c, err := f.Build(ctx, name)
			if errors.Is(err, ErrUnknownCommodity) {
				continue
			}
			return c, err
		}
		return domain.Commodity{}, fmt.Errorf("%w: %q", ErrUnknownCommodity, name)
	})
}
