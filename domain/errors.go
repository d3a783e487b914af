package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Error kinds raised by the market. Callers match them with errors.Is; most
// are wrapped with a more specific message.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrOutOfRange        = errors.New("out of range")
	ErrEmptyBasket       = errors.New("Your basket is empty")
	ErrCommodityNotFound = errors.New("Commodity Not Found")
	ErrInsufficientFunds = errors.New("Input is worth less than deliverable")
)

// Bounds on user supplied quantities. Exponents beyond MaxQuantityExponent
// would expand into enormous numbers when rendered.
const (
	MaxQuantityLength   = 64
	MaxQuantityExponent = 32
)

// ParseQuantity parses a user supplied quantity.
func ParseQuantity(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: quantity must be numerical", ErrInvalidInput)
	}
	if len(s) > MaxQuantityLength {
		return decimal.Zero, fmt.Errorf("%w: quantity longer than %d characters", ErrInvalidInput, MaxQuantityLength)
	}
	q, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: quantity must be numerical: %q", ErrInvalidInput, s)
	}
	if exp := q.Exponent(); exp > MaxQuantityExponent || exp < -MaxQuantityExponent {
		return decimal.Zero, fmt.Errorf("%w: quantity exponent %d out of bounds", ErrInvalidInput, exp)
	}
	return q, nil
}
