package payment

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go-commodity-market/basket"
	"go-commodity-market/domain"
	"go-commodity-market/exchange"
	"go-commodity-market/factory"
)

// Service builds baskets and settles payments against loans
type Service interface {
	// BuildPaymentBasket returns a new basket holding quantity units of the named commodity.
	BuildPaymentBasket(ctx context.Context, commodityName string, quantity decimal.Decimal) (*basket.Basket, error)

	// BuildLoanBasket returns a new basket representing quantity units of the named commodity owed.
	BuildLoanBasket(ctx context.Context, commodityName string, quantity decimal.Decimal) (*basket.Basket, error)

	// HandlePaymentTransaction applies payment to loan and returns what is still owed,
	// denominated in the loan's commodity.
	//
	// On success the oldest entry is taken out of loan: the caller's basket is modified.
	// When payment is worth less than loan nothing is modified and the error
	// wraps domain.ErrInsufficientFunds.
	HandlePaymentTransaction(ctx context.Context, payment, loan *basket.Basket, amount decimal.Decimal) (*basket.Basket, error)

	// Settle behaves like HandlePaymentTransaction and also reports the
	// Federal Reserve Note change computed by the exchange.
	Settle(ctx context.Context, payment, loan *basket.Basket, amount decimal.Decimal) (Settlement, error)
}

// Settlement outcome of a successful payment transaction
type Settlement struct {
	// Change what the payment is worth beyond the loan, in Federal Reserve Notes
	Change domain.CommodityStore

	// Remaining still owed, denominated in the loan's commodity
	Remaining *basket.Basket
}

// service payment manager
type service struct {
	// exchange values the payment against the loan
	exchange exchange.Service

	// factory resolves commodity names
	factory factory.Factory
}

// NewService constructs a valid Service
func NewService(e exchange.Service, f factory.Factory) Service {
	return &service{
		exchange: e,
		factory:  f,
	}
}

func (s *service) BuildPaymentBasket(ctx context.Context, commodityName string, quantity decimal.Decimal) (*basket.Basket, error) {
	return s.buildBasket(ctx, "payment", commodityName, quantity)
}

func (s *service) BuildLoanBasket(ctx context.Context, commodityName string, quantity decimal.Decimal) (*basket.Basket, error) {
	return s.buildBasket(ctx, "loan", commodityName, quantity)
}

func (s *service) buildBasket(ctx context.Context, kind string, commodityName string, quantity decimal.Decimal) (*basket.Basket, error) {
	if commodityName == "" {
		return nil, fmt.Errorf("%w: commodity name must be a non-empty string", domain.ErrInvalidInput)
	}
	if !quantity.IsPositive() {
		return nil, fmt.Errorf("%w: the %v commodity quantity must be more than 0", domain.ErrOutOfRange, kind)
	}

	commodity, err := s.factory.Build(ctx, commodityName)
	if err != nil {
		return nil, err
	}

	b := basket.New()
	if err := b.Add(commodity, quantity); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) HandlePaymentTransaction(ctx context.Context, payment, loan *basket.Basket, amount decimal.Decimal) (*basket.Basket, error) {
	settlement, err := s.Settle(ctx, payment, loan, amount)
	if err != nil {
		return nil, err
	}
	return settlement.Remaining, nil
}

func (s *service) Settle(ctx context.Context, payment, loan *basket.Basket, amount decimal.Decimal) (Settlement, error) {
	if !amount.IsPositive() {
		return Settlement{}, fmt.Errorf("%w: the payment commodity amount must be more than 0", domain.ErrOutOfRange)
	}

	change, err := s.exchange.Exchange(payment, loan)
	if err != nil {
		return Settlement{}, err
	}

	// loan is only modified once everything that can fail has succeeded
	front, err := loan.Peek()
	if err != nil {
		return Settlement{}, err
	}

	commodity, err := s.factory.Build(ctx, front.Commodity.Name)
	if err != nil {
		return Settlement{}, err
	}

	remaining := basket.New()
	if err := remaining.Add(commodity, change.Quantity); err != nil {
		return Settlement{}, err
	}

	if _, err := loan.Take(); err != nil {
		return Settlement{}, err
	}
	return Settlement{Change: change, Remaining: remaining}, nil
}
