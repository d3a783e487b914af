package payment

import (
	"context"
	"time"

	"github.com/go-kit/log"
	"github.com/shopspring/decimal"
	"go-commodity-market/basket"
)

// loggingService decorates a payment.Service with logging
type loggingService struct {
	logger log.Logger
	next   Service
}

// NewLoggingService returns a new instance of a logging Service
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{
		next:   s,
		logger: logger,
	}
}

func (s *loggingService) BuildPaymentBasket(ctx context.Context, commodityName string, quantity decimal.Decimal) (b *basket.Basket, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "build_payment_basket",
			"commodity", commodityName,
			"quantity", quantity,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.BuildPaymentBasket(ctx, commodityName, quantity)
}

func (s *loggingService) BuildLoanBasket(ctx context.Context, commodityName string, quantity decimal.Decimal) (b *basket.Basket, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "build_loan_basket",
			"commodity", commodityName,
			"quantity", quantity,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.BuildLoanBasket(ctx, commodityName, quantity)
}

func (s *loggingService) HandlePaymentTransaction(ctx context.Context, payment, loan *basket.Basket, amount decimal.Decimal) (remaining *basket.Basket, err error) {
	paid, owed := payment.TotalValuation(), loan.TotalValuation()
	defer func(begin time.Time) {
		var left decimal.Decimal
		if remaining != nil {
			left = remaining.TotalValuation()
		}
		s.logger.Log(
			"method", "handle_payment_transaction",
			"amount", amount,
			"paid", paid,
			"owed", owed,
			"remaining", left,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.HandlePaymentTransaction(ctx, payment, loan, amount)
}

func (s *loggingService) Settle(ctx context.Context, payment, loan *basket.Basket, amount decimal.Decimal) (settlement Settlement, err error) {
	paid, owed := payment.TotalValuation(), loan.TotalValuation()
	defer func(begin time.Time) {
		var left decimal.Decimal
		if settlement.Remaining != nil {
			left = settlement.Remaining.TotalValuation()
		}
		s.logger.Log(
			"method", "settle",
			"amount", amount,
			"paid", paid,
			"owed", owed,
			"change", settlement.Change.Quantity,
			"remaining", left,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Settle(ctx, payment, loan, amount)
}
