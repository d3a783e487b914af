package exchange

import (
	"time"

	"github.com/go-kit/log"
	"github.com/shopspring/decimal"
	"go-commodity-market/basket"
	"go-commodity-market/domain"
)

// loggingService decorates an exchange.Service with logging
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

func (s *loggingService) Exchange(input, deliverable *basket.Basket) (change domain.CommodityStore, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "exchange",
			"input", input.TotalValuation(),
			"deliverable", deliverable.TotalValuation(),
			"change", change.Quantity,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Exchange(input, deliverable)
}

func (s *loggingService) ValueDifference(input, deliverable *basket.Basket) (difference decimal.Decimal) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "value_difference",
			"difference", difference,
			"took", time.Since(begin),
		)
	}(time.Now())
	return s.next.ValueDifference(input, deliverable)
}
