package factory

import (
	"context"
	"time"

	"github.com/go-kit/log"
	"go-commodity-market/domain"
)

// loggingFactory decorates a Factory with logging
type loggingFactory struct {
	next   Factory
	logger log.Logger
}

// NewLoggingFactory returns a new logging Factory
func NewLoggingFactory(logger log.Logger, f Factory) Factory {
	return &loggingFactory{
		next:   f,
		logger: logger,
	}
}

func (f *loggingFactory) Build(ctx context.Context, name string) (commodity domain.Commodity, err error) {
	defer func(begin time.Time) {
		f.logger.Log(
			"method", "build",
			"name", name,
			"valuation", commodity.CurrentValuation,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Build(ctx, name)
}
