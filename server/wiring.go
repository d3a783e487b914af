package main

import (
	"context"
	"fmt"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go-commodity-market/coinbase"
	"go-commodity-market/config"
	"go-commodity-market/domain"
	"go-commodity-market/exchange"
	"go-commodity-market/factory"
	"go-commodity-market/payment"
)

// newLogger returns a logfmt logger filtered at lvl
func newLogger(w io.Writer, lvl string) (log.Logger, error) {
	var opt level.Option
	switch lvl {
	case "debug":
		opt = level.AllowDebug()
	case "info", "":
		opt = level.AllowInfo()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		return nil, fmt.Errorf("unknown log level %q", lvl)
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	return level.NewFilter(logger, opt), nil
}

// market the wired services of one process
type market struct {
	payments payment.Service
	factory  factory.Factory
	catalog  *config.Catalog
}

func (m *market) Close() error {
	return m.catalog.Close()
}

// newMarket wires the catalog, the optional live rate feed and the services,
// each wrapped in its logging decorator. Background rate refreshes stop when ctx ends.
func newMarket(ctx context.Context, cfg config.Env, logger log.Logger) (*market, error) {
	catalog, err := config.LoadCatalog(ctx, cfg.Catalog)
	if err != nil {
		return nil, err
	}

	f := catalog.Factory
	if cfg.LiveRates {
		rates := coinbase.NewService(cfg.RatesURL)
		rates = coinbase.NewLoggingService(level.Debug(log.With(logger, "component", "coinbase_rest")), rates)
		rates = coinbase.NewCachingService(ctx, cfg.RateRefresh, level.Warn(log.With(logger, "component", "coinbase_cache")), rates)
		f = factory.Chain(f, factory.NewMarket(rates, domain.Currency(cfg.BaseCurrency), catalog.Aliases))
	}
	f = factory.NewLoggingFactory(level.Debug(log.With(logger, "component", "factory")), f)

	ex := exchange.NewService()
	ex = exchange.NewLoggingService(level.Debug(log.With(logger, "component", "exchange")), ex)

	payments := payment.NewService(ex, f)
	payments = payment.NewLoggingService(level.Info(log.With(logger, "component", "payment")), payments)

	return &market{payments: payments, factory: f, catalog: catalog}, nil
}
