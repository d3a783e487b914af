// Package config loads process settings from the environment and commodity
// catalogs from disk.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"go-commodity-market/coinbase"
)

// Env settings read from MARKET_* environment variables
type Env struct {
	// Addr HTTP listen address
	Addr string `env:"MARKET_ADDR" envDefault:":8080"`

	// BaseCurrency currency live valuations are expressed in
	BaseCurrency string `env:"MARKET_BASE_CURRENCY" envDefault:"USD"`

	// RateRefresh how often cached exchange rates are refreshed
	RateRefresh time.Duration `env:"MARKET_RATE_REFRESH" envDefault:"1m"`

	// RatesURL base URL of the exchange-rate API
	RatesURL string `env:"MARKET_RATES_URL"`

	// LiveRates enables valuing unknown commodities from the exchange-rate feed
	LiveRates bool `env:"MARKET_LIVE_RATES" envDefault:"false"`

	// Catalog path of a commodity catalog file or SQLite database
	Catalog string `env:"MARKET_CATALOG"`

	// LogLevel one of debug, info, warn, error
	LogLevel string `env:"MARKET_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads Env from the environment.
func ParseEnv() (Env, error) {
	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.RatesURL == "" {
		cfg.RatesURL = coinbase.ApiUrlBase
	}
	if cfg.RateRefresh <= 0 {
		return Env{}, fmt.Errorf("parse env: MARKET_RATE_REFRESH must be positive, got %v", cfg.RateRefresh)
	}
	return cfg, nil
}
