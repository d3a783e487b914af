package coinbase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-kit/log"
	"go-commodity-market/domain"
)

// cachingService decorates a coinbase.Service with a cache of exchange rates.
// The cachingService is concurrency safe and will periodically refresh cached values.
type cachingService struct {
	// next the service being decorated with a cache
	next Service
	// cache the cache of rates
	cache map[domain.Currency]domain.Rates

	// updateFrequency how often to refresh cached values
	updateFrequency time.Duration

	// lock synchronizes access to cache to make it concurrency safe
	lock sync.RWMutex

	logger log.Logger

	// ctx bounds the lifetime of the refresh go-routines
	ctx context.Context
}

// NewCachingService returns a new caching Service.
// Cached currencies are refreshed in the background until ctx ends, after which they are evicted.
func NewCachingService(ctx context.Context, updateFrequency time.Duration, logger log.Logger, s Service) Service {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &cachingService{
		next:            s,
		cache:           map[domain.Currency]domain.Rates{},
		updateFrequency: updateFrequency,
		logger:          logger,
		ctx:             ctx,
	}
}

// ExchangeRates looks up exchange rates and caches the results
func (s *cachingService) ExchangeRates(ctx context.Context, currency domain.Currency) (domain.Rates, error) {
	s.lock.RLock()
	rates, ok := s.cache[currency]
	s.lock.RUnlock()

	if ok {
		return rates, nil
	}

	// Concurrent misses for the same currency may all hit the next service.
	// Only the first to store a value starts the refresh loop.
	rates, firstTime, err := s.refreshNow(ctx, currency)
	if err != nil {
		return nil, fmt.Errorf("refreshing cache [%v]: %w", currency, err)
	}
	if firstTime {
		go s.refreshPeriodically(currency)
	}
	return rates, nil
}

// refreshNow refreshes a cached entry immediately
func (s *cachingService) refreshNow(ctx context.Context, currency domain.Currency) (domain.Rates, bool, error) {
	rates, err := s.next.ExchangeRates(ctx, currency)
	if err != nil {
		return nil, false, fmt.Errorf("refresh [%v]: %w", currency, err)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	_, ok := s.cache[currency]
	s.cache[currency] = rates
	return rates, !ok, nil
}

// refreshPeriodically refreshes a cached entry on a given schedule.
// This is expected to be called from a go-routine for each currency.
func (s *cachingService) refreshPeriodically(currency domain.Currency) {
	ticker := time.NewTicker(s.updateFrequency)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			_, _, err := s.refreshNow(s.ctx, currency)
			if err != nil {
				// keep the stale rates, the next tick may succeed
				s.logger.Log("msg", "periodic refresh failed", "currency", currency, "err", err)
			}
		case <-s.ctx.Done():
			s.uncache(currency)
			return
		}
	}
}

// uncache safely removes currency from cachingService
func (s *cachingService) uncache(currency domain.Currency) {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.cache, currency)
}
