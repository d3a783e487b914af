package coinbase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go-commodity-market/domain"
)

const ApiUrlBase = "https://api.coinbase.com/v2"

// Service wraps the coinbase exchange rates REST API
type Service interface {
	ExchangeRates(ctx context.Context, currency domain.Currency) (domain.Rates, error)
}

// service coinbase API
type service struct {
	// url base API url
	url string

	// client for HTTP requests
	client http.Client
}

// NewService constructs a valid coinbase Service talking to the API at url, normally ApiUrlBase.
func NewService(url string) Service {
	return &service{
		url: url,
		client: http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// ExchangeRates loads how many units of every known currency one unit of currency buys.
// Rates change every minute.
func (s *service) ExchangeRates(ctx context.Context, currency domain.Currency) (domain.Rates, error) {
	type Response struct {
		Data struct {
			Currency string
			Rates    map[string]string // maps currency codes to rates
		}
	}

	url := fmt.Sprintf("%v/exchange-rates?currency=%v", s.url, currency)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building http request: %w", err)
	}
	httpResponse, err := s.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http get: unexpected status %v", httpResponse.Status)
	}

	var response Response
	bytes, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, fmt.Errorf("reading json: %w", err)
	}

	err = json.Unmarshal(bytes, &response)
	if err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}

	rates := domain.Rates{}
	for k, v := range response.Data.Rates {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("bad rate value [%v]: %w", k, err)
		}
		rates[domain.Currency(k)] = d
	}

	return rates, nil
}
