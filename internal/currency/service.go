// Package currency fetches live CurrencyLayer quotes and derives local
// cross rates for EUR and BRL.
package currency

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mvdapps/panorama/internal/cache"
	"github.com/mvdapps/panorama/internal/config"
	"github.com/mvdapps/panorama/internal/httpapi"
)

// CacheKey is the domain key for the currency cache entry.
const CacheKey = "currency"

// ratePlaces is the rounding applied to every derived rate.
const ratePlaces = 4

var foreignCurrencies = []string{"EUR", "BRL"}

// Service exposes the exchange-rate query surface. Quotes are fetched live
// unless a freshness gate admits a recent cached payload.
type Service struct {
	api      httpapi.Getter
	gate     *cache.Gate
	fresh    cache.Freshness
	cfg      config.CurrencyConfig
	location *time.Location
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithGate serves cached quotes while fresh admits them. Without a gate
// every call hits the network.
func WithGate(gate *cache.Gate, fresh cache.Freshness) ServiceOption {
	return func(s *Service) {
		s.gate = gate
		s.fresh = fresh
	}
}

// WithLocation sets the location of LastUpdatedLocal.
func WithLocation(loc *time.Location) ServiceOption {
	return func(s *Service) {
		s.location = loc
	}
}

// NewService creates a currency Service.
func NewService(api httpapi.Getter, cfg config.CurrencyConfig, opts ...ServiceOption) *Service {
	s := &Service{
		api:      api,
		cfg:      cfg,
		location: time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rates returns the current exchange rates against the local currency.
func (s *Service) Rates(ctx context.Context) (ExchangeRates, error) {
	var payload []byte
	var err error
	if s.gate != nil {
		payload, err = s.gate.Do(ctx, CacheKey, s.fresh, s.fetch)
	} else {
		payload, err = s.fetch(ctx)
	}
	if err != nil {
		return ExchangeRates{}, fmt.Errorf("currency: rates > %w", err)
	}

	response, err := httpapi.Decode[liveResponse](payload)
	if err != nil {
		return ExchangeRates{}, fmt.Errorf("currency: rates > %w", err)
	}
	rates, err := s.derive(response)
	if err != nil {
		return ExchangeRates{}, fmt.Errorf("currency: rates > %w", err)
	}
	return rates, nil
}

func (s *Service) fetch(ctx context.Context) ([]byte, error) {
	query := url.Values{
		"access_key": {s.cfg.APIKey},
		"currencies": {strings.Join(append([]string{s.cfg.Local}, foreignCurrencies...), ",")},
		"source":     {s.cfg.Source},
		"format":     {"1"},
	}
	body, err := s.api.Get(ctx, "/live", query)
	if err != nil {
		return nil, fmt.Errorf("api.Get > %w", err)
	}

	// only a fully usable payload may be cached; an upstream failure flag
	// or a missing quote must surface as an error here so the gate never
	// records it
	response, err := httpapi.Decode[liveResponse](body)
	if err != nil {
		return nil, err
	}
	if _, err := s.derive(response); err != nil {
		return nil, err
	}
	return body, nil
}

func (s *Service) derive(response liveResponse) (ExchangeRates, error) {
	if !response.Success {
		upstream := &httpapi.UpstreamError{}
		if response.Error != nil {
			upstream.Code = response.Error.Code
			upstream.Info = response.Error.Info
		}
		return ExchangeRates{}, upstream
	}

	usdToLocal, err := s.quote(response, s.cfg.Local)
	if err != nil {
		return ExchangeRates{}, err
	}
	usdToEUR, err := s.quote(response, "EUR")
	if err != nil {
		return ExchangeRates{}, err
	}
	usdToBRL, err := s.quote(response, "BRL")
	if err != nil {
		return ExchangeRates{}, err
	}

	lastUTC := time.Unix(response.Timestamp, 0).UTC()
	rates := ExchangeRates{
		USDToLocal:       usdToLocal.Round(ratePlaces),
		EURToLocal:       usdToLocal.Div(usdToEUR).Round(ratePlaces),
		BRLToLocal:       usdToLocal.Div(usdToBRL).Round(ratePlaces),
		LastUpdatedUTC:   lastUTC,
		LastUpdatedLocal: lastUTC.In(s.location),
	}
	if !rates.USDToLocal.IsPositive() || !rates.EURToLocal.IsPositive() || !rates.BRLToLocal.IsPositive() {
		return ExchangeRates{}, fmt.Errorf("non-positive derived rate: usd=%s eur=%s brl=%s",
			rates.USDToLocal, rates.EURToLocal, rates.BRLToLocal)
	}
	return rates, nil
}

func (s *Service) quote(response liveResponse, code string) (decimal.Decimal, error) {
	key := s.cfg.Source + code
	value, ok := response.Quotes[key]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("missing expected quote %q", key)
	}
	if !value.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("non-positive quote %q: %s", key, value)
	}
	return value, nil
}
