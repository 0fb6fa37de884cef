package currency

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRates is the normalized quote record against the local currency.
// EUR and BRL rates are cross rates derived from USD quotes, never fetched
// directly.
type ExchangeRates struct {
	USDToLocal       decimal.Decimal `json:"usd_to_local"`
	EURToLocal       decimal.Decimal `json:"eur_to_local"`
	BRLToLocal       decimal.Decimal `json:"brl_to_local"`
	LastUpdatedUTC   time.Time       `json:"last_updated_utc"`
	LastUpdatedLocal time.Time       `json:"last_updated_local"`
}

type liveResponse struct {
	Success   bool                       `json:"success"`
	Timestamp int64                      `json:"timestamp"`
	Source    string                     `json:"source"`
	Quotes    map[string]decimal.Decimal `json:"quotes"`
	Error     *liveError                 `json:"error"`
}

type liveError struct {
	Code int    `json:"code"`
	Info string `json:"info"`
}
