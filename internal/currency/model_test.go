package currency

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvdapps/panorama/internal/httpapi"
)

func TestExchangeRates_JSONRoundTrip(t *testing.T) {
	lastUTC := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	rates := ExchangeRates{
		USDToLocal:       decimal.RequireFromString("43.3061"),
		EURToLocal:       decimal.RequireFromString("47.0105"),
		BRLToLocal:       decimal.RequireFromString("8.1491"),
		LastUpdatedUTC:   lastUTC,
		LastUpdatedLocal: lastUTC.In(time.FixedZone("-03", -3*60*60)),
	}

	payload, err := json.Marshal(rates)
	require.NoError(t, err)

	got, err := httpapi.Decode[ExchangeRates](payload)
	require.NoError(t, err)

	assert.True(t, got.USDToLocal.Equal(rates.USDToLocal), got.USDToLocal.String())
	assert.True(t, got.EURToLocal.Equal(rates.EURToLocal), got.EURToLocal.String())
	assert.True(t, got.BRLToLocal.Equal(rates.BRLToLocal), got.BRLToLocal.String())
	assert.True(t, got.LastUpdatedUTC.Equal(rates.LastUpdatedUTC))
	assert.True(t, got.LastUpdatedLocal.Equal(rates.LastUpdatedLocal))
}
