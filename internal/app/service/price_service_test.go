package service

import (
	"context"
	"errors"
	"testing"

	"wallet_searcher/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUSDValueUSDCIsIdentityWithoutQuote(t *testing.T) {
	quotes := &fakeQuotes{}
	svc := NewPriceService(quotes, 50, testLogger{})

	// 12.5 USDC in raw units.
	v := svc.GetUSDValue(context.Background(), entity.USDCMint, "12500000", entity.USDCDecimals)
	require.NotNil(t, v)
	assert.InDelta(t, 12.5, *v, 1e-9)
	assert.Zero(t, quotes.calls, "the reference stable coin must not hit the quote API")
}

func TestGetUSDValueConvertsOutAmount(t *testing.T) {
	quotes := &fakeQuotes{responses: map[string]string{"MintA": "1234567"}}
	svc := NewPriceService(quotes, 50, testLogger{})

	v := svc.GetUSDValue(context.Background(), "MintA", "1000000000", 9)
	require.NotNil(t, v)
	assert.InDelta(t, 1.234567, *v, 1e-9)
}

func TestGetUSDValueUnavailableQuote(t *testing.T) {
	svc := NewPriceService(&fakeQuotes{}, 50, testLogger{})
	assert.Nil(t, svc.GetUSDValue(context.Background(), "MintB", "1000", 6))
}

func TestGetUSDValueTransportErrorIsNil(t *testing.T) {
	quotes := &fakeQuotes{err: errors.New("connection refused")}
	svc := NewPriceService(quotes, 50, testLogger{})
	assert.Nil(t, svc.GetUSDValue(context.Background(), "MintC", "1000", 6))
}

func TestGetUSDValueBadRawAmount(t *testing.T) {
	svc := NewPriceService(&fakeQuotes{}, 50, testLogger{})
	assert.Nil(t, svc.GetUSDValue(context.Background(), "MintD", "garbage", 6))
}
