package service

import (
	"context"

	"wallet_searcher/internal/app/port"
	"wallet_searcher/internal/domain/entity"
	"wallet_searcher/internal/pkg/metrics"

	"github.com/shopspring/decimal"
)

// PriceServiceImpl implements port.PriceOracle by pricing token amounts in
// USDC through the swap aggregator's quote endpoint. USDC itself is the
// reference asset and is priced locally without a network call.
type PriceServiceImpl struct {
	quotes      port.QuoteClient
	slippageBps int
	logger      port.Logger
}

// NewPriceService creates a new PriceServiceImpl.
func NewPriceService(quotes port.QuoteClient, slippageBps int, l port.Logger) *PriceServiceImpl {
	return &PriceServiceImpl{
		quotes:      quotes,
		slippageBps: slippageBps,
		logger:      l,
	}
}

// GetUSDValue returns the USDC value of rawAmount units of mint, or nil
// when no quote is available. It never returns an error; pricing failures
// degrade to "value unknown" and the caller decides whether that excludes
// the holding.
func (s *PriceServiceImpl) GetUSDValue(ctx context.Context, mint string, rawAmount string, decimals uint8) *float64 {
	raw, err := decimal.NewFromString(rawAmount)
	if err != nil {
		s.logger.Warn("Unparseable raw token amount", "mint", mint, "amount", rawAmount, "error", err)
		return nil
	}

	// The reference stable coin is worth its own amount.
	if mint == entity.USDCMint {
		value := raw.Shift(-int32(decimals)).InexactFloat64()
		return &value
	}

	quote, err := s.quotes.GetQuote(ctx, mint, entity.USDCMint, rawAmount, s.slippageBps)
	if err != nil {
		metrics.QuoteFailures.Inc()
		s.logger.Warn("Failed to get price quote", "mint", mint, "error", err)
		return nil
	}
	if quote == nil || quote.OutAmount == "" {
		metrics.QuoteFailures.Inc()
		s.logger.Debug("No price quote available", "mint", mint)
		return nil
	}

	outAmount, err := decimal.NewFromString(quote.OutAmount)
	if err != nil {
		metrics.QuoteFailures.Inc()
		s.logger.Warn("Unparseable quote outAmount", "mint", mint, "out_amount", quote.OutAmount, "error", err)
		return nil
	}

	value := outAmount.Shift(-int32(entity.USDCDecimals)).InexactFloat64()
	return &value
}
