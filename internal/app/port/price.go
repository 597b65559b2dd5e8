package port

import (
	"context"

	"wallet_searcher/internal/entity"
)

// QuoteClient defines the interface for requesting swap quotes from the
// price API. A nil response with a nil error means the quote was
// unavailable (no route, malformed payload); transport-level failures are
// returned as errors and are equally treated as "unavailable" by callers.
type QuoteClient interface {
	GetQuote(ctx context.Context, inputMint, outputMint, rawAmount string, slippageBps int) (*entity.QuoteResponse, error)
}

// PriceOracle converts a raw token amount into its USD-stable-coin value.
type PriceOracle interface {
	// GetUSDValue returns nil when the value cannot be determined; it never
	// returns an error, because pricing failures must not abort enumeration.
	GetUSDValue(ctx context.Context, mint string, rawAmount string, decimals uint8) *float64
}
