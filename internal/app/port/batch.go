package port

import (
	"context"

	"wallet_searcher/internal/domain/entity"
)

// BatchOrchestrator validates a search request and runs the batch in the
// background. A nil return means the batch was accepted and its results
// will arrive through the ResultSink.
type BatchOrchestrator interface {
	StartTokenSearch(ctx context.Context, params entity.TokenSearchParams) error
	StartNFTSearch(ctx context.Context, params entity.NFTSearchParams) error
}
