package port

import (
	"context"

	"wallet_searcher/internal/domain/entity"
)

// AddressResolver turns the inline address block and optional file into the
// deduplicated wallet list for a batch.
type AddressResolver interface {
	Resolve(ctx context.Context, inline string, filePath string) ([]string, error)
}

// TokenCollector gathers the fungible-token holdings of one wallet. The
// returned float64 is the wallet's aggregate USDC value.
type TokenCollector interface {
	CollectWalletTokens(ctx context.Context, walletAddress string, params entity.TokenSearchParams) ([]entity.TokenHolding, float64, error)
}

// NFTCollector gathers the NFTs of one wallet. nextOrdinal is the 1-based
// batch position of the wallet's first row, used to number NFTs without a
// name.
type NFTCollector interface {
	CollectWalletNFTs(ctx context.Context, walletAddress string, params entity.NFTSearchParams, nextOrdinal int) ([]entity.NFTHolding, error)
}
