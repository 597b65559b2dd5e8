package port

import (
	"context"

	"wallet_searcher/internal/domain/entity"
)

// ChainClient defines the interface for querying the Solana ledger.
// Implementations are expected to pace their own request rate; callers add
// the coarser inter-wallet throttling on top.
type ChainClient interface {
	// GetBalance returns the native balance of the wallet, in lamports.
	GetBalance(ctx context.Context, walletAddress string) (uint64, error)

	// GetTokenAccountsByOwner enumerates the wallet's token accounts under
	// the given token program variant.
	GetTokenAccountsByOwner(ctx context.Context, walletAddress string, variant entity.TokenProgramVariant) ([]entity.TokenAccountBalance, error)

	// GetTokenAccountsByMint enumerates the wallet's token accounts holding
	// the given mint, regardless of program variant.
	GetTokenAccountsByMint(ctx context.Context, walletAddress string, mint string) ([]entity.TokenAccountBalance, error)

	// GetAssetMetadata resolves the on-chain Metaplex metadata for a mint.
	// It returns nil (not an error) when the mint has no metadata account.
	GetAssetMetadata(ctx context.Context, mint string) (*entity.OnChainMetadata, error)

	// Probe performs a lightweight connectivity check against the endpoint.
	Probe(ctx context.Context) error
}

// ChainClientFactory builds a ChainClient for an endpoint URL. The settings
// collaborator uses it to probe candidate endpoints before accepting them.
type ChainClientFactory func(endpoint string) ChainClient

// ChainClientProvider hands out the ChainClient bound to the currently
// configured endpoint. It returns an error when no endpoint is set.
type ChainClientProvider interface {
	Client() (ChainClient, error)
}
