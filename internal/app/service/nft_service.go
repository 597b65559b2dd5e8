package service

import (
	"context"
	"fmt"

	"wallet_searcher/internal/app/port"
	"wallet_searcher/internal/domain/entity"
	"wallet_searcher/internal/pkg/utils"
)

// NFTServiceImpl collects the NFTs held by a single wallet. NFTs are token
// accounts under the legacy token program holding exactly one unit of a
// zero-decimal mint; names and collection references come from the mint's
// Metaplex metadata.
type NFTServiceImpl struct {
	chains   port.ChainClientProvider
	metadata port.MetadataResolver
	logger   port.Logger
}

// NewNFTService creates a new NFTServiceImpl.
func NewNFTService(chains port.ChainClientProvider, metadata port.MetadataResolver, l port.Logger) *NFTServiceImpl {
	return &NFTServiceImpl{
		chains:   chains,
		metadata: metadata,
		logger:   l,
	}
}

// CollectWalletNFTs gathers the wallet's NFTs for one batch step.
// nextOrdinal is the 1-based position the wallet's first row would take in
// the batch result; it numbers the placeholder names of NFTs without
// on-chain metadata. A returned error is a wallet-level failure.
func (s *NFTServiceImpl) CollectWalletNFTs(ctx context.Context, walletAddress string, params entity.NFTSearchParams, nextOrdinal int) ([]entity.NFTHolding, error) {
	chain, err := s.chains.Client()
	if err != nil {
		return nil, err
	}

	accounts, err := chain.GetTokenAccountsByOwner(ctx, walletAddress, entity.TokenProgramLegacy)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate token accounts: %w", err)
	}

	wantedCollections := map[string]bool{}
	if !params.ShowAllNFTs {
		for _, addr := range utils.SplitLines(params.Collections) {
			wantedCollections[addr] = true
		}
	}

	var holdings []entity.NFTHolding
	for _, account := range accounts {
		// One unit of a zero-decimal mint is the NFT shape.
		if account.Decimals != 0 || account.RawAmount != "1" {
			continue
		}

		meta, err := chain.GetAssetMetadata(ctx, account.Mint)
		if err != nil {
			s.logger.Warn("Failed to get NFT metadata", "wallet", walletAddress, "mint", account.Mint, "error", err)
			meta = nil
		}

		var name, collectionAddress string
		if meta != nil {
			name = meta.Name
			collectionAddress = meta.CollectionAddress
		}

		if !params.ShowAllNFTs {
			if collectionAddress == "" || !wantedCollections[collectionAddress] {
				continue
			}
		}

		collectionName := fallbackCollectionName
		if collectionAddress != "" {
			collectionName = s.metadata.GetCollectionName(ctx, collectionAddress)
		}

		if name == "" {
			name = fmt.Sprintf("NFT #%d", nextOrdinal+len(holdings))
		}

		holdings = append(holdings, entity.NFTHolding{
			WalletAddress:     walletAddress,
			NFTAddress:        account.Mint,
			NFTName:           name,
			CollectionAddress: collectionAddress,
			CollectionName:    collectionName,
		})
	}

	s.logger.Debug("NFTs collected for wallet", "wallet", walletAddress, "count", len(holdings))
	return holdings, nil
}
