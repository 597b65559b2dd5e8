package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"wallet_searcher/internal/app/port"
	"wallet_searcher/internal/domain/entity"
	"wallet_searcher/internal/pkg/metrics"
	"wallet_searcher/internal/pkg/utils"
)

var (
	// ErrNoTokenMints is returned when a restricted token search lists no
	// mints.
	ErrNoTokenMints = errors.New("please enter at least one token address or select 'Show all non-zero token balances'")

	// ErrNoCollections is returned when a restricted NFT search lists no
	// collections.
	ErrNoCollections = errors.New("please enter at least one NFT collection address or select 'Show all NFTs'")
)

// BatchServiceImpl orchestrates searches over the wallet list. Wallets are
// processed strictly sequentially with pacing delays; one batch per asset
// class may run at a time, a wallet failure never aborts the batch, and
// results are published through the sink once the whole batch is ranked.
type BatchServiceImpl struct {
	addresses port.AddressResolver
	tokens    port.TokenCollector
	nfts      port.NFTCollector
	settings  port.SettingsProvider
	sink      port.ResultSink
	logger    port.Logger

	tokenPolicy SchedulingPolicy
	nftPolicy   SchedulingPolicy

	tokenBusy atomic.Bool
	nftBusy   atomic.Bool
}

// NewBatchService creates a new BatchServiceImpl.
func NewBatchService(
	addresses port.AddressResolver,
	tokens port.TokenCollector,
	nfts port.NFTCollector,
	settings port.SettingsProvider,
	sink port.ResultSink,
	l port.Logger,
	tokenPolicy SchedulingPolicy,
	nftPolicy SchedulingPolicy,
) *BatchServiceImpl {
	return &BatchServiceImpl{
		addresses:   addresses,
		tokens:      tokens,
		nfts:        nfts,
		settings:    settings,
		sink:        sink,
		logger:      l,
		tokenPolicy: tokenPolicy,
		nftPolicy:   nftPolicy,
	}
}

// StartTokenSearch validates the request and launches the token batch in
// the background. Validation failures and the busy and missing-endpoint
// preconditions are reported synchronously; the batch itself publishes its
// outcome through the sink.
func (s *BatchServiceImpl) StartTokenSearch(ctx context.Context, params entity.TokenSearchParams) error {
	if !s.tokenBusy.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	wallets, err := s.prepare(ctx, params.Addresses, params.AddressFile)
	if err != nil {
		s.tokenBusy.Store(false)
		return err
	}
	if !params.ShowAllTokens && len(utils.SplitLines(params.SpecificMints)) == 0 {
		s.tokenBusy.Store(false)
		return ErrNoTokenMints
	}

	go s.runTokenBatch(wallets, params)
	return nil
}

// StartNFTSearch validates the request and launches the NFT batch in the
// background.
func (s *BatchServiceImpl) StartNFTSearch(ctx context.Context, params entity.NFTSearchParams) error {
	if !s.nftBusy.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	wallets, err := s.prepare(ctx, params.Addresses, params.AddressFile)
	if err != nil {
		s.nftBusy.Store(false)
		return err
	}
	if !params.ShowAllNFTs && len(utils.SplitLines(params.Collections)) == 0 {
		s.nftBusy.Store(false)
		return ErrNoCollections
	}

	go s.runNFTBatch(wallets, params)
	return nil
}

// prepare resolves the address set and checks the endpoint precondition.
// No ledger traffic beyond the endpoint probe happens before both pass.
func (s *BatchServiceImpl) prepare(ctx context.Context, inline string, filePath string) ([]string, error) {
	wallets, err := s.addresses.Resolve(ctx, inline, filePath)
	if err != nil {
		return nil, err
	}

	endpoint := s.settings.Endpoint()
	if endpoint == "" || !s.settings.Validate(ctx, endpoint) {
		return nil, ErrEndpointNotConfigured
	}
	return wallets, nil
}

func (s *BatchServiceImpl) runTokenBatch(wallets []string, params entity.TokenSearchParams) {
	defer func() {
		// Every exit clears the progress display along with the busy flag.
		s.sink.TokenProgress(0, 0)
		s.tokenBusy.Store(false)
	}()

	// The batch outlives the HTTP request that started it.
	ctx := context.Background()

	s.sink.TokenSearchStarted()

	started := time.Now()
	metrics.BatchesStarted.WithLabelValues("tokens").Inc()
	s.logger.Info("Token search started", "wallets", len(wallets), "show_all", params.ShowAllTokens)

	rows := make([]entity.TokenHolding, 0, len(wallets))
	totals := entity.WalletAggregates{}

	for i, wallet := range wallets {
		totals[wallet] = 0

		walletRows, walletTotal, err := s.tokens.CollectWalletTokens(ctx, wallet, params)
		if err != nil {
			s.logger.Error("Wallet failed during token search", "wallet", wallet, "error", err)
			metrics.WalletsProcessed.WithLabelValues("tokens", "error").Inc()
			rows = append(rows, entity.TokenHolding{WalletAddress: wallet, Error: err.Error()})
		} else {
			metrics.WalletsProcessed.WithLabelValues("tokens", "ok").Inc()
			rows = append(rows, walletRows...)
			totals[wallet] = walletTotal
		}

		s.sink.TokenProgress(i+1, len(wallets))
		if i < len(wallets)-1 {
			s.tokenPolicy.PauseWallet(ctx)
		}
	}

	RankTokenHoldings(rows, totals)
	s.sink.PublishTokenResults(rows, totals)

	metrics.BatchDuration.WithLabelValues("tokens").Observe(time.Since(started).Seconds())
	s.logger.Info("Token search finished", "wallets", len(wallets), "rows", len(rows), "duration", time.Since(started).String())
}

func (s *BatchServiceImpl) runNFTBatch(wallets []string, params entity.NFTSearchParams) {
	defer func() {
		s.sink.NFTProgress(0, 0)
		s.nftBusy.Store(false)
	}()

	ctx := context.Background()

	s.sink.NFTSearchStarted()

	started := time.Now()
	metrics.BatchesStarted.WithLabelValues("nfts").Inc()
	s.logger.Info("NFT search started", "wallets", len(wallets), "show_all", params.ShowAllNFTs)

	rows := make([]entity.NFTHolding, 0, len(wallets))
	counts := entity.WalletAggregates{}

	for i, wallet := range wallets {
		counts[wallet] = 0

		walletRows, err := s.nfts.CollectWalletNFTs(ctx, wallet, params, len(rows)+1)
		if err != nil {
			s.logger.Error("Wallet failed during NFT search", "wallet", wallet, "error", err)
			metrics.WalletsProcessed.WithLabelValues("nfts", "error").Inc()
			rows = append(rows, entity.NFTHolding{WalletAddress: wallet, Error: err.Error()})
		} else {
			metrics.WalletsProcessed.WithLabelValues("nfts", "ok").Inc()
			rows = append(rows, walletRows...)
			counts[wallet] = float64(len(walletRows))
		}

		s.sink.NFTProgress(i+1, len(wallets))
		if i < len(wallets)-1 {
			s.nftPolicy.PauseWallet(ctx)
		}
	}

	RankNFTHoldings(rows, counts)
	s.sink.PublishNFTResults(rows, counts)

	metrics.BatchDuration.WithLabelValues("nfts").Observe(time.Since(started).Seconds())
	s.logger.Info("NFT search finished", "wallets", len(wallets), "rows", len(rows), "duration", time.Since(started).String())
}
