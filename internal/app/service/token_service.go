package service

import (
	"context"
	"fmt"
	"strconv"

	"wallet_searcher/internal/app/port"
	"wallet_searcher/internal/domain/entity"
	"wallet_searcher/internal/pkg/utils"
)

// oneSOLLamports is the raw amount used to quote the unit price of SOL.
const oneSOLLamports = "1000000000"

// TokenServiceImpl collects the fungible-token holdings of a single wallet:
// native SOL plus SPL token accounts, enriched with metadata and USDC
// values and filtered by the amount and value thresholds.
type TokenServiceImpl struct {
	chains   port.ChainClientProvider
	metadata port.MetadataResolver
	prices   port.PriceOracle
	logger   port.Logger

	minTokenAmount float64
	minUSDCValue   float64
	policy         SchedulingPolicy
}

// NewTokenService creates a new TokenServiceImpl.
func NewTokenService(
	chains port.ChainClientProvider,
	metadata port.MetadataResolver,
	prices port.PriceOracle,
	l port.Logger,
	minTokenAmount float64,
	minUSDCValue float64,
	policy SchedulingPolicy,
) *TokenServiceImpl {
	return &TokenServiceImpl{
		chains:         chains,
		metadata:       metadata,
		prices:         prices,
		logger:         l,
		minTokenAmount: minTokenAmount,
		minUSDCValue:   minUSDCValue,
		policy:         policy,
	}
}

// CollectWalletTokens gathers the wallet's holdings for one batch step. A
// returned error is a wallet-level failure: the caller must discard the
// partial rows and record a single error entry for the wallet instead.
func (s *TokenServiceImpl) CollectWalletTokens(ctx context.Context, walletAddress string, params entity.TokenSearchParams) ([]entity.TokenHolding, float64, error) {
	chain, err := s.chains.Client()
	if err != nil {
		return nil, 0, err
	}

	var holdings []entity.TokenHolding
	var walletTotal float64

	solHolding, solValue, err := s.collectNativeSOL(ctx, chain, walletAddress)
	if err != nil {
		return nil, 0, err
	}
	holdings = append(holdings, solHolding)
	walletTotal += solValue

	if !params.ShowAllTokens {
		mints := utils.SplitLines(params.SpecificMints)
		for _, mint := range mints {
			accounts, err := chain.GetTokenAccountsByMint(ctx, walletAddress, mint)
			if err != nil {
				// A single bad mint must not fail the whole wallet.
				s.logger.Error("Failed to enumerate accounts for mint", "wallet", walletAddress, "mint", mint, "error", err)
				continue
			}
			s.processAccounts(ctx, walletAddress, accounts, false, params.ShowSmallBalances, &holdings, &walletTotal)
		}
		return holdings, walletTotal, nil
	}

	for _, variant := range entity.AllTokenProgramVariants {
		accounts, err := chain.GetTokenAccountsByOwner(ctx, walletAddress, variant)
		if err != nil {
			if variant == entity.TokenProgramLegacy {
				// The primary enumeration failing fails the wallet.
				return nil, 0, fmt.Errorf("failed to enumerate token accounts: %w", err)
			}
			s.logger.Warn("Failed to enumerate extended-program accounts", "wallet", walletAddress, "error", err)
			continue
		}
		s.processAccounts(ctx, walletAddress, accounts, true, params.ShowSmallBalances, &holdings, &walletTotal)
	}

	return holdings, walletTotal, nil
}

// collectNativeSOL builds the always-present native balance row. The unit
// price of SOL is quoted once and scaled by the balance; a failed quote
// leaves the value unknown without failing the wallet.
func (s *TokenServiceImpl) collectNativeSOL(ctx context.Context, chain port.ChainClient, walletAddress string) (entity.TokenHolding, float64, error) {
	lamports, err := chain.GetBalance(ctx, walletAddress)
	if err != nil {
		return entity.TokenHolding{}, 0, fmt.Errorf("failed to get native balance: %w", err)
	}

	balance := strconv.FormatUint(lamports, 10)
	amountFloat, _ := utils.ParseRawAmount(balance, entity.SOLDecimals)

	holding := entity.TokenHolding{
		WalletAddress: walletAddress,
		TokenAddress:  entity.WrappedSOLMint,
		TokenName:     "Solana",
		Symbol:        "SOL",
		Balance:       balance,
		Decimals:      entity.SOLDecimals,
		AmountFloat:   amountFloat,
		IsNativeSOL:   true,
	}

	s.policy.PauseStep(ctx)
	unitValue := s.prices.GetUSDValue(ctx, entity.WrappedSOLMint, oneSOLLamports, entity.SOLDecimals)
	if unitValue == nil {
		return holding, 0, nil
	}

	totalValue := amountFloat * *unitValue
	holding.USDCValue = &totalValue
	return holding, totalValue, nil
}

// processAccounts runs every token account through the filter pipeline and
// appends the survivors. skipZero drops zero raw balances up front; it is
// only set for the unrestricted enumeration.
func (s *TokenServiceImpl) processAccounts(
	ctx context.Context,
	walletAddress string,
	accounts []entity.TokenAccountBalance,
	skipZero bool,
	showSmall bool,
	holdings *[]entity.TokenHolding,
	walletTotal *float64,
) {
	for _, account := range accounts {
		if skipZero && account.RawAmount == "0" {
			continue
		}
		// Zero-decimal mints are NFTs, not fungible tokens.
		if account.Decimals == 0 {
			continue
		}

		amountFloat, err := utils.ParseRawAmount(account.RawAmount, account.Decimals)
		if err != nil {
			s.logger.Error("Failed to parse token account amount", "wallet", walletAddress, "mint", account.Mint, "error", err)
			continue
		}
		if !showSmall && amountFloat < s.minTokenAmount {
			continue
		}

		meta := s.metadata.GetTokenMetadata(ctx, account.Mint)

		s.policy.PauseStep(ctx)

		var usdcValue *float64
		switch {
		case account.Mint == entity.USDCMint:
			value := amountFloat
			usdcValue = &value
		case amountFloat > 0:
			usdcValue = s.prices.GetUSDValue(ctx, account.Mint, account.RawAmount, account.Decimals)
			if usdcValue == nil && !showSmall {
				continue
			}
		}

		if usdcValue != nil {
			if !showSmall && *usdcValue < s.minUSDCValue {
				continue
			}
			*walletTotal += *usdcValue
		}

		*holdings = append(*holdings, entity.TokenHolding{
			WalletAddress: walletAddress,
			TokenAddress:  account.Mint,
			TokenName:     meta.Name,
			Symbol:        meta.Symbol,
			LogoURI:       meta.LogoURI,
			Balance:       account.RawAmount,
			Decimals:      account.Decimals,
			AmountFloat:   amountFloat,
			USDCValue:     usdcValue,
		})
	}
}
