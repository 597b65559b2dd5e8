package chain

import (
	"context"
	"encoding/json"
	"strings"

	"wallet_searcher/internal/app/port"
	"wallet_searcher/internal/domain/entity"

	bin "github.com/gagliardetto/binary"
	tokenmetadata "github.com/gagliardetto/metaplex-go/clients/token-metadata"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Program identifiers queried by the client.
const (
	// MetaplexTokenMetadataProgramID is the program ID for the Metaplex
	// Token Metadata program.
	MetaplexTokenMetadataProgramID = "metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s"
	// Token2022ProgramID is the Token-2022 (extensions) program ID.
	Token2022ProgramID = "TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb"
)

var (
	metaplexProgramID  = solana.MustPublicKeyFromBase58(MetaplexTokenMetadataProgramID)
	token2022ProgramID = solana.MustPublicKeyFromBase58(Token2022ProgramID)
)

// SolanaClient implements port.ChainClient on top of the solana-go RPC
// client. Every RPC call waits on a shared rate limiter first, so the
// client never bursts past what public endpoints tolerate.
type SolanaClient struct {
	rpcClient *rpc.Client
	limiter   *rate.Limiter
	logger    *zap.Logger
}

// NewSolanaClient creates a client for the given endpoint. ratePerSec and
// burst bound the request rate towards the endpoint.
func NewSolanaClient(endpoint string, ratePerSec int, burst int, logger *zap.Logger) *SolanaClient {
	if ratePerSec <= 0 {
		ratePerSec = 4
	}
	if burst <= 0 {
		burst = 1
	}
	return &SolanaClient{
		rpcClient: rpc.New(endpoint),
		limiter:   rate.NewLimiter(rate.Limit(ratePerSec), burst),
		logger:    logger.Named("SolanaClient"),
	}
}

// NewClientFactory returns a port.ChainClientFactory building SolanaClients
// with the given pacing parameters. The settings collaborator uses it to
// probe candidate endpoints.
func NewClientFactory(ratePerSec int, burst int, logger *zap.Logger) port.ChainClientFactory {
	return func(endpoint string) port.ChainClient {
		return NewSolanaClient(endpoint, ratePerSec, burst, logger)
	}
}

// Probe performs a lightweight connectivity check (getSlot) against the
// endpoint.
func (c *SolanaClient) Probe(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := c.rpcClient.GetSlot(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		return errors.Wrap(err, "rpc connectivity probe failed")
	}
	return nil
}

// GetBalance returns the wallet's native balance in lamports.
func (c *SolanaClient) GetBalance(ctx context.Context, walletAddress string) (uint64, error) {
	walletPk, err := solana.PublicKeyFromBase58(walletAddress)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid wallet address %q", walletAddress)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, err
	}
	out, err := c.rpcClient.GetBalance(ctx, walletPk, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to get balance for %s", walletAddress)
	}
	return out.Value, nil
}

// GetTokenAccountsByOwner enumerates the wallet's token accounts under the
// given token program variant.
func (c *SolanaClient) GetTokenAccountsByOwner(ctx context.Context, walletAddress string, variant entity.TokenProgramVariant) ([]entity.TokenAccountBalance, error) {
	walletPk, err := solana.PublicKeyFromBase58(walletAddress)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid wallet address %q", walletAddress)
	}

	programID := solana.TokenProgramID
	if variant == entity.TokenProgram2022 {
		programID = token2022ProgramID
	}
	conf := &rpc.GetTokenAccountsConfig{ProgramId: &programID}
	return c.getTokenAccounts(ctx, walletPk, conf, variant.String())
}

// GetTokenAccountsByMint enumerates the wallet's token accounts holding the
// given mint, regardless of program variant.
func (c *SolanaClient) GetTokenAccountsByMint(ctx context.Context, walletAddress string, mint string) ([]entity.TokenAccountBalance, error) {
	walletPk, err := solana.PublicKeyFromBase58(walletAddress)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid wallet address %q", walletAddress)
	}
	mintPk, err := solana.PublicKeyFromBase58(mint)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid mint address %q", mint)
	}
	conf := &rpc.GetTokenAccountsConfig{Mint: &mintPk}
	return c.getTokenAccounts(ctx, walletPk, conf, "mint:"+mint)
}

func (c *SolanaClient) getTokenAccounts(ctx context.Context, owner solana.PublicKey, conf *rpc.GetTokenAccountsConfig, filterTag string) ([]entity.TokenAccountBalance, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	opts := &rpc.GetTokenAccountsOpts{
		Commitment: rpc.CommitmentConfirmed,
		Encoding:   solana.EncodingJSONParsed,
	}
	accts, err := c.rpcClient.GetTokenAccountsByOwner(ctx, owner, conf, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get token accounts (%s) for %s", filterTag, owner)
	}

	balances := make([]entity.TokenAccountBalance, 0, len(accts.Value))
	for _, rawAcct := range accts.Value {
		bal, ok := c.parseTokenAccount(rawAcct)
		if !ok {
			// Accounts that do not match the parsed layout are skipped, not
			// fatal for the enumeration.
			continue
		}
		balances = append(balances, bal)
	}

	c.logger.Debug("Token accounts fetched",
		zap.Stringer("owner", owner),
		zap.String("filter", filterTag),
		zap.Int("count", len(balances)))
	return balances, nil
}

// parseTokenAccount extracts mint, raw amount and decimals from one
// jsonParsed token account.
func (c *SolanaClient) parseTokenAccount(rawAcct *rpc.TokenAccount) (entity.TokenAccountBalance, bool) {
	var zero entity.TokenAccountBalance

	rawJSONData := rawAcct.Account.Data.GetRawJSON()
	if rawJSONData == nil {
		return zero, false
	}

	var accountData map[string]interface{}
	if err := json.Unmarshal(rawJSONData, &accountData); err != nil {
		c.logger.Warn("Failed to unmarshal parsed token account data",
			zap.Stringer("account", rawAcct.Pubkey), zap.Error(err))
		return zero, false
	}

	parsedField, ok := accountData["parsed"].(map[string]interface{})
	if !ok {
		return zero, false
	}
	info, ok := parsedField["info"].(map[string]interface{})
	if !ok {
		return zero, false
	}
	mint, ok := info["mint"].(string)
	if !ok || mint == "" {
		return zero, false
	}
	tokenAmount, ok := info["tokenAmount"].(map[string]interface{})
	if !ok {
		return zero, false
	}
	amount, amountOk := tokenAmount["amount"].(string)
	decimals, decimalsOk := tokenAmount["decimals"].(float64) // json numbers decode as float64
	if !amountOk || !decimalsOk {
		return zero, false
	}

	return entity.TokenAccountBalance{
		Mint:      mint,
		RawAmount: amount,
		Decimals:  uint8(decimals),
	}, true
}

// GetAssetMetadata resolves the Metaplex token-metadata account for a mint.
// A missing metadata account yields (nil, nil); the caller decides the
// fallback.
func (c *SolanaClient) GetAssetMetadata(ctx context.Context, mint string) (*entity.OnChainMetadata, error) {
	mintPk, err := solana.PublicKeyFromBase58(mint)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid mint address %q", mint)
	}

	metadataPDA, _, err := solana.FindProgramAddress(
		[][]byte{
			[]byte("metadata"),
			metaplexProgramID.Bytes(),
			mintPk.Bytes(),
		},
		metaplexProgramID,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to derive metadata PDA for %s", mint)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	accountInfo, err := c.rpcClient.GetAccountInfo(ctx, metadataPDA)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.logger.Debug("No metadata account for mint", zap.String("mint", mint))
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to fetch metadata account %s for mint %s", metadataPDA, mint)
	}
	if accountInfo == nil || accountInfo.Value == nil {
		return nil, nil
	}
	if accountInfo.Value.Owner != metaplexProgramID {
		c.logger.Warn("Metadata account has unexpected owner",
			zap.String("mint", mint),
			zap.Stringer("owner", accountInfo.Value.Owner))
		return nil, nil
	}

	accountDataBytes := accountInfo.Value.Data.GetBinary()
	if accountDataBytes == nil {
		return nil, nil
	}

	var onChainMeta tokenmetadata.Metadata
	decoder := bin.NewBorshDecoder(accountDataBytes)
	if err := decoder.Decode(&onChainMeta); err != nil {
		return nil, errors.Wrapf(err, "failed to deserialize metadata for mint %s", mint)
	}

	// On-chain strings are NUL-padded to their fixed capacity.
	meta := &entity.OnChainMetadata{
		Name:   strings.TrimRight(onChainMeta.Data.Name, "\x00"),
		Symbol: strings.TrimRight(onChainMeta.Data.Symbol, "\x00"),
		URI:    strings.TrimSpace(strings.TrimRight(onChainMeta.Data.Uri, "\x00")),
	}
	if onChainMeta.Collection != nil {
		meta.CollectionAddress = onChainMeta.Collection.Key.String()
	}
	return meta, nil
}
