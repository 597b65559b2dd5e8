package service

import (
	"context"
	"sync"
	"time"

	"wallet_searcher/internal/app/port"
	"wallet_searcher/internal/domain/entity"
	wire "wallet_searcher/internal/entity"
)

// testLogger satisfies port.Logger and discards everything.
type testLogger struct{}

func (testLogger) Info(string, ...any)  {}
func (testLogger) Debug(string, ...any) {}
func (testLogger) Warn(string, ...any)  {}
func (testLogger) Error(string, ...any) {}

// noDelays is a scheduling policy whose sleeps return immediately.
func noDelays() SchedulingPolicy {
	return SchedulingPolicy{Sleep: func(context.Context, time.Duration) {}}
}

type fakeChain struct {
	balances    map[string]uint64
	balanceErr  map[string]error
	byVariant   map[string]map[entity.TokenProgramVariant][]entity.TokenAccountBalance
	variantErr  map[entity.TokenProgramVariant]error
	byMint      map[string]map[string][]entity.TokenAccountBalance
	byMintErr   map[string]error
	metadata    map[string]*entity.OnChainMetadata
	metadataErr map[string]error
	probeErr    error

	mu            sync.Mutex
	metadataCalls map[string]int
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		balances:      map[string]uint64{},
		balanceErr:    map[string]error{},
		byVariant:     map[string]map[entity.TokenProgramVariant][]entity.TokenAccountBalance{},
		variantErr:    map[entity.TokenProgramVariant]error{},
		byMint:        map[string]map[string][]entity.TokenAccountBalance{},
		byMintErr:     map[string]error{},
		metadata:      map[string]*entity.OnChainMetadata{},
		metadataErr:   map[string]error{},
		metadataCalls: map[string]int{},
	}
}

func (f *fakeChain) GetBalance(_ context.Context, walletAddress string) (uint64, error) {
	if err := f.balanceErr[walletAddress]; err != nil {
		return 0, err
	}
	return f.balances[walletAddress], nil
}

func (f *fakeChain) GetTokenAccountsByOwner(_ context.Context, walletAddress string, variant entity.TokenProgramVariant) ([]entity.TokenAccountBalance, error) {
	if err := f.variantErr[variant]; err != nil {
		return nil, err
	}
	return f.byVariant[walletAddress][variant], nil
}

func (f *fakeChain) GetTokenAccountsByMint(_ context.Context, walletAddress string, mint string) ([]entity.TokenAccountBalance, error) {
	if err := f.byMintErr[mint]; err != nil {
		return nil, err
	}
	return f.byMint[walletAddress][mint], nil
}

func (f *fakeChain) GetAssetMetadata(_ context.Context, mint string) (*entity.OnChainMetadata, error) {
	f.mu.Lock()
	f.metadataCalls[mint]++
	f.mu.Unlock()
	if err := f.metadataErr[mint]; err != nil {
		return nil, err
	}
	return f.metadata[mint], nil
}

func (f *fakeChain) Probe(context.Context) error { return f.probeErr }

func (f *fakeChain) calls(mint string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.metadataCalls[mint]
}

// fakeChainProvider hands out a fixed chain client.
type fakeChainProvider struct {
	chain port.ChainClient
	err   error
}

func (f *fakeChainProvider) Client() (port.ChainClient, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.chain, nil
}

type fakeMetadata struct {
	tokens      map[string]entity.TokenMetadata
	collections map[string]string
}

func (f *fakeMetadata) GetTokenMetadata(_ context.Context, mint string) entity.TokenMetadata {
	if meta, ok := f.tokens[mint]; ok {
		return meta
	}
	return entity.TokenMetadata{Name: "Unknown", Symbol: "Unknown"}
}

func (f *fakeMetadata) GetCollectionName(_ context.Context, collectionAddress string) string {
	if name, ok := f.collections[collectionAddress]; ok {
		return name
	}
	return "Unknown Collection"
}

// fakePrices prices mints from a fixed table; absent mints are unquotable.
type fakePrices struct {
	values map[string]float64

	mu       sync.Mutex
	requests []string
}

func (f *fakePrices) GetUSDValue(_ context.Context, mint string, rawAmount string, decimals uint8) *float64 {
	f.mu.Lock()
	f.requests = append(f.requests, mint)
	f.mu.Unlock()
	if v, ok := f.values[mint]; ok {
		value := v
		return &value
	}
	return nil
}

type fakeQuotes struct {
	responses map[string]string // inputMint -> outAmount
	err       error

	mu    sync.Mutex
	calls int
}

func (f *fakeQuotes) GetQuote(_ context.Context, inputMint, outputMint, rawAmount string, slippageBps int) (*wire.QuoteResponse, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out, ok := f.responses[inputMint]
	if !ok {
		return nil, nil
	}
	return &wire.QuoteResponse{InputMint: inputMint, OutputMint: outputMint, InAmount: rawAmount, OutAmount: out}, nil
}

type fakeSettings struct {
	endpoint string
	valid    bool
	setErr   error
}

func (f *fakeSettings) Endpoint() string { return f.endpoint }

func (f *fakeSettings) Validate(context.Context, string) bool { return f.valid }

func (f *fakeSettings) SetEndpoint(context.Context, string) error { return f.setErr }

// recordingSink captures everything a batch publishes. done is closed when
// results arrive, so tests can wait for the background goroutine.
type recordingSink struct {
	mu sync.Mutex

	started       int
	tokenProgress []progressPair
	tokenRows     []entity.TokenHolding
	tokenTotals   entity.WalletAggregates
	nftProgress   []progressPair
	nftRows       []entity.NFTHolding
	nftCounts     entity.WalletAggregates

	done chan struct{}
}

type progressPair struct{ Completed, Total int }

func newRecordingSink() *recordingSink {
	return &recordingSink{done: make(chan struct{})}
}

func (s *recordingSink) TokenSearchStarted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started++
}

func (s *recordingSink) NFTSearchStarted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started++
}

func (s *recordingSink) TokenProgress(completed, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokenProgress = append(s.tokenProgress, progressPair{completed, total})
}

func (s *recordingSink) NFTProgress(completed, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nftProgress = append(s.nftProgress, progressPair{completed, total})
}

func (s *recordingSink) tokenProgressSnapshot() []progressPair {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]progressPair(nil), s.tokenProgress...)
}

func (s *recordingSink) nftProgressSnapshot() []progressPair {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]progressPair(nil), s.nftProgress...)
}

func (s *recordingSink) PublishTokenResults(rows []entity.TokenHolding, totals entity.WalletAggregates) {
	s.mu.Lock()
	s.tokenRows = rows
	s.tokenTotals = totals
	s.mu.Unlock()
	close(s.done)
}

func (s *recordingSink) PublishNFTResults(rows []entity.NFTHolding, counts entity.WalletAggregates) {
	s.mu.Lock()
	s.nftRows = rows
	s.nftCounts = counts
	s.mu.Unlock()
	close(s.done)
}

// fakeFileReader serves address files from memory.
type fakeFileReader struct {
	files map[string][]string
	err   error
}

func (f *fakeFileReader) ReadAddresses(filePath string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.files[filePath], nil
}
