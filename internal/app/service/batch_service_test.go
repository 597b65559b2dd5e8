package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"wallet_searcher/internal/app/port"
	"wallet_searcher/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTokenCollector struct {
	rows   map[string][]entity.TokenHolding
	totals map[string]float64
	errs   map[string]error

	gate chan struct{} // when set, the first call blocks until the gate closes
	once sync.Once
}

func (s *stubTokenCollector) CollectWalletTokens(_ context.Context, wallet string, _ entity.TokenSearchParams) ([]entity.TokenHolding, float64, error) {
	if s.gate != nil {
		s.once.Do(func() { <-s.gate })
	}
	if err := s.errs[wallet]; err != nil {
		return nil, 0, err
	}
	return s.rows[wallet], s.totals[wallet], nil
}

type stubNFTCollector struct {
	rows map[string][]entity.NFTHolding
	errs map[string]error

	mu       sync.Mutex
	ordinals []int
}

func (s *stubNFTCollector) CollectWalletNFTs(_ context.Context, wallet string, _ entity.NFTSearchParams, nextOrdinal int) ([]entity.NFTHolding, error) {
	s.mu.Lock()
	s.ordinals = append(s.ordinals, nextOrdinal)
	s.mu.Unlock()
	if err := s.errs[wallet]; err != nil {
		return nil, err
	}
	return s.rows[wallet], nil
}

func newBatchService(tokens port.TokenCollector, nfts port.NFTCollector, settings *fakeSettings, sink *recordingSink) *BatchServiceImpl {
	addresses := NewAddressService(&fakeFileReader{}, testLogger{})
	return NewBatchService(addresses, tokens, nfts, settings, sink, testLogger{}, noDelays(), noDelays())
}

func validSettings() *fakeSettings {
	return &fakeSettings{endpoint: "https://rpc.example", valid: true}
}

func waitDone(t *testing.T, sink *recordingSink) {
	t.Helper()
	select {
	case <-sink.done:
	case <-time.After(5 * time.Second):
		t.Fatal("batch did not finish")
	}
}

func TestStartTokenSearchValidation(t *testing.T) {
	sink := newRecordingSink()
	svc := newBatchService(&stubTokenCollector{}, &stubNFTCollector{}, validSettings(), sink)

	err := svc.StartTokenSearch(context.Background(), entity.TokenSearchParams{Addresses: "", ShowAllTokens: true})
	assert.ErrorIs(t, err, ErrNoAddresses)

	err = svc.StartTokenSearch(context.Background(), entity.TokenSearchParams{Addresses: "W1", ShowAllTokens: false})
	assert.ErrorIs(t, err, ErrNoTokenMints)

	// Rejected starts must leave the busy flag clear.
	err = svc.StartTokenSearch(context.Background(), entity.TokenSearchParams{Addresses: "W1", ShowAllTokens: true})
	assert.NoError(t, err)
	waitDone(t, sink)
}

func TestStartTokenSearchRequiresEndpoint(t *testing.T) {
	noEndpoint := &fakeSettings{endpoint: "", valid: false}
	svc := newBatchService(&stubTokenCollector{}, &stubNFTCollector{}, noEndpoint, newRecordingSink())

	err := svc.StartTokenSearch(context.Background(), entity.TokenSearchParams{Addresses: "W1", ShowAllTokens: true})
	assert.ErrorIs(t, err, ErrEndpointNotConfigured)

	invalid := &fakeSettings{endpoint: "https://rpc.example", valid: false}
	svc = newBatchService(&stubTokenCollector{}, &stubNFTCollector{}, invalid, newRecordingSink())

	err = svc.StartTokenSearch(context.Background(), entity.TokenSearchParams{Addresses: "W1", ShowAllTokens: true})
	assert.ErrorIs(t, err, ErrEndpointNotConfigured)
}

func TestStartNFTSearchValidation(t *testing.T) {
	svc := newBatchService(&stubTokenCollector{}, &stubNFTCollector{}, validSettings(), newRecordingSink())

	err := svc.StartNFTSearch(context.Background(), entity.NFTSearchParams{Addresses: "W1", ShowAllNFTs: false})
	assert.ErrorIs(t, err, ErrNoCollections)
}

func TestConcurrentTokenSearchIsRejected(t *testing.T) {
	gate := make(chan struct{})
	tokens := &stubTokenCollector{gate: gate}
	sink := newRecordingSink()
	svc := newBatchService(tokens, &stubNFTCollector{}, validSettings(), sink)

	require.NoError(t, svc.StartTokenSearch(context.Background(), entity.TokenSearchParams{Addresses: "W1", ShowAllTokens: true}))

	err := svc.StartTokenSearch(context.Background(), entity.TokenSearchParams{Addresses: "W2", ShowAllTokens: true})
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	// An NFT search is an independent asset class and may run in parallel.
	nftSink := newRecordingSink()
	nftSvc := newBatchService(&stubTokenCollector{gate: gate}, &stubNFTCollector{}, validSettings(), nftSink)
	require.NoError(t, nftSvc.StartNFTSearch(context.Background(), entity.NFTSearchParams{Addresses: "W1", ShowAllNFTs: true}))
	waitDone(t, nftSink)

	close(gate)
	waitDone(t, sink)

	// The flag is released once the batch finishes.
	sink2 := newRecordingSink()
	svc2 := newBatchService(&stubTokenCollector{}, &stubNFTCollector{}, validSettings(), sink2)
	require.NoError(t, svc2.StartTokenSearch(context.Background(), entity.TokenSearchParams{Addresses: "W1", ShowAllTokens: true}))
	waitDone(t, sink2)
}

func TestTokenBatchIsolatesWalletFailures(t *testing.T) {
	w1Value := 10.0
	tokens := &stubTokenCollector{
		rows: map[string][]entity.TokenHolding{
			"W1": {{WalletAddress: "W1", TokenAddress: "M1", USDCValue: &w1Value}},
			"W3": {{WalletAddress: "W3", TokenAddress: "M2"}},
		},
		totals: map[string]float64{"W1": 10, "W3": 0},
		errs:   map[string]error{"W2": errors.New("rpc exploded")},
	}
	sink := newRecordingSink()
	svc := newBatchService(tokens, &stubNFTCollector{}, validSettings(), sink)

	require.NoError(t, svc.StartTokenSearch(context.Background(), entity.TokenSearchParams{
		Addresses:     "W1\nW2\nW3",
		ShowAllTokens: true,
	}))
	waitDone(t, sink)

	require.Len(t, sink.tokenRows, 3)
	last := sink.tokenRows[len(sink.tokenRows)-1]
	assert.True(t, last.IsError(), "the error row ranks last")
	assert.Equal(t, "W2", last.WalletAddress)
	assert.Equal(t, "rpc exploded", last.Error)

	// The final (0, 0) emission clears the progress display; it arrives
	// from the batch goroutine's deferred cleanup.
	require.Eventually(t, func() bool {
		return len(sink.tokenProgressSnapshot()) == 4
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []progressPair{{1, 3}, {2, 3}, {3, 3}, {0, 0}}, sink.tokenProgressSnapshot())
	assert.Equal(t, 1, sink.started)
	assert.InDelta(t, 10, sink.tokenTotals["W1"], 1e-9)
	assert.Zero(t, sink.tokenTotals["W2"])
}

func TestNFTBatchOrdinalsAndCounts(t *testing.T) {
	nfts := &stubNFTCollector{
		rows: map[string][]entity.NFTHolding{
			"W1": {
				{WalletAddress: "W1", NFTAddress: "N1", NFTName: "A", CollectionName: "C"},
				{WalletAddress: "W1", NFTAddress: "N2", NFTName: "B", CollectionName: "C"},
			},
			"W2": {
				{WalletAddress: "W2", NFTAddress: "N3", NFTName: "C", CollectionName: "C"},
			},
		},
	}
	sink := newRecordingSink()
	svc := newBatchService(&stubTokenCollector{}, nfts, validSettings(), sink)

	require.NoError(t, svc.StartNFTSearch(context.Background(), entity.NFTSearchParams{
		Addresses:   "W1\nW2",
		ShowAllNFTs: true,
	}))
	waitDone(t, sink)

	// Each wallet is told where its rows start in the batch.
	assert.Equal(t, []int{1, 3}, nfts.ordinals)
	require.Len(t, sink.nftRows, 3)
	assert.InDelta(t, 2, sink.nftCounts["W1"], 1e-9)
	assert.InDelta(t, 1, sink.nftCounts["W2"], 1e-9)
	// W1 holds more NFTs, so its group leads.
	assert.Equal(t, "W1", sink.nftRows[0].WalletAddress)
}

func TestBatchExitClearsProgress(t *testing.T) {
	tokenSink := newRecordingSink()
	svc := newBatchService(&stubTokenCollector{}, &stubNFTCollector{}, validSettings(), tokenSink)
	require.NoError(t, svc.StartTokenSearch(context.Background(), entity.TokenSearchParams{
		Addresses:     "W1\nW2",
		ShowAllTokens: true,
	}))
	waitDone(t, tokenSink)

	require.Eventually(t, func() bool {
		progress := tokenSink.tokenProgressSnapshot()
		return len(progress) > 0 && progress[len(progress)-1] == progressPair{0, 0}
	}, time.Second, 5*time.Millisecond, "token batch exit must clear the progress display")

	nftSink := newRecordingSink()
	svc = newBatchService(&stubTokenCollector{}, &stubNFTCollector{}, validSettings(), nftSink)
	require.NoError(t, svc.StartNFTSearch(context.Background(), entity.NFTSearchParams{
		Addresses:   "W1\nW2",
		ShowAllNFTs: true,
	}))
	waitDone(t, nftSink)

	require.Eventually(t, func() bool {
		progress := nftSink.nftProgressSnapshot()
		return len(progress) > 0 && progress[len(progress)-1] == progressPair{0, 0}
	}, time.Second, 5*time.Millisecond, "nft batch exit must clear the progress display")
}
