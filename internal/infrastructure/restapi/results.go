package restapi

import (
	"sync"

	"wallet_searcher/internal/domain/entity"
)

// SearchState описывает жизненный цикл поиска для одного класса активов.
type SearchState string

const (
	SearchStateIdle    SearchState = "idle"
	SearchStateRunning SearchState = "running"
	SearchStateDone    SearchState = "done"
)

// Progress is the (completed, total) pair shown while a batch is running.
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// ResultStore keeps the latest results of both search kinds in memory. It
// implements port.ResultSink; handlers read from it. Starting a new search
// clears the previous result for the same asset class.
type ResultStore struct {
	mu sync.RWMutex

	tokenState    SearchState
	tokenProgress Progress
	tokenRows     []entity.TokenHolding
	tokenTotals   entity.WalletAggregates

	nftState    SearchState
	nftProgress Progress
	nftRows     []entity.NFTHolding
	nftCounts   entity.WalletAggregates
}

// NewResultStore creates an empty ResultStore.
func NewResultStore() *ResultStore {
	return &ResultStore{
		tokenState: SearchStateIdle,
		nftState:   SearchStateIdle,
	}
}

// TokenSearchStarted clears the previous token result and flips the state
// to running.
func (s *ResultStore) TokenSearchStarted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokenState = SearchStateRunning
	s.tokenProgress = Progress{}
	s.tokenRows = nil
	s.tokenTotals = nil
}

// NFTSearchStarted clears the previous NFT result and flips the state to
// running.
func (s *ResultStore) NFTSearchStarted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nftState = SearchStateRunning
	s.nftProgress = Progress{}
	s.nftRows = nil
	s.nftCounts = nil
}

// TokenProgress implements port.ResultSink.
func (s *ResultStore) TokenProgress(completed, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokenProgress = Progress{Completed: completed, Total: total}
}

// NFTProgress implements port.ResultSink.
func (s *ResultStore) NFTProgress(completed, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nftProgress = Progress{Completed: completed, Total: total}
}

// PublishTokenResults implements port.ResultSink.
func (s *ResultStore) PublishTokenResults(rows []entity.TokenHolding, totals entity.WalletAggregates) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokenState = SearchStateDone
	s.tokenRows = rows
	s.tokenTotals = totals
}

// PublishNFTResults implements port.ResultSink.
func (s *ResultStore) PublishNFTResults(rows []entity.NFTHolding, counts entity.WalletAggregates) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nftState = SearchStateDone
	s.nftRows = rows
	s.nftCounts = counts
}

// TokenSnapshot returns the current token search state, progress and
// result. The row slice is shared; callers must not mutate it.
func (s *ResultStore) TokenSnapshot() (SearchState, Progress, []entity.TokenHolding, entity.WalletAggregates) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokenState, s.tokenProgress, s.tokenRows, s.tokenTotals
}

// NFTSnapshot returns the current NFT search state, progress and result.
func (s *ResultStore) NFTSnapshot() (SearchState, Progress, []entity.NFTHolding, entity.WalletAggregates) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nftState, s.nftProgress, s.nftRows, s.nftCounts
}
