package settings

import (
	"context"
	"sync"
	"time"

	"wallet_searcher/internal/app/port"

	"go.uber.org/zap"
)

// Store holds the RPC endpoint used by searches and validates candidate
// endpoints with a connectivity probe before they are accepted.
type Store struct {
	mu       sync.RWMutex
	endpoint string
	client   port.ChainClient

	factory      port.ChainClientFactory
	probeTimeout time.Duration
	logger       *zap.Logger
}

// NewStore creates a settings store seeded with initialEndpoint (may be
// empty). The factory builds throwaway clients for endpoint probes.
func NewStore(initialEndpoint string, factory port.ChainClientFactory, probeTimeout time.Duration, logger *zap.Logger) *Store {
	if probeTimeout <= 0 {
		probeTimeout = 5 * time.Second
	}
	return &Store{
		endpoint:     initialEndpoint,
		factory:      factory,
		probeTimeout: probeTimeout,
		logger:       logger.Named("Settings"),
	}
}

// Endpoint returns the currently configured RPC endpoint, or "" when none
// has been set.
func (s *Store) Endpoint() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.endpoint
}

// Client returns the ChainClient bound to the current endpoint. The client
// is built once per endpoint change, so its internal rate limiter keeps its
// state across batches.
func (s *Store) Client() (port.ChainClient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.endpoint == "" {
		return nil, ErrNoEndpoint
	}
	if s.client == nil {
		s.client = s.factory(s.endpoint)
	}
	return s.client, nil
}

// Validate probes the given endpoint URL and reports whether it answers.
func (s *Store) Validate(ctx context.Context, url string) bool {
	if url == "" {
		return false
	}
	probeCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()

	client := s.factory(url)
	if err := client.Probe(probeCtx); err != nil {
		s.logger.Warn("Endpoint validation failed", zap.String("url", url), zap.Error(err))
		return false
	}
	return true
}

// SetEndpoint validates the URL and, if it answers, stores it as the
// active endpoint.
func (s *Store) SetEndpoint(ctx context.Context, url string) error {
	if !s.Validate(ctx, url) {
		return ErrInvalidEndpoint
	}

	s.mu.Lock()
	s.endpoint = url
	s.client = nil
	s.mu.Unlock()

	s.logger.Info("RPC endpoint updated", zap.String("url", url))
	return nil
}
