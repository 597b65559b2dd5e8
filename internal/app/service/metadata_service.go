package service

import (
	"context"
	"io"
	"net/http"
	"time"

	"wallet_searcher/internal/app/port"
	"wallet_searcher/internal/domain/entity"
	"wallet_searcher/internal/pkg/metrics"

	jsoniter "github.com/json-iterator/go"
	"github.com/patrickmn/go-cache"
)

var metadataJSON = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	fallbackTokenName      = "Unknown"
	fallbackTokenSymbol    = "Unknown"
	fallbackCollectionName = "Unknown Collection"

	offChainFetchTimeout = 10 * time.Second
	offChainMaxBodyBytes = 1 << 20
)

// offChainMetadata is the subset of the JSON document hosted at a
// metadata URI that the searcher cares about.
type offChainMetadata struct {
	Image string `json:"image"`
}

// MetadataServiceImpl implements port.MetadataResolver with two
// process-lifetime caches: one for token metadata keyed by mint, one for
// collection names keyed by collection address. Lookup failures are cached
// as fallbacks, so a mint is never asked about twice.
type MetadataServiceImpl struct {
	chains     port.ChainClientProvider
	logger     port.Logger
	httpClient *http.Client

	tokenCache      *cache.Cache
	collectionCache *cache.Cache
}

// NewMetadataService creates a new MetadataServiceImpl.
func NewMetadataService(chains port.ChainClientProvider, l port.Logger) *MetadataServiceImpl {
	return &MetadataServiceImpl{
		chains: chains,
		logger: l,
		httpClient: &http.Client{
			Timeout: offChainFetchTimeout,
		},
		tokenCache:      cache.New(cache.NoExpiration, cache.NoExpiration),
		collectionCache: cache.New(cache.NoExpiration, cache.NoExpiration),
	}
}

// GetTokenMetadata resolves name, symbol and logo for a mint. The logo is
// the "image" field of the off-chain JSON document referenced by the
// on-chain URI; any failure along the way degrades to the Unknown
// fallback, which is cached like a successful lookup.
func (s *MetadataServiceImpl) GetTokenMetadata(ctx context.Context, mint string) entity.TokenMetadata {
	if cached, found := s.tokenCache.Get(mint); found {
		metrics.MetadataCacheHits.WithLabelValues("token").Inc()
		return cached.(entity.TokenMetadata)
	}

	meta := entity.TokenMetadata{
		Name:   fallbackTokenName,
		Symbol: fallbackTokenSymbol,
	}

	onChain, err := s.lookupOnChain(ctx, mint)
	switch {
	case err != nil:
		s.logger.Warn("Failed to get token metadata", "mint", mint, "error", err)
	case onChain == nil:
		s.logger.Debug("No metadata account found for token", "mint", mint)
	default:
		if onChain.Name != "" {
			meta.Name = onChain.Name
		}
		if onChain.Symbol != "" {
			meta.Symbol = onChain.Symbol
		}
		if onChain.URI != "" {
			meta.LogoURI = s.fetchImageURI(ctx, mint, onChain.URI)
		}
	}

	s.tokenCache.Set(mint, meta, cache.NoExpiration)
	return meta
}

// GetCollectionName resolves the on-chain name of a collection mint. An
// empty collection address or any lookup failure yields the fallback name,
// which is cached.
func (s *MetadataServiceImpl) GetCollectionName(ctx context.Context, collectionAddress string) string {
	if collectionAddress == "" {
		return fallbackCollectionName
	}
	if cached, found := s.collectionCache.Get(collectionAddress); found {
		metrics.MetadataCacheHits.WithLabelValues("collection").Inc()
		return cached.(string)
	}

	name := fallbackCollectionName
	onChain, err := s.lookupOnChain(ctx, collectionAddress)
	if err != nil {
		s.logger.Warn("Failed to get collection name", "collection", collectionAddress, "error", err)
	} else if onChain != nil && onChain.Name != "" {
		name = onChain.Name
	}

	s.collectionCache.Set(collectionAddress, name, cache.NoExpiration)
	return name
}

func (s *MetadataServiceImpl) lookupOnChain(ctx context.Context, mint string) (*entity.OnChainMetadata, error) {
	chain, err := s.chains.Client()
	if err != nil {
		return nil, err
	}
	return chain.GetAssetMetadata(ctx, mint)
}

// fetchImageURI downloads the off-chain JSON at uri and returns its image
// field. Failures are non-fatal and yield "".
func (s *MetadataServiceImpl) fetchImageURI(ctx context.Context, mint string, uri string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		s.logger.Debug("Invalid off-chain metadata URI", "mint", mint, "uri", uri, "error", err)
		return ""
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Debug("Failed to fetch off-chain metadata", "mint", mint, "uri", uri, "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Debug("Off-chain metadata fetch returned non-200", "mint", mint, "uri", uri, "status", resp.StatusCode)
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, offChainMaxBodyBytes))
	if err != nil {
		return ""
	}

	var doc offChainMetadata
	if err := metadataJSON.Unmarshal(body, &doc); err != nil {
		s.logger.Debug("Malformed off-chain metadata JSON", "mint", mint, "uri", uri, "error", err)
		return ""
	}
	return doc.Image
}
