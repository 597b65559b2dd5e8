package port

import (
	"context"

	"wallet_searcher/internal/domain/entity"
)

// MetadataResolver resolves descriptive metadata for mints and collection
// display names, caching results for the process lifetime. Lookups never
// fail: unknown or unreadable metadata degrades to fallback values.
type MetadataResolver interface {
	GetTokenMetadata(ctx context.Context, mint string) entity.TokenMetadata
	GetCollectionName(ctx context.Context, collectionAddress string) string
}
