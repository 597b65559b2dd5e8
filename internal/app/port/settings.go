package port

import "context"

// SettingsProvider exposes the user-configurable RPC endpoint. A batch run
// asks for the current endpoint and refuses to start when none validates.
type SettingsProvider interface {
	// Endpoint returns the currently configured RPC endpoint URL, which may
	// be empty when the user has not set one yet.
	Endpoint() string

	// Validate performs a connectivity probe against the given URL and
	// reports whether it is usable.
	Validate(ctx context.Context, url string) bool

	// SetEndpoint validates and stores a new endpoint URL.
	SetEndpoint(ctx context.Context, url string) error
}
