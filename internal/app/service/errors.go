package service

import "errors"

var (
	// ErrAlreadyRunning is returned when a search is requested for an asset
	// class that already has a batch in flight. Callers treat it as "ignore
	// the request", not as a failure.
	ErrAlreadyRunning = errors.New("a search for this asset class is already running")

	// ErrNoAddresses is returned when the resolved address set is empty.
	ErrNoAddresses = errors.New("please enter at least one wallet address")

	// ErrEndpointNotConfigured is returned when no valid RPC endpoint is
	// available; the caller must configure one and re-invoke the search.
	ErrEndpointNotConfigured = errors.New("rpc endpoint is not configured or failed validation")
)
