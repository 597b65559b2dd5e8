package settings

import "errors"

var (
	// ErrInvalidEndpoint is returned by SetEndpoint when the candidate URL
	// does not answer the connectivity probe.
	ErrInvalidEndpoint = errors.New("rpc endpoint did not answer the connectivity probe")

	// ErrNoEndpoint is returned by Client when no endpoint has been set.
	ErrNoEndpoint = errors.New("no rpc endpoint configured")
)
