package service

import (
	"context"
	"fmt"

	"wallet_searcher/internal/app/port"
	"wallet_searcher/internal/pkg/utils"
)

// AddressServiceImpl resolves the wallet address set for a batch from the
// inline input and an optional address file.
type AddressServiceImpl struct {
	fileReader port.AddressFileReader
	logger     port.Logger
}

// NewAddressService creates a new AddressServiceImpl.
func NewAddressService(fr port.AddressFileReader, l port.Logger) *AddressServiceImpl {
	return &AddressServiceImpl{
		fileReader: fr,
		logger:     l,
	}
}

// Resolve merges the inline address block with the optional file, trims and
// deduplicates, preserving first-seen order with inline input first. An
// empty result is a validation error (ErrNoAddresses).
func (s *AddressServiceImpl) Resolve(_ context.Context, inline string, filePath string) ([]string, error) {
	addresses := utils.SplitLines(inline)

	if filePath != "" {
		fromFile, err := s.fileReader.ReadAddresses(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read addresses from file: %w", err)
		}
		addresses = append(addresses, fromFile...)
	}

	addresses = utils.DedupeStrings(addresses)
	if len(addresses) == 0 {
		return nil, ErrNoAddresses
	}

	s.logger.Debug("Address set resolved", "count", len(addresses), "file", filePath)
	return addresses, nil
}
