package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveMergesInlineAndFile(t *testing.T) {
	reader := &fakeFileReader{files: map[string][]string{
		"wallets.txt": {"B", "C"},
	}}
	svc := NewAddressService(reader, testLogger{})

	got, err := svc.Resolve(context.Background(), "A\nB\nA", "wallets.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, got)
}

func TestResolveInlineOnly(t *testing.T) {
	svc := NewAddressService(&fakeFileReader{}, testLogger{})

	got, err := svc.Resolve(context.Background(), "  A  \r\nB\n\nA", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, got)
}

func TestResolveEmptyIsValidationError(t *testing.T) {
	svc := NewAddressService(&fakeFileReader{}, testLogger{})

	_, err := svc.Resolve(context.Background(), "\n \r\n", "")
	assert.ErrorIs(t, err, ErrNoAddresses)
}

func TestResolveFileErrorPropagates(t *testing.T) {
	reader := &fakeFileReader{err: errors.New("no such file")}
	svc := NewAddressService(reader, testLogger{})

	_, err := svc.Resolve(context.Background(), "A", "missing.txt")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoAddresses)
}
