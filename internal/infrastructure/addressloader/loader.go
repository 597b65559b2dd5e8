package addressloader

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"wallet_searcher/internal/app/port"
)

// AddressFileLoader implements the port.AddressFileReader interface by loading addresses from a file.
type AddressFileLoader struct {
	loggerInfo func(msg string, args ...any)
}

// NewAddressFileLoader creates a new AddressFileLoader.
func NewAddressFileLoader(loggerInfo func(msg string, args ...any)) port.AddressFileReader {
	return &AddressFileLoader{
		loggerInfo: loggerInfo,
	}
}

// ReadAddresses reads wallet addresses from the given file path, one per
// line. Blank lines and lines starting with '#' are skipped. Address
// validity is not checked here; invalid addresses surface as per-wallet
// errors during the search itself.
func (l *AddressFileLoader) ReadAddresses(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open address file %s: %w", filePath, err)
	}
	defer file.Close()

	var addresses []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		addresses = append(addresses, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning address file %s: %w", filePath, err)
	}

	if l.loggerInfo != nil {
		l.loggerInfo("Addresses loaded from file", "count", len(addresses), "path", filePath)
	}
	return addresses, nil
}
