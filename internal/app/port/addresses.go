package port

// AddressFileReader reads wallet addresses from a file on disk, one per
// line. Blank lines and comments are skipped.
type AddressFileReader interface {
	ReadAddresses(filePath string) ([]string, error)
}
