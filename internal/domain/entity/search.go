package entity

// TokenSearchParams controls a fungible-token batch.
type TokenSearchParams struct {
	// Addresses is the inline address block, one address per line.
	Addresses string `json:"addresses"`
	// AddressFile optionally points at a file with more addresses.
	AddressFile string `json:"addressFile,omitempty"`
	// ShowAllTokens enumerates every token the wallets hold; when false,
	// SpecificMints restricts the search to the listed mints.
	ShowAllTokens bool `json:"showAllTokens"`
	// SpecificMints is the mint list for restricted searches, one per line.
	SpecificMints string `json:"tokenAddresses,omitempty"`
	// ShowSmallBalances keeps holdings below the amount and value
	// thresholds, and holdings whose price could not be resolved.
	ShowSmallBalances bool `json:"showSmallBalances"`
}

// NFTSearchParams controls an NFT batch.
type NFTSearchParams struct {
	Addresses   string `json:"addresses"`
	AddressFile string `json:"addressFile,omitempty"`
	// ShowAllNFTs returns every NFT; when false, Collections restricts the
	// search to NFTs whose verified collection is listed.
	ShowAllNFTs bool `json:"showAllNFTs"`
	// Collections is the collection address list, one per line.
	Collections string `json:"nftCollectionAddresses,omitempty"`
}
