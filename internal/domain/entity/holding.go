package entity

// TokenHolding is one row of a token search result: either a priced asset
// holding for a wallet, or an error record for a wallet whose processing
// failed entirely. A wallet contributes N >= 0 holdings or exactly one
// error row, never both.
type TokenHolding struct {
	WalletAddress string   `json:"walletAddress"`
	TokenAddress  string   `json:"tokenAddress,omitempty"`
	TokenName     string   `json:"tokenName,omitempty"`
	Symbol        string   `json:"symbol,omitempty"`
	LogoURI       string   `json:"logo,omitempty"`
	Balance       string   `json:"balance,omitempty"` // raw amount in smallest units
	Decimals      uint8    `json:"decimals"`
	AmountFloat   float64  `json:"amountFloat"`
	USDCValue     *float64 `json:"usdcValue"` // nil when the quote was unavailable
	IsNativeSOL   bool     `json:"isNativeSol,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// IsError reports whether the row is an error record rather than a holding.
func (h TokenHolding) IsError() bool { return h.Error != "" }

// NFTHolding is one row of an NFT search result, or an error record under
// the same mutual-exclusion rule as TokenHolding.
type NFTHolding struct {
	WalletAddress     string `json:"walletAddress"`
	NFTAddress        string `json:"nftAddress,omitempty"`
	NFTName           string `json:"nftName,omitempty"`
	CollectionAddress string `json:"collectionAddress,omitempty"` // empty when the NFT has no collection
	CollectionName    string `json:"collectionName,omitempty"`
	Error             string `json:"error,omitempty"`
}

// IsError reports whether the row is an error record rather than a holding.
func (h NFTHolding) IsError() bool { return h.Error != "" }

// WalletAggregates maps a wallet address to its running aggregate for one
// batch run: the USD total for token searches, the NFT count for NFT
// searches. Built during the run, consumed by the ranker, then discarded.
type WalletAggregates map[string]float64
