package entity

// QuoteResponse represents the swap-quote payload returned by the Jupiter
// quote endpoint. Only the fields the valuation path needs are mapped;
// the route plan and fee breakdown are ignored.
type QuoteResponse struct {
	InputMint            string `json:"inputMint"`
	InAmount             string `json:"inAmount"`
	OutputMint           string `json:"outputMint"`
	OutAmount            string `json:"outAmount"` // smallest units of the output mint
	OtherAmountThreshold string `json:"otherAmountThreshold"`
	SwapMode             string `json:"swapMode"`
	SlippageBps          int    `json:"slippageBps"`
	PriceImpactPct       string `json:"priceImpactPct"`
}

// QuoteErrorResponse is the error body Jupiter returns on non-2xx statuses,
// e.g. when no route exists between the input and output mints.
type QuoteErrorResponse struct {
	Error     string `json:"error"`
	ErrorCode string `json:"errorCode"`
}
