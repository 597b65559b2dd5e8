package port

import "wallet_searcher/internal/domain/entity"

// ResultSink receives the output of a batch run: progress updates while the
// run is in flight, then the final ranked result set. The REST layer
// implements it with an in-memory store the handlers read from.
type ResultSink interface {
	// TokenSearchStarted and NFTSearchStarted mark the beginning of a run;
	// the sink drops the previous result for that asset class.
	TokenSearchStarted()
	NFTSearchStarted()

	// TokenProgress and NFTProgress report (completed, total) after each
	// wallet. A (0, 0) pair clears the progress display.
	TokenProgress(completed, total int)
	NFTProgress(completed, total int)

	// PublishTokenResults hands over the ranked token rows and the
	// per-wallet USD totals of a finished run.
	PublishTokenResults(rows []entity.TokenHolding, totals entity.WalletAggregates)

	// PublishNFTResults hands over the ranked NFT rows and the per-wallet
	// NFT counts of a finished run.
	PublishNFTResults(rows []entity.NFTHolding, counts entity.WalletAggregates)
}
