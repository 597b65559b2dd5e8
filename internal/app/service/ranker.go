package service

import (
	"sort"

	"wallet_searcher/internal/domain/entity"
)

// holdingValue treats an unknown value as zero for ordering purposes.
func holdingValue(h entity.TokenHolding) float64 {
	if h.USDCValue == nil {
		return 0
	}
	return *h.USDCValue
}

// RankTokenHoldings orders token rows for presentation: error rows sink to
// the bottom, wallets are grouped by descending aggregate USDC value, and
// within a wallet the native balance leads followed by holdings in
// descending value. The sort is stable, so equal rows keep batch order.
func RankTokenHoldings(rows []entity.TokenHolding, totals entity.WalletAggregates) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]

		if a.IsError() != b.IsError() {
			return !a.IsError()
		}

		if a.WalletAddress != b.WalletAddress {
			ta, tb := totals[a.WalletAddress], totals[b.WalletAddress]
			if ta != tb {
				return ta > tb
			}
			// Tie-break on the address so wallets with equal totals still
			// form contiguous groups regardless of input order.
			return a.WalletAddress < b.WalletAddress
		}

		if a.IsNativeSOL != b.IsNativeSOL {
			return a.IsNativeSOL
		}

		return holdingValue(a) > holdingValue(b)
	})
}

// RankNFTHoldings orders NFT rows for presentation: error rows sink to the
// bottom, wallets are grouped by descending NFT count, and within a wallet
// rows sort by collection name then NFT name.
func RankNFTHoldings(rows []entity.NFTHolding, counts entity.WalletAggregates) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]

		if a.IsError() != b.IsError() {
			return !a.IsError()
		}

		if a.WalletAddress != b.WalletAddress {
			ca, cb := counts[a.WalletAddress], counts[b.WalletAddress]
			if ca != cb {
				return ca > cb
			}
			return a.WalletAddress < b.WalletAddress
		}

		if a.CollectionName != b.CollectionName {
			return a.CollectionName < b.CollectionName
		}

		return a.NFTName < b.NFTName
	})
}
