package service

import (
	"encoding/csv"
	"fmt"
	"io"

	"wallet_searcher/internal/domain/entity"
	"wallet_searcher/internal/pkg/utils"
)

// Export filenames offered to the browser.
const (
	TokenExportFilename = "solana_token_results.csv"
	NFTExportFilename   = "solana_nft_results.csv"
)

var tokenCSVHeader = []string{"Wallet Address", "Symbol", "Token Name", "Token Address", "Balance", "USDC Value"}

var nftCSVHeader = []string{"Wallet Address", "Collection Address", "Collection Name", "NFT Name", "NFT Address"}

// WriteTokenCSV writes the ranked token rows to w in export column order.
// Error rows carry the message in the second column and leave the rest
// empty.
func WriteTokenCSV(w io.Writer, rows []entity.TokenHolding) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tokenCSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range rows {
		var record []string
		if row.IsError() {
			record = []string{row.WalletAddress, "Error: " + row.Error, "", "", "", ""}
		} else {
			record = []string{
				row.WalletAddress,
				orUnknown(row.Symbol),
				orUnknown(row.TokenName),
				row.TokenAddress,
				utils.FormatTokenBalance(row.Balance, row.Decimals),
				utils.FormatUSDValue(row.USDCValue),
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteNFTCSV writes the ranked NFT rows to w in export column order.
func WriteNFTCSV(w io.Writer, rows []entity.NFTHolding) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(nftCSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range rows {
		var record []string
		if row.IsError() {
			record = []string{row.WalletAddress, "Error: " + row.Error, "", "", ""}
		} else {
			collectionAddress := row.CollectionAddress
			if collectionAddress == "" {
				collectionAddress = "N/A"
			}
			record = []string{
				row.WalletAddress,
				collectionAddress,
				orUnknown(row.CollectionName),
				orUnknown(row.NFTName),
				row.NFTAddress,
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
