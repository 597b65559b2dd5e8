package entity

// Well-known mint addresses and program identifiers on Solana mainnet.
const (
	// WrappedSOLMint is the canonical wrapped-SOL mint used to represent the
	// native balance in results and in swap-quote requests.
	WrappedSOLMint = "So11111111111111111111111111111111111111112"
	// USDCMint is the reference stable-coin all USD values are expressed in.
	USDCMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"

	// SOLDecimals is the lamport precision of the native coin.
	SOLDecimals = 9
	// USDCDecimals is the smallest-unit precision of the reference stable-coin.
	USDCDecimals = 6
)

// TokenProgramVariant identifies one of the token program deployments a
// wallet's accounts can live under. The set is closed: enumeration code
// iterates AllTokenProgramVariants instead of duplicating call sites.
type TokenProgramVariant int

const (
	// TokenProgramLegacy is the original SPL Token program.
	TokenProgramLegacy TokenProgramVariant = iota
	// TokenProgram2022 is the Token-2022 (extensions) program.
	TokenProgram2022
)

// AllTokenProgramVariants lists every supported token program, in query order.
var AllTokenProgramVariants = []TokenProgramVariant{TokenProgramLegacy, TokenProgram2022}

// String returns a short human-readable tag for logging.
func (v TokenProgramVariant) String() string {
	switch v {
	case TokenProgramLegacy:
		return "token"
	case TokenProgram2022:
		return "token-2022"
	default:
		return "unknown"
	}
}

// TokenAccountBalance is one token account as reported by the ledger:
// the mint it belongs to, the raw balance in smallest units and the mint's
// decimal precision. RawAmount stays a string because balances can exceed
// what fits in a float without precision loss.
type TokenAccountBalance struct {
	Mint      string
	RawAmount string
	Decimals  uint8
}

// TokenMetadata is the descriptive metadata resolved for a mint.
// Name and Symbol fall back to "Unknown" when the metadata account is
// missing or unreadable.
type TokenMetadata struct {
	Name    string
	Symbol  string
	LogoURI string
}

// OnChainMetadata is the raw Metaplex metadata of a mint as stored on
// chain: NUL-trimmed name/symbol, the off-chain JSON URI and the verified
// collection the asset belongs to (empty when none).
type OnChainMetadata struct {
	Name              string
	Symbol            string
	URI               string
	CollectionAddress string
}
