package ethereum

import (
	"math/big"

	"txvisualizer/internal/ethereum/units"
)

// FormatUnits renders amount as a fixed-point decimal string with the
// given number of fractional digits, trailing zeros trimmed.
func FormatUnits(amount *big.Int, decimals int) string {
	return units.Format(amount, decimals)
}

// formatEther renders a wei amount as a decimal ETH string.
func formatEther(wei *big.Int) string {
	return units.Format(wei, 18)
}

// formatGwei renders a wei amount as a decimal gwei string.
func formatGwei(wei *big.Int) string {
	return units.Format(wei, 9)
}
