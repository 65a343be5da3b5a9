package ethereum

import "math/big"

var networkNames = map[int64]string{
	1:     "Ethereum Mainnet",
	137:   "Polygon",
	42161: "Arbitrum",
	10:    "Optimism",
	8453:  "Base",
}

// networkName resolves a chain id to its display name, falling back to a
// hex representation for unrecognized ids.
func networkName(chainID *big.Int) string {
	if chainID == nil {
		return "0x0"
	}
	if name, ok := networkNames[chainID.Int64()]; ok && chainID.IsInt64() {
		return name
	}
	return "0x" + chainID.Text(16)
}
