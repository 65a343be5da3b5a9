package contracts

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

const usdcSeed = `
network: ETHEREUM_MAINNET
tokens:
  - address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
    symbol: USDC
    name: USD Coin
    decimals: 6
    erc_standard: ERC20
`

func TestLoadChainMetadata(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.LoadChainMetadata([]byte(usdcSeed)))

	// Lookups are case-insensitive on the address.
	tok, ok := r.Token(1, "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")
	require.True(t, ok)
	require.Equal(t, "USDC", tok.Symbol)
	require.Equal(t, 6, tok.Decimals)
}

func TestLoadChainMetadata_UnknownNetwork(t *testing.T) {
	r := NewRegistry()
	err := r.LoadChainMetadata([]byte("network: DOGE_MAINNET\ntokens: []"))
	require.ErrorContains(t, err, "unknown network id")
}

func TestFormatTokenAmount(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.LoadChainMetadata([]byte(usdcSeed)))

	amount, symbol, ok := r.FormatTokenAmount(1, "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", big.NewInt(1_500_000))
	require.True(t, ok)
	require.Equal(t, "1.5", amount)
	require.Equal(t, "USDC", symbol)

	_, _, ok = r.FormatTokenAmount(1, "0x0000000000000000000000000000000000000001", big.NewInt(1))
	require.False(t, ok)
}

func TestContractTypes(t *testing.T) {
	r := NewRegistry()
	r.RegisterContractType(1, "0xABCD", "uniswap_universal_router")

	typ, ok := r.ContractType(1, "0xabcd")
	require.True(t, ok)
	require.Equal(t, "uniswap_universal_router", typ)

	_, ok = r.ContractType(137, "0xabcd")
	require.False(t, ok)
}
