package erc20

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestDecodeTransfer(t *testing.T) {
	to := common.HexToAddress("0x000000000000000000000000000000000000dEaD")
	input, err := parsedABI.Pack("transfer", to, big.NewInt(1_500_000))
	require.NoError(t, err)

	tr, ok := DecodeTransfer(input)
	require.True(t, ok)
	require.Equal(t, "transfer", tr.Method)
	require.Equal(t, to, tr.Recipient)
	require.Equal(t, int64(1_500_000), tr.Amount.Int64())
}

func TestDecodeTransferFrom(t *testing.T) {
	from := common.HexToAddress("0x1111111111111111111111111111111111111111")
	to := common.HexToAddress("0x2222222222222222222222222222222222222222")
	input, err := parsedABI.Pack("transferFrom", from, to, big.NewInt(9))
	require.NoError(t, err)

	tr, ok := DecodeTransfer(input)
	require.True(t, ok)
	require.Equal(t, "transferFrom", tr.Method)
	require.Equal(t, to, tr.Recipient)
}

func TestDecodeTransfer_RejectsUnknownSelector(t *testing.T) {
	_, ok := DecodeTransfer([]byte{0xde, 0xad, 0xbe, 0xef, 0x00})
	require.False(t, ok)

	_, ok = DecodeTransfer([]byte{0x01})
	require.False(t, ok)
}
