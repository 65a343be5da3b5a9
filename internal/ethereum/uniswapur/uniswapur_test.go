package uniswapur

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_ExecuteCall(t *testing.T) {
	input, err := parsedABI.Pack("execute", []byte{0x0a, 0x0c}, [][]byte{{0x01}, {0x02}}, big.NewInt(1700000000))
	require.NoError(t, err)

	f, ok := Parse(input)
	require.True(t, ok)
	require.NotNil(t, f.Field)
}

func TestParse_RejectsOtherSelectors(t *testing.T) {
	_, ok := Parse([]byte{0xde, 0xad, 0xbe, 0xef})
	require.False(t, ok)

	_, ok = Parse(nil)
	require.False(t, ok)
}
