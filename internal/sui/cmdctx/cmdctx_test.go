package cmdctx

import (
	"testing"

	"github.com/stretchr/testify/require"

	"txvisualizer/internal/sui/txtypes"
)

func pureU64(v uint64) txtypes.CallArg {
	b := []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24), byte(v >> 32), byte(v >> 40), byte(v >> 48), byte(v >> 56)}
	return txtypes.CallArg{Kind: txtypes.CallArgPure, Pure: b}
}

func TestDecodeU64(t *testing.T) {
	inputs := []txtypes.CallArg{pureU64(12345)}
	args := []txtypes.Argument{{Kind: txtypes.ArgInput, InputIndex: 0}}

	v, err := DecodeU64(inputs, args, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(12345), v)
}

func TestDecodeU64_MissingArgument(t *testing.T) {
	_, err := DecodeU64(nil, nil, 0)
	require.ErrorContains(t, err, "missing_data")
}

func TestDecodeU64_WrongKind(t *testing.T) {
	inputs := []txtypes.CallArg{{Kind: txtypes.CallArgObject, ObjectID: "0xabc"}}
	args := []txtypes.Argument{{Kind: txtypes.ArgInput, InputIndex: 0}}

	_, err := DecodeU64(inputs, args, 0)
	require.ErrorContains(t, err, "decode_error")
}

func TestGetNestedResultValue(t *testing.T) {
	args := []txtypes.Argument{
		{Kind: txtypes.ArgInput, InputIndex: 3},
		{Kind: txtypes.ArgNestedResult, ResultIndex: 7, NestedIndex: 1},
	}

	v, ok := GetNestedResultValue(args, 1, 0)
	require.True(t, ok)
	require.Equal(t, uint16(7), v)

	v, ok = GetNestedResultValue(args, 1, 1)
	require.True(t, ok)
	require.Equal(t, uint16(1), v)

	_, ok = GetNestedResultValue(args, 0, 0)
	require.False(t, ok)
}

func TestConfigMatches(t *testing.T) {
	cfg := Config{Packages: map[string]map[string][]string{
		"0x3": {"sui_system": {"request_add_stake"}},
	}}

	require.True(t, cfg.Matches("0x3", "sui_system", "request_add_stake"))
	require.False(t, cfg.Matches("0x3", "sui_system", "request_withdraw_stake"))
	require.False(t, cfg.Matches("0x2", "sui_system", "request_add_stake"))
}

func TestParseCoin(t *testing.T) {
	c := ParseCoin("0x2::sui::SUI")
	require.Equal(t, "SUI", c.Symbol)
	require.Equal(t, "MIST", c.BaseUnitSymbol())

	usdc := ParseCoin("0xdba3::usdc::USDC")
	require.Equal(t, "USDC", usdc.Symbol)
	require.Equal(t, "USDC", usdc.BaseUnitSymbol())

	require.Equal(t, UnknownCoin, ParseCoin("garbage"))
}
