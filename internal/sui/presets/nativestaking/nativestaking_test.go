package nativestaking

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"txvisualizer/internal/payload"
	"txvisualizer/internal/sui/cmdctx"
	"txvisualizer/internal/sui/txtypes"
)

func pkg3() txtypes.Address {
	var a txtypes.Address
	a[31] = 3
	return a
}

func pureU64(v uint64) txtypes.CallArg {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return txtypes.CallArg{Kind: txtypes.CallArgPure, Pure: b}
}

func pureAddr(last byte) txtypes.CallArg {
	b := make([]byte, 32)
	b[31] = last
	return txtypes.CallArg{Kind: txtypes.CallArgPure, Pure: b}
}

func stakeContext(amount uint64) *cmdctx.Context {
	// SplitCoins(GasCoin, [Input(0)]) then
	// sui_system::request_add_stake(system_obj, Result(0), Input(1)).
	commands := []txtypes.Command{
		{Kind: txtypes.CommandSplitCoins, SplitCoins: &txtypes.SplitCoins{
			Coin:    txtypes.Argument{Kind: txtypes.ArgGasCoin},
			Amounts: []txtypes.Argument{{Kind: txtypes.ArgInput, InputIndex: 0}},
		}},
		{Kind: txtypes.CommandMoveCall, MoveCall: &txtypes.MoveCall{
			Package:  pkg3(),
			Module:   "sui_system",
			Function: "request_add_stake",
			Arguments: []txtypes.Argument{
				{Kind: txtypes.ArgInput, InputIndex: 2},
				{Kind: txtypes.ArgResult, ResultIndex: 0},
				{Kind: txtypes.ArgInput, InputIndex: 1},
			},
		}},
	}
	inputs := []txtypes.CallArg{
		pureU64(amount),
		pureAddr(0xAA),
		{Kind: txtypes.CallArgObject, ObjectID: "0x5"},
	}
	var sender txtypes.Address
	sender[31] = 1
	return &cmdctx.Context{SenderAddr: sender, Idx: 1, Commands: commands, Inputs: inputs}
}

func TestCanHandle_MatchesConfiguredTriple(t *testing.T) {
	v := New()
	ctx := stakeContext(100)
	require.True(t, v.CanHandle(ctx))

	// A non-move-call command index is never claimed.
	ctx2 := *ctx
	ctx2.Idx = 0
	require.False(t, v.CanHandle(&ctx2))
}

func TestVisualize_AddStake(t *testing.T) {
	v := New()
	field, err := v.Visualize(stakeContext(2_000_000_000))
	require.NoError(t, err)

	p := payload.New(0, "t", "", []payload.AnnotatedField{field}, "")
	out, err := p.ToValidatedJSON()
	require.NoError(t, err)
	require.Contains(t, out, `"Label":"Stake Command"`)
	require.Contains(t, out, `"Text":"Stake: 2000000000 MIST"`)
	require.Contains(t, out, `"Label":"Validator"`)
	require.True(t, strings.Contains(out, "00aa"))
}

func TestVisualize_WithdrawStake(t *testing.T) {
	ctx := stakeContext(0)
	ctx.Commands[1].MoveCall.Function = "request_withdraw_stake"

	v := New()
	require.True(t, v.CanHandle(ctx))
	field, err := v.Visualize(ctx)
	require.NoError(t, err)

	p := payload.New(0, "t", "", []payload.AnnotatedField{field}, "")
	out, err := p.ToValidatedJSON()
	require.NoError(t, err)
	require.Contains(t, out, `"Label":"Withdraw Command"`)
	require.Contains(t, out, `"Text":"Withdraw Stake"`)
}
