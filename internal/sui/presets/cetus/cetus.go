// Package cetus visualizes the Cetus AMM pool_script_v2 swap_b2a call.
package cetus

import (
	"fmt"

	"txvisualizer/internal/payload"
	"txvisualizer/internal/sui/cmdctx"
	"txvisualizer/internal/sui/txtypes"
	"txvisualizer/internal/visualizer"
)

const (
	packageID        = "0xb2db7142fa83210a7d78d9c12ac49c043b3cbbd482224fea6e3da00aa5a5ae2d"
	modulePoolScript = "pool_script_v2"
	funcSwapB2A      = "swap_b2a"

	argIndexInputAmount = 5
	argIndexMinOutput   = 6
)

var config = cmdctx.Config{
	Packages: map[string]map[string][]string{
		packageID: {
			modulePoolScript: {funcSwapB2A},
		},
	},
}

// Visualizer handles Cetus AMM swap move calls.
type Visualizer struct{}

func New() *Visualizer { return &Visualizer{} }

func (v *Visualizer) CanHandle(ctx *cmdctx.Context) bool {
	return config.MatchesCall(ctx)
}

func (v *Visualizer) Kind() visualizer.Kind {
	return visualizer.Kind{Category: "dex", Name: "CetusAMM"}
}

func (v *Visualizer) Visualize(ctx *cmdctx.Context) (payload.AnnotatedField, error) {
	mc := ctx.MoveCall()
	if mc == nil {
		return payload.AnnotatedField{}, fmt.Errorf("missing_data: expected a MoveCall for CetusAMM parsing")
	}

	inputCoin := cmdctx.TypeArgCoin(mc.TypeArgs, 0)
	outputCoin := cmdctx.TypeArgCoin(mc.TypeArgs, 1)

	inputAmount, _ := amountAt(ctx, mc.Arguments, argIndexInputAmount)
	minOutput, _ := amountAt(ctx, mc.Arguments, argIndexMinOutput)

	fields := []payload.AnnotatedField{
		payload.NewAddressV2("User Address", ctx.Sender(), payload.AddressV2Options{}),
		payload.NewAmountV2("Input Amount", fmt.Sprintf("%d", inputAmount), inputCoin.Symbol),
		payload.NewTextV2("Input Coin", inputCoin.Symbol),
		payload.NewAmountV2("Min Output Amount", fmt.Sprintf("%d", minOutput), outputCoin.Symbol),
		payload.NewTextV2("Output Coin", outputCoin.Symbol),
	}
	return payload.NewListLayout("CetusAMM Swap Command", "CetusAMM Swap Command", fields), nil
}

func amountAt(ctx *cmdctx.Context, args []txtypes.Argument, pos int) (uint64, bool) {
	amount, err := cmdctx.DecodeU64(ctx.Inputs, args, pos)
	if err != nil {
		return 0, false
	}
	return amount, true
}
