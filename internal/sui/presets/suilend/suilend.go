// Package suilend visualizes Suilend lending-market repay and
// claim_rewards_and_deposit calls.
package suilend

import (
	"fmt"

	"txvisualizer/internal/payload"
	"txvisualizer/internal/sui/cmdctx"
	"txvisualizer/internal/sui/txtypes"
	"txvisualizer/internal/visualizer"
)

const (
	packageID     = "0x43d25be6a55db4e7cc08dd914b8326e7d56fb64c67f0fb961a349e2872f4cc08"
	moduleLending = "lending_market"

	funcRepay                  = "repay"
	funcClaimRewardsAndDeposit = "claim_rewards_and_deposit"
)

var config = cmdctx.Config{
	Packages: map[string]map[string][]string{
		packageID: {
			moduleLending: {funcRepay, funcClaimRewardsAndDeposit},
		},
	},
}

// Visualizer handles Suilend lending-market move calls.
type Visualizer struct{}

func New() *Visualizer { return &Visualizer{} }

func (v *Visualizer) CanHandle(ctx *cmdctx.Context) bool {
	return config.MatchesCall(ctx)
}

func (v *Visualizer) Kind() visualizer.Kind {
	return visualizer.Kind{Category: "lending", Name: "Suilend"}
}

func (v *Visualizer) Visualize(ctx *cmdctx.Context) (payload.AnnotatedField, error) {
	mc := ctx.MoveCall()
	if mc == nil {
		return payload.AnnotatedField{}, fmt.Errorf("missing_data: expected a MoveCall for Suilend parsing")
	}

	switch mc.Function {
	case funcRepay:
		return v.visualizeRepay(ctx, mc), nil
	case funcClaimRewardsAndDeposit:
		return v.visualizeClaimRewardsAndDeposit(ctx, mc), nil
	default:
		return payload.AnnotatedField{}, fmt.Errorf("decode_error: unsupported Suilend function %q", mc.Function)
	}
}

func (v *Visualizer) visualizeRepay(ctx *cmdctx.Context, mc *txtypes.MoveCall) payload.AnnotatedField {
	pool := cmdctx.TypeArgCoin(mc.TypeArgs, 0)
	coin := cmdctx.TypeArgCoin(mc.TypeArgs, 1)

	amount, hasAmount := repayAmount(ctx, mc.Arguments)
	amountStr := "N/A"
	amountField := payload.NewTextV2("Amount", "N/A MIST")
	if hasAmount {
		amountStr = fmt.Sprintf("%d", amount)
		amountField = payload.NewAmountV2("Amount", amountStr, "MIST")
	}

	title := fmt.Sprintf("Suilend: Repay %s %s", amountStr, coin.Symbol)
	subtitle := fmt.Sprintf("From %s", txtypes.TruncateAddress(ctx.Sender()))

	condensed := []payload.AnnotatedField{
		payload.NewTextV2("Summary", fmt.Sprintf("Repay %s %s via %s", amountStr, coin.Symbol, pool)),
	}
	expanded := []payload.AnnotatedField{
		payload.NewAddressV2("From", ctx.Sender(), payload.AddressV2Options{}),
		payload.NewTextV2("Package", pool.String()),
		payload.NewTextV2("Coin", coin.String()),
		amountField,
	}
	return payload.NewPreviewLayout("Suilend Repay Command", title, subtitle, condensed, expanded)
}

func (v *Visualizer) visualizeClaimRewardsAndDeposit(ctx *cmdctx.Context, mc *txtypes.MoveCall) payload.AnnotatedField {
	pool := cmdctx.TypeArgCoin(mc.TypeArgs, 0)
	coin := cmdctx.TypeArgCoin(mc.TypeArgs, 1)

	title := fmt.Sprintf("Suilend: Claim Rewards and Deposit (%s)", coin.Symbol)
	subtitle := fmt.Sprintf("From %s", txtypes.TruncateAddress(ctx.Sender()))

	condensed := []payload.AnnotatedField{
		payload.NewTextV2("Summary", fmt.Sprintf("Claim rewards and deposit %s via %s", coin.Symbol, pool)),
	}
	expanded := []payload.AnnotatedField{
		payload.NewAddressV2("From", ctx.Sender(), payload.AddressV2Options{}),
		payload.NewTextV2("Package", pool.String()),
		payload.NewTextV2("Coin", coin.String()),
	}
	return payload.NewPreviewLayout("Suilend Claim Rewards and Deposit Command", title, subtitle, condensed, expanded)
}

// repayAmount walks the nested-result reference in the repay call's fifth
// argument back to the SplitCoins command carrying the repaid amount.
func repayAmount(ctx *cmdctx.Context, args []txtypes.Argument) (uint64, bool) {
	cmdIdx, ok := cmdctx.GetNestedResultValue(args, 4, 0)
	if !ok || int(cmdIdx) >= len(ctx.Commands) {
		return 0, false
	}
	cmd := ctx.Commands[cmdIdx]
	if cmd.Kind != txtypes.CommandSplitCoins || cmd.SplitCoins == nil {
		return 0, false
	}
	amount, err := cmdctx.DecodeU64(ctx.Inputs, cmd.SplitCoins.Amounts, 0)
	if err != nil {
		return 0, false
	}
	return amount, true
}
