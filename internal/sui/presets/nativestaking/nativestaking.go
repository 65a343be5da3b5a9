// Package nativestaking visualizes the Sui system staking calls
// request_add_stake and request_withdraw_stake.
package nativestaking

import (
	"fmt"

	"txvisualizer/internal/payload"
	"txvisualizer/internal/sui/cmdctx"
	"txvisualizer/internal/sui/txtypes"
	"txvisualizer/internal/visualizer"
)

const (
	funcAddStake      = "request_add_stake"
	funcWithdrawStake = "request_withdraw_stake"
)

var config = cmdctx.Config{
	Packages: map[string]map[string][]string{
		"0x3": {
			"sui_system": {funcAddStake, funcWithdrawStake},
		},
	},
}

// Visualizer handles Sui native staking move calls.
type Visualizer struct{}

func New() *Visualizer { return &Visualizer{} }

func (v *Visualizer) CanHandle(ctx *cmdctx.Context) bool {
	return config.MatchesCall(ctx)
}

func (v *Visualizer) Kind() visualizer.Kind {
	return visualizer.Kind{Category: "staking_pools", Name: "Sui Native Staking"}
}

func (v *Visualizer) Visualize(ctx *cmdctx.Context) (payload.AnnotatedField, error) {
	mc := ctx.MoveCall()
	if mc == nil {
		return payload.AnnotatedField{}, fmt.Errorf("missing_data: expected a MoveCall for staking parsing")
	}

	switch mc.Function {
	case funcAddStake:
		return v.visualizeAddStake(ctx, mc), nil
	case funcWithdrawStake:
		return v.visualizeWithdrawStake(ctx), nil
	default:
		return payload.AnnotatedField{}, fmt.Errorf("decode_error: unsupported staking function %q", mc.Function)
	}
}

func (v *Visualizer) visualizeAddStake(ctx *cmdctx.Context, mc *txtypes.MoveCall) payload.AnnotatedField {
	amount, hasAmount := stakeAmount(ctx, mc.Arguments)
	validator := stakeValidator(ctx, mc.Arguments)

	var title string
	var amountField payload.AnnotatedField
	if hasAmount {
		title = fmt.Sprintf("Stake: %d MIST", amount)
		amountField = payload.NewAmountV2("Amount", fmt.Sprintf("%d", amount), "MIST")
	} else {
		title = "Stake Command"
		amountField = payload.NewTextV2("Amount", "N/A MIST")
	}
	subtitle := fmt.Sprintf("From %s to validator %s",
		txtypes.TruncateAddress(ctx.Sender()), validator.Truncated())

	condensed := []payload.AnnotatedField{amountField}
	expanded := []payload.AnnotatedField{
		payload.NewAddressV2("From", ctx.Sender(), payload.AddressV2Options{}),
		payload.NewAddressV2("Validator", validator.Hex(), payload.AddressV2Options{}),
		amountField,
	}
	return payload.NewPreviewLayout("Stake Command", title, subtitle, condensed, expanded)
}

func (v *Visualizer) visualizeWithdrawStake(ctx *cmdctx.Context) payload.AnnotatedField {
	title := "Withdraw Stake"
	subtitle := fmt.Sprintf("From %s", txtypes.TruncateAddress(ctx.Sender()))
	from := payload.NewAddressV2("From", ctx.Sender(), payload.AddressV2Options{})
	return payload.NewPreviewLayout("Withdraw Command", title, subtitle,
		[]payload.AnnotatedField{from}, []payload.AnnotatedField{from})
}

// stakeAmount recovers the staked amount from the SplitCoins command the
// stake coin argument references.
func stakeAmount(ctx *cmdctx.Context, args []txtypes.Argument) (uint64, bool) {
	idx, ok := cmdctx.GetIndex(args, 1)
	if !ok || int(idx) >= len(ctx.Commands) {
		return 0, false
	}
	cmd := ctx.Commands[idx]
	if cmd.Kind != txtypes.CommandSplitCoins || cmd.SplitCoins == nil || len(cmd.SplitCoins.Amounts) != 1 {
		return 0, false
	}
	amount, err := cmdctx.DecodeU64(ctx.Inputs, cmd.SplitCoins.Amounts, 0)
	if err != nil {
		return 0, false
	}
	return amount, true
}

// stakeValidator reads the validator address from the call's final
// argument.
func stakeValidator(ctx *cmdctx.Context, args []txtypes.Argument) txtypes.Address {
	addr, err := cmdctx.DecodeAddress(ctx.Inputs, args, len(args)-1)
	if err != nil {
		return txtypes.Address{}
	}
	return addr
}
