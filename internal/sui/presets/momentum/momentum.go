// Package momentum visualizes Momentum DEX moves: liquidity management,
// fee/reward collection, and the flash-swap trade cycle.
package momentum

import (
	"fmt"

	"txvisualizer/internal/payload"
	"txvisualizer/internal/sui/cmdctx"
	"txvisualizer/internal/sui/txtypes"
	"txvisualizer/internal/visualizer"
)

const packageID = "0xcf60a40f45d46fc1e828871a647c1e25a0915dec860d2662eb10fdb382c3c1d1"

const (
	moduleCollect   = "collect"
	moduleLiquidity = "liquidity"
	modulePosition  = "position"
	moduleTrade     = "trade"

	funcFee    = "fee"
	funcReward = "reward"

	funcRemoveLiquidity = "remove_liquidity"
	funcClosePosition   = "close_position"
	funcAddLiquidity    = "add_liquidity"
	funcOpenPosition    = "open_position"

	funcPositionLiquidity = "liquidity"

	funcFlashSwap        = "flash_swap"
	funcRepayFlashSwap   = "repay_flash_swap"
	funcSwapReceiptDebts = "swap_receipt_debts"
	funcFlashLoan        = "flash_loan"
	funcRepayFlashLoan   = "repay_flash_loan"
)

// Argument positions of the u64 inputs each liquidity function carries,
// after its leading pool/position object arguments.
const (
	removeLiquidityArgLiquidity  = 2
	removeLiquidityArgMinAmountX = 3
	removeLiquidityArgMinAmountY = 4

	addLiquidityArgMinAmountX = 3
	addLiquidityArgMinAmountY = 4
)

var config = cmdctx.Config{
	Packages: map[string]map[string][]string{
		packageID: {
			moduleCollect:   {funcFee, funcReward},
			moduleLiquidity: {funcRemoveLiquidity, funcClosePosition, funcAddLiquidity, funcOpenPosition},
			modulePosition:  {funcPositionLiquidity},
			moduleTrade:     {funcFlashSwap, funcRepayFlashSwap, funcSwapReceiptDebts, funcFlashLoan, funcRepayFlashLoan},
		},
	},
}

// Visualizer handles Momentum DEX move calls.
type Visualizer struct{}

func New() *Visualizer { return &Visualizer{} }

func (v *Visualizer) CanHandle(ctx *cmdctx.Context) bool {
	return config.MatchesCall(ctx)
}

func (v *Visualizer) Kind() visualizer.Kind {
	return visualizer.Kind{Category: "dex", Name: "Momentum"}
}

func (v *Visualizer) Visualize(ctx *cmdctx.Context) (payload.AnnotatedField, error) {
	mc := ctx.MoveCall()
	if mc == nil {
		return payload.AnnotatedField{}, fmt.Errorf("missing_data: expected a MoveCall for Momentum parsing")
	}

	switch mc.Module {
	case moduleLiquidity:
		switch mc.Function {
		case funcRemoveLiquidity:
			return v.removeLiquidity(ctx, mc), nil
		case funcClosePosition:
			return v.closePosition(ctx, mc), nil
		case funcAddLiquidity:
			return v.addLiquidity(ctx, mc), nil
		case funcOpenPosition:
			return v.openPosition(ctx, mc), nil
		}
	case moduleCollect:
		switch mc.Function {
		case funcFee:
			return v.collectFee(ctx, mc), nil
		case funcReward:
			return v.collectReward(ctx, mc), nil
		}
	case modulePosition:
		if mc.Function == funcPositionLiquidity {
			return v.simplePreview(ctx, "Momentum Position Liquidity", nil), nil
		}
	case moduleTrade:
		switch mc.Function {
		case funcFlashSwap:
			return v.flashSwap(ctx, mc), nil
		case funcRepayFlashSwap:
			return v.simplePreview(ctx, "Momentum Repay Flash Swap", expandedPoolFields(ctx, mc)), nil
		case funcSwapReceiptDebts:
			return v.simplePreview(ctx, "Momentum Swap Receipt Debts", nil), nil
		case funcFlashLoan:
			// No decoded rendering yet; surfaced as a bare preview until a
			// reference transaction pins the argument layout.
			return v.simplePreview(ctx, "Momentum Flash Loan", nil), nil
		case funcRepayFlashLoan:
			return v.simplePreview(ctx, "Momentum Repay Flash Loan", nil), nil
		}
	}
	return payload.AnnotatedField{}, fmt.Errorf("decode_error: unsupported Momentum call %s::%s", mc.Module, mc.Function)
}

func (v *Visualizer) removeLiquidity(ctx *cmdctx.Context, mc *txtypes.MoveCall) payload.AnnotatedField {
	coinA := cmdctx.TypeArgCoin(mc.TypeArgs, 0)
	coinB := cmdctx.TypeArgCoin(mc.TypeArgs, 1)

	liquidity := u64At(ctx, mc.Arguments, removeLiquidityArgLiquidity)
	minX := u64At(ctx, mc.Arguments, removeLiquidityArgMinAmountX)
	minY := u64At(ctx, mc.Arguments, removeLiquidityArgMinAmountY)

	title := fmt.Sprintf("Momentum Remove Liquidity from pair %s/%s", coinA.Symbol, coinB.Symbol)
	subtitle := fromSubtitle(ctx)
	condensed := []payload.AnnotatedField{
		payload.NewTextV2("Summary", fmt.Sprintf("Remove liquidity from pair %s/%s to %s", coinA.Symbol, coinB.Symbol, ctx.Sender())),
	}
	expanded := []payload.AnnotatedField{
		payload.NewAddressV2("Pool Address", objectAt(ctx, mc.Arguments, 0), payload.AddressV2Options{}),
		payload.NewAddressV2("Position", objectAt(ctx, mc.Arguments, 1), payload.AddressV2Options{}),
		payload.NewAddressV2("User Address", ctx.Sender(), payload.AddressV2Options{}),
		payload.NewTextV2("Pool Coin A", coinA.String()),
		payload.NewTextV2("Pool Coin B", coinB.String()),
		payload.NewTextV2("Liquidity", fmt.Sprintf("%d", liquidity)),
		payload.NewAmountV2("Min Amount X", fmt.Sprintf("%d", minX), coinA.BaseUnitSymbol()),
		payload.NewAmountV2("Min Amount Y", fmt.Sprintf("%d", minY), coinB.BaseUnitSymbol()),
	}
	return payload.NewPreviewLayout("Momentum Remove Liquidity Command", title, subtitle, condensed, expanded)
}

func (v *Visualizer) addLiquidity(ctx *cmdctx.Context, mc *txtypes.MoveCall) payload.AnnotatedField {
	coinA := cmdctx.TypeArgCoin(mc.TypeArgs, 0)
	coinB := cmdctx.TypeArgCoin(mc.TypeArgs, 1)

	minX := u64At(ctx, mc.Arguments, addLiquidityArgMinAmountX)
	minY := u64At(ctx, mc.Arguments, addLiquidityArgMinAmountY)

	title := fmt.Sprintf("Momentum Add Liquidity to pair %s/%s", coinA.Symbol, coinB.Symbol)
	subtitle := fromSubtitle(ctx)
	condensed := []payload.AnnotatedField{
		payload.NewTextV2("Summary", fmt.Sprintf("Add liquidity to pair %s/%s by %s", coinA.Symbol, coinB.Symbol, ctx.Sender())),
	}
	expanded := []payload.AnnotatedField{
		payload.NewAddressV2("Pool Address", objectAt(ctx, mc.Arguments, 0), payload.AddressV2Options{}),
		payload.NewAddressV2("User Address", ctx.Sender(), payload.AddressV2Options{}),
		payload.NewTextV2("Pool Coin A", coinA.String()),
		payload.NewTextV2("Pool Coin B", coinB.String()),
		payload.NewAmountV2("Min Amount X", fmt.Sprintf("%d", minX), coinA.BaseUnitSymbol()),
		payload.NewAmountV2("Min Amount Y", fmt.Sprintf("%d", minY), coinB.BaseUnitSymbol()),
	}
	return payload.NewPreviewLayout("Momentum Add Liquidity Command", title, subtitle, condensed, expanded)
}

func (v *Visualizer) closePosition(ctx *cmdctx.Context, mc *txtypes.MoveCall) payload.AnnotatedField {
	title := "Momentum Close Position"
	subtitle := fromSubtitle(ctx)
	expanded := []payload.AnnotatedField{
		payload.NewAddressV2("Pool Address", objectAt(ctx, mc.Arguments, 0), payload.AddressV2Options{}),
		payload.NewAddressV2("Position", objectAt(ctx, mc.Arguments, 1), payload.AddressV2Options{}),
		payload.NewAddressV2("User Address", ctx.Sender(), payload.AddressV2Options{}),
	}
	condensed := []payload.AnnotatedField{
		payload.NewTextV2("Summary", fmt.Sprintf("Close position by %s", ctx.Sender())),
	}
	return payload.NewPreviewLayout("Momentum Close Position Command", title, subtitle, condensed, expanded)
}

func (v *Visualizer) openPosition(ctx *cmdctx.Context, mc *txtypes.MoveCall) payload.AnnotatedField {
	title := "Momentum Open Position"
	subtitle := fromSubtitle(ctx)
	expanded := []payload.AnnotatedField{
		payload.NewAddressV2("Pool Address", objectAt(ctx, mc.Arguments, 0), payload.AddressV2Options{}),
		payload.NewAddressV2("User Address", ctx.Sender(), payload.AddressV2Options{}),
	}
	condensed := []payload.AnnotatedField{
		payload.NewTextV2("Summary", fmt.Sprintf("Open position by %s", ctx.Sender())),
	}
	return payload.NewPreviewLayout("Momentum Open Position Command", title, subtitle, condensed, expanded)
}

func (v *Visualizer) collectFee(ctx *cmdctx.Context, mc *txtypes.MoveCall) payload.AnnotatedField {
	title := "Momentum Collect Fee"
	subtitle := fromSubtitle(ctx)
	expanded := expandedPoolFields(ctx, mc)
	condensed := []payload.AnnotatedField{
		payload.NewTextV2("Summary", fmt.Sprintf("Collect fee by %s", ctx.Sender())),
	}
	return payload.NewPreviewLayout("Momentum Collect Fee Command", title, subtitle, condensed, expanded)
}

func (v *Visualizer) collectReward(ctx *cmdctx.Context, mc *txtypes.MoveCall) payload.AnnotatedField {
	reward := cmdctx.TypeArgCoin(mc.TypeArgs, len(mc.TypeArgs)-1)
	title := fmt.Sprintf("Momentum Collect Reward (%s)", reward.Symbol)
	subtitle := fromSubtitle(ctx)
	expanded := append(expandedPoolFields(ctx, mc),
		payload.NewTextV2("Reward Coin", reward.String()),
	)
	condensed := []payload.AnnotatedField{
		payload.NewTextV2("Summary", fmt.Sprintf("Collect %s reward by %s", reward.Symbol, ctx.Sender())),
	}
	return payload.NewPreviewLayout("Momentum Collect Reward Command", title, subtitle, condensed, expanded)
}

func (v *Visualizer) flashSwap(ctx *cmdctx.Context, mc *txtypes.MoveCall) payload.AnnotatedField {
	title := "Momentum Flash Swap"
	subtitle := fromSubtitle(ctx)
	expanded := expandedPoolFields(ctx, mc)
	condensed := []payload.AnnotatedField{
		payload.NewTextV2("Summary", fmt.Sprintf("Flash swap by %s", ctx.Sender())),
	}
	return payload.NewPreviewLayout("Momentum Flash Swap Command", title, subtitle, condensed, expanded)
}

func (v *Visualizer) simplePreview(ctx *cmdctx.Context, title string, expanded []payload.AnnotatedField) payload.AnnotatedField {
	if expanded == nil {
		expanded = []payload.AnnotatedField{
			payload.NewAddressV2("User Address", ctx.Sender(), payload.AddressV2Options{}),
		}
	}
	return payload.NewPreviewLayout(title+" Command", title, fromSubtitle(ctx), nil, expanded)
}

func expandedPoolFields(ctx *cmdctx.Context, mc *txtypes.MoveCall) []payload.AnnotatedField {
	return []payload.AnnotatedField{
		payload.NewAddressV2("Pool Address", objectAt(ctx, mc.Arguments, 0), payload.AddressV2Options{}),
		payload.NewAddressV2("User Address", ctx.Sender(), payload.AddressV2Options{}),
	}
}

func fromSubtitle(ctx *cmdctx.Context) string {
	return fmt.Sprintf("From %s", txtypes.TruncateAddress(ctx.Sender()))
}

func u64At(ctx *cmdctx.Context, args []txtypes.Argument, pos int) uint64 {
	v, err := cmdctx.DecodeU64(ctx.Inputs, args, pos)
	if err != nil {
		return 0
	}
	return v
}

func objectAt(ctx *cmdctx.Context, args []txtypes.Argument, pos int) string {
	id, err := cmdctx.ObjectID(ctx.Inputs, args, pos)
	if err != nil {
		return "0x0"
	}
	return id
}
