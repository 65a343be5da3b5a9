// Package cointransfer visualizes TransferObjects commands by
// cross-referencing the SplitCoins command that produced the transferred
// coin, recovering the coin object and amount.
package cointransfer

import (
	"fmt"

	"txvisualizer/internal/payload"
	"txvisualizer/internal/sui/cmdctx"
	"txvisualizer/internal/sui/txtypes"
	"txvisualizer/internal/visualizer"
)

const mistPerSui = 1_000_000_000

// CoinObject identifies the asset moved by a transfer: the native SUI gas
// coin or an arbitrary coin object.
type CoinObject struct {
	IsSui    bool
	ObjectID string
}

func (c CoinObject) String() string {
	if c.IsSui {
		return "Sui"
	}
	return "Object ID: " + c.ObjectID
}

// Label returns the unit label amounts of this coin are denominated in.
func (c CoinObject) Label() string {
	if c.IsSui {
		return "MIST"
	}
	return "Unknown"
}

// Visualizer handles TransferObjects commands. It needs no match config:
// any object transfer is a candidate.
type Visualizer struct{}

func New() *Visualizer { return &Visualizer{} }

func (v *Visualizer) CanHandle(ctx *cmdctx.Context) bool {
	cmd := ctx.Command()
	return cmd != nil && cmd.Kind == txtypes.CommandTransferObjects
}

func (v *Visualizer) Kind() visualizer.Kind {
	return visualizer.Kind{Category: "payments", Name: "Native Transfer"}
}

func (v *Visualizer) Visualize(ctx *cmdctx.Context) (payload.AnnotatedField, error) {
	cmd := ctx.Command()
	if cmd == nil || cmd.TransferObjects == nil {
		return payload.AnnotatedField{}, fmt.Errorf("missing_data: expected a TransferObjects command for coin transfer parsing")
	}
	transfer := cmd.TransferObjects

	coin := sourceCoin(ctx, transfer.Objects)
	amount := sourceAmount(ctx, transfer.Objects)
	receiver := receiverAddress(ctx.Inputs, transfer.Address)

	title := "Transfer Command"
	if amount > 0 {
		if coin.IsSui {
			title = fmt.Sprintf("Transfer: %d MIST (%d SUI)", amount, amount/mistPerSui)
		} else {
			title = fmt.Sprintf("Transfer: %d %s", amount, coin.String())
		}
	}
	subtitle := fmt.Sprintf("From %s to %s", txtypes.TruncateAddress(ctx.Sender()), receiver.Truncated())

	condensed := []payload.AnnotatedField{
		payload.NewTextV2("Summary", fmt.Sprintf(
			"Transfer %d %s from %s to %s",
			amount, coin.Label(), txtypes.TruncateAddress(ctx.Sender()), receiver.Truncated(),
		)),
	}
	expanded := []payload.AnnotatedField{
		payload.NewTextV2("Asset Object ID", coin.String()),
		payload.NewAddressV2("From", ctx.Sender(), payload.AddressV2Options{}),
		payload.NewAddressV2("To", receiver.Hex(), payload.AddressV2Options{}),
		payload.NewAmountV2("Amount", fmt.Sprintf("%d", amount), coin.Label()),
	}

	return payload.NewPreviewLayout("Transfer Command", title, subtitle, condensed, expanded), nil
}

// sourceCoin resolves the transferred object back through the SplitCoins
// command it came from, distinguishing the gas coin from owned coin
// objects.
func sourceCoin(ctx *cmdctx.Context, objects []txtypes.Argument) CoinObject {
	split := sourceSplit(ctx, objects)
	if split == nil {
		return CoinObject{}
	}
	if split.Coin.Kind == txtypes.ArgGasCoin {
		return CoinObject{IsSui: true}
	}
	if idx, ok := cmdctx.ParseNumericArgument(split.Coin); ok && int(idx) < len(ctx.Inputs) {
		in := ctx.Inputs[idx]
		if in.Kind == txtypes.CallArgObject {
			return CoinObject{ObjectID: in.ObjectID}
		}
	}
	return CoinObject{}
}

func sourceAmount(ctx *cmdctx.Context, objects []txtypes.Argument) uint64 {
	split := sourceSplit(ctx, objects)
	if split == nil || len(split.Amounts) == 0 {
		return 0
	}
	amount, err := cmdctx.DecodeU64(ctx.Inputs, split.Amounts, 0)
	if err != nil {
		return 0
	}
	return amount
}

func sourceSplit(ctx *cmdctx.Context, objects []txtypes.Argument) *txtypes.SplitCoins {
	idx, ok := cmdctx.GetIndex(objects, 0)
	if !ok || int(idx) >= len(ctx.Commands) {
		return nil
	}
	cmd := ctx.Commands[idx]
	if cmd.Kind != txtypes.CommandSplitCoins {
		return nil
	}
	return cmd.SplitCoins
}

func receiverAddress(inputs []txtypes.CallArg, arg txtypes.Argument) txtypes.Address {
	idx, ok := cmdctx.ParseNumericArgument(arg)
	if !ok || int(idx) >= len(inputs) {
		return txtypes.Address{}
	}
	addr, err := cmdctx.PureAddress(inputs[idx])
	if err != nil {
		return txtypes.Address{}
	}
	return addr
}
