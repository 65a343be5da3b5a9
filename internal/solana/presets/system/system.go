// Package system recognizes native System Program instructions, in
// particular the Transfer instruction used for native SOL transfers.
package system

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"txvisualizer/internal/payload"
	"txvisualizer/internal/solana/instrctx"
	"txvisualizer/internal/visualizer"
)

const transferDiscriminator uint32 = 2

// Visualizer handles System Program instructions.
type Visualizer struct{}

func New() *Visualizer { return &Visualizer{} }

func (v *Visualizer) CanHandle(ctx *instrctx.Context) bool {
	return ctx.ProgramID.Equals(solana.SystemProgramID)
}

func (v *Visualizer) Kind() visualizer.Kind {
	return visualizer.Kind{Category: "payments", Name: "System Program"}
}

// IsTransfer reports whether data is a System Program Transfer
// instruction (4-byte LE discriminator 2, 8-byte LE lamports).
func IsTransfer(data []byte) (lamports uint64, ok bool) {
	if len(data) != 12 {
		return 0, false
	}
	if binary.LittleEndian.Uint32(data[:4]) != transferDiscriminator {
		return 0, false
	}
	return binary.LittleEndian.Uint64(data[4:12]), true
}

func (v *Visualizer) Visualize(ctx *instrctx.Context) (payload.AnnotatedField, error) {
	if lamports, ok := IsTransfer(ctx.Data); ok {
		from := "unknown"
		to := "unknown"
		if len(ctx.Accounts) > 0 {
			from = ctx.Accounts[0].String()
		}
		if len(ctx.Accounts) > 1 {
			to = ctx.Accounts[1].String()
		}
		title := fmt.Sprintf("Transfer %d lamports", lamports)
		condensed := []payload.AnnotatedField{
			payload.NewTextV2("Summary", fmt.Sprintf("Transfer %d lamports from %s to %s", lamports, from, to)),
		}
		expanded := []payload.AnnotatedField{
			payload.NewAddress("From", from, ""),
			payload.NewAddress("To", to, ""),
			payload.NewAmountV2("Amount", fmt.Sprintf("%d", lamports), "lamports"),
		}
		return payload.NewPreviewLayout("System Transfer", title, "", condensed, expanded), nil
	}
	expanded := []payload.AnnotatedField{
		payload.NewAddress("Program", ctx.ProgramID.String(), ""),
	}
	return payload.NewPreviewLayout("System Program", "System Program instruction", "", nil, expanded), nil
}
