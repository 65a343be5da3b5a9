// Package computebudget recognizes Compute Budget program instructions
// (SetComputeUnitLimit / SetComputeUnitPrice).
package computebudget

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"txvisualizer/internal/payload"
	"txvisualizer/internal/solana/instrctx"
	"txvisualizer/internal/visualizer"
)

var programID = solana.MustPublicKeyFromBase58("ComputeBudget111111111111111111111111111111")

const (
	instructionSetComputeUnitLimit byte = 2
	instructionSetComputeUnitPrice byte = 3
)

// Visualizer handles Compute Budget program instructions.
type Visualizer struct{}

func New() *Visualizer { return &Visualizer{} }

func (v *Visualizer) CanHandle(ctx *instrctx.Context) bool {
	return ctx.ProgramID.Equals(programID)
}

func (v *Visualizer) Kind() visualizer.Kind {
	return visualizer.Kind{Category: "payments", Name: "Compute Budget"}
}

func (v *Visualizer) Visualize(ctx *instrctx.Context) (payload.AnnotatedField, error) {
	if len(ctx.Data) == 0 {
		return payload.NewText("Compute Budget", "Compute Budget instruction"), nil
	}
	switch ctx.Data[0] {
	case instructionSetComputeUnitLimit:
		if len(ctx.Data) >= 5 {
			units := binary.LittleEndian.Uint32(ctx.Data[1:5])
			return payload.NewNumber("Compute Unit Limit", fmt.Sprintf("%d", units)), nil
		}
	case instructionSetComputeUnitPrice:
		if len(ctx.Data) >= 9 {
			microLamports := binary.LittleEndian.Uint64(ctx.Data[1:9])
			return payload.NewNumber("Compute Unit Price (micro-lamports)", fmt.Sprintf("%d", microLamports)), nil
		}
	}
	return payload.NewText("Compute Budget", "Compute Budget instruction"), nil
}
