// Package unknown is the mandatory catch-all Solana instruction
// visualizer: it matches every instruction and must be registered last.
package unknown

import (
	"encoding/hex"
	"fmt"

	"txvisualizer/internal/payload"
	"txvisualizer/internal/solana/instrctx"
	"txvisualizer/internal/visualizer"
)

// Visualizer always matches; it renders the program id and raw data hex.
type Visualizer struct{}

func New() *Visualizer { return &Visualizer{} }

func (v *Visualizer) CanHandle(ctx *instrctx.Context) bool { return true }

func (v *Visualizer) Kind() visualizer.Kind {
	return visualizer.Kind{Category: "payments", Name: "Unknown Program"}
}

func (v *Visualizer) Visualize(ctx *instrctx.Context) (payload.AnnotatedField, error) {
	title := fmt.Sprintf("Instruction %d: Unknown ProgramID or Instruction", ctx.Index()+1)
	expanded := []payload.AnnotatedField{
		payload.NewTextV2("Program ID", ctx.ProgramID.String()),
		payload.NewTextV2("Data", hex.EncodeToString(ctx.Data)),
	}
	return payload.NewPreviewLayout(fmt.Sprintf("Instruction %d", ctx.Index()+1), title, "", nil, expanded), nil
}
