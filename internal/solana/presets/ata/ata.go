// Package ata recognizes Associated Token Account program instructions.
package ata

import (
	"github.com/gagliardetto/solana-go"

	"txvisualizer/internal/payload"
	"txvisualizer/internal/solana/instrctx"
	"txvisualizer/internal/visualizer"
)

var programID = solana.MustPublicKeyFromBase58("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")

// Visualizer handles Associated Token Account program instructions.
type Visualizer struct{}

func New() *Visualizer { return &Visualizer{} }

func (v *Visualizer) CanHandle(ctx *instrctx.Context) bool {
	return ctx.ProgramID.Equals(programID)
}

func (v *Visualizer) Kind() visualizer.Kind {
	return visualizer.Kind{Category: "payments", Name: "Associated Token Account"}
}

// instructionName maps the 1-byte discriminator (empty data means
// Create, matching the program's legacy encoding).
func instructionName(data []byte) string {
	if len(data) == 0 {
		return "Create"
	}
	switch data[0] {
	case 0:
		return "Create"
	case 1:
		return "CreateIdempotent"
	case 2:
		return "RecoverNested"
	default:
		return "Unknown"
	}
}

func (v *Visualizer) Visualize(ctx *instrctx.Context) (payload.AnnotatedField, error) {
	owner := "unknown"
	mint := "unknown"
	if len(ctx.Accounts) > 2 {
		owner = ctx.Accounts[2].String()
	}
	if len(ctx.Accounts) > 3 {
		mint = ctx.Accounts[3].String()
	}
	title := "Associated Token Account: " + instructionName(ctx.Data)
	expanded := []payload.AnnotatedField{
		payload.NewAddress("Owner", owner, ""),
		payload.NewAddress("Mint", mint, ""),
	}
	return payload.NewPreviewLayout("Create Token Account", title, "", nil, expanded), nil
}
