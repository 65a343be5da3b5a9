// Package stakepool recognizes SPL Stake Pool deposit/withdraw
// instructions by their 1-byte Borsh discriminator.
package stakepool

import (
	"github.com/gagliardetto/solana-go"

	"txvisualizer/internal/payload"
	"txvisualizer/internal/solana/instrctx"
	"txvisualizer/internal/visualizer"
)

var programID = solana.MustPublicKeyFromBase58("SPoo1Ku8WFXoNDMHPsrGSTSG1Y47rzgn41SLUNakuLz")

const (
	instructionDepositSol    byte = 14
	instructionWithdrawSol   byte = 16
	instructionDepositStake  byte = 9
	instructionWithdrawStake byte = 10
)

// Visualizer handles SPL Stake Pool program instructions.
type Visualizer struct{}

func New() *Visualizer { return &Visualizer{} }

func (v *Visualizer) CanHandle(ctx *instrctx.Context) bool {
	return ctx.ProgramID.Equals(programID)
}

func (v *Visualizer) Kind() visualizer.Kind {
	return visualizer.Kind{Category: "staking_pools", Name: "SPL Stake Pool"}
}

func (v *Visualizer) Visualize(ctx *instrctx.Context) (payload.AnnotatedField, error) {
	title := "Stake Pool Instruction"
	if len(ctx.Data) > 0 {
		switch ctx.Data[0] {
		case instructionDepositSol:
			title = "Stake Pool Deposit SOL"
		case instructionWithdrawSol:
			title = "Stake Pool Withdraw SOL"
		case instructionDepositStake:
			title = "Stake Pool Deposit Stake"
		case instructionWithdrawStake:
			title = "Stake Pool Withdraw Stake"
		}
	}
	expanded := []payload.AnnotatedField{
		payload.NewAddress("Stake Pool Program", ctx.ProgramID.String(), ""),
	}
	return payload.NewPreviewLayout("Stake Pool Command", title, "", nil, expanded), nil
}
