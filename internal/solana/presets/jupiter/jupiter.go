// Package jupiter recognizes Jupiter Aggregator swap instructions and
// extracts the raw input/output amounts carried in the last 16 bytes of
// instruction data.
package jupiter

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"txvisualizer/internal/payload"
	"txvisualizer/internal/solana/instrctx"
	"txvisualizer/internal/visualizer"
)

var programID = solana.MustPublicKeyFromBase58("JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4")

var (
	discriminatorRoute               = []byte{0xe5, 0x17, 0xcb, 0x97, 0x7a, 0xe3, 0xad, 0x2a}
	discriminatorExactOutRoute       = []byte{0x4b, 0xd7, 0xdf, 0xa8, 0x0c, 0xd0, 0xb6, 0x2a}
	discriminatorSharedAccountsRoute = []byte{0x3a, 0xf2, 0xaa, 0xae, 0x2f, 0xb6, 0xd4, 0x2a}
)

var knownTokenSymbols = map[string]string{
	"So11111111111111111111111111111111111111112":  "SOL",
	"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v": "USDC",
	"Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB": "USDT",
}

func symbolFor(mint solana.PublicKey) string {
	if sym, ok := knownTokenSymbols[mint.String()]; ok {
		return sym
	}
	s := mint.String()
	if len(s) <= 8 {
		return s
	}
	return s[:4] + "..." + s[len(s)-4:]
}

// Visualizer handles Jupiter Aggregator swap route instructions.
type Visualizer struct{}

func New() *Visualizer { return &Visualizer{} }

func (v *Visualizer) CanHandle(ctx *instrctx.Context) bool {
	if !ctx.ProgramID.Equals(programID) {
		return false
	}
	return matchesDiscriminator(ctx.Data)
}

func matchesDiscriminator(data []byte) bool {
	if len(data) < 8 {
		return false
	}
	head := data[:8]
	return bytes.Equal(head, discriminatorRoute) ||
		bytes.Equal(head, discriminatorExactOutRoute) ||
		bytes.Equal(head, discriminatorSharedAccountsRoute)
}

func (v *Visualizer) Kind() visualizer.Kind {
	return visualizer.Kind{Category: "dex", Name: "Jupiter"}
}

// ParseAmounts extracts (inAmount, quotedOutAmount) from the last 16 bytes
// of a Jupiter swap instruction's data as two little-endian u64 values.
func ParseAmounts(data []byte) (inAmount, outAmount uint64, ok bool) {
	if len(data) < 16 {
		return 0, 0, false
	}
	tail := data[len(data)-16:]
	return binary.LittleEndian.Uint64(tail[:8]), binary.LittleEndian.Uint64(tail[8:]), true
}

func (v *Visualizer) Visualize(ctx *instrctx.Context) (payload.AnnotatedField, error) {
	inAmount, outAmount, ok := ParseAmounts(ctx.Data)
	if !ok {
		return payload.AnnotatedField{}, fmt.Errorf("missing_data: jupiter instruction data shorter than 16 bytes")
	}

	inSymbol, outSymbol := "TOKEN", "TOKEN"
	if len(ctx.Accounts) > 0 {
		inSymbol = symbolFor(ctx.Accounts[0])
	}
	if len(ctx.Accounts) > 1 {
		outSymbol = symbolFor(ctx.Accounts[len(ctx.Accounts)-1])
	}

	title := fmt.Sprintf("Jupiter Swap %s to %s", inSymbol, outSymbol)
	subtitle := fmt.Sprintf("From %s", ctx.Sender())
	condensed := []payload.AnnotatedField{
		payload.NewTextV2("Summary", fmt.Sprintf("Swap %d %s for %d %s", inAmount, inSymbol, outAmount, outSymbol)),
	}
	expanded := []payload.AnnotatedField{
		payload.NewAmountV2("Input Amount", fmt.Sprintf("%d", inAmount), inSymbol),
		payload.NewAmountV2("Output Amount", fmt.Sprintf("%d", outAmount), outSymbol),
	}
	return payload.NewPreviewLayout("Jupiter Swap", title, subtitle, condensed, expanded), nil
}
