package jupiter

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"txvisualizer/internal/payload"
	"txvisualizer/internal/solana/instrctx"
)

var (
	solMint  = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
	usdcMint = solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
)

// routeData builds instruction data with the given discriminator and the
// (inAmount, outAmount) u64 pair in the trailing 16 bytes.
func routeData(discriminator []byte, inAmount, outAmount uint64) []byte {
	data := append([]byte(nil), discriminator...)
	data = append(data, 0x01, 0x02, 0x03) // route-plan bytes the parser skips
	tail := make([]byte, 16)
	binary.LittleEndian.PutUint64(tail[:8], inAmount)
	binary.LittleEndian.PutUint64(tail[8:], outAmount)
	return append(data, tail...)
}

func routeContext(data []byte) *instrctx.Context {
	return &instrctx.Context{
		SenderAddr: "sender",
		ProgramID:  programID,
		Accounts:   []solana.PublicKey{solMint, usdcMint},
		Data:       data,
	}
}

func TestCanHandle_KnownDiscriminators(t *testing.T) {
	v := New()
	for _, d := range [][]byte{discriminatorRoute, discriminatorExactOutRoute, discriminatorSharedAccountsRoute} {
		require.True(t, v.CanHandle(routeContext(routeData(d, 1, 2))))
	}
}

func TestCanHandle_RejectsOtherProgramsAndDiscriminators(t *testing.T) {
	v := New()

	ctx := routeContext(routeData(discriminatorRoute, 1, 2))
	ctx.ProgramID = solana.SystemProgramID
	require.False(t, v.CanHandle(ctx))

	require.False(t, v.CanHandle(routeContext(routeData([]byte{0, 1, 2, 3, 4, 5, 6, 7}, 1, 2))))
	require.False(t, v.CanHandle(routeContext([]byte{0xe5, 0x17})))
}

func TestParseAmounts_TrailingSixteenBytes(t *testing.T) {
	data := routeData(discriminatorRoute, 5_000_000_000, 1_250_000)
	inAmount, outAmount, ok := ParseAmounts(data)
	require.True(t, ok)
	require.Equal(t, uint64(5_000_000_000), inAmount)
	require.Equal(t, uint64(1_250_000), outAmount)

	_, _, ok = ParseAmounts([]byte{1, 2, 3})
	require.False(t, ok)
}

func TestVisualize_EmitsBothAmountFields(t *testing.T) {
	v := New()
	field, err := v.Visualize(routeContext(routeData(discriminatorRoute, 5_000_000_000, 1_250_000)))
	require.NoError(t, err)

	p := payload.New(0, "t", "", []payload.AnnotatedField{field}, "")
	out, err := p.ToValidatedJSON()
	require.NoError(t, err)
	require.Contains(t, out, `"AmountV2":{"Abbreviation":"SOL","Amount":"5000000000"}`)
	require.Contains(t, out, `"AmountV2":{"Abbreviation":"USDC","Amount":"1250000"}`)
	require.Contains(t, out, `"Label":"Jupiter Swap"`)
}

func TestVisualize_ShortDataIsMissingData(t *testing.T) {
	v := New()
	ctx := routeContext(append([]byte(nil), discriminatorRoute...))
	ctx.Data = ctx.Data[:8]

	// CanHandle matched on the discriminator alone; a payload shorter
	// than the 16-byte amount tail is a hard error.
	_, err := v.Visualize(ctx)
	require.ErrorContains(t, err, "missing_data")
}
