package solana

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"txvisualizer/internal/chain"
	"txvisualizer/internal/payload"
	"txvisualizer/internal/solana/instrctx"
	"txvisualizer/internal/solana/presets/system"
	"txvisualizer/internal/solana/presets/unknown"
	"txvisualizer/internal/visualizer"
)

func TestSystemTransfer_IsTransfer(t *testing.T) {
	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data[:4], 2)
	binary.LittleEndian.PutUint64(data[4:], 1_000_000_000)

	lamports, ok := system.IsTransfer(data)
	require.True(t, ok)
	require.Equal(t, uint64(1_000_000_000), lamports)
}

func transferInstructionData(lamports uint64) []byte {
	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data[:4], 2)
	binary.LittleEndian.PutUint64(data[4:], lamports)
	return data
}

// encodeLegacyTransfer hand-encodes a signed legacy transaction carrying
// one System.Transfer instruction: from (index 0, signer+writable), to
// (index 1, writable), system program (index 2, readonly).
func encodeLegacyTransfer(lamports uint64) []byte {
	var b []byte
	b = append(b, 0x01) // one signature
	b = append(b, make([]byte, 64)...)

	b = append(b, 0x01, 0x00, 0x01) // header: 1 signer, 0 ro-signed, 1 ro-unsigned
	b = append(b, 0x03)             // three account keys
	from := keyN(1)
	to := keyN(2)
	b = append(b, from[:]...)
	b = append(b, to[:]...)
	b = append(b, make([]byte, 32)...) // system program id (all zeros)
	b = append(b, make([]byte, 32)...) // recent blockhash

	b = append(b, 0x01)             // one instruction
	b = append(b, 0x02)             // program id index
	b = append(b, 0x02, 0x00, 0x01) // account indices [0, 1]
	data := transferInstructionData(lamports)
	b = append(b, byte(len(data)))
	b = append(b, data...)
	return b
}

// encodeV0WithLookup hand-encodes a V0 message with two account keys, no
// instructions, and one address-lookup table (1 writable index, 2 readonly
// indices).
func encodeV0WithLookup() []byte {
	var b []byte
	b = append(b, 0x01)
	b = append(b, make([]byte, 64)...)

	b = append(b, 0x80)             // version byte: V0
	b = append(b, 0x01, 0x00, 0x01) // header
	b = append(b, 0x02)             // two account keys
	from := keyN(1)
	b = append(b, from[:]...)
	b = append(b, make([]byte, 32)...) // system program id
	b = append(b, make([]byte, 32)...) // recent blockhash
	b = append(b, 0x00)                // no instructions

	b = append(b, 0x01) // one lookup table
	table := keyN(7)
	b = append(b, table[:]...)
	b = append(b, 0x01, 0x00)       // writable indices [0]
	b = append(b, 0x02, 0x01, 0x02) // readonly indices [1, 2]
	return b
}

func TestScenarioD_LegacyNativeTransferPayload(t *testing.T) {
	tx, err := Decode(encodeLegacyTransfer(1_000_000_000))
	require.NoError(t, err)
	require.Equal(t, VersionLegacy, tx.Version)

	conv := NewConverter()
	p, err := conv.ToPayload(tx, chain.Options{DecodeTransfers: true})
	require.NoError(t, err)
	require.Equal(t, "Solana (Legacy)", p.Title)

	out, err := p.ToValidatedJSON()
	require.NoError(t, err)
	require.Contains(t, out, `"Text":"Solana"`)
	require.Contains(t, out, `"Label":"Account Keys"`)
	require.Contains(t, out, `"Label":"Transfer 1"`)
	require.Contains(t, out, "Amount 1000000000")
	require.Contains(t, out, `"Type":"preview_layout"`)
}

func TestScenarioE_V0AddressLookupTables(t *testing.T) {
	tx, err := Decode(encodeV0WithLookup())
	require.NoError(t, err)
	require.Equal(t, VersionV0, tx.Version)

	conv := NewConverter()
	p, err := conv.ToPayload(tx, chain.Options{})
	require.NoError(t, err)
	require.Equal(t, "Solana (V0)", p.Title)

	out, err := p.ToValidatedJSON()
	require.NoError(t, err)
	require.Contains(t, out, `"Label":"Address Lookup Tables"`)
	require.Contains(t, out, `"Number":"1"`)
	require.Contains(t, out, `"Label":"Table Address"`)
	require.Contains(t, out, `"Text":"1 accounts"`)
	require.Contains(t, out, `"Text":"2 accounts"`)
}

func TestDispatchOrder_UnknownAlwaysLast(t *testing.T) {
	visualizers := defaultVisualizers()
	require.IsType(t, &unknown.Visualizer{}, visualizers[len(visualizers)-1])
}

func TestDispatchAny_SystemProgramFiresBeforeCatchAll(t *testing.T) {
	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data[:4], 2)
	binary.LittleEndian.PutUint64(data[4:], 500)

	ctx := &instrctx.Context{
		SenderAddr: "sender",
		ProgramID:  solana.SystemProgramID,
		Data:       data,
	}

	field, err, matched := visualizer.DispatchAny[*instrctx.Context](ctx, defaultVisualizers())
	require.True(t, matched)
	require.NoError(t, err)
	require.NotNil(t, field.Field)
	preview, ok := field.Field.(payload.PreviewLayoutField)
	require.True(t, ok)
	require.Equal(t, "System Transfer", preview.Label)
}
