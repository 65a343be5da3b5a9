package sui

import (
	"encoding/binary"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"txvisualizer/internal/chain"
	"txvisualizer/internal/sui/txtypes"
)

// buildTransferTransaction hand-encodes a minimal BCS TransactionData:
// SplitCoins(GasCoin, [amount]) followed by TransferObjects(Result(0),
// receiver), the canonical native-transfer shape.
func buildTransferTransaction(amount uint64, receiver, sender [32]byte, gasPrice, gasBudget uint64) []byte {
	var b []byte
	u64 := func(v uint64) []byte {
		out := make([]byte, 8)
		binary.LittleEndian.PutUint64(out, v)
		return out
	}
	u16 := func(v uint16) []byte {
		out := make([]byte, 2)
		binary.LittleEndian.PutUint16(out, v)
		return out
	}

	b = append(b, 0x00) // TransactionData version V1
	b = append(b, 0x00) // kind: ProgrammableTransaction

	// Inputs: [pure u64 amount, pure address receiver]
	b = append(b, 0x02)
	b = append(b, 0x00, 0x08)
	b = append(b, u64(amount)...)
	b = append(b, 0x00, 0x20)
	b = append(b, receiver[:]...)

	// Commands: [SplitCoins(GasCoin, [Input(0)]), TransferObjects([Result(0)], Input(1))]
	b = append(b, 0x02)
	b = append(b, 0x02)      // SplitCoins
	b = append(b, 0x00)      // coin: GasCoin
	b = append(b, 0x01)      // one amount
	b = append(b, 0x01)      // Input
	b = append(b, u16(0)...) // index 0
	b = append(b, 0x01)      // TransferObjects
	b = append(b, 0x01)      // one object
	b = append(b, 0x02)      // Result
	b = append(b, u16(0)...) // command 0
	b = append(b, 0x01)      // address: Input
	b = append(b, u16(1)...) // index 1

	b = append(b, sender[:]...)

	// GasData: no payments, owner = sender, price, budget.
	b = append(b, 0x00)
	b = append(b, sender[:]...)
	b = append(b, u64(gasPrice)...)
	b = append(b, u64(gasBudget)...)

	b = append(b, 0x00) // expiration: None
	return b
}

func addr(n byte) [32]byte {
	var a [32]byte
	a[31] = n
	return a
}

func TestDecode_BareTransactionData(t *testing.T) {
	raw := buildTransferTransaction(1_000_000_000, addr(2), addr(1), 1000, 5_000_000)
	tx, err := Decode(raw)
	require.NoError(t, err)
	require.NotNil(t, tx.Data.Kind)
	require.Len(t, tx.Data.Kind.Inputs, 2)
	require.Len(t, tx.Data.Kind.Commands, 2)
	require.Equal(t, txtypes.Address(addr(1)), tx.Data.Sender)
	require.Equal(t, uint64(5_000_000), tx.Data.Gas.Budget)
	require.Equal(t, raw, tx.Data.Raw)
}

func TestDecode_SenderSignedDataEnvelope(t *testing.T) {
	td := buildTransferTransaction(500, addr(2), addr(1), 1000, 5_000_000)
	envelope := append([]byte{0x01, 0x00, 0x00, 0x00}, td...)

	tx, err := Decode(envelope)
	require.NoError(t, err)
	require.Equal(t, td, tx.Data.Raw)
}

func TestDecode_Empty(t *testing.T) {
	_, err := Decode(nil)
	require.ErrorContains(t, err, "Transaction is empty")
}

func TestScenarioF_NativeTransferPayload(t *testing.T) {
	raw := buildTransferTransaction(1_000_000_000, addr(2), addr(1), 1000, 5_000_000)
	tx, err := Decode(raw)
	require.NoError(t, err)

	conv := NewConverter()
	p, err := conv.ToPayload(tx, chain.Options{DecodeTransfers: true})
	require.NoError(t, err)
	require.Equal(t, "Programmable Transaction", p.Title)
	require.Equal(t, "Sui", p.PayloadType)

	out, err := p.ToValidatedJSON()
	require.NoError(t, err)
	assert.Contains(t, out, `"Label":"Transfer Command"`)
	assert.Contains(t, out, `"Text":"Transfer: 1000000000 MIST (1 SUI)"`)
	assert.Contains(t, out, `"Label":"Transaction Details"`)
	assert.Contains(t, out, `"Label":"Gas Owner"`)
	assert.Contains(t, out, `"Label":"Gas Budget"`)
	assert.Contains(t, out, `"AmountV2":{"Abbreviation":"MIST","Amount":"5000000"}`)
	assert.Contains(t, out, `"Label":"Raw Data"`)
	assert.Contains(t, out, `"FallbackText":"`+hex.EncodeToString(raw)+`"`)
}

func TestToPayload_TransfersOnlyWithDecodeTransfers(t *testing.T) {
	raw := buildTransferTransaction(42, addr(9), addr(8), 1, 2)
	tx, err := Decode(raw)
	require.NoError(t, err)

	conv := NewConverter()

	// The coin-transfer pass is gated: off by default, and rendered
	// exactly once when enabled.
	p, err := conv.ToPayload(tx, chain.Options{})
	require.NoError(t, err)
	out, err := p.ToValidatedJSON()
	require.NoError(t, err)
	require.Equal(t, 0, strings.Count(out, `"Label":"Transfer Command"`))

	p, err = conv.ToPayload(tx, chain.Options{DecodeTransfers: true})
	require.NoError(t, err)
	out, err = p.ToValidatedJSON()
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(out, `"Label":"Transfer Command"`))
}

func TestFromString_CustomTitle(t *testing.T) {
	raw := buildTransferTransaction(7, addr(3), addr(4), 1, 2)
	conv := NewConverter()
	tx, err := conv.FromString("0x" + hex.EncodeToString(raw))
	require.NoError(t, err)

	p, err := conv.ToPayload(tx, chain.Options{TransactionName: "My Transfer"})
	require.NoError(t, err)
	require.Equal(t, "My Transfer", p.Title)
}

func TestTruncateAddress(t *testing.T) {
	require.Equal(t, "0xab...7890", txtypes.TruncateAddress("0xabcdef1234567890"))
	require.Equal(t, "0x1234", txtypes.TruncateAddress("0x1234"))
}
