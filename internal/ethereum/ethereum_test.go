package ethereum

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/require"

	"txvisualizer/internal/chain"
)

func encodeLegacySigned(t *testing.T, nonce uint64, gasPrice *big.Int, gas uint64, to common.Address, value *big.Int, data []byte, chainID int64) []byte {
	t.Helper()
	v := big.NewInt(chainID*2 + 35)
	body := legacyRLP{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gas,
		To:       &to,
		Value:    value,
		Data:     data,
		V:        v,
		R:        big.NewInt(1),
		S:        big.NewInt(1),
	}
	raw, err := rlp.EncodeToBytes(body)
	require.NoError(t, err)
	return raw
}

func encodeDynamicFee(t *testing.T, chainID int64, nonce uint64, tip, feeCap *big.Int, gas uint64, to *common.Address, value *big.Int, data []byte) []byte {
	t.Helper()
	body := dynamicFeeRLP{
		ChainID:   big.NewInt(chainID),
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gas,
		To:        to,
		Value:     value,
		Data:      data,
		V:         big.NewInt(0),
		R:         big.NewInt(1),
		S:         big.NewInt(1),
	}
	raw, err := rlp.EncodeToBytes(body)
	require.NoError(t, err)
	return append([]byte{2}, raw...)
}

func TestDecode_LegacyTransfer(t *testing.T) {
	to := common.HexToAddress("0x000000000000000000000000000000000000dEaD")
	raw := encodeLegacySigned(t, 42, big.NewInt(20_000_000_000), 21000, to, big.NewInt(1_000_000_000_000_000_000), nil, 1)

	tx, err := Decode(raw)
	require.NoError(t, err)
	require.Equal(t, KindLegacy, tx.Kind)
	require.Equal(t, uint64(42), tx.Nonce)
	require.Equal(t, int64(1), tx.ChainID.Int64())
}

func TestScenarioA_LegacyTransferPayload(t *testing.T) {
	to := common.HexToAddress("0x000000000000000000000000000000000000dEaD")
	raw := encodeLegacySigned(t, 42, big.NewInt(20_000_000_000), 21000, to, big.NewInt(1_000_000_000_000_000_000), nil, 1)

	tx, err := Decode(raw)
	require.NoError(t, err)

	conv := NewConverter()
	p, err := conv.ToPayload(tx, chain.Options{})
	require.NoError(t, err)

	out, err := p.ToValidatedJSON()
	require.NoError(t, err)
	require.Contains(t, out, `"EthereumTx"`)
	require.Contains(t, out, `"Ethereum Transaction"`)
	require.Contains(t, out, `"AmountV2":{"Abbreviation":"ETH","Amount":"1"}`)
	require.Contains(t, out, `"Text":"Ethereum Mainnet"`)
	require.Contains(t, out, `"Text":"21000"`)
	require.Contains(t, out, `"Text":"20 gwei"`)
	require.Contains(t, out, `"Text":"42"`)
	require.Contains(t, out, `"AddressV2":{"Address":"0x000000000000000000000000000000000000dEaD","Name":"To"}`)
}

func TestScenarioB_DynamicFeePayload(t *testing.T) {
	// EIP-1559 with a custom title surfaces the priority fee after the gas
	// price and honors the caller-supplied transaction name.
	to := common.HexToAddress("0x0000000000000000000000000000000000000000")
	raw := encodeDynamicFee(t, 1, 1, big.NewInt(2_000_000_000), big.NewInt(30_000_000_000), 21000, &to, big.NewInt(1_000_000_000_000_000_000), nil)

	tx, err := Decode(raw)
	require.NoError(t, err)
	require.Equal(t, KindDynamicFee, tx.Kind)

	conv := NewConverter()
	name := "Test Transaction"
	p, err := conv.ToPayload(tx, chain.Options{TransactionName: name})
	require.NoError(t, err)
	require.Equal(t, name, p.Title)

	out, err := p.ToValidatedJSON()
	require.NoError(t, err)
	require.Contains(t, out, `"Text":"30 gwei"`)
	require.Contains(t, out, `"Label":"Max Priority Fee Per Gas"`)
	require.Contains(t, out, `"Text":"2 gwei"`)
}

func TestScenarioC_RejectsEIP4844(t *testing.T) {
	raw := append([]byte{3}, 0xc0)
	_, err := Decode(raw)
	require.ErrorContains(t, err, "Unsupported transaction type: eip-4844")
}

func TestDecode_EmptyInput(t *testing.T) {
	_, err := Decode(nil)
	require.ErrorContains(t, err, "Input too short")
}

func TestDecode_MalformedTypeFlag(t *testing.T) {
	_, err := Decode([]byte{0x90})
	require.ErrorContains(t, err, "Unexpected type flag 144.")
}

func TestEncodeForSigning_RoundTrip(t *testing.T) {
	to := common.HexToAddress("0x000000000000000000000000000000000000dEaD")

	legacy := encodeLegacySigned(t, 7, big.NewInt(1_000_000_000), 21000, to, big.NewInt(5), []byte{0xab}, 1)
	tx, err := Decode(legacy)
	require.NoError(t, err)
	reencoded, err := tx.EncodeForSigning()
	require.NoError(t, err)
	require.Equal(t, legacy, reencoded)

	dynamic := encodeDynamicFee(t, 1, 9, big.NewInt(2_000_000_000), big.NewInt(30_000_000_000), 40000, &to, big.NewInt(10), nil)
	tx2, err := Decode(dynamic)
	require.NoError(t, err)
	reencoded2, err := tx2.EncodeForSigning()
	require.NoError(t, err)
	require.Equal(t, dynamic, reencoded2)

	tx3, err := Decode(reencoded2)
	require.NoError(t, err)
	require.Equal(t, tx2, tx3)
}

func TestFormatUnits_IntegerOmitsDecimal(t *testing.T) {
	require.Equal(t, "1", FormatUnits(big.NewInt(1_000_000_000_000_000_000), 18))
	require.Equal(t, "1.5", FormatUnits(big.NewInt(1_500_000_000_000_000_000), 18))
	require.Equal(t, "0", FormatUnits(big.NewInt(0), 18))
}
