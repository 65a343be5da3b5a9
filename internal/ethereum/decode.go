// Package ethereum decodes raw Ethereum transactions (Legacy and EIP-1559,
// with explicit rejection of EIP-2930/4844/7702) and renders them as
// Signable Payloads.
package ethereum

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
)

// TxKind distinguishes the decoded envelope shape.
type TxKind int

const (
	KindLegacy TxKind = iota
	KindDynamicFee
)

// Transaction is the decoded form of a raw Ethereum transaction, carrying
// enough of the original field layout to render every payload field
// without re-decoding.
type Transaction struct {
	Kind TxKind

	ChainID   *big.Int // nil for pre-EIP-155 legacy transactions
	Nonce     uint64
	GasPrice  *big.Int // legacy only
	GasTipCap *big.Int // dynamic-fee only (maxPriorityFeePerGas)
	GasFeeCap *big.Int // dynamic-fee only (maxFeePerGas)
	Gas       uint64
	To        *common.Address
	Value     *big.Int
	Data      []byte

	accessList types.AccessList
	v, r, s    *big.Int
}

func (Transaction) ChainTag() string { return "ethereum" }

// legacyRLP mirrors go-ethereum's internal LegacyTx wire layout:
// rlp([nonce, gasPrice, gasLimit, to, value, data, v, r, s]).
type legacyRLP struct {
	Nonce    uint64
	GasPrice *big.Int
	Gas      uint64
	To       *common.Address `rlp:"nil"`
	Value    *big.Int
	Data     []byte
	V, R, S  *big.Int
}

// dynamicFeeRLP mirrors go-ethereum's internal DynamicFeeTx wire layout:
// 0x02 || rlp([chainId, nonce, maxPriorityFeePerGas, maxFeePerGas, gasLimit,
// to, value, data, accessList, v, r, s]).
type dynamicFeeRLP struct {
	ChainID    *big.Int
	Nonce      uint64
	GasTipCap  *big.Int
	GasFeeCap  *big.Int
	Gas        uint64
	To         *common.Address `rlp:"nil"`
	Value      *big.Int
	Data       []byte
	AccessList types.AccessList
	V, R, S    *big.Int
}

// Decode dispatches on the EIP-2718 type byte and returns a fully decoded
// Transaction, mirroring exactly the byte-classification rules the wallet
// host depends on for its pinned error strings.
func Decode(raw []byte) (*Transaction, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("Input too short")
	}

	first := raw[0]
	switch {
	case first == 0 || (first > 0x7f && first < 0xc0):
		return nil, fmt.Errorf("Unexpected type flag %d.", first)
	case first <= 0x7f:
		return decodeTyped(first, raw[1:])
	default: // first >= 0xc0
		return decodeLegacy(raw)
	}
}

func decodeTyped(typeByte byte, body []byte) (*Transaction, error) {
	switch typeByte {
	case 2:
		return decodeDynamicFee(body)
	case 1:
		return nil, fmt.Errorf("Unsupported transaction type: eip-2930")
	case 3:
		return nil, fmt.Errorf("Unsupported transaction type: eip-4844")
	case 4:
		return nil, fmt.Errorf("Unsupported transaction type: eip-7702")
	default:
		return nil, fmt.Errorf("Unexpected type flag %d.", typeByte)
	}
}

func decodeLegacy(raw []byte) (*Transaction, error) {
	var body legacyRLP
	rest, err := rlpDecodeWithTrailing(raw, &body)
	if err != nil {
		return nil, fmt.Errorf("decode_error: %w", err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("Unexpected trailing data: %x", rest)
	}

	tx := &Transaction{
		Kind:     KindLegacy,
		Nonce:    body.Nonce,
		GasPrice: body.GasPrice,
		Gas:      body.Gas,
		To:       body.To,
		Value:    body.Value,
		Data:     body.Data,
		v:        body.V,
		r:        body.R,
		s:        body.S,
	}
	tx.ChainID = legacyChainID(body.V)
	return tx, nil
}

// EncodeForSigning re-serializes the transaction into the same wire form
// Decode accepts, so a decode/encode pair round-trips byte-exactly.
func (t *Transaction) EncodeForSigning() ([]byte, error) {
	switch t.Kind {
	case KindLegacy:
		body := legacyRLP{
			Nonce:    t.Nonce,
			GasPrice: t.GasPrice,
			Gas:      t.Gas,
			To:       t.To,
			Value:    t.Value,
			Data:     t.Data,
			V:        t.v,
			R:        t.r,
			S:        t.s,
		}
		return rlp.EncodeToBytes(body)
	case KindDynamicFee:
		body := dynamicFeeRLP{
			ChainID:    t.ChainID,
			Nonce:      t.Nonce,
			GasTipCap:  t.GasTipCap,
			GasFeeCap:  t.GasFeeCap,
			Gas:        t.Gas,
			To:         t.To,
			Value:      t.Value,
			Data:       t.Data,
			AccessList: t.accessList,
			V:          t.v,
			R:          t.r,
			S:          t.s,
		}
		encoded, err := rlp.EncodeToBytes(body)
		if err != nil {
			return nil, err
		}
		return append([]byte{2}, encoded...), nil
	default:
		return nil, fmt.Errorf("conversion_error: unknown transaction kind %d", t.Kind)
	}
}

func decodeDynamicFee(body []byte) (*Transaction, error) {
	var dec dynamicFeeRLP
	rest, err := rlpDecodeWithTrailing(body, &dec)
	if err != nil {
		return nil, fmt.Errorf("decode_error: %w", err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("Unexpected trailing data: %x", rest)
	}

	return &Transaction{
		Kind:       KindDynamicFee,
		ChainID:    dec.ChainID,
		Nonce:      dec.Nonce,
		GasTipCap:  dec.GasTipCap,
		GasFeeCap:  dec.GasFeeCap,
		Gas:        dec.Gas,
		To:         dec.To,
		Value:      dec.Value,
		Data:       dec.Data,
		accessList: dec.AccessList,
		v:          dec.V,
		r:          dec.R,
		s:          dec.S,
	}, nil
}

// rlpDecodeWithTrailing decodes a single RLP value at the start of raw and
// reports any bytes left unconsumed, so the caller can enforce "no
// trailing data" itself with its own "Unexpected trailing data: {hex}"
// message rather than relying on rlp.DecodeBytes's blanket error.
func rlpDecodeWithTrailing(raw []byte, out interface{}) ([]byte, error) {
	reader := bytes.NewReader(raw)
	stream := rlp.NewStream(reader, 0)
	if err := stream.Decode(out); err != nil {
		return nil, err
	}
	return raw[len(raw)-reader.Len():], nil
}

// legacyChainID recovers the EIP-155 chain id encoded in V, or nil for a
// pre-EIP-155 signature (V of 27 or 28) or an unsigned placeholder V.
func legacyChainID(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	vv := new(big.Int).Set(v)
	if vv.Cmp(big.NewInt(35)) < 0 {
		return nil
	}
	// chainId = (v - 35) / 2
	chainID := new(big.Int).Sub(vv, big.NewInt(35))
	chainID.Div(chainID, big.NewInt(2))
	return chainID
}
