// Package erc20 recognizes the transfer/transferFrom selectors of the
// ERC-20 standard inside an Ethereum transaction's input data.
package erc20

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"txvisualizer/internal/payload"
)

const erc20ABI = `[
	{"name":"transfer","type":"function","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"name":"transferFrom","type":"function","inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]}
]`

var parsedABI abi.ABI

func init() {
	a, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		panic(fmt.Sprintf("erc20: invalid embedded ABI: %v", err))
	}
	parsedABI = a
}

// Transfer is a decoded transfer or transferFrom call.
type Transfer struct {
	Method    string
	Recipient common.Address
	Amount    *big.Int
}

// DecodeTransfer recognizes the transfer/transferFrom selectors and
// unpacks the full ABI-encoded call.
func DecodeTransfer(input []byte) (Transfer, bool) {
	if len(input) < 4 {
		return Transfer{}, false
	}
	method, err := parsedABI.MethodById(input[:4])
	if err != nil {
		return Transfer{}, false
	}

	args, err := method.Inputs.Unpack(input[4:])
	if err != nil {
		return Transfer{}, false
	}

	switch method.Name {
	case "transfer":
		to, _ := args[0].(common.Address)
		amount, _ := args[1].(*big.Int)
		if amount == nil {
			return Transfer{}, false
		}
		return Transfer{Method: method.Name, Recipient: to, Amount: amount}, true
	case "transferFrom":
		to, _ := args[1].(common.Address)
		amount, _ := args[2].(*big.Int)
		if amount == nil {
			return Transfer{}, false
		}
		return Transfer{Method: method.Name, Recipient: to, Amount: amount}, true
	default:
		return Transfer{}, false
	}
}

// Field renders a decoded transfer as a TextV2 field. amountText is the
// display form of the amount, either the raw integer or a
// decimals-formatted value with its symbol.
func Field(t Transfer, amountText string) payload.AnnotatedField {
	fallback := fmt.Sprintf("ERC-20 Transfer: %s to %s", amountText, t.Recipient.Hex())
	text := fmt.Sprintf("Amount: %s\nRecipient: %s", amountText, t.Recipient.Hex())
	return payload.Plain(payload.TextV2Field{
		Common: payload.Common{Label: "Token Transfer", FallbackText: fallback},
		Text:   text,
	})
}

// Parse decodes input as an ERC-20 transfer call and renders it with the
// raw integer amount.
func Parse(input []byte) (payload.AnnotatedField, bool) {
	t, ok := DecodeTransfer(input)
	if !ok {
		return payload.AnnotatedField{}, false
	}
	return Field(t, t.Amount.String()), true
}
