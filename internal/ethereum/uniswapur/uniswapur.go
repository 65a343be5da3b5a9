// Package uniswapur recognizes the Uniswap Universal Router's
// execute(bytes,bytes[],uint256) call inside an Ethereum transaction's
// input data.
package uniswapur

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"

	"txvisualizer/internal/payload"
)

const universalRouterABI = `[
	{"name":"execute","type":"function","inputs":[{"name":"commands","type":"bytes"},{"name":"inputs","type":"bytes[]"},{"name":"deadline","type":"uint256"}],"outputs":[]}
]`

var parsedABI abi.ABI

func init() {
	a, err := abi.JSON(strings.NewReader(universalRouterABI))
	if err != nil {
		panic(fmt.Sprintf("uniswapur: invalid embedded ABI: %v", err))
	}
	parsedABI = a
}

type execute struct {
	commands []byte
	deadline *big.Int
}

func decodeExecute(input []byte) (execute, bool) {
	if len(input) < 4 {
		return execute{}, false
	}
	method, err := parsedABI.MethodById(input[:4])
	if err != nil || method.Name != "execute" {
		return execute{}, false
	}
	args, err := method.Inputs.Unpack(input[4:])
	if err != nil || len(args) != 3 {
		return execute{}, false
	}
	commands, ok := args[0].([]byte)
	if !ok {
		return execute{}, false
	}
	deadline, ok := args[2].(*big.Int)
	if !ok {
		return execute{}, false
	}
	return execute{commands: commands, deadline: deadline}, true
}

// Parse attempts to decode input as a Universal Router execute call,
// returning a single TextV2 field summarizing the command batch.
func Parse(input []byte) (payload.AnnotatedField, bool) {
	ex, ok := decodeExecute(input)
	if !ok {
		return payload.AnnotatedField{}, false
	}
	fallback := fmt.Sprintf("Universal Router Execute: %d commands, deadline %s", len(ex.commands), ex.deadline.String())
	text := fmt.Sprintf("Commands: %d bytes\nDeadline: %s", len(ex.commands), ex.deadline.String())
	return payload.Plain(payload.TextV2Field{
		Common: payload.Common{Label: "Universal Router", FallbackText: fallback},
		Text:   text,
	}), true
}
