// Package cmdctx holds the per-command visualizer context shared between
// the Sui decoder and its preset visualizers, plus the declarative
// package/module/function match config and the typed argument getters
// presets use to read pure call-arg inputs.
package cmdctx

import (
	"encoding/binary"
	"fmt"

	"txvisualizer/internal/sui/txtypes"
)

// Context is the read-only per-command value the decoder builds before
// dispatching to a preset visualizer. It satisfies visualizer.Context.
type Context struct {
	SenderAddr txtypes.Address
	Idx        int
	Commands   []txtypes.Command
	Inputs     []txtypes.CallArg
}

func (c *Context) Sender() string { return c.SenderAddr.Hex() }
func (c *Context) Index() int     { return c.Idx }

// Command returns the command this context points at, or nil when the
// index is out of range.
func (c *Context) Command() *txtypes.Command {
	if c.Idx < 0 || c.Idx >= len(c.Commands) {
		return nil
	}
	return &c.Commands[c.Idx]
}

// MoveCall returns the context's command as a MoveCall, or nil when it is
// not one.
func (c *Context) MoveCall() *txtypes.MoveCall {
	cmd := c.Command()
	if cmd == nil || cmd.Kind != txtypes.CommandMoveCall {
		return nil
	}
	return cmd.MoveCall
}

// Config declares the (package id, module, function) triples a visualizer
// handles: package-id hex literal -> module name -> function names.
type Config struct {
	Packages map[string]map[string][]string
}

// Matches reports whether the config declares the given triple.
func (c Config) Matches(pkg, module, function string) bool {
	modules, ok := c.Packages[pkg]
	if !ok {
		return false
	}
	functions, ok := modules[module]
	if !ok {
		return false
	}
	for _, f := range functions {
		if f == function {
			return true
		}
	}
	return false
}

// MatchesCall reports whether the context's command is a MoveCall whose
// triple the config declares.
func (c Config) MatchesCall(ctx *Context) bool {
	mc := ctx.MoveCall()
	if mc == nil {
		return false
	}
	return c.Matches(mc.Package.HexLiteral(), mc.Module, mc.Function)
}

// ParseNumericArgument extracts the index carried by an Input or Result
// argument. GasCoin and NestedResult arguments have no single index.
func ParseNumericArgument(arg txtypes.Argument) (uint16, bool) {
	switch arg.Kind {
	case txtypes.ArgInput:
		return arg.InputIndex, true
	case txtypes.ArgResult:
		return arg.ResultIndex, true
	default:
		return 0, false
	}
}

// GetIndex reads the numeric index of the argument at position pos in
// args.
func GetIndex(args []txtypes.Argument, pos int) (uint16, bool) {
	if pos < 0 || pos >= len(args) {
		return 0, false
	}
	return ParseNumericArgument(args[pos])
}

// GetNestedResultValue reads one half of a NestedResult argument at
// position pos: nested 0 returns the command index, nested 1 the result
// slot within it.
func GetNestedResultValue(args []txtypes.Argument, pos, nested int) (uint16, bool) {
	if pos < 0 || pos >= len(args) {
		return 0, false
	}
	arg := args[pos]
	if arg.Kind != txtypes.ArgNestedResult {
		return 0, false
	}
	switch nested {
	case 0:
		return arg.ResultIndex, true
	case 1:
		return arg.NestedIndex, true
	default:
		return 0, false
	}
}

// input resolves the pos-th argument of args to its pure call-arg input.
func input(inputs []txtypes.CallArg, args []txtypes.Argument, pos int) (txtypes.CallArg, error) {
	idx, ok := GetIndex(args, pos)
	if !ok {
		return txtypes.CallArg{}, fmt.Errorf("missing_data: argument %d is absent or not an input reference", pos)
	}
	if int(idx) >= len(inputs) {
		return txtypes.CallArg{}, fmt.Errorf("missing_data: input index %d out of range", idx)
	}
	return inputs[idx], nil
}

// DecodeU64 reads the pos-th argument as a pure u64 input.
func DecodeU64(inputs []txtypes.CallArg, args []txtypes.Argument, pos int) (uint64, error) {
	arg, err := input(inputs, args, pos)
	if err != nil {
		return 0, err
	}
	return PureU64(arg)
}

// PureU64 decodes a pure call arg by the u64 Move layout.
func PureU64(arg txtypes.CallArg) (uint64, error) {
	if arg.Kind != txtypes.CallArgPure {
		return 0, fmt.Errorf("decode_error: expected a pure call arg")
	}
	if len(arg.Pure) != 8 {
		return 0, fmt.Errorf("decode_error: expected 8 bytes for u64, have %d", len(arg.Pure))
	}
	return binary.LittleEndian.Uint64(arg.Pure), nil
}

// PureU32 decodes a pure call arg by the u32 Move layout.
func PureU32(arg txtypes.CallArg) (uint32, error) {
	if arg.Kind != txtypes.CallArgPure {
		return 0, fmt.Errorf("decode_error: expected a pure call arg")
	}
	if len(arg.Pure) != 4 {
		return 0, fmt.Errorf("decode_error: expected 4 bytes for u32, have %d", len(arg.Pure))
	}
	return binary.LittleEndian.Uint32(arg.Pure), nil
}

// PureU16 decodes a pure call arg by the u16 Move layout.
func PureU16(arg txtypes.CallArg) (uint16, error) {
	if arg.Kind != txtypes.CallArgPure {
		return 0, fmt.Errorf("decode_error: expected a pure call arg")
	}
	if len(arg.Pure) != 2 {
		return 0, fmt.Errorf("decode_error: expected 2 bytes for u16, have %d", len(arg.Pure))
	}
	return binary.LittleEndian.Uint16(arg.Pure), nil
}

// PureU8 decodes a pure call arg by the u8 Move layout.
func PureU8(arg txtypes.CallArg) (uint8, error) {
	if arg.Kind != txtypes.CallArgPure {
		return 0, fmt.Errorf("decode_error: expected a pure call arg")
	}
	if len(arg.Pure) != 1 {
		return 0, fmt.Errorf("decode_error: expected 1 byte for u8, have %d", len(arg.Pure))
	}
	return arg.Pure[0], nil
}

// PureBool decodes a pure call arg by the bool Move layout.
func PureBool(arg txtypes.CallArg) (bool, error) {
	if arg.Kind != txtypes.CallArgPure {
		return false, fmt.Errorf("decode_error: expected a pure call arg")
	}
	if len(arg.Pure) != 1 || arg.Pure[0] > 1 {
		return false, fmt.Errorf("decode_error: invalid bool encoding")
	}
	return arg.Pure[0] == 1, nil
}

// PureAddress decodes a pure call arg as a 32-byte Sui address.
func PureAddress(arg txtypes.CallArg) (txtypes.Address, error) {
	var addr txtypes.Address
	if arg.Kind != txtypes.CallArgPure {
		return addr, fmt.Errorf("decode_error: expected a pure call arg")
	}
	if len(arg.Pure) != 32 {
		return addr, fmt.Errorf("decode_error: expected 32 bytes for address, have %d", len(arg.Pure))
	}
	copy(addr[:], arg.Pure)
	return addr, nil
}

// DecodeAddress reads the pos-th argument as a pure address input.
func DecodeAddress(inputs []txtypes.CallArg, args []txtypes.Argument, pos int) (txtypes.Address, error) {
	arg, err := input(inputs, args, pos)
	if err != nil {
		return txtypes.Address{}, err
	}
	return PureAddress(arg)
}

// ObjectID reads the pos-th argument as an object input's id hex.
func ObjectID(inputs []txtypes.CallArg, args []txtypes.Argument, pos int) (string, error) {
	arg, err := input(inputs, args, pos)
	if err != nil {
		return "", err
	}
	if arg.Kind != txtypes.CallArgObject {
		return "", fmt.Errorf("decode_error: expected an object call arg")
	}
	return arg.ObjectID, nil
}
