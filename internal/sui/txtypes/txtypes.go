// Package txtypes holds the decoded Sui transaction model: BCS decoders
// for SenderSignedData/TransactionData and the programmable-transaction
// command tree they contain. It is split out from the converter package
// so command visualizers can depend on it without an import cycle back
// through the decoder.
package txtypes

import (
	"encoding/hex"
	"fmt"

	"txvisualizer/internal/sui/bcs"
)

// Address is a 32-byte Sui object/account address.
type Address [32]byte

// Hex renders the address with a 0x prefix.
func (a Address) Hex() string {
	return "0x" + hex.EncodeToString(a[:])
}

// HexLiteral renders the address with a 0x prefix and leading zero hex
// digits stripped, the form used in package-id match configs (0x3, 0x2, ...).
func (a Address) HexLiteral() string {
	s := hex.EncodeToString(a[:])
	trimmed := ""
	for i := 0; i < len(s); i++ {
		if s[i] != '0' {
			trimmed = s[i:]
			break
		}
	}
	if trimmed == "" {
		trimmed = "0"
	}
	return "0x" + trimmed
}

// Truncated renders the address as "0xab...1234" for titles and
// subtitles.
func (a Address) Truncated() string {
	return TruncateAddress(a.Hex())
}

// TruncateAddress shortens a hex address string to its first four and
// last four characters; shorter strings render verbatim.
func TruncateAddress(s string) string {
	if len(s) <= 8 {
		return s
	}
	return s[:4] + "..." + s[len(s)-4:]
}

// ArgumentKind tags an Argument's variant.
type ArgumentKind int

const (
	ArgGasCoin ArgumentKind = iota
	ArgInput
	ArgResult
	ArgNestedResult
)

// Argument references a programmable-transaction input or a prior
// command's result.
type Argument struct {
	Kind        ArgumentKind
	InputIndex  uint16
	ResultIndex uint16
	NestedIndex uint16
}

func decodeArgument(r *bcs.Reader) (Argument, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return Argument{}, err
	}
	switch tag {
	case 0:
		return Argument{Kind: ArgGasCoin}, nil
	case 1:
		idx, err := r.ReadU16()
		if err != nil {
			return Argument{}, err
		}
		return Argument{Kind: ArgInput, InputIndex: idx}, nil
	case 2:
		idx, err := r.ReadU16()
		if err != nil {
			return Argument{}, err
		}
		return Argument{Kind: ArgResult, ResultIndex: idx}, nil
	case 3:
		a, err := r.ReadU16()
		if err != nil {
			return Argument{}, err
		}
		b, err := r.ReadU16()
		if err != nil {
			return Argument{}, err
		}
		return Argument{Kind: ArgNestedResult, ResultIndex: a, NestedIndex: b}, nil
	default:
		return Argument{}, fmt.Errorf("decode_error: sui: unknown argument tag %d", tag)
	}
}

// CallArgKind tags a CallArg's variant.
type CallArgKind int

const (
	CallArgPure CallArgKind = iota
	CallArgObject
)

// CallArg is one element of the programmable transaction's Inputs vector.
type CallArg struct {
	Kind     CallArgKind
	Pure     []byte
	ObjectID string // object id hex for Object inputs
}

func decodeCallArg(r *bcs.Reader) (CallArg, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return CallArg{}, err
	}
	switch tag {
	case 0:
		data, err := r.ReadByteVector()
		if err != nil {
			return CallArg{}, err
		}
		return CallArg{Kind: CallArgPure, Pure: data}, nil
	case 1:
		return decodeObjectArg(r)
	default:
		return CallArg{}, fmt.Errorf("decode_error: sui: unknown call-arg tag %d", tag)
	}
}

// decodeObjectArg consumes an ObjectArg variant. All three variants start
// with the 32-byte object id; the imm-or-owned and receiving forms then
// carry a version and digest, the shared form a version plus mutability
// flag.
func decodeObjectArg(r *bcs.Reader) (CallArg, error) {
	objTag, err := r.ReadByte()
	if err != nil {
		return CallArg{}, err
	}
	addr, err := r.ReadAddress()
	if err != nil {
		return CallArg{}, err
	}
	switch objTag {
	case 0, 2: // ImmOrOwnedObject, Receiving: (id, version, digest)
		if _, err := r.ReadU64(); err != nil {
			return CallArg{}, err
		}
		if _, err := r.ReadAddress(); err != nil {
			return CallArg{}, err
		}
	case 1: // SharedObject: (id, initial_shared_version, mutable)
		if _, err := r.ReadU64(); err != nil {
			return CallArg{}, err
		}
		if _, err := r.ReadBool(); err != nil {
			return CallArg{}, err
		}
	default:
		return CallArg{}, fmt.Errorf("decode_error: sui: unknown object-arg tag %d", objTag)
	}
	return CallArg{Kind: CallArgObject, ObjectID: Address(addr).Hex()}, nil
}

// CommandKind tags a Command's variant.
type CommandKind int

const (
	CommandMoveCall CommandKind = iota
	CommandTransferObjects
	CommandSplitCoins
	CommandMergeCoins
	CommandPublish
	CommandMakeMoveVec
	CommandUpgrade
)

// MoveCall is a programmable-transaction Move function invocation.
type MoveCall struct {
	Package   Address
	Module    string
	Function  string
	TypeArgs  []string
	Arguments []Argument
}

// TransferObjects moves a set of objects to a recipient address argument.
type TransferObjects struct {
	Objects []Argument
	Address Argument
}

// SplitCoins splits Amounts off of Coin.
type SplitCoins struct {
	Coin    Argument
	Amounts []Argument
}

// Command is one step of a programmable transaction block.
type Command struct {
	Kind            CommandKind
	MoveCall        *MoveCall
	TransferObjects *TransferObjects
	SplitCoins      *SplitCoins
}

// decodeTypeTag decodes a Move type tag into its display string. Only the
// struct form carries data we need (the coin type of a generic call);
// every other form decodes to its display name.
func decodeTypeTag(r *bcs.Reader) (string, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return "", err
	}
	switch tag {
	case 0:
		return "bool", nil
	case 1:
		return "u8", nil
	case 2:
		return "u64", nil
	case 3:
		return "u128", nil
	case 4:
		return "address", nil
	case 5:
		return "signer", nil
	case 6: // vector<T>
		inner, err := decodeTypeTag(r)
		if err != nil {
			return "", err
		}
		return "vector<" + inner + ">", nil
	case 7: // struct
		addr, err := r.ReadAddress()
		if err != nil {
			return "", err
		}
		module, err := r.ReadString()
		if err != nil {
			return "", err
		}
		name, err := r.ReadString()
		if err != nil {
			return "", err
		}
		params, err := bcs.ReadVector(r, decodeTypeTag)
		if err != nil {
			return "", err
		}
		s := Address(addr).HexLiteral() + "::" + module + "::" + name
		if len(params) > 0 {
			s += "<" + params[0]
			for _, p := range params[1:] {
				s += ", " + p
			}
			s += ">"
		}
		return s, nil
	case 8:
		return "u16", nil
	case 9:
		return "u32", nil
	case 10:
		return "u256", nil
	default:
		return "", fmt.Errorf("decode_error: sui: unknown type tag %d", tag)
	}
}

func decodeCommand(r *bcs.Reader) (Command, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return Command{}, err
	}
	switch tag {
	case 0:
		pkg, err := r.ReadAddress()
		if err != nil {
			return Command{}, err
		}
		module, err := r.ReadString()
		if err != nil {
			return Command{}, err
		}
		function, err := r.ReadString()
		if err != nil {
			return Command{}, err
		}
		typeArgs, err := bcs.ReadVector(r, decodeTypeTag)
		if err != nil {
			return Command{}, err
		}
		args, err := bcs.ReadVector(r, decodeArgument)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandMoveCall, MoveCall: &MoveCall{
			Package: Address(pkg), Module: module, Function: function, TypeArgs: typeArgs, Arguments: args,
		}}, nil
	case 1:
		objects, err := bcs.ReadVector(r, decodeArgument)
		if err != nil {
			return Command{}, err
		}
		addr, err := decodeArgument(r)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandTransferObjects, TransferObjects: &TransferObjects{Objects: objects, Address: addr}}, nil
	case 2:
		coin, err := decodeArgument(r)
		if err != nil {
			return Command{}, err
		}
		amounts, err := bcs.ReadVector(r, decodeArgument)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandSplitCoins, SplitCoins: &SplitCoins{Coin: coin, Amounts: amounts}}, nil
	case 3:
		if _, err := decodeArgument(r); err != nil {
			return Command{}, err
		}
		if _, err := bcs.ReadVector(r, decodeArgument); err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandMergeCoins}, nil
	case 4: // Publish(modules, dependencies)
		if _, err := bcs.ReadVector(r, func(rr *bcs.Reader) ([]byte, error) { return rr.ReadByteVector() }); err != nil {
			return Command{}, err
		}
		if _, err := bcs.ReadVector(r, func(rr *bcs.Reader) ([32]byte, error) { return rr.ReadAddress() }); err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandPublish}, nil
	case 5: // MakeMoveVec(type?, elements)
		optTag, err := r.ReadByte()
		if err != nil {
			return Command{}, err
		}
		if optTag == 1 {
			if _, err := decodeTypeTag(r); err != nil {
				return Command{}, err
			}
		}
		if _, err := bcs.ReadVector(r, decodeArgument); err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandMakeMoveVec}, nil
	case 6: // Upgrade(modules, dependencies, package, ticket)
		if _, err := bcs.ReadVector(r, func(rr *bcs.Reader) ([]byte, error) { return rr.ReadByteVector() }); err != nil {
			return Command{}, err
		}
		if _, err := bcs.ReadVector(r, func(rr *bcs.Reader) ([32]byte, error) { return rr.ReadAddress() }); err != nil {
			return Command{}, err
		}
		if _, err := r.ReadAddress(); err != nil {
			return Command{}, err
		}
		if _, err := decodeArgument(r); err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandUpgrade}, nil
	default:
		return Command{}, fmt.Errorf("decode_error: sui: unknown command tag %d", tag)
	}
}

// ProgrammableTransaction is the inputs+commands body of a programmable
// transaction block.
type ProgrammableTransaction struct {
	Inputs   []CallArg
	Commands []Command
}

func decodeProgrammableTransaction(r *bcs.Reader) (*ProgrammableTransaction, error) {
	inputs, err := bcs.ReadVector(r, decodeCallArg)
	if err != nil {
		return nil, err
	}
	commands, err := bcs.ReadVector(r, decodeCommand)
	if err != nil {
		return nil, err
	}
	return &ProgrammableTransaction{Inputs: inputs, Commands: commands}, nil
}

// GasData carries the transaction's gas payment configuration.
type GasData struct {
	Owner  Address
	Price  uint64
	Budget uint64
}

func decodeGasData(r *bcs.Reader) (GasData, error) {
	numPayments, err := r.ReadULEB128()
	if err != nil {
		return GasData{}, err
	}
	for i := uint64(0); i < numPayments; i++ {
		// Each payment is an ObjectRef: (object id, version u64, digest [32]byte).
		if _, err := r.ReadAddress(); err != nil {
			return GasData{}, err
		}
		if _, err := r.ReadU64(); err != nil {
			return GasData{}, err
		}
		if _, err := r.ReadAddress(); err != nil {
			return GasData{}, err
		}
	}
	owner, err := r.ReadAddress()
	if err != nil {
		return GasData{}, err
	}
	price, err := r.ReadU64()
	if err != nil {
		return GasData{}, err
	}
	budget, err := r.ReadU64()
	if err != nil {
		return GasData{}, err
	}
	return GasData{Owner: Address(owner), Price: price, Budget: budget}, nil
}

// TransactionData is the decoded top-level transaction body: a V1
// transaction kind (only ProgrammableTransaction is supported), sender,
// and gas configuration. Raw holds the exact BCS bytes of the
// TransactionData value itself, excluding any outer envelope.
type TransactionData struct {
	Kind   *ProgrammableTransaction
	Sender Address
	Gas    GasData
	Raw    []byte
}

// DecodeTransactionData decodes a bare (unwrapped) TransactionData value.
func DecodeTransactionData(raw []byte) (*TransactionData, error) {
	r := bcs.NewReader(raw)

	versionTag, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("decode_error: %w", err)
	}
	if versionTag != 0 {
		return nil, fmt.Errorf("decode_error: unsupported transaction data version %d", versionTag)
	}

	kindTag, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("decode_error: %w", err)
	}
	if kindTag != 0 {
		return nil, fmt.Errorf("decode_error: unsupported transaction kind %d", kindTag)
	}

	pt, err := decodeProgrammableTransaction(r)
	if err != nil {
		return nil, err
	}
	sender, err := r.ReadAddress()
	if err != nil {
		return nil, fmt.Errorf("decode_error: %w", err)
	}
	gas, err := decodeGasData(r)
	if err != nil {
		return nil, fmt.Errorf("decode_error: %w", err)
	}
	// Expiration: tag 0 = None, tag 1 = Epoch(u64).
	expTag, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("decode_error: %w", err)
	}
	if expTag == 1 {
		if _, err := r.ReadU64(); err != nil {
			return nil, fmt.Errorf("decode_error: %w", err)
		}
	}

	consumed := len(raw) - r.Len()
	return &TransactionData{Kind: pt, Sender: Address(sender), Gas: gas, Raw: raw[:consumed]}, nil
}

// DecodeSenderSignedData decodes the outer SenderSignedData envelope: a
// one-element transaction vector whose entry is a 3-byte intent prefix,
// the TransactionData, then signatures we do not interpret.
func DecodeSenderSignedData(raw []byte) (*TransactionData, error) {
	r := bcs.NewReader(raw)
	count, err := r.ReadULEB128()
	if err != nil {
		return nil, fmt.Errorf("decode_error: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("decode_error: sui: empty sender-signed data")
	}
	// Intent: scope, version, app id, one byte each.
	if _, err := r.ReadBytes(3); err != nil {
		return nil, fmt.Errorf("decode_error: %w", err)
	}
	return DecodeTransactionData(r.Remaining())
}
