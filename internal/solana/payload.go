package solana

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"

	"txvisualizer/internal/chain"
	"txvisualizer/internal/payload"
	"txvisualizer/internal/solana/instrctx"
	"txvisualizer/internal/solana/presets/ata"
	"txvisualizer/internal/solana/presets/computebudget"
	"txvisualizer/internal/solana/presets/jupiter"
	"txvisualizer/internal/solana/presets/stakepool"
	"txvisualizer/internal/solana/presets/system"
	"txvisualizer/internal/solana/presets/unknown"
	"txvisualizer/internal/txencoding"
	"txvisualizer/internal/visualizer"
)

// defaultVisualizers builds the shared, immutable dispatch list:
// protocol presets first, the catch-all last.
func defaultVisualizers() []visualizer.Visualizer[*instrctx.Context] {
	return []visualizer.Visualizer[*instrctx.Context]{
		system.New(),
		ata.New(),
		computebudget.New(),
		stakepool.New(),
		jupiter.New(),
		unknown.New(),
	}
}

// Converter implements chain.Converter for Solana transactions.
type Converter struct {
	visualizers []visualizer.Visualizer[*instrctx.Context]
}

func NewConverter() *Converter {
	return &Converter{visualizers: defaultVisualizers()}
}

func (c *Converter) SupportsFormat(raw string) bool {
	if _, _, err := txencoding.Decode(raw); err == nil {
		return true
	}
	_, err := base58.Decode(raw)
	return err == nil
}

// FromString accepts hex and base64 like the other chains, plus base58 as
// a fallback since Solana tooling commonly emits it.
func (c *Converter) FromString(raw string) (chain.Transaction, error) {
	data, _, err := txencoding.Decode(raw)
	if err != nil {
		b58, b58Err := base58.Decode(raw)
		if b58Err != nil {
			return nil, err
		}
		data = b58
	}
	return Decode(data)
}

func (c *Converter) ToPayload(tx chain.Transaction, opts chain.Options) (*payload.Payload, error) {
	stx, ok := tx.(*Transaction)
	if !ok {
		return nil, fmt.Errorf("conversion_error: expected a solana.Transaction")
	}
	msg := &stx.Raw.Message

	title := stx.TransactionType()
	if opts.TransactionName != "" {
		title = opts.TransactionName
	}

	var fields []payload.AnnotatedField
	fields = append(fields, payload.NewTextV2("Network", "Solana"))
	fields = append(fields, accountKeysField(msg))

	if stx.Version == VersionV0 && len(msg.AddressTableLookups) > 0 {
		fields = append(fields, addressLookupTablesField(msg.AddressTableLookups))
	}

	instrs := ResolveInstructions(msg)

	if opts.DecodeTransfers {
		fields = append(fields, extractTransfers(instrs)...)
	}

	for _, ctx := range instrs {
		field, err, matched := visualizer.DispatchAny(ctx, c.visualizers)
		if !matched {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("conversion_error: instruction %d: %w", ctx.Index(), err)
		}
		fields = append(fields, field)
	}

	return payload.New(0, title, "", fields, "SolanaTx"), nil
}

// accountKeysField lists the message's account keys in display order:
// signer+writable, signer+readonly, non-signer+writable,
// non-signer+readonly, preserving message order within each class.
func accountKeysField(msg *solana.Message) payload.AnnotatedField {
	roles := ClassifyAccounts(msg.Header, msg.AccountKeys)
	keys := make([]string, 0, len(roles))
	for _, role := range roles {
		keys = append(keys, role.Key.String())
	}
	return payload.NewTextV2("Account Keys", strings.Join(keys, ", "))
}

func addressLookupTablesField(lookups []solana.MessageAddressTableLookup) payload.AnnotatedField {
	fields := []payload.AnnotatedField{
		payload.NewNumber("Total Tables", fmt.Sprintf("%d", len(lookups))),
	}
	for _, lk := range lookups {
		fields = append(fields,
			payload.NewTextV2("Table Address", lk.AccountKey.String()),
			payload.NewTextV2("Writable Accounts", fmt.Sprintf("%d accounts", len(lk.WritableIndexes))),
			payload.NewTextV2("Readonly Accounts", fmt.Sprintf("%d accounts", len(lk.ReadonlyIndexes))),
		)
	}
	fallback := fmt.Sprintf("%d address lookup table(s)", len(lookups))
	return payload.NewListLayout("Address Lookup Tables", fallback, fields)
}

const splTransferInstruction byte = 3
const splTransferCheckedInstruction byte = 12

// splTransfer is a decoded SPL token transfer. Mint and decimals are
// known only for TransferChecked; the fee is always zero for the plain
// token program (transfer-fee extensions live in token-2022).
type splTransfer struct {
	From     string
	To       string
	Owner    string
	Amount   uint64
	Mint     string
	Decimals *uint8
	Fee      uint64
}

func extractTransfers(instrs []*instrctx.Context) []payload.AnnotatedField {
	var fields []payload.AnnotatedField
	nativeCount := 0
	splCount := 0
	for _, ctx := range instrs {
		if ctx.ProgramID.Equals(solana.SystemProgramID) {
			if lamports, ok := system.IsTransfer(ctx.Data); ok {
				nativeCount++
				from, to := accountAt(ctx, 0), accountAt(ctx, 1)
				label := fmt.Sprintf("Transfer %d", nativeCount)
				fallback := fmt.Sprintf("%s: %s -> %s: %d", label, from, to, lamports)
				text := fmt.Sprintf("From %s\nTo %s\nAmount %d", from, to, lamports)
				fields = append(fields, payload.Plain(payload.TextV2Field{
					Common: payload.Common{Label: label, FallbackText: fallback},
					Text:   text,
				}))
			}
			continue
		}
		if ctx.ProgramID.Equals(solana.TokenProgramID) {
			if t, ok := decodeSPLTransfer(ctx); ok {
				splCount++
				label := fmt.Sprintf("SPL Transfer %d", splCount)
				fallback := fmt.Sprintf("%s: %s -> %s: %d", label, t.From, t.To, t.Amount)
				decimals := "unknown"
				if t.Decimals != nil {
					decimals = fmt.Sprintf("%d", *t.Decimals)
				}
				text := fmt.Sprintf("From %s\nTo %s\nOwner %s\nAmount %d\nMint %s\nDecimals %s\nFee %d",
					t.From, t.To, t.Owner, t.Amount, t.Mint, decimals, t.Fee)
				fields = append(fields, payload.Plain(payload.TextV2Field{
					Common: payload.Common{Label: label, FallbackText: fallback},
					Text:   text,
				}))
			}
		}
	}
	return fields
}

func accountAt(ctx *instrctx.Context, i int) string {
	if i >= len(ctx.Accounts) {
		return "unknown"
	}
	return ctx.Accounts[i].String()
}

// decodeSPLTransfer recognizes Transfer (source, destination, owner) and
// TransferChecked (source, mint, destination, owner) token instructions.
func decodeSPLTransfer(ctx *instrctx.Context) (splTransfer, bool) {
	data := ctx.Data
	if len(data) < 9 {
		return splTransfer{}, false
	}
	amount := binary.LittleEndian.Uint64(data[1:9])
	switch data[0] {
	case splTransferInstruction:
		return splTransfer{
			From:   accountAt(ctx, 0),
			To:     accountAt(ctx, 1),
			Owner:  accountAt(ctx, 2),
			Amount: amount,
			Mint:   "unknown",
		}, true
	case splTransferCheckedInstruction:
		if len(data) < 10 {
			return splTransfer{}, false
		}
		decimals := data[9]
		return splTransfer{
			From:     accountAt(ctx, 0),
			To:       accountAt(ctx, 2),
			Owner:    accountAt(ctx, 3),
			Amount:   amount,
			Mint:     accountAt(ctx, 1),
			Decimals: &decimals,
		}, true
	default:
		return splTransfer{}, false
	}
}
