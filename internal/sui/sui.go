// Package sui decodes raw Sui transactions (BCS-encoded SenderSignedData
// or bare TransactionData) and renders their programmable-transaction
// command sequence as a Signable Payload.
package sui

import (
	"fmt"

	"txvisualizer/internal/chain"
	"txvisualizer/internal/payload"
	"txvisualizer/internal/sui/cmdctx"
	"txvisualizer/internal/sui/presets/cetus"
	"txvisualizer/internal/sui/presets/cointransfer"
	"txvisualizer/internal/sui/presets/momentum"
	"txvisualizer/internal/sui/presets/nativestaking"
	"txvisualizer/internal/sui/presets/suilend"
	"txvisualizer/internal/sui/txtypes"
	"txvisualizer/internal/txencoding"
	"txvisualizer/internal/visualizer"
)

// Transaction is the decoded form of a raw Sui transaction.
type Transaction struct {
	Data *txtypes.TransactionData
}

func (Transaction) ChainTag() string { return "sui" }

// Decode tries the SenderSignedData envelope first, then a bare
// TransactionData value.
func Decode(data []byte) (*Transaction, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("Transaction is empty")
	}
	if td, err := txtypes.DecodeSenderSignedData(data); err == nil {
		return &Transaction{Data: td}, nil
	}
	td, err := txtypes.DecodeTransactionData(data)
	if err != nil {
		return nil, fmt.Errorf("decode_error: unable to decode transaction data as either SenderSignedData or TransactionData")
	}
	return &Transaction{Data: td}, nil
}

// defaultVisualizers builds the shared command-visualizer dispatch list.
// Unlike the Solana list there is no catch-all: commands nothing claims
// are covered by the Transaction Details block instead. The coin-transfer
// visualizer is deliberately absent: it runs only through the separate
// DecodeTransfers-gated pass, so transfers are never emitted twice.
func defaultVisualizers() []visualizer.Visualizer[*cmdctx.Context] {
	return []visualizer.Visualizer[*cmdctx.Context]{
		nativestaking.New(),
		cetus.New(),
		momentum.New(),
		suilend.New(),
	}
}

// Converter implements chain.Converter for Sui transactions.
type Converter struct {
	visualizers []visualizer.Visualizer[*cmdctx.Context]
	transfers   *cointransfer.Visualizer
}

func NewConverter() *Converter {
	return &Converter{
		visualizers: defaultVisualizers(),
		transfers:   cointransfer.New(),
	}
}

func (c *Converter) SupportsFormat(raw string) bool {
	_, _, err := txencoding.Decode(raw)
	return err == nil
}

func (c *Converter) FromString(raw string) (chain.Transaction, error) {
	if raw == "" {
		return nil, fmt.Errorf("Transaction is empty")
	}
	data, _, err := txencoding.Decode(raw)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

func (c *Converter) ToPayload(tx chain.Transaction, opts chain.Options) (*payload.Payload, error) {
	stx, ok := tx.(*Transaction)
	if !ok {
		return nil, fmt.Errorf("conversion_error: expected a sui.Transaction")
	}
	td := stx.Data

	var fields []payload.AnnotatedField
	fields = append(fields, payload.NewTextV2("Network", "Sui Network"))

	if opts.DecodeTransfers {
		transferFields, err := c.visualizeCommands(td, []visualizer.Visualizer[*cmdctx.Context]{c.transfers})
		if err != nil {
			return nil, err
		}
		fields = append(fields, transferFields...)
	}

	commandFields, err := c.visualizeCommands(td, c.visualizers)
	if err != nil {
		return nil, err
	}
	fields = append(fields, commandFields...)

	fields = append(fields, transactionDetails(td))

	title := "Programmable Transaction"
	if opts.TransactionName != "" {
		title = opts.TransactionName
	}
	return payload.New(0, title, "", fields, "Sui"), nil
}

// visualizeCommands walks the programmable transaction's commands in
// order, dispatching each through the given visualizer list. Commands no
// visualizer claims are skipped.
func (c *Converter) visualizeCommands(td *txtypes.TransactionData, visualizers []visualizer.Visualizer[*cmdctx.Context]) ([]payload.AnnotatedField, error) {
	if td.Kind == nil {
		return nil, nil
	}
	var fields []payload.AnnotatedField
	for i := range td.Kind.Commands {
		ctx := &cmdctx.Context{
			SenderAddr: td.Sender,
			Idx:        i,
			Commands:   td.Kind.Commands,
			Inputs:     td.Kind.Inputs,
		}
		field, err, matched := visualizer.DispatchAny(ctx, visualizers)
		if !matched {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("conversion_error: command %d: %w", i, err)
		}
		fields = append(fields, field)
	}
	return fields, nil
}

// transactionDetails builds the end-of-payload block recording the
// transaction type, gas configuration, and a raw dump of the whole
// encoded TransactionData.
func transactionDetails(td *txtypes.TransactionData) payload.AnnotatedField {
	fields := []payload.AnnotatedField{
		payload.NewTextV2("Transaction Type", "Programmable Transaction"),
		payload.NewAddressV2("Gas Owner", td.Gas.Owner.Truncated(), payload.AddressV2Options{}),
		payload.NewAmountV2("Gas Budget", fmt.Sprintf("%d", td.Gas.Budget), "MIST"),
		payload.NewAmountV2("Gas Price", fmt.Sprintf("%d", td.Gas.Price), "MIST"),
		payload.NewRawData(td.Raw, ""),
	}
	return payload.NewListLayout("Transaction Details", "Transaction Details", fields)
}

var _ chain.Transaction = (*Transaction)(nil)
var _ chain.Converter = (*Converter)(nil)
