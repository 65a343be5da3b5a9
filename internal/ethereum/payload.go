package ethereum

import (
	"encoding/hex"
	"errors"
	"math/big"
	"strconv"

	"txvisualizer/internal/chain"
	"txvisualizer/internal/ethereum/erc20"
	"txvisualizer/internal/ethereum/uniswapur"
	"txvisualizer/internal/payload"
	"txvisualizer/internal/txencoding"
)

var errWrongTransactionType = errors.New("conversion_error: expected an ethereum.Transaction")

// TokenFormatter resolves a token contract to a formatted amount string
// and symbol. The contract registry satisfies this; a nil formatter
// leaves amounts raw.
type TokenFormatter interface {
	FormatTokenAmount(chainID int64, tokenAddress string, raw *big.Int) (amount, symbol string, ok bool)
}

// Converter implements chain.Converter for Ethereum transactions.
type Converter struct {
	tokens TokenFormatter
}

func NewConverter() *Converter { return &Converter{} }

// NewConverterWithTokens builds a Converter that formats recognized
// ERC-20 transfer amounts through the given token registry.
func NewConverterWithTokens(tokens TokenFormatter) *Converter {
	return &Converter{tokens: tokens}
}

func (c *Converter) SupportsFormat(raw string) bool {
	_, _, err := txencoding.Decode(raw)
	return err == nil
}

func (c *Converter) FromString(raw string) (chain.Transaction, error) {
	data, _, err := txencoding.Decode(raw)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

func (c *Converter) ToPayload(tx chain.Transaction, opts chain.Options) (*payload.Payload, error) {
	etx, ok := tx.(*Transaction)
	if !ok {
		return nil, errWrongTransactionType
	}

	title := "Ethereum Transaction"
	if opts.TransactionName != "" {
		title = opts.TransactionName
	}

	var fields []payload.AnnotatedField

	fields = append(fields, payload.NewTextV2("Network", networkName(etx.ChainID)))

	if etx.To != nil {
		fields = append(fields, payload.NewAddressV2("To", etx.To.Hex(), payload.AddressV2Options{Name: "To"}))
	}

	fields = append(fields, payload.NewAmountV2("Value", formatEther(etx.Value), "ETH"))
	fields = append(fields, payload.NewTextV2("Gas Limit", uintToString(etx.Gas)))
	fields = append(fields, payload.NewTextV2("Gas Price", formatGwei(gasPriceOf(etx))+" gwei"))

	if etx.Kind == KindDynamicFee && etx.GasTipCap != nil {
		fields = append(fields, payload.NewTextV2("Max Priority Fee Per Gas", formatGwei(etx.GasTipCap)+" gwei"))
	}

	fields = append(fields, payload.NewTextV2("Nonce", uintToString(etx.Nonce)))

	fields = append(fields, c.inputDataFields(etx, opts)...)

	return payload.New(0, title, "", fields, "EthereumTx"), nil
}

func gasPriceOf(tx *Transaction) *big.Int {
	if tx.Kind == KindLegacy {
		return tx.GasPrice
	}
	return tx.GasFeeCap
}

func (c *Converter) inputDataFields(tx *Transaction, opts chain.Options) []payload.AnnotatedField {
	data := tx.Data
	if len(data) == 0 {
		return nil
	}
	var fields []payload.AnnotatedField
	if opts.DecodeTransfers {
		if t, ok := erc20.DecodeTransfer(data); ok {
			fields = append(fields, erc20.Field(t, c.tokenAmountText(tx, t)))
		}
	}
	if f, ok := uniswapur.Parse(data); ok {
		fields = append(fields, f)
	}
	if len(fields) == 0 {
		fields = append(fields, payload.NewTextV2("Input Data", "0x"+hex.EncodeToString(data)))
	}
	return fields
}

// tokenAmountText formats a transfer amount using the token registry when
// the called contract is a registered token, falling back to the raw
// integer.
func (c *Converter) tokenAmountText(tx *Transaction, t erc20.Transfer) string {
	if c.tokens == nil || tx.To == nil || tx.ChainID == nil || !tx.ChainID.IsInt64() {
		return t.Amount.String()
	}
	amount, symbol, ok := c.tokens.FormatTokenAmount(tx.ChainID.Int64(), tx.To.Hex(), t.Amount)
	if !ok {
		return t.Amount.String()
	}
	return amount + " " + symbol
}

func uintToString(v uint64) string {
	return strconv.FormatUint(v, 10)
}
