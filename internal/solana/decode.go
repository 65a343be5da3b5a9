// Package solana decodes raw Solana transactions (legacy and versioned V0)
// and renders them as Signable Payloads, following the bincode wire format
// via github.com/gagliardetto/solana-go.
package solana

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"txvisualizer/internal/chain"
)

// MessageVersion distinguishes a legacy message from a V0 versioned one.
type MessageVersion int

const (
	VersionLegacy MessageVersion = iota
	VersionV0
)

// Transaction is the decoded form of a raw Solana transaction.
type Transaction struct {
	Version MessageVersion
	Raw     *solana.Transaction
}

func (Transaction) ChainTag() string { return "solana" }

// TransactionType returns the display string used as the default payload
// title: "Solana (Legacy)" or "Solana (V0)".
func (t *Transaction) TransactionType() string {
	if t.Version == VersionV0 {
		return "Solana (V0)"
	}
	return "Solana (Legacy)"
}

// Decode bincode-decodes data in a single pass: solana-go reads the
// message's version prefix and decodes either a legacy or a V0 message
// from it. A failed decode is not retried in another form.
func Decode(data []byte) (*Transaction, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("Input too short")
	}

	tx, err := solana.TransactionFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("decode_error: failed to decode solana transaction: %w", err)
	}

	version := VersionLegacy
	if tx.Message.IsVersioned() {
		version = VersionV0
	}

	return &Transaction{Version: version, Raw: tx}, nil
}

var _ chain.Transaction = (*Transaction)(nil)
