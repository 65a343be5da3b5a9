package solana

import (
	"github.com/gagliardetto/solana-go"

	"txvisualizer/internal/solana/instrctx"
)

// ResolveInstructions converts each compiled instruction into an
// instrctx.Context by looking up its program-id and account indices
// against the message's static account-keys vector. Instructions whose
// indices fall outside that vector (only possible for V0 transactions
// whose accounts resolve through an address-lookup table we do not
// fetch) are dropped.
func ResolveInstructions(msg *solana.Message) []*instrctx.Context {
	accountKeys := msg.AccountKeys
	var sender string
	if len(accountKeys) > 0 {
		sender = accountKeys[0].String()
	}

	var out []*instrctx.Context
	for i, ix := range msg.Instructions {
		if int(ix.ProgramIDIndex) >= len(accountKeys) {
			continue
		}
		programID := accountKeys[ix.ProgramIDIndex]

		accounts := make([]solana.PublicKey, 0, len(ix.Accounts))
		skip := false
		for _, idx := range ix.Accounts {
			if int(idx) >= len(accountKeys) {
				skip = true
				break
			}
			accounts = append(accounts, accountKeys[idx])
		}
		if skip {
			continue
		}

		out = append(out, &instrctx.Context{
			SenderAddr:  sender,
			Idx:         i,
			ProgramID:   programID,
			Accounts:    accounts,
			Data:        ix.Data,
			AllAccounts: accountKeys,
		})
	}
	return out
}
