package solana

import "github.com/gagliardetto/solana-go"

// AccountRole classifies a single account key by its signer/writable
// quadrant.
type AccountRole struct {
	Key      solana.PublicKey
	Index    int
	IsSigner bool
	Writable bool
}

// ClassifyAccounts partitions accountKeys (by position, per the message
// header's signer/readonly counts) into the four signer/writable
// quadrants and returns them concatenated in display order: signer+
// writable, signer+readonly, non-signer+writable, non-signer+readonly.
// Within each class, original message order is preserved.
func ClassifyAccounts(header solana.MessageHeader, accountKeys []solana.PublicKey) []AccountRole {
	numRequired := int(header.NumRequiredSignatures)
	numReadonlySigned := int(header.NumReadonlySignedAccounts)
	numReadonlyUnsigned := int(header.NumReadonlyUnsignedAccounts)

	totalNonSigners := len(accountKeys) - numRequired
	writableNonSigners := totalNonSigners - numReadonlyUnsigned

	var signerWritable, signerReadonly, nonSignerWritable, nonSignerReadonly []AccountRole

	for i, key := range accountKeys {
		role := AccountRole{Key: key, Index: i}
		if i < numRequired {
			role.IsSigner = true
			role.Writable = i < (numRequired - numReadonlySigned)
			if role.Writable {
				signerWritable = append(signerWritable, role)
			} else {
				signerReadonly = append(signerReadonly, role)
			}
			continue
		}
		nonSignerIndex := i - numRequired
		role.IsSigner = false
		role.Writable = nonSignerIndex < writableNonSigners
		if role.Writable {
			nonSignerWritable = append(nonSignerWritable, role)
		} else {
			nonSignerReadonly = append(nonSignerReadonly, role)
		}
	}

	out := make([]AccountRole, 0, len(accountKeys))
	out = append(out, signerWritable...)
	out = append(out, signerReadonly...)
	out = append(out, nonSignerWritable...)
	out = append(out, nonSignerReadonly...)
	return out
}
