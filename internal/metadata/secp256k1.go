package metadata

import (
	"crypto/elliptic"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// secp256k1Curve returns go-ethereum's secp256k1 curve implementation,
// reused here instead of vendoring curve parameters by hand.
func secp256k1Curve() elliptic.Curve {
	return gethcrypto.S256()
}
