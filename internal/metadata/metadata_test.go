package metadata

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/asn1"
	"encoding/hex"
	"testing"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func signSecp256k1(t *testing.T, value string) (SignatureMetadata, []byte) {
	t.Helper()
	priv, err := ecdsa.GenerateKey(gethcrypto.S256(), rand.Reader)
	require.NoError(t, err)

	digest := sha256.Sum256([]byte(value))
	r, s, err := ecdsa.Sign(rand.Reader, priv, digest[:])
	require.NoError(t, err)
	der, err := asn1.Marshal(derSignature{R: r, S: s})
	require.NoError(t, err)

	pubBytes := elliptic.Marshal(gethcrypto.S256(), priv.PublicKey.X, priv.PublicKey.Y)
	return SignatureMetadata{
		Value: hex.EncodeToString(der),
		Metadata: []KV{
			{Key: "algorithm", Value: "secp256k1"},
			{Key: "public_key", Value: hex.EncodeToString(pubBytes)},
		},
	}, pubBytes
}

func TestVerify_Secp256k1_RoundTrip(t *testing.T) {
	value := `{"abi":"ERC20"}`
	sig, _ := signSecp256k1(t, value)
	require.NoError(t, Verify(value, sig))
}

func TestVerify_Secp256k1_TamperFails(t *testing.T) {
	value := `{"abi":"ERC20"}`
	sig, _ := signSecp256k1(t, value)
	require.ErrorIs(t, Verify(value+"x", sig), ErrSignatureVerificationFailed)
}

func TestVerify_Secp256k1_ExtraMetadataStillPasses(t *testing.T) {
	value := `{"abi":"ERC20"}`
	sig, _ := signSecp256k1(t, value)
	sig.Metadata = append(sig.Metadata, KV{Key: "issuer", Value: "wallet-team"})
	require.NoError(t, Verify(value, sig))
}

func TestVerify_Ed25519_RoundTrip(t *testing.T) {
	value := `{"idl":"anchor"}`
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	digest := sha256.Sum256([]byte(value))
	sigBytes := ed25519.Sign(priv, digest[:])

	sig := SignatureMetadata{
		Value: hex.EncodeToString(sigBytes),
		Metadata: []KV{
			{Key: "algorithm", Value: "ed25519"},
			{Key: "public_key", Value: hex.EncodeToString(pub)},
		},
	}
	require.NoError(t, Verify(value, sig))
}

func TestVerify_MissingAlgorithm(t *testing.T) {
	err := Verify("x", SignatureMetadata{Value: "00"})
	require.Error(t, err)
}
