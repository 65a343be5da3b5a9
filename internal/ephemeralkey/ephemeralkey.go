// Package ephemeralkey manages the parser's process-scoped P-256 signing
// key: generated once, persisted as PEM, loaded at startup, and used only
// to attest to payload digests. It never signs user funds.
package ephemeralkey

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"fmt"
	"os"
)

const pemBlockType = "EC PRIVATE KEY"

// Key wraps the loaded P-256 key pair.
type Key struct {
	private *ecdsa.PrivateKey
}

// Generate creates a fresh P-256 key pair.
func Generate() (*Key, error) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("ephemeralkey: key generation failed: %w", err)
	}
	return &Key{private: priv}, nil
}

// Load reads a PEM-encoded P-256 private key from path.
func Load(path string) (*Key, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ephemeralkey: reading %s: %w", path, err)
	}
	block, _ := pem.Decode(raw)
	if block == nil || block.Type != pemBlockType {
		return nil, fmt.Errorf("ephemeralkey: %s does not contain an EC private key PEM block", path)
	}
	priv, err := x509.ParseECPrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("ephemeralkey: parsing %s: %w", path, err)
	}
	if priv.Curve != elliptic.P256() {
		return nil, fmt.Errorf("ephemeralkey: %s holds a %s key, want P-256", path, priv.Curve.Params().Name)
	}
	return &Key{private: priv}, nil
}

// Save writes the key to path as PEM, readable only by the owner.
func (k *Key) Save(path string) error {
	der, err := x509.MarshalECPrivateKey(k.private)
	if err != nil {
		return fmt.Errorf("ephemeralkey: marshaling key: %w", err)
	}
	out := pem.EncodeToMemory(&pem.Block{Type: pemBlockType, Bytes: der})
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return fmt.Errorf("ephemeralkey: writing %s: %w", path, err)
	}
	return nil
}

// PublicKeyHex returns the uncompressed SEC1 public key point as lowercase
// hex, the form echoed in every signed response.
func (k *Key) PublicKeyHex() string {
	pub := k.private.PublicKey
	point := elliptic.Marshal(pub.Curve, pub.X, pub.Y)
	return hex.EncodeToString(point)
}

// Sign produces a DER-encoded ECDSA signature over a 32-byte digest.
func (k *Key) Sign(digest []byte) ([]byte, error) {
	if len(digest) != 32 {
		return nil, fmt.Errorf("ephemeralkey: digest must be 32 bytes, have %d", len(digest))
	}
	sig, err := ecdsa.SignASN1(rand.Reader, k.private, digest)
	if err != nil {
		return nil, fmt.Errorf("ephemeralkey: signing failed: %w", err)
	}
	return sig, nil
}

// Verify checks a DER signature against the key's own public half. Used
// by tests and by callers that sanity-check responses before returning
// them.
func (k *Key) Verify(digest, sig []byte) bool {
	return ecdsa.VerifyASN1(&k.private.PublicKey, digest, sig)
}
