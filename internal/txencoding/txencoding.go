// Package txencoding detects and decodes the hex/base64 wire encodings raw
// transactions arrive in.
package txencoding

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// Encoding identifies which wire encoding a raw transaction string used.
type Encoding int

const (
	Hex Encoding = iota
	Base64
)

func (e Encoding) String() string {
	if e == Hex {
		return "hex"
	}
	return "base64"
}

// Detect classifies data as Hex when it is 0x-prefixed or consists only of
// ASCII hex digits, and Base64 otherwise.
func Detect(data string) Encoding {
	trimmed := strings.TrimPrefix(data, "0x")
	if strings.HasPrefix(data, "0x") {
		return Hex
	}
	if trimmed != "" && isAllHex(trimmed) {
		return Hex
	}
	return Base64
}

func isAllHex(s string) bool {
	for _, r := range s {
		isDigit := r >= '0' && r <= '9'
		isLower := r >= 'a' && r <= 'f'
		isUpper := r >= 'A' && r <= 'F'
		if !isDigit && !isLower && !isUpper {
			return false
		}
	}
	return true
}

// Decode auto-detects the encoding and decodes data to raw bytes.
func Decode(data string) ([]byte, Encoding, error) {
	enc := Detect(data)
	b, err := DecodeAs(data, enc)
	return b, enc, err
}

// DecodeAs decodes data under an explicitly chosen encoding.
func DecodeAs(data string, enc Encoding) ([]byte, error) {
	switch enc {
	case Hex:
		trimmed := strings.TrimPrefix(data, "0x")
		b, err := hex.DecodeString(trimmed)
		if err != nil {
			return nil, fmt.Errorf("Failed to decode hex: %w", err)
		}
		return b, nil
	case Base64:
		b, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			return nil, fmt.Errorf("Failed to decode base64: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("txencoding: unknown encoding")
	}
}
