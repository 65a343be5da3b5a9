// Package chain holds the Chain enum and the registry that multiplexes a
// raw transaction string to a chain-specific converter.
package chain

import (
	"fmt"
	"strings"

	"txvisualizer/internal/metadata"
	"txvisualizer/internal/payload"
)

// Chain identifies which blockchain a raw transaction belongs to.
type Chain struct {
	tag    string
	custom bool
}

func (c Chain) String() string { return c.tag }

// IsCustom reports whether this Chain was constructed via Custom for an
// unrecognized name.
func (c Chain) IsCustom() bool { return c.custom }

var (
	Unspecified = Chain{tag: "unspecified"}
	Solana      = Chain{tag: "solana"}
	Ethereum    = Chain{tag: "ethereum"}
	Bitcoin     = Chain{tag: "bitcoin"}
	Sui         = Chain{tag: "sui"}
	Aptos       = Chain{tag: "aptos"}
	Polkadot    = Chain{tag: "polkadot"}
	Tron        = Chain{tag: "tron"}
)

// Custom builds a Chain for a name outside the known set.
func Custom(name string) Chain {
	return Chain{tag: strings.ToLower(name), custom: true}
}

var known = map[string]Chain{
	"unspecified": Unspecified,
	"solana":      Solana,
	"ethereum":    Ethereum,
	"bitcoin":     Bitcoin,
	"sui":         Sui,
	"aptos":       Aptos,
	"polkadot":    Polkadot,
	"tron":        Tron,
}

// ParseChain lowercases s and matches against the known chain set,
// falling back to Custom(s) when unrecognized.
func ParseChain(s string) Chain {
	lower := strings.ToLower(strings.TrimSpace(s))
	if c, ok := known[lower]; ok {
		return c
	}
	return Custom(lower)
}

// Options configures a conversion pass.
type Options struct {
	DecodeTransfers bool
	TransactionName string // empty means use the converter's default title
	Metadata        *metadata.ChainMetadata
}

// Transaction is the minimal surface a decoded, chain-specific transaction
// value exposes to the registry. Concrete chain packages define richer
// types that also satisfy this interface.
type Transaction interface {
	ChainTag() string
}

// Converter decodes raw strings for one chain and renders them as a
// Signable Payload.
type Converter interface {
	FromString(raw string) (Transaction, error)
	ToPayload(tx Transaction, opts Options) (*payload.Payload, error)
	SupportsFormat(raw string) bool
}

// ErrNoCompatibleConverter is returned by AutoDetect when no registered
// converter both recognizes the input format and successfully converts it.
var ErrNoCompatibleConverter = fmt.Errorf("no_compatible_converter: no registered chain converter accepted this payload")

// Registry holds one Converter per Chain.
type Registry struct {
	converters map[string]Converter
	order      []string
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{converters: make(map[string]Converter)}
}

// Register adds a converter for c. Registering the same chain twice
// replaces the previous converter but preserves its original dispatch
// position in AutoDetect.
func (r *Registry) Register(c Chain, conv Converter) {
	key := c.String()
	if _, exists := r.converters[key]; !exists {
		r.order = append(r.order, key)
	}
	r.converters[key] = conv
}

// SupportedChains lists the chain tags with a registered converter, in
// registration order.
func (r *Registry) SupportedChains() []string {
	return append([]string(nil), r.order...)
}

// Convert decodes raw under the converter registered for chain.
func (r *Registry) Convert(c Chain, raw string, opts Options) (*payload.Payload, error) {
	conv, ok := r.converters[c.String()]
	if !ok {
		return nil, fmt.Errorf("parse_error: unsupported_encoding: no converter registered for chain %q", c.String())
	}
	tx, err := conv.FromString(raw)
	if err != nil {
		return nil, fmt.Errorf("parse_error: %w", err)
	}
	p, err := conv.ToPayload(tx, opts)
	if err != nil {
		return nil, fmt.Errorf("conversion_error: %w", err)
	}
	return p, nil
}

// AutoDetect tries every registered converter in registration order and
// returns the first whose FromString and ToPayload both succeed.
func (r *Registry) AutoDetect(raw string, opts Options) (Chain, *payload.Payload, error) {
	for _, key := range r.order {
		conv := r.converters[key]
		if !conv.SupportsFormat(raw) {
			continue
		}
		tx, err := conv.FromString(raw)
		if err != nil {
			continue
		}
		p, err := conv.ToPayload(tx, opts)
		if err != nil {
			continue
		}
		return ParseChain(key), p, nil
	}
	return Chain{}, nil, ErrNoCompatibleConverter
}
