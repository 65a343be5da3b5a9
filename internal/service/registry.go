package service

import (
	"txvisualizer/internal/chain"
	"txvisualizer/internal/ethereum"
	"txvisualizer/internal/ethereum/contracts"
	"txvisualizer/internal/solana"
	"txvisualizer/internal/sui"
)

// NewRegistry wires every supported chain converter. A non-nil token
// registry enables decimals-aware ERC-20 amount formatting. The result is
// immutable after construction and shared across requests.
func NewRegistry(tokens *contracts.Registry) *chain.Registry {
	r := chain.NewRegistry()
	if tokens != nil {
		r.Register(chain.Ethereum, ethereum.NewConverterWithTokens(tokens))
	} else {
		r.Register(chain.Ethereum, ethereum.NewConverter())
	}
	r.Register(chain.Solana, solana.NewConverter())
	r.Register(chain.Sui, sui.NewConverter())
	return r
}

// DefaultRegistry wires the converters with no token registry.
func DefaultRegistry() *chain.Registry {
	return NewRegistry(nil)
}
