// Package contracts is the in-memory Ethereum contract/token registry: a
// (chainID, address) -> contract type map and a (chainID, token address)
// -> token metadata map, seedable from a YAML chain-metadata file.
package contracts

import (
	"fmt"
	"math/big"
	"strings"

	"gopkg.in/yaml.v3"

	"txvisualizer/internal/ethereum/units"
)

// Token describes an ERC-20 or equivalent token for amount formatting.
type Token struct {
	Symbol      string
	Name        string
	Decimals    int
	ErcStandard string
}

// Registry maps (chainID, address) to contract type and token metadata.
type Registry struct {
	contractTypes map[key]string
	tokens        map[key]Token
}

type key struct {
	chainID int64
	address string
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		contractTypes: make(map[key]string),
		tokens:        make(map[key]Token),
	}
}

func normalize(address string) string {
	return strings.ToLower(address)
}

// RegisterContractType records the contract type string for address on chainID.
func (r *Registry) RegisterContractType(chainID int64, address, contractType string) {
	r.contractTypes[key{chainID, normalize(address)}] = contractType
}

// ContractType looks up a registered contract type, if any.
func (r *Registry) ContractType(chainID int64, address string) (string, bool) {
	v, ok := r.contractTypes[key{chainID, normalize(address)}]
	return v, ok
}

// RegisterToken records token metadata for address on chainID.
func (r *Registry) RegisterToken(chainID int64, address string, t Token) {
	r.tokens[key{chainID, normalize(address)}] = t
}

// Token looks up registered token metadata, if any.
func (r *Registry) Token(chainID int64, address string) (Token, bool) {
	v, ok := r.tokens[key{chainID, normalize(address)}]
	return v, ok
}

// FormatTokenAmount renders raw using the registered token's decimals,
// returning the formatted decimal string and its symbol. Unregistered
// tokens report ok=false.
func (r *Registry) FormatTokenAmount(chainID int64, tokenAddress string, raw *big.Int) (amount, symbol string, ok bool) {
	t, found := r.Token(chainID, tokenAddress)
	if !found {
		return "", "", false
	}
	return units.Format(raw, t.Decimals), t.Symbol, true
}

var networkIDs = map[string]int64{
	"ETHEREUM_MAINNET": 1,
	"POLYGON_MAINNET":  137,
	"ARBITRUM_MAINNET": 42161,
	"OPTIMISM_MAINNET": 10,
	"BASE_MAINNET":     8453,
}

// chainMetadataSeed is the YAML shape bulk-registered by LoadChainMetadata.
type chainMetadataSeed struct {
	Network string `yaml:"network"`
	Tokens  []struct {
		Address     string `yaml:"address"`
		Symbol      string `yaml:"symbol"`
		Name        string `yaml:"name"`
		Decimals    int    `yaml:"decimals"`
		ErcStandard string `yaml:"erc_standard"`
	} `yaml:"tokens"`
}

// LoadChainMetadata parses a network id string (e.g. "ETHEREUM_MAINNET")
// and bulk-registers the tokens described in the YAML document.
func (r *Registry) LoadChainMetadata(doc []byte) error {
	var seed chainMetadataSeed
	if err := yaml.Unmarshal(doc, &seed); err != nil {
		return fmt.Errorf("decode_error: invalid chain metadata document: %w", err)
	}
	chainID, ok := networkIDs[seed.Network]
	if !ok {
		return fmt.Errorf("validation_error: unknown network id %q", seed.Network)
	}
	for _, tok := range seed.Tokens {
		r.RegisterToken(chainID, tok.Address, Token{
			Symbol:      tok.Symbol,
			Name:        tok.Name,
			Decimals:    tok.Decimals,
			ErcStandard: tok.ErcStandard,
		})
	}
	return nil
}
