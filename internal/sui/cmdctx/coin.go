package cmdctx

import "strings"

// Coin is a parsed Move coin type argument, "0x2::sui::SUI"-shaped.
type Coin struct {
	Address string
	Name    string
	Symbol  string
}

// UnknownCoin is the zero-value placeholder for unparseable type args.
var UnknownCoin = Coin{Address: "0x0", Name: "Unknown", Symbol: "Unknown"}

// ParseCoin splits a coin type string into its address, module, and
// symbol parts, returning UnknownCoin when the string does not have the
// expected three components.
func ParseCoin(typeArg string) Coin {
	// A generic suffix ("...::lp::LP<A, B>") is not part of the symbol.
	if i := strings.IndexByte(typeArg, '<'); i >= 0 {
		typeArg = typeArg[:i]
	}
	parts := strings.SplitN(typeArg, "::", 3)
	if len(parts) != 3 || parts[0] == "" {
		return UnknownCoin
	}
	return Coin{Address: parts[0], Name: parts[1], Symbol: parts[2]}
}

// TypeArgCoin parses the nth type argument of a move call as a Coin,
// returning UnknownCoin when absent.
func TypeArgCoin(typeArgs []string, n int) Coin {
	if n < 0 || n >= len(typeArgs) {
		return UnknownCoin
	}
	return ParseCoin(typeArgs[n])
}

// BaseUnitSymbol returns the symbol of the coin's smallest unit: MIST for
// the native SUI coin, the coin's own symbol otherwise.
func (c Coin) BaseUnitSymbol() string {
	if c.Address == "0x2" && strings.EqualFold(c.Name, "sui") && strings.EqualFold(c.Symbol, "SUI") {
		return "MIST"
	}
	return c.Symbol
}

func (c Coin) String() string {
	return c.Address + "::" + c.Name + "::" + c.Symbol
}
