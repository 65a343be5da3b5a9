package chain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"txvisualizer/internal/payload"
)

type stubTx struct{ tag string }

func (s stubTx) ChainTag() string { return s.tag }

// stubConverter accepts raw strings with a fixed prefix.
type stubConverter struct {
	prefix string
	fail   bool
}

func (c *stubConverter) SupportsFormat(raw string) bool {
	return len(raw) >= len(c.prefix) && raw[:len(c.prefix)] == c.prefix
}

func (c *stubConverter) FromString(raw string) (Transaction, error) {
	if !c.SupportsFormat(raw) {
		return nil, fmt.Errorf("parse_error: wrong prefix")
	}
	return stubTx{tag: c.prefix}, nil
}

func (c *stubConverter) ToPayload(tx Transaction, opts Options) (*payload.Payload, error) {
	if c.fail {
		return nil, fmt.Errorf("conversion_error: forced failure")
	}
	title := "Stub"
	if opts.TransactionName != "" {
		title = opts.TransactionName
	}
	return payload.New(0, title, "", nil, tx.ChainTag()), nil
}

func TestParseChain(t *testing.T) {
	require.Equal(t, Ethereum, ParseChain("Ethereum"))
	require.Equal(t, Solana, ParseChain(" solana "))
	custom := ParseChain("megachain")
	require.True(t, custom.IsCustom())
	require.Equal(t, "megachain", custom.String())
}

func TestConvert_UnknownChain(t *testing.T) {
	r := NewRegistry()
	_, err := r.Convert(Ethereum, "0x00", Options{})
	require.ErrorContains(t, err, "no converter registered")
}

func TestConvert_Success(t *testing.T) {
	r := NewRegistry()
	r.Register(Ethereum, &stubConverter{prefix: "eth:"})

	p, err := r.Convert(Ethereum, "eth:raw", Options{TransactionName: "Custom"})
	require.NoError(t, err)
	require.Equal(t, "Custom", p.Title)
}

func TestAutoDetect_FirstFullySucceedingConverterWins(t *testing.T) {
	r := NewRegistry()
	// The first registered converter recognizes the format but fails
	// conversion; auto-detect must move on to the next one.
	r.Register(Ethereum, &stubConverter{prefix: "x:", fail: true})
	r.Register(Solana, &stubConverter{prefix: "x:"})

	c, p, err := r.AutoDetect("x:raw", Options{})
	require.NoError(t, err)
	require.Equal(t, Solana, c)
	require.Equal(t, "x:", p.PayloadType)
}

func TestAutoDetect_NoCompatibleConverter(t *testing.T) {
	r := NewRegistry()
	r.Register(Ethereum, &stubConverter{prefix: "eth:"})

	_, _, err := r.AutoDetect("sol:raw", Options{})
	require.ErrorIs(t, err, ErrNoCompatibleConverter)
}

func TestSupportedChains_RegistrationOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(Sui, &stubConverter{prefix: "sui:"})
	r.Register(Ethereum, &stubConverter{prefix: "eth:"})
	require.Equal(t, []string{"sui", "ethereum"}, r.SupportedChains())
}
