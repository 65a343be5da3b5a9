// Package instrctx holds the per-instruction visualizer context shared
// between the Solana decoder and its preset visualizers. It is split out
// from package solana so presets can depend on it without an import cycle
// back through the decoder.
package instrctx

import "github.com/gagliardetto/solana-go"

// Context is the read-only per-instruction value the decoder builds
// before dispatching to a preset visualizer. It satisfies
// visualizer.Context.
type Context struct {
	SenderAddr  string
	Idx         int
	ProgramID   solana.PublicKey
	Accounts    []solana.PublicKey
	Data        []byte
	AllAccounts []solana.PublicKey
}

func (c *Context) Sender() string { return c.SenderAddr }
func (c *Context) Index() int     { return c.Idx }
