package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"txvisualizer/internal/service"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00D4AA"))

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00D4AA"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555"))
)

// styled reports whether stdout is a terminal; piped output stays plain.
func styled() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func render(style lipgloss.Style, s string) string {
	if !styled() {
		return s
	}
	return style.Render(s)
}

func successMark() string {
	return render(successStyle, "ok:")
}

func renderError(err error) string {
	return render(errorStyle, "Error:") + " " + err.Error()
}

// summaryField is the slice of the canonical field object the summary
// renderer needs.
type summaryField struct {
	Label        string `json:"Label"`
	FallbackText string `json:"FallbackText"`
}

type summaryPayload struct {
	Title  string         `json:"Title"`
	Fields []summaryField `json:"Fields"`
}

// printSummary renders a human-readable field table from the canonical
// payload, one "Label: fallback" line per field.
func printSummary(w io.Writer, resp *service.ParseResponse) {
	var p summaryPayload
	if err := json.Unmarshal([]byte(resp.ParsedTransaction.Payload.SignablePayload), &p); err != nil {
		fmt.Fprintln(w, resp.ParsedTransaction.Payload.SignablePayload)
		return
	}

	fmt.Fprintln(w, render(titleStyle, p.Title))
	for _, f := range p.Fields {
		fmt.Fprintf(w, "  %s %s\n", render(labelStyle, f.Label+":"), f.FallbackText)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s %s\n", render(labelStyle, "Scheme:"), resp.ParsedTransaction.Signature.Scheme)
	fmt.Fprintf(w, "  %s %s\n", render(labelStyle, "Public Key:"), resp.ParsedTransaction.Signature.PublicKey)
	fmt.Fprintf(w, "  %s %s\n", render(labelStyle, "Digest:"), resp.ParsedTransaction.Signature.Message)
	fmt.Fprintf(w, "  %s %s\n", render(labelStyle, "Signature:"), resp.ParsedTransaction.Signature.Signature)
}
