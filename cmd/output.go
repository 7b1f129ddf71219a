package cmd

import (
	"io"
	"os"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"
)

var (
	brand  = color.New(color.FgHiGreen, color.Bold)
	subtle = color.New(color.FgHiBlack)
	warn   = color.New(color.FgYellow)
	info   = color.New(color.FgCyan)
	hot    = color.New(color.FgYellow, color.Bold)
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printJSON(v any) error { return writeJSON(os.Stdout, v) }

// section prints a heading with the rule line the analyze report uses
func section(title string) {
	brand.Printf("\n  %s\n", title)
	subtle.Println("  ────────────────────────────────────────")
}
