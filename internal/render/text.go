package render

import "github.com/mattn/go-runewidth"

// Truncate cuts s to maxWidth terminal cells, ending in suffix when cut.
func Truncate(s string, maxWidth int, suffix string) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	suffixWidth := runewidth.StringWidth(suffix)
	if suffixWidth > maxWidth {
		return runewidth.Truncate(suffix, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth-suffixWidth, "") + suffix
}

// PadRight pads s with spaces to width cells
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}
