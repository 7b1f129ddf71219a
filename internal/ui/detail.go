package ui

import (
	"fmt"
	"strings"

	"scalemap/atlas/internal/dataset"
	"scalemap/atlas/internal/items"
	"scalemap/atlas/internal/render"
)

// renderProjection formats a focused node's item panel
func renderProjection(p items.Projection, focusLimit, neighborLimit, width int) string {
	var sb strings.Builder
	shown := p.Shown(focusLimit, neighborLimit)

	sb.WriteString(titleStyle.Render(render.Truncate(p.Focus.Label, width, "…")) + "\n")
	sb.WriteString(mutedStyle.Render(facetLine(p.Facets)) + "\n\n")

	sb.WriteString(fmt.Sprintf("Items %d of %d\n", p.Focus.Shown, p.Focus.Total))
	writeItems(&sb, shown.Focus.Items, p.Focus.Shown, width)

	if len(shown.Neighbors) == 0 {
		sb.WriteString("\n" + mutedStyle.Render("No neighbor items") + "\n")
		return sb.String()
	}
	sb.WriteString("\n" + titleStyle.Render("Neighbors") + "\n")
	for _, e := range shown.Neighbors {
		head := fmt.Sprintf("%s  w=%.2f  %d of %d", render.Truncate(e.Label, width-24, "…"), e.Weight, e.Shown, e.Total)
		sb.WriteString(hotStyle.Render(head) + "\n")
		writeItems(&sb, e.Items, e.Shown, width)
	}
	return sb.String()
}

func writeItems(sb *strings.Builder, its []dataset.Item, total, width int) {
	for _, it := range its {
		sb.WriteString("  • " + render.Truncate(it.Text, width-4, "…") + "\n")
	}
	if more := total - len(its); more > 0 {
		sb.WriteString(mutedStyle.Render(fmt.Sprintf("  … and %d more", more)) + "\n")
	}
}

func facetLine(f items.Facets) string {
	sel := func(s string) string {
		if s == "" {
			return items.All
		}
		return s
	}
	line := fmt.Sprintf("level:%s  tense:%s  context:%s", sel(f.Level), sel(f.Tense), sel(f.Context))
	if f.ExcludeMachineDrafted {
		line += "  no-drafted"
	}
	if f.HumanEditedOnly {
		line += "  edited-only"
	}
	return line
}

// cycle steps sel through "all" followed by values
func cycle(sel string, values []string) string {
	options := append([]string{items.All}, values...)
	for i, o := range options {
		if o == sel || (sel == "" && o == items.All) {
			return options[(i+1)%len(options)]
		}
	}
	return items.All
}
