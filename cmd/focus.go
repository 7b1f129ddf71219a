package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"scalemap/atlas/internal/dataset"
	"scalemap/atlas/internal/items"
	"scalemap/atlas/internal/render"
)

var (
	focusFacets items.Facets
	focusCap    int
	focusJSON   bool
	focusFull   bool
)

var focusCmd = &cobra.Command{
	Use:   "focus <node>",
	Short: "Show a node's items and its heaviest neighbors' items",
	Long: `Show a node's items and the items of its most strongly connected
neighbors. The node may be given as a key, a key prefix or part of its label.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := OpenSession()
		if err != nil {
			return err
		}
		defer src.Close()

		n, err := ResolveNode(src, args[0])
		if err != nil {
			return err
		}
		top := 0
		if cmd.Flags().Changed("cap") {
			top = focusCap
		}
		p, err := src.session.FocusTop(n.Key, focusFacets, top)
		if err != nil {
			return err
		}
		if focusJSON {
			return printJSON(p)
		}

		shown := p
		if !focusFull {
			shown = p.Shown(cfg.Display.FocusItems, cfg.Display.NeighborItems)
		}
		width := cfg.Display.LabelWidth * 2
		fmt.Printf("\n  %s %s\n", brand.Sprint(p.Focus.Label), subtle.Sprint(p.Focus.Key))
		fmt.Printf("  %s\n", subtle.Sprint(facetSummary(p.Facets)))

		section(fmt.Sprintf("ITEMS  %d of %d", p.Focus.Shown, p.Focus.Total))
		printItems(shown.Focus.Items, p.Focus.Shown, width)

		section("NEIGHBORS")
		if len(shown.Neighbors) == 0 {
			fmt.Println(subtle.Sprint("  none with matching items"))
		}
		for _, e := range shown.Neighbors {
			fmt.Printf("  %s  %s  %s\n",
				info.Sprint(render.Truncate(e.Label, cfg.Display.LabelWidth, "...")),
				subtle.Sprintf("w=%.2f", e.Weight),
				fmt.Sprintf("%d of %d", e.Shown, e.Total))
			printItems(e.Items, e.Shown, width)
		}
		fmt.Println()
		return nil
	},
}

func printItems(its []dataset.Item, total, width int) {
	for _, it := range its {
		flags := ""
		if it.MachineDrafted {
			flags += " drafted"
		}
		if it.HumanEdited {
			flags += " edited"
		}
		fmt.Printf("    • %s%s\n", render.Truncate(it.Text, width, "..."), subtle.Sprint(flags))
	}
	if more := total - len(its); more > 0 {
		fmt.Println(subtle.Sprintf("    ... and %d more", more))
	}
}

func facetSummary(f items.Facets) string {
	sel := func(s string) string {
		if s == "" {
			return items.All
		}
		return s
	}
	out := fmt.Sprintf("level=%s tense=%s context=%s", sel(f.Level), sel(f.Tense), sel(f.Context))
	if f.ExcludeMachineDrafted {
		out += " no-drafted"
	}
	if f.HumanEditedOnly {
		out += " edited-only"
	}
	return out
}

func init() {
	focusCmd.Flags().StringVar(&focusFacets.Level, "level", items.All, "Only items at this level")
	focusCmd.Flags().StringVar(&focusFacets.Tense, "tense", items.All, "Only items in this tense")
	focusCmd.Flags().StringVar(&focusFacets.Context, "context", items.All, "Only items with this context")
	focusCmd.Flags().BoolVar(&focusFacets.ExcludeMachineDrafted, "no-drafted", false, "Hide machine-drafted items")
	focusCmd.Flags().BoolVar(&focusFacets.HumanEditedOnly, "edited-only", false, "Show only human-edited items")
	focusCmd.Flags().IntVar(&focusCap, "cap", items.DefaultCap, "Number of neighbors to keep")
	focusCmd.Flags().BoolVar(&focusFull, "full", false, "Do not trim item lists")
	focusCmd.Flags().BoolVar(&focusJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(focusCmd)
}
