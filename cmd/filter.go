package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"scalemap/atlas/internal/filter"
	"scalemap/atlas/internal/provenance"
	"scalemap/atlas/internal/render"
)

var (
	filterFlagSet filterFlags
	filterJSON    bool
	filterAll     bool
)

type filteredNode struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Cluster     string `json:"cluster"`
	Tag         string `json:"tag"`
	Color       string `json:"color"`
	Visible     bool   `json:"visible"`
	Highlighted bool   `json:"highlighted"`
	Dimmed      bool   `json:"dimmed"`
}

type filterResult struct {
	Title    string         `json:"title"`
	Summary  filter.Summary `json:"summary"`
	Clusters []string       `json:"clusters"`
	Tags     []string       `json:"tags"`
	Sources  []string       `json:"sources"`
	Nodes    []filteredNode `json:"nodes"`
}

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Apply cluster, tag and source filters and list the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := OpenSession()
		if err != nil {
			return err
		}
		defer src.Close()

		s := src.session
		filterFlagSet.apply(s)
		st := s.State()

		res := filterResult{
			Title:    s.Title(),
			Summary:  s.Summary(),
			Clusters: st.Clusters.Sorted(),
			Tags:     st.Tags.Sorted(),
			Sources:  st.Provenance.Sorted(),
			Nodes:    []filteredNode{},
		}
		for _, n := range s.Store().Nodes() {
			if !filterAll && !n.Visible && !n.Highlighted {
				continue
			}
			res.Nodes = append(res.Nodes, filteredNode{
				Key: n.Key, Label: n.Label, Cluster: n.Cluster, Tag: n.Tag,
				Color: n.Color, Visible: n.Visible, Highlighted: n.Highlighted, Dimmed: n.Dimmed,
			})
		}
		if filterJSON {
			return printJSON(res)
		}

		sum := res.Summary
		fmt.Printf("\n  %s\n", brand.Sprint(res.Title))
		fmt.Printf("  edges %d visible of %d  highlighted nodes %d\n", sum.VisibleEdges, sum.TotalEdges, sum.HighlightedNodes)
		for _, r := range s.Selected() {
			fmt.Printf("  %s %s\n", info.Sprint("source"), provenance.BadgeLabel(r))
		}
		fmt.Println()
		width := cfg.Display.LabelWidth
		for _, n := range res.Nodes {
			mark := " "
			switch {
			case n.Highlighted:
				mark = hot.Sprint("★")
			case !n.Visible:
				mark = subtle.Sprint("·")
			}
			line := fmt.Sprintf("%s %-12s %s", mark, n.Key, render.PadRight(render.Truncate(n.Label, width, "..."), width))
			if !n.Visible {
				line += subtle.Sprint("  hidden")
			}
			fmt.Println("  " + line + subtle.Sprint("  "+n.Cluster))
		}
		return nil
	},
}

func init() {
	filterFlagSet.register(filterCmd)
	filterCmd.Flags().BoolVar(&filterJSON, "json", false, "Output as JSON")
	filterCmd.Flags().BoolVar(&filterAll, "all", false, "List hidden nodes too")
	rootCmd.AddCommand(filterCmd)
}
