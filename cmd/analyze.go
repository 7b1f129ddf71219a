package cmd

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"scalemap/atlas/internal/graph"
	"scalemap/atlas/internal/render"
)

var (
	analyzeFlags        filterFlags
	analyzeJSON         bool
	analyzeTopN         int
	analyzeHubThreshold int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze the visible map: topology, bridges, cohesion score",
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := OpenSession()
		if err != nil {
			return err
		}
		defer src.Close()

		analyzeFlags.apply(src.session)
		store := src.session.Store()

		report := graph.Analyze(store, &graph.AnalyzerConfig{
			HubThreshold: analyzeHubThreshold,
			TopN:         analyzeTopN,
		})

		if analyzeJSON {
			return printJSON(report)
		}

		if src.db != nil {
			if info, err := src.db.Info(); err == nil {
				fmt.Printf("\n  %s %s, imported %s\n", subtle.Sprint("map"), info.Source,
					time.UnixMilli(info.ImportedAt).Format(time.DateTime))
			}
		}
		printHumanReadable(report, store)
		return nil
	},
}

func init() {
	analyzeFlags.register(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Output as JSON")
	analyzeCmd.Flags().IntVar(&analyzeTopN, "top-n", 10, "Number of top items to show per section")
	analyzeCmd.Flags().IntVar(&analyzeHubThreshold, "hub-threshold", 10, "Minimum degree to consider a node a hub")
	rootCmd.AddCommand(analyzeCmd)
}

func printHumanReadable(report *graph.AnalysisReport, store *graph.Store) {
	// Cohesion bar
	barLen := int(report.Cohesion * 20)
	if barLen > 20 {
		barLen = 20
	}
	bar := strings.Repeat("█", barLen) + strings.Repeat("░", 20-barLen)
	fmt.Printf("\n  Map Cohesion: %.0f%%  [%s]\n", report.Cohesion*100, bar)
	fmt.Printf("  breakdown: connectivity=%.2f components=%.2f fragility=%.2f\n",
		report.CohesionBreakdown.Connectivity,
		report.CohesionBreakdown.Components,
		report.CohesionBreakdown.Fragility)

	// Topology
	t := report.Topology
	section("TOPOLOGY")
	fmt.Printf("  Nodes: %d visible of %d  Edges: %d visible of %d\n", t.VisibleNodes, t.TotalNodes, t.VisibleEdges, t.TotalEdges)
	fmt.Printf("  Components: %d  Largest: %d  Smallest: %d\n", t.NumComponents, t.LargestComponent, t.SmallestComponent)

	if t.OrphanCount > 0 {
		fmt.Printf("  Orphans: %s disconnected nodes\n", warn.Sprint(t.OrphanCount))
		limit := min(len(t.OrphanKeys), 5)
		for _, key := range t.OrphanKeys[:limit] {
			fmt.Printf("    - %s (%s)\n", key, nodeLabel(store, key, 50))
		}
		if t.OrphanCount > 5 {
			fmt.Printf("    ... and %d more\n", t.OrphanCount-5)
		}
	}

	// Degree distribution
	fmt.Println("\n  Degree distribution:")
	for _, b := range t.DegreeHistogram {
		if b.Count > 0 {
			barWidth := int(math.Log2(float64(b.Count))) + 2
			if barWidth < 1 {
				barWidth = 1
			}
			fmt.Printf("    %5s: %4d  %s\n", b.Label, b.Count, strings.Repeat("=", barWidth))
		}
	}

	if len(t.Hubs) > 0 {
		fmt.Println("\n  Top hubs (degree >= threshold):")
		for _, hub := range t.Hubs {
			fmt.Printf("    %-10s degree=%d (in=%d, out=%d)  %s\n",
				render.Truncate(hub.Key, 10, ""), hub.Degree, hub.InDegree, hub.OutDegree, render.Truncate(hub.Label, 40, "..."))
		}
	}

	section("CLUSTERS")
	for _, c := range t.Clusters {
		name := c.Label
		if name == "" {
			name = c.Key
		}
		line := fmt.Sprintf("  %s %d/%d visible", render.PadRight(render.Truncate(name, 24, "..."), 24), c.Visible, c.Total)
		if c.Highlighted > 0 {
			line += hot.Sprintf("  %d highlighted", c.Highlighted)
		}
		fmt.Println(line)
	}

	// Bridges
	br := report.Bridges
	if br.APCount > 0 || br.BridgeCount > 0 || len(br.FragileConnections) > 0 {
		section("STRUCTURAL FRAGILITY")
		if br.APCount > 0 {
			fmt.Printf("  %d articulation points (removal disconnects the map):\n", br.APCount)
			limit := min(len(br.ArticulationPoints), 10)
			for _, ap := range br.ArticulationPoints[:limit] {
				fmt.Printf("    %-10s (degree %d)  %s\n",
					render.Truncate(ap.Key, 10, ""), ap.Degree, render.Truncate(ap.Label, 40, "..."))
			}
		}
		if br.BridgeCount > 0 {
			fmt.Printf("  %d bridge edges (removal disconnects the map):\n", br.BridgeCount)
			limit := min(len(br.BridgeEdges), 10)
			for _, be := range br.BridgeEdges[:limit] {
				fmt.Printf("    %s -> %s\n", render.Truncate(be.SourceLabel, 30, "..."), render.Truncate(be.TargetLabel, 30, "..."))
			}
		}
		if len(br.FragileConnections) > 0 {
			fmt.Printf("  %d fragile inter-cluster connections (<=2 edges):\n", len(br.FragileConnections))
			limit := min(len(br.FragileConnections), 10)
			names := clusterNames(store)
			for _, fc := range br.FragileConnections[:limit] {
				s := ""
				if fc.CrossEdges != 1 {
					s = "s"
				}
				fmt.Printf("    %s <-> %s (%d edge%s)\n",
					render.Truncate(names[fc.ClusterA], 25, "..."), render.Truncate(names[fc.ClusterB], 25, "..."), fc.CrossEdges, s)
			}
		}
	}

	fmt.Println()
}

func nodeLabel(store *graph.Store, key string, width int) string {
	n, ok := store.Node(key)
	if !ok {
		return "?"
	}
	return render.Truncate(n.Label, width, "...")
}

func clusterNames(store *graph.Store) map[string]string {
	names := make(map[string]string)
	for _, c := range store.Clusters() {
		names[c.Key] = c.Key
		if c.Label != "" {
			names[c.Key] = c.Label
		}
	}
	return names
}
