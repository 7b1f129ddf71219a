package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scalemap/atlas/internal/dataset"
	"scalemap/atlas/internal/provenance"
)

var searchJSON bool

type searchHit struct {
	dataset.Provenance
	Badge    string   `json:"badge"`
	Nodes    int      `json:"nodes"`
	NodeKeys []string `json:"node_keys"`
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find provenance records by abbreviation, DOI, name or citation",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := OpenSession()
		if err != nil {
			return err
		}
		defer src.Close()

		s := src.session
		query := strings.Join(args, " ")
		hits := []searchHit{}
		for _, r := range s.Search(query) {
			keys := append([]string{}, s.Index().Lookup(r.Key)...)
			hits = append(hits, searchHit{Provenance: r, Badge: provenance.BadgeLabel(r), Nodes: len(keys), NodeKeys: keys})
		}
		if searchJSON {
			return printJSON(hits)
		}
		if len(hits) == 0 {
			fmt.Println(subtle.Sprintf("  no sources match %q", query))
			return nil
		}
		for i, h := range hits {
			mark := " "
			if i == 0 {
				mark = hot.Sprint("›")
			}
			fmt.Printf("%s %-8s %-14s %s\n", mark, h.Key, info.Sprint(h.Badge), subtle.Sprintf("%d nodes", h.Nodes))
			if h.Name != "" {
				fmt.Printf("    %s\n", h.Name)
			}
			if h.Citation != "" {
				fmt.Printf("    %s\n", subtle.Sprint(h.Citation))
			}
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(searchCmd)
}
