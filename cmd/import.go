package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"scalemap/atlas/internal/dataset"
	"scalemap/atlas/internal/db"
)

var importJSON bool

var importCmd = &cobra.Command{
	Use:   "import <dataset>",
	Short: "Validate a JSON or YAML dataset and store it in the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := dataset.ReadFile(args[0])
		if err != nil {
			return err
		}
		if orphans := dataset.OrphanItemLabels(ds); len(orphans) > 0 {
			log.Warn("items reference labels with no node", slog.Int("labels", len(orphans)))
		}

		path := dbPath
		if path == "" {
			path = os.Getenv("ATLAS_DB")
		}
		if path == "" {
			path = dbName
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		d, err := db.OpenDB(path)
		if err != nil {
			return err
		}
		defer d.Close()

		abs, _ := filepath.Abs(args[0])
		res, err := d.ImportDataset(ds, abs)
		if err != nil {
			return err
		}
		if importJSON {
			return printJSON(res)
		}
		fmt.Printf("%s %s -> %s\n", brand.Sprint("imported"), args[0], path)
		fmt.Printf("  nodes %d  edges %d  clusters %d  sources %d  items %d\n",
			res.Nodes, res.Edges, res.Clusters, res.Provenance, res.Items)
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&importJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(importCmd)
}
