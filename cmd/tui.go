package cmd

import (
	"github.com/spf13/cobra"

	"scalemap/atlas/internal/ui"
)

var tuiFlags filterFlags

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Explore the map interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := OpenSession()
		if err != nil {
			return err
		}
		defer src.Close()

		tuiFlags.apply(src.session)
		return ui.Run(src.session, ui.Options{
			FocusItems:    cfg.Display.FocusItems,
			NeighborItems: cfg.Display.NeighborItems,
			LabelWidth:    cfg.Display.LabelWidth,
		})
	},
}

func init() {
	tuiFlags.register(tuiCmd)
	rootCmd.AddCommand(tuiCmd)
}
