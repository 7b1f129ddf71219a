package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scalemap/atlas/internal/render"
)

var (
	exportFlags  filterFlags
	exportOut    string
	exportLabels bool
	exportWidth  int
	exportHeight int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write snapshots of the filtered map",
}

var exportSVGCmd = &cobra.Command{
	Use:   "svg",
	Short: "Write the filtered map as an SVG image",
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := OpenSession()
		if err != nil {
			return err
		}
		defer src.Close()

		s := src.session
		exportFlags.apply(s)

		opts := render.SVGOptions{
			Width:      cfg.Export.Width,
			Height:     cfg.Export.Height,
			Padding:    cfg.Export.Padding,
			Title:      s.Title(),
			Labels:     exportLabels,
			LabelWidth: cfg.Display.LabelWidth,
		}
		if cmd.Flags().Changed("width") {
			opts.Width = exportWidth
		}
		if cmd.Flags().Changed("height") {
			opts.Height = exportHeight
		}

		if exportOut == "" || exportOut == "-" {
			return render.WriteSVG(os.Stdout, s.Store(), opts)
		}
		if err := render.SaveSVG(exportOut, s.Store(), opts); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "%s %s (%s)\n", brand.Sprint("wrote"), exportOut, s.Title())
		return nil
	},
}

func init() {
	exportFlags.register(exportSVGCmd)
	exportSVGCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default stdout)")
	exportSVGCmd.Flags().BoolVar(&exportLabels, "labels", false, "Label highlighted nodes")
	exportSVGCmd.Flags().IntVar(&exportWidth, "width", 1200, "Image width in pixels")
	exportSVGCmd.Flags().IntVar(&exportHeight, "height", 900, "Image height in pixels")
	exportCmd.AddCommand(exportSVGCmd)
	rootCmd.AddCommand(exportCmd)
}
