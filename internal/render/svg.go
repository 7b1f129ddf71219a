// Package render draws a filtered map as a static SVG snapshot.
package render

import (
	"fmt"
	"io"
	"math"
	"os"

	svg "github.com/ajstarks/svgo"

	"scalemap/atlas/internal/dataset"
	"scalemap/atlas/internal/graph"
)

// SVGOptions size and annotate a snapshot
type SVGOptions struct {
	Width   int
	Height  int
	Padding int
	Title   string
	// Labels draws labels next to highlighted nodes.
	Labels     bool
	LabelWidth int
}

func (o SVGOptions) withDefaults() SVGOptions {
	if o.Width <= 0 {
		o.Width = 1200
	}
	if o.Height <= 0 {
		o.Height = 900
	}
	if o.Padding < 0 {
		o.Padding = 0
	}
	if o.LabelWidth <= 0 {
		o.LabelWidth = 40
	}
	return o
}

const headerHeight = 48

const (
	colorBackdrop = "#f9fafb"
	colorText     = "#111111"
	colorSubtle   = "#666666"
	colorStroke   = "#222222"
)

// frame maps dataset coordinates onto the drawing area. Every node counts
// toward the bounds, hidden or not, so toggling filters never moves the map.
type frame struct {
	minX, minY float64
	scale      float64
	offX, offY float64
}

func newFrame(nodes []*graph.Node, o SVGOptions) frame {
	f := frame{scale: 1, offX: float64(o.Padding), offY: float64(o.Padding + headerHeight)}
	if len(nodes) == 0 {
		return f
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range nodes {
		minX = math.Min(minX, n.X-n.Radius)
		minY = math.Min(minY, n.Y-n.Radius)
		maxX = math.Max(maxX, n.X+n.Radius)
		maxY = math.Max(maxY, n.Y+n.Radius)
	}
	availW := float64(o.Width - 2*o.Padding)
	availH := float64(o.Height - 2*o.Padding - headerHeight)
	spanX, spanY := maxX-minX, maxY-minY
	scale := 1.0
	switch {
	case spanX > 0 && spanY > 0:
		scale = math.Min(availW/spanX, availH/spanY)
	case spanX > 0:
		scale = availW / spanX
	case spanY > 0:
		scale = availH / spanY
	}
	if scale <= 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		scale = 1
	}
	f.minX, f.minY, f.scale = minX, minY, scale
	// centre the drawing in the spare space
	f.offX += (availW - spanX*scale) / 2
	f.offY += (availH - spanY*scale) / 2
	return f
}

func (f frame) point(x, y float64) (int, int) {
	return int(math.Round(f.offX + (x-f.minX)*f.scale)), int(math.Round(f.offY + (y-f.minY)*f.scale))
}

// WriteSVG draws the store's current render state: visible edges under
// visible nodes, in each element's effective colour, plus a header and a
// cluster legend.
func WriteSVG(w io.Writer, store *graph.Store, o SVGOptions) error {
	o = o.withDefaults()
	nodes := store.Nodes()
	f := newFrame(nodes, o)

	canvas := svg.New(w)
	canvas.Start(o.Width, o.Height)
	canvas.Rect(0, 0, o.Width, o.Height, "fill:"+colorBackdrop)
	if o.Title != "" {
		canvas.Title(o.Title)
	}

	canvas.Gstyle("stroke-linecap:round")
	for _, e := range store.Edges() {
		if !e.Visible || e.SelfLoop() {
			continue
		}
		src, _ := store.Node(e.Source)
		dst, _ := store.Node(e.Target)
		x1, y1 := f.point(src.X, src.Y)
		x2, y2 := f.point(dst.X, dst.Y)
		width := math.Max(e.Size*f.scale, 0.5)
		canvas.Line(x1, y1, x2, y2, fmt.Sprintf("stroke:%s;stroke-width:%.2f;stroke-opacity:0.6", e.Color, width))
	}
	canvas.Gend()

	for _, n := range nodes {
		if !n.Visible {
			continue
		}
		x, y := f.point(n.X, n.Y)
		r := int(math.Max(math.Round(n.Radius*f.scale), 2))
		style := "fill:" + n.Color
		if n.Highlighted {
			style += ";stroke:" + colorStroke + ";stroke-width:1"
		}
		canvas.Circle(x, y, r, style)
	}

	if o.Labels {
		for _, n := range nodes {
			if !n.Visible || !n.Highlighted {
				continue
			}
			x, y := f.point(n.X, n.Y)
			r := int(math.Max(math.Round(n.Radius*f.scale), 2))
			canvas.Text(x+r+3, y+4, Truncate(label(n), o.LabelWidth, "..."),
				fmt.Sprintf("fill:%s;font-size:11px;font-family:sans-serif", colorText))
		}
	}

	drawHeader(canvas, o)
	drawLegend(canvas, store.Clusters(), o)
	canvas.End()
	return nil
}

func label(n *graph.Node) string {
	if n.Label != "" {
		return n.Label
	}
	return n.Key
}

func drawHeader(canvas *svg.SVG, o SVGOptions) {
	if o.Title == "" {
		return
	}
	canvas.Text(o.Padding, o.Padding+20, o.Title,
		fmt.Sprintf("fill:%s;font-size:16px;font-family:sans-serif;font-weight:bold", colorText))
}

func drawLegend(canvas *svg.SVG, clusters []dataset.Cluster, o SVGOptions) {
	if len(clusters) == 0 {
		return
	}
	const rowH = 16
	x := o.Width - o.Padding - 180
	y := o.Padding + headerHeight
	for i, c := range clusters {
		cy := y + i*rowH
		canvas.Rect(x, cy-10, 12, 12, fmt.Sprintf("fill:%s;stroke:%s;stroke-width:0.5", c.Color, colorStroke))
		name := c.Label
		if name == "" {
			name = c.Key
		}
		canvas.Text(x+18, cy, Truncate(name, 24, "..."),
			fmt.Sprintf("fill:%s;font-size:11px;font-family:sans-serif", colorSubtle))
	}
}

// SaveSVG writes a snapshot to path
func SaveSVG(path string, store *graph.Store, o SVGOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteSVG(f, store, o); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
