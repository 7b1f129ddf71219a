package filter

import "scalemap/atlas/internal/graph"

const (
	DefaultHighlightColor = "#ebc934"
	DefaultDimColor       = "#d9d9d9"
)

// Options control how highlight and dimming are drawn
type Options struct {
	HighlightColor string
	// DimUnselected greys out nodes outside an active provenance selection.
	DimUnselected bool
	DimColor      string
}

func (o Options) withDefaults() Options {
	if o.HighlightColor == "" {
		o.HighlightColor = DefaultHighlightColor
	}
	if o.DimColor == "" {
		o.DimColor = DefaultDimColor
	}
	return o
}

// Summary counts the outcome of one reducer pass
type Summary struct {
	TotalNodes       int `json:"total_nodes"`
	VisibleNodes     int `json:"visible_nodes"`
	HighlightedNodes int `json:"highlighted_nodes"`
	DimmedNodes      int `json:"dimmed_nodes"`
	TotalEdges       int `json:"total_edges"`
	VisibleEdges     int `json:"visible_edges"`
	HighlightedEdges int `json:"highlighted_edges"`
}

// Visible reports whether a node passes the cluster and tag filters.
func Visible(n *graph.Node, s State) bool {
	return s.Clusters.Has(n.Cluster) && s.Tags.Has(n.Tag)
}

// Highlighted reports whether any of a node's provenance keys is selected.
// It does not depend on visibility.
func Highlighted(n *graph.Node, s State) bool {
	return s.Provenance.HasAny(n.Provenance)
}

type nodeDecision struct {
	visible, highlighted, dimmed bool
	color                        string
}

type edgeDecision struct {
	visible, highlighted bool
	color                string
}

// Apply recomputes every node's and edge's render state from s and writes
// it to the store. Nothing is carried over from earlier passes, so applying
// the same State twice yields the same attributes. All decisions are made
// before the first write.
func Apply(store *graph.Store, s State, opts Options) Summary {
	opts = opts.withDefaults()
	nodes := store.Nodes()
	edges := store.Edges()
	selecting := s.Provenance.Len() > 0

	nd := make([]nodeDecision, len(nodes))
	for i, n := range nodes {
		d := nodeDecision{
			visible:     Visible(n, s),
			highlighted: Highlighted(n, s),
			color:       n.BaseColor,
		}
		d.dimmed = opts.DimUnselected && selecting && !d.highlighted
		switch {
		case d.highlighted:
			d.color = opts.HighlightColor
		case d.dimmed:
			d.color = opts.DimColor
		}
		nd[i] = d
	}

	ed := make([]edgeDecision, len(edges))
	for i, e := range edges {
		src, _ := store.Node(e.Source)
		dst, _ := store.Node(e.Target)
		a, b := nd[src.Index()], nd[dst.Index()]
		d := edgeDecision{
			visible:     a.visible && b.visible,
			highlighted: a.highlighted && b.highlighted,
			color:       e.BaseColor,
		}
		switch {
		case d.highlighted:
			d.color = opts.HighlightColor
		case opts.DimUnselected && selecting:
			d.color = opts.DimColor
		}
		ed[i] = d
	}

	sum := Summary{TotalNodes: len(nodes), TotalEdges: len(edges)}
	for i, n := range nodes {
		d := nd[i]
		n.Visible = d.visible
		n.Highlighted = d.highlighted
		n.Dimmed = d.dimmed
		n.Color = d.color
		if d.visible {
			sum.VisibleNodes++
		}
		if d.highlighted {
			sum.HighlightedNodes++
		}
		if d.dimmed {
			sum.DimmedNodes++
		}
	}
	for i, e := range edges {
		d := ed[i]
		e.Visible = d.visible
		e.Highlighted = d.highlighted
		e.Color = d.color
		if d.visible {
			sum.VisibleEdges++
		}
		if d.highlighted {
			sum.HighlightedEdges++
		}
	}
	return sum
}
