package items

import (
	"scalemap/atlas/internal/dataset"
	"scalemap/atlas/internal/graph"
)

// Entry is one node's filtered items with the counts needed for "N of M".
type Entry struct {
	Key    string         `json:"key"`
	Label  string         `json:"label"`
	Weight float64        `json:"weight"`
	Items  []dataset.Item `json:"items"`
	Shown  int            `json:"shown"`
	Total  int            `json:"total"`
}

// Projection is the display list for a focused node.
type Projection struct {
	Focus     Entry   `json:"focus"`
	Neighbors []Entry `json:"neighbors"`
	Facets    Facets  `json:"facets"`
}

func entry(n *graph.Node, weight float64, f Facets) Entry {
	shown := f.Filter(n.Items)
	label := n.Label
	if label == "" {
		label = n.Key
	}
	return Entry{
		Key:    n.Key,
		Label:  label,
		Weight: weight,
		Items:  shown,
		Shown:  len(shown),
		Total:  len(n.Items),
	}
}

// Project ranks focus's neighbors and filters the focus's and each
// retained neighbor's items. The bool is false when focus is not in the
// store.
func Project(store *graph.Store, focus string, f Facets, top int) (Projection, bool) {
	n, ok := store.Node(focus)
	if !ok {
		return Projection{}, false
	}
	p := Projection{Focus: entry(n, 0, f), Facets: f, Neighbors: []Entry{}}
	for _, nb := range Rank(store, focus, top) {
		m, _ := store.Node(nb.Key)
		p.Neighbors = append(p.Neighbors, entry(m, nb.Weight, f))
	}
	return p, true
}

// Shown trims a projection for display: entries whose filtered items are
// empty are dropped from the neighbor list, and item lists are cut to the
// given limits. The counts still describe the full filtered lists.
func (p Projection) Shown(focusLimit, neighborLimit int) Projection {
	out := p
	out.Focus.Items = limit(p.Focus.Items, focusLimit)
	out.Neighbors = make([]Entry, 0, len(p.Neighbors))
	for _, e := range p.Neighbors {
		if e.Shown == 0 {
			continue
		}
		e.Items = limit(e.Items, neighborLimit)
		out.Neighbors = append(out.Neighbors, e)
	}
	return out
}

func limit(its []dataset.Item, n int) []dataset.Item {
	if n > 0 && len(its) > n {
		return its[:n]
	}
	return its
}
