// Package items ranks a focused node's neighbors by connection weight and
// filters node items by facet. Nothing here writes to the store.
package items

import (
	"errors"
	"sort"

	"scalemap/atlas/internal/graph"
)

// DefaultCap is how many neighbors survive ranking
const DefaultCap = 5

// ErrUnknownNode is returned by callers that must distinguish a missing
// focus node from one with no neighbors.
var ErrUnknownNode = errors.New("unknown node")

// Neighbor is one ranked neighbor of the focused node.
type Neighbor struct {
	Key    string  `json:"key"`
	Weight float64 `json:"weight"`
}

// Rank returns focus's neighbors ordered by undirected edge weight,
// heaviest first. Ties keep neighbor order. The full list is sorted before
// it is cut to top; top <= 0 means DefaultCap. An unknown or isolated focus
// yields an empty result.
func Rank(store *graph.Store, focus string, top int) []Neighbor {
	if top <= 0 {
		top = DefaultCap
	}
	keys := store.Neighbors(focus)
	ranked := make([]Neighbor, 0, len(keys))
	for _, k := range keys {
		if k == focus {
			continue
		}
		ranked = append(ranked, Neighbor{Key: k, Weight: store.UndirectedWeight(focus, k)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Weight > ranked[j].Weight
	})
	if len(ranked) > top {
		ranked = ranked[:top]
	}
	return ranked
}
