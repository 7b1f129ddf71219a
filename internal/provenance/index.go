// Package provenance maps provenance keys to the nodes they tag and matches
// free-text queries against provenance records.
package provenance

import "scalemap/atlas/internal/graph"

// Index maps a provenance key to the keys of the nodes carrying it. It is
// built once per load and never patched.
type Index struct {
	buckets map[string][]string
	nodes   int
}

// Build scans every node's provenance keys. Within a bucket, node keys keep
// load order and appear once even when a node lists a key twice.
func Build(nodes []*graph.Node) *Index {
	idx := &Index{buckets: make(map[string][]string), nodes: len(nodes)}
	for _, n := range nodes {
		seen := make(map[string]bool, len(n.Provenance))
		for _, k := range n.Provenance {
			if seen[k] {
				continue
			}
			seen[k] = true
			idx.buckets[k] = append(idx.buckets[k], n.Key)
		}
	}
	return idx
}

// Lookup returns the node keys tagged with key, nil when none are.
func (idx *Index) Lookup(key string) []string {
	return idx.buckets[key]
}

// Count returns how many nodes carry key
func (idx *Index) Count(key string) int { return len(idx.buckets[key]) }

// Keys returns the number of distinct provenance keys seen on nodes
func (idx *Index) Keys() int { return len(idx.buckets) }

