// Package graph is the mutable map store: nodes and edges with their render
// attributes, ordered adjacency, and a weighted directed edge index.
package graph

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/graph/simple"

	"scalemap/atlas/internal/dataset"
)

// DefaultEdgeSize is the rendered width of an edge
const DefaultEdgeSize = 0.05

// Node is a map node together with its mutable render state. Dataset fields
// are fixed after load; Color, Visible, Highlighted and Dimmed are written
// by the visibility reducer.
type Node struct {
	Key        string
	Label      string
	Tag        string
	Cluster    string
	URL        string
	X, Y       float64
	Size       float64 // as supplied
	Radius     float64 // sqrt(Size) * 0.5
	Provenance []string
	Items      []dataset.Item

	// BaseColor is the cluster colour; Color is what gets drawn.
	BaseColor   string
	Color       string
	Visible     bool
	Highlighted bool
	Dimmed      bool

	index int
}

// Index is the node's position in load order
func (n *Node) Index() int { return n.index }

// Edge is a directed connection with its render state
type Edge struct {
	Source      string
	Target      string
	Weight      float64
	Size        float64
	BaseColor   string
	Color       string
	Visible     bool
	Highlighted bool
}

// SelfLoop reports whether the edge starts and ends on the same node
func (e *Edge) SelfLoop() bool { return e.Source == e.Target }

// Options tune how a store renders the dataset
type Options struct {
	EdgeSize float64
	Logger   *slog.Logger
}

type edgeKey struct{ source, target string }

// Store holds one loaded dataset. It is built once and never grows or
// shrinks; only render attributes change.
type Store struct {
	nodes    []*Node
	byKey    map[string]*Node
	edges    []*Edge
	byPair   map[edgeKey]*Edge
	adj      map[string][]string // undirected, insertion order, no self-loops
	weights  *simple.WeightedDirectedGraph
	clusters []dataset.Cluster
	tags     []dataset.Tag
}

// New validates the dataset and builds a store from it. A dataset that
// fails validation produces no store at all.
func New(d *dataset.Dataset, opts Options) (*Store, error) {
	if err := dataset.Validate(d); err != nil {
		return nil, fmt.Errorf("loading map: %w", err)
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "graph"))
	edgeSize := opts.EdgeSize
	if edgeSize <= 0 {
		edgeSize = DefaultEdgeSize
	}

	clusters := d.ClusterByKey()
	s := &Store{
		nodes:    make([]*Node, 0, len(d.Nodes)),
		byKey:    make(map[string]*Node, len(d.Nodes)),
		edges:    make([]*Edge, 0, len(d.Edges)),
		byPair:   make(map[edgeKey]*Edge, len(d.Edges)),
		adj:      make(map[string][]string, len(d.Nodes)),
		weights:  simple.NewWeightedDirectedGraph(0, 0),
		clusters: d.Clusters,
		tags:     d.Tags,
	}

	for i, dn := range d.Nodes {
		color := clusters[dn.Cluster].Color
		n := &Node{
			Key:        dn.Key,
			Label:      dn.Label,
			Tag:        dn.Tag,
			Cluster:    dn.Cluster,
			URL:        dn.URL,
			X:          dn.X,
			Y:          dn.Y,
			Size:       dn.Size,
			Radius:     math.Sqrt(math.Max(dn.Size, 0)) * 0.5,
			Provenance: dn.Provenance,
			Items:      d.Items[dn.Label],
			BaseColor:  color,
			Color:      color,
			Visible:    true,
			index:      i,
		}
		s.nodes = append(s.nodes, n)
		s.byKey[n.Key] = n
		s.adj[n.Key] = nil
		s.weights.AddNode(simple.Node(i))
	}

	seen := make(map[edgeKey]bool, len(d.Edges))
	for _, de := range d.Edges {
		src := s.byKey[de.Source]
		dst := s.byKey[de.Target]
		color := src.BaseColor
		e := &Edge{
			Source:    de.Source,
			Target:    de.Target,
			Weight:    de.WeightOrZero(),
			Size:      edgeSize,
			BaseColor: color,
			Color:     color,
			Visible:   true,
		}
		s.edges = append(s.edges, e)
		s.byPair[edgeKey{e.Source, e.Target}] = e

		if e.SelfLoop() {
			log.Debug("self-loop kept for rendering, excluded from neighbors", slog.String("node", e.Source))
			continue
		}
		s.weights.SetWeightedEdge(s.weights.NewWeightedEdge(simple.Node(src.index), simple.Node(dst.index), e.Weight))

		// adjacency lists each neighbor once even when both directions exist
		pair := edgeKey{e.Source, e.Target}
		if e.Source > e.Target {
			pair = edgeKey{e.Target, e.Source}
		}
		if seen[pair] {
			continue
		}
		seen[pair] = true
		s.adj[e.Source] = append(s.adj[e.Source], e.Target)
		s.adj[e.Target] = append(s.adj[e.Target], e.Source)
	}

	if orphans := dataset.OrphanItemLabels(d); len(orphans) > 0 {
		log.Warn("items reference labels with no node", slog.Int("labels", len(orphans)), slog.Any("sample", sample(orphans, 5)))
	}
	log.Debug("map loaded", slog.Int("nodes", len(s.nodes)), slog.Int("edges", len(s.edges)))
	return s, nil
}

func sample(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// Len returns the node count
func (s *Store) Len() int { return len(s.nodes) }

// Node looks up a node by key
func (s *Store) Node(key string) (*Node, bool) {
	n, ok := s.byKey[key]
	return n, ok
}

// Nodes returns every node in load order
func (s *Store) Nodes() []*Node { return s.nodes }

// Edges returns every edge in load order
func (s *Store) Edges() []*Edge { return s.edges }

// Edge returns the directed edge source->target, if recorded
func (s *Store) Edge(source, target string) (*Edge, bool) {
	e, ok := s.byPair[edgeKey{source, target}]
	return e, ok
}

// HasEdge reports whether a directed edge source->target exists
func (s *Store) HasEdge(source, target string) bool {
	if source == target {
		_, ok := s.byPair[edgeKey{source, target}]
		return ok
	}
	u, okU := s.byKey[source]
	v, okV := s.byKey[target]
	if !okU || !okV {
		return false
	}
	return s.weights.HasEdgeFromTo(int64(u.index), int64(v.index))
}

// Weight returns the weight of the directed edge source->target. The bool is
// false when no such edge exists.
func (s *Store) Weight(source, target string) (float64, bool) {
	u, okU := s.byKey[source]
	v, okV := s.byKey[target]
	if !okU || !okV || u == v {
		return 0, false
	}
	e := s.weights.WeightedEdge(int64(u.index), int64(v.index))
	if e == nil {
		return 0, false
	}
	return e.Weight(), true
}

// UndirectedWeight looks up the weight joining a and b regardless of edge
// direction: a->b first, then b->a. Unconnected pairs weigh 0.
func (s *Store) UndirectedWeight(a, b string) float64 {
	if w, ok := s.Weight(a, b); ok {
		return w
	}
	if w, ok := s.Weight(b, a); ok {
		return w
	}
	return 0
}

// Neighbors returns the nodes joined to key by an edge in either direction,
// each once, in the order the edges were loaded. Self-loops are excluded.
func (s *Store) Neighbors(key string) []string {
	return s.adj[key]
}

// Clusters returns the cluster reference data in dataset order
func (s *Store) Clusters() []dataset.Cluster { return s.clusters }

// Tags returns the tag reference data in dataset order
func (s *Store) Tags() []dataset.Tag { return s.tags }

// ClusterKeys returns cluster keys in dataset order
func (s *Store) ClusterKeys() []string {
	keys := make([]string, len(s.clusters))
	for i, c := range s.clusters {
		keys[i] = c.Key
	}
	return keys
}

// TagKeys returns tag keys in dataset order
func (s *Store) TagKeys() []string {
	keys := make([]string, len(s.tags))
	for i, t := range s.tags {
		keys[i] = t.Key
	}
	return keys
}
