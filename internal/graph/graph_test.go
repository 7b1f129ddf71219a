package graph

import (
	"errors"
	"math"
	"testing"

	"scalemap/atlas/internal/dataset"
)

func weight(w float64) *float64 { return &w }

// quickStore builds a store with every node in cluster "c" and tag "t".
func quickStore(t *testing.T, nodeKeys []string, edges [][2]string) *Store {
	t.Helper()
	d := &dataset.Dataset{
		Clusters: []dataset.Cluster{{Key: "c", Color: "#123456", Label: "C"}},
		Tags:     []dataset.Tag{{Key: "t"}},
	}
	for _, k := range nodeKeys {
		d.Nodes = append(d.Nodes, dataset.Node{Key: k, Label: "Node " + k, Tag: "t", Cluster: "c", Size: 4})
	}
	for _, e := range edges {
		d.Edges = append(d.Edges, dataset.Edge{Source: e[0], Target: e[1]})
	}
	s, err := New(d, Options{})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// hide marks nodes invisible and recomputes edge visibility by hand, the
// way the reducer would.
func hide(s *Store, keys ...string) {
	for _, k := range keys {
		s.byKey[k].Visible = false
	}
	for _, e := range s.edges {
		e.Visible = s.byKey[e.Source].Visible && s.byKey[e.Target].Visible
	}
}

// --- Store Tests ---

func TestNew_RejectsInvalidDataset(t *testing.T) {
	d := &dataset.Dataset{
		Nodes:    []dataset.Node{{Key: "a", Tag: "t", Cluster: "missing"}},
		Clusters: []dataset.Cluster{{Key: "c"}},
		Tags:     []dataset.Tag{{Key: "t"}},
	}
	s, err := New(d, Options{})
	if !errors.Is(err, dataset.ErrUnknownCluster) {
		t.Fatalf("expected ErrUnknownCluster, got %v", err)
	}
	if s != nil {
		t.Error("no store should be returned for a malformed dataset")
	}
}

func TestNew_RenderDefaults(t *testing.T) {
	d := &dataset.Dataset{
		Nodes: []dataset.Node{
			{Key: "a", Label: "A", Tag: "t", Cluster: "red", Size: 16},
			{Key: "b", Label: "B", Tag: "t", Cluster: "blue", Size: 4},
		},
		Edges:    []dataset.Edge{{Source: "a", Target: "b"}},
		Clusters: []dataset.Cluster{{Key: "red", Color: "#ff0000"}, {Key: "blue", Color: "#0000ff"}},
		Tags:     []dataset.Tag{{Key: "t"}},
		Items:    map[string][]dataset.Item{"A": {{Text: "first"}}},
	}
	s, err := New(d, Options{})
	if err != nil {
		t.Fatal(err)
	}
	a, _ := s.Node("a")
	if a.Radius != 2 {
		t.Errorf("radius should be sqrt(16)*0.5 = 2, got %v", a.Radius)
	}
	if a.BaseColor != "#ff0000" || a.Color != "#ff0000" {
		t.Errorf("node colours = %q/%q, want cluster colour", a.BaseColor, a.Color)
	}
	if !a.Visible {
		t.Error("nodes start visible")
	}
	if len(a.Items) != 1 || a.Items[0].Text != "first" {
		t.Errorf("items should attach by label, got %+v", a.Items)
	}
	e, ok := s.Edge("a", "b")
	if !ok {
		t.Fatal("edge a->b missing")
	}
	if e.Color != "#ff0000" {
		t.Errorf("edge colour should follow the source cluster, got %q", e.Color)
	}
	if e.Size != DefaultEdgeSize {
		t.Errorf("edge size = %v, want %v", e.Size, DefaultEdgeSize)
	}
}

func TestNeighbors_OrderDedupeAndSelfLoops(t *testing.T) {
	s := quickStore(t,
		[]string{"A", "B", "C", "D"},
		[][2]string{{"A", "C"}, {"B", "A"}, {"A", "A"}, {"C", "A"}, {"A", "D"}},
	)
	got := s.Neighbors("A")
	want := []string{"C", "B", "D"}
	if len(got) != len(want) {
		t.Fatalf("neighbors = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("neighbors = %v, want %v", got, want)
			break
		}
	}
	if !s.HasEdge("A", "A") {
		t.Error("self-loop should still be recorded as an edge")
	}
	if len(s.Edges()) != 5 {
		t.Errorf("all edges kept for rendering, got %d", len(s.Edges()))
	}
}

func TestNeighbors_UnknownAndIsolated(t *testing.T) {
	s := quickStore(t, []string{"A"}, nil)
	if got := s.Neighbors("A"); len(got) != 0 {
		t.Errorf("isolated node should have no neighbors, got %v", got)
	}
	if got := s.Neighbors("nope"); len(got) != 0 {
		t.Errorf("unknown node should have no neighbors, got %v", got)
	}
}

func TestUndirectedWeight(t *testing.T) {
	d := &dataset.Dataset{
		Nodes: []dataset.Node{
			{Key: "a", Tag: "t", Cluster: "c"},
			{Key: "b", Tag: "t", Cluster: "c"},
			{Key: "c", Tag: "t", Cluster: "c"},
			{Key: "d", Tag: "t", Cluster: "c"},
		},
		Edges: []dataset.Edge{
			{Source: "a", Target: "b", Weight: weight(3)},
			{Source: "b", Target: "a", Weight: weight(7)},
			{Source: "c", Target: "a", Weight: weight(2)},
			{Source: "a", Target: "d"},
		},
		Clusters: []dataset.Cluster{{Key: "c"}},
		Tags:     []dataset.Tag{{Key: "t"}},
	}
	s, err := New(d, Options{})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		a, b string
		want float64
	}{
		{"a", "b", 3}, // forward direction wins
		{"b", "a", 7},
		{"a", "c", 2}, // falls back to reverse
		{"a", "d", 0}, // edge without weight
		{"b", "c", 0}, // no edge at all
		{"a", "zz", 0},
	}
	for _, tt := range tests {
		if got := s.UndirectedWeight(tt.a, tt.b); got != tt.want {
			t.Errorf("UndirectedWeight(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
	if _, ok := s.Weight("b", "c"); ok {
		t.Error("Weight should report a missing edge")
	}
	if !s.HasEdge("c", "a") || s.HasEdge("a", "c") {
		t.Error("HasEdge must respect direction")
	}
}

// --- Topology Tests ---

func TestTopology_EmptyGraph(t *testing.T) {
	s := quickStore(t, nil, nil)
	r := ComputeTopology(s, 4, 10)
	if r.TotalNodes != 0 || r.VisibleEdges != 0 || r.NumComponents != 0 {
		t.Errorf("empty graph should have all zeros, got nodes=%d edges=%d components=%d",
			r.TotalNodes, r.VisibleEdges, r.NumComponents)
	}
}

func TestTopology_SingleComponent(t *testing.T) {
	s := quickStore(t,
		[]string{"A", "B", "C", "D", "E"},
		[][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}, {"D", "E"}},
	)
	r := ComputeTopology(s, 4, 10)
	if r.NumComponents != 1 {
		t.Errorf("expected 1 component, got %d", r.NumComponents)
	}
	if r.LargestComponent != 5 {
		t.Errorf("expected largest=5, got %d", r.LargestComponent)
	}
	if r.OrphanCount != 0 {
		t.Errorf("expected 0 orphans, got %d", r.OrphanCount)
	}
}

func TestTopology_HiddenNodeSplitsComponent(t *testing.T) {
	s := quickStore(t,
		[]string{"A", "B", "C", "D", "E"},
		[][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}, {"D", "E"}},
	)
	hide(s, "C")
	r := ComputeTopology(s, 4, 10)
	if r.VisibleNodes != 4 || r.VisibleEdges != 2 {
		t.Errorf("expected 4 visible nodes and 2 visible edges, got %d/%d", r.VisibleNodes, r.VisibleEdges)
	}
	if r.NumComponents != 2 {
		t.Errorf("expected 2 components, got %d", r.NumComponents)
	}
	if r.SmallestComponent != 2 {
		t.Errorf("expected smallest=2, got %d", r.SmallestComponent)
	}
	if r.Clusters[0].Total != 5 || r.Clusters[0].Visible != 4 {
		t.Errorf("cluster counts = %+v", r.Clusters[0])
	}
}

func TestOrphan_Detection(t *testing.T) {
	s := quickStore(t,
		[]string{"A", "B", "C"},
		[][2]string{{"A", "B"}, {"C", "C"}},
	)
	r := ComputeTopology(s, 4, 10)
	if r.OrphanCount != 1 {
		t.Errorf("expected 1 orphan (self-loops do not connect), got %d", r.OrphanCount)
	}
	if len(r.OrphanKeys) != 1 || r.OrphanKeys[0] != "C" {
		t.Errorf("C should be an orphan, got %v", r.OrphanKeys)
	}
}

func TestHub_Detection(t *testing.T) {
	s := quickStore(t,
		[]string{"center", "s1", "s2", "s3", "s4", "s5"},
		[][2]string{{"center", "s1"}, {"center", "s2"}, {"center", "s3"}, {"s4", "center"}, {"center", "s5"}},
	)
	r := ComputeTopology(s, 4, 10)
	if len(r.Hubs) != 1 {
		t.Fatalf("expected 1 hub, got %d", len(r.Hubs))
	}
	h := r.Hubs[0]
	if h.Key != "center" || h.Degree != 5 || h.OutDegree != 4 || h.InDegree != 1 {
		t.Errorf("hub = %+v", h)
	}
}

func TestUnionFind_IgnoresUnadded(t *testing.T) {
	uf := NewUnionFind(4)
	uf.Add(0)
	uf.Add(1)
	uf.Add(3)
	if uf.Union(1, 2) {
		t.Error("union with an unadded index should be refused")
	}
	uf.Union(0, 3)
	comps := uf.Components()
	if len(comps) != 2 {
		t.Fatalf("expected 2 components, got %v", comps)
	}
	if len(comps[0]) != 2 || comps[0][0] != 0 || comps[0][1] != 3 {
		t.Errorf("first component = %v, want [0 3]", comps[0])
	}
}

// --- Tarjan Tests ---

func TestTarjan_Bridge(t *testing.T) {
	s := quickStore(t,
		[]string{"A", "B", "C"},
		[][2]string{{"A", "B"}, {"B", "C"}},
	)
	r := ComputeBridges(s)
	if r.BridgeCount != 2 {
		t.Errorf("expected 2 bridges, got %d", r.BridgeCount)
	}
	if r.APCount != 1 || r.ArticulationPoints[0].Key != "B" {
		t.Errorf("B should be the only AP, got %+v", r.ArticulationPoints)
	}
}

func TestTarjan_CycleNoBridges(t *testing.T) {
	s := quickStore(t,
		[]string{"A", "B", "C"},
		[][2]string{{"A", "B"}, {"B", "C"}, {"C", "A"}, {"A", "C"}},
	)
	r := ComputeBridges(s)
	if r.BridgeCount != 0 {
		t.Errorf("triangle should have 0 bridges, got %d", r.BridgeCount)
	}
	if r.APCount != 0 {
		t.Errorf("triangle should have 0 APs, got %d", r.APCount)
	}
}

func TestTarjan_TwoCyclesJoined(t *testing.T) {
	s := quickStore(t,
		[]string{"A", "B", "C", "D", "E", "F"},
		[][2]string{
			{"A", "B"}, {"B", "C"}, {"C", "A"},
			{"D", "E"}, {"E", "F"}, {"F", "D"},
			{"C", "D"},
		},
	)
	r := ComputeBridges(s)
	if r.BridgeCount != 1 {
		t.Errorf("expected 1 bridge (C-D), got %d", r.BridgeCount)
	}
	apKeys := make(map[string]bool)
	for _, ap := range r.ArticulationPoints {
		apKeys[ap.Key] = true
	}
	if !apKeys["C"] || !apKeys["D"] {
		t.Errorf("C and D should be APs, got %v", apKeys)
	}
}

func TestTarjan_IgnoresHiddenNodes(t *testing.T) {
	s := quickStore(t,
		[]string{"A", "B", "C"},
		[][2]string{{"A", "B"}, {"B", "C"}},
	)
	hide(s, "C")
	r := ComputeBridges(s)
	if r.BridgeCount != 1 {
		t.Errorf("only A-B is visible, expected 1 bridge, got %d", r.BridgeCount)
	}
	if r.APCount != 0 {
		t.Errorf("no AP in a two-node path, got %d", r.APCount)
	}
}

func TestFragile_Connections(t *testing.T) {
	d := &dataset.Dataset{
		Nodes: []dataset.Node{
			{Key: "a1", Tag: "t", Cluster: "a"},
			{Key: "a2", Tag: "t", Cluster: "a"},
			{Key: "b1", Tag: "t", Cluster: "b"},
		},
		Edges: []dataset.Edge{
			{Source: "a1", Target: "a2"},
			{Source: "a2", Target: "b1"},
		},
		Clusters: []dataset.Cluster{{Key: "a"}, {Key: "b"}},
		Tags:     []dataset.Tag{{Key: "t"}},
	}
	s, err := New(d, Options{})
	if err != nil {
		t.Fatal(err)
	}
	r := ComputeBridges(s)
	if len(r.FragileConnections) != 1 {
		t.Fatalf("expected 1 fragile connection, got %+v", r.FragileConnections)
	}
	fc := r.FragileConnections[0]
	if fc.ClusterA != "a" || fc.ClusterB != "b" || fc.CrossEdges != 1 {
		t.Errorf("fragile connection = %+v", fc)
	}
}

// --- Analysis Tests ---

func TestCohesion_Range(t *testing.T) {
	s := quickStore(t, []string{"A", "B", "C"}, nil)
	r := Analyze(s, DefaultAnalyzerConfig())
	if r.Cohesion < 0 || r.Cohesion > 1 {
		t.Errorf("cohesion out of range: %f", r.Cohesion)
	}

	hide(s, "A", "B", "C")
	r = Analyze(s, nil)
	if r.Cohesion != 0 {
		t.Errorf("nothing visible should score 0, got %f", r.Cohesion)
	}
}

func TestCohesion_Perfect(t *testing.T) {
	s := quickStore(t,
		[]string{"A", "B", "C"},
		[][2]string{{"A", "B"}, {"B", "C"}, {"C", "A"}},
	)
	r := Analyze(s, &AnalyzerConfig{HubThreshold: 10, TopN: 50})
	if math.Abs(r.Cohesion-1) > 1e-9 {
		t.Errorf("connected cycle should score 1.0, got %f", r.Cohesion)
	}
}
