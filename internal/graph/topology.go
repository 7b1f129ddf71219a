package graph

import "sort"

// HubNode is a visible node with high connectivity
type HubNode struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Degree    int    `json:"degree"`
	InDegree  int    `json:"in_degree"`
	OutDegree int    `json:"out_degree"`
}

// DegreeBucket is one bucket in the degree histogram
type DegreeBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ClusterCount breaks node counts down by cluster
type ClusterCount struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Color       string `json:"color"`
	Total       int    `json:"total"`
	Visible     int    `json:"visible"`
	Highlighted int    `json:"highlighted"`
}

// TopologyReport describes the currently visible part of the map
type TopologyReport struct {
	TotalNodes        int            `json:"total_nodes"`
	TotalEdges        int            `json:"total_edges"`
	VisibleNodes      int            `json:"visible_nodes"`
	VisibleEdges      int            `json:"visible_edges"`
	NumComponents     int            `json:"num_components"`
	LargestComponent  int            `json:"largest_component"`
	SmallestComponent int            `json:"smallest_component"`
	OrphanCount       int            `json:"orphan_count"`
	OrphanKeys        []string       `json:"orphan_keys"`
	DegreeHistogram   []DegreeBucket `json:"degree_histogram"`
	Hubs              []HubNode      `json:"hubs"`
	Clusters          []ClusterCount `json:"clusters"`
}

// visibleDegrees counts, for each visible node, its distinct visible
// neighbors and its visible in/out edges. Self-loops are not counted.
func visibleDegrees(s *Store) (degree, in, out []int) {
	n := s.Len()
	degree = make([]int, n)
	in = make([]int, n)
	out = make([]int, n)
	for _, node := range s.nodes {
		if !node.Visible {
			continue
		}
		for _, nb := range s.adj[node.Key] {
			if s.byKey[nb].Visible {
				degree[node.index]++
			}
		}
	}
	for _, e := range s.edges {
		if !e.Visible || e.SelfLoop() {
			continue
		}
		out[s.byKey[e.Source].index]++
		in[s.byKey[e.Target].index]++
	}
	return degree, in, out
}

// ComputeTopology analyzes the visible subgraph: components, orphans,
// degree distribution, hubs and per-cluster counts. It reads the render
// attributes, so the reducer must have run first.
func ComputeTopology(s *Store, hubThreshold, topN int) *TopologyReport {
	report := &TopologyReport{
		TotalNodes:      s.Len(),
		TotalEdges:      len(s.edges),
		DegreeHistogram: defaultHistogram(),
		Clusters:        clusterCounts(s),
	}

	uf := NewUnionFind(s.Len())
	for _, n := range s.nodes {
		if n.Visible {
			uf.Add(n.index)
			report.VisibleNodes++
		}
	}
	for _, e := range s.edges {
		if !e.Visible {
			continue
		}
		report.VisibleEdges++
		uf.Union(s.byKey[e.Source].index, s.byKey[e.Target].index)
	}

	if report.VisibleNodes == 0 {
		return report
	}

	components := uf.Components()
	report.NumComponents = len(components)
	report.SmallestComponent = report.VisibleNodes
	for _, c := range components {
		if len(c) > report.LargestComponent {
			report.LargestComponent = len(c)
		}
		if len(c) < report.SmallestComponent {
			report.SmallestComponent = len(c)
		}
	}

	degree, in, out := visibleDegrees(s)
	var buckets [7]int
	var orphans []string
	var hubs []HubNode
	for _, n := range s.nodes {
		if !n.Visible {
			continue
		}
		d := degree[n.index]
		buckets[degreeBucket(d)]++
		if d == 0 {
			orphans = append(orphans, n.Key)
		}
		if d > hubThreshold {
			hubs = append(hubs, HubNode{
				Key:       n.Key,
				Label:     n.Label,
				Degree:    d,
				InDegree:  in[n.index],
				OutDegree: out[n.index],
			})
		}
	}
	for i := range report.DegreeHistogram {
		report.DegreeHistogram[i].Count = buckets[i]
	}

	report.OrphanCount = len(orphans)
	sort.Strings(orphans)
	if len(orphans) > topN {
		orphans = orphans[:topN]
	}
	report.OrphanKeys = orphans

	sort.SliceStable(hubs, func(i, j int) bool { return hubs[i].Degree > hubs[j].Degree })
	if len(hubs) > topN {
		hubs = hubs[:topN]
	}
	report.Hubs = hubs
	return report
}

func clusterCounts(s *Store) []ClusterCount {
	counts := make([]ClusterCount, len(s.clusters))
	slot := make(map[string]int, len(s.clusters))
	for i, c := range s.clusters {
		counts[i] = ClusterCount{Key: c.Key, Label: c.Label, Color: c.Color}
		slot[c.Key] = i
	}
	for _, n := range s.nodes {
		c := &counts[slot[n.Cluster]]
		c.Total++
		if n.Visible {
			c.Visible++
		}
		if n.Highlighted {
			c.Highlighted++
		}
	}
	return counts
}

func defaultHistogram() []DegreeBucket {
	return []DegreeBucket{
		{Label: "0"}, {Label: "1"}, {Label: "2-3"},
		{Label: "4-7"}, {Label: "8-15"}, {Label: "16-31"}, {Label: "32+"},
	}
}

func degreeBucket(degree int) int {
	switch {
	case degree == 0:
		return 0
	case degree == 1:
		return 1
	case degree <= 3:
		return 2
	case degree <= 7:
		return 3
	case degree <= 15:
		return 4
	case degree <= 31:
		return 5
	default:
		return 6
	}
}
