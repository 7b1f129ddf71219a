package graph

import "sort"

// ArticulationPoint is a visible node whose removal splits its component
type ArticulationPoint struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Degree int    `json:"degree"`
}

// BridgeEdge is a visible connection whose removal splits its component
type BridgeEdge struct {
	SourceKey   string `json:"source_key"`
	TargetKey   string `json:"target_key"`
	SourceLabel string `json:"source_label"`
	TargetLabel string `json:"target_label"`
}

// FragileConnection is a pair of clusters joined by very few visible edges
type FragileConnection struct {
	ClusterA   string `json:"cluster_a"`
	ClusterB   string `json:"cluster_b"`
	CrossEdges int    `json:"cross_edges"`
}

// BridgeReport contains bridge analysis results
type BridgeReport struct {
	ArticulationPoints []ArticulationPoint `json:"articulation_points"`
	BridgeEdges        []BridgeEdge        `json:"bridge_edges"`
	FragileConnections []FragileConnection `json:"fragile_connections"`
	APCount            int                 `json:"ap_count"`
	BridgeCount        int                 `json:"bridge_count"`
}

// ComputeBridges finds articulation points, bridge edges and fragile
// inter-cluster connections within the visible subgraph.
func ComputeBridges(s *Store) *BridgeReport {
	n := s.Len()
	if n == 0 {
		return &BridgeReport{}
	}

	// visible undirected adjacency by index; Store.adj is already deduplicated
	adjIdx := make([][]int, n)
	for _, node := range s.nodes {
		if !node.Visible {
			continue
		}
		for _, nb := range s.adj[node.Key] {
			other := s.byKey[nb]
			if other.Visible {
				adjIdx[node.index] = append(adjIdx[node.index], other.index)
			}
		}
	}

	disc := make([]int, n)
	low := make([]int, n)
	visited := make([]bool, n)
	isAP := make([]bool, n)
	var bridgePairs [][2]int
	counter := 1

	const noParent = -1

	// iterative Tarjan per component
	type frame struct {
		node, parent, ni int
	}

	for _, root := range s.nodes {
		start := root.index
		if visited[start] || !root.Visible {
			continue
		}

		visited[start] = true
		disc[start] = counter
		low[start] = counter
		counter++

		stack := []frame{{start, noParent, 0}}
		rootChildren := 0

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			node := top.node
			parent := top.parent

			if top.ni < len(adjIdx[node]) {
				child := adjIdx[node][top.ni]
				top.ni++

				if child == parent {
					continue
				}
				if visited[child] {
					if disc[child] < low[node] {
						low[node] = disc[child]
					}
					continue
				}
				visited[child] = true
				disc[child] = counter
				low[child] = counter
				counter++
				if node == start {
					rootChildren++
				}
				stack = append(stack, frame{child, node, 0})
				continue
			}

			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				continue
			}
			pn := stack[len(stack)-1].node
			if low[node] < low[pn] {
				low[pn] = low[node]
			}
			if low[node] > disc[pn] {
				bridgePairs = append(bridgePairs, [2]int{pn, node})
			}
			if pn != start && low[node] >= disc[pn] {
				isAP[pn] = true
			}
		}

		if rootChildren >= 2 {
			isAP[start] = true
		}
	}

	report := &BridgeReport{}
	for _, node := range s.nodes {
		if isAP[node.index] {
			report.ArticulationPoints = append(report.ArticulationPoints, ArticulationPoint{
				Key:    node.Key,
				Label:  node.Label,
				Degree: len(adjIdx[node.index]),
			})
		}
	}
	for _, pair := range bridgePairs {
		u, v := s.nodes[pair[0]], s.nodes[pair[1]]
		report.BridgeEdges = append(report.BridgeEdges, BridgeEdge{
			SourceKey:   u.Key,
			TargetKey:   v.Key,
			SourceLabel: u.Label,
			TargetLabel: v.Label,
		})
	}

	type clusterPair struct{ a, b string }
	pairCounts := make(map[clusterPair]int)
	for _, e := range s.edges {
		if !e.Visible {
			continue
		}
		ca := s.byKey[e.Source].Cluster
		cb := s.byKey[e.Target].Cluster
		if ca == cb {
			continue
		}
		key := clusterPair{ca, cb}
		if ca > cb {
			key = clusterPair{cb, ca}
		}
		pairCounts[key]++
	}
	for pair, count := range pairCounts {
		if count <= 2 {
			report.FragileConnections = append(report.FragileConnections, FragileConnection{
				ClusterA:   pair.a,
				ClusterB:   pair.b,
				CrossEdges: count,
			})
		}
	}
	sort.Slice(report.FragileConnections, func(i, j int) bool {
		fi, fj := report.FragileConnections[i], report.FragileConnections[j]
		if fi.CrossEdges != fj.CrossEdges {
			return fi.CrossEdges < fj.CrossEdges
		}
		if fi.ClusterA != fj.ClusterA {
			return fi.ClusterA < fj.ClusterA
		}
		return fi.ClusterB < fj.ClusterB
	})

	report.APCount = len(report.ArticulationPoints)
	report.BridgeCount = len(report.BridgeEdges)
	return report
}
