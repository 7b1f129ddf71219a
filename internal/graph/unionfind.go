package graph

// UnionFind tracks connected components over node indices with path
// compression and union by rank. Indices not added are ignored.
type UnionFind struct {
	parent []int
	rank   []int
	size   []int
	member []bool
}

// NewUnionFind creates a structure able to hold indices [0, n)
func NewUnionFind(n int) *UnionFind {
	uf := &UnionFind{
		parent: make([]int, n),
		rank:   make([]int, n),
		size:   make([]int, n),
		member: make([]bool, n),
	}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

// Add makes i a singleton component
func (uf *UnionFind) Add(i int) {
	if i < 0 || i >= len(uf.parent) || uf.member[i] {
		return
	}
	uf.member[i] = true
	uf.size[i] = 1
}

// Find returns the root of the component containing i
func (uf *UnionFind) Find(i int) int {
	root := i
	for uf.parent[root] != root {
		root = uf.parent[root]
	}
	for uf.parent[i] != root {
		next := uf.parent[i]
		uf.parent[i] = root
		i = next
	}
	return root
}

// Union merges the components containing a and b. Returns true if they were
// separate. Both must have been added.
func (uf *UnionFind) Union(a, b int) bool {
	if !uf.member[a] || !uf.member[b] {
		return false
	}
	rootA := uf.Find(a)
	rootB := uf.Find(b)
	if rootA == rootB {
		return false
	}
	if uf.rank[rootA] < uf.rank[rootB] {
		rootA, rootB = rootB, rootA
	}
	uf.parent[rootB] = rootA
	uf.size[rootA] += uf.size[rootB]
	if uf.rank[rootA] == uf.rank[rootB] {
		uf.rank[rootA]++
	}
	return true
}

// Components returns the member indices of each component. Components are
// ordered by their lowest index and members ascend within a component.
func (uf *UnionFind) Components() [][]int {
	slot := make(map[int]int)
	var result [][]int
	for i, ok := range uf.member {
		if !ok {
			continue
		}
		root := uf.Find(i)
		k, seen := slot[root]
		if !seen {
			k = len(result)
			slot[root] = k
			result = append(result, nil)
		}
		result[k] = append(result[k], i)
	}
	return result
}
