// Package dataset holds the static network content a map is built from:
// nodes, edges, clusters, tags, provenance records and per-label items.
package dataset

import "sort"

// Node is a map node as supplied by the dataset
type Node struct {
	Key        string   `json:"key" yaml:"key"`
	Label      string   `json:"label" yaml:"label"`
	Tag        string   `json:"tag" yaml:"tag"`
	Cluster    string   `json:"cluster" yaml:"cluster"`
	URL        string   `json:"URL,omitempty" yaml:"url,omitempty"`
	X          float64  `json:"x" yaml:"x"`
	Y          float64  `json:"y" yaml:"y"`
	Size       float64  `json:"size" yaml:"size"`
	Provenance []string `json:"provenance,omitempty" yaml:"provenance,omitempty"`
}

// Edge is a directed connection. Weight is nil when the dataset omits it.
type Edge struct {
	Source string   `json:"source" yaml:"source"`
	Target string   `json:"target" yaml:"target"`
	Weight *float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// WeightOrZero returns the recorded weight, or 0 when there is none.
func (e Edge) WeightOrZero() float64 {
	if e.Weight == nil {
		return 0
	}
	return *e.Weight
}

type Cluster struct {
	Key   string `json:"key" yaml:"key"`
	Color string `json:"color" yaml:"color"`
	Label string `json:"clusterLabel" yaml:"clusterLabel"`
}

type Tag struct {
	Key   string `json:"key" yaml:"key"`
	Image string `json:"image" yaml:"image"`
}

// Provenance is a source record (a submission or a scale reference) that
// tags zero or more nodes.
type Provenance struct {
	Key          string `json:"key" yaml:"key"`
	Abbreviation string `json:"scale_abbr,omitempty" yaml:"scale_abbr,omitempty"`
	Name         string `json:"scale_name,omitempty" yaml:"scale_name,omitempty"`
	Citation     string `json:"citation,omitempty" yaml:"citation,omitempty"`
	DOI          string `json:"doi,omitempty" yaml:"doi,omitempty"`
}

// Item is a short text datum attached to a node.
type Item struct {
	Text           string `json:"item" yaml:"item"`
	Level          string `json:"level" yaml:"level"`
	Tense          string `json:"tense" yaml:"tense"`
	Context        string `json:"context" yaml:"context"`
	MachineDrafted bool   `json:"machine_drafted" yaml:"machine_drafted"`
	HumanEdited    bool   `json:"human_edited" yaml:"human_edited"`
}

// Dataset is a complete, normalised network. Items are keyed by node label.
type Dataset struct {
	Nodes      []Node            `json:"nodes" yaml:"nodes"`
	Edges      []Edge            `json:"edges" yaml:"edges"`
	Clusters   []Cluster         `json:"clusters" yaml:"clusters"`
	Tags       []Tag             `json:"tags" yaml:"tags"`
	Provenance []Provenance      `json:"provenance" yaml:"provenance"`
	Items      map[string][]Item `json:"items,omitempty" yaml:"items,omitempty"`
}

// ClusterByKey indexes clusters by key
func (d *Dataset) ClusterByKey() map[string]Cluster {
	m := make(map[string]Cluster, len(d.Clusters))
	for _, c := range d.Clusters {
		m[c.Key] = c
	}
	return m
}

// ClusterKeys returns cluster keys in dataset order
func (d *Dataset) ClusterKeys() []string {
	keys := make([]string, len(d.Clusters))
	for i, c := range d.Clusters {
		keys[i] = c.Key
	}
	return keys
}

// TagKeys returns tag keys in dataset order
func (d *Dataset) TagKeys() []string {
	keys := make([]string, len(d.Tags))
	for i, t := range d.Tags {
		keys[i] = t.Key
	}
	return keys
}

// ItemLabels returns the labels that carry items, sorted
func (d *Dataset) ItemLabels() []string {
	labels := make([]string, 0, len(d.Items))
	for l := range d.Items {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}
