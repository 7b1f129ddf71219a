package dataset

import (
	"strings"
	"testing"
)

func checkSample(t *testing.T, d *Dataset) {
	t.Helper()
	if len(d.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(d.Nodes))
	}
	if got := d.Nodes[0].Provenance; len(got) != 2 || got[0] != "1" || got[1] != "2" {
		t.Errorf("n1 provenance = %v, want [1 2]", got)
	}
	if got := d.Nodes[2].Provenance; len(got) != 1 || got[0] != "GAD-7" {
		t.Errorf("n3 provenance = %v, want [GAD-7]", got)
	}
	if d.Nodes[2].Cluster != "1" {
		t.Errorf("numeric cluster should normalise to \"1\", got %q", d.Nodes[2].Cluster)
	}
	if len(d.Edges) != 3 {
		t.Fatalf("expected 3 edges, got %d", len(d.Edges))
	}
	if d.Edges[0].Weight != nil {
		t.Errorf("pair edge should have no weight, got %v", *d.Edges[0].Weight)
	}
	if d.Edges[1].WeightOrZero() != 2.5 {
		t.Errorf("triple edge weight = %v, want 2.5", d.Edges[1].WeightOrZero())
	}
	if d.Edges[2].Source != "n3" || d.Edges[2].Target != "n1" || d.Edges[2].WeightOrZero() != 1 {
		t.Errorf("object edge decoded as %+v", d.Edges[2])
	}
	if len(d.Provenance) != 2 {
		t.Fatalf("expected 2 provenance records, got %d", len(d.Provenance))
	}
	if d.Provenance[0].Key != "1" || d.Provenance[0].Abbreviation != "APA-7" {
		t.Errorf("first provenance = %+v", d.Provenance[0])
	}
	if d.Provenance[1].Abbreviation != "" {
		t.Errorf("abbreviation \"none\" should normalise to empty, got %q", d.Provenance[1].Abbreviation)
	}
	if items := d.Items["Anxiety"]; len(items) != 1 || !items[0].MachineDrafted || items[0].Text != "I feel nervous" {
		t.Errorf("items for Anxiety = %+v", items)
	}
}

func TestDecode_JSONFixture(t *testing.T) {
	d, err := ReadFile("testdata/map.json")
	if err != nil {
		t.Fatal(err)
	}
	checkSample(t, d)
	if d.Nodes[0].X != 1.5 || d.Nodes[0].Y != -2 || d.Nodes[0].Size != 16 {
		t.Errorf("position/size decoded as %+v", d.Nodes[0])
	}
}

func TestDecode_YAMLFixture(t *testing.T) {
	d, err := ReadFile("testdata/map.yaml")
	if err != nil {
		t.Fatal(err)
	}
	checkSample(t, d)
}

func TestDecode_ScalesShape(t *testing.T) {
	src := `{"nodes": [], "edges": [], "clusters": [], "tags": [],
		"scales": [{"key": "PHQ-9", "name": "Patient Health", "citation": "Kroenke", "doi": "10.1046/x"}]}`
	d, err := Decode(strings.NewReader(src), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Provenance) != 1 {
		t.Fatalf("expected 1 provenance record, got %d", len(d.Provenance))
	}
	p := d.Provenance[0]
	if p.Key != "PHQ-9" || p.Abbreviation != "PHQ-9" || p.Name != "Patient Health" {
		t.Errorf("scale decoded as %+v", p)
	}
}

func TestDecode_BadEdgeArity(t *testing.T) {
	src := `{"edges": [["a"]]}`
	if _, err := Decode(strings.NewReader(src), FormatJSON); err == nil {
		t.Error("expected error for one-element edge")
	}
}

func TestDecode_BadKeyType(t *testing.T) {
	src := `{"nodes": [{"key": {"nested": true}}]}`
	if _, err := Decode(strings.NewReader(src), FormatJSON); err == nil {
		t.Error("expected error for object key")
	}
}

func TestDecode_DuplicateProvenanceOnNode(t *testing.T) {
	src := `{"nodes": [{"key": "a", "submissions": [1, 1, 2], "scales": ["2"]}]}`
	d, err := Decode(strings.NewReader(src), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	got := d.Nodes[0].Provenance
	if len(got) != 2 || got[0] != "1" || got[1] != "2" {
		t.Errorf("provenance = %v, want [1 2]", got)
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"map.json", FormatJSON},
		{"map.YAML", FormatYAML},
		{"map.yml", FormatYAML},
		{"map", FormatJSON},
	}
	for _, tt := range tests {
		if got := FormatFor(tt.path); got != tt.want {
			t.Errorf("FormatFor(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
