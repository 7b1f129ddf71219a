package dataset

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format selects the dataset file codec
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks a codec from a file extension. Anything that is not YAML
// is read as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// key accepts either a string or a number. Provenance keys are numeric in
// some datasets and strings in others.
type key string

func (k *key) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*k = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*k = key(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(b), 64); err != nil {
		return fmt.Errorf("key must be a string or number, got %s", b)
	}
	*k = key(b)
	return nil
}

func (k *key) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: key must be a scalar", value.Line)
	}
	if value.Tag == "!!null" {
		*k = ""
		return nil
	}
	*k = key(value.Value)
	return nil
}

func keyStrings(ks []key) []string {
	if len(ks) == 0 {
		return nil
	}
	out := make([]string, len(ks))
	for i, k := range ks {
		out[i] = string(k)
	}
	return out
}

// rawEdge is either [source, target], [source, target, weight] or an object.
type rawEdge struct {
	Source key
	Target key
	Weight *float64
}

type edgeObject struct {
	Source key      `json:"source" yaml:"source"`
	Target key      `json:"target" yaml:"target"`
	Weight *float64 `json:"weight" yaml:"weight"`
}

func (e *rawEdge) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var parts []json.RawMessage
		if err := json.Unmarshal(b, &parts); err != nil {
			return err
		}
		if len(parts) < 2 || len(parts) > 3 {
			return fmt.Errorf("edge array needs 2 or 3 elements, got %d", len(parts))
		}
		if err := json.Unmarshal(parts[0], &e.Source); err != nil {
			return fmt.Errorf("edge source: %w", err)
		}
		if err := json.Unmarshal(parts[1], &e.Target); err != nil {
			return fmt.Errorf("edge target: %w", err)
		}
		if len(parts) == 3 {
			if err := json.Unmarshal(parts[2], &e.Weight); err != nil {
				return fmt.Errorf("edge weight: %w", err)
			}
		}
		return nil
	}
	var obj edgeObject
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*e = rawEdge(obj)
	return nil
}

func (e *rawEdge) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		if len(value.Content) < 2 || len(value.Content) > 3 {
			return fmt.Errorf("line %d: edge sequence needs 2 or 3 elements", value.Line)
		}
		if err := value.Content[0].Decode(&e.Source); err != nil {
			return err
		}
		if err := value.Content[1].Decode(&e.Target); err != nil {
			return err
		}
		if len(value.Content) == 3 {
			var w float64
			if err := value.Content[2].Decode(&w); err != nil {
				return fmt.Errorf("line %d: edge weight: %w", value.Line, err)
			}
			e.Weight = &w
		}
		return nil
	case yaml.MappingNode:
		var obj edgeObject
		if err := value.Decode(&obj); err != nil {
			return err
		}
		*e = rawEdge(obj)
		return nil
	default:
		return fmt.Errorf("line %d: edge must be a sequence or mapping", value.Line)
	}
}

// rawNode accepts the provenance list under any of the names datasets use.
type rawNode struct {
	Key         key     `json:"key" yaml:"key"`
	Label       string  `json:"label" yaml:"label"`
	Tag         string  `json:"tag" yaml:"tag"`
	Cluster     key     `json:"cluster" yaml:"cluster"`
	URL         string  `json:"URL" yaml:"url"`
	X           float64 `json:"x" yaml:"x"`
	Y           float64 `json:"y" yaml:"y"`
	Size        float64 `json:"size" yaml:"size"`
	Provenance  []key   `json:"provenance" yaml:"provenance"`
	Submissions []key   `json:"submissions" yaml:"submissions"`
	Scales      []key   `json:"scales" yaml:"scales"`
}

type rawProvenance struct {
	Key          key    `json:"key" yaml:"key"`
	Abbreviation string `json:"scale_abbr" yaml:"scale_abbr"`
	Name         string `json:"scale_name" yaml:"scale_name"`
	Citation     string `json:"citation" yaml:"citation"`
	DOI          string `json:"doi" yaml:"doi"`
}

// rawScale is the older scale-reference shape: the key is the abbreviation.
type rawScale struct {
	Key      key    `json:"key" yaml:"key"`
	Name     string `json:"name" yaml:"name"`
	Citation string `json:"citation" yaml:"citation"`
	DOI      string `json:"doi" yaml:"doi"`
}

type rawCluster struct {
	Key   key    `json:"key" yaml:"key"`
	Color string `json:"color" yaml:"color"`
	Label string `json:"clusterLabel" yaml:"clusterLabel"`
}

type rawDataset struct {
	Nodes       []rawNode         `json:"nodes" yaml:"nodes"`
	Edges       []rawEdge         `json:"edges" yaml:"edges"`
	Clusters    []rawCluster      `json:"clusters" yaml:"clusters"`
	Tags        []Tag             `json:"tags" yaml:"tags"`
	Provenance  []rawProvenance   `json:"provenance" yaml:"provenance"`
	Submissions []rawProvenance   `json:"submissions" yaml:"submissions"`
	Scales      []rawScale        `json:"scales" yaml:"scales"`
	Items       map[string][]Item `json:"items" yaml:"items"`
}

// Decode reads a dataset in the given format and normalises it. It does not
// validate; call Validate before building a map from the result.
func Decode(r io.Reader, format Format) (*Dataset, error) {
	var raw rawDataset
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
			return nil, fmt.Errorf("decoding yaml dataset: %w", err)
		}
	default:
		if err := json.NewDecoder(r).Decode(&raw); err != nil {
			return nil, fmt.Errorf("decoding json dataset: %w", err)
		}
	}
	return raw.normalise(), nil
}

// ReadFile decodes and validates a dataset file.
func ReadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	d, err := Decode(f, FormatFor(path))
	if err != nil {
		return nil, err
	}
	if err := Validate(d); err != nil {
		return nil, err
	}
	return d, nil
}

func (raw *rawDataset) normalise() *Dataset {
	d := &Dataset{
		Nodes:    make([]Node, 0, len(raw.Nodes)),
		Edges:    make([]Edge, 0, len(raw.Edges)),
		Clusters: make([]Cluster, 0, len(raw.Clusters)),
		Tags:     raw.Tags,
		Items:    raw.Items,
	}
	for _, n := range raw.Nodes {
		prov := make([]key, 0, len(n.Provenance)+len(n.Submissions)+len(n.Scales))
		prov = append(prov, n.Provenance...)
		prov = append(prov, n.Submissions...)
		prov = append(prov, n.Scales...)
		d.Nodes = append(d.Nodes, Node{
			Key:        string(n.Key),
			Label:      n.Label,
			Tag:        n.Tag,
			Cluster:    string(n.Cluster),
			URL:        n.URL,
			X:          n.X,
			Y:          n.Y,
			Size:       n.Size,
			Provenance: dedupe(keyStrings(prov)),
		})
	}
	for _, e := range raw.Edges {
		d.Edges = append(d.Edges, Edge{Source: string(e.Source), Target: string(e.Target), Weight: e.Weight})
	}
	for _, c := range raw.Clusters {
		d.Clusters = append(d.Clusters, Cluster{Key: string(c.Key), Color: c.Color, Label: c.Label})
	}
	for _, list := range [][]rawProvenance{raw.Provenance, raw.Submissions} {
		for _, p := range list {
			d.Provenance = append(d.Provenance, Provenance{
				Key:          string(p.Key),
				Abbreviation: normaliseAbbreviation(p.Abbreviation),
				Name:         p.Name,
				Citation:     p.Citation,
				DOI:          p.DOI,
			})
		}
	}
	for _, s := range raw.Scales {
		d.Provenance = append(d.Provenance, Provenance{
			Key:          string(s.Key),
			Abbreviation: normaliseAbbreviation(string(s.Key)),
			Name:         s.Name,
			Citation:     s.Citation,
			DOI:          s.DOI,
		})
	}
	return d
}

// "none" is the datasets' placeholder for a source with no abbreviation.
func normaliseAbbreviation(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), "none") {
		return ""
	}
	return s
}

func dedupe(keys []string) []string {
	if len(keys) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(keys))
	out := keys[:0]
	for _, k := range keys {
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
