package dataset

import (
	"errors"
	"fmt"
	"math"
)

// Validate checks the load-time rules: node keys are unique and
// non-empty, every node resolves its cluster and tag, every edge joins two
// known nodes at most once per direction, and every weight is a finite,
// non-negative number. All
// violations are reported together.
func Validate(d *Dataset) error {
	if d == nil {
		return fmt.Errorf("%w: nil dataset", ErrInvalidDataset)
	}
	var errs []error

	clusters := make(map[string]bool, len(d.Clusters))
	for _, c := range d.Clusters {
		if c.Key == "" {
			errs = append(errs, fmt.Errorf("%w: cluster with empty key", ErrInvalidDataset))
			continue
		}
		if clusters[c.Key] {
			errs = append(errs, fmt.Errorf("%w: cluster %q declared twice", ErrInvalidDataset, c.Key))
		}
		clusters[c.Key] = true
	}

	tags := make(map[string]bool, len(d.Tags))
	for _, t := range d.Tags {
		if t.Key == "" {
			errs = append(errs, fmt.Errorf("%w: tag with empty key", ErrInvalidDataset))
			continue
		}
		if tags[t.Key] {
			errs = append(errs, fmt.Errorf("%w: tag %q declared twice", ErrInvalidDataset, t.Key))
		}
		tags[t.Key] = true
	}

	nodes := make(map[string]bool, len(d.Nodes))
	for i, n := range d.Nodes {
		if n.Key == "" {
			errs = append(errs, fmt.Errorf("%w: node %d has an empty key", ErrInvalidDataset, i))
			continue
		}
		if nodes[n.Key] {
			errs = append(errs, fmt.Errorf("node %q: %w", n.Key, ErrDuplicateNode))
		}
		nodes[n.Key] = true
		if !clusters[n.Cluster] {
			errs = append(errs, fmt.Errorf("node %q: %w %q", n.Key, ErrUnknownCluster, n.Cluster))
		}
		if !tags[n.Tag] {
			errs = append(errs, fmt.Errorf("node %q: %w %q", n.Key, ErrUnknownTag, n.Tag))
		}
	}

	type pair struct{ s, t string }
	seen := make(map[pair]bool, len(d.Edges))
	for _, e := range d.Edges {
		if !nodes[e.Source] {
			errs = append(errs, fmt.Errorf("edge %s->%s: %w: %q", e.Source, e.Target, ErrUnknownEndpoint, e.Source))
		}
		if !nodes[e.Target] {
			errs = append(errs, fmt.Errorf("edge %s->%s: %w: %q", e.Source, e.Target, ErrUnknownEndpoint, e.Target))
		}
		p := pair{e.Source, e.Target}
		if seen[p] {
			errs = append(errs, fmt.Errorf("edge %s->%s: %w", e.Source, e.Target, ErrDuplicateEdge))
		}
		seen[p] = true
		if e.Weight == nil {
			continue
		}
		switch w := *e.Weight; {
		case math.IsNaN(w) || math.IsInf(w, 0):
			errs = append(errs, fmt.Errorf("edge %s->%s: %w (%g)", e.Source, e.Target, ErrInvalidWeight, w))
		case w < 0:
			errs = append(errs, fmt.Errorf("edge %s->%s: %w (%g)", e.Source, e.Target, ErrNegativeWeight, w))
		}
	}

	seenProv := make(map[string]bool, len(d.Provenance))
	for _, p := range d.Provenance {
		if p.Key == "" {
			errs = append(errs, fmt.Errorf("%w: provenance record with empty key", ErrInvalidDataset))
			continue
		}
		if seenProv[p.Key] {
			errs = append(errs, fmt.Errorf("%w: provenance %q declared twice", ErrInvalidDataset, p.Key))
		}
		seenProv[p.Key] = true
	}

	return errors.Join(errs...)
}

// OrphanItemLabels returns item labels that match no node label, sorted.
// These are not fatal; the items are simply never shown.
func OrphanItemLabels(d *Dataset) []string {
	labels := make(map[string]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		labels[n.Label] = true
	}
	var orphans []string
	for _, l := range d.ItemLabels() {
		if !labels[l] {
			orphans = append(orphans, l)
		}
	}
	return orphans
}
