package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"scalemap/atlas/internal/view"
)

// filterFlags are the filter selections shared by every command that
// renders or reports on the map.
type filterFlags struct {
	clusters []string
	tags     []string
	hide     []string
	sources  []string
	matches  []string
	drops    []string
}

func (f *filterFlags) register(c *cobra.Command) {
	c.Flags().StringSliceVar(&f.clusters, "cluster", nil, "Enable only these clusters (default all)")
	c.Flags().StringSliceVar(&f.tags, "tag", nil, "Enable only these tags (default all)")
	c.Flags().StringSliceVar(&f.hide, "hide-cluster", nil, "Disable these clusters")
	c.Flags().StringSliceVar(&f.sources, "source", nil, "Select provenance keys to highlight")
	c.Flags().StringSliceVar(&f.matches, "match", nil, "Select the first provenance record matching each query")
	c.Flags().StringSliceVar(&f.drops, "drop-source", nil, "Deselect these provenance keys after --source and --match")
}

// apply runs the selections through the session in flag order. Identifiers
// that match nothing are logged and otherwise ignored.
func (f *filterFlags) apply(s *view.Session) {
	store := s.Store()
	if len(f.clusters) > 0 {
		s.SetClusters(f.clusters...)
		warnUnknown("cluster", f.clusters, store.ClusterKeys())
	}
	if len(f.tags) > 0 {
		s.SetTags(f.tags...)
		warnUnknown("tag", f.tags, store.TagKeys())
	}
	for _, c := range f.hide {
		if s.State().Clusters.Has(c) {
			s.ToggleCluster(c)
		}
	}
	for _, k := range f.sources {
		s.AddProvenance(k)
		if s.Index().Count(k) == 0 {
			log.Warn("source tags no nodes", slog.String("key", k))
		}
	}
	for _, q := range f.matches {
		r, ok := s.SelectFirst(q)
		if !ok {
			log.Warn("no source matches query", slog.String("query", q))
			continue
		}
		log.Debug("selected source", slog.String("query", q), slog.String("key", r.Key))
	}
	for _, k := range f.drops {
		if !s.State().Provenance.Has(k) {
			log.Warn("dropped source was not selected", slog.String("key", k))
			continue
		}
		s.DeselectProvenance(k)
	}
}

func warnUnknown(kind string, ids, known []string) {
	set := make(map[string]bool, len(known))
	for _, k := range known {
		set[k] = true
	}
	for _, id := range ids {
		if !set[id] {
			log.Warn("unknown "+kind+" ignored", slog.String(kind, id))
		}
	}
}
