// Package view owns one loaded map and its filter state. Every transition
// swaps in a new filter.State and re-applies the reducer over the whole
// store, so the store always reflects the current state and nothing else.
package view

import (
	"fmt"
	"log/slog"
	"slices"

	"scalemap/atlas/internal/dataset"
	"scalemap/atlas/internal/filter"
	"scalemap/atlas/internal/graph"
	"scalemap/atlas/internal/items"
	"scalemap/atlas/internal/provenance"
)

// Options configure a session
type Options struct {
	Graph   graph.Options
	Reducer filter.Options
	// NeighborCap bounds the ranked neighbor list; 0 means items.DefaultCap.
	NeighborCap int
	Logger      *slog.Logger
}

// Session is not safe for concurrent use. All calls are expected from one
// goroutine, such as a UI update loop.
type Session struct {
	store   *graph.Store
	index   *provenance.Index
	catalog *provenance.Catalog
	state   filter.State
	summary filter.Summary
	// picked lists the selected provenance keys in the order they were chosen
	picked  []string
	opts    Options
	log     *slog.Logger
}

// New builds the store and provenance index from d, enables every cluster
// and tag, and applies the reducer once.
func New(d *dataset.Dataset, opts Options) (*Session, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	if opts.Graph.Logger == nil {
		opts.Graph.Logger = log
	}
	store, err := graph.New(d, opts.Graph)
	if err != nil {
		return nil, err
	}
	s := &Session{
		store:   store,
		index:   provenance.Build(store.Nodes()),
		catalog: provenance.NewCatalog(d.Provenance),
		opts:    opts,
		log:     log.With(slog.String("component", "view")),
	}
	s.apply(filter.Initial(store.ClusterKeys(), store.TagKeys()))
	return s, nil
}

func (s *Session) apply(st filter.State) filter.Summary {
	s.state = st
	kept := s.picked[:0]
	for _, k := range s.picked {
		if st.Provenance.Has(k) {
			kept = append(kept, k)
		}
	}
	s.picked = kept
	s.summary = filter.Apply(s.store, st, s.opts.Reducer)
	s.log.Debug("filters applied",
		slog.Int("visible", s.summary.VisibleNodes),
		slog.Int("highlighted", s.summary.HighlightedNodes))
	return s.summary
}

// Store exposes the graph for rendering
func (s *Session) Store() *graph.Store { return s.store }

// Index exposes the provenance index
func (s *Session) Index() *provenance.Index { return s.index }

// Catalog exposes the provenance records
func (s *Session) Catalog() *provenance.Catalog { return s.catalog }

// State returns the current filter state
func (s *Session) State() filter.State { return s.state }

// Summary returns the counts from the last reducer pass
func (s *Session) Summary() filter.Summary { return s.summary }

func (s *Session) ToggleCluster(id string) filter.Summary {
	return s.apply(s.state.ToggleCluster(id))
}

func (s *Session) ToggleTag(id string) filter.Summary {
	return s.apply(s.state.ToggleTag(id))
}

// SetClusters enables exactly the given clusters. With no arguments it
// disables every cluster.
func (s *Session) SetClusters(ids ...string) filter.Summary {
	return s.apply(s.state.SetClusters(ids...))
}

// SetTags enables exactly the given tags
func (s *Session) SetTags(ids ...string) filter.Summary {
	return s.apply(s.state.SetTags(ids...))
}

// AllClusters enables every cluster in the dataset
func (s *Session) AllClusters() filter.Summary {
	return s.SetClusters(s.store.ClusterKeys()...)
}

// SelectProvenance replaces the selection. Badges follow the argument order.
func (s *Session) SelectProvenance(keys ...string) filter.Summary {
	s.picked = nil
	for _, k := range keys {
		s.pick(k)
	}
	return s.apply(s.state.SelectProvenance(filter.NewSet(keys...)))
}

func (s *Session) AddProvenance(key string) filter.Summary {
	s.pick(key)
	return s.apply(s.state.AddProvenance(key))
}

func (s *Session) pick(key string) {
	if slices.Contains(s.picked, key) {
		return
	}
	s.picked = append(s.picked, key)
}

func (s *Session) DeselectProvenance(key string) filter.Summary {
	return s.apply(s.state.DeselectProvenance(key))
}

func (s *Session) ClearProvenance() filter.Summary {
	return s.apply(s.state.ClearProvenance())
}

// Reset returns to the initial state: everything enabled, nothing selected.
func (s *Session) Reset() filter.Summary {
	return s.apply(filter.Initial(s.store.ClusterKeys(), s.store.TagKeys()))
}

// NeighborCap is the configured neighbor limit, items.DefaultCap when unset
func (s *Session) NeighborCap() int {
	if s.opts.NeighborCap <= 0 {
		return items.DefaultCap
	}
	return s.opts.NeighborCap
}

// Focus builds the ranked, facet-filtered item projection for a node.
func (s *Session) Focus(key string, f items.Facets) (items.Projection, error) {
	return s.FocusTop(key, f, 0)
}

// FocusTop is Focus keeping the top neighbors instead of the session's cap.
// A top of zero or less falls back to NeighborCap.
func (s *Session) FocusTop(key string, f items.Facets, top int) (items.Projection, error) {
	if top <= 0 {
		top = s.NeighborCap()
	}
	p, ok := items.Project(s.store, key, f, top)
	if !ok {
		return items.Projection{}, fmt.Errorf("focus %q: %w", key, items.ErrUnknownNode)
	}
	return p, nil
}

// Search lists provenance records matching query that are not selected yet.
func (s *Session) Search(query string) []dataset.Provenance {
	return s.catalog.Search(query, s.state.Provenance.Has)
}

// SelectFirst selects the first search result, the way Enter does in a
// search box. It reports false when nothing matched.
func (s *Session) SelectFirst(query string) (dataset.Provenance, bool) {
	r, ok := s.catalog.First(query, s.state.Provenance.Has)
	if !ok {
		return r, false
	}
	s.AddProvenance(r.Key)
	return r, true
}

// Selected returns the selected provenance records in the order they were
// picked. Keys with no record still appear, carrying only their key.
func (s *Session) Selected() []dataset.Provenance {
	out := make([]dataset.Provenance, 0, len(s.picked))
	for _, k := range s.picked {
		r, ok := s.catalog.Get(k)
		if !ok {
			r = dataset.Provenance{Key: k}
		}
		out = append(out, r)
	}
	return out
}

// Title is the header line for the map
func (s *Session) Title() string {
	return fmt.Sprintf("%d visible of %d", s.summary.VisibleNodes, s.summary.TotalNodes)
}
