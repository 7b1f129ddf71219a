// Package filter derives node and edge visibility from user-toggled
// filters. State holds the filters as immutable values; Apply recomputes
// the whole map's render state from a State.
package filter

// State is the complete filter selection. Values are never mutated in place;
// every transition returns a new State, so a State can be compared, stored
// or replayed without a graph present.
type State struct {
	Clusters   Set // enabled clusters
	Tags       Set // enabled tags
	Provenance Set // selected provenance keys
}

// Initial enables every given cluster and tag and selects no provenance.
func Initial(clusters, tags []string) State {
	return State{
		Clusters:   NewSet(clusters...),
		Tags:       NewSet(tags...),
		Provenance: NewSet(),
	}
}

// ToggleCluster disables an enabled cluster and enables any other.
func (s State) ToggleCluster(id string) State {
	s.Clusters = s.Clusters.Toggle(id)
	return s
}

// ToggleTag disables an enabled tag and enables any other.
func (s State) ToggleTag(id string) State {
	s.Tags = s.Tags.Toggle(id)
	return s
}

// SetClusters replaces the enabled clusters
func (s State) SetClusters(ids ...string) State {
	s.Clusters = NewSet(ids...)
	return s
}

// SetTags replaces the enabled tags
func (s State) SetTags(ids ...string) State {
	s.Tags = NewSet(ids...)
	return s
}

// SelectProvenance replaces the provenance selection
func (s State) SelectProvenance(keys Set) State {
	s.Provenance = keys.Clone()
	return s
}

// AddProvenance adds one key to the selection
func (s State) AddProvenance(key string) State {
	s.Provenance = s.Provenance.With(key)
	return s
}

// DeselectProvenance removes one key from the selection
func (s State) DeselectProvenance(key string) State {
	s.Provenance = s.Provenance.Without(key)
	return s
}

// ClearProvenance drops the whole selection
func (s State) ClearProvenance() State {
	s.Provenance = NewSet()
	return s
}

// Equal reports whether two states select the same filters
func (s State) Equal(other State) bool {
	return s.Clusters.Equal(other.Clusters) &&
		s.Tags.Equal(other.Tags) &&
		s.Provenance.Equal(other.Provenance)
}
