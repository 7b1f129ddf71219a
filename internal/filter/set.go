package filter

import "sort"

// Set is an explicit set of identifiers. Membership means enabled or
// selected; there is no "false" entry. Sets are treated as values: every
// operation that changes membership returns a new Set.
type Set map[string]struct{}

// NewSet builds a set from the given identifiers
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports membership. A nil set has no members.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the member count
func (s Set) Len() int { return len(s) }

// Clone returns an independent copy
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// With returns a copy that also contains id
func (s Set) With(id string) Set {
	out := s.Clone()
	out[id] = struct{}{}
	return out
}

// Without returns a copy that does not contain id
func (s Set) Without(id string) Set {
	out := s.Clone()
	delete(out, id)
	return out
}

// Toggle returns a copy with id's membership flipped
func (s Set) Toggle(id string) Set {
	if s.Has(id) {
		return s.Without(id)
	}
	return s.With(id)
}

// HasAny reports whether any of ids is a member
func (s Set) HasAny(ids []string) bool {
	if len(s) == 0 {
		return false
	}
	for _, id := range ids {
		if s.Has(id) {
			return true
		}
	}
	return false
}

// Equal reports whether both sets hold the same members
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// Sorted returns the members in ascending order
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
