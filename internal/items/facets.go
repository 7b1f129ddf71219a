package items

import "scalemap/atlas/internal/dataset"

// All is the selector value that matches any facet value
const All = "all"

// Facets select which items are shown. Empty or "all" selectors match
// anything; the toggles narrow further. An item must pass every facet.
type Facets struct {
	Level   string `json:"level,omitempty"`
	Tense   string `json:"tense,omitempty"`
	Context string `json:"context,omitempty"`

	ExcludeMachineDrafted bool `json:"exclude_machine_drafted,omitempty"`
	HumanEditedOnly       bool `json:"human_edited_only,omitempty"`
}

// Reset returns the facets that let every item through
func (f Facets) Reset() Facets {
	return Facets{Level: All, Tense: All, Context: All}
}

// Active reports whether any facet would exclude something
func (f Facets) Active() bool {
	return !selects(f.Level) || !selects(f.Tense) || !selects(f.Context) ||
		f.ExcludeMachineDrafted || f.HumanEditedOnly
}

func selects(sel string) bool { return sel == "" || sel == All }

func facetMatch(sel, value string) bool {
	return selects(sel) || sel == value
}

// Match reports whether it passes every facet
func (f Facets) Match(it dataset.Item) bool {
	if !facetMatch(f.Level, it.Level) || !facetMatch(f.Tense, it.Tense) || !facetMatch(f.Context, it.Context) {
		return false
	}
	if f.ExcludeMachineDrafted && it.MachineDrafted {
		return false
	}
	if f.HumanEditedOnly && !it.HumanEdited {
		return false
	}
	return true
}

// Filter returns the items that pass, in their original order. The input is
// not modified.
func (f Facets) Filter(items []dataset.Item) []dataset.Item {
	out := make([]dataset.Item, 0, len(items))
	for _, it := range items {
		if f.Match(it) {
			out = append(out, it)
		}
	}
	return out
}

// FacetValues lists the distinct values seen for each selector.
type FacetValues struct {
	Levels   []string `json:"levels"`
	Tenses   []string `json:"tenses"`
	Contexts []string `json:"contexts"`
}

// Values collects distinct non-empty level, tense and context values in
// first-appearance order.
func Values(items []dataset.Item) FacetValues {
	var v FacetValues
	seen := map[string]map[string]bool{"l": {}, "t": {}, "c": {}}
	add := func(dst *[]string, kind, val string) {
		if val == "" || seen[kind][val] {
			return
		}
		seen[kind][val] = true
		*dst = append(*dst, val)
	}
	for _, it := range items {
		add(&v.Levels, "l", it.Level)
		add(&v.Tenses, "t", it.Tense)
		add(&v.Contexts, "c", it.Context)
	}
	return v
}
