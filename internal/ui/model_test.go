package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"scalemap/atlas/internal/dataset"
	"scalemap/atlas/internal/items"
	"scalemap/atlas/internal/view"
)

func newModel(t *testing.T) Model {
	t.Helper()
	w := 2.0
	return modelFor(t, &dataset.Dataset{
		Nodes: []dataset.Node{
			{Key: "a", Label: "Anxiety", Cluster: "0", Tag: "concept", Provenance: []string{"1"}},
			{Key: "b", Label: "Worry", Cluster: "1", Tag: "concept", Provenance: []string{"2"}},
		},
		Edges:      []dataset.Edge{{Source: "a", Target: "b", Weight: &w}},
		Clusters:   []dataset.Cluster{{Key: "0", Color: "#ff0000"}, {Key: "1", Color: "#00ff00"}},
		Tags:       []dataset.Tag{{Key: "concept"}},
		Provenance: []dataset.Provenance{{Key: "1", Abbreviation: "GAD-7"}, {Key: "2", Abbreviation: "PHQ-9"}},
		Items: map[string][]dataset.Item{
			"Worry": {{Text: "worries a lot", Level: "intro"}, {Text: "cannot stop", Level: "advanced"}},
		},
	}, view.Options{})
}

func modelFor(t *testing.T, d *dataset.Dataset, opts view.Options) Model {
	t.Helper()
	s, err := view.New(d, opts)
	if err != nil {
		t.Fatal(err)
	}
	m := New(s, Options{FocusItems: 10, NeighborItems: 3})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	return next.(Model)
}

func press(m Model, keys ...tea.KeyMsg) Model {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	space = tea.KeyMsg{Type: tea.KeySpace}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
)

func TestToggleClusterFromPane(t *testing.T) {
	m := newModel(t)
	m = press(m, tab, space)
	if m.session.State().Clusters.Has("0") {
		t.Error("space on the first cluster should disable it")
	}
	if m.nodes.Title != "1 visible of 2" {
		t.Errorf("title = %q", m.nodes.Title)
	}
	m = press(m, runes("a"))
	if m.session.Summary().VisibleNodes != 2 {
		t.Error("a should enable every cluster")
	}
	m = press(m, runes("n"))
	if m.session.Summary().VisibleNodes != 0 {
		t.Error("n should disable every cluster")
	}
}

func TestSearchSelectsFirst(t *testing.T) {
	m := newModel(t)
	m = press(m, runes("s"), runes("g"), runes("a"), runes("d"))
	if !m.searching || len(m.results) != 1 {
		t.Fatalf("searching=%v results=%v", m.searching, m.results)
	}
	m = press(m, enter)
	if m.searching || !m.session.State().Provenance.Has("1") {
		t.Errorf("enter should select the first match, state %+v", m.session.State())
	}
	if !strings.Contains(m.View(), "GAD-7") {
		t.Error("selected source should show as a badge")
	}
	m = press(m, runes("x"))
	if m.session.State().Provenance.Len() != 0 {
		t.Error("x should clear the selection")
	}
}

func TestFocusAndFacets(t *testing.T) {
	m := newModel(t)
	m = press(m, enter)
	if m.focus != "a" {
		t.Fatalf("enter should focus the selected node, got %q", m.focus)
	}
	if len(m.values.Levels) != 2 {
		t.Errorf("facet values should include neighbor items, got %+v", m.values)
	}
	m = press(m, runes("l"))
	if m.facets.Level != "intro" {
		t.Errorf("l should cycle to the first level, got %q", m.facets.Level)
	}
	if !strings.Contains(m.detail.View(), "1 of 2") {
		t.Errorf("detail should report filtered counts:\n%s", m.detail.View())
	}
	m = press(m, runes("r"))
	if m.facets != (items.Facets{}).Reset() {
		t.Errorf("r should reset facets, got %+v", m.facets)
	}
}

func TestCycle(t *testing.T) {
	vals := []string{"x", "y"}
	if got := cycle("", vals); got != "x" {
		t.Errorf("cycle from empty = %q", got)
	}
	if got := cycle("y", vals); got != items.All {
		t.Errorf("cycle wraps to all, got %q", got)
	}
	if got := cycle("gone", vals); got != items.All {
		t.Errorf("unknown selector falls back to all, got %q", got)
	}
}

func TestRemoveOneBadge(t *testing.T) {
	m := newModel(t)
	m = press(m, runes("s"), runes("g"), runes("a"), runes("d"), enter)
	m = press(m, runes("s"), runes("p"), runes("h"), runes("q"), enter)
	if got := m.session.Selected(); len(got) != 2 || got[0].Key != "1" || got[1].Key != "2" {
		t.Fatalf("badges should follow pick order, got %+v", got)
	}

	m = press(m, runes("]"), runes("-"))
	sel := m.session.Selected()
	if len(sel) != 1 || sel[0].Key != "1" {
		t.Errorf("- should remove only the badge under the cursor, got %+v", sel)
	}
	if m.badge != 0 {
		t.Errorf("cursor should clamp to the remaining badge, got %d", m.badge)
	}
	if b, _ := m.session.Store().Node("b"); b.Highlighted {
		t.Error("removing PHQ-9 should unhighlight b")
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	if m.session.State().Provenance.Len() != 0 {
		t.Error("backspace should remove the last badge")
	}
	m = press(m, runes("-"))
	if m.status != "no source selected" {
		t.Errorf("status = %q", m.status)
	}
}

func TestFocusFacetValuesUseNeighborCap(t *testing.T) {
	d := &dataset.Dataset{
		Clusters: []dataset.Cluster{{Key: "0", Color: "#ff0000"}},
		Tags:     []dataset.Tag{{Key: "concept"}},
		Nodes:    []dataset.Node{{Key: "f", Label: "Focus", Cluster: "0", Tag: "concept"}},
		Items:    map[string][]dataset.Item{},
	}
	for i, key := range []string{"n1", "n2", "n3", "n4", "n5", "n6"} {
		weight := float64(10 - i)
		d.Nodes = append(d.Nodes, dataset.Node{Key: key, Label: "L" + key, Cluster: "0", Tag: "concept"})
		d.Edges = append(d.Edges, dataset.Edge{Source: "f", Target: key, Weight: &weight})
		d.Items["L"+key] = []dataset.Item{{Text: "item " + key, Level: "level-" + key}}
	}

	m := modelFor(t, d, view.Options{NeighborCap: 6})
	m = press(m, enter)
	if m.focus != "f" {
		t.Fatalf("focus = %q", m.focus)
	}
	if len(m.values.Levels) != 6 || m.values.Levels[5] != "level-n6" {
		t.Errorf("the sixth neighbor's level should be selectable, got %v", m.values.Levels)
	}
}
