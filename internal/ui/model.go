// Package ui is the interactive terminal explorer. All session calls happen
// inside Update, which bubbletea runs on a single goroutine.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"scalemap/atlas/internal/dataset"
	"scalemap/atlas/internal/items"
	"scalemap/atlas/internal/provenance"
	"scalemap/atlas/internal/render"
	"scalemap/atlas/internal/view"
)

type pane int

const (
	paneNodes pane = iota
	paneClusters
	paneTags
	paneCount
)

// Options tune the explorer's panels
type Options struct {
	FocusItems    int
	NeighborItems int
	LabelWidth    int
}

// ─── list item ───────────────────────────────────────────────────────────────

type nodeItem struct {
	key, label, color string
	visible           bool
	highlighted       bool
}

func (i nodeItem) Title() string {
	mark := " "
	if i.highlighted {
		mark = "★"
	}
	t := swatch(i.color) + " " + mark + " " + i.label
	if !i.visible {
		return mutedStyle.Render(t)
	}
	return t
}

func (i nodeItem) Description() string { return i.key }
func (i nodeItem) FilterValue() string { return i.label }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	session *view.Session
	opts    Options

	nodes   list.Model
	detail  viewport.Model
	search  textinput.Model
	results []dataset.Provenance

	active    pane
	searching bool
	cursor    map[pane]int
	badge     int

	focus  string
	facets items.Facets
	values items.FacetValues
	status string

	width, height int
}

// New builds an explorer over an open session
func New(s *view.Session, opts Options) Model {
	if opts.LabelWidth <= 0 {
		opts.LabelWidth = 40
	}
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(colorLavender).BorderForeground(colorLavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(colorSapphire).BorderForeground(colorLavender)

	l := list.New(nil, delegate, 0, 0)
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	ti := textinput.New()
	ti.Placeholder = "abbreviation, DOI, name or citation"
	ti.Prompt = "source › "
	ti.CharLimit = 120

	m := Model{
		session: s,
		opts:    opts,
		nodes:   l,
		detail:  viewport.New(0, 0),
		search:  ti,
		cursor:  map[pane]int{},
		facets:  items.Facets{}.Reset(),
	}
	m.nodes.SetItems(m.nodeItems())
	m.nodes.Title = s.Title()
	m.detail.SetContent(mutedStyle.Render("Select a node and press enter"))
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) nodeItems() []list.Item {
	ns := m.session.Store().Nodes()
	out := make([]list.Item, len(ns))
	for i, n := range ns {
		label := n.Label
		if label == "" {
			label = n.Key
		}
		out[i] = nodeItem{key: n.Key, label: label, color: n.Color, visible: n.Visible, highlighted: n.Highlighted}
	}
	return out
}

// refresh redraws everything derived from the session after a transition
func (m *Model) refresh() tea.Cmd {
	m.badge = max(min(m.badge, len(m.session.Selected())-1), 0)
	m.nodes.Title = m.session.Title()
	cmd := m.nodes.SetItems(m.nodeItems())
	m.renderDetail()
	return cmd
}

func (m *Model) renderDetail() {
	if m.focus == "" {
		return
	}
	p, err := m.session.Focus(m.focus, m.facets)
	if err != nil {
		m.detail.SetContent(hotStyle.Render(err.Error()))
		return
	}
	m.detail.SetContent(renderProjection(p, m.opts.FocusItems, m.opts.NeighborItems, m.detailWidth()))
}

func (m *Model) setFocus(key string) {
	m.focus = key
	if n, ok := m.session.Store().Node(key); ok {
		all := append([]dataset.Item(nil), n.Items...)
		for _, nb := range items.Rank(m.session.Store(), key, m.session.NeighborCap()) {
			if o, ok := m.session.Store().Node(nb.Key); ok {
				all = append(all, o.Items...)
			}
		}
		m.values = items.Values(all)
	}
	m.detail.GotoTop()
	m.renderDetail()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		m.renderDetail()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		if m.active == paneNodes && m.nodes.FilterState() == list.Filtering {
			break
		}
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}
	}

	var cmds []tea.Cmd
	if m.active == paneNodes {
		var cmd tea.Cmd
		m.nodes, cmd = m.nodes.Update(msg)
		cmds = append(cmds, cmd)
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case "q":
		return m, tea.Quit, true
	case "tab":
		m.active = (m.active + 1) % paneCount
		return m, nil, true
	case "shift+tab":
		m.active = (m.active + paneCount - 1) % paneCount
		return m, nil, true
	case "s":
		m.searching = true
		m.search.SetValue("")
		m.results = nil
		return m, m.search.Focus(), true
	case "[":
		m.badge = max(m.badge-1, 0)
		return m, nil, true
	case "]":
		m.badge = max(min(m.badge+1, len(m.session.Selected())-1), 0)
		return m, nil, true
	case "-", "backspace":
		sel := m.session.Selected()
		if len(sel) == 0 {
			m.status = "no source selected"
			return m, nil, true
		}
		r := sel[min(m.badge, len(sel)-1)]
		m.session.DeselectProvenance(r.Key)
		m.status = "removed " + provenance.BadgeLabel(r)
		return m, m.refresh(), true
	case "x":
		m.session.ClearProvenance()
		m.status = "selection cleared"
		return m, m.refresh(), true
	case "r":
		m.session.Reset()
		m.facets = items.Facets{}.Reset()
		m.status = "filters reset"
		return m, m.refresh(), true
	case "l":
		m.facets.Level = cycle(m.facets.Level, m.values.Levels)
		m.renderDetail()
		return m, nil, true
	case "t":
		m.facets.Tense = cycle(m.facets.Tense, m.values.Tenses)
		m.renderDetail()
		return m, nil, true
	case "c":
		m.facets.Context = cycle(m.facets.Context, m.values.Contexts)
		m.renderDetail()
		return m, nil, true
	case "d":
		m.facets.ExcludeMachineDrafted = !m.facets.ExcludeMachineDrafted
		m.renderDetail()
		return m, nil, true
	case "e":
		m.facets.HumanEditedOnly = !m.facets.HumanEditedOnly
		m.renderDetail()
		return m, nil, true
	}

	switch m.active {
	case paneNodes:
		if msg.String() == "enter" {
			if it, ok := m.nodes.SelectedItem().(nodeItem); ok {
				m.setFocus(it.key)
			}
			return m, nil, true
		}
	case paneClusters, paneTags:
		return m.handleToggleKey(msg)
	}
	return m, nil, false
}

func (m Model) handleToggleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	keys := m.session.Store().ClusterKeys()
	if m.active == paneTags {
		keys = m.session.Store().TagKeys()
	}
	cur := m.cursor[m.active]
	switch msg.String() {
	case "up", "k":
		if cur > 0 {
			m.cursor[m.active] = cur - 1
		}
		return m, nil, true
	case "down", "j":
		if cur < len(keys)-1 {
			m.cursor[m.active] = cur + 1
		}
		return m, nil, true
	case " ", "enter":
		if len(keys) == 0 {
			return m, nil, true
		}
		if m.active == paneTags {
			m.session.ToggleTag(keys[cur])
		} else {
			m.session.ToggleCluster(keys[cur])
		}
		return m, m.refresh(), true
	case "a":
		if m.active == paneTags {
			m.session.SetTags(keys...)
		} else {
			m.session.AllClusters()
		}
		return m, m.refresh(), true
	case "n":
		if m.active == paneTags {
			m.session.SetTags()
		} else {
			m.session.SetClusters()
		}
		return m, m.refresh(), true
	}
	return m, nil, false
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "enter":
		r, ok := m.session.SelectFirst(m.search.Value())
		if ok {
			m.status = "selected " + provenance.BadgeLabel(r)
		} else {
			m.status = "no source matches " + fmt.Sprintf("%q", m.search.Value())
		}
		m.searching = false
		m.search.Blur()
		return m, m.refresh()
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.results = m.session.Search(m.search.Value())
	return m, cmd
}

// ─── layout ──────────────────────────────────────────────────────────────────

func (m Model) sideWidth() int   { return max(m.width*22/100, 18) }
func (m Model) listWidth() int   { return max(m.width*33/100, 24) }
func (m Model) detailWidth() int { return max(m.width-m.sideWidth()-m.listWidth()-8, 20) }

func (m *Model) resize() {
	h := m.height - 4
	m.nodes.SetSize(m.listWidth(), h)
	m.detail.Width = m.detailWidth()
	m.detail.Height = h - 2
}

func (m Model) View() string {
	if m.width == 0 {
		return "loading…"
	}
	h := m.height - 4

	side := lipgloss.JoinVertical(lipgloss.Left,
		m.togglePane("Clusters", paneClusters, h/2-2),
		m.togglePane("Tags", paneTags, h-h/2-2),
	)
	nodes := m.style(paneNodes).Width(m.listWidth()).Height(h).Render(m.nodes.View())
	detail := paneStyle.Width(m.detailWidth()).Height(h).Render(m.detail.View())

	body := lipgloss.JoinHorizontal(lipgloss.Top, side, nodes, detail)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.footer())
}

func (m Model) style(p pane) lipgloss.Style {
	if m.active == p {
		return paneActiveStyle
	}
	return paneStyle
}

func (m Model) togglePane(title string, p pane, height int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(title) + "\n")
	state := m.session.State()
	width := m.sideWidth() - 6
	if p == paneClusters {
		for i, c := range m.session.Store().Clusters() {
			name := c.Label
			if name == "" {
				name = c.Key
			}
			sb.WriteString(m.toggleRow(p, i, state.Clusters.Has(c.Key), swatch(c.Color)+" "+render.Truncate(name, width-6, "…")))
		}
	} else {
		for i, t := range m.session.Store().Tags() {
			sb.WriteString(m.toggleRow(p, i, state.Tags.Has(t.Key), render.Truncate(t.Key, width-4, "…")))
		}
	}
	return m.style(p).Width(m.sideWidth()).Height(max(height, 3)).Render(sb.String())
}

func (m Model) toggleRow(p pane, i int, on bool, label string) string {
	box := "[ ]"
	if on {
		box = "[x]"
	}
	cursor := "  "
	if m.active == p && m.cursor[p] == i {
		cursor = "› "
	}
	return cursor + box + " " + label + "\n"
}

func (m Model) footer() string {
	if m.searching {
		var sb strings.Builder
		sb.WriteString(m.search.View())
		for i, r := range m.results {
			if i == 5 {
				sb.WriteString(mutedStyle.Render(fmt.Sprintf("  +%d", len(m.results)-5)))
				break
			}
			sb.WriteString("  " + mutedStyle.Render(provenance.BadgeLabel(r)))
		}
		return sb.String()
	}
	var badges []string
	for i, r := range m.session.Selected() {
		style := badgeStyle
		if i == m.badge {
			style = badgeActiveStyle
		}
		badges = append(badges, style.Render(provenance.BadgeLabel(r)))
	}
	help := mutedStyle.Render("tab pane · enter focus · space toggle · a/n all/none · s source · [/] pick badge · - remove · x clear · l/t/c facets · d drafted · e edited · r reset · q quit")
	line := strings.Join(badges, " ")
	if m.status != "" {
		line += "  " + hotStyle.Render(m.status)
	}
	return line + "\n" + help
}

// Run starts the explorer full screen
func Run(s *view.Session, opts Options) error {
	_, err := tea.NewProgram(New(s, opts), tea.WithAltScreen()).Run()
	return err
}
