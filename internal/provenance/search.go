package provenance

import (
	"strings"

	"scalemap/atlas/internal/dataset"
)

// Catalog holds the dataset's provenance records in dataset order.
type Catalog struct {
	records []dataset.Provenance
	byKey   map[string]int
}

func NewCatalog(records []dataset.Provenance) *Catalog {
	c := &Catalog{records: records, byKey: make(map[string]int, len(records))}
	for i, r := range records {
		c.byKey[r.Key] = i
	}
	return c
}

// Len returns the record count
func (c *Catalog) Len() int { return len(c.records) }

// Records returns every record in dataset order
func (c *Catalog) Records() []dataset.Provenance { return c.records }

// Get looks up a record by key
func (c *Catalog) Get(key string) (dataset.Provenance, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return dataset.Provenance{}, false
	}
	return c.records[i], true
}

// Match reports whether query is a case-insensitive prefix of the record's
// abbreviation or DOI, or a case-insensitive substring of its name or
// citation. An empty query matches nothing.
func Match(query string, r dataset.Provenance) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	for _, f := range []string{r.Abbreviation, r.DOI} {
		if f != "" && strings.HasPrefix(strings.ToLower(f), q) {
			return true
		}
	}
	for _, f := range []string{r.Name, r.Citation} {
		if f != "" && strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Search returns matching records that are not already selected, in
// dataset order.
func (c *Catalog) Search(query string, selected func(key string) bool) []dataset.Provenance {
	var out []dataset.Provenance
	for _, r := range c.records {
		if selected != nil && selected(r.Key) {
			continue
		}
		if Match(query, r) {
			out = append(out, r)
		}
	}
	return out
}

// First returns the record an Enter press would select: the first result
// of Search.
func (c *Catalog) First(query string, selected func(key string) bool) (dataset.Provenance, bool) {
	for _, r := range c.records {
		if selected != nil && selected(r.Key) {
			continue
		}
		if Match(query, r) {
			return r, true
		}
	}
	return dataset.Provenance{}, false
}

// BadgeLabel is the short text shown for a selected record: its
// abbreviation, else the first word of its citation followed by "...",
// else its key.
func BadgeLabel(r dataset.Provenance) string {
	if r.Abbreviation != "" {
		return r.Abbreviation
	}
	if f := strings.Fields(r.Citation); len(f) > 0 {
		return strings.TrimRight(f[0], ",;") + "..."
	}
	return r.Key
}
