package db

import (
	"strings"
	"unicode"
)

var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "in": true, "on": true,
	"at": true, "to": true, "for": true, "of": true, "is": true,
	"it": true, "and": true, "or": true, "with": true, "from": true,
	"by": true, "this": true, "that": true, "as": true, "be": true,
}

// labelTerms splits a label query into lowercase search terms. Outer
// punctuation is trimmed, inner punctuation kept, so "(GAD-7)" gives
// "gad-7". Stopwords, single characters and repeats are dropped.
func labelTerms(query string) []string {
	seen := map[string]bool{}
	var terms []string
	for _, w := range strings.Fields(query) {
		t := strings.ToLower(strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}))
		if len([]rune(t)) < 2 || stopwords[t] || seen[t] {
			continue
		}
		seen[t] = true
		terms = append(terms, t)
	}
	return terms
}

// BuildFTSQuery turns a label query into an FTS5 expression where every term
// must prefix-match the label. Terms are quoted so hyphens and dots are
// never parsed as FTS5 syntax.
func BuildFTSQuery(query string) string {
	terms := labelTerms(query)
	for i, t := range terms {
		terms[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"*`
	}
	return strings.Join(terms, " ")
}

// SearchNodes matches node labels through the FTS index, best match first.
// An empty slice comes back for a query with no usable terms and for a
// database without the index.
func (d *DB) SearchNodes(query string) ([]Node, error) {
	expr := BuildFTSQuery(query)
	if expr == "" {
		return []Node{}, nil
	}

	nodes, err := d.queryNodes(`
		SELECT `+nodeColumnsFrom("n")+`
		FROM nodes_fts fts
		JOIN nodes n ON n.key = fts.key
		WHERE nodes_fts MATCH ?1
		ORDER BY rank, n.position
	`, expr)
	if err != nil {
		if strings.Contains(err.Error(), "no such table") {
			return []Node{}, nil
		}
		return nil, err
	}
	if nodes == nil {
		nodes = []Node{}
	}
	return nodes, nil
}
