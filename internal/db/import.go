package db

import (
	"database/sql"
	"fmt"
	"time"

	"scalemap/atlas/internal/dataset"
)

// ImportDataset replaces whatever the database holds with d. The dataset is
// validated first and written in one transaction, so a failed import leaves
// the previous contents in place.
func (d *DB) ImportDataset(ds *dataset.Dataset, source string) (*Info, error) {
	if err := dataset.Validate(ds); err != nil {
		return nil, fmt.Errorf("importing %s: %w", source, err)
	}

	tx, err := d.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("starting import: %w", err)
	}
	defer tx.Rollback()

	for _, t := range tables {
		if _, err := tx.Exec(`DELETE FROM ` + t); err != nil {
			return nil, fmt.Errorf("clearing %s: %w", t, err)
		}
	}

	if err := insertAll(tx, `INSERT INTO clusters (key, color, label, position) VALUES (?, ?, ?, ?)`,
		len(ds.Clusters), func(i int) []any {
			c := ds.Clusters[i]
			return []any{c.Key, c.Color, c.Label, i}
		}); err != nil {
		return nil, fmt.Errorf("writing clusters: %w", err)
	}

	if err := insertAll(tx, `INSERT INTO tags (key, image, position) VALUES (?, ?, ?)`,
		len(ds.Tags), func(i int) []any {
			t := ds.Tags[i]
			return []any{t.Key, t.Image, i}
		}); err != nil {
		return nil, fmt.Errorf("writing tags: %w", err)
	}

	if err := insertAll(tx, `INSERT INTO nodes (key, label, tag, cluster, url, x, y, size, position) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		len(ds.Nodes), func(i int) []any {
			n := ds.Nodes[i]
			var url *string
			if n.URL != "" {
				url = &n.URL
			}
			return []any{n.Key, n.Label, n.Tag, n.Cluster, url, n.X, n.Y, n.Size, i}
		}); err != nil {
		return nil, fmt.Errorf("writing nodes: %w", err)
	}

	if err := insertAll(tx, `INSERT INTO nodes_fts (key, label) VALUES (?, ?)`,
		len(ds.Nodes), func(i int) []any {
			return []any{ds.Nodes[i].Key, ds.Nodes[i].Label}
		}); err != nil {
		return nil, fmt.Errorf("indexing node labels: %w", err)
	}

	links, err := tx.Prepare(`INSERT OR IGNORE INTO node_provenance (node_key, provenance_key, position) VALUES (?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer links.Close()
	for _, n := range ds.Nodes {
		for j, p := range n.Provenance {
			if _, err := links.Exec(n.Key, p, j); err != nil {
				return nil, fmt.Errorf("writing provenance for %s: %w", n.Key, err)
			}
		}
	}

	if err := insertAll(tx, `INSERT INTO edges (source, target, weight, position) VALUES (?, ?, ?, ?)`,
		len(ds.Edges), func(i int) []any {
			e := ds.Edges[i]
			return []any{e.Source, e.Target, e.Weight, i}
		}); err != nil {
		return nil, fmt.Errorf("writing edges: %w", err)
	}

	if err := insertAll(tx, `INSERT INTO provenance (key, abbreviation, name, citation, doi, position) VALUES (?, ?, ?, ?, ?, ?)`,
		len(ds.Provenance), func(i int) []any {
			p := ds.Provenance[i]
			return []any{p.Key, p.Abbreviation, p.Name, p.Citation, p.DOI, i}
		}); err != nil {
		return nil, fmt.Errorf("writing provenance: %w", err)
	}

	items, err := tx.Prepare(`INSERT INTO items (label, position, text, level, tense, context, machine_drafted, human_edited) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer items.Close()
	itemCount := 0
	for _, label := range ds.ItemLabels() {
		for j, it := range ds.Items[label] {
			if _, err := items.Exec(label, j, it.Text, it.Level, it.Tense, it.Context, it.MachineDrafted, it.HumanEdited); err != nil {
				return nil, fmt.Errorf("writing items for %q: %w", label, err)
			}
			itemCount++
		}
	}

	now := time.Now().UnixMilli()
	for k, v := range map[string]string{"source": source, "imported_at": fmt.Sprint(now)} {
		if _, err := tx.Exec(`INSERT INTO meta (key, value) VALUES (?, ?)`, k, v); err != nil {
			return nil, fmt.Errorf("writing meta: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing import: %w", err)
	}
	return &Info{
		Source:     source,
		ImportedAt: now,
		Nodes:      len(ds.Nodes),
		Edges:      len(ds.Edges),
		Clusters:   len(ds.Clusters),
		Provenance: len(ds.Provenance),
		Items:      itemCount,
	}, nil
}

func insertAll(tx *sql.Tx, query string, n int, row func(i int) []any) error {
	stmt, err := tx.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i := 0; i < n; i++ {
		if _, err := stmt.Exec(row(i)...); err != nil {
			return err
		}
	}
	return nil
}
