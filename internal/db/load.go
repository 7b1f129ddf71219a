package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"scalemap/atlas/internal/dataset"
)

// ErrEmpty is returned when no dataset has been imported yet
var ErrEmpty = errors.New("database holds no dataset")

// LoadDataset reads the imported dataset back in its original order. The
// result passes dataset.Validate when the import did.
func (d *DB) LoadDataset() (*dataset.Dataset, error) {
	ds := &dataset.Dataset{Items: map[string][]dataset.Item{}}

	rows, err := d.conn.Query(`SELECT key, color, label FROM clusters ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("reading clusters: %w", err)
	}
	for rows.Next() {
		var c dataset.Cluster
		if err := rows.Scan(&c.Key, &c.Color, &c.Label); err != nil {
			rows.Close()
			return nil, err
		}
		ds.Clusters = append(ds.Clusters, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = d.conn.Query(`SELECT key, image FROM tags ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("reading tags: %w", err)
	}
	for rows.Next() {
		var t dataset.Tag
		if err := rows.Scan(&t.Key, &t.Image); err != nil {
			rows.Close()
			return nil, err
		}
		ds.Tags = append(ds.Tags, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	nodes, err := d.AllNodes()
	if err != nil {
		return nil, fmt.Errorf("reading nodes: %w", err)
	}
	if len(nodes) == 0 && len(ds.Clusters) == 0 {
		return nil, ErrEmpty
	}
	prov, err := d.NodeProvenance()
	if err != nil {
		return nil, fmt.Errorf("reading node provenance: %w", err)
	}
	for _, n := range nodes {
		dn := dataset.Node{
			Key:        n.Key,
			Label:      n.Label,
			Tag:        n.Tag,
			Cluster:    n.Cluster,
			X:          n.X,
			Y:          n.Y,
			Size:       n.Size,
			Provenance: prov[n.Key],
		}
		if n.URL != nil {
			dn.URL = *n.URL
		}
		ds.Nodes = append(ds.Nodes, dn)
	}

	edges, err := d.AllEdges()
	if err != nil {
		return nil, fmt.Errorf("reading edges: %w", err)
	}
	for _, e := range edges {
		ds.Edges = append(ds.Edges, dataset.Edge{Source: e.Source, Target: e.Target, Weight: e.Weight})
	}

	rows, err = d.conn.Query(`SELECT key, abbreviation, name, citation, doi FROM provenance ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("reading provenance: %w", err)
	}
	for rows.Next() {
		var p dataset.Provenance
		if err := rows.Scan(&p.Key, &p.Abbreviation, &p.Name, &p.Citation, &p.DOI); err != nil {
			rows.Close()
			return nil, err
		}
		ds.Provenance = append(ds.Provenance, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = d.conn.Query(`SELECT label, text, level, tense, context, machine_drafted, human_edited FROM items ORDER BY label, position`)
	if err != nil {
		return nil, fmt.Errorf("reading items: %w", err)
	}
	for rows.Next() {
		var label string
		var it dataset.Item
		if err := rows.Scan(&label, &it.Text, &it.Level, &it.Tense, &it.Context, &it.MachineDrafted, &it.HumanEdited); err != nil {
			rows.Close()
			return nil, err
		}
		ds.Items[label] = append(ds.Items[label], it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ds, nil
}

// Info summarises the stored dataset
func (d *DB) Info() (*Info, error) {
	info := &Info{}
	var imported sql.NullString
	if err := d.conn.QueryRow(`SELECT value FROM meta WHERE key = 'source'`).Scan(&info.Source); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEmpty
		}
		return nil, err
	}
	if err := d.conn.QueryRow(`SELECT value FROM meta WHERE key = 'imported_at'`).Scan(&imported); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if imported.Valid {
		info.ImportedAt, _ = strconv.ParseInt(imported.String, 10, 64)
	}
	counts := []struct {
		table string
		dst   *int
	}{
		{"nodes", &info.Nodes},
		{"edges", &info.Edges},
		{"clusters", &info.Clusters},
		{"provenance", &info.Provenance},
		{"items", &info.Items},
	}
	for _, c := range counts {
		if err := d.conn.QueryRow(`SELECT COUNT(*) FROM ` + c.table).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("counting %s: %w", c.table, err)
		}
	}
	return info, nil
}
