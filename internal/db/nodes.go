package db

import "strings"

const nodeColumns = `key, label, tag, cluster, url, x, y, size, position`

// nodeColumnsFrom qualifies nodeColumns with a table alias for joins
func nodeColumnsFrom(alias string) string {
	cols := strings.Split(nodeColumns, ", ")
	for i, c := range cols {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}

// scanNode scans a row into a Node. The row must carry nodeColumns in order.
func scanNode(scanner interface{ Scan(dest ...any) error }) (Node, error) {
	var n Node
	err := scanner.Scan(
		&n.Key, &n.Label, &n.Tag, &n.Cluster, &n.URL,
		&n.X, &n.Y, &n.Size, &n.Position,
	)
	return n, err
}

func (d *DB) queryNodes(query string, args ...any) ([]Node, error) {
	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []Node
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

// AllNodes returns all nodes in dataset order
func (d *DB) AllNodes() ([]Node, error) {
	return d.queryNodes(`SELECT ` + nodeColumns + ` FROM nodes ORDER BY position`)
}

// SearchByKeyPrefix finds nodes whose key starts with the given prefix.
func (d *DB) SearchByKeyPrefix(prefix string, limit int) ([]Node, error) {
	return d.queryNodes(`SELECT `+nodeColumns+` FROM nodes WHERE key LIKE ? ESCAPE '\' ORDER BY position LIMIT ?`,
		escapeLike(prefix)+"%", limit)
}

func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}

// NodeProvenance returns every node's provenance keys in dataset order
func (d *DB) NodeProvenance() (map[string][]string, error) {
	rows, err := d.conn.Query(`SELECT node_key, provenance_key FROM node_provenance ORDER BY node_key, position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var node, prov string
		if err := rows.Scan(&node, &prov); err != nil {
			return nil, err
		}
		out[node] = append(out[node], prov)
	}
	return out, rows.Err()
}
