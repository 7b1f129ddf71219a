package db

const edgeColumns = `source, target, weight, position`

// scanEdge scans a row into an Edge. The row must carry edgeColumns in order.
func scanEdge(scanner interface{ Scan(dest ...any) error }) (Edge, error) {
	var e Edge
	err := scanner.Scan(&e.Source, &e.Target, &e.Weight, &e.Position)
	return e, err
}

func (d *DB) queryEdges(query string, args ...any) ([]Edge, error) {
	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var edges []Edge
	for rows.Next() {
		e, err := scanEdge(rows)
		if err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// AllEdges returns all edges in dataset order
func (d *DB) AllEdges() ([]Edge, error) {
	return d.queryEdges(`SELECT ` + edgeColumns + ` FROM edges ORDER BY position`)
}

