package db

// Node is a row of the nodes table
type Node struct {
	Key      string  `json:"key"`
	Label    string  `json:"label"`
	Tag      string  `json:"tag"`
	Cluster  string  `json:"cluster"`
	URL      *string `json:"url"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Size     float64 `json:"size"`
	Position int     `json:"position"`
}

// Edge is a row of the edges table
type Edge struct {
	Source   string   `json:"source"`
	Target   string   `json:"target"`
	Weight   *float64 `json:"weight"`
	Position int      `json:"position"`
}

// Info describes the dataset currently held in the database
type Info struct {
	Source     string `json:"source"`
	ImportedAt int64  `json:"imported_at"` // Unix millis
	Nodes      int    `json:"nodes"`
	Edges      int    `json:"edges"`
	Clusters   int    `json:"clusters"`
	Provenance int    `json:"provenance"`
	Items      int    `json:"items"`
}
