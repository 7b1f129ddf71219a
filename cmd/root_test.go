package cmd

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"scalemap/atlas/internal/config"
	"scalemap/atlas/internal/dataset"
	"scalemap/atlas/internal/db"
	"scalemap/atlas/internal/items"
)

const sampleJSON = `{
  "nodes": [
    {"key": "gad1", "label": "Excessive worry", "tag": "concept", "cluster": 0, "submissions": [1]},
    {"key": "gad2", "label": "Restlessness", "tag": "concept", "cluster": 0},
    {"key": "phq1", "label": "Sleep problems", "tag": "concept", "cluster": 1}
  ],
  "edges": [["gad1", "gad2", 2], ["phq1", "gad1"]],
  "clusters": [{"key": 0, "color": "#ff0000"}, {"key": 1, "color": "#00ff00"}],
  "tags": [{"key": "concept"}],
  "submissions": [{"key": 1, "scale_abbr": "GAD-7"}]
}`

// setup resets the package flag state for one test
func setup(t *testing.T) string {
	t.Helper()
	cfg = config.Default()
	log = slog.Default()
	dbPath, datasetPath = "", ""
	t.Cleanup(func() { dbPath, datasetPath = "", "" })

	path := filepath.Join(t.TempDir(), "map.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDiscoverDB_FlagMissing(t *testing.T) {
	setup(t)
	dbPath = filepath.Join(t.TempDir(), "nope.db")
	if _, err := DiscoverDB(); err == nil || !strings.Contains(err.Error(), "--db") {
		t.Errorf("expected a --db error, got %v", err)
	}
}

func TestDiscoverDB_Env(t *testing.T) {
	setup(t)
	p := filepath.Join(t.TempDir(), "env.db")
	if err := os.WriteFile(p, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ATLAS_DB", p)
	got, err := DiscoverDB()
	if err != nil || got != p {
		t.Errorf("DiscoverDB() = %q, %v", got, err)
	}
}

func TestDiscoverDB_WalkUp(t *testing.T) {
	setup(t)
	t.Setenv("ATLAS_DB", "")
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, dbName), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	deep := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(deep)
	got, err := DiscoverDB()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(got) != dbName || !strings.HasPrefix(got, root) {
		t.Errorf("DiscoverDB() = %q, want %s under %s", got, dbName, root)
	}
}

func TestOpenSession_FromFile(t *testing.T) {
	datasetPath = setup(t)
	src, err := OpenSession()
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()
	if src.db != nil {
		t.Error("a file-backed session opens no database")
	}
	if got := src.session.Title(); got != "3 visible of 3" {
		t.Errorf("Title = %q", got)
	}
}

func TestResolveNode_File(t *testing.T) {
	datasetPath = setup(t)
	src, err := OpenSession()
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	tests := []struct {
		ref, want, errPart string
	}{
		{ref: "gad2", want: "gad2"},
		{ref: "phq", want: "phq1"},
		{ref: "gad", errPart: "ambiguous"},
		{ref: "restless", want: "gad2"},
		{ref: "nothing like it", errPart: "not found"},
	}
	for _, tt := range tests {
		n, err := ResolveNode(src, tt.ref)
		if tt.errPart != "" {
			if err == nil || !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("ResolveNode(%q) error = %v, want %q", tt.ref, err, tt.errPart)
			}
			continue
		}
		if err != nil {
			t.Errorf("ResolveNode(%q): %v", tt.ref, err)
			continue
		}
		if n.Key != tt.want {
			t.Errorf("ResolveNode(%q) = %s, want %s", tt.ref, n.Key, tt.want)
		}
	}
}

func TestResolveNode_Database(t *testing.T) {
	path := setup(t)
	ds, err := dataset.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	dbPath = filepath.Join(t.TempDir(), dbName)
	d, err := db.OpenDB(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.ImportDataset(ds, path); err != nil {
		t.Fatal(err)
	}
	d.Close()

	src, err := OpenSession()
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()
	if src.db == nil {
		t.Fatal("expected a database-backed session")
	}
	n, err := ResolveNode(src, "sleep")
	if err != nil || n.Key != "phq1" {
		t.Errorf("label search via FTS = %v, %v", n, err)
	}
	if _, err := ResolveNode(src, "gad"); err == nil {
		t.Error("shared prefix should be ambiguous")
	}
}

// runCLI executes the root command with args and returns what it printed
// on stdout.
func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	stdout := os.Stdout
	os.Stdout = w
	rootCmd.SetArgs(args)
	runErr := rootCmd.Execute()
	w.Close()
	os.Stdout = stdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatal(err)
	}
	if runErr != nil {
		t.Fatalf("atlas %v: %v", args, runErr)
	}
	return buf.String()
}

func TestFocusCommand_CapFlag(t *testing.T) {
	path := setup(t)
	out := runCLI(t, "--dataset", path, "focus", "gad1", "--json", "--cap", "1")

	var p items.Projection
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		t.Fatalf("decoding %q: %v", out, err)
	}
	if p.Focus.Key != "gad1" {
		t.Errorf("focus = %+v", p.Focus)
	}
	if len(p.Neighbors) != 1 || p.Neighbors[0].Key != "gad2" {
		t.Errorf("--cap 1 should keep only the heaviest neighbor, got %+v", p.Neighbors)
	}
}

func TestSearchCommand_ListsTaggedNodes(t *testing.T) {
	path := setup(t)
	out := runCLI(t, "--dataset", path, "search", "gad", "--json")

	var hits []struct {
		Key      string   `json:"key"`
		Nodes    int      `json:"nodes"`
		NodeKeys []string `json:"node_keys"`
	}
	if err := json.Unmarshal([]byte(out), &hits); err != nil {
		t.Fatalf("decoding %q: %v", out, err)
	}
	if len(hits) != 1 || hits[0].Nodes != 1 || len(hits[0].NodeKeys) != 1 || hits[0].NodeKeys[0] != "gad1" {
		t.Errorf("search gad = %+v", hits)
	}
}

func TestFilterFlags_DropSource(t *testing.T) {
	datasetPath = setup(t)
	src, err := OpenSession()
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	f := filterFlags{sources: []string{"1", "2"}, drops: []string{"1", "missing"}}
	f.apply(src.session)
	sel := src.session.State().Provenance
	if sel.Has("1") || !sel.Has("2") || sel.Len() != 1 {
		t.Errorf("selection after drop = %v", sel.Sorted())
	}
	if n, _ := src.session.Store().Node("gad1"); n.Highlighted {
		t.Error("gad1 should lose its highlight once source 1 is dropped")
	}
}
