package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"scalemap/atlas/internal/config"
	"scalemap/atlas/internal/dataset"
	"scalemap/atlas/internal/db"
	"scalemap/atlas/internal/graph"
	"scalemap/atlas/internal/view"
)

var (
	dbPath      string
	datasetPath string
	configPath  string
	verbose     bool

	cfg *config.Config
	log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "atlas",
	Short:         "Explore and filter a scale network map",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		log = slog.Default().With(slog.String("component", "cli"))

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to .atlas.db database")
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "Read a JSON or YAML dataset file instead of the database")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/atlas/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging on stderr")
}

const dbName = ".atlas.db"

// DiscoverDB finds the database path using priority: flag > env > walk-up > XDG fallback
func DiscoverDB() (string, error) {
	// 1. CLI flag
	if dbPath != "" {
		if _, err := os.Stat(dbPath); err == nil {
			return dbPath, nil
		}
		return "", fmt.Errorf("database not found at --db path: %s", dbPath)
	}

	// 2. Environment variable
	if envPath := os.Getenv("ATLAS_DB"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}

	// 3. Walk up from CWD
	dir, err := os.Getwd()
	if err == nil {
		for {
			candidate := filepath.Join(dir, dbName)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	// 4. XDG fallback
	if p := xdgDBPath(); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("no %s found (use --dataset, --db, set ATLAS_DB, or run atlas import)", dbName)
}

func xdgDBPath() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dir, "atlas", "atlas.db")
}

// OpenDatabase discovers and opens the database
func OpenDatabase() (*db.DB, error) {
	path, err := DiscoverDB()
	if err != nil {
		return nil, err
	}
	log.Debug("opening database", slog.String("path", path))
	return db.OpenDB(path)
}

// source is a loaded map plus the database it came from, if any
type source struct {
	session *view.Session
	db      *db.DB
}

func (s *source) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// OpenSession loads the dataset from --dataset when given, otherwise from the
// discovered database, and builds a view session over it.
func OpenSession() (*source, error) {
	var (
		ds  *dataset.Dataset
		d   *db.DB
		err error
	)
	if datasetPath != "" {
		ds, err = dataset.ReadFile(datasetPath)
		if err != nil {
			return nil, err
		}
	} else {
		d, err = OpenDatabase()
		if err != nil {
			return nil, err
		}
		ds, err = d.LoadDataset()
		if errors.Is(err, db.ErrEmpty) {
			d.Close()
			return nil, fmt.Errorf("%s is empty; run atlas import first", d.Path)
		}
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("loading map: %w", err)
		}
	}

	session, err := view.New(ds, view.Options{
		Graph:       graph.Options{EdgeSize: cfg.Edges.Size, Logger: slog.Default()},
		Reducer:     cfg.Reducer(),
		NeighborCap: cfg.Neighbors.Cap,
		Logger:      slog.Default(),
	})
	if err != nil {
		if d != nil {
			d.Close()
		}
		return nil, err
	}
	return &source{session: session, db: d}, nil
}

// ResolveNode finds a node by full key, key prefix, or label search. The
// label search uses the database index when one is open and a
// case-insensitive substring scan otherwise.
func ResolveNode(src *source, reference string) (*graph.Node, error) {
	store := src.session.Store()

	// 1. Exact key
	if n, ok := store.Node(reference); ok {
		return n, nil
	}

	// 2. Key prefix
	var prefixed []string
	if src.db != nil {
		rows, err := src.db.SearchByKeyPrefix(reference, 10)
		if err == nil {
			for _, r := range rows {
				prefixed = append(prefixed, r.Key)
			}
		}
	} else {
		for _, n := range store.Nodes() {
			if strings.HasPrefix(n.Key, reference) {
				prefixed = append(prefixed, n.Key)
			}
		}
	}
	if n, err := pick(store, reference, prefixed, "a full node key"); n != nil || err != nil {
		return n, err
	}

	// 3. Label search
	var labelled []string
	if src.db != nil {
		rows, err := src.db.SearchNodes(reference)
		if err == nil {
			for _, r := range rows {
				labelled = append(labelled, r.Key)
			}
		}
	} else {
		q := strings.ToLower(reference)
		for _, n := range store.Nodes() {
			if strings.Contains(strings.ToLower(n.Label), q) {
				labelled = append(labelled, n.Key)
			}
		}
	}
	if n, err := pick(store, reference, labelled, "a node key"); n != nil || err != nil {
		return n, err
	}

	return nil, fmt.Errorf("node not found: %s", reference)
}

// pick returns the single match, an ambiguity error listing up to ten
// candidates, or nothing when keys is empty.
func pick(store *graph.Store, reference string, keys []string, hint string) (*graph.Node, error) {
	switch len(keys) {
	case 0:
		return nil, nil
	case 1:
		n, _ := store.Node(keys[0])
		return n, nil
	}
	limit := min(len(keys), 10)
	lines := make([]string, limit)
	for i := 0; i < limit; i++ {
		label := ""
		if n, ok := store.Node(keys[i]); ok {
			label = n.Label
		}
		lines[i] = fmt.Sprintf("  %s %s", keys[i], label)
	}
	return nil, fmt.Errorf("ambiguous reference '%s'. %d matches:\n%s\nUse %s instead.",
		reference, len(keys), strings.Join(lines, "\n"), hint)
}
