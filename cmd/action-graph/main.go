package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/kibbyd/courtsim/internal/actiongraph"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to the action-graph sqlite db (built by `simulate --action_graph`)")
	decayHalflife := flag.Float64("decay_halflife_hours", 0, "if > 0, apply exponential decay with this half-life before reporting")
	action := flag.String("action", "", "list observed outcome edges for this action (blank = list every edge)")
	minWeight := flag.Float64("min_weight", 0, "drop edges below this weight")
	jsonOut := flag.Bool("json", false, "output as JSON instead of a table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: action-graph --db path/to/graph.db [--decay_halflife_hours H] [--action NAME] [--min_weight W] [--json]")
		os.Exit(2)
	}

	db, err := sql.Open("sqlite", *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	store, err := actiongraph.NewStore(db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init store: %v\n", err)
		os.Exit(1)
	}

	if *decayHalflife > 0 {
		deleted, err := store.DecayAll(*decayHalflife)
		if err != nil {
			fmt.Fprintf(os.Stderr, "decay: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "decayed all edges (half-life %.1fh), pruned %d below 0.01\n", *decayHalflife, deleted)
	}

	edges, err := store.Neighbors(*action, *minWeight)
	if err != nil {
		fmt.Fprintf(os.Stderr, "query: %v\n", err)
		os.Exit(1)
	}

	if *jsonOut {
		data, err := json.MarshalIndent(edges, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "marshal: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}

	printTable(edges)
}

// #endregion main

// #region output

func printTable(edges []actiongraph.Edge) {
	fmt.Printf("%-24s  %-16s  %8s  %s\n", "Action", "Outcome", "Weight", "Updated")
	fmt.Printf("%-24s  %-16s  %8s  %s\n", "------------------------", "----------------", "--------", "--------------------")
	for _, e := range edges {
		fmt.Printf("%-24s  %-16s  %8.4f  %s\n", e.Action, e.Outcome, e.Weight, e.UpdatedAt.Format("2006-01-02T15:04:05Z"))
	}
	fmt.Printf("\n%d edge(s)\n", len(edges))
}

// #endregion output
