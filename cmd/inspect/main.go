package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/kibbyd/courtsim/internal/era"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	eraName := flag.String("era", "", "era name to load (blank = built-in default)")
	comparePath := flag.String("compare", "", "second era name to diff against")
	setStr := flag.String("set", "", "comma-separated name=value tunable overrides, applied before printing")
	jsonOut := flag.Bool("json", false, "output as JSON instead of a table")
	flag.Parse()

	a, rep := loadEra(*eraName)
	printReport(*eraName, rep)

	if *setStr != "" {
		updates, err := parseUpdates(*setStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "parse --set: %v\n", err)
			os.Exit(2)
		}
		if err := era.ApplyUpdates(a, updates); err != nil {
			fmt.Fprintf(os.Stderr, "apply updates: %v\n", err)
			os.Exit(1)
		}
	}

	if *comparePath != "" {
		b, repB := loadEra(*comparePath)
		printReport(*comparePath, repB)
		runDiffMode(*eraName, a, *comparePath, b, *jsonOut)
		return
	}

	runListMode(a, *jsonOut)
}

// #endregion main

// #region load

func loadEra(name string) (*era.Era, *era.Report) {
	if name == "" {
		return era.DefaultEra(), &era.Report{}
	}
	return era.LoadFromFile(name)
}

func printReport(name string, rep *era.Report) {
	label := name
	if label == "" {
		label = "builtin_default"
	}
	for _, w := range rep.Warnings {
		fmt.Fprintf(os.Stderr, "[%s] warning: %s\n", label, w)
	}
	for _, e := range rep.Errors {
		fmt.Fprintf(os.Stderr, "[%s] error: %s\n", label, e)
	}
}

func parseUpdates(spec string) ([]era.Update, error) {
	var updates []era.Update
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("malformed override %q, want name=value", part)
		}
		name := strings.TrimSpace(kv[0])
		valStr := strings.TrimSpace(kv[1])
		relative := strings.HasPrefix(valStr, "+") || strings.HasPrefix(valStr, "-")
		val, err := strconv.ParseFloat(valStr, 64)
		if err != nil {
			return nil, fmt.Errorf("override %q: %w", part, err)
		}
		updates = append(updates, era.Update{Name: name, Value: val, Relative: relative})
	}
	return updates, nil
}

// #endregion load

// #region list-mode

type tunableRow struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func sortedTunables(e *era.Era) []tunableRow {
	names := make([]string, 0, len(era.Registry))
	for name := range era.Registry {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]tunableRow, len(names))
	for i, name := range names {
		rows[i] = tunableRow{Name: name, Value: era.Registry[name].Get(e)}
	}
	return rows
}

func runListMode(e *era.Era, jsonOut bool) {
	rows := sortedTunables(e)
	if jsonOut {
		printJSON(rows)
		return
	}
	fmt.Printf("%-44s  %12s\n", "Tunable", "Value")
	fmt.Printf("%-44s  %12s\n", strings.Repeat("-", 44), strings.Repeat("-", 12))
	for _, r := range rows {
		fmt.Printf("%-44s  %12.6f\n", r.Name, r.Value)
	}
}

// #endregion list-mode

// #region diff-mode

type diffRow struct {
	Name string  `json:"name"`
	A    float64 `json:"a"`
	B    float64 `json:"b"`
}

func runDiffMode(labelA string, a *era.Era, labelB string, b *era.Era, jsonOut bool) {
	if labelA == "" {
		labelA = "builtin_default"
	}
	if labelB == "" {
		labelB = "builtin_default"
	}

	names := make([]string, 0, len(era.Registry))
	for name := range era.Registry {
		names = append(names, name)
	}
	sort.Strings(names)

	var diffs []diffRow
	for _, name := range names {
		t := era.Registry[name]
		av, bv := t.Get(a), t.Get(b)
		if av != bv {
			diffs = append(diffs, diffRow{Name: name, A: av, B: bv})
		}
	}

	if jsonOut {
		printJSON(diffs)
		return
	}

	fmt.Printf("\n%-44s  %12s  %12s\n", "Tunable", labelA, labelB)
	fmt.Printf("%-44s  %12s  %12s\n", strings.Repeat("-", 44), strings.Repeat("-", 12), strings.Repeat("-", 12))
	for _, d := range diffs {
		fmt.Printf("%-44s  %12.6f  %12.6f\n", d.Name, d.A, d.B)
	}
	fmt.Printf("\n%d of %d tunables differ\n", len(diffs), len(names))
}

// #endregion diff-mode

// #region output

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal json: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

// #endregion output
