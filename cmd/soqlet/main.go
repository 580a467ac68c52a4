// Command soqlet loads record data files into an in-memory store and runs
// one SOQL-like query against them.
//
// Each data file becomes one collection named after the file base name, so
// Event.json is queried as "FROM Event". JSON files hold either a map of
// record id to record or a bare array of records; parquet files hold one
// record per row.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/soqlet/soqlet/output"
	"github.com/soqlet/soqlet/soql"
	"github.com/soqlet/soqlet/store"
)

var (
	queryFlag   = flag.String("q", "", "query (e.g. \"SELECT Name FROM Event WHERE Location = 'Boardroom'\")")
	formatFlag  = flag.String("f", "jsonl", "Output format: json, jsonl, csv, table")
	verboseFlag = flag.Bool("v", false, "Verbose logging to stderr")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <data>...\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Run a SOQL-like query against record data files.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -q \"SELECT Name, Location FROM Event\" Event.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -f table -q \"SELECT Id FROM Task WHERE DueDate = TODAY\" Task.parquet\n", os.Args[0])
	}

	flag.Parse()

	level := slog.LevelWarn
	if *verboseFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *queryFlag == "" {
		fmt.Fprintf(os.Stderr, "Error: missing -q query\n\n")
		flag.Usage()
		os.Exit(1)
	}
	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: missing data file argument\n\n")
		flag.Usage()
		os.Exit(1)
	}

	st := store.NewMemStore()
	for _, path := range flag.Args() {
		object := objectName(path)
		if err := loadFile(st, object, path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger.Debug("loaded collection",
			"object", object,
			"records", st.Collection(object).Len(),
			"file", path)
	}

	engine := soql.New(st)
	res, err := engine.Execute(*queryFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("query executed", "rows", len(res.Results))

	var formatter output.Formatter
	switch *formatFlag {
	case "json", "jsonl":
		formatter = output.NewJSONFormatter(os.Stdout)
	case "csv":
		formatter = output.NewCSVFormatter(os.Stdout)
	case "table":
		formatter = output.NewTableFormatter(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Error: unsupported format '%s'\n", *formatFlag)
		fmt.Fprintf(os.Stderr, "Supported formats: json, jsonl, csv, table\n")
		os.Exit(1)
	}

	if err := formatter.Format(res.Results); err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
}

// objectName derives the collection name from a data file path:
// testdata/Event.json becomes Event.
func objectName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func loadFile(st *store.MemStore, object, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return store.LoadJSON(st, object, path)
	case ".parquet":
		return store.LoadParquet(st, object, path)
	default:
		return fmt.Errorf("unsupported data file %s: expected .json or .parquet", path)
	}
}
