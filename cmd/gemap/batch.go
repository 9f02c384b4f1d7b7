package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gemap-xyz/go-gemap/cache"
	"github.com/gemap-xyz/go-gemap/engine"
	"github.com/gemap-xyz/go-gemap/mapper"
	"github.com/gemap-xyz/go-gemap/results"
	"github.com/gemap-xyz/go-gemap/runlog"
	"github.com/gemap-xyz/go-gemap/storage"
)

func batch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	genomesFile := fs.String("genomes", "", "File of genomes, one comma-separated genome per line (required)")
	output := fs.String("output", "", "Output JSON results file (required)")
	name := fs.String("name", "", "Run name (optional)")
	depth := fs.Int("depth", 17, "Maximum tree depth")
	wraps := fs.Int("wraps", 0, "Maximum genome wraps")
	fullTree := fs.Bool("tree", false, "Use the tree-building strategy")
	pi := fs.Bool("pi", false, "Use the position-independent strategy")
	workers := fs.Int("workers", 0, "Worker pool size (0 = one per CPU)")
	cacheSize := fs.Int("cache", 4096, "Result cache size (0 disables caching)")
	dbPath := fs.String("db", "", "Also persist the run to this SQLite database")
	csvPath := fs.String("csv", "", "Also stream records to this CSV file")
	phenotypes := fs.Bool("phenotypes", false, "Store phenotype text in records")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: gemap batch <grammar.json> [options]

Map a file of genomes and write structured run results.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  gemap batch grammar.json --genomes pop.txt --output run.json
  gemap batch grammar.json --genomes pop.txt --output run.json --pi --db runs.db --csv run.csv
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("grammar file required")
	}
	if *genomesFile == "" || *output == "" {
		fs.Usage()
		return fmt.Errorf("--genomes and --output are required")
	}

	g, err := loadGrammar(fs.Arg(0))
	if err != nil {
		return err
	}
	genomes, err := loadGenomes(*genomesFile)
	if err != nil {
		return err
	}

	cfg := mapper.Config{
		MaxTreeDepth:        *depth,
		MaxWraps:            *wraps,
		UseFullTree:         *fullTree,
		PositionIndependent: *pi,
	}

	eng := engine.NewEngine(g, cfg)
	if *workers > 0 {
		eng.SetWorkers(*workers)
	}
	if *cacheSize > 0 {
		eng.SetCache(cache.NewResultCache(*cacheSize))
	}

	start := time.Now()
	outcomes, stats := eng.MapBatch(context.Background(), genomes)

	builder := results.NewBuilder().
		WithModel(g, *name).
		WithStrategy(cfg)
	records := make([]runlog.Record, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err != nil {
			return fmt.Errorf("genome %d: %w", o.Index, o.Err)
		}
		builder.Append(o.Index, o.Result, *phenotypes)
		rec := runlog.Record{
			Index:      o.Index,
			Timestamp:  time.Now(),
			Nodes:      o.Result.Nodes,
			MaxDepth:   o.Result.MaxDepth,
			UsedCodons: o.Result.UsedCodons,
			Invalid:    o.Result.Invalid,
		}
		if *phenotypes {
			rec.Phenotype = o.Result.Phenotype
		}
		records = append(records, rec)
	}
	run := builder.Build(time.Since(start).Seconds())

	if err := results.WriteJSON(run, *output); err != nil {
		return err
	}

	if *csvPath != "" {
		if err := writeCSVLog(*csvPath, records); err != nil {
			return err
		}
	}

	if *dbPath != "" {
		if err := persistRun(*dbPath, run, *name, records); err != nil {
			return err
		}
	}

	fmt.Printf("Mapped %d genomes (%d valid, %d invalid, %d cache hits) in %s\n",
		stats.Total, stats.Valid, stats.Invalid, stats.CacheHits, stats.Elapsed)
	fmt.Printf("Results written to %s\n", *output)
	return nil
}

func loadGenomes(path string) ([][]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open genomes: %w", err)
	}
	defer f.Close()

	var genomes [][]int
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		genome, err := parseGenome(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		genomes = append(genomes, genome)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan genomes: %w", err)
	}
	return genomes, nil
}

func writeCSVLog(path string, records []runlog.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := runlog.NewCSVWriter(f)
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return w.Flush()
}

func persistRun(dbPath string, run *results.Results, name string, records []runlog.Record) error {
	store, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveRun(storage.Run{
		ID:          run.Metadata.RunID,
		Name:        name,
		Strategy:    run.Metadata.Strategy,
		StartedAt:   run.Metadata.Timestamp,
		Individuals: run.Data.Summary.Individuals,
		Valid:       run.Data.Summary.Valid,
	}); err != nil {
		return err
	}
	for _, rec := range records {
		if err := store.AppendRecord(run.Metadata.RunID, rec); err != nil {
			return err
		}
	}
	return nil
}
