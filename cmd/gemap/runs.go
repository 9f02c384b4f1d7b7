package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gemap-xyz/go-gemap/storage"
)

func runs(args []string) error {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	best := fs.String("best", "", "Show the given run's most parsimonious valid records")
	limit := fs.Int("limit", 10, "Maximum records to show with --best")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: gemap runs <runs.db> [options]

List stored decoding runs.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("database file required")
	}

	store, err := storage.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer store.Close()

	if *best != "" {
		records, err := store.BestByNodes(*best, *limit)
		if err != nil {
			return err
		}
		for _, rec := range records {
			fmt.Printf("#%-5d nodes=%-5d depth=%-4d codons=%-5d %s\n",
				rec.Index, rec.Nodes, rec.MaxDepth, rec.UsedCodons, rec.Phenotype)
		}
		return nil
	}

	list, err := store.ListRuns()
	if err != nil {
		return err
	}
	for _, run := range list {
		fmt.Printf("%s  %-20s %-22s %4d individuals, %4d valid  (%s)\n",
			run.StartedAt.Format("2006-01-02 15:04:05"), run.Name, run.Strategy,
			run.Individuals, run.Valid, run.ID)
	}
	return nil
}
