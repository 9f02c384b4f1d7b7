package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gemap-xyz/go-gemap/grammar"
	"github.com/gemap-xyz/go-gemap/mapper"
)

func mapCmd(args []string) error {
	fs := flag.NewFlagSet("map", flag.ExitOnError)
	genomeFlag := fs.String("genome", "", "Comma-separated codons (required)")
	depth := fs.Int("depth", 17, "Maximum tree depth")
	wraps := fs.Int("wraps", 0, "Maximum genome wraps")
	fullTree := fs.Bool("tree", false, "Use the tree-building strategy")
	pi := fs.Bool("pi", false, "Use the position-independent strategy")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: gemap map <grammar.json> [options]

Map a genome to a phenotype against a grammar.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  gemap map grammar.json --genome "4,7,2"
  gemap map grammar.json --genome "4,7,2" --tree --depth 10 --wraps 2
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("grammar file required")
	}
	if *genomeFlag == "" {
		fs.Usage()
		return fmt.Errorf("--genome is required")
	}

	g, err := loadGrammar(fs.Arg(0))
	if err != nil {
		return err
	}
	genome, err := parseGenome(*genomeFlag)
	if err != nil {
		return err
	}

	cfg := mapper.Config{
		MaxTreeDepth:        *depth,
		MaxWraps:            *wraps,
		UseFullTree:         *fullTree,
		PositionIndependent: *pi,
	}
	res, err := mapper.Map(g, genome, nil, cfg)
	if err != nil {
		return err
	}

	out := map[string]any{
		"strategy":   cfg.Strategy(),
		"phenotype":  res.Phenotype,
		"invalid":    res.Invalid,
		"nodes":      res.Nodes,
		"maxDepth":   res.MaxDepth,
		"usedCodons": res.UsedCodons,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func loadGrammar(path string) (*grammar.Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read grammar: %w", err)
	}
	g, err := grammar.FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

func parseGenome(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	genome := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("bad codon %q: %w", p, err)
		}
		if v < 0 {
			return nil, fmt.Errorf("bad codon %q: codons are non-negative", p)
		}
		genome = append(genome, v)
	}
	return genome, nil
}
