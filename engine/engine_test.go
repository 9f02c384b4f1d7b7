package engine

import (
	"context"
	"testing"

	"github.com/gemap-xyz/go-gemap/cache"
	"github.com/gemap-xyz/go-gemap/grammar"
	"github.com/gemap-xyz/go-gemap/mapper"
)

func abGrammar() *grammar.Grammar {
	g := grammar.NewGrammar("S")
	g.AddRule("S",
		grammar.Prod(grammar.T("a"), grammar.NT("S")),
		grammar.Prod(grammar.T("b")),
	)
	return g
}

func TestMapBatchPreservesOrder(t *testing.T) {
	e := NewEngine(abGrammar(), mapper.Config{MaxTreeDepth: 10, MaxWraps: 1})
	e.SetWorkers(4)

	genomes := [][]int{
		{1},          // "b"
		{4, 7},       // "ab"
		{4, 4, 7},    // "aab"
		{4, 4, 4, 7}, // "aaab"
	}
	want := []string{"b", "ab", "aab", "aaab"}

	outcomes, stats := e.MapBatch(context.Background(), genomes)
	if len(outcomes) != len(genomes) {
		t.Fatalf("Expected %d outcomes, got %d", len(genomes), len(outcomes))
	}
	for i, o := range outcomes {
		if o.Err != nil {
			t.Fatalf("genome %d: unexpected error %v", i, o.Err)
		}
		if o.Index != i {
			t.Errorf("outcome %d carries index %d", i, o.Index)
		}
		if o.Result.Phenotype != want[i] {
			t.Errorf("genome %d: phenotype %q, want %q", i, o.Result.Phenotype, want[i])
		}
	}
	if stats.Total != 4 || stats.Valid != 4 || stats.Invalid != 0 || stats.Errors != 0 {
		t.Errorf("Unexpected stats %+v", stats)
	}
}

func TestMapBatchCountsInvalid(t *testing.T) {
	e := NewEngine(abGrammar(), mapper.Config{MaxTreeDepth: 10, MaxWraps: 0})

	outcomes, stats := e.MapBatch(context.Background(), [][]int{
		{4, 7},
		{4, 4}, // never terminates
	})
	if outcomes[0].Result.Invalid || !outcomes[1].Result.Invalid {
		t.Errorf("Expected one valid and one invalid outcome, got %+v", outcomes)
	}
	if stats.Valid != 1 || stats.Invalid != 1 {
		t.Errorf("Unexpected stats %+v", stats)
	}
}

func TestMapBatchCacheHits(t *testing.T) {
	e := NewEngine(abGrammar(), mapper.Config{MaxTreeDepth: 10, MaxWraps: 1})
	e.SetWorkers(1)
	e.SetCache(cache.NewResultCache(0))

	genomes := [][]int{{4, 7}, {4, 7}, {4, 7}, {1}}
	_, stats := e.MapBatch(context.Background(), genomes)
	if stats.CacheHits != 2 {
		t.Errorf("Expected 2 cache hits for 3 duplicate genomes, got %d", stats.CacheHits)
	}
	if stats.Valid != 4 {
		t.Errorf("Expected 4 valid outcomes, got %d", stats.Valid)
	}
}

func TestMapBatchCancelledContext(t *testing.T) {
	e := NewEngine(abGrammar(), mapper.Config{MaxTreeDepth: 10, MaxWraps: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes, stats := e.MapBatch(ctx, [][]int{{4, 7}, {1}, {4, 4, 7}})
	if stats.Errors != 3 {
		t.Errorf("Expected every outcome to report the context error, stats %+v", stats)
	}
	for i, o := range outcomes {
		if o.Err == nil {
			t.Errorf("outcome %d: expected context error", i)
		}
	}
}

func TestMapBatchEmpty(t *testing.T) {
	e := NewEngine(abGrammar(), mapper.Config{MaxTreeDepth: 10})
	outcomes, stats := e.MapBatch(context.Background(), nil)
	if len(outcomes) != 0 || stats.Total != 0 {
		t.Errorf("Empty batch should be a no-op, got %d outcomes, stats %+v", len(outcomes), stats)
	}
}
