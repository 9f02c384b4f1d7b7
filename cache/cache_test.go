package cache

import (
	"testing"

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

func TestResultCacheGetPut(t *testing.T) {
	c := NewResultCache(0)
	cfg := mapper.Config{MaxTreeDepth: 10, MaxWraps: 1}
	genome := []int{4, 7}

	if res := c.Get(genome, cfg); res != nil {
		t.Errorf("Empty cache should miss, got %+v", res)
	}

	res, err := mapper.Map(abGrammar(), genome, nil, cfg)
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}
	c.Put(genome, cfg, res)

	if got := c.Get(genome, cfg); got != res {
		t.Errorf("Expected the cached result back, got %+v", got)
	}
	if c.Size() != 1 {
		t.Errorf("Expected size 1, got %d", c.Size())
	}

	// A different configuration is a different key.
	other := mapper.Config{MaxTreeDepth: 10, MaxWraps: 1, UseFullTree: true}
	if got := c.Get(genome, other); got != nil {
		t.Error("Configuration must be part of the cache key")
	}
}

func TestResultCacheFIFOEviction(t *testing.T) {
	c := NewResultCache(2)
	cfg := mapper.Config{MaxTreeDepth: 10, MaxWraps: 1}
	g := abGrammar()

	genomes := [][]int{{1}, {3}, {5}}
	for _, genome := range genomes {
		res, err := mapper.Map(g, genome, nil, cfg)
		if err != nil {
			t.Fatalf("Map failed: %v", err)
		}
		c.Put(genome, cfg, res)
	}

	if c.Size() != 2 {
		t.Errorf("Expected size capped at 2, got %d", c.Size())
	}
	if c.Get(genomes[0], cfg) != nil {
		t.Error("Oldest entry should have been evicted")
	}
	if c.Get(genomes[1], cfg) == nil || c.Get(genomes[2], cfg) == nil {
		t.Error("Newer entries should survive eviction")
	}
	if stats := c.Stats(); stats.Evictions != 1 {
		t.Errorf("Expected 1 eviction, got %d", stats.Evictions)
	}
}

func TestResultCacheGetOrMap(t *testing.T) {
	c := NewResultCache(0)
	cfg := mapper.Config{MaxTreeDepth: 10, MaxWraps: 1}
	g := abGrammar()
	genome := []int{4, 7}

	first, hit, err := c.GetOrMap(g, genome, cfg)
	if err != nil {
		t.Fatalf("GetOrMap failed: %v", err)
	}
	if hit {
		t.Error("First lookup must be a miss")
	}
	if first.Phenotype != "ab" {
		t.Errorf("Expected phenotype \"ab\", got %q", first.Phenotype)
	}

	second, hit, err := c.GetOrMap(g, genome, cfg)
	if err != nil {
		t.Fatalf("GetOrMap failed: %v", err)
	}
	if !hit || second != first {
		t.Errorf("Second lookup should hit and return the same result, hit=%v", hit)
	}

	// Decoding errors are not cached.
	if _, _, err := c.GetOrMap(g, []int{}, cfg); err == nil {
		t.Error("Expected error for empty genome")
	}
}

func TestResultCacheStats(t *testing.T) {
	c := NewResultCache(8)
	cfg := mapper.Config{MaxTreeDepth: 10, MaxWraps: 1}
	g := abGrammar()

	for i := 0; i < 2; i++ {
		if _, _, err := c.GetOrMap(g, []int{4, 7}, cfg); err != nil {
			t.Fatalf("GetOrMap failed: %v", err)
		}
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("Expected 1 hit and 1 miss, got %d and %d", stats.Hits, stats.Misses)
	}
	if stats.HitRate != 0.5 {
		t.Errorf("Expected hit rate 0.5, got %g", stats.HitRate)
	}
	if stats.MaxSize != 8 || stats.Size != 1 {
		t.Errorf("Unexpected sizes: %+v", stats)
	}

	c.Clear()
	if c.Size() != 0 {
		t.Errorf("Clear should empty the cache, size %d", c.Size())
	}
}
