// Package engine provides a batch harness for decoding whole populations.
// Each decode is self-contained and the grammar view is read-only, so a
// population maps embarrassingly parallel across a worker pool; the engine
// owns the pool, an optional shared result cache, and per-batch statistics.
package engine

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gemap-xyz/go-gemap/cache"
	"github.com/gemap-xyz/go-gemap/grammar"
	"github.com/gemap-xyz/go-gemap/mapper"
)

// Outcome pairs one genome's decoding result with its batch index.
type Outcome struct {
	Index  int
	Result *mapper.Result
	Err    error
}

// BatchStats summarizes one MapBatch call.
type BatchStats struct {
	Total     int
	Valid     int
	Invalid   int
	Errors    int
	CacheHits int
	Elapsed   time.Duration
}

// Engine decodes batches of genomes against one shared grammar and
// configuration.
type Engine struct {
	g       *grammar.Grammar
	cfg     mapper.Config
	cache   *cache.ResultCache
	workers int
	log     *slog.Logger
}

// NewEngine creates an engine for the given grammar and configuration,
// defaulting to one worker per CPU and no cache.
func NewEngine(g *grammar.Grammar, cfg mapper.Config) *Engine {
	return &Engine{
		g:       g,
		cfg:     cfg,
		workers: runtime.NumCPU(),
		log:     slog.Default(),
	}
}

// SetCache attaches a shared result cache. Pass nil to disable caching.
func (e *Engine) SetCache(c *cache.ResultCache) {
	e.cache = c
}

// SetWorkers sets the worker pool size. Values below 1 reset to one worker.
func (e *Engine) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	e.workers = n
}

// SetLogger replaces the engine's logger.
func (e *Engine) SetLogger(l *slog.Logger) {
	if l != nil {
		e.log = l
	}
}

// MapBatch decodes every genome in the batch, preserving order: the i-th
// outcome belongs to the i-th genome. Decoding stops early when the
// context is cancelled; undecoded entries report the context error.
func (e *Engine) MapBatch(ctx context.Context, genomes [][]int) ([]Outcome, BatchStats) {
	start := time.Now()
	outcomes := make([]Outcome, len(genomes))

	var cacheHits int64

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < e.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = e.decode(ctx, i, genomes[i], &cacheHits)
			}
		}()
	}

feed:
	for i := range genomes {
		select {
		case <-ctx.Done():
			for j := i; j < len(genomes); j++ {
				outcomes[j] = Outcome{Index: j, Err: ctx.Err()}
			}
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	stats := BatchStats{
		Total:     len(genomes),
		CacheHits: int(atomic.LoadInt64(&cacheHits)),
		Elapsed:   time.Since(start),
	}
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			stats.Errors++
		case o.Result.Invalid:
			stats.Invalid++
		default:
			stats.Valid++
		}
	}

	e.log.Debug("batch mapped",
		"total", stats.Total,
		"valid", stats.Valid,
		"invalid", stats.Invalid,
		"errors", stats.Errors,
		"cache_hits", stats.CacheHits,
		"elapsed", stats.Elapsed)

	return outcomes, stats
}

func (e *Engine) decode(ctx context.Context, idx int, genome []int, cacheHits *int64) Outcome {
	if err := ctx.Err(); err != nil {
		return Outcome{Index: idx, Err: err}
	}
	if e.cache != nil {
		res, hit, err := e.cache.GetOrMap(e.g, genome, e.cfg)
		if hit {
			atomic.AddInt64(cacheHits, 1)
		}
		return Outcome{Index: idx, Result: res, Err: err}
	}
	res, err := mapper.Map(e.g, genome, nil, e.cfg)
	return Outcome{Index: idx, Result: res, Err: err}
}
