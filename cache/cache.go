// Package cache provides memoization for genome decoding. Evolutionary
// runs re-decode duplicate genomes constantly (clones survive selection
// unchanged generation after generation), and decoding is deterministic,
// so a result keyed by genome and configuration can be reused as-is.
package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"sync"

	"github.com/gemap-xyz/go-gemap/grammar"
	"github.com/gemap-xyz/go-gemap/mapper"
)

// ResultCache caches decoding results keyed by a hash of the genome and
// the decoding configuration.
type ResultCache struct {
	mu        sync.Mutex
	cache     map[string]*mapper.Result
	order     []string // insertion order, for FIFO eviction
	maxSize   int
	hits      int64
	misses    int64
	evictions int64
}

// NewResultCache creates a cache with the specified maximum size. When the
// cache is full, the oldest entry is evicted (FIFO). Set maxSize to 0 for
// an unlimited cache.
func NewResultCache(maxSize int) *ResultCache {
	return &ResultCache{
		cache:   make(map[string]*mapper.Result),
		maxSize: maxSize,
	}
}

// key builds a deterministic hash over the genome and the configuration
// knobs that affect the decoding outcome.
func key(genome []int, cfg mapper.Config) string {
	h := sha256.New()
	buf := make([]byte, 8)

	binary.BigEndian.PutUint64(buf, uint64(cfg.MaxTreeDepth))
	h.Write(buf)
	binary.BigEndian.PutUint64(buf, uint64(cfg.MaxWraps))
	h.Write(buf)
	flags := byte(0)
	if cfg.UseFullTree {
		flags |= 1
	}
	if cfg.PositionIndependent {
		flags |= 2
	}
	h.Write([]byte{flags})

	for _, codon := range genome {
		binary.BigEndian.PutUint64(buf, uint64(codon))
		h.Write(buf)
	}
	return string(h.Sum(nil))
}

// Get retrieves a cached result for the given genome and configuration.
// Returns nil if not found. The returned result is shared; callers must
// treat it as read-only.
func (c *ResultCache) Get(genome []int, cfg mapper.Config) *mapper.Result {
	k := key(genome, cfg)

	c.mu.Lock()
	defer c.mu.Unlock()

	if res, ok := c.cache[k]; ok {
		c.hits++
		return res
	}
	c.misses++
	return nil
}

// Put stores a result for the given genome and configuration.
func (c *ResultCache) Put(genome []int, cfg mapper.Config, res *mapper.Result) {
	k := key(genome, cfg)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.cache[k]; exists {
		c.cache[k] = res
		return
	}
	if c.maxSize > 0 && len(c.cache) >= c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.cache, oldest)
		c.evictions++
	}
	c.cache[k] = res
	c.order = append(c.order, k)
}

// GetOrMap retrieves a cached result or decodes the genome and caches the
// outcome. The boolean reports a cache hit.
func (c *ResultCache) GetOrMap(g *grammar.Grammar, genome []int, cfg mapper.Config) (*mapper.Result, bool, error) {
	if res := c.Get(genome, cfg); res != nil {
		return res, true, nil
	}
	res, err := mapper.Map(g, genome, nil, cfg)
	if err != nil {
		return nil, false, err
	}
	c.Put(genome, cfg, res)
	return res, false, nil
}

// Clear removes all entries from the cache.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]*mapper.Result)
	c.order = nil
}

// Size returns the current number of cached entries.
func (c *ResultCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

// Stats holds cache statistics.
type Stats struct {
	Size      int
	MaxSize   int
	Hits      int64
	Misses    int64
	Evictions int64
	HitRate   float64
}

// Stats returns cache statistics.
func (c *ResultCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.hits + c.misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}

	return Stats{
		Size:      len(c.cache),
		MaxSize:   c.maxSize,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		HitRate:   hitRate,
	}
}
