package mapper

import "fmt"

// Config carries the decoding limits and strategy selection for one mapping
// call. It is an explicit value threaded through every strategy; there is no
// process-wide mutable configuration.
type Config struct {
	// MaxTreeDepth bounds the derivation depth (root = 1). Must be >= 1.
	MaxTreeDepth int

	// MaxWraps bounds how often the genome may be re-read from the start
	// while non-terminals remain unexpanded. Must be >= 0.
	MaxWraps int

	// UseFullTree selects the tree-building strategy, which materializes
	// the complete derivation tree. Takes precedence over
	// PositionIndependent.
	UseFullTree bool

	// PositionIndependent selects the position-independent strategy, which
	// consumes codon pairs and decouples genome position from syntactic
	// position.
	PositionIndependent bool

	// Filter post-processes the phenotype of grammars with embedded code.
	// Nil selects codefilter.Filter.
	Filter func(string) string
}

// DefaultConfig returns a configuration with common defaults: depth limit
// 17, no wrapping, fast-queue strategy.
func DefaultConfig() Config {
	return Config{
		MaxTreeDepth: 17,
		MaxWraps:     0,
	}
}

// Validate checks the configured limits.
func (c Config) Validate() error {
	if c.MaxTreeDepth < 1 {
		return fmt.Errorf("mapper: max tree depth %d: %w", c.MaxTreeDepth, ErrBadLimit)
	}
	if c.MaxWraps < 0 {
		return fmt.Errorf("mapper: max wraps %d: %w", c.MaxWraps, ErrBadLimit)
	}
	return nil
}

// Strategy returns the name of the forward strategy the configuration
// selects: "tree", "position-independent", or "fast-queue".
func (c Config) Strategy() string {
	switch {
	case c.UseFullTree:
		return "tree"
	case c.PositionIndependent:
		return "position-independent"
	default:
		return "fast-queue"
	}
}
