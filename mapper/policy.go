package mapper

import "github.com/gemap-xyz/go-gemap/grammar"

// pending is one frontier entry: a symbol awaiting expansion (or, for
// terminals, emission) and its depth in the derivation.
type pending struct {
	sym   grammar.Symbol
	depth int
}

// expansionPolicy is the strategy-specific half of the queue-driven
// strategies. The shared driver owns the wrap and depth bounds; the policy
// owns the frontier, the choice of which entry to process next, and its
// own node/depth bookkeeping. Each policy keeps its exact historical
// numeric contract, so the two implementations are not interchangeable in
// their statistics, only in their valid/phenotype contract.
type expansionPolicy interface {
	// pending reports whether frontier entries remain to be processed.
	pending() bool

	// anyNonTerminal reports whether the frontier still holds at least one
	// non-terminal. Used by the wrap check only.
	anyNonTerminal() bool

	// usedInput returns the logical codon consumption counter keyed by the
	// wrap check.
	usedInput() int

	// step processes exactly one frontier entry.
	step()

	// depth returns the maximum derivation depth reached so far.
	depth() int
}

// runPolicy is the shared bounded driver loop for the queue strategies.
// The wrap check runs before each step, so it can fire repeatedly while
// the read index sits on a genome boundary. The final wrap increment does
// not cut the iteration short: the step it guards still runs, and the loop
// condition stops the next one. Returns the number of wraps performed.
func runPolicy(p expansionPolicy, cfg Config, genomeLen int) int {
	wraps := -1
	for wraps < cfg.MaxWraps && p.pending() && p.depth() <= cfg.MaxTreeDepth {
		if u := p.usedInput(); u > 0 && u%genomeLen == 0 && p.anyNonTerminal() {
			wraps++
		}
		p.step()
	}
	return wraps
}
