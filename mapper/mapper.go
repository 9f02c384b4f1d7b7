// Package mapper implements the genotype-to-phenotype decoding core of a
// grammar-driven evolutionary search. A genome of integer codons drives
// production choices against a context-free grammar, yielding a phenotype
// string plus structural statistics. Three forward strategies share one
// external contract (validity, phenotype text) while differing in traversal
// order, codon consumption rate, and whether the full derivation tree is
// materialized; the inverse operation reconstructs a genome from an
// existing tree.
//
// Decoding is deterministic, synchronous, and self-contained: identical
// genome, grammar, strategy, and limits always produce an identical
// Result, and concurrent decodes over a shared read-only grammar need no
// locking.
package mapper

import (
	"github.com/gemap-xyz/go-gemap/codefilter"
	"github.com/gemap-xyz/go-gemap/derivation"
	"github.com/gemap-xyz/go-gemap/grammar"
)

// Result is the uniform output of every decoding path. An unfinished
// derivation sets Invalid and leaves Phenotype empty; the remaining
// statistics stay meaningful so callers can still penalize the individual.
type Result struct {
	// Phenotype is the concatenated terminal text. Empty when Invalid.
	Phenotype string

	// Tree is the materialized derivation. Set only by the tree-building
	// strategy and the tree-input path.
	Tree *derivation.Tree

	// Nodes counts derivation nodes under the producing strategy's own
	// convention.
	Nodes int

	// MaxDepth is the maximum derivation depth reached (root = 1).
	MaxDepth int

	// UsedCodons counts codons logically consumed, including wrap-around
	// re-reads.
	UsedCodons int

	// Invalid reports that a bound halted decoding with non-terminals
	// still unexpanded.
	Invalid bool

	// Genome is the mapped genome: the private copy on the genome path,
	// the reconstructed sequence on the tree path.
	Genome []int
}

// Map is the single decoding entry point. Exactly one of genome and tree
// must be supplied; violating that, or supplying an empty genome, is a
// caller contract breach reported as an error with no partial result.
//
// On the genome path the strategy follows cfg: UseFullTree selects the
// tree-building strategy, otherwise PositionIndependent selects the
// position-independent one, otherwise the fast-queue one. The caller's
// genome is copied defensively and never aliased or mutated.
//
// On the tree path the genome is sequenced from the tree, unless the tree
// already carries complete cached statistics, in which case they are
// returned unchanged.
func Map(g *grammar.Grammar, genome []int, tree *derivation.Tree, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if tree != nil {
		if genome != nil {
			return nil, ErrBothInputs
		}
		if st := tree.Stats; st != nil {
			return &Result{
				Phenotype:  st.Phenotype,
				Tree:       tree,
				Nodes:      st.Nodes,
				MaxDepth:   st.MaxDepth,
				UsedCodons: st.UsedCodons,
				Genome:     st.Genome,
			}, nil
		}
		return sequence(tree)
	}

	if genome == nil {
		return nil, ErrNoInput
	}
	if len(genome) == 0 {
		return nil, ErrEmptyGenome
	}

	private := make([]int, len(genome))
	copy(private, genome)

	switch {
	case cfg.UseFullTree:
		return mapTree(g, private, cfg), nil
	case cfg.PositionIndependent:
		return mapPositionIndependent(g, private, cfg), nil
	default:
		return mapFastQueue(g, private, cfg), nil
	}
}

// applyFilter runs the embedded-code filter over a completed phenotype
// when the grammar calls for it.
func applyFilter(g *grammar.Grammar, cfg Config, phenotype string) string {
	if !g.HasEmbeddedCode {
		return phenotype
	}
	filter := cfg.Filter
	if filter == nil {
		filter = codefilter.Filter
	}
	return filter(phenotype)
}
