package mapper

import (
	"fmt"
	"strings"

	"github.com/gemap-xyz/go-gemap/derivation"
)

// sequence reconstructs a genome from a fully expanded derivation tree in
// one preorder traversal: expanded non-terminals contribute their stored
// codon in visitation order, terminals contribute their text to the
// phenotype. The reported depth is the traversal's maximum depth plus one,
// keeping the numbers consistent with the forward tree strategy's
// convention. An unexpanded non-terminal is a caller contract breach.
func sequence(t *derivation.Tree) (*Result, error) {
	genome := make([]int, 0, t.Len())
	parts := make([]string, 0, t.Len())
	nodes, maxDepth := 0, 0
	var walkErr error

	var walk func(idx, depth int) bool
	walk = func(idx, depth int) bool {
		n := t.Node(idx)
		nodes++
		if depth > maxDepth {
			maxDepth = depth
		}
		if n.Sym.IsNonTerminal() {
			if !n.Expanded {
				walkErr = fmt.Errorf("mapper: node %d (%s): %w", idx, n.Sym.Text, ErrIncompleteTree)
				return false
			}
			genome = append(genome, n.Codon)
		} else {
			parts = append(parts, n.Sym.Text)
		}
		for _, c := range n.Children {
			if !walk(c, depth+1) {
				return false
			}
		}
		return true
	}
	walk(0, 1)
	if walkErr != nil {
		return nil, walkErr
	}

	res := &Result{
		Phenotype:  strings.Join(parts, ""),
		Genome:     genome,
		Tree:       t,
		Nodes:      nodes,
		MaxDepth:   maxDepth + 1,
		UsedCodons: len(genome),
	}
	t.Stats = &derivation.Stats{
		Phenotype:  res.Phenotype,
		Genome:     res.Genome,
		Nodes:      res.Nodes,
		MaxDepth:   res.MaxDepth,
		UsedCodons: res.UsedCodons,
	}
	return res, nil
}
