package mapper

import (
	"strings"

	"github.com/gemap-xyz/go-gemap/derivation"
	"github.com/gemap-xyz/go-gemap/grammar"
)

// treeMapper is the depth-first, leftmost strategy that materializes the
// full derivation tree. State shared across the recursion lives here; the
// current depth is a call-local value, as each branch of the recursion
// carries its own.
//
// Accounting convention (kept from the reference mapper, and deliberately
// not unified with the queue strategies): node ids come from the running
// node counter, and a branch whose production holds no non-terminal
// children earns one extra depth and node increment when it closes. Depth
// bookkeeping therefore sits one above the queue strategies' for the same
// derivation.
type treeMapper struct {
	g        *grammar.Grammar
	cfg      Config
	s        *stream
	tree     *derivation.Tree
	output   []string
	nodes    int
	maxDepth int
	invalid  bool
}

// expand maps the non-terminal node at the given arena index, consuming
// codons depth-first. Halting leaves the node unexpanded and marks the
// mapping invalid; statistics keep accumulating so an invalid result still
// reports meaningful counts.
func (m *treeMapper) expand(idx, depth int) {
	if m.invalid ||
		m.s.used >= m.s.len()*(m.cfg.MaxWraps+1) ||
		m.maxDepth > m.cfg.MaxTreeDepth {
		m.invalid = true
		return
	}

	m.nodes++
	depth++
	node := m.tree.Node(idx)
	node.ID, node.Depth = m.nodes, depth

	prods, choices := m.g.Productions(node.Sym.Text)
	node.Codon, node.Expanded = m.s.peek(), true
	chosen := prods[node.Codon%choices]
	m.s.advance()

	for _, sym := range chosen.Symbols {
		child := m.tree.AddChild(idx, sym)
		if sym.IsNonTerminal() {
			m.expand(child, depth)
		} else {
			m.output = append(m.output, sym.Text)
		}
	}

	hasNTChild := false
	for _, c := range m.tree.Node(idx).Children {
		if m.tree.Node(c).Sym.IsNonTerminal() {
			hasNTChild = true
			break
		}
	}
	if !hasNTChild {
		// The branch terminates here; close it with the extra depth and
		// node increment this strategy's accounting is built on.
		depth++
		m.nodes++
	}

	if !m.invalid {
		if depth > m.maxDepth {
			m.maxDepth = depth
		}
		if m.maxDepth > m.cfg.MaxTreeDepth {
			m.invalid = true
		}
	}
}

// mapTree decodes a genome with the tree-building strategy, returning the
// materialized derivation tree alongside the statistics. On a valid
// mapping the tree caches its complete statistics, making a later
// tree-input dispatch idempotent.
func mapTree(g *grammar.Grammar, genome []int, cfg Config) *Result {
	m := &treeMapper{
		g:    g,
		cfg:  cfg,
		s:    newStream(genome, 0, 1),
		tree: derivation.NewTree(g.Start),
	}
	m.expand(0, 0)

	res := &Result{
		Genome:     genome,
		Tree:       m.tree,
		Nodes:      m.nodes,
		MaxDepth:   m.maxDepth,
		UsedCodons: m.s.used,
		Invalid:    m.invalid,
	}
	if m.invalid {
		return res
	}

	res.Phenotype = applyFilter(g, cfg, strings.Join(m.output, ""))
	m.tree.Stats = &derivation.Stats{
		Phenotype:  res.Phenotype,
		Genome:     genome,
		Nodes:      res.Nodes,
		MaxDepth:   res.MaxDepth,
		UsedCodons: res.UsedCodons,
	}
	return res
}
