package mapper

import (
	"strings"

	"github.com/gemap-xyz/go-gemap/grammar"
)

// positionIndependent is the codon-addressed queue strategy. The frontier
// is an ordered production queue plus a mask: the indices of the queue
// entries that are still non-terminals. The next entry to expand is not
// the leftmost one but mask[codon % len(mask)], read at a separate
// position cursor; a second codon then picks the production. Both cursors
// advance by 2 per expansion, so this strategy consumes exactly twice the
// codons-per-expansion of the leftmost strategies. Decoupling genome
// position from syntactic position changes the locality of genetic
// operators, which is why the numeric contract here must stay exact.
//
// Node accounting matches the fast-queue convention; terminals are never
// popped, they stay in the queue and are read off in final queue order.
type positionIndependent struct {
	g        *grammar.Grammar
	s        *stream // production-choice cursor; starts at 1, step 2
	position int     // frontier-pick cursor; starts at 0, advances by 2
	queue    []pending
	mask     []int
	nodes    int
	maxDepth int
}

func newPositionIndependent(g *grammar.Grammar, s *stream) *positionIndependent {
	return &positionIndependent{
		g:        g,
		s:        s,
		queue:    []pending{{sym: g.Start, depth: 1}},
		mask:     []int{0},
		nodes:    1,
		maxDepth: 1,
	}
}

func (p *positionIndependent) pending() bool {
	return len(p.mask) > 0
}

func (p *positionIndependent) anyNonTerminal() bool {
	for _, it := range p.queue {
		if it.sym.IsNonTerminal() {
			return true
		}
	}
	return false
}

func (p *positionIndependent) usedInput() int {
	return p.s.used
}

func (p *positionIndependent) depth() int {
	return p.maxDepth
}

// step expands one mask-addressed non-terminal: one codon picks the queue
// slot, the next picks the production. The chosen slot is spliced out and
// replaced by the production's symbols, preserving the order of the rest
// of the queue, and the mask is rebuilt from the mutated queue.
func (p *positionIndependent) step() {
	maskIndex := p.mask[p.s.at(p.position)%len(p.mask)]
	it := p.queue[maskIndex]
	p.position += 2

	if it.depth > p.maxDepth {
		p.maxDepth = it.depth
	}

	prods, choices := p.g.Productions(it.sym.Text)
	chosen := prods[p.s.choice(choices)]
	p.s.advance()

	children := make([]pending, 0, len(chosen.Symbols))
	ntCount := 0
	for _, sym := range chosen.Symbols {
		children = append(children, pending{sym: sym, depth: it.depth + 1})
		if sym.IsNonTerminal() {
			ntCount++
		}
	}

	spliced := make([]pending, 0, len(p.queue)-1+len(children))
	spliced = append(spliced, p.queue[:maskIndex]...)
	spliced = append(spliced, children...)
	spliced = append(spliced, p.queue[maskIndex+1:]...)
	p.queue = spliced

	if ntCount > 0 {
		p.nodes += ntCount
	} else {
		p.nodes++
	}

	p.mask = p.mask[:0]
	for i, entry := range p.queue {
		if entry.sym.IsNonTerminal() {
			p.mask = append(p.mask, i)
		}
	}
}

// mapPositionIndependent decodes a genome with the position-independent
// strategy. The result is invalid iff the mask is non-empty when a bound
// halts the loop; otherwise every queue entry is a terminal and the
// phenotype is their concatenation in final queue order.
func mapPositionIndependent(g *grammar.Grammar, genome []int, cfg Config) *Result {
	p := newPositionIndependent(g, newStream(genome, 1, 2))
	runPolicy(p, cfg, len(genome))

	res := &Result{
		Genome:     genome,
		Nodes:      p.nodes,
		MaxDepth:   p.maxDepth,
		UsedCodons: p.s.used,
	}
	if len(p.mask) > 0 {
		res.Invalid = true
		return res
	}

	parts := make([]string, 0, len(p.queue))
	for _, entry := range p.queue {
		parts = append(parts, entry.sym.Text)
	}
	res.Phenotype = applyFilter(g, cfg, strings.Join(parts, ""))
	return res
}
