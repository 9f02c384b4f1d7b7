package mapper

import (
	"strings"

	"github.com/gemap-xyz/go-gemap/grammar"
)

// fastQueue is the leftmost queue strategy. The frontier is a deque of
// pending (symbol, depth) pairs; expanded children are pushed onto the
// front in production order, so the next entry popped is always the
// leftmost pending symbol. No tree is materialized.
//
// Node accounting convention (kept from the reference mapper): nodes and
// max depth start at 1 for the root, popped terminals contribute output
// only, and each expansion adds the number of non-terminal children it
// produced, or 1 for a pure-terminal production.
type fastQueue struct {
	g        *grammar.Grammar
	s        *stream
	queue    []pending
	output   []string
	nodes    int
	maxDepth int
}

func newFastQueue(g *grammar.Grammar, s *stream) *fastQueue {
	return &fastQueue{
		g:        g,
		s:        s,
		queue:    []pending{{sym: g.Start, depth: 1}},
		nodes:    1,
		maxDepth: 1,
	}
}

func (p *fastQueue) pending() bool {
	return len(p.queue) > 0
}

func (p *fastQueue) anyNonTerminal() bool {
	for _, it := range p.queue {
		if it.sym.IsNonTerminal() {
			return true
		}
	}
	return false
}

func (p *fastQueue) usedInput() int {
	return p.s.used
}

func (p *fastQueue) depth() int {
	return p.maxDepth
}

// step pops the leftmost frontier entry. Terminals are emitted; a
// non-terminal consumes one codon to pick a production and pushes the
// production's symbols onto the front of the queue in order.
func (p *fastQueue) step() {
	it := p.queue[0]
	p.queue = p.queue[1:]

	if it.depth > p.maxDepth {
		p.maxDepth = it.depth
	}

	if !it.sym.IsNonTerminal() {
		p.output = append(p.output, it.sym.Text)
		return
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
	p.queue = append(children, p.queue...)

	if ntCount > 0 {
		p.nodes += ntCount
	} else {
		p.nodes++
	}
}

// mapFastQueue decodes a genome with the fast-queue strategy. The result
// is invalid iff frontier entries remain when a bound halts the loop.
func mapFastQueue(g *grammar.Grammar, genome []int, cfg Config) *Result {
	p := newFastQueue(g, newStream(genome, 0, 1))
	runPolicy(p, cfg, len(genome))

	res := &Result{
		Genome:     genome,
		Nodes:      p.nodes,
		MaxDepth:   p.maxDepth,
		UsedCodons: p.s.used,
	}
	if len(p.queue) > 0 {
		res.Invalid = true
		return res
	}
	res.Phenotype = applyFilter(g, cfg, strings.Join(p.output, ""))
	return res
}
