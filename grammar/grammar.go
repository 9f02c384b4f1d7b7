// Package grammar implements the context-free grammar model consumed by
// the genotype-to-phenotype mapper. A grammar owns a set of Rules, one per
// non-terminal, each holding an ordered list of Productions. Grammars are
// built programmatically and are immutable once decoding starts: every
// decode shares the same read-only grammar view.
package grammar

import (
	"fmt"
	"sort"
)

// SymbolKind distinguishes terminal text from non-terminals that must be
// expanded further.
type SymbolKind int

const (
	// Terminal is final output text.
	Terminal SymbolKind = iota
	// NonTerminal names a rule that must be expanded.
	NonTerminal
)

// Symbol is one grammar symbol: either terminal text or a non-terminal name.
type Symbol struct {
	Kind SymbolKind
	Text string
}

// T creates a terminal symbol with the given text.
func T(text string) Symbol {
	return Symbol{Kind: Terminal, Text: text}
}

// NT creates a non-terminal symbol with the given rule name.
func NT(name string) Symbol {
	return Symbol{Kind: NonTerminal, Text: name}
}

// IsNonTerminal reports whether the symbol must be expanded further.
func (s Symbol) IsNonTerminal() bool {
	return s.Kind == NonTerminal
}

// Production is one ordered choice for expanding a non-terminal.
type Production struct {
	Symbols []Symbol
}

// Prod creates a production from the given symbols.
func Prod(symbols ...Symbol) Production {
	return Production{Symbols: symbols}
}

// NonTerminalCount returns the number of non-terminal symbols in the
// production.
func (p Production) NonTerminalCount() int {
	count := 0
	for _, s := range p.Symbols {
		if s.IsNonTerminal() {
			count++
		}
	}
	return count
}

// Rule holds the ordered production choices for one non-terminal.
type Rule struct {
	Name        string
	Productions []Production
}

// ChoiceCount returns the number of production choices for the rule.
func (r *Rule) ChoiceCount() int {
	return len(r.Productions)
}

// Grammar is a complete context-free grammar: a start symbol plus one rule
// per non-terminal. HasEmbeddedCode marks grammars whose terminals carry
// embedded code fragments that need post-filtering after mapping.
type Grammar struct {
	Start           Symbol
	Rules           map[string]*Rule
	HasEmbeddedCode bool

	order []string // rule insertion order, for deterministic listings
}

// NewGrammar creates an empty grammar whose start symbol is the named
// non-terminal.
func NewGrammar(start string) *Grammar {
	return &Grammar{
		Start: NT(start),
		Rules: make(map[string]*Rule),
	}
}

// AddRule adds a rule for the named non-terminal with the given production
// choices. Adding a rule twice replaces the previous productions.
func (g *Grammar) AddRule(name string, productions ...Production) *Rule {
	if _, exists := g.Rules[name]; !exists {
		g.order = append(g.order, name)
	}
	r := &Rule{Name: name, Productions: productions}
	g.Rules[name] = r
	return r
}

// Productions returns the ordered production choices and the choice count
// for the named non-terminal. Unknown names return a nil slice and zero.
func (g *Grammar) Productions(name string) ([]Production, int) {
	r, ok := g.Rules[name]
	if !ok {
		return nil, 0
	}
	return r.Productions, len(r.Productions)
}

// NonTerminals returns the non-terminal names in rule insertion order.
func (g *Grammar) NonTerminals() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// IsNonTerminal reports whether the grammar owns a rule with the given name.
func (g *Grammar) IsNonTerminal(name string) bool {
	_, ok := g.Rules[name]
	return ok
}

// Validate checks structural soundness: the start symbol has a rule, every
// rule has at least one production, and every non-terminal referenced by a
// production has a rule of its own.
func (g *Grammar) Validate() error {
	if g.Start.Text == "" {
		return fmt.Errorf("grammar: %w", ErrNoStartSymbol)
	}
	if _, ok := g.Rules[g.Start.Text]; !ok {
		return fmt.Errorf("grammar: start symbol %q: %w", g.Start.Text, ErrRuleNotFound)
	}
	names := make([]string, 0, len(g.Rules))
	for name := range g.Rules {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r := g.Rules[name]
		if len(r.Productions) == 0 {
			return fmt.Errorf("grammar: rule %q: %w", name, ErrEmptyRule)
		}
		for _, p := range r.Productions {
			for _, s := range p.Symbols {
				if s.IsNonTerminal() {
					if _, ok := g.Rules[s.Text]; !ok {
						return fmt.Errorf("grammar: rule %q references %q: %w",
							name, s.Text, ErrRuleNotFound)
					}
				}
			}
		}
	}
	return nil
}
