package grammar

import "errors"

// Error types for the grammar package.
var (
	// ErrNoStartSymbol is returned when a grammar has no start symbol.
	ErrNoStartSymbol = errors.New("no start symbol")

	// ErrRuleNotFound is returned when a referenced non-terminal has no rule.
	ErrRuleNotFound = errors.New("rule not found")

	// ErrEmptyRule is returned when a rule has no production choices.
	ErrEmptyRule = errors.New("rule has no productions")
)
