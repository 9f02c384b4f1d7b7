package mapper

import "errors"

// Error types for the mapper package. These report caller contract
// breaches; an unfinished derivation is not an error but a Result with
// Invalid set.
var (
	// ErrNoInput is returned when neither a genome nor a tree is supplied.
	ErrNoInput = errors.New("neither genome nor tree supplied")

	// ErrBothInputs is returned when both a genome and a tree are supplied.
	ErrBothInputs = errors.New("both genome and tree supplied")

	// ErrEmptyGenome is returned when the genome has no codons.
	ErrEmptyGenome = errors.New("empty genome")

	// ErrIncompleteTree is returned when sequencing a tree that still
	// contains unexpanded non-terminals.
	ErrIncompleteTree = errors.New("tree contains unexpanded non-terminals")

	// ErrBadLimit is returned for out-of-range configuration limits.
	ErrBadLimit = errors.New("limit out of range")
)
