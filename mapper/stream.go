package mapper

// stream is a wrap-aware cursor over a read-only genome. The read index is
// monotonically increasing and wraps modulo the genome length; step is the
// number of codons logically consumed per advance (1 for the leftmost
// strategies, 2 for the position-independent strategy, which spends codon
// pairs).
type stream struct {
	genome []int
	used   int
	step   int
}

func newStream(genome []int, used, step int) *stream {
	return &stream{genome: genome, used: used, step: step}
}

func (s *stream) len() int {
	return len(s.genome)
}

// at reads the codon at an arbitrary logical index, wrapping as needed.
func (s *stream) at(i int) int {
	return s.genome[i%len(s.genome)]
}

// peek reads the codon at the current read index without consuming it.
func (s *stream) peek() int {
	return s.genome[s.used%len(s.genome)]
}

// choice maps the current codon onto one of n production choices.
func (s *stream) choice(n int) int {
	return s.peek() % n
}

// advance consumes the current codon(s), moving the read index by step.
func (s *stream) advance() {
	s.used += s.step
}

// atBoundary reports whether the read index sits on a genome-length
// multiple past the start, i.e. a wrap point.
func (s *stream) atBoundary() bool {
	return s.used > 0 && s.used%len(s.genome) == 0
}
