// Package derivation implements the derivation tree built and consumed by
// the genotype-to-phenotype mapper. The tree is arena-backed: nodes live in
// a single slice indexed by integer handles, children are index lists, and
// the parent link is a plain index. A node and its subtree share the arena
// and are discarded together with the tree.
package derivation

import (
	"github.com/gemap-xyz/go-gemap/grammar"
)

// NoParent is the parent index of the root node.
const NoParent = -1

// Node is one symbol instance in a derivation. Codon is meaningful only
// when Expanded is set; ID is the preorder sequence number assigned during
// mapping (0 when unassigned, terminals keep 0).
type Node struct {
	Sym      grammar.Symbol
	Codon    int
	Expanded bool
	ID       int
	Depth    int // 1-based, root = 1
	Parent   int
	Children []int
}

// Tree is an arena of derivation nodes rooted at index 0.
type Tree struct {
	nodes []Node

	// Stats caches complete mapping statistics for a fully mapped tree.
	// Nil until the tree has been successfully mapped or sequenced.
	Stats *Stats
}

// Stats holds the complete mapping statistics of a fully expanded tree.
type Stats struct {
	Phenotype  string
	Genome     []int
	Nodes      int
	MaxDepth   int
	UsedCodons int
}

// NewTree creates a tree holding only a root node for the given symbol.
func NewTree(root grammar.Symbol) *Tree {
	return &Tree{
		nodes: []Node{{Sym: root, Depth: 1, Parent: NoParent}},
	}
}

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node at the given arena index.
func (t *Tree) Node(i int) *Node {
	return &t.nodes[i]
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	return &t.nodes[0]
}

// AddChild appends a child node for the given symbol under the parent index
// and returns the new node's arena index. The child depth is one below the
// parent's.
func (t *Tree) AddChild(parent int, sym grammar.Symbol) int {
	idx := len(t.nodes)
	t.nodes = append(t.nodes, Node{
		Sym:    sym,
		Depth:  t.nodes[parent].Depth + 1,
		Parent: parent,
	})
	t.nodes[parent].Children = append(t.nodes[parent].Children, idx)
	return idx
}

// Walk visits the tree in preorder, children in left-to-right order. The
// visit function receives the arena index and node; returning false stops
// the walk.
func (t *Tree) Walk(visit func(idx int, n *Node) bool) {
	if len(t.nodes) == 0 {
		return
	}
	t.walk(0, visit)
}

func (t *Tree) walk(idx int, visit func(int, *Node) bool) bool {
	if !visit(idx, &t.nodes[idx]) {
		return false
	}
	for _, c := range t.nodes[idx].Children {
		if !t.walk(c, visit) {
			return false
		}
	}
	return true
}

// IsComplete reports whether every non-terminal node in the tree has been
// expanded. A complete tree is a valid input for genome sequencing.
func (t *Tree) IsComplete() bool {
	complete := true
	t.Walk(func(_ int, n *Node) bool {
		if n.Sym.IsNonTerminal() && !n.Expanded {
			complete = false
			return false
		}
		return true
	})
	return complete
}
