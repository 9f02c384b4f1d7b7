package derivation

import (
	"reflect"
	"testing"

	"github.com/gemap-xyz/go-gemap/grammar"
)

func TestTreeAddChild(t *testing.T) {
	tree := NewTree(grammar.NT("S"))

	root := tree.Root()
	if root.Depth != 1 || root.Parent != NoParent {
		t.Errorf("Root should sit at depth 1 with no parent, got %+v", root)
	}

	a := tree.AddChild(0, grammar.T("a"))
	s := tree.AddChild(0, grammar.NT("S"))
	b := tree.AddChild(s, grammar.T("b"))

	if tree.Len() != 4 {
		t.Fatalf("Expected 4 nodes, got %d", tree.Len())
	}
	if !reflect.DeepEqual(tree.Root().Children, []int{a, s}) {
		t.Errorf("Root children %v, want [%d %d]", tree.Root().Children, a, s)
	}
	if tree.Node(s).Depth != 2 || tree.Node(b).Depth != 3 {
		t.Errorf("Child depths should follow the parent: got %d and %d",
			tree.Node(s).Depth, tree.Node(b).Depth)
	}
	if tree.Node(b).Parent != s {
		t.Errorf("Expected parent %d, got %d", s, tree.Node(b).Parent)
	}
}

func TestTreeWalkPreorder(t *testing.T) {
	tree := NewTree(grammar.NT("S"))
	tree.AddChild(0, grammar.T("a"))
	s := tree.AddChild(0, grammar.NT("S"))
	tree.AddChild(s, grammar.T("b"))

	var order []string
	tree.Walk(func(_ int, n *Node) bool {
		order = append(order, n.Sym.Text)
		return true
	})
	if want := []string{"S", "a", "S", "b"}; !reflect.DeepEqual(order, want) {
		t.Errorf("Preorder %v, want %v", order, want)
	}

	// Returning false stops the walk immediately.
	visited := 0
	tree.Walk(func(idx int, _ *Node) bool {
		visited++
		return idx == 0
	})
	if visited != 2 {
		t.Errorf("Walk should stop after the visit returning false, visited %d", visited)
	}
}

func TestTreeIsComplete(t *testing.T) {
	tree := NewTree(grammar.NT("S"))
	tree.Node(0).Expanded = true
	tree.AddChild(0, grammar.T("a"))
	s := tree.AddChild(0, grammar.NT("S"))

	if tree.IsComplete() {
		t.Error("Tree with an unexpanded non-terminal must not be complete")
	}

	tree.Node(s).Expanded = true
	tree.AddChild(s, grammar.T("b"))
	if !tree.IsComplete() {
		t.Error("Tree with every non-terminal expanded should be complete")
	}
}
