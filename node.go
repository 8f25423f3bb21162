package trie

import (
	"golang.org/x/exp/slices"
)

// Node is a single position in the trie. It is owned by its parent's child
// map, or by the Trie in the case of the root.
type Node struct {
	children map[rune]*Node
	word     bool
}

func newNode() *Node {
	return &Node{children: make(map[rune]*Node)}
}

// IsWord returns true if the path ending at this node spells a stored word.
func (n *Node) IsWord() bool {
	return n.word
}

// Child returns the child reached by ch, or nil.
func (n *Node) Child(ch rune) *Node {
	return n.children[ch]
}

// NumChildren returns the number of outgoing edges.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Keys returns the characters of the outgoing edges in ascending order.
func (n *Node) Keys() []rune {
	keys := make([]rune, 0, len(n.children))
	for ch := range n.children {
		keys = append(keys, ch)
	}
	slices.Sort(keys)
	return keys
}

func (n *Node) isLeaf() bool {
	return len(n.children) == 0
}
