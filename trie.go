package trie

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// ErrInvalidWord is returned for words that are not valid UTF-8.
var ErrInvalidWord = errors.New("trie: word is not valid UTF-8")

// Trie is a prefix tree of words. The zero value is not usable; create one
// with New.
type Trie struct {
	root          *Node
	caseSensitive bool

	numWords int
	numNodes int // not counting the root
}

// Option configures a Trie at construction.
type Option func(*Trie)

// WithCaseSensitive keeps the case of words instead of folding them to lower
// case. It cannot be changed after the Trie is built.
func WithCaseSensitive() Option {
	return func(t *Trie) {
		t.caseSensitive = true
	}
}

// New creates an empty Trie.
func New(opts ...Option) *Trie {
	t := &Trie{root: newNode()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// CaseSensitive reports whether the trie was built with WithCaseSensitive.
func (t *Trie) CaseSensitive() bool {
	return t.caseSensitive
}

// Root returns the node representing the empty string.
func (t *Trie) Root() *Node {
	return t.root
}

// Canonical returns the form of word that is stored in the trie. word must
// be valid UTF-8.
func (t *Trie) Canonical(word string) string {
	word = strings.TrimSpace(word)
	if t.caseSensitive {
		return word
	}
	return strings.ToLower(word)
}

// canonical is Canonical for words that may not be valid UTF-8. Invalid
// bytes would otherwise all fold into U+FFFD and share one path.
func (t *Trie) canonical(word string) (string, bool) {
	if !utf8.ValidString(word) {
		return "", false
	}
	return t.Canonical(word), true
}

// AddWord adds a word to the trie. Adding a word twice has no further effect.
// The empty string is a legal word and marks the root. It returns false only
// if word is not valid UTF-8, in which case nothing is added.
func (t *Trie) AddWord(word string) bool {
	word, ok := t.canonical(word)
	if !ok {
		return false
	}

	node := t.root
	for _, ch := range word {
		child, ok := node.children[ch]
		if !ok {
			child = newNode()
			node.children[ch] = child
			t.numNodes++
		}
		node = child
	}

	if !node.word {
		node.word = true
		t.numWords++
	}
	return true
}

// pathStep is one edge taken on the way down to a word, remembered so that
// the walk can be replayed bottom-up.
type pathStep struct {
	ch     rune
	parent *Node
}

// RemoveWord removes a word from the trie and prunes every node that no
// longer leads to a word. It returns false without changing anything if the
// word was not stored, including when it only exists as a prefix of other
// words, or when it is not valid UTF-8.
func (t *Trie) RemoveWord(word string) bool {
	word, ok := t.canonical(word)
	if !ok {
		return false
	}

	var path []pathStep
	node := t.root
	for _, ch := range word {
		child, ok := node.children[ch]
		if !ok {
			return false
		}
		path = append(path, pathStep{ch: ch, parent: node})
		node = child
	}

	if !node.word {
		return false
	}
	node.word = false
	t.numWords--

	for i := len(path) - 1; i >= 0; i-- {
		if node == t.root || !node.isLeaf() || node.word {
			break
		}
		step := path[i]
		delete(step.parent.children, step.ch)
		t.numNodes--
		node = step.parent
	}

	return true
}

// SearchWord returns true if word was added and not removed since. A string
// that is only a prefix of stored words is not found, and neither is
// anything that is not valid UTF-8.
func (t *Trie) SearchWord(word string) bool {
	word, ok := t.canonical(word)
	if !ok {
		return false
	}
	node := t.find(word)
	return node != nil && node.word
}

// IsEmpty returns true if the root has no children. This is a structural
// check: a trie whose only word is the empty string is empty.
func (t *Trie) IsEmpty() bool {
	return t.root.isLeaf()
}

// NumWords returns the number of distinct words stored.
func (t *Trie) NumWords() int {
	return t.numWords
}

// NumNodes returns the number of nodes below the root.
func (t *Trie) NumNodes() int {
	return t.numNodes
}

// LoadFileContents adds every non-blank line of r as a word. Lines may be of
// any length. If reading fails, or a line is not valid UTF-8, the error is
// returned and the words added so far are kept.
func (t *Trie) LoadFileContents(r io.Reader) error {
	br := bufio.NewReader(r)
	for n := 1; ; n++ {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("reading words: %w", err)
		}

		if word := strings.TrimSpace(line); word != "" {
			if !t.AddWord(word) {
				return fmt.Errorf("line %d: %w", n, ErrInvalidWord)
			}
		}

		if err == io.EOF {
			return nil
		}
	}
}

// find follows an already canonical word from the root. It returns nil if
// the path does not exist.
func (t *Trie) find(word string) *Node {
	node := t.root
	for _, ch := range word {
		node = node.children[ch]
		if node == nil {
			return nil
		}
	}
	return node
}
