package trie

import (
	"errors"
	"unicode/utf8"
)

// DefaultMaxResults is the number of completions callers ask for when the
// user did not say.
const DefaultMaxResults = 5

// ErrNegativeLimit is returned by SearchPhrase when asked for fewer than zero
// results.
var ErrNegativeLimit = errors.New("trie: max results must not be negative")

// EnumFn is called for each node visited by Enumerate. word is the canonical
// string spelled by the path to the node, and final tells whether it is a
// stored word.
type EnumFn = func(word string, final bool) EnumerationResult

// EnumerationResult is returned by the enumeration function to indicate whether
// enumeration should continue below this node or stop altogether
type EnumerationResult = int

const (
	// Continue enumerating all words below this node
	Continue EnumerationResult = iota

	// Skip will skip all words below this node
	Skip

	// Stop will immediately stop enumerating words
	Stop
)

type queued struct {
	node *Node
	word string
}

// Enumerate calls fn for every node at or below prefix, breadth-first. Nodes
// closer to the prefix are visited first, and siblings in ascending rune
// order. Nothing is visited if no stored word starts with prefix, or if
// prefix is not valid UTF-8.
func (t *Trie) Enumerate(prefix string, fn EnumFn) {
	t.enumerate(prefix, fn)
}

// enumerate is Enumerate, returning the number of nodes visited.
func (t *Trie) enumerate(prefix string, fn EnumFn) int {
	prefix, ok := t.canonical(prefix)
	if !ok {
		return 0
	}
	start := t.find(prefix)
	if start == nil {
		return 0
	}

	visited := 0
	queue := []queued{{node: start, word: prefix}}
	for len(queue) > 0 {
		item := queue[0]
		queue[0] = queued{}
		queue = queue[1:]

		visited++
		switch fn(item.word, item.node.word) {
		case Stop:
			return visited
		case Skip:
			continue
		}

		for _, ch := range item.node.Keys() {
			queue = append(queue, queued{
				node: item.node.children[ch],
				word: item.word + string(ch),
			})
		}
	}
	return visited
}

// SearchPhrase returns up to maxResults stored words that start with prefix,
// shortest first. The prefix itself is included if it is a word. An unknown
// prefix gives an empty result, not an error.
func (t *Trie) SearchPhrase(prefix string, maxResults int) ([]string, error) {
	words, _, err := t.searchPhrase(prefix, maxResults)
	return words, err
}

// searchPhrase is SearchPhrase, also returning the number of nodes visited.
func (t *Trie) searchPhrase(prefix string, maxResults int) ([]string, int, error) {
	if maxResults < 0 {
		return nil, 0, ErrNegativeLimit
	}
	if !utf8.ValidString(prefix) {
		return nil, 0, ErrInvalidWord
	}

	words := []string{}
	if maxResults == 0 {
		return words, 0, nil
	}

	visited := t.enumerate(prefix, func(word string, final bool) EnumerationResult {
		if !final {
			return Continue
		}
		words = append(words, word)
		if len(words) == maxResults {
			return Stop
		}
		return Continue
	})

	return words, visited, nil
}
