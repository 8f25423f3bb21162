/*
Package trie is an in-memory prefix tree dictionary used to autocomplete words
as a user types them.

A Trie stores words one character at a time. Each node owns a map from a rune
to its child and a flag saying whether the path from the root to that node
spells a stored word. Nodes are created while adding words and pruned again
when words are removed, so the tree only ever holds paths that lead to a word.

Every word is canonicalized before it touches the tree: surrounding whitespace
is trimmed and, unless the Trie was created with WithCaseSensitive, the word is
lower-cased. "Apple", " apple " and "APPLE" are therefore the same word by
default.

In general, to use it you create a Trie with trie.New() and add words, either
one at a time with AddWord or in bulk from a line-oriented reader with
LoadFileContents. You can then query it:

	t := trie.New()
	t.AddWord("app")
	t.AddWord("apple")

	t.SearchWord("APP")              // true
	words, _ := t.SearchPhrase("ap", trie.DefaultMaxResults)
	// words == []string{"app", "apple"}

SearchPhrase walks the tree breadth-first from the prefix, so shorter
completions come first, and among completions of the same length the order is
ascending by rune. It stops as soon as it has enough words instead of
collecting the whole subtree. Enumerate exposes the same walk with a callback
that can Skip a branch or Stop altogether.

A Trie does no locking. Searches may run concurrently with each other, but any
mutation must be serialized against every other call. The livesearch package
wraps a Trie in a read/write lock for use behind an HTTP server.

IsEmpty is structural: it reports whether the root has children. A trie holding
only the empty string therefore reports itself empty.
*/
package trie
