package livesearch

import (
	"io"
	"sync"

	"github.com/milden6/trie"
)

// Store guards a trie so it can be shared by concurrent requests. Searches
// share a read lock; anything that changes the trie takes the write lock.
type Store struct {
	mu   sync.RWMutex
	trie *trie.Trie
}

// NewStore wraps t. t must not be used directly afterwards.
func NewStore(t *trie.Trie) *Store {
	return &Store{trie: t}
}

// Complete returns up to limit words starting with prefix.
func (s *Store) Complete(prefix string, limit int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trie.SearchPhrase(prefix, limit)
}

// Contains reports whether word is stored.
func (s *Store) Contains(word string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trie.SearchWord(word)
}

// Canonical returns the form word is stored under.
func (s *Store) Canonical(word string) string {
	return s.trie.Canonical(word)
}

// Add stores word.
func (s *Store) Add(word string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trie.AddWord(word)
}

// Remove deletes word, returning false if it was not stored.
func (s *Store) Remove(word string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trie.RemoveWord(word)
}

// LoadFileContents adds every line of r while holding the write lock, so a
// Store can be handed to dictionary.Loader.Build.
func (s *Store) LoadFileContents(r io.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trie.LoadFileContents(r)
}

// NumWords returns the number of stored words.
func (s *Store) NumWords() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trie.NumWords()
}
