package trie

import (
	"testing"
)

func TestSearchPhraseVisitsOnlyWhatItNeeds(t *testing.T) {
	tr := New()
	letters := "abcdefghijklmnopqrstuvwxyz"
	for _, x := range letters {
		for _, y := range letters {
			for _, z := range letters {
				tr.AddWord("q" + string([]rune{x, y, z}))
			}
		}
	}

	words, visited, err := tr.searchPhrase("q", 3)
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{"qaaa", "qaab", "qaac"}
	for i := range expected {
		if i >= len(words) || words[i] != expected[i] {
			t.Fatalf("Got %v but should be %v", words, expected)
		}
	}

	// q, its 26 children, their 676 children, then the first three words.
	if want := 1 + 26 + 676 + 3; visited != want {
		t.Errorf("searchPhrase visited %d nodes, expected %d of %d", visited, want, tr.NumNodes())
	}

	_, visited, _ = tr.searchPhrase("q", 0)
	if visited != 0 {
		t.Errorf("searchPhrase with no room for results visited %d nodes", visited)
	}
}
