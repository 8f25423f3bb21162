package dictionary_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milden6/trie"
	"github.com/milden6/trie/dictionary"
)

func memFs(t *testing.T, files map[string]string) afero.Fs {
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
	return fs
}

func fastClient() *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.RetryMax = 1
	c.RetryWaitMin = time.Millisecond
	c.RetryWaitMax = time.Millisecond
	c.Logger = nil
	return c
}

func TestBuildFromArtifacts(t *testing.T) {
	fs := memFs(t, map[string]string{
		"/app/artifacts/words_alpha.txt": "aardvark\naardvarks\n\nabacus\n",
		"/app/artifacts/more.txt":        "Bat\nball\n",
		"/app/artifacts/.DS_Store":       "\x00garbage\n",
	})
	loader := dictionary.NewLoader(dictionary.WithFs(fs))

	sources, err := loader.Sources("/app", "")
	require.NoError(t, err)
	require.Len(t, sources, 2)

	tr := trie.New()
	stats, err := loader.Build(context.Background(), tr, sources...)
	require.NoError(t, err)

	assert.Equal(t, dictionary.Stats{Sources: 2, Skipped: 0, Words: 5}, stats)
	assert.True(t, tr.SearchWord("aardvarks"))
	assert.True(t, tr.SearchWord("bat"))
	assert.False(t, tr.SearchWord("\x00garbage"))
}

func TestBuildAbortsOnUnreadableSource(t *testing.T) {
	fs := memFs(t, map[string]string{"/words/a.txt": "apple\n"})
	loader := dictionary.NewLoader(dictionary.WithFs(fs))

	tr := trie.New()
	stats, err := loader.Build(context.Background(), tr, "/words/a.txt", "/words/missing.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.txt")

	// words from the first source stay
	assert.True(t, tr.SearchWord("apple"))
	assert.Equal(t, 1, stats.Sources)
	assert.Equal(t, 1, stats.Words)
}

func TestBuildSkipsUnreadableSource(t *testing.T) {
	fs := memFs(t, map[string]string{"/words/b.txt": "bat\n"})
	loader := dictionary.NewLoader(dictionary.WithFs(fs), dictionary.WithSkipUnreadable(true))

	tr := trie.New()
	stats, err := loader.Build(context.Background(), tr, "/words/missing.txt", "/words/b.txt")
	require.NoError(t, err)

	assert.Equal(t, dictionary.Stats{Sources: 1, Skipped: 1, Words: 1}, stats)
	assert.True(t, tr.SearchWord("bat"))
}

func TestBuildCanceled(t *testing.T) {
	fs := memFs(t, map[string]string{"/words/a.txt": "apple\n"})
	loader := dictionary.NewLoader(dictionary.WithFs(fs))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr := trie.New()
	_, err := loader.Build(ctx, tr, "/words/a.txt")
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, tr.IsEmpty())
}

func TestSourcesWithExtra(t *testing.T) {
	loader := dictionary.NewLoader(dictionary.WithFs(afero.NewMemMapFs()))

	sources, err := loader.Sources("/app", "", "https://example.com/words.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/words.txt"}, sources)

	_, err = loader.Sources("/app", "")
	assert.ErrorIs(t, err, dictionary.ErrNoArtifactDir)

	_, err = loader.Sources("/app", "/not/there")
	assert.Error(t, err)
}

func TestBuildFromOsFs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "words.txt"), []byte("zebra\nzebu\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.txt"), nil, 0o644))

	loader := dictionary.NewLoader()
	sources, err := loader.Sources("", dir)
	require.NoError(t, err)

	tr := trie.New()
	stats, err := loader.Build(context.Background(), tr, sources...)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Sources)
	assert.Equal(t, 2, stats.Words)
	words, err := tr.SearchPhrase("ze", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"zebu", "zebra"}, words)
}

func TestBuildFromHTTP(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/words.txt" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, "kiwi\nkumquat\n")
	}))
	defer ts.Close()

	loader := dictionary.NewLoader(dictionary.WithHTTPClient(fastClient()))

	tr := trie.New()
	stats, err := loader.Build(context.Background(), tr, ts.URL+"/words.txt")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Words)
	assert.True(t, tr.SearchWord("kumquat"))

	_, err = loader.Build(context.Background(), tr, ts.URL+"/missing.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestBuildRetriesHTTP(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, "lime\n")
	}))
	defer ts.Close()

	loader := dictionary.NewLoader(dictionary.WithHTTPClient(fastClient()))

	tr := trie.New()
	_, err := loader.Build(context.Background(), tr, ts.URL)
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.True(t, tr.SearchWord("lime"))
}
