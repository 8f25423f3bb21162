package dictionary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"golang.org/x/exp/mmap"
)

// Target is what a Loader fills with words. *trie.Trie satisfies it.
type Target interface {
	LoadFileContents(r io.Reader) error
	NumWords() int
}

// Stats summarizes a Build.
type Stats struct {
	Sources int // sources loaded successfully
	Skipped int // sources that failed and were skipped
	Words   int // words added to the target
}

// Loader finds dictionary sources and feeds them to a Target.
type Loader struct {
	fs             afero.Fs
	httpClient     *retryablehttp.Client
	ignore         []string
	skipUnreadable bool
	log            zerolog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithFs sets the filesystem local sources are read from. Files on the OS
// filesystem are memory-mapped; other filesystems are read through afero.
func WithFs(fs afero.Fs) Option {
	return func(l *Loader) {
		l.fs = fs
	}
}

// WithHTTPClient sets the client used for http and https sources.
func WithHTTPClient(c *retryablehttp.Client) Option {
	return func(l *Loader) {
		l.httpClient = c
	}
}

// WithRetries sets how many times a remote source is retried.
func WithRetries(n int) Option {
	return func(l *Loader) {
		l.httpClient.RetryMax = n
	}
}

// WithIgnore replaces DefaultIgnore.
func WithIgnore(names []string) Option {
	return func(l *Loader) {
		l.ignore = names
	}
}

// WithSkipUnreadable makes Build log and skip a source it cannot read instead
// of aborting.
func WithSkipUnreadable(skip bool) Option {
	return func(l *Loader) {
		l.skipUnreadable = skip
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Loader) {
		l.log = log
	}
}

// NewLoader creates a Loader reading from the OS filesystem.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		fs:     afero.NewOsFs(),
		ignore: DefaultIgnore,
		log:    zerolog.Nop(),
	}
	client := retryablehttp.NewClient()
	client.RetryMax = 4
	l.httpClient = client

	for _, opt := range opts {
		opt(l)
	}

	if l.httpClient == client {
		client.Logger = leveledLogger{l.log}
	}
	return l
}

// Sources lists the word files in dir, or in the artifacts directory found
// from cwd when dir is empty, followed by extra.
func (l *Loader) Sources(cwd, dir string, extra ...string) ([]string, error) {
	if dir == "" {
		found, err := ArtifactDir(l.fs, cwd)
		if err != nil {
			if len(extra) > 0 {
				return extra, nil
			}
			return nil, err
		}
		dir = found
	}

	files, err := Files(l.fs, dir, l.ignore)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	return append(files, extra...), nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

type mappedFile struct {
	*io.SectionReader
	io.Closer
}

// Open opens a single source for reading.
func (l *Loader) Open(ctx context.Context, source string) (io.ReadCloser, error) {
	if isRemote(source) {
		return l.fetch(ctx, source)
	}

	if _, ok := l.fs.(*afero.OsFs); ok {
		r, err := mmap.Open(source)
		if err != nil {
			return nil, err
		}
		return mappedFile{io.NewSectionReader(r, 0, int64(r.Len())), r}, nil
	}

	return l.fs.Open(source)
}

func (l *Loader) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create a new request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", url, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to download %s, status: %s", url, resp.Status)
	}

	return resp.Body, nil
}

func (l *Loader) load(ctx context.Context, target Target, source string) error {
	r, err := l.Open(ctx, source)
	if err != nil {
		return err
	}
	defer r.Close()

	return target.LoadFileContents(r)
}

// Build loads every source into target in order. Words from sources loaded
// before a failure stay in target.
func (l *Loader) Build(ctx context.Context, target Target, sources ...string) (Stats, error) {
	var stats Stats
	before := target.NumWords()

	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		words := target.NumWords()
		if err := l.load(ctx, target, source); err != nil {
			if !l.skipUnreadable {
				stats.Words = target.NumWords() - before
				return stats, fmt.Errorf("loading %s: %w", source, err)
			}
			l.log.Warn().Err(err).Str("source", source).Msg("Skipping unreadable dictionary source")
			stats.Skipped++
			continue
		}

		stats.Sources++
		l.log.Debug().
			Str("source", source).
			Int("words", target.NumWords()-words).
			Msg("Loaded dictionary source")
	}

	stats.Words = target.NumWords() - before
	l.log.Info().
		Int("sources", stats.Sources).
		Int("skipped", stats.Skipped).
		Int("words", stats.Words).
		Msg("Dictionary built")

	return stats, nil
}

// leveledLogger sends retryablehttp's logging to zerolog.
type leveledLogger struct {
	log zerolog.Logger
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log.Error().Fields(keysAndValues).Msg(msg)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Info().Fields(keysAndValues).Msg(msg)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log.Warn().Fields(keysAndValues).Msg(msg)
}
