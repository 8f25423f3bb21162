package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/milden6/trie"
	"github.com/milden6/trie/dictionary"
	"github.com/milden6/trie/livesearch"
)

func buildServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the dictionary and serve live search over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}

	cmd.Flags().String("host", "localhost", "Host to listen on.")
	cmd.Flags().Int("port", 5000, "Port to listen on.")
	cmd.Flags().Bool("allow-mutations", false, "Allow adding and removing words over HTTP.")
	cmd.Flags().String("title", "", "Heading of the search page.")
	bindFlags(a.v, cmd.Flags(), map[string]string{
		"host":            "server.host",
		"port":            "server.port",
		"allow-mutations": "server.allow_mutations",
		"title":           "server.title",
	})

	return cmd
}

func buildQueryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query PREFIX...",
		Short: "Load the dictionary and print completions for each prefix",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.query(cmd.Context(), cmd.OutOrStdout(), args, a.cfg.Search.DefaultLimit)
		},
	}

	cmd.Flags().Int("limit", trie.DefaultMaxResults, "Maximum completions per prefix. Overrides search.default_limit.")
	bindFlags(a.v, cmd.Flags(), map[string]string{
		"limit": "search.default_limit",
	})

	return cmd
}

// buildTrie loads every configured dictionary source into a new trie.
func (a *app) buildTrie(ctx context.Context) (*trie.Trie, error) {
	var opts []trie.Option
	if a.cfg.Dictionary.CaseSensitive {
		opts = append(opts, trie.WithCaseSensitive())
	}
	t := trie.New(opts...)

	loader := dictionary.NewLoader(
		dictionary.WithIgnore(a.cfg.Dictionary.Ignore),
		dictionary.WithSkipUnreadable(a.cfg.Dictionary.SkipUnreadable),
		dictionary.WithRetries(a.cfg.Dictionary.HTTPRetries),
		dictionary.WithLogger(a.log),
	)

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	sources, err := loader.Sources(cwd, a.cfg.Dictionary.Dir, a.cfg.Dictionary.Sources...)
	if err != nil {
		return nil, err
	}

	if _, err := loader.Build(ctx, t, sources...); err != nil {
		return nil, err
	}
	return t, nil
}

func (a *app) serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	t, err := a.buildTrie(ctx)
	if err != nil {
		return err
	}

	opts := livesearch.Options{
		DefaultLimit:   a.cfg.Search.DefaultLimit,
		MaxLimit:       a.cfg.Search.MaxLimit,
		AllowMutations: a.cfg.Server.AllowMutations,
		Title:          a.cfg.Server.Title,
	}
	server := livesearch.NewServer(a.cfg.Server.Addr(), livesearch.NewStore(t), opts, a.log)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		a.log.Info().Msg("Received signal, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during server shutdown: %w", err)
	}
	return <-serverErrors
}

func (a *app) query(ctx context.Context, out io.Writer, prefixes []string, limit int) error {
	t, err := a.buildTrie(ctx)
	if err != nil {
		return err
	}

	for _, prefix := range prefixes {
		words, err := t.SearchPhrase(prefix, limit)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s:", prefix)
		for _, word := range words {
			fmt.Fprintf(out, " %s", word)
		}
		fmt.Fprintln(out)
	}
	return nil
}
