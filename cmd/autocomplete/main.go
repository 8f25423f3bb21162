package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/milden6/trie/config"
)

func main() {
	cmd := newRootCommand()
	cobra.CheckErr(cmd.Execute())
}

type app struct {
	v          *viper.Viper
	configPath string
	cfg        *config.Config
	log        zerolog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{v: config.New()}

	rootCmd := &cobra.Command{
		Use:           "autocomplete",
		Short:         "Word autocompletion backed by an in-memory trie",
		SilenceErrors: false,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML config file.")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging.")
	addDictionaryFlags(rootCmd.PersistentFlags())

	bindFlags(a.v, rootCmd.PersistentFlags(), map[string]string{
		"debug":           "server.debug",
		"dir":             "dictionary.dir",
		"source":          "dictionary.sources",
		"case-sensitive":  "dictionary.case_sensitive",
		"skip-unreadable": "dictionary.skip_unreadable",
	})

	rootCmd.AddCommand(buildServeCmd(a))
	rootCmd.AddCommand(buildQueryCmd(a))

	return rootCmd
}

func addDictionaryFlags(flags *pflag.FlagSet) {
	flags.String("dir", "", "Directory of word files. Defaults to the nearest artifacts directory.")
	flags.StringSlice("source", nil, "Extra word file path or http(s) URL. May be repeated.")
	flags.Bool("case-sensitive", false, "Keep the case of words instead of lower-casing them.")
	flags.Bool("skip-unreadable", false, "Skip dictionary sources that cannot be read instead of failing.")
}

// bindFlags maps flag names onto config keys.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for name, key := range keys {
		cobra.CheckErr(v.BindPFlag(key, flags.Lookup(name)))
	}
}

func (a *app) init() error {
	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	level := zerolog.InfoLevel
	if cfg.Server.Debug {
		level = zerolog.DebugLevel
	}
	a.log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	return nil
}
