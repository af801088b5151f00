// Package main is the contentkit CLI entry point.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/hyperjump/contentkit/internal/cli"
	"github.com/hyperjump/contentkit/internal/config"
	"github.com/hyperjump/contentkit/internal/content"
	"github.com/hyperjump/contentkit/internal/ranking"
	"github.com/hyperjump/contentkit/internal/searchclient"
	"github.com/hyperjump/contentkit/internal/tags"
	"github.com/hyperjump/contentkit/pkg/utils"
)

var version = "dev"

// app carries the state shared by every subcommand once the root has resolved config.
type app struct {
	configPath string
	output     string

	v      *viper.Viper
	cfg    *config.Config
	format cli.OutputFormat
	logger *zap.Logger

	// searcher replaces the HTTP search client when set.
	searcher searchclient.Searcher
}

func main() {
	a := &app{}
	if err := a.rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) rootCmd() *cobra.Command {
	a.v = config.NewViper()
	root := &cobra.Command{
		Use:           "contentkit",
		Short:         "Content metadata and relatedness for MDX sites",
		Long:          "contentkit loads blog posts, release notes and docs from MDX front matter, aggregates tags, ranks related content and talks to the site's search API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file path (default: ./config.yaml when present)")
	flags.StringVarP(&a.output, "output", "o", "text", "output format: text, compact or json")
	flags.Bool("debug", false, "enable debug logging")
	flags.String("content", "", "content root directory")
	flags.Bool("strict", false, "exclude items that fail front matter validation")

	root.AddCommand(a.serveCmd())
	root.AddCommand(a.watchCmd())
	root.AddCommand(a.listCmd())
	root.AddCommand(a.showCmd())
	root.AddCommand(a.tagsCmd())
	root.AddCommand(a.relatedCmd())
	root.AddCommand(a.lintCmd())
	root.AddCommand(a.searchCmd())
	root.AddCommand(a.contactCmd())
	root.AddCommand(a.configCmd())
	root.AddCommand(versionCmd())
	return root
}

// flagKeys maps flag names to the config keys they override.
var flagKeys = map[string]string{
	"debug":   "debug",
	"content": "content.root",
	"strict":  "content.strict",
	"host":    "server.host",
	"port":    "server.port",
	"server":  "search.base_url",
}

// bindFlags binds each flag present in flags to its viper key. Unchanged flags are not
// "set" in viper, so config file values survive unless the flag is given.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for name, key := range keys {
		if f := flags.Lookup(name); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}

func (a *app) setup(cmd *cobra.Command) error {
	bindFlags(a.v, cmd.Flags(), flagKeys)
	format, err := cli.ParseOutputFormat(a.output)
	if err != nil {
		return err
	}
	a.format = format

	cfg, _, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	config.ApplyOverrides(cfg, a.v)
	a.cfg = cfg

	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	a.logger = logger
	return nil
}

// loadConfig loads config from path. With no path it uses config.yaml in the working
// directory when present, and defaults otherwise. Returns the path actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return config.Default(), "", nil
		}
		fallback := filepath.Join(cwd, "config.yaml")
		if _, err := os.Stat(fallback); errors.Is(err, fs.ErrNotExist) {
			return config.Default(), "", nil
		}
		path = fallback
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func (a *app) loader() *content.Loader {
	return content.NewLoader(
		os.DirFS(a.cfg.Content.Root),
		content.OptionsFromConfig(a.cfg),
		content.WithLogger(a.logger),
	)
}

func (a *app) library() *content.Library {
	return content.NewLibrary(a.loader())
}

func (a *app) ranker() *ranking.Ranker {
	return ranking.NewRanker(ranking.FromConfig(a.cfg.Related))
}

func (a *app) aggregator() *tags.Aggregator {
	return tags.New(tags.WithFoldCase(a.cfg.Tags.FoldCase))
}

// joinArgs joins positional args with spaces so multi-word queries work with or
// without shell quoting.
func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the contentkit version",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "contentkit version %s\n", version)
		},
	}
}
