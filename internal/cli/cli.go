// Package cli implements the crysldoc command-line interface.
//
// This package provides commands for resolving documentation orders from
// rule universes, verifying orderings, exporting dependency trees, serving
// the HTTP API, and managing the result cache. The CLI is built using cobra
// and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - resolve: Compute the leaf-to-root order for one or all rules
//   - verify: Recompute and check orderings for a universe
//   - graph: Export the scoped dependency graph as DOT or SVG
//   - serve: Run the HTTP resolution API
//   - tui: Interactively pick a rule and resolve it
//   - cache: Manage the result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/buildinfo"
	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/cache"
	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/config"
	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/pipeline"
	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/rule"
)

// appName is the application name used for directories and display.
const appName = "crysldoc"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config
}

// New creates a new CLI instance with a default logger and the default
// configuration. The config file, if any, is loaded in RootCommand's
// PersistentPreRunE so that --config can override the path.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered.
func (c *CLI) RootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          appName,
		Short:        "crysldoc orders crypto-API usage rules for documentation",
		Long:         `crysldoc resolves the dependency relation between crypto-API usage rules into a deterministic leaf-to-root order, so that generated documentation explains every provider before its consumers.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				path = config.DefaultPath()
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")

	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.verifyCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use. The cache backend follows
// the configuration unless noCache forces the null cache.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cch, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cch, nil, c.Logger), nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case config.CacheBackendNone:
		return cache.NewNullCache(), nil
	case config.CacheBackendRedis:
		return cache.NewRedisCache(cache.RedisOptions{
			Addr:     c.Config.Cache.RedisAddr,
			Password: c.Config.Cache.RedisPassword,
			DB:       c.Config.Cache.RedisDB,
		})
	default:
		dir := c.Config.Cache.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return cache.NewNullCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	}
}

// cacheDir returns the cache directory using the XDG standard
// (~/.cache/crysldoc/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// loadUniverse reads a universe from a file path or, when storeName is set,
// from the configured store.
func (c *CLI) loadUniverse(cmd *cobra.Command, path, storeName string) (*rule.Universe, error) {
	if storeName != "" {
		st, err := c.newStore(cmd)
		if err != nil {
			return nil, err
		}
		defer st.Close(cmd.Context())
		return st.Get(cmd.Context(), storeName)
	}
	return rule.ImportJSON(path)
}
