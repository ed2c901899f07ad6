// Package cli implements the padgen command-line interface.
//
// This package provides commands for transforming Rust source into PAD
// diagram JSON, serving the transformation over HTTP, and managing the
// local result cache. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - transform: Convert a Rust source file (or stdin) into PAD JSON
//   - serve: Run the HTTP API
//   - cache: Manage the local result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so every command sees the same
// configuration.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yanqirenshi/padgen/internal/config"
	"github.com/yanqirenshi/padgen/pkg/buildinfo"
	"github.com/yanqirenshi/padgen/pkg/cache"
)

// appName is the application name used for directories and display.
const appName = "padgen"

// Execute runs the padgen CLI and returns an error if any command fails.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          appName,
		Short:        "Padgen converts Rust code into PAD diagrams",
		Long:         `Padgen parses Rust source code and converts each function body into a PAD (Problem Analysis Diagram) tree, serialized as JSON for external renderers.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "config file path")

	root.AddCommand(newTransformCmd(&configPath))
	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newCacheCmd())

	return root.ExecuteContext(ctx)
}

// openCache builds the cache backend selected by the configuration.
// The none backend disables caching entirely.
func openCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	switch cfg.Cache.BackendOrDefault() {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendMemory:
		return cache.NewMemoryCache(), nil
	case config.BackendFile:
		dir := cfg.Cache.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return nil, err
			}
		}
		return cache.NewFileCache(dir)
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cfg.Cache.RedisAddr)
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
}
