/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/cobra"

	"github.com/filmlens/filmlens/internal/cache"
	"github.com/filmlens/filmlens/internal/config"
	"github.com/filmlens/filmlens/internal/provider/omdb"
	"github.com/filmlens/filmlens/internal/provider/tmdb"
	"github.com/filmlens/filmlens/internal/resolver"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "filmlens",
	Short: "A movie information resolver",
	Long: `filmlens resolves movie titles into full records: ratings, plot,
cast, user reviews and box office numbers, merged from OMDb and TMDB.

Raw titles are cleaned of release-name noise (years, quality tags,
season suffixes) before lookup, and finished records are cached so
repeated lookups stay off the network.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env is fine; keys may come from the real environment.
		_ = godotenv.Load()
		initLogging()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func initLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// newResolver wires the full provider stack from configuration.
func newResolver(cfg *config.Config) (*resolver.Resolver, error) {
	primary, err := omdb.New(omdb.Config{
		APIKey:  cfg.OMDb.APIKey,
		BaseURL: cfg.OMDb.BaseURL,
		Timeout: cfg.Providers.Timeout,
	})
	if err != nil {
		return nil, err
	}

	secondary, err := tmdb.New(tmdb.Config{
		APIKey:               cfg.TMDB.APIKey,
		BaseURL:              cfg.TMDB.BaseURL,
		Timeout:              cfg.Providers.Timeout,
		ReviewTruncateLength: cfg.Reviews.TruncateLength,
	})
	if err != nil {
		return nil, err
	}

	return resolver.New(resolver.Config{
		Primary:         primary,
		Secondary:       secondary,
		Cache:           cache.New(cfg.Cache.TTL, cfg.Cache.MaxEntries),
		ProviderTimeout: cfg.Providers.Timeout,
	})
}
