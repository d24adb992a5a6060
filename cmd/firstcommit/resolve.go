package main

import (
	"encoding/json"
	"time"

	"github.com/KOFI-GYIMAH/first-commit/internal/config"
	"github.com/KOFI-GYIMAH/first-commit/internal/models"
	"github.com/KOFI-GYIMAH/first-commit/internal/service"
	"github.com/KOFI-GYIMAH/first-commit/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	strategy string
	timeout  time.Duration
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:           "firstcommit",
	Short:         "Find the first commit of a GitHub user's oldest repository",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	resolveCmd.Flags().StringVar(&strategy, "strategy", "", "offset-rewrite or search-based (defaults to STRATEGY)")
	resolveCmd.Flags().DurationVar(&timeout, "timeout", 0, "resolution deadline (defaults to RESOLVE_TIMEOUT)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:     "resolve <username>",
	Short:   "Resolve a username and print the result as JSON",
	Example: resolveExample(),
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.SetOutput(cmd.ErrOrStderr())
		if verbose {
			logger.SetLevel(logger.LevelDebug)
		} else {
			logger.SetLevel(logger.LevelWarn)
		}

		cfg, err := config.LoadConfiguration()
		if err != nil {
			return err
		}
		if err := applyFlags(cfg); err != nil {
			return err
		}

		resolver, err := service.NewResolverFromConfig(cfg)
		if err != nil {
			return err
		}

		result := resolver.Resolve(cmd.Context(), cfg.Strategy, args[0])
		return printResult(cmd, result)
	},
}

// * applyFlags lets command line flags override the environment
func applyFlags(cfg *config.Config) error {
	if strategy != "" {
		name, err := config.ParseStrategy(strategy)
		if err != nil {
			return err
		}
		cfg.Strategy = name
	}
	if timeout > 0 {
		cfg.ResolveTimeout = timeout
	}
	return nil
}

func printResult(cmd *cobra.Command, result models.ResolutionResult) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func resolveExample() string {
	return `
firstcommit resolve octocat
firstcommit resolve torvalds --strategy search-based --timeout 20s
`
}
