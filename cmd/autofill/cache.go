package main

import (
	"fmt"

	"github.com/jonathan/autofill-core/internal/observability"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and maintain the answer cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the number and approximate size of cached answers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, c, err := openCache(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		stats, err := c.Stats(cmd.Context())
		if err != nil {
			return err
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintCacheStats(c.Prefix(), stats)
		return nil
	},
}

var cacheClearOldCmd = &cobra.Command{
	Use:   "clear-old",
	Short: "Remove cached answers older than the configured max age",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, c, err := openCache(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		removed, err := c.ClearOld(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired entries\n", removed)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd, cacheClearOldCmd)
	rootCmd.AddCommand(cacheCmd)
}
