package commands

import (
	"fmt"
	"log/slog"
	"os"

	"statcharts/lib/report"
	"statcharts/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	cacheCmd.AddCommand(cachePurgeCmd, cacheStatsCmd)
	rootCmd.AddCommand(cacheCmd)
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manages the http response cache.",
}

func cacheEnv() *env {
	e := newEnv()
	if e.cache == nil {
		serviceutil.Fatal("cache unavailable", fmt.Errorf("the cache is disabled"))
	}
	return e
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Deletes expired responses.",
	Run: func(cmd *cobra.Command, args []string) {
		e := cacheEnv()
		defer e.Close()

		n, err := e.cache.Purge(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to purge cache", err)
		}
		slog.Info("purged cache", "entries", n)
	},
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Prints the number of stored and expired responses.",
	Run: func(cmd *cobra.Command, args []string) {
		e := cacheEnv()
		defer e.Close()

		stats, err := e.cache.Stats(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to read cache stats", err)
		}
		report.Print(os.Stdout, report.Table{
			Title:  "HTTP cache",
			Header: []string{"Entries", "Expired", "TTL"},
			Rows:   [][]any{{stats.Entries, stats.Expired, e.config.Cache.TTL().String()}},
		})
	},
}
