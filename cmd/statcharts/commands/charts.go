package commands

import (
	"log/slog"

	"statcharts/internal/migration"
	"statcharts/internal/population"
	"statcharts/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(migrationCmd, annualCmd, historyCmd, ratesCmd, seBornCmd)
}

func (e *env) migrationJob() *migration.Job {
	return migration.New(migration.Options{
		Client:    e.pxweb,
		Target:    e.target,
		Telemetry: e.telemetry,
	})
}

func (e *env) populationJob(year string) *population.Job {
	return population.New(population.Options{
		Client:    e.pxweb,
		Target:    e.target,
		Telemetry: e.telemetry,
		Year:      year,
	})
}

func logPaths(paths ...string) {
	for _, p := range paths {
		slog.Info("wrote", "path", p)
	}
}

var migrationCmd = &cobra.Command{
	Use:   "migration",
	Short: "Draws the immigration and emigration charts by country of birth.",
	Run: func(cmd *cobra.Command, args []string) {
		e := newEnv()
		defer e.Close()

		paths, err := e.migrationJob().Countries(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to draw migration charts", err)
		}
		logPaths(paths...)
	},
}

var annualCmd = &cobra.Command{
	Use:   "annual",
	Short: "Draws the yearly immigration and emigration totals.",
	Run: func(cmd *cobra.Command, args []string) {
		e := newEnv()
		defer e.Close()

		path, err := e.migrationJob().Annual(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to draw annual chart", err)
		}
		logPaths(path)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history [--lang <en|pl|sv>]",
	Short: "Draws immigration, emigration and net migration since 1875 in every language.",
	Run: func(cmd *cobra.Command, args []string) {
		e := newEnv()
		defer e.Close()

		paths, err := e.migrationJob().History(cmd.Context(), e.config.Languages()...)
		if err != nil {
			serviceutil.Fatal("failed to draw history charts", err)
		}
		logPaths(paths...)
	},
}

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Draws migration rates per 1,000 inhabitants.",
	Run: func(cmd *cobra.Command, args []string) {
		e := newEnv()
		defer e.Close()

		path, err := e.migrationJob().MigrationRates(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to draw rates chart", err)
		}
		logPaths(path)
	},
}

var seBornCmd = &cobra.Command{
	Use:   "se-born",
	Short: "Draws the share of the population born in Sweden.",
	Run: func(cmd *cobra.Command, args []string) {
		e := newEnv()
		defer e.Close()

		path, err := e.populationJob("").SwedishBorn(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to draw swedish born chart", err)
		}
		logPaths(path)
	},
}
