package commands

import (
	"os"

	"statcharts/internal/population"
	"statcharts/lib/serviceutil"

	"github.com/spf13/cobra"
)

var nationalityYear *string
var nationalityXlsx *bool

func init() {
	nationalityYear = nationalityCmd.Flags().String("year", population.DefaultYear, "The year of the tables.")
	nationalityXlsx = nationalityCmd.Flags().Bool("xlsx", false, "Also write the tables to a workbook.")
	rootCmd.AddCommand(nationalityCmd)
}

var nationalityCmd = &cobra.Command{
	Use:   "nationality [--year <year>] [--xlsx]",
	Short: "Prints the population by citizenship and country of birth and writes a wikitable.",
	Run: func(cmd *cobra.Command, args []string) {
		e := newEnv()
		defer e.Close()

		job := e.populationJob(*nationalityYear)
		n, err := job.Nationality(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to fetch nationality tables", err)
		}
		paths, err := job.PublishNationality(cmd.Context(), n, os.Stdout, *nationalityXlsx)
		if err != nil {
			serviceutil.Fatal("failed to write nationality tables", err)
		}
		logPaths(paths...)
	},
}
