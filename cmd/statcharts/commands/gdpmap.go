package commands

import (
	"os"

	"statcharts/internal/gdpmap"
	"statcharts/lib/serviceutil"

	"github.com/spf13/cobra"
)

var gdpCsv *string
var gdpMap *string

func init() {
	gdpCsv = gdpMapCmd.Flags().String("csv", "", "A local World Bank indicator csv, overrides worldbank.csv of the config.")
	gdpMap = gdpMapCmd.Flags().String("map", "", "An svg map of Europe to check for an element per country.")
	rootCmd.AddCommand(gdpMapCmd)
}

func (e *env) gdpMapJob() *gdpmap.Job {
	csv := e.config.WorldBank.CSV
	if *gdpCsv != "" {
		csv = *gdpCsv
	}
	return gdpmap.New(gdpmap.Options{
		Client:    e.worldbank,
		Target:    e.target,
		Telemetry: e.telemetry,
		CSV:       csv,
		Map:       *gdpMap,
	})
}

var gdpMapCmd = &cobra.Command{
	Use:   "gdp-map [--csv <path>] [--map <europe.svg>]",
	Short: "Writes the stylesheet colouring a map of Europe by GDP per capita (PPP).",
	Run: func(cmd *cobra.Command, args []string) {
		e := newEnv()
		defer e.Close()

		job := e.gdpMapJob()
		res, err := job.Colors(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to colour gdp map", err)
		}
		path, err := job.Publish(cmd.Context(), res, os.Stdout)
		if err != nil {
			serviceutil.Fatal("failed to write gdp map stylesheet", err)
		}
		logPaths(path)
	},
}
