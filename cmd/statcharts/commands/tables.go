package commands

import (
	"fmt"
	"os"

	"statcharts/lib/pxweb"
	"statcharts/lib/report"
	"statcharts/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(fieldsCmd, endpointsCmd)
}

var fieldsCmd = &cobra.Command{
	Use:   "fields <endpoint>",
	Short: "Prints the variables of a table and their values.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		endpoint, ok := pxweb.ParseEndpoint(args[0])
		if !ok {
			serviceutil.Fatal("unknown endpoint", fmt.Errorf("%q is not a table id or path, see 'statcharts endpoints'", args[0]))
		}

		e := newEnv()
		defer e.Close()

		err := e.pxweb.ShowFields(cmd.Context(), endpoint, os.Stdout)
		if err != nil {
			serviceutil.Fatal("failed to show fields", err)
		}
	},
}

var endpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "Lists the known tables.",
	Run: func(cmd *cobra.Command, args []string) {
		t := report.Table{
			Title:  "Tables",
			Header: []string{"Id", "Path", "Description"},
		}
		for _, e := range pxweb.Endpoints() {
			t.Rows = append(t.Rows, []any{e.Name(), string(e), e.Description()})
		}
		report.Print(os.Stdout, t)
	},
}
