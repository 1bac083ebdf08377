package commands

import (
	"bytes"
	"context"
	"fmt"

	"statcharts/lib/riksdag"
	"statcharts/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(parliamentCmd)
}

func (e *env) parliament(ctx context.Context) (string, error) {
	elections, err := riksdag.Fetch(ctx, e.pxweb)
	if err != nil {
		return "", err
	}
	if len(elections) == 0 {
		return "", fmt.Errorf("no elections with seats")
	}

	var buf bytes.Buffer
	err = riksdag.WriteSVG(&buf, elections)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("Riksdagsmandat %s-%s.svg", elections[0].Year, elections[len(elections)-1].Year)
	return e.target.Text(ctx, buf.String(), name)
}

var parliamentCmd = &cobra.Command{
	Use:   "parliament",
	Short: "Draws the seats of every party in the Riksdag as one stripe per election.",
	Run: func(cmd *cobra.Command, args []string) {
		e := newEnv()
		defer e.Close()

		path, err := e.parliament(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to draw parliament stripes", err)
		}
		logPaths(path)
	},
}
