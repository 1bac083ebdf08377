package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"statcharts/internal/population"
	"statcharts/lib/serviceutil"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var allParallel *int
var allSkipGdp *bool

func init() {
	allParallel = allCmd.Flags().Int("parallel", 2, "How many jobs run at once.")
	allSkipGdp = allCmd.Flags().Bool("skip-gdp", false, "Do not write the gdp map stylesheet.")
	rootCmd.AddCommand(allCmd)
}

// job writes its files and prints its tables to out.
type job struct {
	name string
	run  func(ctx context.Context, out io.Writer) ([]string, error)
}

func chartJob(fn func(ctx context.Context) (string, error)) func(context.Context, io.Writer) ([]string, error) {
	return func(ctx context.Context, _ io.Writer) ([]string, error) {
		path, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}
}

func (e *env) jobs() []job {
	migrationJob := e.migrationJob()
	populationJob := e.populationJob(population.DefaultYear)

	jobs := []job{
		{name: "migration", run: func(ctx context.Context, _ io.Writer) ([]string, error) {
			return migrationJob.Countries(ctx)
		}},
		{name: "annual", run: chartJob(migrationJob.Annual)},
		{name: "history", run: func(ctx context.Context, _ io.Writer) ([]string, error) {
			return migrationJob.History(ctx, e.config.Languages()...)
		}},
		{name: "rates", run: chartJob(migrationJob.MigrationRates)},
		{name: "se-born", run: chartJob(populationJob.SwedishBorn)},
		{name: "nationality", run: func(ctx context.Context, out io.Writer) ([]string, error) {
			n, err := populationJob.Nationality(ctx)
			if err != nil {
				return nil, err
			}
			return populationJob.PublishNationality(ctx, n, out, false)
		}},
		{name: "parliament", run: chartJob(e.parliament)},
	}
	if *allSkipGdp {
		return jobs
	}

	gdpJob := e.gdpMapJob()
	return append(jobs, job{name: "gdp-map", run: func(ctx context.Context, out io.Writer) ([]string, error) {
		res, err := gdpJob.Colors(ctx)
		if err != nil {
			return nil, err
		}
		path, err := gdpJob.Publish(ctx, res, out)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}})
}

// runJobs runs the jobs with at most parallel of them at once. The tables
// of every job are written to out in job order once all jobs are done,
// the paths of the written files too.
func runJobs(ctx context.Context, jobs []job, parallel int, out io.Writer) ([]string, error) {
	outputs := make([]bytes.Buffer, len(jobs))
	paths := make([][]string, len(jobs))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(max(parallel, 1))
	for i, j := range jobs {
		group.Go(func() error {
			written, err := j.run(ctx, &outputs[i])
			if err != nil {
				slog.ErrorContext(ctx, "job failed", "job", j.name, "err", err)
				return fmt.Errorf("%s: %w", j.name, err)
			}
			paths[i] = written
			return nil
		})
	}
	err := group.Wait()

	var written []string
	for i := range outputs {
		out.Write(outputs[i].Bytes())
		written = append(written, paths[i]...)
	}
	return written, err
}

var allCmd = &cobra.Command{
	Use:   "all [--parallel <n>] [--skip-gdp]",
	Short: "Draws every chart and writes every table.",
	Run: func(cmd *cobra.Command, args []string) {
		e := newEnv()
		defer e.Close()

		written, err := runJobs(cmd.Context(), e.jobs(), *allParallel, os.Stdout)
		logPaths(written...)
		if err != nil {
			serviceutil.Fatal("failed to run every job", err)
		}
	},
}
