package commands

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"statcharts/internal/config"
	"statcharts/internal/publish"
	internaltelemetry "statcharts/internal/telemetry"
	"statcharts/lib/httpcache"
	"statcharts/lib/pxweb"
	"statcharts/lib/restyutil"
	"statcharts/lib/serviceutil"
	"statcharts/lib/telemetry"
	"statcharts/lib/worldbank"

	"github.com/spf13/cobra"
)

var (
	configPath *string
	verbose    *bool
	outputDir  *string
	format     *string
	language   *string
	noCache    *bool
)

var rootCmd = &cobra.Command{
	Use:   "statcharts",
	Short: "statcharts draws charts and tables from Statistics Sweden and World Bank data.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
	},
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	configPath = flags.String("config", "", "The config file, statcharts.json5 is searched upwards from the working directory by default.")
	verbose = flags.BoolP("verbose", "v", false, "Log debug messages and dump http messages.")
	outputDir = flags.String("out", "", "The directory charts and tables are written to.")
	format = flags.String("format", "", "The chart format: svg, png, pdf, eps, jpg or tiff.")
	language = flags.String("lang", "", "Draw translated charts in one language only: en, pl or sv.")
	noCache = flags.Bool("no-cache", false, "Do not read or write the http response cache.")
}

// ExecuteContext runs the command line, printing the error it fails
// with.
func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return err
}

// env is what the commands share: the config with flags applied and
// the api clients.
type env struct {
	config    config.Config
	target    publish.Target
	telemetry internaltelemetry.API
	cache     *httpcache.Transport
	db        *sql.DB
	pxweb     *pxweb.Client
	worldbank *worldbank.Client
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return config.Config{}, err
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *format != "" {
		cfg.Format = *format
	}
	if *language != "" {
		cfg.Language = *language
	}
	if *noCache {
		cfg.Cache.Disabled = true
	}
	return cfg, cfg.Validate()
}

func openCache(cfg config.Config, tel internaltelemetry.API) (*httpcache.Transport, *sql.DB, error) {
	if cfg.Cache.Disabled {
		return nil, nil, nil
	}
	db, err := cfg.Cache.OpenDB(httpcache.Schema)
	if err != nil {
		return nil, nil, fmt.Errorf("open http cache: %w", err)
	}
	cache := httpcache.New(db, httpcache.Options{
		TTL:       cfg.Cache.TTL(),
		Telemetry: tel,
	})
	return cache, db, nil
}

// newEnv reads the config and builds the clients, exiting on failure.
func newEnv() *env {
	cfg, err := loadConfig()
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	tel := internaltelemetry.SlogAPI{}

	cache, db, err := openCache(cfg, tel)
	if err != nil {
		serviceutil.Fatal("failed to open cache", err)
	}

	var output restyutil.InstrumentOutput
	if *verbose {
		fs, err := restyutil.NewFilesystemOutput(cfg.HttpDumpDir)
		if err != nil {
			serviceutil.Fatal("failed to create http dump directory", err)
		}
		output = fs
	}

	e := &env{
		config:    cfg,
		target:    publish.Target{Dir: cfg.OutputDir, Format: cfg.Format},
		telemetry: tel,
		cache:     cache,
		db:        db,
	}
	pxOpts := pxweb.Options{BaseURL: cfg.SCB.BaseURL, Output: output, Telemetry: tel}
	wbOpts := worldbank.Options{BaseURL: cfg.WorldBank.BaseURL, Output: output}
	if cache != nil {
		pxOpts.Transport = cache
		wbOpts.Transport = cache
	}
	e.pxweb = pxweb.NewClient(pxOpts)
	e.worldbank = worldbank.NewClient(wbOpts)

	slog.Debug("loaded config", "output_dir", cfg.OutputDir, "format", cfg.Format, "cache", !cfg.Cache.Disabled)
	return e
}

func (e *env) Close() {
	if e.db != nil {
		e.db.Close()
	}
}
