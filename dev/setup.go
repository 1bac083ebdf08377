package main

import (
	"fmt"
	"os"

	"statcharts/internal/config"
	"statcharts/lib/httpcache"
	"statcharts/pkg/migrations"

	devenv "statcharts/dev/env"
)

// CreateCacheDB creates the http cache database at its default
// location.
func CreateCacheDB() error {
	path, err := devenv.ResolvePath(config.Defaults().Cache.File)
	if err != nil {
		return err
	}

	_, err = os.Stat(path)
	if err == nil {
		fmt.Println("database already created at", path)
		return nil
	}

	fmt.Println("creating database at", path)
	db, err := migrations.OpenAndMigrateDB(httpcache.Schema, path)
	if err != nil {
		return err
	}
	return db.Close()
}

const sampleConfig = `{
  output_dir: "out",
  // svg, png, pdf, eps, jpg or tiff
  format: "svg",
  // leave empty to draw the history chart in every language
  language: "",
  cache: {
    file: "<dev_state>/http_cache.db",
    ttl_hours: 720,
  },
  worldbank: {
    // csv: "API_NY.GDP.PCAP.PP.CD.csv",
  },
}
`

// WriteSampleConfig writes statcharts.json5 unless it exists already.
func WriteSampleConfig() error {
	_, err := os.Stat(config.FileName)
	if err == nil {
		fmt.Println("config already exists at", config.FileName)
		return nil
	}
	fmt.Println("writing sample config to", config.FileName)
	return os.WriteFile(config.FileName, []byte(sampleConfig), 0644)
}
