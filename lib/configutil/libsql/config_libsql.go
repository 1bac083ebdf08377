package configlibsql

import (
	"database/sql"
	"fmt"
	"net/url"

	devenv "statcharts/dev/env"
	"statcharts/pkg/migrations"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Struct locates a database: a local sqlite file, or a remote libsql
// database when Url is set.
type Struct struct {
	File      string `json:"file"`
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

func (config Struct) IsRemote() bool {
	return config.Url != ""
}

// OpenDB opens the database and applies schema to it.
func (config Struct) OpenDB(schema string) (*sql.DB, error) {
	if config.Url == "" {
		if config.File == "" {
			return nil, fmt.Errorf("a database file was not specified")
		}
		dbpath, err := devenv.ResolvePath(config.File)
		if err != nil {
			return nil, err
		}
		return migrations.OpenAndMigrateDB(schema, dbpath)
	}

	values := url.Values{}
	if config.AuthToken != "" {
		values.Add("authToken", config.AuthToken)
	}
	dsn := config.Url
	if len(values) > 0 {
		dsn += "?" + values.Encode()
	}
	db, err := sql.Open("libsql", dsn)
	if err != nil {
		return nil, err
	}
	err = migrations.Migrate(db, schema)
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
