package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"statcharts/lib/i18n"
	"statcharts/lib/pxweb"

	"github.com/stretchr/testify/require"
)

func write(t *testing.T, dir, name, contents string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, FileName, `{}`)

	config, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Defaults(), config)
	require.Equal(t, 30*24*time.Hour, config.Cache.TTL())
	require.Equal(t, pxweb.DefaultBaseURL, config.SCB.BaseURL)
	require.Equal(t, i18n.Languages(), config.Languages())
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, FileName, `{
		// charts for the polish wiki
		output_dir: "charts",
		language: "pl",
		cache: { ttl_hours: 24 },
		worldbank: { csv: "gdp.csv" },
	}`)
	write(t, dir, "statcharts.local.json5", `{
		format: "png",
		cache: { url: "libsql://cache.example.org", auth_token: "secret" },
	}`)

	config, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "charts", config.OutputDir)
	require.Equal(t, "png", config.Format)
	require.Equal(t, "pl", config.Language)
	require.Equal(t, []i18n.Language{i18n.Polish}, config.Languages())
	require.Equal(t, 24*time.Hour, config.Cache.TTL())
	require.True(t, config.Cache.IsRemote())
	require.Equal(t, "secret", config.Cache.AuthToken)
	require.Equal(t, "gdp.csv", config.WorldBank.CSV)
	require.Equal(t, Defaults().WorldBank.BaseURL, config.WorldBank.BaseURL)
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name     string
		contents string
	}{
		{name: "format", contents: `{format: "bmp"}`},
		{name: "language", contents: `{language: "de"}`},
		{name: "ttl", contents: `{cache: {ttl_hours: -1}}`},
		{name: "syntax", contents: `{format: `},
	}
	for _, test := range testCases {
		path := write(t, dir, test.name+".json5", test.contents)
		_, err := Load(path)
		require.Error(t, err, test.name)
	}

	_, err := Load(filepath.Join(dir, "missing.json5"))
	require.Error(t, err)
}
