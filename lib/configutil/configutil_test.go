package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name   string `json:"name"`
	Format string `json:"format"`
	Cache  struct {
		File     string `json:"file"`
		TTLHours int    `json:"ttl_hours"`
	} `json:"cache"`
}

func write(t testing.TB, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "statcharts.json5")

	_, err := ReadConfig[testConfig](name)
	require.ErrorIs(t, err, os.ErrNotExist)

	write(t, name, `{
		// comments are fine in json5
		name: "charts",
		format: "svg",
		cache: { file: "cache.db", ttl_hours: 720 },
	}`)
	cfg, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "charts", cfg.Name)
	require.Equal(t, 720, cfg.Cache.TTLHours)

	write(t, filepath.Join(dir, "statcharts.local.json5"), `{ format: "png", cache: { ttl_hours: 1 } }`)
	cfg, err = ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "charts", cfg.Name)
	require.Equal(t, "png", cfg.Format)
	require.Equal(t, "cache.db", cfg.Cache.File)
	require.Equal(t, 1, cfg.Cache.TTLHours)
}

func TestReadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "broken.json5")
	write(t, name, `{ name: `)

	_, err := ReadConfig[testConfig](name)
	require.Error(t, err)
	require.NotErrorIs(t, err, os.ErrNotExist)
}

func TestReadRecursively(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0777))
	write(t, filepath.Join(root, "recursive-test.json5"), `{ name: "root" }`)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	defer os.Chdir(wd)

	cfg, err := ReadRecursively[testConfig]("recursive-test.json5")
	require.NoError(t, err)
	require.Equal(t, "root", cfg.Name)

	_, err = ReadRecursively[testConfig]("does-not-exist-anywhere.json5")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWithDefaults(t *testing.T) {
	var defaults testConfig
	defaults.Name = "statcharts"
	defaults.Format = "svg"
	defaults.Cache.TTLHours = 720

	var cfg testConfig
	cfg.Format = "pdf"

	merged, err := WithDefaults(cfg, defaults)
	require.NoError(t, err)
	require.Equal(t, "statcharts", merged.Name)
	require.Equal(t, "pdf", merged.Format)
	require.Equal(t, 720, merged.Cache.TTLHours)
}
