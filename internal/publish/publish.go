// Package publish writes the outputs of the chart jobs.
package publish

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"statcharts/lib/chart"
	"statcharts/lib/i18n"
	"statcharts/lib/pxweb"
	"statcharts/lib/report"
)

// Target is where charts and tables are written.
type Target struct {
	Dir    string
	Format string
}

func (t Target) format() string {
	if t.Format == "" {
		return "svg"
	}
	return t.Format
}

// Chart saves a figure as <dir>/<name>.<format>.
func (t Target) Chart(ctx context.Context, fig chart.Figure, name string) (string, error) {
	path, err := chart.Save(fig, t.Dir, name, t.format())
	if err != nil {
		return "", err
	}
	slog.InfoContext(ctx, "saved chart", "path", path)
	return path, nil
}

// Workbook saves tables as <dir>/<name>.xlsx.
func (t Target) Workbook(ctx context.Context, tables []report.Table, name string) (string, error) {
	err := os.MkdirAll(t.Dir, 0777)
	if err != nil {
		return "", err
	}
	path := filepath.Join(t.Dir, name+".xlsx")
	err = report.WriteWorkbook(path, tables)
	if err != nil {
		return "", err
	}
	slog.InfoContext(ctx, "saved workbook", "path", path)
	return path, nil
}

// Text saves contents as <dir>/<name>.
func (t Target) Text(ctx context.Context, contents, name string) (string, error) {
	err := os.MkdirAll(t.Dir, 0777)
	if err != nil {
		return "", err
	}
	path := filepath.Join(t.Dir, name)
	err = os.WriteFile(path, []byte(contents), 0644)
	if err != nil {
		return "", err
	}
	slog.InfoContext(ctx, "saved file", "path", path)
	return path, nil
}

// Source returns the first source of a table response.
func Source(sources []pxweb.SourceInfo) i18n.SourceInfo {
	if len(sources) == 0 {
		return i18n.SourceInfo{}
	}
	s := sources[0]
	return i18n.SourceInfo{
		Source:   s.Source,
		Label:    s.Label,
		Infofile: s.Infofile,
		Updated:  s.Updated,
	}
}

// Footer is the translated source line drawn under a chart.
func Footer(sources []pxweb.SourceInfo, lang i18n.Language) string {
	if len(sources) == 0 {
		return ""
	}
	return i18n.Footer(Source(sources), lang)
}
