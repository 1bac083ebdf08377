package chart

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"statcharts/lib/textutil"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var Formats = []string{"svg", "png", "pdf", "eps", "jpg", "tiff"}

func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return fmt.Errorf("unsupported chart format %q, expected one of %s", format, strings.Join(Formats, ", "))
	}
	return nil
}

// Figure is a plot together with the text drawn around it.
type Figure struct {
	Plot  *plot.Plot
	Style Style
	// Subtitle is centered between the title and the plotting area.
	Subtitle string
	// Footer is wrapped to the figure width and drawn bottom left.
	Footer string
}

const margin = vg.Length(8)

func (f Figure) footerLines() []string {
	if f.Footer == "" {
		return nil
	}
	sty := TextStyle(f.Style.FooterSize, false, nil)
	available := f.Style.Width - 2*margin
	return textutil.WrapFunc(f.Footer, func(line string) bool {
		return sty.Width(line) <= available
	})
}

// Draw renders the figure onto a canvas.
func (f Figure) Draw(dc draw.Canvas) {
	dc.SetColor(color.White)
	dc.Fill(dc.Rectangle.Path())

	footer := TextStyle(f.Style.FooterSize, false, nil)
	lines := f.footerLines()
	lineHeight := footer.Height("Xg")
	for i, line := range lines {
		// last line sits on the bottom margin
		y := dc.Rectangle.Min.Y + margin + vg.Length(len(lines)-1-i)*lineHeight
		dc.FillText(footer, vg.Point{X: dc.Rectangle.Min.X + margin, Y: y}, line)
	}
	bottom := margin
	if len(lines) > 0 {
		bottom += vg.Length(len(lines))*lineHeight + margin
	}

	plotTop := dc.Rectangle.Max.Y - margin/2
	if f.Subtitle != "" {
		sub := TextStyle(f.Style.SubtitleSize, false, nil)
		sub.XAlign = draw.XCenter
		sub.YAlign = draw.YTop
		gap := vg.Points(4)

		// the plot draws its title at the top edge, the subtitle goes
		// right below it and the title padding grows to make room
		titleHeight := vg.Length(0)
		if f.Plot.Title.Text != "" {
			title := f.Plot.Title.TextStyle
			titleHeight = title.Height(f.Plot.Title.Text) - title.FontExtents().Descent
		}
		dc.FillText(sub, vg.Point{X: dc.Center().X, Y: plotTop - titleHeight - gap}, f.Subtitle)

		padding := f.Plot.Title.Padding
		f.Plot.Title.Padding += sub.Height(f.Subtitle) + gap
		defer func() { f.Plot.Title.Padding = padding }()
	}

	plotArea := draw.Crop(dc, margin, -margin, bottom, plotTop-dc.Rectangle.Max.Y)
	f.Plot.Draw(plotArea)
}

// WriteTo renders the figure in a format understood by gonum/plot
// ("svg", "png", "pdf", ...).
func (f Figure) WriteTo(w io.Writer, format string) error {
	err := ValidateFormat(format)
	if err != nil {
		return err
	}
	c, err := draw.NewFormattedCanvas(f.Style.Width, f.Style.Height, format)
	if err != nil {
		return err
	}
	f.Draw(draw.New(c))
	_, err = c.WriteTo(w)
	return err
}

// Save writes <dir>/<name>.<format> and returns the path written.
func Save(fig Figure, dir, name, format string) (string, error) {
	err := ValidateFormat(format)
	if err != nil {
		return "", err
	}
	err = os.MkdirAll(dir, 0777)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.%s", name, format))
	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	err = fig.WriteTo(out, format)
	if err != nil {
		out.Close()
		return "", fmt.Errorf("render %s: %w", path, err)
	}
	return path, out.Close()
}
