package riksdag

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
)

const (
	StripeWidth  = 20
	StripeHeight = 200
	Margin       = 20
)

type Rect struct {
	ID     string
	Class  string
	X      int
	Y      int
	Width  int
	Height int
}

// Stripes lays out one column per election, one rect per party. Rect
// edges are rounded so the parties of a column tile it exactly.
func Stripes(elections []Election) []Rect {
	var rects []Rect
	x := Margin
	for _, e := range elections {
		total := e.Total()
		rolling := 0
		for _, s := range e.Seats {
			top := edge(rolling, total)
			rolling += s.Seats
			bottom := edge(rolling, total)

			code := strings.ToLower(s.Party)
			rects = append(rects, Rect{
				ID:     fmt.Sprintf("bar%s%s", e.Year, code),
				Class:  "party" + code,
				X:      x,
				Y:      Margin + top,
				Width:  StripeWidth,
				Height: bottom - top,
			})
		}
		x += StripeWidth
	}
	return rects
}

func edge(seats, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(seats) / float64(total) * StripeHeight))
}

// Stylesheet colours the rects of every party.
func Stylesheet() string {
	rules := make([]string, len(Parties))
	for i, p := range Parties {
		rules[i] = fmt.Sprintf(".party%s {fill:%s}", strings.ToLower(p.Code), p.Color)
	}
	return strings.Join(rules, "\n")
}

// WriteSVG writes a standalone svg document with the stripes.
func WriteSVG(w io.Writer, elections []Election) error {
	width := 2*Margin + StripeWidth*len(elections)
	height := 2*Margin + StripeHeight

	out := bufio.NewWriter(w)
	canvas := svg.New(out)
	canvas.Start(width, height)
	canvas.Title("Riksdagsmandat")
	canvas.Style("text/css", Stylesheet())
	canvas.Gid("stripes")
	for _, r := range Stripes(elections) {
		canvas.Rect(r.X, r.Y, r.Width, r.Height, fmt.Sprintf(`id="%s" class="%s"`, r.ID, r.Class))
	}
	canvas.Gend()
	canvas.End()
	return out.Flush()
}
