// Package export renders stored runs as standalone SVG charts.
package export

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

var ErrTooFewPoints = errors.New("export: need at least two points")

// Series is one curve of a chart. Y is sampled at the chart's shared times.
type Series struct {
	Name   string
	Y      []float64
	Stroke string
}

var palette = []string{"#00ff9c", "#ffb000", "#ff4f6d", "#4fb3ff"}

type bounds struct{ minX, maxX, minY, maxY float64 }

func (b *bounds) pad() {
	rx, ry := b.maxX-b.minX, b.maxY-b.minY
	if rx == 0 {
		rx = 1
	}
	if ry == 0 {
		ry = math.Max(math.Abs(b.maxY), 1)
	}
	b.minY -= ry * 0.05
	b.maxY += ry * 0.05
	b.maxX = b.minX + rx
}

func measure(times []float64, series []Series) (bounds, error) {
	b := bounds{minX: times[0], maxX: times[len(times)-1], minY: math.Inf(1), maxY: math.Inf(-1)}
	for _, s := range series {
		if len(s.Y) != len(times) {
			return b, fmt.Errorf("export: series %q has %d points, want %d", s.Name, len(s.Y), len(times))
		}
		for _, y := range s.Y {
			if math.IsNaN(y) || math.IsInf(y, 0) {
				continue
			}
			b.minY = math.Min(b.minY, y)
			b.maxY = math.Max(b.maxY, y)
		}
	}
	if math.IsInf(b.minY, 1) {
		b.minY, b.maxY = 0, 1
	}
	b.pad()
	return b, nil
}

// WriteSVG draws the series against times as polylines on a dark
// background. Non-finite samples break the line.
func WriteSVG(w io.Writer, title string, times []float64, series []Series, width, height int) error {
	if len(times) < 2 {
		return ErrTooFewPoints
	}
	b, err := measure(times, series)
	if err != nil {
		return err
	}
	px := func(t float64) float64 { return (t - b.minX) / (b.maxX - b.minX) * float64(width) }
	py := func(y float64) float64 { return float64(height) - (y-b.minY)/(b.maxY-b.minY)*float64(height) }

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<text x="8" y="18" fill="#cccccc" font-family="monospace" font-size="14">%s</text>
`, width, height, width, height, escape(title))

	for i, s := range series {
		stroke := s.Stroke
		if stroke == "" {
			stroke = palette[i%len(palette)]
		}
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="`, stroke)
		pen := false
		for k, y := range s.Y {
			if math.IsNaN(y) || math.IsInf(y, 0) {
				pen = false
				continue
			}
			cmd := "L"
			if !pen {
				cmd = "M"
			}
			fmt.Fprintf(&sb, "%s%.1f,%.1f ", cmd, px(times[k]), py(y))
			pen = true
		}
		sb.WriteString("\"/>\n")
		fmt.Fprintf(&sb, `<text x="8" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>
`, 36+16*i, stroke, escape(s.Name))
	}
	sb.WriteString("</svg>\n")

	_, err = io.WriteString(w, sb.String())
	return err
}

func escape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}
