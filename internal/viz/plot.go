package viz

import (
	"github.com/guptarohit/asciigraph"
)

const (
	plotWidth  = 72
	plotHeight = 10
)

// PlotSeries draws one or more series against their sample index.
func PlotSeries(caption string, series ...[]float64) string {
	nonEmpty := make([][]float64, 0, len(series))
	for _, s := range series {
		if len(s) > 0 {
			nonEmpty = append(nonEmpty, s)
		}
	}
	if len(nonEmpty) == 0 {
		return Subtle.Render(caption + ": no data")
	}
	opts := []asciigraph.Option{
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	}
	if len(nonEmpty) > 1 {
		opts = append(opts, asciigraph.SeriesColors(asciigraph.Green, asciigraph.Yellow, asciigraph.Red))
	}
	return asciigraph.PlotMany(nonEmpty, opts...)
}

// Column extracts column idx of every state, or nil when idx is out of range.
func Column[S ~[]float64](states []S, idx int) []float64 {
	out := make([]float64, 0, len(states))
	for _, s := range states {
		if idx >= len(s) {
			return nil
		}
		out = append(out, s[idx])
	}
	return out
}
