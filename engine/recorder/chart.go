package recorder

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

// Metric extracts the value plotted for a sample.
type Metric struct {
	Name  string
	Value func(Sample) float64
}

var (
	// MetricRadius plots the camera distance from the origin.
	MetricRadius = Metric{Name: "distance from origin", Value: func(s Sample) float64 {
		return float64(s.Position.Len())
	}}
	// MetricEpsilon plots the surface tolerance in effect.
	MetricEpsilon = Metric{Name: "epsilon", Value: func(s Sample) float64 {
		return float64(s.Params.Epsilon)
	}}
	// MetricMaxIter plots the iteration budget in effect.
	MetricMaxIter = Metric{Name: "max_iter", Value: func(s Sample) float64 {
		return float64(s.Params.MaxIter)
	}}
)

// Chart renders metric over every sample of every section as a terminal line chart.
// Sections are concatenated in order. An empty path renders as an empty string.
//
// Parameters:
//   - sections: the recorded path
//   - metric: the value to plot
//   - height: chart height in rows
//   - width: chart width in columns; 0 plots one column per sample
//
// Returns:
//   - string: the rendered chart
func Chart(sections []Section, metric Metric, height, width int) string {
	var data []float64
	for _, s := range sections {
		for _, sample := range s.Samples {
			data = append(data, metric.Value(sample))
		}
	}
	if len(data) == 0 {
		return ""
	}

	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Caption(fmt.Sprintf("%s over %d sample(s), %d section(s)", metric.Name, len(data), len(sections))),
	}
	if width > 0 {
		opts = append(opts, asciigraph.Width(width))
	}
	return asciigraph.Plot(data, opts...)
}
