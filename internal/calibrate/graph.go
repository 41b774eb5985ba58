package calibrate

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
)

const maxticks = 20

// Graph draws the threshold trajectory and both ratios of a run as a PNG.
// Thresholds use the left axis, ratios the right one.
func Graph(steps []Step, title string, w io.Writer) error {
	if len(steps) < 2 {
		return errors.New("not enough iterations to graph")
	}

	var xvalues, thresholds, fns, fps []float64
	var ticks []chart.Tick
	tickevery := len(steps) / maxticks
	if tickevery < 1 {
		tickevery = 1
	}
	for i, s := range steps {
		x := float64(s.Index)
		xvalues = append(xvalues, x)
		thresholds = append(thresholds, s.ThresholdOut)
		fns = append(fns, s.FalseNegative)
		fps = append(fps, s.FalsePositive)
		if i%tickevery == 0 {
			ticks = append(ticks, chart.Tick{Value: x, Label: fmt.Sprintf("%d", s.Index)})
		}
	}
	// Make last tick the final iteration
	last := steps[len(steps)-1]
	ticks[len(ticks)-1] = chart.Tick{Value: float64(last.Index), Label: fmt.Sprintf("%d", last.Index)}

	graph := chart.Chart{
		Title:  title,
		Width:  1024,
		Height: 512,
		XAxis: chart.XAxis{
			Name:  "Iteration",
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  "Threshold",
			Range: flatRange(thresholds),
		},
		YAxisSecondary: chart.YAxis{
			Name:  "Ratio",
			Range: flatRange(append(append([]float64{}, fns...), fps...)),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Threshold",
				Style:   chart.Style{StrokeColor: chart.ColorRed},
				XValues: xvalues,
				YValues: thresholds,
			},
			chart.ContinuousSeries{
				Name:    "False negative ratio",
				YAxis:   chart.YAxisSecondary,
				Style:   chart.Style{StrokeColor: chart.ColorBlue},
				XValues: xvalues,
				YValues: fns,
			},
			chart.ContinuousSeries{
				Name:    "False positive ratio",
				YAxis:   chart.YAxisSecondary,
				Style:   chart.Style{StrokeColor: chart.ColorOrange},
				XValues: xvalues,
				YValues: fps,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render graph: %w", err)
	}
	return nil
}

// flatRange returns a padded range for a series with no spread, which
// go-chart refuses to scale on its own. Series that vary get nil.
func flatRange(values []float64) chart.Range {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo != hi {
		return nil
	}
	return &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
}
