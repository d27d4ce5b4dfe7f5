// Package charts renders draft analytics as interactive HTML charts.
package charts

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/draftforge/draftforge/internal/catalog"
	"github.com/draftforge/draftforge/internal/draft"
)

// ChartConfig holds shared chart options.
type ChartConfig struct {
	Title    string
	Subtitle string
	Width    string
	Height   string
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:  "900px",
		Height: "500px",
	}
}

// RenderCurveChart writes the session's mana-curve histogram against the
// ideal curve as a bar chart HTML file.
func RenderCurveChart(curve *draft.CurveTracker, config ChartConfig, outputPath string) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
		}),
	)

	labels := []string{"0", "1", "2", "3", "4", "5", "6", "7+"}
	hist := curve.Histogram()

	counts := make([]opts.BarData, len(hist))
	for i, n := range hist {
		counts[i] = opts.BarData{Value: n}
	}

	bar.SetXAxis(labels).AddSeries("Picked", counts)

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// RenderColorChart writes the per-pick color commitment progression as a
// line chart HTML file, one series per color that ever scored.
func RenderColorChart(records []draft.PickRecord, config ChartConfig, outputPath string) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
		}),
	)

	labels := make([]string, len(records))
	for i, record := range records {
		labels[i] = fmt.Sprintf("P%dp%d", record.PackNumber, record.PickNumber)
	}
	line.SetXAxis(labels)

	for _, color := range catalog.AllColors {
		series := make([]opts.LineData, len(records))
		active := false
		for i, record := range records {
			score := record.Colors.Scores[color]
			if score > 0 {
				active = true
			}
			series[i] = opts.LineData{Value: score}
		}
		if active {
			line.AddSeries(color, series)
		}
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := line.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
