package chart

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/robalyx/stemdata/internal/export/types"
	"github.com/robalyx/stemdata/internal/vocabulary"
	"github.com/wcharczuk/go-chart/v2"
)

// Chart styling constants control the visual appearance of the frequency chart.
const (
	// titleFontSize sets the size of the chart title text.
	titleFontSize = 12.0
	// axisFontSize sets the size of axis labels.
	axisFontSize = 10.0
	// gridLineWidth controls the thickness of grid lines.
	gridLineWidth = 1.0
	// seriesLineWidth controls the thickness of the data line.
	seriesLineWidth = 2.0
	// seriesDotWidth controls the size of data points.
	seriesDotWidth = 3.0
	// padding adds space around the chart.
	padding = 20
)

// Exporter draws the occurrence count of the top flexions by rank.
type Exporter struct {
	outDir string
	top    int
}

// New creates a new chart exporter drawing at most top flexions.
func New(outDir string, top int) *Exporter {
	return &Exporter{outDir: outDir, top: max(top, 1)}
}

// Files returns the names of the files written by Export.
func (e *Exporter) Files() []string {
	return []string{types.FlexionsChart}
}

// Export renders the chart to a PNG file.
func (e *Exporter) Export(vocab *vocabulary.Vocabulary) error {
	if err := types.RemoveExisting(e.outDir, e.Files()...); err != nil {
		return err
	}

	buf, err := e.render(vocab.Flexions)
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	if err := os.WriteFile(filepath.Join(e.outDir, types.FlexionsChart), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}

	return nil
}

// render builds the rank/frequency line chart.
func (e *Exporter) render(entries []vocabulary.Entry) (*bytes.Buffer, error) {
	entries = entries[:min(len(entries), e.top)]

	xValues := make([]float64, 0, max(len(entries), 1))
	yValues := make([]float64, 0, max(len(entries), 1))
	maxCount := 1.0

	for i, entry := range entries {
		xValues = append(xValues, float64(i+1))
		yValues = append(yValues, float64(entry.Count))
		maxCount = max(maxCount, float64(entry.Count))
	}

	// The chart needs at least one point to render
	if len(entries) == 0 {
		xValues = append(xValues, 1)
		yValues = append(yValues, 0)
	}

	graph := &chart.Chart{
		Title:      fmt.Sprintf("Top %d flexions by occurrence", len(entries)),
		TitleStyle: chart.Style{FontSize: titleFontSize},
		Background: chart.Style{
			Padding: chart.Box{Top: padding, Left: padding, Right: padding, Bottom: padding},
		},
		XAxis: chart.XAxis{
			Name:           "Rank",
			Style:          chart.Style{FontSize: axisFontSize},
			Range:          &chart.ContinuousRange{Min: 1, Max: max(float64(len(entries)), 2)},
			ValueFormatter: integerFormatter,
		},
		YAxis: chart.YAxis{
			Name:  "Occurrences",
			Style: chart.Style{FontSize: axisFontSize},
			GridMajorStyle: chart.Style{
				StrokeColor: chart.ColorAlternateGray,
				StrokeWidth: gridLineWidth,
			},
			Range:          &chart.ContinuousRange{Min: 0, Max: maxCount},
			ValueFormatter: integerFormatter,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Occurrences",
				XValues: xValues,
				YValues: yValues,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: seriesLineWidth,
					DotColor:    chart.ColorBlue,
					DotWidth:    seriesDotWidth,
				},
			},
		},
	}

	// Render chart to PNG format
	buf := new(bytes.Buffer)
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, err
	}

	return buf, nil
}

// integerFormatter prints axis values without decimals.
func integerFormatter(v any) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return ""
}
