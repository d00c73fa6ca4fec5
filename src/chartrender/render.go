package chartrender

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	png "image/png"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Fixed visual configuration: one bar series, one accent color, rotated x
// tick labels, compact FOB y-axis. These are constants of the dashboard,
// not computed.
var accentColor = drawing.Color{R: 0x63, G: 0x6E, B: 0xFA, A: 255}

const (
	xTickRotationDegrees = 45.0
	yAxisName            = "Valor FOB (US$)"
	maxLabelRunes        = 28
)

// Render draws series as a bar chart and returns the finished image.
// Re-invoking it for the same slot yields a fresh image that fully replaces
// any prior one; nothing accumulates across renders.
func Render(s Series, title string, width, height int) (image.Image, error) {
	if s.Len() == 0 {
		return nil, fmt.Errorf("render %q: empty series", title)
	}
	bars := make([]chart.Value, s.Len())
	for i := range s.Categories {
		bars[i] = chart.Value{
			Label: TruncateLabel(s.Categories[i], maxLabelRunes),
			Value: s.Values[i],
			Style: chart.Style{
				FillColor:   accentColor,
				StrokeColor: accentColor,
				StrokeWidth: 0,
			},
		}
	}
	bc := chart.BarChart{
		Title:  title,
		Width:  width,
		Height: height,
		// Extra bottom padding fits the rotated labels.
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 18, Right: 18, Bottom: 96}},
		BarWidth:   barWidth(width, s.Len()),
		XAxis: chart.Style{
			TextRotationDegrees: xTickRotationDegrees,
			FontSize:            9,
		},
		YAxis: chart.YAxis{
			Name: yAxisName,
			ValueFormatter: func(v interface{}) string {
				f, ok := v.(float64)
				if !ok {
					return ""
				}
				return FormatFOBCompact(f)
			},
		},
		Bars: bars,
	}
	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %q: %w", title, err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("render %q: decode: %w", title, err)
	}
	return drawCaption(img, SourceCaption), nil
}

// barWidth spreads the bars over the drawable width with a sane floor so a
// short top-N list does not degenerate into hairlines or one huge slab.
func barWidth(chartWidth, n int) int {
	if n <= 0 {
		return 20
	}
	w := (chartWidth - 120) / (n * 2)
	if w < 8 {
		w = 8
	}
	if w > 80 {
		w = 80
	}
	return w
}

// Blank returns a uniform placeholder image for a slot that has nothing to
// show yet.
func Blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 18, G: 18, B: 18, A: 255})
		}
	}
	return img
}
