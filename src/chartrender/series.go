// Package chartrender projects loosely typed trade records into bar-chart
// series and draws them with go-chart. The projection is pure and keeps the
// dataset order: rows arrive pre-sorted by relevance upstream and the x-axis
// must follow them, not re-sort.
package chartrender

import (
	"fmt"
	"math"

	"github.com/bruceeconomista/balanca-comercial-sc-v2/src/dataset"
)

// Series holds the parallel category/value sequences for one chart.
type Series struct {
	Categories []string
	Values     []float64
}

// Len returns the number of points.
func (s Series) Len() int { return len(s.Categories) }

// BuildSeries projects records into a Series using the named fields.
// Order- and length-preserving: Categories[i] and Values[i] always come
// from records[i]. A missing category field yields an empty label and a
// missing value field a zero bar; bad rows never abort the chart.
func BuildSeries(records []dataset.Record, categoryField, valueField string) Series {
	s := Series{
		Categories: make([]string, len(records)),
		Values:     make([]float64, len(records)),
	}
	for i, r := range records {
		s.Categories[i] = r.String(categoryField)
		s.Values[i] = r.Number(valueField)
	}
	return s
}

// FormatFOBCompact renders a FOB value in the compact pt-BR currency style
// used on the y-axis: "2,5 bi", "340 mi", "12 mil", plain below a thousand.
func FormatFOBCompact(v float64) string {
	av := math.Abs(v)
	sign := ""
	if v < 0 {
		sign = "-"
	}
	format := func(x float64, suffix string) string {
		if x >= 100 || x == math.Trunc(x) {
			return fmt.Sprintf("%s%.0f %s", sign, x, suffix)
		}
		s := fmt.Sprintf("%.1f", x)
		// decimal comma, pt-BR
		return sign + s[:len(s)-2] + "," + s[len(s)-1:] + " " + suffix
	}
	switch {
	case av >= 1e9:
		return format(av/1e9, "bi")
	case av >= 1e6:
		return format(av/1e6, "mi")
	case av >= 1e3:
		return format(av/1e3, "mil")
	default:
		return fmt.Sprintf("%s%.0f", sign, av)
	}
}

// TruncateLabel shortens long category names (NCM product descriptions run
// to whole sentences) so rotated tick labels stay readable.
func TruncateLabel(s string, n int) string {
	if n <= 1 || len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
