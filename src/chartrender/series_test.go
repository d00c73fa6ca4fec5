package chartrender

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bruceeconomista/balanca-comercial-sc-v2/src/dataset"
)

func TestBuildSeries_OrderAndLengthPreserved(t *testing.T) {
	records := []dataset.Record{
		{"NO_NCM_POR": "Soja", "VL_FOB": float64(1000)},
		{"NO_NCM_POR": "Milho", "VL_FOB": float64(500)},
		{"NO_NCM_POR": "Carnes", "VL_FOB": float64(250)},
	}
	s := BuildSeries(records, "NO_NCM_POR", "VL_FOB")
	require.Equal(t, len(records), s.Len())
	require.Equal(t, []string{"Soja", "Milho", "Carnes"}, s.Categories)
	require.Equal(t, []float64{1000, 500, 250}, s.Values)
}

func TestBuildSeries_MissingFieldsDoNotAbort(t *testing.T) {
	// second row has no category, third no value
	records := []dataset.Record{
		{"NO_PAIS": "China", "VL_FOB": float64(900)},
		{"VL_FOB": float64(100)},
		{"NO_PAIS": "Argentina"},
	}
	s := BuildSeries(records, "NO_PAIS", "VL_FOB")
	require.Equal(t, 3, s.Len())
	require.Equal(t, []string{"China", "", "Argentina"}, s.Categories)
	require.Equal(t, []float64{900, 100, 0}, s.Values)
}

func TestBuildSeries_Empty(t *testing.T) {
	s := BuildSeries(nil, "NO_PAIS", "VL_FOB")
	require.Equal(t, 0, s.Len())
}

func TestFormatFOBCompact(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1 mil"},
		{12_000, "12 mil"},
		{1_500, "1,5 mil"},
		{340_000_000, "340 mi"},
		{2_500_000_000, "2,5 bi"},
		{1_000_000_000, "1 bi"},
		{-1_500_000, "-1,5 mi"},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%v", c.in), func(t *testing.T) {
			require.Equal(t, c.want, FormatFOBCompact(c.in))
		})
	}
}

func TestTruncateLabel(t *testing.T) {
	require.Equal(t, "Soja", TruncateLabel("Soja", 10))
	require.Equal(t, "Soja, mesmo…", TruncateLabel("Soja, mesmo triturada", 12))
	// multibyte safe
	require.Equal(t, "Carnes suín…", TruncateLabel("Carnes suínas congeladas", 12))
	require.Equal(t, "x", TruncateLabel("x", 1))
}
