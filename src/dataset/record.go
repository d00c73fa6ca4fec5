package dataset

import (
	"fmt"
	"strconv"
)

// Record is one row of a trade dataset as decoded from JSON. Field sets vary
// per dataset kind (NO_NCM_POR / NO_PAIS for the category, VL_FOB for the
// value), so rows stay loosely typed and fields are read by name.
type Record map[string]any

// String returns the named field rendered as text. Missing fields yield "".
func (r Record) String(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; keep integral values compact.
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Number returns the named field as a float64. Missing or non-numeric
// fields yield 0 rather than an error; a bad row plots as an empty bar.
func (r Record) Number(field string) float64 {
	v, ok := r[field]
	if !ok || v == nil {
		return 0
	}
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Bundle holds the four collections loaded atomically for one year. It is
// created fresh on every load and only read transiently by the renderer.
type Bundle struct {
	Year            string
	ExportProducts  []Record
	ExportCountries []Record
	ImportProducts  []Record
	ImportCountries []Record
}
