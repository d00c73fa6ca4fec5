// Package export writes a loaded bundle to spreadsheet form for offline
// analysis.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/bruceeconomista/balanca-comercial-sc-v2/src/dataset"
)

type sheetSpec struct {
	name          string
	categoryField string
	header        string
	records       []dataset.Record
}

// WriteXLSX writes the four collections of bundle to path, one sheet per
// collection, rows in dataset order.
func WriteXLSX(bundle *dataset.Bundle, path string) error {
	if bundle == nil {
		return fmt.Errorf("xlsx export: nil bundle")
	}
	sheets := []sheetSpec{
		{"Exp Produtos", "NO_NCM_POR", "Produto", bundle.ExportProducts},
		{"Exp Países", "NO_PAIS", "País", bundle.ExportCountries},
		{"Imp Produtos", "NO_NCM_POR", "Produto", bundle.ImportProducts},
		{"Imp Países", "NO_PAIS", "País", bundle.ImportCountries},
	}
	f := excelize.NewFile()
	defer f.Close()
	for i, sp := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sp.name); err != nil {
				return fmt.Errorf("xlsx export: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sp.name); err != nil {
				return fmt.Errorf("xlsx export: %w", err)
			}
		}
		if err := f.SetSheetRow(sp.name, "A1", &[]interface{}{sp.header, "Valor FOB (US$)"}); err != nil {
			return fmt.Errorf("xlsx export: %w", err)
		}
		for j, rec := range sp.records {
			cell := fmt.Sprintf("A%d", j+2)
			row := []interface{}{rec.String(sp.categoryField), rec.Number("VL_FOB")}
			if err := f.SetSheetRow(sp.name, cell, &row); err != nil {
				return fmt.Errorf("xlsx export: %w", err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx export: save %s: %w", path, err)
	}
	dataset.Infof("exported year %s bundle to %s", bundle.Year, path)
	return nil
}
