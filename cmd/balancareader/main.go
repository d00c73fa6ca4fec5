package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/bruceeconomista/balanca-comercial-sc-v2/src/chartrender"
	"github.com/bruceeconomista/balanca-comercial-sc-v2/src/dataset"
)

func main() {
	cfg := dataset.LoadConfig()
	var year string
	var base string
	var topN int
	flag.StringVar(&year, "year", fmt.Sprintf("%d", cfg.LastYear), "Year to load")
	flag.StringVar(&base, "base", cfg.BaseURL, "Base URL of the dataset namespace")
	flag.IntVar(&topN, "n", 10, "Rows to print per collection")
	flag.Parse()

	loader := dataset.NewLoader(base, cfg.Timeout)
	bundle, err := loader.Load(context.Background(), year)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	sections := []struct {
		title         string
		categoryField string
		records       []dataset.Record
	}{
		{"Exportações por produto", "NO_NCM_POR", bundle.ExportProducts},
		{"Exportações por país", "NO_PAIS", bundle.ExportCountries},
		{"Importações por produto", "NO_NCM_POR", bundle.ImportProducts},
		{"Importações por país", "NO_PAIS", bundle.ImportCountries},
	}
	fmt.Printf("Balança comercial %s\n", bundle.Year)
	for _, sec := range sections {
		fmt.Printf("\n%s (%d linhas)\n", sec.title, len(sec.records))
		n := topN
		if n > len(sec.records) {
			n = len(sec.records)
		}
		for _, rec := range sec.records[:n] {
			fmt.Printf("  %-40s %s\n",
				chartrender.TruncateLabel(rec.String(sec.categoryField), 40),
				chartrender.FormatFOBCompact(rec.Number("VL_FOB")))
		}
	}
}
