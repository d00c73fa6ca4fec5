package main

import (
	"context"
	"fmt"
	"image"

	fyne "fyne.io/fyne/v2"

	"github.com/bruceeconomista/balanca-comercial-sc-v2/src/chartrender"
	"github.com/bruceeconomista/balanca-comercial-sc-v2/src/dataset"
)

const slotCount = 4

// slotSpec binds one fixed display slot to its dataset collection, the
// field carrying the category axis and the title pattern.
type slotSpec struct {
	key           string
	categoryField string
	titleFormat   string
	records       func(*dataset.Bundle) []dataset.Record
}

// valueField is the same for every slot: the FOB value of the row.
const valueField = "VL_FOB"

var slots = [slotCount]slotSpec{
	{
		key:           dataset.ResourceExportProducts,
		categoryField: "NO_NCM_POR",
		titleFormat:   "Produtos Mais Exportados (%s)",
		records:       func(b *dataset.Bundle) []dataset.Record { return b.ExportProducts },
	},
	{
		key:           dataset.ResourceExportCountries,
		categoryField: "NO_PAIS",
		titleFormat:   "Principais Destinos das Exportações (%s)",
		records:       func(b *dataset.Bundle) []dataset.Record { return b.ExportCountries },
	},
	{
		key:           dataset.ResourceImportProducts,
		categoryField: "NO_NCM_POR",
		titleFormat:   "Produtos Mais Importados (%s)",
		records:       func(b *dataset.Bundle) []dataset.Record { return b.ImportProducts },
	},
	{
		key:           dataset.ResourceImportCountries,
		categoryField: "NO_PAIS",
		titleFormat:   "Principais Origens das Importações (%s)",
		records:       func(b *dataset.Bundle) []dataset.Record { return b.ImportCountries },
	},
}

func slotTitle(sp slotSpec, year string) string {
	return fmt.Sprintf(sp.titleFormat, year)
}

// renderBundle draws the four charts for bundle at the given slot size.
// All four render or none do: a single failed chart aborts the set so a
// cycle can never leave the dashboard half-updated.
func renderBundle(bundle *dataset.Bundle, width, height int) ([slotCount]image.Image, error) {
	var imgs [slotCount]image.Image
	for i, sp := range slots {
		series := chartrender.BuildSeries(sp.records(bundle), sp.categoryField, valueField)
		img, err := chartrender.Render(series, slotTitle(sp, bundle.Year), width, height)
		if err != nil {
			return imgs, err
		}
		imgs[i] = img
	}
	return imgs, nil
}

// runUpdateCycle performs one load-and-render cycle: fetch the year's four
// collections, draw the four charts, then hand the finished set to apply.
// Any failure along the way is logged once and apply is never called, so
// whatever was on screen before stays untouched. Returns whether the cycle
// reached apply.
func runUpdateCycle(loader *dataset.Loader, year string, width, height int, apply func(*dataset.Bundle, [slotCount]image.Image)) bool {
	bundle, err := loader.Load(context.Background(), year)
	if err != nil {
		dataset.Errorf("update cycle for %s aborted: %v", year, err)
		return false
	}
	imgs, err := renderBundle(bundle, width, height)
	if err != nil {
		dataset.Errorf("update cycle for %s aborted: %v", year, err)
		return false
	}
	apply(bundle, imgs)
	return true
}

// selectYear kicks off an update cycle for year in the background. The
// cycle's results only land if no newer selection has been made since.
func (state *uiState) selectYear(year string) {
	if year == "" {
		return
	}
	gen := state.generation.Add(1)
	state.statusLabel.SetText("Carregando " + year + "…")
	width, height := chartSlotSize(state)
	go func() {
		ok := runUpdateCycle(state.loader, year, width, height, func(bundle *dataset.Bundle, imgs [slotCount]image.Image) {
			if state.generation.Load() != gen {
				dataset.Debugf("dropping stale results for %s", year)
				return
			}
			fyne.Do(func() { applyImages(state, bundle, imgs) })
		})
		if !ok && state.generation.Load() == gen {
			fyne.Do(func() { state.statusLabel.SetText("Falha ao carregar " + year) })
		}
	}()
}

// applyImages replaces the four chart slots in place with a freshly
// rendered set. Runs on the UI thread.
func applyImages(state *uiState, bundle *dataset.Bundle, imgs [slotCount]image.Image) {
	width, height := chartSlotSize(state)
	for i, img := range imgs {
		c := state.slotCanvas[i]
		c.Image = img
		c.SetMinSize(fyne.NewSize(float32(width), float32(height)))
		c.Refresh()
	}
	state.lastBundle = bundle
	state.statusLabel.SetText("")
}

// redrawCharts re-renders the on-screen bundle at the current window size.
// No fetch: this is a resize repaint, not a new cycle.
func redrawCharts(state *uiState) {
	if state == nil || state.lastBundle == nil {
		return
	}
	width, height := chartSlotSize(state)
	imgs, err := renderBundle(state.lastBundle, width, height)
	if err != nil {
		dataset.Errorf("redraw for %s failed: %v", state.lastBundle.Year, err)
		return
	}
	applyImages(state, state.lastBundle, imgs)
}
