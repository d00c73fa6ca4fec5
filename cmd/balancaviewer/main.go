package main

import (
	"flag"
	"fmt"
	"image"
	png "image/png"
	"os"
	"sync/atomic"
	"time"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/bruceeconomista/balanca-comercial-sc-v2/cmd/balancaviewer/uihelpers"
	"github.com/bruceeconomista/balanca-comercial-sc-v2/src/chartrender"
	"github.com/bruceeconomista/balanca-comercial-sc-v2/src/dataset"
	"github.com/bruceeconomista/balanca-comercial-sc-v2/src/export"
)

type uiState struct {
	app    fyne.App
	window fyne.Window
	loader *dataset.Loader

	years []string
	year  string

	// generation guards against a slow load for an old year overwriting
	// the charts of a newer selection.
	generation atomic.Int64

	// widgets
	yearSelect  *widget.Select
	statusLabel *widget.Label
	slotCanvas  [slotCount]*canvas.Image

	// bundle currently on screen; kept only so resize redraws and exports
	// do not re-fetch. Replaced wholesale on every successful cycle.
	lastBundle *dataset.Bundle
}

func main() {
	cfg := dataset.LoadConfig()
	var base string
	var year string
	var logLevel string
	var logFile string
	flag.StringVar(&base, "base", cfg.BaseURL, "Base URL of the dataset namespace")
	flag.StringVar(&year, "year", "", "Initial year (default: last viewed, then most recent)")
	flag.StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	flag.StringVar(&logFile, "log-file", cfg.LogFile, "Optional rotated log file")
	flag.Parse()

	dataset.SetLogLevel(logLevel)
	if logFile != "" {
		dataset.SetLogFile(logFile)
	}

	a := app.NewWithID("com.balanca.viewer")
	w := a.NewWindow("Balança Comercial de Santa Catarina")
	w.Resize(fyne.NewSize(1280, 860))

	state := &uiState{
		app:    a,
		window: w,
		loader: dataset.NewLoader(base, cfg.Timeout),
		years:  cfg.Years(),
	}
	state.year = initialYear(state, year)

	// year selector first; chart slots wired before the callback can fire
	state.yearSelect = widget.NewSelect(state.years, nil)
	state.yearSelect.PlaceHolder = "Ano"
	state.statusLabel = widget.NewLabel("")

	for i := range state.slotCanvas {
		img := canvas.NewImageFromImage(chartrender.Blank(100, 60))
		img.FillMode = canvas.ImageFillContain
		img.SetMinSize(fyne.NewSize(560, 420))
		state.slotCanvas[i] = img
	}

	top := container.NewHBox(
		widget.NewLabel("Ano:"), state.yearSelect,
		widget.NewButton("Recarregar", func() { state.selectYear(state.year) }),
		state.statusLabel,
	)
	grid := container.NewGridWithColumns(2,
		state.slotCanvas[0], state.slotCanvas[1],
		state.slotCanvas[2], state.slotCanvas[3],
	)
	chartsScroll := container.NewVScroll(grid)
	chartsScroll.SetMinSize(fyne.NewSize(1140, 760))
	w.SetContent(container.NewBorder(top, nil, nil, nil, chartsScroll))

	state.yearSelect.OnChanged = func(v string) {
		if v == "" || v == state.year {
			return
		}
		state.year = v
		savePrefs(state)
		state.selectYear(v)
	}
	state.yearSelect.Selected = state.year

	buildMenus(state)

	// Redraw the on-screen bundle when the window width changes so charts
	// keep using the available space (no re-fetch involved).
	done := make(chan struct{})
	w.SetOnClosed(func() {
		savePrefs(state)
		close(done)
	})
	go func() {
		prevW := 0
		t := time.NewTicker(300 * time.Millisecond)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				c := w.Canvas()
				if c == nil {
					continue
				}
				curW := int(c.Size().Width)
				if curW != prevW {
					prevW = curW
					fyne.Do(func() { redrawCharts(state) })
				}
			}
		}
	}()

	// initial cycle with the default year
	state.selectYear(state.year)
	w.ShowAndRun()
}

// initialYear resolves the starting year: explicit flag, then the last
// viewed year from preferences, then the most recent configured year.
func initialYear(state *uiState, flagYear string) string {
	if flagYear != "" {
		return flagYear
	}
	if len(state.years) == 0 {
		return ""
	}
	last := state.app.Preferences().StringWithFallback("lastYear", "")
	for _, y := range state.years {
		if y == last {
			return y
		}
	}
	return state.years[0]
}

func buildMenus(state *uiState) {
	exportXLSX := fyne.NewMenuItem("Exportar XLSX…", func() { exportBundleXLSX(state) })
	exportPNG := fyne.NewMenuItem("Exportar gráficos PNG…", func() { exportChartPNG(state) })
	fileMenu := fyne.NewMenu("Arquivo", exportXLSX, exportPNG)
	about := fyne.NewMenuItem("Sobre", func() {
		dialog.ShowInformation("Sobre",
			"Balança Comercial de Santa Catarina\nDados: Comex Stat (MDIC), valores FOB em US$.",
			state.window)
	})
	helpMenu := fyne.NewMenu("Ajuda", about)
	state.window.SetMainMenu(fyne.NewMainMenu(fileMenu, helpMenu))
}

func exportBundleXLSX(state *uiState) {
	if state.lastBundle == nil {
		dialog.ShowInformation("Exportar", "Nenhum ano carregado ainda.", state.window)
		return
	}
	bundle := state.lastBundle
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		path := wc.URI().Path()
		wc.Close()
		if err := export.WriteXLSX(bundle, path); err != nil {
			dataset.Errorf("xlsx export failed: %v", err)
			dialog.ShowError(err, state.window)
		}
	}, state.window)
	fs.SetFileName(fmt.Sprintf("balanca_%s.xlsx", bundle.Year))
	fs.Show()
}

// exportChartPNG saves the currently displayed chart images next to each
// other as {slot}_{year}.png in a chosen directory.
func exportChartPNG(state *uiState) {
	if state.lastBundle == nil {
		dialog.ShowInformation("Exportar", "Nenhum ano carregado ainda.", state.window)
		return
	}
	year := state.lastBundle.Year
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		dir := uri.Path()
		for i, sp := range slots {
			img := state.slotCanvas[i].Image
			if img == nil {
				continue
			}
			path := fmt.Sprintf("%s/%s_%s.png", dir, sp.key, year)
			if err := writePNG(path, img); err != nil {
				dataset.Errorf("png export failed: %v", err)
				dialog.ShowError(err, state.window)
				return
			}
		}
		dataset.Infof("exported %d chart images for %s to %s", len(slots), year, dir)
	}, state.window)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// chartSlotSize derives one slot's render size from the window width; two
// charts share a row, so each gets roughly half.
func chartSlotSize(state *uiState) (int, int) {
	if state == nil || state.window == nil || state.window.Canvas() == nil {
		return 560, 420
	}
	return uihelpers.ComputeChartDimensions(int(state.window.Canvas().Size().Width) / 2)
}

// prefs
func savePrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	state.app.Preferences().SetString("lastYear", state.year)
}
