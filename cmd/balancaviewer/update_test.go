package main

import (
	"image"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"github.com/bruceeconomista/balanca-comercial-sc-v2/src/chartrender"
	"github.com/bruceeconomista/balanca-comercial-sc-v2/src/dataset"
)

func newDatasetServer(t *testing.T, bodies map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[strings.TrimPrefix(r.URL.Path, "/")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func year2024() map[string]string {
	return map[string]string{
		"exp_products_2024.json":  `[{"NO_NCM_POR":"Soja","VL_FOB":1000},{"NO_NCM_POR":"Milho","VL_FOB":500}]`,
		"exp_countries_2024.json": `[{"NO_PAIS":"China","VL_FOB":900}]`,
		"imp_products_2024.json":  `[{"NO_NCM_POR":"Adubos","VL_FOB":300}]`,
		"imp_countries_2024.json": `[{"NO_PAIS":"Chile","VL_FOB":250}]`,
	}
}

func TestSlotTitles(t *testing.T) {
	wants := [slotCount]string{
		"Produtos Mais Exportados (2024)",
		"Principais Destinos das Exportações (2024)",
		"Produtos Mais Importados (2024)",
		"Principais Origens das Importações (2024)",
	}
	for i, sp := range slots {
		if got := slotTitle(sp, "2024"); got != wants[i] {
			t.Fatalf("slot %s title = %q, want %q", sp.key, got, wants[i])
		}
	}
}

func TestRunUpdateCycle_Success(t *testing.T) {
	srv := newDatasetServer(t, year2024())
	loader := dataset.NewLoader(srv.URL, time.Second)

	var gotBundle *dataset.Bundle
	var gotImgs [slotCount]image.Image
	applied := 0
	ok := runUpdateCycle(loader, "2024", 640, 480, func(b *dataset.Bundle, imgs [slotCount]image.Image) {
		gotBundle = b
		gotImgs = imgs
		applied++
	})
	if !ok || applied != 1 {
		t.Fatalf("expected exactly one apply, ok=%v applied=%d", ok, applied)
	}
	if gotBundle.Year != "2024" {
		t.Fatalf("bundle year = %q", gotBundle.Year)
	}
	// the export-products slot projects in dataset order
	s := chartrender.BuildSeries(slots[0].records(gotBundle), slots[0].categoryField, valueField)
	if s.Categories[0] != "Soja" || s.Categories[1] != "Milho" {
		t.Fatalf("categories = %v", s.Categories)
	}
	if s.Values[0] != 1000 || s.Values[1] != 500 {
		t.Fatalf("values = %v", s.Values)
	}
	for i, img := range gotImgs {
		if img == nil {
			t.Fatalf("slot %d image is nil", i)
		}
		if img.Bounds().Dx() != 640 || img.Bounds().Dy() != 480 {
			t.Fatalf("slot %d image size = %v", i, img.Bounds())
		}
	}
}

func TestRunUpdateCycle_FetchFailure_NothingApplied(t *testing.T) {
	bodies := year2024()
	// rename to 1999 and break one resource
	moved := map[string]string{}
	for k, v := range bodies {
		moved[strings.Replace(k, "2024", "1999", 1)] = v
	}
	delete(moved, "imp_countries_1999.json")
	srv := newDatasetServer(t, moved)
	loader := dataset.NewLoader(srv.URL, time.Second)

	applied := 0
	ok := runUpdateCycle(loader, "1999", 640, 480, func(*dataset.Bundle, [slotCount]image.Image) { applied++ })
	if ok || applied != 0 {
		t.Fatalf("failed load must not apply, ok=%v applied=%d", ok, applied)
	}
}

func TestRunUpdateCycle_RenderFailure_NothingApplied(t *testing.T) {
	bodies := year2024()
	bodies["imp_products_2024.json"] = `[]` // decodes fine, renders nothing
	srv := newDatasetServer(t, bodies)
	loader := dataset.NewLoader(srv.URL, time.Second)

	applied := 0
	ok := runUpdateCycle(loader, "2024", 640, 480, func(*dataset.Bundle, [slotCount]image.Image) { applied++ })
	if ok || applied != 0 {
		t.Fatalf("failed render must not apply, ok=%v applied=%d", ok, applied)
	}
}

func TestApplyImages_ReplacesSlotsInPlace(t *testing.T) {
	test.NewApp()
	state := &uiState{statusLabel: widget.NewLabel("")}
	for i := range state.slotCanvas {
		state.slotCanvas[i] = canvas.NewImageFromImage(chartrender.Blank(10, 10))
	}

	var first, second [slotCount]image.Image
	for i := 0; i < slotCount; i++ {
		first[i] = chartrender.Blank(20, 20)
		second[i] = chartrender.Blank(30, 30)
	}
	applyImages(state, &dataset.Bundle{Year: "2023"}, first)
	applyImages(state, &dataset.Bundle{Year: "2024"}, second)

	for i := range state.slotCanvas {
		if state.slotCanvas[i].Image != second[i] {
			t.Fatalf("slot %d still shows an older image", i)
		}
	}
	if state.lastBundle.Year != "2024" {
		t.Fatalf("lastBundle year = %q", state.lastBundle.Year)
	}
}
